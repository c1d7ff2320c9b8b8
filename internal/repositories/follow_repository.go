package repositories

import (
	"context"

	"github.com/anonto42/socialgraph/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowRepository defines the interface for follow data operations
type FollowRepository interface {
	// CreateFollow inserts the edge unless the pair already exists, in which case it returns ErrDuplicate
	CreateFollow(ctx context.Context, follow *models.Follow) error
	// DeleteFollow removes the edge for the pair, or returns ErrNotFound
	DeleteFollow(ctx context.Context, followerID, followedID uint) error
	IsFollowing(ctx context.Context, followerID, followedID uint) (bool, error)
	GetFollowers(ctx context.Context, userID uint) ([]models.User, error)
	GetFollowing(ctx context.Context, userID uint) ([]models.User, error)
	GetFollowersCount(ctx context.Context, userID uint) (int64, error)
	GetFollowingCount(ctx context.Context, userID uint) (int64, error)
}

// GormFollowRepository implements FollowRepository on gorm (PostgreSQL or SQLite)
type GormFollowRepository struct {
	db *gorm.DB
}

// NewGormFollowRepository creates a new GormFollowRepository
func NewGormFollowRepository(db *gorm.DB) *GormFollowRepository {
	return &GormFollowRepository{db: db}
}

func (r *GormFollowRepository) CreateFollow(ctx context.Context, follow *models.Follow) error {
	res := conn(ctx, r.db).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(follow)
	if res.Error != nil {
		return translateError(res.Error, "create follow")
	}
	if res.RowsAffected == 0 {
		return ErrDuplicate
	}
	return nil
}

func (r *GormFollowRepository) DeleteFollow(ctx context.Context, followerID, followedID uint) error {
	res := conn(ctx, r.db).Where("follower_id = ? AND followed_id = ?", followerID, followedID).Delete(&models.Follow{})
	if res.Error != nil {
		return translateError(res.Error, "delete follow")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormFollowRepository) IsFollowing(ctx context.Context, followerID, followedID uint) (bool, error) {
	var count int64
	err := conn(ctx, r.db).Model(&models.Follow{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&count).Error
	if err != nil {
		return false, translateError(err, "check follow")
	}
	return count > 0, nil
}

func (r *GormFollowRepository) GetFollowers(ctx context.Context, userID uint) ([]models.User, error) {
	db := conn(ctx, r.db)
	users := []models.User{}
	err := db.Where("id IN (?)",
		db.Model(&models.Follow{}).Select("follower_id").Where("followed_id = ?", userID),
	).Order("id ASC").Find(&users).Error
	return users, translateError(err, "get followers")
}

func (r *GormFollowRepository) GetFollowing(ctx context.Context, userID uint) ([]models.User, error) {
	db := conn(ctx, r.db)
	users := []models.User{}
	err := db.Where("id IN (?)",
		db.Model(&models.Follow{}).Select("followed_id").Where("follower_id = ?", userID),
	).Order("id ASC").Find(&users).Error
	return users, translateError(err, "get following")
}

func (r *GormFollowRepository) GetFollowersCount(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := conn(ctx, r.db).Model(&models.Follow{}).Where("followed_id = ?", userID).Count(&count).Error
	return count, translateError(err, "count followers")
}

func (r *GormFollowRepository) GetFollowingCount(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := conn(ctx, r.db).Model(&models.Follow{}).Where("follower_id = ?", userID).Count(&count).Error
	return count, translateError(err, "count following")
}
