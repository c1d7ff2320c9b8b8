package repositories

import (
	"context"

	"github.com/anonto42/socialgraph/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	// CreateLike inserts the like unless the (user, post) pair exists, in which case it returns ErrDuplicate
	CreateLike(ctx context.Context, like *models.Like) error
	// DeleteLike removes the like for the pair, or returns ErrNotFound
	DeleteLike(ctx context.Context, userID, postID uint) error
	HasUserLikedPost(ctx context.Context, userID, postID uint) (bool, error)
	GetLikesCountByPostID(ctx context.Context, postID uint) (int64, error)
}

// GormLikeRepository implements LikeRepository on gorm (PostgreSQL or SQLite)
type GormLikeRepository struct {
	db *gorm.DB
}

// NewGormLikeRepository creates a new GormLikeRepository
func NewGormLikeRepository(db *gorm.DB) *GormLikeRepository {
	return &GormLikeRepository{db: db}
}

// CreateLike creates a new like
func (r *GormLikeRepository) CreateLike(ctx context.Context, like *models.Like) error {
	res := conn(ctx, r.db).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(like)
	if res.Error != nil {
		return translateError(res.Error, "create like")
	}
	if res.RowsAffected == 0 {
		return ErrDuplicate
	}
	return nil
}

// DeleteLike deletes a like
func (r *GormLikeRepository) DeleteLike(ctx context.Context, userID, postID uint) error {
	res := conn(ctx, r.db).Where("user_id = ? AND post_id = ?", userID, postID).Delete(&models.Like{})
	if res.Error != nil {
		return translateError(res.Error, "delete like")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// HasUserLikedPost checks if a user has liked a specific post
func (r *GormLikeRepository) HasUserLikedPost(ctx context.Context, userID, postID uint) (bool, error) {
	var count int64
	err := conn(ctx, r.db).Model(&models.Like{}).Where("user_id = ? AND post_id = ?", userID, postID).Count(&count).Error
	if err != nil {
		return false, translateError(err, "check like")
	}
	return count > 0, nil
}

// GetLikesCountByPostID retrieves the count of likes for a specific post
func (r *GormLikeRepository) GetLikesCountByPostID(ctx context.Context, postID uint) (int64, error) {
	var count int64
	err := conn(ctx, r.db).Model(&models.Like{}).Where("post_id = ?", postID).Count(&count).Error
	return count, translateError(err, "count likes")
}
