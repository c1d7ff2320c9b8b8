package repositories

import (
	"context"

	"github.com/anonto42/socialgraph/backend/internal/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	GetUsersByIDs(ctx context.Context, ids []uint) ([]models.User, error)
	GetUsers(ctx context.Context) ([]models.User, error)
	ExistsByID(ctx context.Context, id uint) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdateEmail(ctx context.Context, id uint, email string) error
	DeleteUser(ctx context.Context, id uint) error
}

// GormUserRepository implements UserRepository on gorm (PostgreSQL or SQLite)
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	return translateError(conn(ctx, r.db).Create(user).Error, "create user")
}

func (r *GormUserRepository) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := conn(ctx, r.db).First(&user, id).Error; err != nil {
		return nil, translateError(err, "get user by id")
	}
	return &user, nil
}

func (r *GormUserRepository) GetUsersByIDs(ctx context.Context, ids []uint) ([]models.User, error) {
	users := []models.User{}
	if len(ids) == 0 {
		return users, nil
	}
	err := conn(ctx, r.db).Where("id IN ?", ids).Order("id ASC").Find(&users).Error
	return users, translateError(err, "get users by ids")
}

func (r *GormUserRepository) GetUsers(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	err := conn(ctx, r.db).Order("id ASC").Find(&users).Error
	return users, translateError(err, "get users")
}

func (r *GormUserRepository) ExistsByID(ctx context.Context, id uint) (bool, error) {
	return r.exists(ctx, "id = ?", id)
}

func (r *GormUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, "username = ?", username)
}

func (r *GormUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "email = ?", email)
}

func (r *GormUserRepository) exists(ctx context.Context, query string, arg any) (bool, error) {
	var count int64
	if err := conn(ctx, r.db).Model(&models.User{}).Where(query, arg).Count(&count).Error; err != nil {
		return false, translateError(err, "check user exists")
	}
	return count > 0, nil
}

func (r *GormUserRepository) UpdateEmail(ctx context.Context, id uint, email string) error {
	res := conn(ctx, r.db).Model(&models.User{}).Where("id = ?", id).Update("email", email)
	if res.Error != nil {
		return translateError(res.Error, "update user email")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteUser removes the user; follows, likes, posts and comments go with it through ON DELETE CASCADE
func (r *GormUserRepository) DeleteUser(ctx context.Context, id uint) error {
	res := conn(ctx, r.db).Delete(&models.User{}, id)
	if res.Error != nil {
		return translateError(res.Error, "delete user")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
