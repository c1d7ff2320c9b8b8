package repositories

import (
	"context"

	"github.com/anonto42/socialgraph/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id uint) (*models.Post, error)
	GetPostsByUserID(ctx context.Context, userID uint) ([]models.Post, error)
	// GetTimelinePosts fetches the posts of userID and of everyone userID follows with one query
	GetTimelinePosts(ctx context.Context, userID uint) ([]models.Post, error)
	GetAllPosts(ctx context.Context) ([]models.Post, error)
	UpdatePostContent(ctx context.Context, id uint, content string) error
	DeletePost(ctx context.Context, id uint) error
}

// newest first, ties broken by id
const recencyOrder = "created_at DESC, id DESC"

// GormPostRepository implements PostRepository on gorm (PostgreSQL or SQLite)
type GormPostRepository struct {
	db *gorm.DB
}

// NewGormPostRepository creates a new GormPostRepository
func NewGormPostRepository(db *gorm.DB) *GormPostRepository {
	return &GormPostRepository{db: db}
}

func (r *GormPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	return translateError(conn(ctx, r.db).Omit(clause.Associations).Create(post).Error, "create post")
}

func (r *GormPostRepository) GetPostByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := conn(ctx, r.db).First(&post, id).Error; err != nil {
		return nil, translateError(err, "get post by id")
	}
	return &post, nil
}

func (r *GormPostRepository) GetPostsByUserID(ctx context.Context, userID uint) ([]models.Post, error) {
	posts := []models.Post{}
	err := conn(ctx, r.db).Where("user_id = ?", userID).Order(recencyOrder).Find(&posts).Error
	return posts, translateError(err, "get posts by user")
}

func (r *GormPostRepository) GetTimelinePosts(ctx context.Context, userID uint) ([]models.Post, error) {
	db := conn(ctx, r.db)
	posts := []models.Post{}
	err := db.Where("user_id = ? OR user_id IN (?)", userID,
		db.Model(&models.Follow{}).Select("followed_id").Where("follower_id = ?", userID),
	).Order(recencyOrder).Find(&posts).Error
	return posts, translateError(err, "get timeline posts")
}

func (r *GormPostRepository) GetAllPosts(ctx context.Context) ([]models.Post, error) {
	posts := []models.Post{}
	err := conn(ctx, r.db).Order(recencyOrder).Find(&posts).Error
	return posts, translateError(err, "get all posts")
}

func (r *GormPostRepository) UpdatePostContent(ctx context.Context, id uint, content string) error {
	res := conn(ctx, r.db).Model(&models.Post{}).Where("id = ?", id).Update("content", content)
	if res.Error != nil {
		return translateError(res.Error, "update post")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeletePost removes the post; likes and comments cascade
func (r *GormPostRepository) DeletePost(ctx context.Context, id uint) error {
	res := conn(ctx, r.db).Delete(&models.Post{}, id)
	if res.Error != nil {
		return translateError(res.Error, "delete post")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
