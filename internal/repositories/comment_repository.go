package repositories

import (
	"context"

	"github.com/anonto42/socialgraph/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentByID(ctx context.Context, id uint) (*models.Comment, error)
	GetCommentsByPostID(ctx context.Context, postID uint) ([]models.Comment, error)
	DeleteComment(ctx context.Context, id uint) error
}

// GormCommentRepository implements CommentRepository on gorm (PostgreSQL or SQLite)
type GormCommentRepository struct {
	db *gorm.DB
}

// NewGormCommentRepository creates a new GormCommentRepository
func NewGormCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

func (r *GormCommentRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	return translateError(conn(ctx, r.db).Omit(clause.Associations).Create(comment).Error, "create comment")
}

func (r *GormCommentRepository) GetCommentByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := conn(ctx, r.db).First(&comment, id).Error; err != nil {
		return nil, translateError(err, "get comment by id")
	}
	return &comment, nil
}

// GetCommentsByPostID returns the comments of a post, oldest first
func (r *GormCommentRepository) GetCommentsByPostID(ctx context.Context, postID uint) ([]models.Comment, error) {
	comments := []models.Comment{}
	err := conn(ctx, r.db).Where("post_id = ?", postID).Order("created_at ASC, id ASC").Find(&comments).Error
	return comments, translateError(err, "get comments by post")
}

func (r *GormCommentRepository) DeleteComment(ctx context.Context, id uint) error {
	res := conn(ctx, r.db).Delete(&models.Comment{}, id)
	if res.Error != nil {
		return translateError(res.Error, "delete comment")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
