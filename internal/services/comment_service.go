package services

import (
	"context"
	"time"

	"github.com/anonto42/socialgraph/backend/internal/models"
	"github.com/anonto42/socialgraph/backend/internal/repositories"
	"github.com/anonto42/socialgraph/backend/pkg/apperrors"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const maxCommentLength = 250

// CommentService stores comments on posts
type CommentService struct {
	tx       repositories.Transactor
	users    repositories.UserRepository
	posts    repositories.PostRepository
	comments repositories.CommentRepository
	log      *zap.Logger
}

// NewCommentService creates a new CommentService
func NewCommentService(
	tx repositories.Transactor,
	users repositories.UserRepository,
	posts repositories.PostRepository,
	comments repositories.CommentRepository,
	log *zap.Logger,
) *CommentService {
	return &CommentService{tx: tx, users: users, posts: posts, comments: comments, log: log.Named("comment")}
}

func (s *CommentService) Create(ctx context.Context, userID uint, req models.CreateCommentRequest) (*models.CommentResponse, error) {
	req.Normalize()
	if err := checkLength("content", req.Content, 1, maxCommentLength); err != nil {
		return nil, err
	}
	author, err := requireUser(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}
	if _, err := requirePost(ctx, s.posts, req.PostID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:    req.PostID,
		UserID:    userID,
		Content:   req.Content,
		CreatedAt: time.Now().UTC(),
	}
	switch err := s.comments.CreateComment(ctx, comment); {
	case errors.Is(err, repositories.ErrNotFound):
		return nil, apperrors.NotFound("user or post not found")
	case err != nil:
		return nil, storageFailure("create comment", err)
	}

	resp := toCommentResponse(comment, author.Username)
	return &resp, nil
}

// ByPost returns the comments on postID, oldest first
func (s *CommentService) ByPost(ctx context.Context, postID uint) ([]models.CommentResponse, error) {
	if _, err := requirePost(ctx, s.posts, postID); err != nil {
		return nil, err
	}
	comments, err := s.comments.GetCommentsByPostID(ctx, postID)
	if err != nil {
		return nil, storageFailure("list comments", err)
	}

	ids := make([]uint, 0, len(comments))
	for _, c := range comments {
		ids = append(ids, c.UserID)
	}
	authors, err := s.users.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, storageFailure("load comment authors", err)
	}
	usernames := make(map[uint]string, len(authors))
	for _, a := range authors {
		usernames[a.ID] = a.Username
	}

	out := make([]models.CommentResponse, 0, len(comments))
	for i := range comments {
		out = append(out, toCommentResponse(&comments[i], usernames[comments[i].UserID]))
	}
	return out, nil
}

// Delete removes a comment written by userID
func (s *CommentService) Delete(ctx context.Context, id, userID uint) error {
	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		comment, err := s.comments.GetCommentByID(ctx, id)
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.NotFound("comment not found with id: %d", id)
		}
		if err != nil {
			return storageFailure("load comment", err)
		}
		if comment.UserID != userID {
			return apperrors.Forbidden("you can only delete your own comments")
		}
		if err := s.comments.DeleteComment(ctx, id); err != nil {
			return storageFailure("delete comment", err)
		}
		return nil
	})
}

func toCommentResponse(c *models.Comment, username string) models.CommentResponse {
	return models.CommentResponse{
		ID:        c.ID,
		PostID:    c.PostID,
		UserID:    c.UserID,
		Username:  username,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
}
