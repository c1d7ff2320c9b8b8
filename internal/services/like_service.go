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

// LikeService owns the like edges between users and posts
type LikeService struct {
	tx       repositories.Transactor
	users    repositories.UserRepository
	posts    repositories.PostRepository
	likes    repositories.LikeRepository
	activity *ActivityRecorder
	log      *zap.Logger
}

// NewLikeService creates a new LikeService
func NewLikeService(
	tx repositories.Transactor,
	users repositories.UserRepository,
	posts repositories.PostRepository,
	likes repositories.LikeRepository,
	activity *ActivityRecorder,
	log *zap.Logger,
) *LikeService {
	return &LikeService{
		tx:       tx,
		users:    users,
		posts:    posts,
		likes:    likes,
		activity: activity,
		log:      log.Named("like"),
	}
}

// Like records that userID likes postID. Liking one's own post is allowed.
func (s *LikeService) Like(ctx context.Context, userID, postID uint) (*models.Like, error) {
	var like *models.Like

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		user, err := requireUser(ctx, s.users, userID)
		if err != nil {
			return err
		}
		post, err := requirePost(ctx, s.posts, postID)
		if err != nil {
			return err
		}

		edge := &models.Like{UserID: userID, PostID: postID, CreatedAt: time.Now().UTC()}
		switch err := s.likes.CreateLike(ctx, edge); {
		case errors.Is(err, repositories.ErrDuplicate):
			return apperrors.Conflict("post already liked")
		case errors.Is(err, repositories.ErrNotFound):
			return apperrors.NotFound("user or post not found")
		case err != nil:
			return storageFailure("create like", err)
		}

		edge.User, edge.Post = *user, *post
		like = edge
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("post liked", zap.Uint("user_id", userID), zap.Uint("post_id", postID))
	s.activity.LikeCreated(ctx, like)
	return like, nil
}

// Unlike removes the like of userID on postID
func (s *LikeService) Unlike(ctx context.Context, userID, postID uint) error {
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := ensureUserExists(ctx, s.users, userID); err != nil {
			return err
		}
		if _, err := requirePost(ctx, s.posts, postID); err != nil {
			return err
		}

		switch err := s.likes.DeleteLike(ctx, userID, postID); {
		case errors.Is(err, repositories.ErrNotFound):
			return apperrors.InvalidOperation("post not liked")
		case err != nil:
			return storageFailure("delete like", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info("post unliked", zap.Uint("user_id", userID), zap.Uint("post_id", postID))
	s.activity.LikeDeleted(ctx, userID, postID)
	return nil
}

// CountLikes returns the number of likes on postID
func (s *LikeService) CountLikes(ctx context.Context, postID uint) (int64, error) {
	if _, err := requirePost(ctx, s.posts, postID); err != nil {
		return 0, err
	}
	count, err := s.likes.GetLikesCountByPostID(ctx, postID)
	if err != nil {
		return 0, storageFailure("count likes", err)
	}
	return count, nil
}

// HasLiked reports whether userID likes postID
func (s *LikeService) HasLiked(ctx context.Context, userID, postID uint) (bool, error) {
	if err := ensureUserExists(ctx, s.users, userID); err != nil {
		return false, err
	}
	if _, err := requirePost(ctx, s.posts, postID); err != nil {
		return false, err
	}
	liked, err := s.likes.HasUserLikedPost(ctx, userID, postID)
	if err != nil {
		return false, storageFailure("check like", err)
	}
	return liked, nil
}
