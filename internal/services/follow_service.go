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

// FollowService owns the directed follow graph between users
type FollowService struct {
	tx       repositories.Transactor
	users    repositories.UserRepository
	follows  repositories.FollowRepository
	activity *ActivityRecorder
	log      *zap.Logger
}

// NewFollowService creates a new FollowService
func NewFollowService(
	tx repositories.Transactor,
	users repositories.UserRepository,
	follows repositories.FollowRepository,
	activity *ActivityRecorder,
	log *zap.Logger,
) *FollowService {
	return &FollowService{
		tx:       tx,
		users:    users,
		follows:  follows,
		activity: activity,
		log:      log.Named("follow"),
	}
}

// Follow creates the edge followerID -> followedID. Both users must exist,
// they must differ and the edge must not exist yet.
func (s *FollowService) Follow(ctx context.Context, followerID, followedID uint) (*models.Follow, error) {
	var follow *models.Follow

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		follower, err := requireUser(ctx, s.users, followerID)
		if err != nil {
			return err
		}
		followed, err := requireUser(ctx, s.users, followedID)
		if err != nil {
			return err
		}
		if followerID == followedID {
			return apperrors.InvalidOperation("cannot follow self")
		}

		edge := &models.Follow{
			FollowerID: followerID,
			FollowedID: followedID,
			CreatedAt:  time.Now().UTC(),
		}
		switch err := s.follows.CreateFollow(ctx, edge); {
		case errors.Is(err, repositories.ErrDuplicate):
			return apperrors.Conflict("already following this user")
		case errors.Is(err, repositories.ErrNotFound):
			// an endpoint was deleted after it was resolved
			return apperrors.NotFound("user not found")
		case err != nil:
			return storageFailure("create follow", err)
		}

		edge.Follower, edge.Followed = *follower, *followed
		follow = edge
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("user followed", zap.Uint("follower_id", followerID), zap.Uint("followed_id", followedID))
	s.activity.FollowCreated(ctx, follow)
	return follow, nil
}

// Unfollow removes the edge followerID -> followedID
func (s *FollowService) Unfollow(ctx context.Context, followerID, followedID uint) error {
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := ensureUserExists(ctx, s.users, followerID); err != nil {
			return err
		}
		if err := ensureUserExists(ctx, s.users, followedID); err != nil {
			return err
		}

		switch err := s.follows.DeleteFollow(ctx, followerID, followedID); {
		case errors.Is(err, repositories.ErrNotFound):
			return apperrors.InvalidOperation("not following this user")
		case err != nil:
			return storageFailure("delete follow", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info("user unfollowed", zap.Uint("follower_id", followerID), zap.Uint("followed_id", followedID))
	s.activity.FollowDeleted(ctx, followerID, followedID)
	return nil
}

// IsFollowing reports whether the edge followerID -> followedID exists.
// Both users must exist.
func (s *FollowService) IsFollowing(ctx context.Context, followerID, followedID uint) (bool, error) {
	if err := ensureUserExists(ctx, s.users, followerID); err != nil {
		return false, err
	}
	if err := ensureUserExists(ctx, s.users, followedID); err != nil {
		return false, err
	}
	ok, err := s.follows.IsFollowing(ctx, followerID, followedID)
	if err != nil {
		return false, storageFailure("check follow", err)
	}
	return ok, nil
}

// Followers returns the users following userID, ordered by id
func (s *FollowService) Followers(ctx context.Context, userID uint) ([]models.User, error) {
	if err := ensureUserExists(ctx, s.users, userID); err != nil {
		return nil, err
	}
	users, err := s.follows.GetFollowers(ctx, userID)
	if err != nil {
		return nil, storageFailure("get followers", err)
	}
	return users, nil
}

// Following returns the users userID follows, ordered by id
func (s *FollowService) Following(ctx context.Context, userID uint) ([]models.User, error) {
	if err := ensureUserExists(ctx, s.users, userID); err != nil {
		return nil, err
	}
	users, err := s.follows.GetFollowing(ctx, userID)
	if err != nil {
		return nil, storageFailure("get following", err)
	}
	return users, nil
}

func (s *FollowService) CountFollowers(ctx context.Context, userID uint) (int64, error) {
	if err := ensureUserExists(ctx, s.users, userID); err != nil {
		return 0, err
	}
	count, err := s.follows.GetFollowersCount(ctx, userID)
	if err != nil {
		return 0, storageFailure("count followers", err)
	}
	return count, nil
}

func (s *FollowService) CountFollowing(ctx context.Context, userID uint) (int64, error) {
	if err := ensureUserExists(ctx, s.users, userID); err != nil {
		return 0, err
	}
	count, err := s.follows.GetFollowingCount(ctx, userID)
	if err != nil {
		return 0, storageFailure("count following", err)
	}
	return count, nil
}
