package services

import (
	"context"
	"strings"
	"time"

	"github.com/anonto42/socialgraph/backend/internal/models"
	"github.com/anonto42/socialgraph/backend/internal/repositories"
	"github.com/anonto42/socialgraph/backend/pkg/apperrors"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// UserService is the identity store collaborator: registration, lookup,
// email change and deletion.
type UserService struct {
	tx      repositories.Transactor
	users   repositories.UserRepository
	follows repositories.FollowRepository
	log     *zap.Logger
}

// NewUserService creates a new UserService
func NewUserService(
	tx repositories.Transactor,
	users repositories.UserRepository,
	follows repositories.FollowRepository,
	log *zap.Logger,
) *UserService {
	return &UserService{
		tx:      tx,
		users:   users,
		follows: follows,
		log:     log.Named("user"),
	}
}

// Register creates a user with a unique username and email
func (s *UserService) Register(ctx context.Context, req models.RegisterUserRequest) (*models.User, error) {
	req.Normalize()
	for _, f := range []struct {
		name, value string
		min, max    int
	}{
		{"username", req.Username, 3, 30},
		{"firstName", req.FirstName, 1, 50},
		{"lastName", req.LastName, 1, 100},
	} {
		if err := checkLength(f.name, f.value, f.min, f.max); err != nil {
			return nil, err
		}
	}

	user := &models.User{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		CreatedAt: time.Now().UTC(),
	}

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		taken, err := s.users.ExistsByUsername(ctx, user.Username)
		if err != nil {
			return storageFailure("check username", err)
		}
		if taken {
			return apperrors.Conflict("username already exists")
		}
		taken, err = s.users.ExistsByEmail(ctx, user.Email)
		if err != nil {
			return storageFailure("check email", err)
		}
		if taken {
			return apperrors.Conflict("email already registered")
		}

		switch err := s.users.CreateUser(ctx, user); {
		case errors.Is(err, repositories.ErrDuplicate):
			return apperrors.Conflict("username or email already exists")
		case err != nil:
			return storageFailure("create user", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("user registered", zap.Uint("user_id", user.ID), zap.String("username", user.Username))
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.users.GetUsers(ctx)
	if err != nil {
		return nil, storageFailure("list users", err)
	}
	return users, nil
}

// GetProfile returns the user with its follower and following counts
func (s *UserService) GetProfile(ctx context.Context, id uint) (*models.UserProfile, error) {
	user, err := requireUser(ctx, s.users, id)
	if err != nil {
		return nil, err
	}

	profile := &models.UserProfile{
		UserResponse: user.ToResponse(),
		FirstName:    user.FirstName,
		LastName:     user.LastName,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		count, err := s.follows.GetFollowersCount(gctx, id)
		profile.FollowersCount = count
		return err
	})
	g.Go(func() error {
		count, err := s.follows.GetFollowingCount(gctx, id)
		profile.FollowingCount = count
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, storageFailure("count follows", err)
	}
	return profile, nil
}

// UpdateEmail changes the only mutable field of a user
func (s *UserService) UpdateEmail(ctx context.Context, id uint, email string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user *models.User
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		switch err := s.users.UpdateEmail(ctx, id, email); {
		case errors.Is(err, repositories.ErrNotFound):
			return userNotFound(id)
		case errors.Is(err, repositories.ErrDuplicate):
			return apperrors.Conflict("email already registered")
		case err != nil:
			return storageFailure("update email", err)
		}
		var err error
		user, err = requireUser(ctx, s.users, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes a user together with its follows, likes, posts and comments
func (s *UserService) Delete(ctx context.Context, id uint) error {
	switch err := s.users.DeleteUser(ctx, id); {
	case errors.Is(err, repositories.ErrNotFound):
		return userNotFound(id)
	case err != nil:
		return storageFailure("delete user", err)
	}
	s.log.Info("user deleted", zap.Uint("user_id", id))
	return nil
}
