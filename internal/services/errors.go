package services

import (
	"context"
	"unicode/utf8"

	"github.com/anonto42/socialgraph/backend/internal/models"
	"github.com/anonto42/socialgraph/backend/internal/repositories"
	"github.com/anonto42/socialgraph/backend/pkg/apperrors"
	"github.com/pkg/errors"
)

func userNotFound(id uint) error {
	return apperrors.NotFound("user not found with id: %d", id)
}

func postNotFound(id uint) error {
	return apperrors.NotFound("post not found with id: %d", id)
}

func storageFailure(op string, err error) error {
	return apperrors.Unexpected(op, err)
}

// requireUser resolves id or fails with NotFound naming it
func requireUser(ctx context.Context, users repositories.UserRepository, id uint) (*models.User, error) {
	user, err := users.GetUserByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, userNotFound(id)
	}
	if err != nil {
		return nil, storageFailure("load user", err)
	}
	return user, nil
}

func ensureUserExists(ctx context.Context, users repositories.UserRepository, id uint) error {
	ok, err := users.ExistsByID(ctx, id)
	if err != nil {
		return storageFailure("check user", err)
	}
	if !ok {
		return userNotFound(id)
	}
	return nil
}

func requirePost(ctx context.Context, posts repositories.PostRepository, id uint) (*models.Post, error) {
	post, err := posts.GetPostByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, postNotFound(id)
	}
	if err != nil {
		return nil, storageFailure("load post", err)
	}
	return post, nil
}

// checkLength enforces the character bounds of an already trimmed text field
func checkLength(field, value string, min, max int) error {
	n := utf8.RuneCountInString(value)
	switch {
	case n == 0:
		return apperrors.InvalidOperation("%s must not be blank", field)
	case n < min:
		return apperrors.InvalidOperation("%s must be at least %d characters", field, min)
	case n > max:
		return apperrors.InvalidOperation("%s must be at most %d characters", field, max)
	}
	return nil
}
