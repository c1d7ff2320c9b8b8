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
)

const maxPostLength = 500

// PostService is the content store collaborator
type PostService struct {
	tx    repositories.Transactor
	users repositories.UserRepository
	posts repositories.PostRepository
	log   *zap.Logger
}

// NewPostService creates a new PostService
func NewPostService(
	tx repositories.Transactor,
	users repositories.UserRepository,
	posts repositories.PostRepository,
	log *zap.Logger,
) *PostService {
	return &PostService{tx: tx, users: users, posts: posts, log: log.Named("post")}
}

// Create publishes a post authored by userID. CreatedAt is fixed here.
func (s *PostService) Create(ctx context.Context, userID uint, content string) (*models.PostResponse, error) {
	content = strings.TrimSpace(content)
	if err := checkLength("content", content, 1, maxPostLength); err != nil {
		return nil, err
	}
	author, err := requireUser(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		UserID:    userID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	switch err := s.posts.CreatePost(ctx, post); {
	case errors.Is(err, repositories.ErrNotFound):
		return nil, userNotFound(userID)
	case err != nil:
		return nil, storageFailure("create post", err)
	}

	s.log.Info("post created", zap.Uint("post_id", post.ID), zap.Uint("user_id", userID))
	return &models.PostResponse{
		ID:        post.ID,
		AuthorID:  post.UserID,
		Username:  author.Username,
		Content:   post.Content,
		CreatedAt: post.CreatedAt,
	}, nil
}

// List returns every post, newest first
func (s *PostService) List(ctx context.Context) ([]models.PostResponse, error) {
	posts, err := s.posts.GetAllPosts(ctx)
	if err != nil {
		return nil, storageFailure("list posts", err)
	}
	return toPostResponses(ctx, s.users, posts)
}

func (s *PostService) Get(ctx context.Context, id uint) (*models.PostResponse, error) {
	post, err := requirePost(ctx, s.posts, id)
	if err != nil {
		return nil, err
	}
	out, err := toPostResponses(ctx, s.users, []models.Post{*post})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

// ByAuthor returns the posts of userID, newest first
func (s *PostService) ByAuthor(ctx context.Context, userID uint) ([]models.PostResponse, error) {
	if err := ensureUserExists(ctx, s.users, userID); err != nil {
		return nil, err
	}
	posts, err := s.posts.GetPostsByUserID(ctx, userID)
	if err != nil {
		return nil, storageFailure("list user posts", err)
	}
	return toPostResponses(ctx, s.users, posts)
}

// Update replaces the content of a post owned by userID
func (s *PostService) Update(ctx context.Context, id, userID uint, content string) (*models.PostResponse, error) {
	content = strings.TrimSpace(content)
	if err := checkLength("content", content, 1, maxPostLength); err != nil {
		return nil, err
	}
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.requireOwner(ctx, id, userID); err != nil {
			return err
		}
		if err := s.posts.UpdatePostContent(ctx, id, content); err != nil {
			return storageFailure("update post", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete removes a post owned by userID, along with its likes and comments
func (s *PostService) Delete(ctx context.Context, id, userID uint) error {
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.requireOwner(ctx, id, userID); err != nil {
			return err
		}
		if err := s.posts.DeletePost(ctx, id); err != nil {
			return storageFailure("delete post", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.log.Info("post deleted", zap.Uint("post_id", id), zap.Uint("user_id", userID))
	return nil
}

func (s *PostService) requireOwner(ctx context.Context, postID, userID uint) error {
	post, err := requirePost(ctx, s.posts, postID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return apperrors.Forbidden("you can only modify your own posts")
	}
	return nil
}
