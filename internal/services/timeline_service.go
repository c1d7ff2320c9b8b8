package services

import (
	"context"
	"sort"

	"github.com/anonto42/socialgraph/backend/internal/models"
	"github.com/anonto42/socialgraph/backend/internal/repositories"
	"go.uber.org/zap"
)

// TimelineService assembles a user's feed at read time from the follow
// graph and the content store.
type TimelineService struct {
	users repositories.UserRepository
	posts repositories.PostRepository
	log   *zap.Logger
}

// NewTimelineService creates a new TimelineService
func NewTimelineService(users repositories.UserRepository, posts repositories.PostRepository, log *zap.Logger) *TimelineService {
	return &TimelineService{users: users, posts: posts, log: log.Named("timeline")}
}

// GetTimeline returns the posts of userID and of everyone userID follows,
// newest first. Posts sharing a timestamp are ordered by id, highest first.
func (s *TimelineService) GetTimeline(ctx context.Context, userID uint) ([]models.PostResponse, error) {
	if err := ensureUserExists(ctx, s.users, userID); err != nil {
		return nil, err
	}

	posts, err := s.posts.GetTimelinePosts(ctx, userID)
	if err != nil {
		return nil, storageFailure("load timeline posts", err)
	}
	sortByRecency(posts)

	s.log.Debug("timeline assembled", zap.Uint("user_id", userID), zap.Int("posts", len(posts)))
	return toPostResponses(ctx, s.users, posts)
}

func sortByRecency(posts []models.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		if !posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}
		return posts[i].ID > posts[j].ID
	})
}

// toPostResponses joins posts with their authors in one batched lookup
func toPostResponses(ctx context.Context, users repositories.UserRepository, posts []models.Post) ([]models.PostResponse, error) {
	out := make([]models.PostResponse, 0, len(posts))
	if len(posts) == 0 {
		return out, nil
	}

	seen := make(map[uint]struct{}, len(posts))
	authorIDs := make([]uint, 0, len(posts))
	for _, p := range posts {
		if _, ok := seen[p.UserID]; !ok {
			seen[p.UserID] = struct{}{}
			authorIDs = append(authorIDs, p.UserID)
		}
	}

	authors, err := users.GetUsersByIDs(ctx, authorIDs)
	if err != nil {
		return nil, storageFailure("load post authors", err)
	}
	usernames := make(map[uint]string, len(authors))
	for _, a := range authors {
		usernames[a.ID] = a.Username
	}

	for _, p := range posts {
		out = append(out, models.PostResponse{
			ID:        p.ID,
			AuthorID:  p.UserID,
			Username:  usernames[p.UserID],
			Content:   p.Content,
			CreatedAt: p.CreatedAt,
		})
	}
	return out, nil
}
