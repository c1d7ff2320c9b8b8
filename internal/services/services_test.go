package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/anonto42/socialgraph/backend/internal/models"
	"github.com/anonto42/socialgraph/backend/internal/repositories"
	"github.com/anonto42/socialgraph/backend/pkg/apperrors"
	"github.com/anonto42/socialgraph/backend/pkg/config"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type recordingPublisher struct {
	mu       sync.Mutex
	subjects []string
	err      error
}

func (p *recordingPublisher) Publish(_ context.Context, subject string, _ any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subjects = append(p.subjects, subject)
	return p.err
}

func (p *recordingPublisher) published() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.subjects...)
}

// newTestStore opens a private in-memory SQLite with the full schema
func newTestStore(t *testing.T) *repositories.Store {
	t.Helper()
	db, err := config.InitDB(&config.Config{Storage: config.StorageMemory}, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(db.CloseDB)
	require.NoError(t, repositories.AutoMigrate(db.SQL))
	return repositories.NewStore(db.SQL)
}

type testEnv struct {
	store         *repositories.Store
	publisher     *recordingPublisher
	users         *UserService
	posts         *PostService
	comments      *CommentService
	follows       *FollowService
	likes         *LikeService
	timeline      *TimelineService
	notifications *NotificationService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	log := zaptest.NewLogger(t)
	store := newTestStore(t)
	pub := &recordingPublisher{}
	activity := NewActivityRecorder(store.Notifications, pub, log)

	return &testEnv{
		store:         store,
		publisher:     pub,
		users:         NewUserService(store, store.Users, store.Follows, log),
		posts:         NewPostService(store, store.Users, store.Posts, log),
		comments:      NewCommentService(store, store.Users, store.Posts, store.Comments, log),
		follows:       NewFollowService(store, store.Users, store.Follows, activity, log),
		likes:         NewLikeService(store, store.Users, store.Posts, store.Likes, activity, log),
		timeline:      NewTimelineService(store.Users, store.Posts, log),
		notifications: NewNotificationService(store.Users, store.Notifications, log),
	}
}

func (e *testEnv) mustUser(t *testing.T, username string) *models.User {
	t.Helper()
	user, err := e.users.Register(context.Background(), models.RegisterUserRequest{
		Username:  username,
		Email:     username + "@example.com",
		FirstName: username,
		LastName:  "Test",
	})
	require.NoError(t, err)
	return user
}

// mustPostAt stores a post with a fixed timestamp
func (e *testEnv) mustPostAt(t *testing.T, userID uint, content string, at time.Time) uint {
	t.Helper()
	post := &models.Post{UserID: userID, Content: content, CreatedAt: at}
	require.NoError(t, e.store.Posts.CreatePost(context.Background(), post))
	return post.ID
}

func requireKind(t *testing.T, err error, kind apperrors.Kind) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, kind, apperrors.KindOf(err), "unexpected error: %v", err)
}
