package services

import (
	"context"
	"errors"
	"testing"

	"github.com/anonto42/socialgraph/backend/internal/models"
	"github.com/anonto42/socialgraph/backend/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type failingNotifications struct{}

func (failingNotifications) CreateNotification(context.Context, *models.Notification) error {
	return errors.New("mongo unavailable")
}

func (failingNotifications) GetByRecipientID(context.Context, uint, int64) ([]models.Notification, error) {
	return nil, errors.New("mongo unavailable")
}

func (failingNotifications) MarkAllAsRead(context.Context, uint) (int64, error) {
	return 0, errors.New("mongo unavailable")
}

func TestActivityFailuresDoNotFailFollow(t *testing.T) {
	log := zaptest.NewLogger(t)
	store := newTestStore(t)
	pub := &recordingPublisher{err: errors.New("nats down")}
	activity := NewActivityRecorder(failingNotifications{}, pub, log)
	users := NewUserService(store, store.Users, store.Follows, log)
	follows := NewFollowService(store, store.Users, store.Follows, activity, log)

	ctx := context.Background()
	a, err := users.Register(ctx, models.RegisterUserRequest{Username: "alice", Email: "a@example.com", FirstName: "A", LastName: "A"})
	require.NoError(t, err)
	b, err := users.Register(ctx, models.RegisterUserRequest{Username: "bob", Email: "b@example.com", FirstName: "B", LastName: "B"})
	require.NoError(t, err)

	_, err = follows.Follow(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.Len(t, pub.published(), 1)

	ok, err := follows.IsFollowing(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	notifications := NewNotificationService(store.Users, failingNotifications{}, log)
	_, err = notifications.List(ctx, b.ID, 5)
	requireKind(t, err, apperrors.KindUnexpected)
}

func TestNotificationsListAndMarkRead(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	target := env.mustUser(t, "target")

	for _, name := range []string{"u1", "u2", "u3"} {
		u := env.mustUser(t, name)
		_, err := env.follows.Follow(ctx, u.ID, target.ID)
		require.NoError(t, err)
	}

	latest, err := env.notifications.List(ctx, target.ID, 2)
	require.NoError(t, err)
	require.Len(t, latest, 2)
	assert.Equal(t, "u3 started following you", latest[0].Message)
	assert.Equal(t, "u2 started following you", latest[1].Message)

	n, err := env.notifications.MarkAllRead(ctx, target.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	all, err := env.notifications.List(ctx, target.ID, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	for _, notification := range all {
		assert.True(t, notification.IsRead)
	}

	_, err = env.notifications.List(ctx, 999, 0)
	requireKind(t, err, apperrors.KindNotFound)
}
