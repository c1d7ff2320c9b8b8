package services

import (
	"context"
	"testing"
	"time"

	"github.com/anonto42/socialgraph/backend/internal/models"
	"github.com/anonto42/socialgraph/backend/pkg/apperrors"
	"github.com/anonto42/socialgraph/backend/pkg/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikeTwiceThenUnlikeTwice(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.mustUser(t, "alice")
	bob := env.mustUser(t, "bob")
	postID := env.mustPostAt(t, bob.ID, "hello", time.Now())

	like, err := env.likes.Like(ctx, alice.ID, postID)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, like.UserID)
	assert.Equal(t, postID, like.PostID)

	_, err = env.likes.Like(ctx, alice.ID, postID)
	requireKind(t, err, apperrors.KindConflict)
	assert.Contains(t, err.Error(), "post already liked")

	count, err := env.likes.CountLikes(ctx, postID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, env.likes.Unlike(ctx, alice.ID, postID))

	err = env.likes.Unlike(ctx, alice.ID, postID)
	requireKind(t, err, apperrors.KindInvalidOperation)
	assert.Contains(t, err.Error(), "post not liked")

	count, err = env.likes.CountLikes(ctx, postID)
	require.NoError(t, err)
	assert.Zero(t, count)

	assert.Equal(t,
		[]string{events.SubjectLikeCreated, events.SubjectLikeDeleted},
		env.publisher.published(),
	)
}

func TestLikeNotifiesAuthor(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.mustUser(t, "alice")
	bob := env.mustUser(t, "bob")
	postID := env.mustPostAt(t, bob.ID, "hello", time.Now())

	_, err := env.likes.Like(ctx, alice.ID, postID)
	require.NoError(t, err)

	notifications, err := env.notifications.List(ctx, bob.ID, 10)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotificationTypeLike, notifications[0].Type)
	assert.Equal(t, postID, notifications[0].TargetID)
	assert.Equal(t, "alice liked your post", notifications[0].Message)
}

func TestLikeOwnPost(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.mustUser(t, "alice")
	postID := env.mustPostAt(t, alice.ID, "mine", time.Now())

	_, err := env.likes.Like(ctx, alice.ID, postID)
	require.NoError(t, err)

	liked, err := env.likes.HasLiked(ctx, alice.ID, postID)
	require.NoError(t, err)
	assert.True(t, liked)

	notifications, err := env.notifications.List(ctx, alice.ID, 10)
	require.NoError(t, err)
	assert.Empty(t, notifications)
}

func TestLikeUnknownTargets(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.mustUser(t, "alice")
	postID := env.mustPostAt(t, alice.ID, "hello", time.Now())

	_, err := env.likes.Like(ctx, 999, postID)
	requireKind(t, err, apperrors.KindNotFound)
	assert.Contains(t, err.Error(), "user not found with id: 999")

	_, err = env.likes.Like(ctx, alice.ID, 50)
	requireKind(t, err, apperrors.KindNotFound)
	assert.Contains(t, err.Error(), "post not found with id: 50")

	err = env.likes.Unlike(ctx, alice.ID, 50)
	requireKind(t, err, apperrors.KindNotFound)

	_, err = env.likes.CountLikes(ctx, 50)
	requireKind(t, err, apperrors.KindNotFound)

	_, err = env.likes.HasLiked(ctx, 999, postID)
	requireKind(t, err, apperrors.KindNotFound)
}

func TestDeletingPostRemovesLikes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.mustUser(t, "alice")
	bob := env.mustUser(t, "bob")
	postID := env.mustPostAt(t, bob.ID, "hello", time.Now())

	_, err := env.likes.Like(ctx, alice.ID, postID)
	require.NoError(t, err)

	require.NoError(t, env.posts.Delete(ctx, postID, bob.ID))

	liked, err := env.store.Likes.HasUserLikedPost(ctx, alice.ID, postID)
	require.NoError(t, err)
	assert.False(t, liked)

	_, err = env.likes.CountLikes(ctx, postID)
	requireKind(t, err, apperrors.KindNotFound)
}
