package repositories

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/anonto42/socialgraph/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB connects to POSTGRES_TEST_CONN_STR and empties every table.
// The database is shared by all tests in this file.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test")
	}
	dsn := os.Getenv("POSTGRES_TEST_CONN_STR")
	if dsn == "" {
		t.Skip("POSTGRES_TEST_CONN_STR not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	require.NoError(t, db.Exec("TRUNCATE notifications, comments, likes, follows, posts, users RESTART IDENTITY CASCADE").Error)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestPostgresFollowInsertIfAbsent(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	users := NewGormUserRepository(db)
	follows := NewGormFollowRepository(db)
	tx := NewGormTransactor(db)

	a := seedUser(t, users, "alice")
	b := seedUser(t, users, "bob")

	err := tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := follows.CreateFollow(ctx, &models.Follow{FollowerID: a.ID, FollowedID: b.ID}); err != nil {
			return err
		}
		// the duplicate must not abort the surrounding transaction
		assert.ErrorIs(t, follows.CreateFollow(ctx, &models.Follow{FollowerID: a.ID, FollowedID: b.ID}), ErrDuplicate)
		ok, err := follows.IsFollowing(ctx, a.ID, b.ID)
		assert.True(t, ok)
		return err
	})
	require.NoError(t, err)

	err = follows.CreateFollow(ctx, &models.Follow{FollowerID: a.ID, FollowedID: 999999})
	assert.ErrorIs(t, err, ErrNotFound)

	followers, err := follows.GetFollowers(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, followers, 1)
	assert.Equal(t, "alice", followers[0].Username)

	count, err := follows.GetFollowingCount(ctx, a.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	require.NoError(t, follows.DeleteFollow(ctx, a.ID, b.ID))
	assert.ErrorIs(t, follows.DeleteFollow(ctx, a.ID, b.ID), ErrNotFound)
}

func TestPostgresTransactionRollsBack(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	users := NewGormUserRepository(db)
	tx := NewGormTransactor(db)

	boom := errors.New("boom")
	err := tx.WithinTransaction(ctx, func(ctx context.Context) error {
		require.NoError(t, users.CreateUser(ctx, &models.User{Username: "ghost", Email: "ghost@example.com", FirstName: "G", LastName: "H"}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	exists, err := users.ExistsByUsername(ctx, "ghost")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestPostgresUniqueUser(t *testing.T) {
	db := openTestDB(t)
	users := NewGormUserRepository(db)
	seedUser(t, users, "alice")

	err := users.CreateUser(context.Background(), &models.User{Username: "alice", Email: "x@example.com", FirstName: "A", LastName: "B"})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestPostgresCascadesAndOrdering(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	users := NewGormUserRepository(db)
	posts := NewGormPostRepository(db)
	likes := NewGormLikeRepository(db)
	comments := NewGormCommentRepository(db)
	follows := NewGormFollowRepository(db)

	a := seedUser(t, users, "alice")
	b := seedUser(t, users, "bob")

	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	first := &models.Post{UserID: a.ID, Content: "first", CreatedAt: at}
	tied := &models.Post{UserID: b.ID, Content: "tied", CreatedAt: at}
	latest := &models.Post{UserID: a.ID, Content: "latest", CreatedAt: at.Add(time.Hour)}
	for _, p := range []*models.Post{first, tied, latest} {
		require.NoError(t, posts.CreatePost(ctx, p))
	}

	require.NoError(t, follows.CreateFollow(ctx, &models.Follow{FollowerID: a.ID, FollowedID: b.ID}))
	got, err := posts.GetTimelinePosts(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, latest.ID, got[0].ID)
	assert.Equal(t, tied.ID, got[1].ID)
	assert.Equal(t, first.ID, got[2].ID)

	require.NoError(t, likes.CreateLike(ctx, &models.Like{UserID: b.ID, PostID: first.ID}))
	assert.ErrorIs(t, likes.CreateLike(ctx, &models.Like{UserID: b.ID, PostID: first.ID}), ErrDuplicate)
	require.NoError(t, comments.CreateComment(ctx, &models.Comment{UserID: b.ID, PostID: first.ID, Content: "nice"}))
	require.NoError(t, follows.CreateFollow(ctx, &models.Follow{FollowerID: b.ID, FollowedID: a.ID}))

	require.NoError(t, users.DeleteUser(ctx, a.ID))

	count, err := likes.GetLikesCountByPostID(ctx, first.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
	left, err := comments.GetCommentsByPostID(ctx, first.ID)
	require.NoError(t, err)
	assert.Empty(t, left)
	following, err := follows.GetFollowingCount(ctx, b.ID)
	require.NoError(t, err)
	assert.Zero(t, following)
	_, err = posts.GetPostByID(ctx, latest.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
