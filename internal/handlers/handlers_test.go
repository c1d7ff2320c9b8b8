package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/anonto42/socialgraph/backend/internal/models"
	"github.com/anonto42/socialgraph/backend/internal/repositories"
	"github.com/anonto42/socialgraph/backend/internal/services"
	"github.com/anonto42/socialgraph/backend/pkg/config"
	"github.com/anonto42/socialgraph/backend/validators"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// newTestStore opens a private in-memory SQLite with the full schema
func newTestStore(t *testing.T) *repositories.Store {
	t.Helper()
	db, err := config.InitDB(&config.Config{Storage: config.StorageMemory}, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(db.CloseDB)
	require.NoError(t, repositories.AutoMigrate(db.SQL))
	return repositories.NewStore(db.SQL)
}

type testServer struct {
	e     *echo.Echo
	store *repositories.Store
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	log := zaptest.NewLogger(t)
	store := newTestStore(t)
	activity := services.NewActivityRecorder(store.Notifications, nil, log)

	e := echo.New()
	e.Validator = validators.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	NewUserHandler(services.NewUserService(store, store.Users, store.Follows, log)).RegisterUserRoutes(e.Group("/users"))
	NewPostHandler(services.NewPostService(store, store.Users, store.Posts, log)).RegisterPostRoutes(e.Group("/posts"))
	NewCommentHandler(services.NewCommentService(store, store.Users, store.Posts, store.Comments, log)).RegisterCommentRoutes(e.Group("/comments"))
	NewFollowHandler(services.NewFollowService(store, store.Users, store.Follows, activity, log)).RegisterFollowRoutes(e.Group("/follows"))
	NewLikeHandler(services.NewLikeService(store, store.Users, store.Posts, store.Likes, activity, log)).RegisterLikeRoutes(e.Group("/likes"))
	NewTimelineHandler(services.NewTimelineService(store.Users, store.Posts, log)).RegisterTimelineRoutes(e)
	NewNotificationHandler(services.NewNotificationService(store.Users, store.Notifications, log)).RegisterNotificationRoutes(e.Group("/notifications"))

	return &testServer{e: e, store: store}
}

func (s *testServer) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) mustUser(t *testing.T, username string) uint {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/users/register",
		`{"username":"`+username+`","email":"`+username+`@example.com","firstName":"F","lastName":"L"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var user models.UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	return user.ID
}

func (s *testServer) mustPostAt(t *testing.T, userID uint, content string, at time.Time) uint {
	t.Helper()
	post := &models.Post{UserID: userID, Content: content, CreatedAt: at}
	require.NoError(t, s.store.Posts.CreatePost(context.Background(), post))
	return post.ID
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}
