package router

import (
	"context"
	"time"

	"github.com/anonto42/socialgraph/backend/internal/handlers"
	"github.com/anonto42/socialgraph/backend/internal/repositories"
	"github.com/anonto42/socialgraph/backend/internal/services"
	"github.com/anonto42/socialgraph/backend/pkg/config"
	"github.com/anonto42/socialgraph/backend/pkg/events"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// stores groups the repositories of one storage backend
type stores struct {
	tx            repositories.Transactor
	users         repositories.UserRepository
	posts         repositories.PostRepository
	follows       repositories.FollowRepository
	likes         repositories.LikeRepository
	comments      repositories.CommentRepository
	notifications repositories.NotificationRepository
}

func newStores(cfg *config.Config, db *config.DB, log *zap.Logger) (*stores, error) {
	if cfg.Storage != config.StoragePostgres && cfg.Storage != config.StorageMemory {
		return nil, errors.Errorf("unknown storage %q", cfg.Storage)
	}
	if db == nil || db.SQL == nil {
		return nil, errors.Errorf("%s storage selected but no connection is open", cfg.Storage)
	}
	if err := repositories.AutoMigrate(db.SQL); err != nil {
		return nil, err
	}
	log.Info("auto-migrations completed", zap.String("storage", cfg.Storage))

	store := repositories.NewStore(db.SQL)
	s := &stores{
		tx:            store,
		users:         store.Users,
		posts:         store.Posts,
		follows:       store.Follows,
		likes:         store.Likes,
		comments:      store.Comments,
		notifications: store.Notifications,
	}

	if db.Mongo != nil {
		repo := repositories.NewMongoNotificationRepository(db.Mongo.Database(cfg.MongoDatabase))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := repo.EnsureIndexes(ctx); err != nil {
			return nil, err
		}
		s.notifications = repo
		log.Info("notifications stored in MongoDB")
	}
	return s, nil
}

// SetupRoutes builds repositories, services and handlers and registers every route
func SetupRoutes(e *echo.Echo, cfg *config.Config, db *config.DB, publisher events.Publisher, log *zap.Logger) error {
	s, err := newStores(cfg, db, log)
	if err != nil {
		return err
	}

	e.GET("/health", handlers.HealthCheck)

	activity := services.NewActivityRecorder(s.notifications, publisher, log)
	userService := services.NewUserService(s.tx, s.users, s.follows, log)
	postService := services.NewPostService(s.tx, s.users, s.posts, log)
	commentService := services.NewCommentService(s.tx, s.users, s.posts, s.comments, log)
	followService := services.NewFollowService(s.tx, s.users, s.follows, activity, log)
	likeService := services.NewLikeService(s.tx, s.users, s.posts, s.likes, activity, log)
	timelineService := services.NewTimelineService(s.users, s.posts, log)

	handlers.NewUserHandler(userService).RegisterUserRoutes(e.Group("/users"))
	handlers.NewPostHandler(postService).RegisterPostRoutes(e.Group("/posts"))
	handlers.NewCommentHandler(commentService).RegisterCommentRoutes(e.Group("/comments"))
	handlers.NewFollowHandler(followService).RegisterFollowRoutes(e.Group("/follows"))
	handlers.NewLikeHandler(likeService).RegisterLikeRoutes(e.Group("/likes"))
	handlers.NewTimelineHandler(timelineService).RegisterTimelineRoutes(e)

	notificationService := services.NewNotificationService(s.users, s.notifications, log)
	handlers.NewNotificationHandler(notificationService).RegisterNotificationRoutes(e.Group("/notifications"))

	log.Info("all routes configured", zap.Int("routes", len(e.Routes())))
	return nil
}
