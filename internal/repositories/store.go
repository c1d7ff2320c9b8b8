package repositories

import (
	"github.com/anonto42/socialgraph/backend/internal/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Store bundles the gorm repositories that share one connection
type Store struct {
	*GormTransactor
	Users         *GormUserRepository
	Posts         *GormPostRepository
	Follows       *GormFollowRepository
	Likes         *GormLikeRepository
	Comments      *GormCommentRepository
	Notifications *GormNotificationRepository
}

// NewStore builds every gorm repository on db
func NewStore(db *gorm.DB) *Store {
	return &Store{
		GormTransactor: NewGormTransactor(db),
		Users:          NewGormUserRepository(db),
		Posts:          NewGormPostRepository(db),
		Follows:        NewGormFollowRepository(db),
		Likes:          NewGormLikeRepository(db),
		Comments:       NewGormCommentRepository(db),
		Notifications:  NewGormNotificationRepository(db),
	}
}

// AutoMigrate creates or updates the relational schema.
// Declaration order matters: foreign keys point at earlier tables.
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Follow{},
		&models.Like{},
		&models.Comment{},
		&notificationRecord{},
	)
	return errors.Wrap(err, "auto migrate")
}
