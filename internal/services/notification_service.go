package services

import (
	"context"

	"github.com/anonto42/socialgraph/backend/internal/models"
	"github.com/anonto42/socialgraph/backend/internal/repositories"
	"go.uber.org/zap"
)

const (
	DefaultNotificationLimit = 20
	MaxNotificationLimit     = 100
)

// NotificationService reads the notifications written by ActivityRecorder
type NotificationService struct {
	users         repositories.UserRepository
	notifications repositories.NotificationRepository
	log           *zap.Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(users repositories.UserRepository, notifications repositories.NotificationRepository, log *zap.Logger) *NotificationService {
	return &NotificationService{users: users, notifications: notifications, log: log.Named("notification")}
}

// List returns the newest notifications of userID. limit is clamped to
// [1, MaxNotificationLimit], zero or less meaning DefaultNotificationLimit.
func (s *NotificationService) List(ctx context.Context, userID uint, limit int) ([]models.Notification, error) {
	if err := ensureUserExists(ctx, s.users, userID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultNotificationLimit
	}
	if limit > MaxNotificationLimit {
		limit = MaxNotificationLimit
	}
	notifications, err := s.notifications.GetByRecipientID(ctx, userID, int64(limit))
	if err != nil {
		return nil, storageFailure("list notifications", err)
	}
	return notifications, nil
}

// MarkAllRead flags every unread notification of userID as read
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	if err := ensureUserExists(ctx, s.users, userID); err != nil {
		return 0, err
	}
	n, err := s.notifications.MarkAllAsRead(ctx, userID)
	if err != nil {
		return 0, storageFailure("mark notifications read", err)
	}
	s.log.Debug("notifications read", zap.Uint("user_id", userID), zap.Int64("count", n))
	return n, nil
}
