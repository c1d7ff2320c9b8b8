package services

import (
	"context"
	"fmt"
	"time"

	"github.com/anonto42/socialgraph/backend/internal/models"
	"github.com/anonto42/socialgraph/backend/internal/repositories"
	"github.com/anonto42/socialgraph/backend/pkg/events"
	"go.uber.org/zap"
)

// ActivityRecorder turns committed follow and like changes into
// notifications and broker events. Failures are logged and swallowed: the
// edge change has already been committed.
type ActivityRecorder struct {
	notifications repositories.NotificationRepository
	publisher     events.Publisher
	log           *zap.Logger
}

// NewActivityRecorder creates a new ActivityRecorder. notifications may be
// nil and publisher defaults to events.NoopPublisher.
func NewActivityRecorder(notifications repositories.NotificationRepository, publisher events.Publisher, log *zap.Logger) *ActivityRecorder {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &ActivityRecorder{
		notifications: notifications,
		publisher:     publisher,
		log:           log.Named("activity"),
	}
}

func (r *ActivityRecorder) FollowCreated(ctx context.Context, follow *models.Follow) {
	r.publish(ctx, events.SubjectFollowCreated, events.FollowEvent{
		FollowerID: follow.FollowerID,
		FollowedID: follow.FollowedID,
		OccurredAt: follow.CreatedAt,
	})
	r.notify(ctx, &models.Notification{
		Type:        models.NotificationTypeFollow,
		ActorID:     follow.FollowerID,
		RecipientID: follow.FollowedID,
		Message:     fmt.Sprintf("%s started following you", follow.Follower.Username),
	})
}

func (r *ActivityRecorder) FollowDeleted(ctx context.Context, followerID, followedID uint) {
	r.publish(ctx, events.SubjectFollowDeleted, events.FollowEvent{
		FollowerID: followerID,
		FollowedID: followedID,
		OccurredAt: time.Now(),
	})
}

// LikeCreated notifies the post author unless they liked their own post
func (r *ActivityRecorder) LikeCreated(ctx context.Context, like *models.Like) {
	r.publish(ctx, events.SubjectLikeCreated, events.LikeEvent{
		UserID:     like.UserID,
		PostID:     like.PostID,
		OccurredAt: like.CreatedAt,
	})
	if like.Post.UserID == like.UserID {
		return
	}
	r.notify(ctx, &models.Notification{
		Type:        models.NotificationTypeLike,
		ActorID:     like.UserID,
		RecipientID: like.Post.UserID,
		TargetID:    like.PostID,
		Message:     fmt.Sprintf("%s liked your post", like.User.Username),
	})
}

func (r *ActivityRecorder) LikeDeleted(ctx context.Context, userID, postID uint) {
	r.publish(ctx, events.SubjectLikeDeleted, events.LikeEvent{
		UserID:     userID,
		PostID:     postID,
		OccurredAt: time.Now(),
	})
}

func (r *ActivityRecorder) publish(ctx context.Context, subject string, event any) {
	if err := r.publisher.Publish(ctx, subject, event); err != nil {
		r.log.Warn("publish event failed", zap.String("subject", subject), zap.Error(err))
	}
}

func (r *ActivityRecorder) notify(ctx context.Context, n *models.Notification) {
	if r.notifications == nil {
		return
	}
	n.CreatedAt = time.Now().UTC()
	if err := r.notifications.CreateNotification(ctx, n); err != nil {
		r.log.Warn("create notification failed",
			zap.String("type", n.Type),
			zap.Uint("recipient_id", n.RecipientID),
			zap.Error(err),
		)
	}
}
