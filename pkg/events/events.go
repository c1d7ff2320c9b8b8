package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/pkg/errors"
)

const (
	SubjectFollowCreated = "social.follow.created"
	SubjectFollowDeleted = "social.follow.deleted"
	SubjectLikeCreated   = "social.like.created"
	SubjectLikeDeleted   = "social.like.deleted"
)

// FollowEvent is published on the follow subjects
type FollowEvent struct {
	FollowerID uint      `json:"follower_id"`
	FollowedID uint      `json:"followed_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// LikeEvent is published on the like subjects
type LikeEvent struct {
	UserID     uint      `json:"user_id"`
	PostID     uint      `json:"post_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher sends domain events to the broker
type Publisher interface {
	Publish(ctx context.Context, subject string, event any) error
}

// NatsPublisher publishes JSON encoded events on a NATS connection
type NatsPublisher struct {
	nc *nats.Conn
}

// NewNatsPublisher creates a new NatsPublisher
func NewNatsPublisher(nc *nats.Conn) *NatsPublisher {
	return &NatsPublisher{nc: nc}
}

func (p *NatsPublisher) Publish(ctx context.Context, subject string, event any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "marshal event")
	}

	msg := &nats.Msg{
		Subject: subject,
		Data:    data,
		Header:  nats.Header{},
	}
	// lets JetStream consumers drop redeliveries
	msg.Header.Set(nats.MsgIdHdr, uuid.NewString())
	msg.Header.Set("Content-Type", "application/json")

	return errors.Wrapf(p.nc.PublishMsg(msg), "publish %s", subject)
}

// NoopPublisher drops every event. Used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, string, any) error { return nil }
