package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	NotificationTypeFollow = "follow"
	NotificationTypeLike   = "like"
)

// Notification is stored in MongoDB
type Notification struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Type        string             `json:"type" bson:"type"` // follow, like
	ActorID     uint               `json:"actorId" bson:"actor_id"`
	RecipientID uint               `json:"recipientId" bson:"recipient_id"`
	TargetID    uint               `json:"targetId,omitempty" bson:"target_id,omitempty"` // post id for likes
	Message     string             `json:"message" bson:"message"`
	IsRead      bool               `json:"isRead" bson:"is_read"`
	CreatedAt   time.Time          `json:"createdAt" bson:"created_at"`
}
