package repositories

import (
	"context"
	"time"

	"github.com/anonto42/socialgraph/backend/internal/models"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	CreateNotification(ctx context.Context, notification *models.Notification) error
	GetByRecipientID(ctx context.Context, recipientID uint, limit int64) ([]models.Notification, error)
	MarkAllAsRead(ctx context.Context, recipientID uint) (int64, error)
}

// MongoNotificationRepository implements NotificationRepository for MongoDB
type MongoNotificationRepository struct {
	collection *mongo.Collection
}

// NewMongoNotificationRepository creates a new MongoNotificationRepository
func NewMongoNotificationRepository(db *mongo.Database) *MongoNotificationRepository {
	return &MongoNotificationRepository{collection: db.Collection("notifications")}
}

// EnsureIndexes creates the recipient/recency index used by GetByRecipientID
func (r *MongoNotificationRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "recipient_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	return errors.Wrap(err, "create notification index")
}

func (r *MongoNotificationRepository) CreateNotification(ctx context.Context, notification *models.Notification) error {
	notification.ID = primitive.NewObjectID()
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, notification)
	return errors.Wrap(err, "insert notification")
}

// GetByRecipientID returns the newest notifications of a user
func (r *MongoNotificationRepository) GetByRecipientID(ctx context.Context, recipientID uint, limit int64) ([]models.Notification, error) {
	findOptions := options.Find().SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"recipient_id": recipientID}, findOptions)
	if err != nil {
		return nil, errors.Wrap(err, "find notifications")
	}
	defer cursor.Close(ctx)

	notifications := []models.Notification{}
	if err = cursor.All(ctx, &notifications); err != nil {
		return nil, errors.Wrap(err, "decode notifications")
	}
	return notifications, nil
}

func (r *MongoNotificationRepository) MarkAllAsRead(ctx context.Context, recipientID uint) (int64, error) {
	res, err := r.collection.UpdateMany(ctx,
		bson.M{"recipient_id": recipientID, "is_read": false},
		bson.M{"$set": bson.M{"is_read": true}},
	)
	if err != nil {
		return 0, errors.Wrap(err, "mark notifications read")
	}
	return res.ModifiedCount, nil
}

// notificationRecord is the relational row of a Notification. The id keeps the
// ObjectID hex form so both stores hand out the same kind of identifier.
type notificationRecord struct {
	ID          string    `gorm:"primaryKey;size:24"`
	Type        string    `gorm:"size:20;not null"`
	ActorID     uint      `gorm:"not null"`
	RecipientID uint      `gorm:"not null;index:idx_notifications_recipient_created,priority:1"`
	TargetID    uint
	Message     string    `gorm:"size:255;not null"`
	IsRead      bool      `gorm:"not null"`
	CreatedAt   time.Time `gorm:"index:idx_notifications_recipient_created,priority:2"`
}

func (notificationRecord) TableName() string { return "notifications" }

func (r notificationRecord) toModel() models.Notification {
	id, _ := primitive.ObjectIDFromHex(r.ID)
	return models.Notification{
		ID:          id,
		Type:        r.Type,
		ActorID:     r.ActorID,
		RecipientID: r.RecipientID,
		TargetID:    r.TargetID,
		Message:     r.Message,
		IsRead:      r.IsRead,
		CreatedAt:   r.CreatedAt,
	}
}

// GormNotificationRepository implements NotificationRepository on the SQL store,
// used when MONGO_URI is not set
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewGormNotificationRepository creates a new GormNotificationRepository
func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

func (r *GormNotificationRepository) CreateNotification(ctx context.Context, notification *models.Notification) error {
	notification.ID = primitive.NewObjectID()
	record := notificationRecord{
		ID:          notification.ID.Hex(),
		Type:        notification.Type,
		ActorID:     notification.ActorID,
		RecipientID: notification.RecipientID,
		TargetID:    notification.TargetID,
		Message:     notification.Message,
		IsRead:      notification.IsRead,
		CreatedAt:   notification.CreatedAt,
	}
	if err := conn(ctx, r.db).Create(&record).Error; err != nil {
		return translateError(err, "insert notification")
	}
	notification.CreatedAt = record.CreatedAt
	return nil
}

// GetByRecipientID returns the newest notifications of a user
func (r *GormNotificationRepository) GetByRecipientID(ctx context.Context, recipientID uint, limit int64) ([]models.Notification, error) {
	var records []notificationRecord
	err := conn(ctx, r.db).
		Where("recipient_id = ?", recipientID).
		Order("created_at DESC, id DESC").
		Limit(int(limit)).
		Find(&records).Error
	if err != nil {
		return nil, translateError(err, "find notifications")
	}
	notifications := make([]models.Notification, len(records))
	for i := range records {
		notifications[i] = records[i].toModel()
	}
	return notifications, nil
}

func (r *GormNotificationRepository) MarkAllAsRead(ctx context.Context, recipientID uint) (int64, error) {
	res := conn(ctx, r.db).Model(&notificationRecord{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Update("is_read", true)
	if res.Error != nil {
		return 0, translateError(res.Error, "mark notifications read")
	}
	return res.RowsAffected, nil
}
