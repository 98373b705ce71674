package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/billmind/go-bill-reminder/internal/domain"
	"github.com/billmind/go-bill-reminder/internal/shared/mongodb"
)

const settingsCollection = "reminder_settings"

// SettingsRepository handles reminder settings data operations
type SettingsRepository struct {
	client *mongodb.MongoClient
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(client *mongodb.MongoClient) *SettingsRepository {
	return &SettingsRepository{client: client}
}

// DefaultSettings returns the settings a fresh account starts with
func DefaultSettings(userID string) *domain.ReminderSettings {
	return &domain.ReminderSettings{
		ID:                 uuid.New().String(),
		UserID:             userID,
		LocalNotifications: true,
		WhatsAppEnabled:    false,
		CallEnabled:        false,
		SMSEnabled:         false,
		DaysBefore:         3,
		PreferredTime:      "09:00",
	}
}

// FindByUserID returns the settings row for a user. Returns nil when the row
// is absent; the reminder evaluator skips such users, endpoint handlers
// lazily create defaults instead.
func (r *SettingsRepository) FindByUserID(ctx context.Context, userID string) (*domain.ReminderSettings, error) {
	var settings domain.ReminderSettings
	err := r.client.Collection(settingsCollection).FindOne(ctx, bson.M{"user_id": userID}).Decode(&settings)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// Create inserts a settings row
func (r *SettingsRepository) Create(ctx context.Context, settings *domain.ReminderSettings) error {
	if settings.ID == "" {
		settings.ID = uuid.New().String()
	}
	settings.CreatedAt = time.Now()

	_, err := r.client.Collection(settingsCollection).InsertOne(ctx, settings)
	return err
}

// Upsert writes the settings row for a user, creating it when absent
func (r *SettingsRepository) Upsert(ctx context.Context, settings *domain.ReminderSettings) error {
	filter := bson.M{"user_id": settings.UserID}
	update := bson.M{
		"$set": bson.M{
			"local_notifications": settings.LocalNotifications,
			"whatsapp_enabled":    settings.WhatsAppEnabled,
			"call_enabled":        settings.CallEnabled,
			"sms_enabled":         settings.SMSEnabled,
			"days_before":         settings.DaysBefore,
			"preferred_time":      settings.PreferredTime,
		},
		"$setOnInsert": bson.M{
			"_id":        uuid.New().String(),
			"created_at": time.Now(),
		},
	}
	opts := options.Update().SetUpsert(true)

	_, err := r.client.Collection(settingsCollection).UpdateOne(ctx, filter, update, opts)
	return err
}
