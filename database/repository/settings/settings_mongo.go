package settingsRepo

import (
	"context"
	"fmt"
	"time"

	"innkeep/database"
	"innkeep/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SettingsRepository defines access to the single billing settings document.
type SettingsRepository interface {
	// Get retrieves the settings document; nil when none exists yet.
	Get() (*models.BillingSettings, error)
	// Upsert writes the settings document.
	Upsert(s *models.BillingSettings) error
}

// MongoSettingsRepo implements SettingsRepository using MongoDB.
type MongoSettingsRepo struct {
	coll *mongo.Collection
}

// NewMongoSettingsRepo creates a new instance of SettingsRepository using MongoDB.
func NewMongoSettingsRepo() SettingsRepository {
	return &MongoSettingsRepo{coll: database.DB().Collection("settings")}
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// Get retrieves the settings document.
func (r *MongoSettingsRepo) Get() (*models.BillingSettings, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var s models.BillingSettings
	if err := r.coll.FindOne(ctx, bson.M{"id": models.SettingsDocID}).Decode(&s); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch billing settings: %w", err)
	}
	return &s, nil
}

// Upsert writes the settings document.
func (r *MongoSettingsRepo) Upsert(s *models.BillingSettings) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	s.ID = models.SettingsDocID
	s.UpdatedAt = time.Now()
	opts := options.Update().SetUpsert(true)
	if _, err := r.coll.UpdateOne(ctx, bson.M{"id": models.SettingsDocID},
		bson.M{"$set": s}, opts); err != nil {
		return fmt.Errorf("failed to upsert billing settings: %w", err)
	}
	return nil
}
