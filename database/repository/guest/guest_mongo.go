package guestRepo

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

// MongoGuestRepo implements GuestRepository using MongoDB. It holds handles
// to every collection the check-in transaction touches.
type MongoGuestRepo struct {
	coll            *mongo.Collection
	reservationColl *mongo.Collection
	invoiceColl     *mongo.Collection
	roomColl        *mongo.Collection
	decorOrderColl  *mongo.Collection
	inventoryColl   *mongo.Collection
	usageColl       *mongo.Collection
	txnColl         *mongo.Collection
}

// NewMongoGuestRepo creates a new instance of GuestRepository using MongoDB.
func NewMongoGuestRepo() GuestRepository {
	db := database.DB()
	repo := &MongoGuestRepo{
		coll:            db.Collection("guests"),
		reservationColl: db.Collection("reservations"),
		invoiceColl:     db.Collection("invoices"),
		roomColl:        db.Collection("rooms"),
		decorOrderColl:  db.Collection("decor_orders"),
		inventoryColl:   db.Collection("inventory_items"),
		usageColl:       db.Collection("inventory_usage"),
		txnColl:         db.Collection("transactions"),
	}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoGuestRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "room_id", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "check_in_at", Value: 1}, {Key: "check_out_at", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Update replaces an existing guest document.
func (r *MongoGuestRepo) Update(guest *models.Guest) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	guest.UpdatedAt = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": guest.ID}, bson.M{"$set": guest})
	if err != nil {
		return fmt.Errorf("failed to update guest with id %s: %w", guest.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("guest with id %s not found", guest.ID)
	}
	return nil
}

// UpdateSetDocument applies a partial update by id.
func (r *MongoGuestRepo) UpdateSetDocument(id string, updateDoc bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	updateDoc["updated_at"] = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": updateDoc})
	if err != nil {
		return fmt.Errorf("failed to update guest with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("guest with id %s not found", id)
	}
	return nil
}

// GetByID retrieves a guest by its unique ID.
func (r *MongoGuestRepo) GetByID(id string) (*models.Guest, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var guest models.Guest
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&guest); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch guest with id %s: %w", id, err)
	}
	return &guest, nil
}

// GetAll retrieves all guests, newest first.
func (r *MongoGuestRepo) GetAll() ([]models.Guest, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve guests: %w", err)
	}
	defer cursor.Close(ctx)

	out := make([]models.Guest, 0)
	for cursor.Next(ctx) {
		var g models.Guest
		if err := cursor.Decode(&g); err != nil {
			return nil, fmt.Errorf("failed to decode guest: %w", err)
		}
		out = append(out, g)
	}
	return out, nil
}

// CountByRoom counts stays referencing the room.
func (r *MongoGuestRepo) CountByRoom(roomID string) (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"room_id": roomID})
	if err != nil {
		return 0, fmt.Errorf("failed to count guests for room %s: %w", roomID, err)
	}
	return n, nil
}
