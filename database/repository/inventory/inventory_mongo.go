package inventoryRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"innkeep/database"
	"innkeep/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrStockFloor: a negative adjustment would drive stock below zero.
var ErrStockFloor = errors.New("adjustment would drive stock negative")

// InventoryRepository defines data access for tracked stock items and their
// usage log.
type InventoryRepository interface {
	// CreateItem inserts a stock item.
	CreateItem(item *models.InventoryItem) error
	// GetItemByID retrieves an item; nil when absent.
	GetItemByID(id string) (*models.InventoryItem, error)
	// GetAllItems retrieves all items.
	GetAllItems() ([]models.InventoryItem, error)
	// GetDefaultCheckInItems returns active items auto-issued at check-in.
	GetDefaultCheckInItems() ([]models.InventoryItem, error)
	// AdjustStock applies a signed stock delta; negative deltas are guarded
	// by a stock floor.
	AdjustStock(id string, delta int64) error
	// RecordUsage appends a usage entry.
	RecordUsage(usage *models.InventoryUsage) error
	// GetUsage returns usage entries, newest first, optionally by guest.
	GetUsage(guestID string) ([]models.InventoryUsage, error)
}

// MongoInventoryRepo implements InventoryRepository using MongoDB.
type MongoInventoryRepo struct {
	itemColl  *mongo.Collection
	usageColl *mongo.Collection
}

// NewMongoInventoryRepo creates a new instance of InventoryRepository using MongoDB.
func NewMongoInventoryRepo() InventoryRepository {
	db := database.DB()
	repo := &MongoInventoryRepo{
		itemColl:  db.Collection("inventory_items"),
		usageColl: db.Collection("inventory_usage"),
	}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoInventoryRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	if _, err := r.itemColl.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
	}); err != nil {
		return fmt.Errorf("failed to create item indexes: %w", err)
	}
	if _, err := r.usageColl.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "guest_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}); err != nil {
		return fmt.Errorf("failed to create usage indexes: %w", err)
	}
	return nil
}

// CreateItem inserts a stock item document.
func (r *MongoInventoryRepo) CreateItem(item *models.InventoryItem) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now

	if _, err := r.itemColl.InsertOne(ctx, item); err != nil {
		return fmt.Errorf("failed to create inventory item: %w", err)
	}
	return nil
}

// GetItemByID retrieves an item by its unique ID.
func (r *MongoInventoryRepo) GetItemByID(id string) (*models.InventoryItem, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var item models.InventoryItem
	if err := r.itemColl.FindOne(ctx, bson.M{"id": id}).Decode(&item); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch inventory item with id %s: %w", id, err)
	}
	return &item, nil
}

// GetAllItems retrieves all items.
func (r *MongoInventoryRepo) GetAllItems() ([]models.InventoryItem, error) {
	return r.findItems(bson.M{})
}

// GetDefaultCheckInItems returns active items auto-issued at check-in.
func (r *MongoInventoryRepo) GetDefaultCheckInItems() ([]models.InventoryItem, error) {
	return r.findItems(bson.M{"active": true, "default_checkin_qty": bson.M{"$gt": 0}})
}

func (r *MongoInventoryRepo) findItems(filter bson.M) ([]models.InventoryItem, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.itemColl.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve inventory items: %w", err)
	}
	defer cursor.Close(ctx)

	out := make([]models.InventoryItem, 0)
	for cursor.Next(ctx) {
		var item models.InventoryItem
		if err := cursor.Decode(&item); err != nil {
			return nil, fmt.Errorf("failed to decode inventory item: %w", err)
		}
		out = append(out, item)
	}
	return out, nil
}

// AdjustStock applies a signed stock delta with a zero floor.
func (r *MongoInventoryRepo) AdjustStock(id string, delta int64) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	if delta < 0 {
		filter["stock"] = bson.M{"$gte": -delta}
	}
	result, err := r.itemColl.UpdateOne(ctx, filter,
		bson.M{"$inc": bson.M{"stock": delta}, "$set": bson.M{"updated_at": time.Now()}})
	if err != nil {
		return fmt.Errorf("failed to adjust stock for item %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		if delta < 0 {
			return ErrStockFloor
		}
		return fmt.Errorf("inventory item with id %s not found", id)
	}
	return nil
}

// RecordUsage appends a usage entry.
func (r *MongoInventoryRepo) RecordUsage(usage *models.InventoryUsage) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	usage.CreatedAt = time.Now()
	if _, err := r.usageColl.InsertOne(ctx, usage); err != nil {
		return fmt.Errorf("failed to record inventory usage: %w", err)
	}
	return nil
}

// GetUsage returns usage entries, newest first.
func (r *MongoInventoryRepo) GetUsage(guestID string) ([]models.InventoryUsage, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{}
	if guestID != "" {
		filter["guest_id"] = guestID
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.usageColl.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve inventory usage: %w", err)
	}
	defer cursor.Close(ctx)

	out := make([]models.InventoryUsage, 0)
	for cursor.Next(ctx) {
		var u models.InventoryUsage
		if err := cursor.Decode(&u); err != nil {
			return nil, fmt.Errorf("failed to decode inventory usage: %w", err)
		}
		out = append(out, u)
	}
	return out, nil
}
