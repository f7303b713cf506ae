package discountRepo

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

// DiscountRepository defines data access for discount windows and promo codes.
type DiscountRepository interface {
	// CreateDiscount inserts a discount window.
	CreateDiscount(d *models.Discount) error
	// GetActiveDiscount returns the discount whose window contains the given
	// instant; nil when none.
	GetActiveDiscount(at time.Time) (*models.Discount, error)
	// GetAllDiscounts retrieves all discount windows.
	GetAllDiscounts() ([]models.Discount, error)
	// DeactivateDiscount soft-deletes a discount window.
	DeactivateDiscount(id string) error

	// CreatePromo inserts a promo code.
	CreatePromo(p *models.PromoCode) error
	// GetPromoByCode retrieves a promo code; nil when absent.
	GetPromoByCode(code string) (*models.PromoCode, error)
	// GetAllPromos retrieves all promo codes.
	GetAllPromos() ([]models.PromoCode, error)
	// DeactivatePromo soft-deletes a promo code.
	DeactivatePromo(id string) error
	// IncrementPromoUsage bumps the redemption counter.
	IncrementPromoUsage(id string) error
}

// MongoDiscountRepo implements DiscountRepository using MongoDB.
type MongoDiscountRepo struct {
	discountColl *mongo.Collection
	promoColl    *mongo.Collection
}

// NewMongoDiscountRepo creates a new instance of DiscountRepository using MongoDB.
func NewMongoDiscountRepo() DiscountRepository {
	db := database.DB()
	repo := &MongoDiscountRepo{
		discountColl: db.Collection("discounts"),
		promoColl:    db.Collection("promo_codes"),
	}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoDiscountRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	if _, err := r.discountColl.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "start_date", Value: 1}, {Key: "end_date", Value: 1}}},
	}); err != nil {
		return fmt.Errorf("failed to create discount indexes: %w", err)
	}
	if _, err := r.promoColl.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "code", Value: 1}}, Options: options.Index().SetUnique(true)},
	}); err != nil {
		return fmt.Errorf("failed to create promo indexes: %w", err)
	}
	return nil
}

// CreateDiscount inserts a discount window.
func (r *MongoDiscountRepo) CreateDiscount(d *models.Discount) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	d.CreatedAt = time.Now()
	if _, err := r.discountColl.InsertOne(ctx, d); err != nil {
		return fmt.Errorf("failed to create discount: %w", err)
	}
	return nil
}

// GetActiveDiscount returns the discount active at the given instant.
func (r *MongoDiscountRepo) GetActiveDiscount(at time.Time) (*models.Discount, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"active":     true,
		"start_date": bson.M{"$lte": at},
		"end_date":   bson.M{"$gte": at},
	}
	var d models.Discount
	if err := r.discountColl.FindOne(ctx, filter).Decode(&d); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch active discount: %w", err)
	}
	return &d, nil
}

// GetAllDiscounts retrieves all discount windows.
func (r *MongoDiscountRepo) GetAllDiscounts() ([]models.Discount, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.discountColl.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve discounts: %w", err)
	}
	defer cursor.Close(ctx)

	out := make([]models.Discount, 0)
	for cursor.Next(ctx) {
		var d models.Discount
		if err := cursor.Decode(&d); err != nil {
			return nil, fmt.Errorf("failed to decode discount: %w", err)
		}
		out = append(out, d)
	}
	return out, nil
}

// DeactivateDiscount soft-deletes a discount window.
func (r *MongoDiscountRepo) DeactivateDiscount(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.discountColl.UpdateOne(ctx, bson.M{"id": id},
		bson.M{"$set": bson.M{"active": false}})
	if err != nil {
		return fmt.Errorf("failed to deactivate discount with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("discount with id %s not found", id)
	}
	return nil
}

// CreatePromo inserts a promo code.
func (r *MongoDiscountRepo) CreatePromo(p *models.PromoCode) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	p.CreatedAt = time.Now()
	if _, err := r.promoColl.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("failed to create promo code: %w", err)
	}
	return nil
}

// GetPromoByCode retrieves a promo code by its code.
func (r *MongoDiscountRepo) GetPromoByCode(code string) (*models.PromoCode, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var p models.PromoCode
	if err := r.promoColl.FindOne(ctx, bson.M{"code": code}).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch promo code %s: %w", code, err)
	}
	return &p, nil
}

// GetAllPromos retrieves all promo codes.
func (r *MongoDiscountRepo) GetAllPromos() ([]models.PromoCode, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.promoColl.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve promo codes: %w", err)
	}
	defer cursor.Close(ctx)

	out := make([]models.PromoCode, 0)
	for cursor.Next(ctx) {
		var p models.PromoCode
		if err := cursor.Decode(&p); err != nil {
			return nil, fmt.Errorf("failed to decode promo code: %w", err)
		}
		out = append(out, p)
	}
	return out, nil
}

// DeactivatePromo soft-deletes a promo code.
func (r *MongoDiscountRepo) DeactivatePromo(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.promoColl.UpdateOne(ctx, bson.M{"id": id},
		bson.M{"$set": bson.M{"active": false}})
	if err != nil {
		return fmt.Errorf("failed to deactivate promo with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("promo with id %s not found", id)
	}
	return nil
}

// IncrementPromoUsage bumps the redemption counter.
func (r *MongoDiscountRepo) IncrementPromoUsage(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.promoColl.UpdateOne(ctx, bson.M{"id": id},
		bson.M{"$inc": bson.M{"usage_count": 1}})
	if err != nil {
		return fmt.Errorf("failed to increment usage for promo %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("promo with id %s not found", id)
	}
	return nil
}
