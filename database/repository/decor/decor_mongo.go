package decorRepo

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

// MongoDecorRepo implements DecorRepository using MongoDB.
type MongoDecorRepo struct {
	pkgColl       *mongo.Collection
	orderColl     *mongo.Collection
	invoiceColl   *mongo.Collection
	inventoryColl *mongo.Collection
	usageColl     *mongo.Collection
}

// NewMongoDecorRepo creates a new instance of DecorRepository using MongoDB.
func NewMongoDecorRepo() DecorRepository {
	db := database.DB()
	repo := &MongoDecorRepo{
		pkgColl:       db.Collection("decor_packages"),
		orderColl:     db.Collection("decor_orders"),
		invoiceColl:   db.Collection("invoices"),
		inventoryColl: db.Collection("inventory_items"),
		usageColl:     db.Collection("inventory_usage"),
	}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoDecorRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	if _, err := r.pkgColl.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
	}); err != nil {
		return fmt.Errorf("failed to create package indexes: %w", err)
	}
	if _, err := r.orderColl.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "reservation_id", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "guest_id", Value: 1}, {Key: "status", Value: 1}}},
	}); err != nil {
		return fmt.Errorf("failed to create order indexes: %w", err)
	}
	return nil
}

// CreatePackage inserts a new decor package document.
func (r *MongoDecorRepo) CreatePackage(pkg *models.DecorPackage) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	pkg.CreatedAt = now
	pkg.UpdatedAt = now

	if _, err := r.pkgColl.InsertOne(ctx, pkg); err != nil {
		return fmt.Errorf("failed to create decor package: %w", err)
	}
	return nil
}

// GetPackageByID retrieves a package by its unique ID.
func (r *MongoDecorRepo) GetPackageByID(id string) (*models.DecorPackage, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var pkg models.DecorPackage
	if err := r.pkgColl.FindOne(ctx, bson.M{"id": id}).Decode(&pkg); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch decor package with id %s: %w", id, err)
	}
	return &pkg, nil
}

// GetAllPackages retrieves all packages.
func (r *MongoDecorRepo) GetAllPackages() ([]models.DecorPackage, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.pkgColl.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve decor packages: %w", err)
	}
	defer cursor.Close(ctx)

	out := make([]models.DecorPackage, 0)
	for cursor.Next(ctx) {
		var pkg models.DecorPackage
		if err := cursor.Decode(&pkg); err != nil {
			return nil, fmt.Errorf("failed to decode decor package: %w", err)
		}
		out = append(out, pkg)
	}
	return out, nil
}

// DeactivatePackage soft-deletes a package.
func (r *MongoDecorRepo) DeactivatePackage(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.pkgColl.UpdateOne(ctx, bson.M{"id": id},
		bson.M{"$set": bson.M{"active": false, "updated_at": time.Now()}})
	if err != nil {
		return fmt.Errorf("failed to deactivate decor package with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("decor package with id %s not found", id)
	}
	return nil
}

// DeletePackage hard-deletes a package.
func (r *MongoDecorRepo) DeletePackage(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.pkgColl.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete decor package with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("decor package with id %s not found", id)
	}
	return nil
}

// CountOrdersByPackage counts orders referencing a package.
func (r *MongoDecorRepo) CountOrdersByPackage(packageID string) (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	n, err := r.orderColl.CountDocuments(ctx, bson.M{"package_id": packageID})
	if err != nil {
		return 0, fmt.Errorf("failed to count orders for package %s: %w", packageID, err)
	}
	return n, nil
}

// CreateOrder inserts a new decor order document.
func (r *MongoDecorRepo) CreateOrder(order *models.DecorOrder) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now

	if _, err := r.orderColl.InsertOne(ctx, order); err != nil {
		return fmt.Errorf("failed to create decor order: %w", err)
	}
	return nil
}

// GetOrderByID retrieves an order by its unique ID.
func (r *MongoDecorRepo) GetOrderByID(id string) (*models.DecorOrder, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var order models.DecorOrder
	if err := r.orderColl.FindOne(ctx, bson.M{"id": id}).Decode(&order); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch decor order with id %s: %w", id, err)
	}
	return &order, nil
}

// GetAllOrders retrieves all orders, newest first.
func (r *MongoDecorRepo) GetAllOrders() ([]models.DecorOrder, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.orderColl.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve decor orders: %w", err)
	}
	defer cursor.Close(ctx)

	out := make([]models.DecorOrder, 0)
	for cursor.Next(ctx) {
		var order models.DecorOrder
		if err := cursor.Decode(&order); err != nil {
			return nil, fmt.Errorf("failed to decode decor order: %w", err)
		}
		out = append(out, order)
	}
	return out, nil
}

// UpdateOrderSet applies a partial update by id.
func (r *MongoDecorRepo) UpdateOrderSet(id string, updateDoc bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	updateDoc["updated_at"] = time.Now()
	result, err := r.orderColl.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": updateDoc})
	if err != nil {
		return fmt.Errorf("failed to update decor order with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("decor order with id %s not found", id)
	}
	return nil
}

// GetPendingByReservation returns pending orders pre-linked to a reservation.
func (r *MongoDecorRepo) GetPendingByReservation(reservationID string) ([]models.DecorOrder, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"reservation_id": reservationID,
		"status":         models.DecorPending,
	}
	cursor, err := r.orderColl.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending decor orders: %w", err)
	}
	defer cursor.Close(ctx)

	out := make([]models.DecorOrder, 0)
	for cursor.Next(ctx) {
		var order models.DecorOrder
		if err := cursor.Decode(&order); err != nil {
			return nil, fmt.Errorf("failed to decode decor order: %w", err)
		}
		out = append(out, order)
	}
	return out, nil
}

// BillOrder commits decor billing atomically: every ingredient decrement is
// guarded by a stock floor, usage entries are recorded, the invoice replaced,
// and the order flipped to billed. A failed transaction leaves the order
// pending and nothing deducted.
func (r *MongoDecorRepo) BillOrder(orderID string, invoice *models.Invoice, deductions []models.StockDeduction, usages []models.InventoryUsage) error {
	ctx, cancel := newContext(15 * time.Second)
	defer cancel()

	client := r.orderColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	now := time.Now()

	txnFn := func(sc mongo.SessionContext) error {
		for _, d := range deductions {
			res, err := r.inventoryColl.UpdateOne(sc,
				bson.M{"id": d.ItemID, "stock": bson.M{"$gte": d.Quantity}},
				bson.M{"$inc": bson.M{"stock": -d.Quantity}},
			)
			if err != nil {
				return fmt.Errorf("stock deduction failed for item %s: %w", d.ItemID, err)
			}
			if res.MatchedCount == 0 {
				return ErrInsufficientStock
			}
		}
		for _, u := range usages {
			u.CreatedAt = now
			if _, err := r.usageColl.InsertOne(sc, u); err != nil {
				return fmt.Errorf("insert inventory usage failed: %w", err)
			}
		}

		invoice.UpdatedAt = now
		res, err := r.invoiceColl.UpdateOne(sc, bson.M{"id": invoice.ID}, bson.M{"$set": invoice})
		if err != nil {
			return fmt.Errorf("invoice update failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return fmt.Errorf("invoice with id %s not found", invoice.ID)
		}

		ores, err := r.orderColl.UpdateOne(sc,
			bson.M{"id": orderID, "status": bson.M{"$ne": models.DecorBilled}},
			bson.M{"$set": bson.M{"status": models.DecorBilled, "guest_id": invoice.GuestID, "updated_at": now}},
		)
		if err != nil {
			return fmt.Errorf("order billing flip failed: %w", err)
		}
		if ores.MatchedCount == 0 {
			return fmt.Errorf("decor order %s already billed", orderID)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return err
	}

	return nil
}
