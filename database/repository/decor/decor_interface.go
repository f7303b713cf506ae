package decorRepo

import (
	"errors"

	"innkeep/models"

	"go.mongodb.org/mongo-driver/bson"
)

// ErrInsufficientStock: a billing-time deduction would drive stock negative.
var ErrInsufficientStock = errors.New("insufficient inventory stock")

// DecorRepository defines data access for decor packages and orders.
type DecorRepository interface {
	// CreatePackage inserts a new decor package.
	CreatePackage(pkg *models.DecorPackage) error
	// GetPackageByID retrieves a package; nil when absent.
	GetPackageByID(id string) (*models.DecorPackage, error)
	// GetAllPackages retrieves all packages.
	GetAllPackages() ([]models.DecorPackage, error)
	// DeactivatePackage soft-deletes a package.
	DeactivatePackage(id string) error
	// DeletePackage hard-deletes a package.
	DeletePackage(id string) error
	// CountOrdersByPackage counts orders referencing a package.
	CountOrdersByPackage(packageID string) (int64, error)

	// CreateOrder inserts a new decor order.
	CreateOrder(order *models.DecorOrder) error
	// GetOrderByID retrieves an order; nil when absent.
	GetOrderByID(id string) (*models.DecorOrder, error)
	// GetAllOrders retrieves all orders, newest first.
	GetAllOrders() ([]models.DecorOrder, error)
	// UpdateOrderSet applies a partial $set update by id.
	UpdateOrderSet(id string, updateDoc bson.M) error
	// GetPendingByReservation returns pending orders pre-linked to a
	// reservation (no guest attached yet).
	GetPendingByReservation(reservationID string) ([]models.DecorOrder, error)

	// BillOrder commits a decor billing in one transaction: stock-guarded
	// inventory decrements, usage records, the updated invoice, and the
	// order's flip to billed.
	BillOrder(orderID string, invoice *models.Invoice, deductions []models.StockDeduction, usages []models.InventoryUsage) error
}
