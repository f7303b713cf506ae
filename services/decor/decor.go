package decor

import (
	"errors"
	"time"

	decorRepo "innkeep/database/repository/decor"
	inventoryRepo "innkeep/database/repository/inventory"
	invoiceRepo "innkeep/database/repository/invoice"
	reservationRepo "innkeep/database/repository/reservation"
	"innkeep/models"
	"innkeep/services/billing"
	"innkeep/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// OrderInput creates a decor order against a guest or future reservation.
type OrderInput struct {
	PackageID     string `json:"packageId"`
	GuestID       string `json:"guestId"`
	ReservationID string `json:"reservationId"`
	Instructions  string `json:"instructions"`
	// Force accepts a stock shortfall the caller has confirmed.
	Force bool `json:"force"`
}

// Service runs the decor order workflow.
type Service interface {
	CreatePackage(pkg *models.DecorPackage) (*models.DecorPackage, error)
	ListPackages() ([]models.DecorPackage, error)
	GetPackage(id string) (*models.DecorPackage, error)
	// DeletePackage soft-deletes when orders reference the package.
	DeletePackage(id string) error

	// CreateOrder persists a pending order after validating stock unless
	// forced.
	CreateOrder(in OrderInput) (*models.DecorOrder, error)
	ListOrders() ([]models.DecorOrder, error)
	GetOrder(id string) (*models.DecorOrder, error)
	// BillOrder folds an order into its guest's invoice, deducting recipe
	// stock exactly once.
	BillOrder(orderID string) (*models.DecorOrder, error)
	// CancelOrder voids a pending or completed order.
	CancelOrder(orderID string) error
}

// DefaultService implements Service.
type DefaultService struct {
	Repo         decorRepo.DecorRepository
	Inventory    inventoryRepo.InventoryRepository
	Invoices     invoiceRepo.InvoiceRepository
	Reservations reservationRepo.ReservationRepository
}

// NewService creates a new instance of Service.
func NewService(repo decorRepo.DecorRepository, inventory inventoryRepo.InventoryRepository,
	invoices invoiceRepo.InvoiceRepository, reservations reservationRepo.ReservationRepository) Service {
	return &DefaultService{Repo: repo, Inventory: inventory, Invoices: invoices, Reservations: reservations}
}

// CreatePackage registers an add-on package.
func (s *DefaultService) CreatePackage(pkg *models.DecorPackage) (*models.DecorPackage, error) {
	if pkg.Name == "" {
		return nil, utils.Errf(400, "package name is required")
	}
	if pkg.Price <= 0 {
		return nil, utils.Errf(400, "package price must be greater than zero")
	}
	for _, line := range pkg.Recipe {
		if line.Quantity <= 0 {
			return nil, utils.Errf(400, "recipe quantity for %s must be greater than zero", line.ItemName)
		}
		item, err := s.Inventory.GetItemByID(line.ItemID)
		if err != nil {
			return nil, utils.Errf(500, "failed to verify recipe item: %v", err)
		}
		if item == nil {
			return nil, utils.Errf(404, "recipe item %s not found", line.ItemID)
		}
	}
	pkg.ID = uuid.NewString()
	pkg.Active = true
	pkg.CreatedAt = time.Now()
	pkg.UpdatedAt = pkg.CreatedAt
	if err := s.Repo.CreatePackage(pkg); err != nil {
		return nil, utils.Errf(500, "failed to create decor package: %v", err)
	}
	return pkg, nil
}

// ListPackages fetches all packages.
func (s *DefaultService) ListPackages() ([]models.DecorPackage, error) {
	pkgs, err := s.Repo.GetAllPackages()
	if err != nil {
		return nil, utils.Errf(500, "failed to fetch decor packages: %v", err)
	}
	return pkgs, nil
}

// GetPackage fetches one package.
func (s *DefaultService) GetPackage(id string) (*models.DecorPackage, error) {
	pkg, err := s.Repo.GetPackageByID(id)
	if err != nil {
		return nil, utils.Errf(500, "failed to fetch decor package: %v", err)
	}
	if pkg == nil {
		return nil, utils.Errf(404, "decor package not found")
	}
	return pkg, nil
}

// DeletePackage removes a package, deactivating instead when history
// references it.
func (s *DefaultService) DeletePackage(id string) error {
	if _, err := s.GetPackage(id); err != nil {
		return err
	}
	count, err := s.Repo.CountOrdersByPackage(id)
	if err != nil {
		return utils.Errf(500, "failed to count package orders: %v", err)
	}
	if count > 0 {
		if err := s.Repo.DeactivatePackage(id); err != nil {
			return utils.Errf(500, "failed to deactivate decor package: %v", err)
		}
		return nil
	}
	if err := s.Repo.DeletePackage(id); err != nil {
		return utils.Errf(500, "failed to delete decor package: %v", err)
	}
	return nil
}

// shortfalls reports every recipe ingredient the current stock cannot cover.
func (s *DefaultService) shortfalls(pkg *models.DecorPackage) ([]models.StockShortfall, error) {
	var out []models.StockShortfall
	for _, line := range pkg.Recipe {
		item, err := s.Inventory.GetItemByID(line.ItemID)
		if err != nil {
			return nil, utils.Errf(500, "failed to check stock: %v", err)
		}
		var available int64
		if item != nil {
			available = item.Stock
		}
		if available < line.Quantity {
			out = append(out, models.StockShortfall{
				ItemID:    line.ItemID,
				ItemName:  line.ItemName,
				Requested: line.Quantity,
				Available: available,
			})
		}
	}
	return out, nil
}

// CreateOrder persists a pending order.
func (s *DefaultService) CreateOrder(in OrderInput) (*models.DecorOrder, error) {
	if in.GuestID == "" && in.ReservationID == "" {
		return nil, utils.Errf(400, "a guest or reservation reference is required")
	}
	pkg, err := s.GetPackage(in.PackageID)
	if err != nil {
		return nil, err
	}
	if !pkg.Active {
		return nil, utils.Errf(400, "decor package %s is no longer offered", pkg.Name)
	}

	if !in.Force {
		short, err := s.shortfalls(pkg)
		if err != nil {
			return nil, err
		}
		if len(short) > 0 {
			return nil, utils.ErrWithDetails(409,
				"insufficient stock for decor package, resubmit with force to accept the shortfall", short)
		}
	}

	now := time.Now()
	order := &models.DecorOrder{
		ID:            uuid.NewString(),
		PackageID:     pkg.ID,
		PackageName:   pkg.Name,
		Price:         pkg.Price,
		GuestID:       in.GuestID,
		ReservationID: in.ReservationID,
		Instructions:  in.Instructions,
		Status:        models.DecorPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.Repo.CreateOrder(order); err != nil {
		return nil, utils.Errf(500, "failed to create decor order: %v", err)
	}
	return order, nil
}

// ListOrders fetches all orders.
func (s *DefaultService) ListOrders() ([]models.DecorOrder, error) {
	orders, err := s.Repo.GetAllOrders()
	if err != nil {
		return nil, utils.Errf(500, "failed to fetch decor orders: %v", err)
	}
	return orders, nil
}

// GetOrder fetches one order.
func (s *DefaultService) GetOrder(id string) (*models.DecorOrder, error) {
	order, err := s.Repo.GetOrderByID(id)
	if err != nil {
		return nil, utils.Errf(500, "failed to fetch decor order: %v", err)
	}
	if order == nil {
		return nil, utils.Errf(404, "decor order not found")
	}
	return order, nil
}

// BillOrder folds an order into the guest's invoice.
func (s *DefaultService) BillOrder(orderID string) (*models.DecorOrder, error) {
	order, err := s.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	switch order.Status {
	case models.DecorBilled:
		return nil, utils.Errf(400, "decor order is already billed")
	case models.DecorCancelled:
		return nil, utils.Errf(400, "a cancelled decor order cannot be billed")
	}

	// Orders placed against a reservation relink to the guest it became.
	if order.GuestID == "" {
		if order.ReservationID == "" {
			return nil, utils.Errf(400, "decor order has no guest to bill")
		}
		res, err := s.Reservations.GetByID(order.ReservationID)
		if err != nil {
			return nil, utils.Errf(500, "failed to fetch reservation: %v", err)
		}
		if res == nil {
			return nil, utils.Errf(404, "reservation not found")
		}
		if res.GuestID == "" {
			return nil, utils.Errf(400, "reservation has not checked in yet")
		}
		order.GuestID = res.GuestID
	}

	inv, err := s.Invoices.GetByGuest(order.GuestID)
	if err != nil {
		return nil, utils.Errf(500, "failed to fetch invoice: %v", err)
	}
	if inv == nil {
		return nil, utils.Errf(404, "no invoice found for the guest")
	}

	pkg, err := s.Repo.GetPackageByID(order.PackageID)
	if err != nil {
		return nil, utils.Errf(500, "failed to fetch decor package: %v", err)
	}

	var deductions []models.StockDeduction
	var usages []models.InventoryUsage
	now := time.Now()
	if pkg != nil {
		for _, line := range pkg.Recipe {
			deductions = append(deductions, models.StockDeduction{ItemID: line.ItemID, Quantity: line.Quantity})
			usages = append(usages, models.InventoryUsage{
				ID:        uuid.NewString(),
				ItemID:    line.ItemID,
				ItemName:  line.ItemName,
				Quantity:  -line.Quantity,
				Reason:    models.UsageDecorBilling,
				GuestID:   order.GuestID,
				CreatedAt: now,
			})
		}
	}

	billing.AddDecorLine(inv, order.PackageName, order.Price)
	inv.UpdatedAt = now

	if err := s.Repo.BillOrder(order.ID, inv, deductions, usages); err != nil {
		if errors.Is(err, decorRepo.ErrInsufficientStock) {
			return nil, utils.Errf(409, "insufficient stock to fulfill the decor order")
		}
		return nil, utils.Errf(500, "failed to bill decor order: %v", err)
	}

	order.Status = models.DecorBilled
	order.UpdatedAt = now
	return order, nil
}

// CancelOrder voids an unbilled order.
func (s *DefaultService) CancelOrder(orderID string) error {
	order, err := s.GetOrder(orderID)
	if err != nil {
		return err
	}
	if order.Status == models.DecorBilled {
		return utils.Errf(400, "a billed decor order cannot be cancelled")
	}
	update := bson.M{"status": models.DecorCancelled, "updated_at": time.Now()}
	if err := s.Repo.UpdateOrderSet(orderID, update); err != nil {
		return utils.Errf(500, "failed to cancel decor order: %v", err)
	}
	return nil
}
