package inventory

import (
	"errors"
	"time"

	inventoryRepo "innkeep/database/repository/inventory"
	"innkeep/models"
	"innkeep/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service manages mini-bar/amenity stock and its movement history.
type Service interface {
	CreateItem(item *models.InventoryItem) (*models.InventoryItem, error)
	GetItem(id string) (*models.InventoryItem, error)
	ListItems() ([]models.InventoryItem, error)
	// AdjustStock applies a signed manual stock correction and records it.
	AdjustStock(id string, delta int64, note string) error
	ListUsage(guestID string) ([]models.InventoryUsage, error)

	// IssueCheckInDefaults hands the default amenity kit to a fresh stay.
	IssueCheckInDefaults(roomID, guestID string) error
	// ReconcileCheckout returns the stay's issued defaults to stock.
	ReconcileCheckout(roomID, guestID string) error
}

// DefaultService implements Service.
type DefaultService struct {
	Repo inventoryRepo.InventoryRepository
}

// NewService creates a new instance of Service.
func NewService(repo inventoryRepo.InventoryRepository) Service {
	return &DefaultService{Repo: repo}
}

// CreateItem registers a stock item.
func (s *DefaultService) CreateItem(item *models.InventoryItem) (*models.InventoryItem, error) {
	if item.Name == "" {
		return nil, utils.Errf(400, "item name is required")
	}
	if item.Stock < 0 || item.DefaultCheckInQty < 0 {
		return nil, utils.Errf(400, "stock figures must not be negative")
	}
	item.ID = uuid.NewString()
	item.Active = true
	item.CreatedAt = time.Now()
	item.UpdatedAt = item.CreatedAt
	if err := s.Repo.CreateItem(item); err != nil {
		return nil, utils.Errf(500, "failed to create inventory item: %v", err)
	}
	return item, nil
}

// GetItem fetches one item.
func (s *DefaultService) GetItem(id string) (*models.InventoryItem, error) {
	item, err := s.Repo.GetItemByID(id)
	if err != nil {
		return nil, utils.Errf(500, "failed to fetch inventory item: %v", err)
	}
	if item == nil {
		return nil, utils.Errf(404, "inventory item not found")
	}
	return item, nil
}

// ListItems fetches all items.
func (s *DefaultService) ListItems() ([]models.InventoryItem, error) {
	items, err := s.Repo.GetAllItems()
	if err != nil {
		return nil, utils.Errf(500, "failed to fetch inventory items: %v", err)
	}
	return items, nil
}

// AdjustStock applies a manual correction.
func (s *DefaultService) AdjustStock(id string, delta int64, note string) error {
	if delta == 0 {
		return utils.Errf(400, "delta must not be zero")
	}
	item, err := s.GetItem(id)
	if err != nil {
		return err
	}
	if err := s.Repo.AdjustStock(id, delta); err != nil {
		if errors.Is(err, inventoryRepo.ErrStockFloor) {
			return utils.Errf(409, "adjustment would drive stock of %s below zero", item.Name)
		}
		return utils.Errf(500, "failed to adjust stock: %v", err)
	}
	usage := &models.InventoryUsage{
		ID:        uuid.NewString(),
		ItemID:    item.ID,
		ItemName:  item.Name,
		Quantity:  delta,
		Reason:    models.UsageManualAdjust,
		CreatedAt: time.Now(),
	}
	if err := s.Repo.RecordUsage(usage); err != nil {
		utils.GetLogger().Warn("failed to record stock adjustment", zap.String("itemID", id), zap.Error(err))
	}
	return nil
}

// ListUsage fetches usage entries, optionally scoped to a guest.
func (s *DefaultService) ListUsage(guestID string) ([]models.InventoryUsage, error) {
	usage, err := s.Repo.GetUsage(guestID)
	if err != nil {
		return nil, utils.Errf(500, "failed to fetch inventory usage: %v", err)
	}
	return usage, nil
}

// IssueCheckInDefaults deducts each active item's default check-in quantity
// and records the issue against the stay. Items without cover are skipped
// with a warning rather than failing the whole issue.
func (s *DefaultService) IssueCheckInDefaults(roomID, guestID string) error {
	logger := utils.GetLogger()
	items, err := s.Repo.GetDefaultCheckInItems()
	if err != nil {
		return utils.Errf(500, "failed to load default check-in items: %v", err)
	}
	for _, item := range items {
		if err := s.Repo.AdjustStock(item.ID, -item.DefaultCheckInQty); err != nil {
			if errors.Is(err, inventoryRepo.ErrStockFloor) {
				logger.Warn("skipping default issue, stock too low",
					zap.String("item", item.Name), zap.String("guestID", guestID))
				continue
			}
			return utils.Errf(500, "failed to issue %s: %v", item.Name, err)
		}
		usage := &models.InventoryUsage{
			ID:        uuid.NewString(),
			ItemID:    item.ID,
			ItemName:  item.Name,
			Quantity:  -item.DefaultCheckInQty,
			Reason:    models.UsageCheckInIssue,
			GuestID:   guestID,
			RoomID:    roomID,
			CreatedAt: time.Now(),
		}
		if err := s.Repo.RecordUsage(usage); err != nil {
			logger.Warn("failed to record check-in issue", zap.String("item", item.Name), zap.Error(err))
		}
	}
	return nil
}

// ReconcileCheckout restores whatever was issued to the stay at check-in.
func (s *DefaultService) ReconcileCheckout(roomID, guestID string) error {
	logger := utils.GetLogger()
	usage, err := s.Repo.GetUsage(guestID)
	if err != nil {
		return utils.Errf(500, "failed to load usage for reconciliation: %v", err)
	}
	for _, u := range usage {
		if u.Reason != models.UsageCheckInIssue {
			continue
		}
		returned := -u.Quantity
		if returned <= 0 {
			continue
		}
		if err := s.Repo.AdjustStock(u.ItemID, returned); err != nil {
			logger.Warn("failed to restore stock at checkout",
				zap.String("item", u.ItemName), zap.Error(err))
			continue
		}
		record := &models.InventoryUsage{
			ID:        uuid.NewString(),
			ItemID:    u.ItemID,
			ItemName:  u.ItemName,
			Quantity:  returned,
			Reason:    models.UsageCheckoutReconcile,
			GuestID:   guestID,
			RoomID:    roomID,
			CreatedAt: time.Now(),
		}
		if err := s.Repo.RecordUsage(record); err != nil {
			logger.Warn("failed to record checkout reconciliation", zap.String("item", u.ItemName), zap.Error(err))
		}
	}
	return nil
}
