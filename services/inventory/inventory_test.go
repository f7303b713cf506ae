package inventory

import (
	"errors"
	"testing"

	inventoryRepo "innkeep/database/repository/inventory"
	"innkeep/models"
	"innkeep/utils"
)

type stubInventoryRepo struct {
	items    map[string]*models.InventoryItem
	defaults []models.InventoryItem
	usage    []models.InventoryUsage
	adjusted map[string]int64
	floorOn  map[string]bool
	recorded []models.InventoryUsage
}

func newStubRepo() *stubInventoryRepo {
	return &stubInventoryRepo{
		items:    map[string]*models.InventoryItem{},
		adjusted: map[string]int64{},
		floorOn:  map[string]bool{},
	}
}

func (s *stubInventoryRepo) CreateItem(i *models.InventoryItem) error { return nil }

func (s *stubInventoryRepo) GetItemByID(id string) (*models.InventoryItem, error) {
	return s.items[id], nil
}

func (s *stubInventoryRepo) GetAllItems() ([]models.InventoryItem, error) { return nil, nil }

func (s *stubInventoryRepo) GetDefaultCheckInItems() ([]models.InventoryItem, error) {
	return s.defaults, nil
}

func (s *stubInventoryRepo) AdjustStock(id string, delta int64) error {
	if s.floorOn[id] && delta < 0 {
		return inventoryRepo.ErrStockFloor
	}
	s.adjusted[id] += delta
	return nil
}

func (s *stubInventoryRepo) RecordUsage(u *models.InventoryUsage) error {
	s.recorded = append(s.recorded, *u)
	return nil
}

func (s *stubInventoryRepo) GetUsage(guestID string) ([]models.InventoryUsage, error) {
	return s.usage, nil
}

func errCode(t *testing.T, err error) int {
	t.Helper()
	var se *utils.ServiceError
	if !errors.As(err, &se) {
		t.Fatalf("expected ServiceError, got %v", err)
	}
	return se.Code
}

func TestAdjustStockRecordsManualUsage(t *testing.T) {
	repo := newStubRepo()
	repo.items["item-1"] = &models.InventoryItem{ID: "item-1", Name: "Towel", Stock: 10}
	svc := NewService(repo)

	if err := svc.AdjustStock("item-1", -3, "laundry loss"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.adjusted["item-1"] != -3 {
		t.Errorf("expected delta -3 applied, got %d", repo.adjusted["item-1"])
	}
	if len(repo.recorded) != 1 || repo.recorded[0].Reason != models.UsageManualAdjust {
		t.Fatalf("expected a manual-adjust usage record, got %+v", repo.recorded)
	}
}

func TestAdjustStockFloorIsConflict(t *testing.T) {
	repo := newStubRepo()
	repo.items["item-1"] = &models.InventoryItem{ID: "item-1", Name: "Towel", Stock: 1}
	repo.floorOn["item-1"] = true
	svc := NewService(repo)

	err := svc.AdjustStock("item-1", -5, "")
	if err == nil {
		t.Fatal("expected error")
	}
	if code := errCode(t, err); code != 409 {
		t.Errorf("expected 409, got %d", code)
	}
}

func TestAdjustStockRejectsZeroDelta(t *testing.T) {
	svc := NewService(newStubRepo())

	err := svc.AdjustStock("item-1", 0, "")
	if err == nil {
		t.Fatal("expected error")
	}
	if code := errCode(t, err); code != 400 {
		t.Errorf("expected 400, got %d", code)
	}
}

func TestIssueCheckInDefaultsSkipsShortStock(t *testing.T) {
	repo := newStubRepo()
	repo.defaults = []models.InventoryItem{
		{ID: "item-1", Name: "Water Bottle", DefaultCheckInQty: 2},
		{ID: "item-2", Name: "Soap Bar", DefaultCheckInQty: 1},
	}
	repo.floorOn["item-1"] = true
	svc := NewService(repo)

	if err := svc.IssueCheckInDefaults("room-1", "g-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The short item is skipped, the other is issued and recorded.
	if repo.adjusted["item-1"] != 0 {
		t.Errorf("short item must be untouched, got %d", repo.adjusted["item-1"])
	}
	if repo.adjusted["item-2"] != -1 {
		t.Errorf("expected -1 issued, got %d", repo.adjusted["item-2"])
	}
	if len(repo.recorded) != 1 || repo.recorded[0].Reason != models.UsageCheckInIssue {
		t.Fatalf("expected one check-in issue record, got %+v", repo.recorded)
	}
	if repo.recorded[0].GuestID != "g-1" || repo.recorded[0].Quantity != -1 {
		t.Fatalf("unexpected usage record: %+v", repo.recorded[0])
	}
}

func TestReconcileCheckoutRestoresIssuedStock(t *testing.T) {
	repo := newStubRepo()
	repo.usage = []models.InventoryUsage{
		{ItemID: "item-1", ItemName: "Water Bottle", Quantity: -2, Reason: models.UsageCheckInIssue, GuestID: "g-1"},
		{ItemID: "item-2", ItemName: "Rose Bunch", Quantity: -5, Reason: models.UsageDecorBilling, GuestID: "g-1"},
	}
	svc := NewService(repo)

	if err := svc.ReconcileCheckout("room-1", "g-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Only the check-in issue comes back; decor consumption stays consumed.
	if repo.adjusted["item-1"] != 2 {
		t.Errorf("expected +2 restored, got %d", repo.adjusted["item-1"])
	}
	if repo.adjusted["item-2"] != 0 {
		t.Errorf("decor usage must not be restored, got %d", repo.adjusted["item-2"])
	}
	var reconciles int
	for _, u := range repo.recorded {
		if u.Reason == models.UsageCheckoutReconcile {
			reconciles++
		}
	}
	if reconciles != 1 {
		t.Fatalf("expected one reconcile record, got %d", reconciles)
	}
}
