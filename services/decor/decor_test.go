package decor

import (
	"errors"
	"testing"
	"time"

	"innkeep/models"
	"innkeep/utils"

	"go.mongodb.org/mongo-driver/bson"
)

type stubDecorRepo struct {
	pkg         *models.DecorPackage
	order       *models.DecorOrder
	orderCount  int64
	created     []models.DecorOrder
	billed      []string
	billErr     error
	deactivated []string
	deletedPkgs []string
	orderSets   []bson.M
}

func (s *stubDecorRepo) CreatePackage(p *models.DecorPackage) error { return nil }

func (s *stubDecorRepo) GetPackageByID(id string) (*models.DecorPackage, error) { return s.pkg, nil }
func (s *stubDecorRepo) GetAllPackages() ([]models.DecorPackage, error) { return nil, nil }

func (s *stubDecorRepo) DeactivatePackage(id string) error {
	s.deactivated = append(s.deactivated, id)
	return nil
}

func (s *stubDecorRepo) DeletePackage(id string) error {
	s.deletedPkgs = append(s.deletedPkgs, id)
	return nil
}

func (s *stubDecorRepo) CountOrdersByPackage(id string) (int64, error) { return s.orderCount, nil }

func (s *stubDecorRepo) CreateOrder(o *models.DecorOrder) error {
	s.created = append(s.created, *o)
	return nil
}

func (s *stubDecorRepo) GetOrderByID(id string) (*models.DecorOrder, error) { return s.order, nil }
func (s *stubDecorRepo) GetAllOrders() ([]models.DecorOrder, error) { return nil, nil }

func (s *stubDecorRepo) UpdateOrderSet(id string, doc bson.M) error {
	s.orderSets = append(s.orderSets, doc)
	return nil
}

func (s *stubDecorRepo) GetPendingByReservation(reservationID string) ([]models.DecorOrder, error) {
	return nil, nil
}

func (s *stubDecorRepo) BillOrder(orderID string, inv *models.Invoice, deductions []models.StockDeduction, usages []models.InventoryUsage) error {
	if s.billErr != nil {
		return s.billErr
	}
	s.billed = append(s.billed, orderID)
	return nil
}

type stubInventoryRepo struct {
	items map[string]*models.InventoryItem
}

func (s *stubInventoryRepo) CreateItem(i *models.InventoryItem) error { return nil }

func (s *stubInventoryRepo) GetItemByID(id string) (*models.InventoryItem, error) {
	return s.items[id], nil
}

func (s *stubInventoryRepo) GetAllItems() ([]models.InventoryItem, error) { return nil, nil }
func (s *stubInventoryRepo) GetDefaultCheckInItems() ([]models.InventoryItem, error) { return nil, nil }
func (s *stubInventoryRepo) AdjustStock(id string, delta int64) error                { return nil }
func (s *stubInventoryRepo) RecordUsage(u *models.InventoryUsage) error              { return nil }

func (s *stubInventoryRepo) GetUsage(guestID string) ([]models.InventoryUsage, error) {
	return nil, nil
}

type stubInvoiceRepo struct {
	invoice *models.Invoice
}

func (s *stubInvoiceRepo) Create(inv *models.Invoice) error              { return nil }
func (s *stubInvoiceRepo) Update(inv *models.Invoice) error              { return nil }
func (s *stubInvoiceRepo) UpdateSetDocument(id string, d bson.M) error   { return nil }
func (s *stubInvoiceRepo) GetByID(id string) (*models.Invoice, error) { return s.invoice, nil }
func (s *stubInvoiceRepo) GetByGuest(g string) (*models.Invoice, error) { return s.invoice, nil }
func (s *stubInvoiceRepo) GetAll() ([]models.Invoice, error) { return nil, nil }

type stubReservationRepo struct {
	reservation *models.Reservation
}

func (s *stubReservationRepo) Create(r *models.Reservation) error                 { return nil }
func (s *stubReservationRepo) CreateWithOverlapCheck(r *models.Reservation) error { return nil }
func (s *stubReservationRepo) Update(r *models.Reservation) error                 { return nil }
func (s *stubReservationRepo) UpdateSetDocument(id string, d bson.M) error        { return nil }
func (s *stubReservationRepo) Delete(id string) error                             { return nil }
func (s *stubReservationRepo) GetByID(id string) (*models.Reservation, error) { return s.reservation, nil }
func (s *stubReservationRepo) GetAll() ([]models.Reservation, error) { return nil, nil }
func (s *stubReservationRepo) CountByRoom(roomID string) (int64, error) { return 0, nil }

func (s *stubReservationRepo) FindOverlapping(roomID string, start, end time.Time, excludeID string) ([]models.Reservation, error) {
	return nil, nil
}

type fixture struct {
	repo         *stubDecorRepo
	inventory    *stubInventoryRepo
	invoices     *stubInvoiceRepo
	reservations *stubReservationRepo
	svc          Service
}

func newFixture() *fixture {
	f := &fixture{
		repo:         &stubDecorRepo{},
		inventory:    &stubInventoryRepo{items: map[string]*models.InventoryItem{}},
		invoices:     &stubInvoiceRepo{},
		reservations: &stubReservationRepo{},
	}
	f.svc = NewService(f.repo, f.inventory, f.invoices, f.reservations)
	return f
}

func rosePackage() *models.DecorPackage {
	return &models.DecorPackage{
		ID: "pkg-1", Name: "Rose Setup", Price: 3000, Active: true,
		Recipe: []models.RecipeLine{{ItemID: "item-1", ItemName: "Rose Bunch", Quantity: 5}},
	}
}

func errCode(t *testing.T, err error) int {
	t.Helper()
	var se *utils.ServiceError
	if !errors.As(err, &se) {
		t.Fatalf("expected ServiceError, got %v", err)
	}
	return se.Code
}

func TestCreateOrderShortfallWithoutForce(t *testing.T) {
	f := newFixture()
	f.repo.pkg = rosePackage()
	f.inventory.items["item-1"] = &models.InventoryItem{ID: "item-1", Name: "Rose Bunch", Stock: 2}

	_, err := f.svc.CreateOrder(OrderInput{PackageID: "pkg-1", GuestID: "g-1"})
	if err == nil {
		t.Fatal("expected error")
	}
	var se *utils.ServiceError
	if !errors.As(err, &se) {
		t.Fatalf("expected ServiceError, got %v", err)
	}
	if se.Code != 409 {
		t.Errorf("expected 409, got %d", se.Code)
	}
	short, ok := se.Details.([]models.StockShortfall)
	if !ok || len(short) != 1 {
		t.Fatalf("expected shortfall details, got %+v", se.Details)
	}
	if short[0].Requested != 5 || short[0].Available != 2 {
		t.Fatalf("unexpected shortfall: %+v", short[0])
	}
}

func TestCreateOrderForceAcceptsShortfall(t *testing.T) {
	f := newFixture()
	f.repo.pkg = rosePackage()
	f.inventory.items["item-1"] = &models.InventoryItem{ID: "item-1", Name: "Rose Bunch", Stock: 0}

	order, err := f.svc.CreateOrder(OrderInput{PackageID: "pkg-1", GuestID: "g-1", Force: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.Status != models.DecorPending {
		t.Errorf("expected pending order, got %s", order.Status)
	}
	if order.Price != 3000 || order.PackageName != "Rose Setup" {
		t.Errorf("expected a price snapshot, got %+v", order)
	}
	if len(f.repo.created) != 1 {
		t.Fatalf("expected one persisted order, got %d", len(f.repo.created))
	}
}

func TestCreateOrderRequiresLink(t *testing.T) {
	f := newFixture()
	f.repo.pkg = rosePackage()

	_, err := f.svc.CreateOrder(OrderInput{PackageID: "pkg-1"})
	if err == nil {
		t.Fatal("expected error")
	}
	if code := errCode(t, err); code != 400 {
		t.Errorf("expected 400, got %d", code)
	}
}

func TestCreateOrderRejectsInactivePackage(t *testing.T) {
	f := newFixture()
	pkg := rosePackage()
	pkg.Active = false
	f.repo.pkg = pkg

	_, err := f.svc.CreateOrder(OrderInput{PackageID: "pkg-1", GuestID: "g-1"})
	if err == nil {
		t.Fatal("expected error")
	}
	if code := errCode(t, err); code != 400 {
		t.Errorf("expected 400, got %d", code)
	}
}

func TestBillOrderFoldsIntoInvoice(t *testing.T) {
	f := newFixture()
	f.repo.pkg = rosePackage()
	f.repo.order = &models.DecorOrder{
		ID: "o-1", PackageID: "pkg-1", PackageName: "Rose Setup", Price: 3000,
		GuestID: "g-1", Status: models.DecorPending,
	}
	f.invoices.invoice = &models.Invoice{
		ID: "inv-1", GuestID: "g-1", Status: models.InvoicePending,
		Items: []models.InvoiceItem{{
			Description: "Room 101 (Standard)", Quantity: 2, UnitPrice: 10000, Total: 20000,
		}},
	}

	order, err := f.svc.BillOrder("o-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.Status != models.DecorBilled {
		t.Errorf("expected billed, got %s", order.Status)
	}
	if len(f.repo.billed) != 1 {
		t.Fatalf("expected one transactional bill, got %d", len(f.repo.billed))
	}
	if f.invoices.invoice.GrandTotal != 23000 {
		t.Errorf("expected grand total 23000, got %d", f.invoices.invoice.GrandTotal)
	}
}

func TestBillOrderRejectsBeforeCheckIn(t *testing.T) {
	f := newFixture()
	f.repo.order = &models.DecorOrder{
		ID: "o-1", PackageID: "pkg-1", ReservationID: "r-1", Status: models.DecorPending,
	}
	f.reservations.reservation = &models.Reservation{ID: "r-1", Status: models.ReservationConfirmed}

	_, err := f.svc.BillOrder("o-1")
	if err == nil {
		t.Fatal("expected error")
	}
	if code := errCode(t, err); code != 400 {
		t.Errorf("expected 400, got %d", code)
	}
}

func TestBillOrderRejectsDoubleBilling(t *testing.T) {
	f := newFixture()
	f.repo.order = &models.DecorOrder{ID: "o-1", Status: models.DecorBilled}

	_, err := f.svc.BillOrder("o-1")
	if err == nil {
		t.Fatal("expected error")
	}
	if code := errCode(t, err); code != 400 {
		t.Errorf("expected 400, got %d", code)
	}
}

func TestCancelOrderRejectsBilled(t *testing.T) {
	f := newFixture()
	f.repo.order = &models.DecorOrder{ID: "o-1", Status: models.DecorBilled}

	err := f.svc.CancelOrder("o-1")
	if err == nil {
		t.Fatal("expected error")
	}
	if code := errCode(t, err); code != 400 {
		t.Errorf("expected 400, got %d", code)
	}
}

func TestCancelOrderVoidsPending(t *testing.T) {
	f := newFixture()
	f.repo.order = &models.DecorOrder{ID: "o-1", Status: models.DecorPending}

	if err := f.svc.CancelOrder("o-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.repo.orderSets) != 1 || f.repo.orderSets[0]["status"] != models.DecorCancelled {
		t.Fatalf("expected a cancelled status write, got %+v", f.repo.orderSets)
	}
}

func TestDeletePackageDeactivatesWithHistory(t *testing.T) {
	f := newFixture()
	f.repo.pkg = rosePackage()
	f.repo.orderCount = 3

	if err := f.svc.DeletePackage("pkg-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.repo.deactivated) != 1 || len(f.repo.deletedPkgs) != 0 {
		t.Fatalf("expected deactivation only, got deactivated=%v deleted=%v",
			f.repo.deactivated, f.repo.deletedPkgs)
	}
}
