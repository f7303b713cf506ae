package guest

import (
	"time"

	guestRepo "innkeep/database/repository/guest"
	"innkeep/models"
	"innkeep/services/availability"

	"go.mongodb.org/mongo-driver/bson"
)

type stubGuestRepo struct {
	guest      *models.Guest
	checkIns   []guestRepo.CheckInTxn
	checkInErr error
	updated    []models.Guest
}

func (s *stubGuestRepo) CheckIn(txn guestRepo.CheckInTxn) error {
	if s.checkInErr != nil {
		return s.checkInErr
	}
	s.checkIns = append(s.checkIns, txn)
	return nil
}

func (s *stubGuestRepo) Update(g *models.Guest) error {
	s.updated = append(s.updated, *g)
	return nil
}

func (s *stubGuestRepo) UpdateSetDocument(id string, doc bson.M) error { return nil }
func (s *stubGuestRepo) GetByID(id string) (*models.Guest, error) { return s.guest, nil }
func (s *stubGuestRepo) GetAll() ([]models.Guest, error) { return nil, nil }
func (s *stubGuestRepo) CountByRoom(roomID string) (int64, error) { return 0, nil }

func (s *stubGuestRepo) FindOverlapping(roomID string, start, end time.Time, excludeID string) ([]models.Guest, error) {
	return nil, nil
}

type stubRoomRepo struct {
	room      *models.Room
	setStatus []string
}

func (s *stubRoomRepo) Create(r *models.Room) error                  { return nil }
func (s *stubRoomRepo) Update(r *models.Room) error                  { return nil }
func (s *stubRoomRepo) UpdateSetDocument(id string, d bson.M) error  { return nil }
func (s *stubRoomRepo) FreeRoom(id string) (bool, error) { return true, nil }
func (s *stubRoomRepo) Delete(id string) error                       { return nil }
func (s *stubRoomRepo) GetByID(id string) (*models.Room, error) { return s.room, nil }
func (s *stubRoomRepo) GetByNumber(n string) (*models.Room, error) { return s.room, nil }
func (s *stubRoomRepo) GetAll() ([]models.Room, error) { return nil, nil }

func (s *stubRoomRepo) SetStatus(id, status string) error {
	s.setStatus = append(s.setStatus, status)
	return nil
}

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

type stubInvoiceRepo struct {
	invoice *models.Invoice
	updated []models.Invoice
}

func (s *stubInvoiceRepo) Create(inv *models.Invoice) error { return nil }

func (s *stubInvoiceRepo) Update(inv *models.Invoice) error {
	s.updated = append(s.updated, *inv)
	return nil
}

func (s *stubInvoiceRepo) UpdateSetDocument(id string, d bson.M) error   { return nil }
func (s *stubInvoiceRepo) GetByID(id string) (*models.Invoice, error) { return s.invoice, nil }
func (s *stubInvoiceRepo) GetByGuest(g string) (*models.Invoice, error) { return s.invoice, nil }
func (s *stubInvoiceRepo) GetAll() ([]models.Invoice, error) { return nil, nil }

type stubDecorRepo struct{}

func (s *stubDecorRepo) CreatePackage(p *models.DecorPackage) error            { return nil }
func (s *stubDecorRepo) GetPackageByID(id string) (*models.DecorPackage, error) { return nil, nil }
func (s *stubDecorRepo) GetAllPackages() ([]models.DecorPackage, error) { return nil, nil }
func (s *stubDecorRepo) DeactivatePackage(id string) error                     { return nil }
func (s *stubDecorRepo) DeletePackage(id string) error                         { return nil }
func (s *stubDecorRepo) CountOrdersByPackage(id string) (int64, error) { return 0, nil }
func (s *stubDecorRepo) CreateOrder(o *models.DecorOrder) error                { return nil }
func (s *stubDecorRepo) GetOrderByID(id string) (*models.DecorOrder, error) { return nil, nil }
func (s *stubDecorRepo) GetAllOrders() ([]models.DecorOrder, error) { return nil, nil }
func (s *stubDecorRepo) UpdateOrderSet(id string, d bson.M) error              { return nil }

func (s *stubDecorRepo) GetPendingByReservation(reservationID string) ([]models.DecorOrder, error) {
	return nil, nil
}

func (s *stubDecorRepo) BillOrder(orderID string, inv *models.Invoice, deductions []models.StockDeduction, usages []models.InventoryUsage) error {
	return nil
}

type stubDiscountRepo struct {
	promo    *models.PromoCode
	discount *models.Discount
	bumped   []string
}

func (s *stubDiscountRepo) CreateDiscount(d *models.Discount) error           { return nil }
func (s *stubDiscountRepo) GetAllDiscounts() ([]models.Discount, error) { return nil, nil }
func (s *stubDiscountRepo) DeactivateDiscount(id string) error                { return nil }
func (s *stubDiscountRepo) CreatePromo(p *models.PromoCode) error             { return nil }
func (s *stubDiscountRepo) GetAllPromos() ([]models.PromoCode, error) { return nil, nil }
func (s *stubDiscountRepo) DeactivatePromo(id string) error                   { return nil }

func (s *stubDiscountRepo) GetActiveDiscount(at time.Time) (*models.Discount, error) {
	return s.discount, nil
}

func (s *stubDiscountRepo) GetPromoByCode(code string) (*models.PromoCode, error) {
	return s.promo, nil
}

func (s *stubDiscountRepo) IncrementPromoUsage(id string) error {
	s.bumped = append(s.bumped, id)
	return nil
}

type stubChecker struct {
	result availability.Result
}

func (s *stubChecker) Check(roomID string, start, end time.Time, excludeID string) (availability.Result, error) {
	return s.result, nil
}

type stubLedger struct {
	appended []models.Transaction
	net      int64
}

func (s *stubLedger) Append(txn *models.Transaction) (*models.Transaction, error) {
	s.appended = append(s.appended, *txn)
	return txn, nil
}

func (s *stubLedger) ListByReservation(id string) ([]models.Transaction, error) { return nil, nil }
func (s *stubLedger) ListByGuest(id string) ([]models.Transaction, error) { return nil, nil }
func (s *stubLedger) NetAdvance(id string) (int64, error) { return s.net, nil }

type stubSettings struct {
	cfg models.BillingSettings
}

func (s *stubSettings) Get() (models.BillingSettings, error) { return s.cfg, nil }

func (s *stubSettings) Update(cfg models.BillingSettings) (models.BillingSettings, error) {
	s.cfg = cfg
	return cfg, nil
}

type stubNotifier struct {
	checkIns  []string
	checkOuts []string
}

func (s *stubNotifier) NotifyCheckIn(roomID, guestID string) error {
	s.checkIns = append(s.checkIns, guestID)
	return nil
}

func (s *stubNotifier) NotifyCheckOut(roomID, guestID string) error {
	s.checkOuts = append(s.checkOuts, guestID)
	return nil
}

// fixture bundles the stubs behind a ready-to-use service.
type fixture struct {
	guests       *stubGuestRepo
	rooms        *stubRoomRepo
	reservations *stubReservationRepo
	invoices     *stubInvoiceRepo
	discounts    *stubDiscountRepo
	checker      *stubChecker
	ledger       *stubLedger
	notifier     *stubNotifier
	svc          Service
}

func newFixture() *fixture {
	f := &fixture{
		guests:       &stubGuestRepo{},
		rooms:        &stubRoomRepo{},
		reservations: &stubReservationRepo{},
		invoices:     &stubInvoiceRepo{},
		discounts:    &stubDiscountRepo{},
		checker:      &stubChecker{result: availability.Result{Available: true}},
		ledger:       &stubLedger{},
		notifier:     &stubNotifier{},
	}
	f.svc = NewService(
		f.guests,
		f.rooms,
		f.reservations,
		f.invoices,
		&stubDecorRepo{},
		f.discounts,
		f.checker,
		f.ledger,
		&stubSettings{cfg: models.DefaultBillingSettings()},
		f.notifier,
	)
	return f
}
