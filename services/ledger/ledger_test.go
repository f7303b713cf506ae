package ledger

import (
	"errors"
	"testing"

	"innkeep/models"
	"innkeep/utils"

	"go.mongodb.org/mongo-driver/bson"
)

type stubTxnRepo struct {
	created []models.Transaction
	byRes   []models.Transaction
	byGuest []models.Transaction
}

func (s *stubTxnRepo) Create(txn *models.Transaction) error {
	s.created = append(s.created, *txn)
	return nil
}

func (s *stubTxnRepo) GetByReservation(reservationID string) ([]models.Transaction, error) {
	return s.byRes, nil
}

func (s *stubTxnRepo) GetByGuest(guestID string) ([]models.Transaction, error) {
	return s.byGuest, nil
}

type stubInvoiceRepo struct {
	invoice *models.Invoice
	updates []bson.M
}

func (s *stubInvoiceRepo) Create(inv *models.Invoice) error { return nil }
func (s *stubInvoiceRepo) Update(inv *models.Invoice) error { return nil }

func (s *stubInvoiceRepo) UpdateSetDocument(id string, doc bson.M) error {
	s.updates = append(s.updates, doc)
	return nil
}

func (s *stubInvoiceRepo) GetByID(id string) (*models.Invoice, error) { return s.invoice, nil }
func (s *stubInvoiceRepo) GetByGuest(guestID string) (*models.Invoice, error) { return s.invoice, nil }
func (s *stubInvoiceRepo) GetAll() ([]models.Invoice, error) { return nil, nil }

func serviceCode(t *testing.T, err error) int {
	t.Helper()
	var se *utils.ServiceError
	if !errors.As(err, &se) {
		t.Fatalf("expected ServiceError, got %v", err)
	}
	return se.Code
}

func TestAppendValidation(t *testing.T) {
	svc := NewService(&stubTxnRepo{}, &stubInvoiceRepo{})

	cases := []struct {
		name string
		txn  models.Transaction
	}{
		{"zero amount", models.Transaction{Type: models.TxnAdvance, PaymentMethod: "cash", ReservationID: "r-1"}},
		{"bad type", models.Transaction{Amount: 100, Type: "tip", PaymentMethod: "cash", ReservationID: "r-1"}},
		{"no method", models.Transaction{Amount: 100, Type: models.TxnAdvance, ReservationID: "r-1"}},
		{"no link", models.Transaction{Amount: 100, Type: models.TxnAdvance, PaymentMethod: "cash"}},
	}
	for _, c := range cases {
		txn := c.txn
		_, err := svc.Append(&txn)
		if err == nil {
			t.Errorf("%s: expected error", c.name)
			continue
		}
		if code := serviceCode(t, err); code != 400 {
			t.Errorf("%s: expected 400, got %d", c.name, code)
		}
	}
}

func TestAppendAssignsIdentity(t *testing.T) {
	repo := &stubTxnRepo{}
	svc := NewService(repo, &stubInvoiceRepo{})

	out, err := svc.Append(&models.Transaction{
		Amount: 5000, Type: models.TxnAdvance, PaymentMethod: "card", ReservationID: "r-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.ID == "" || out.CreatedAt.IsZero() {
		t.Fatalf("expected id and timestamp to be set, got %+v", out)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected one persisted entry, got %d", len(repo.created))
	}
}

func TestPaymentPaysDownPendingInvoice(t *testing.T) {
	invoices := &stubInvoiceRepo{invoice: &models.Invoice{
		ID: "inv-1", GuestID: "g-1", Status: models.InvoicePending, BalanceDue: 8000,
	}}
	svc := NewService(&stubTxnRepo{}, invoices)

	_, err := svc.Append(&models.Transaction{
		Amount: 8000, Type: models.TxnPayment, PaymentMethod: "cash", GuestID: "g-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(invoices.updates) != 1 {
		t.Fatalf("expected one invoice update, got %d", len(invoices.updates))
	}
	update := invoices.updates[0]
	if update["balance_due"] != int64(0) {
		t.Errorf("expected balance_due 0, got %v", update["balance_due"])
	}
	if update["status"] != models.InvoicePaid {
		t.Errorf("expected status paid, got %v", update["status"])
	}
}

func TestOverpaymentFloorsBalanceAtZero(t *testing.T) {
	invoices := &stubInvoiceRepo{invoice: &models.Invoice{
		ID: "inv-1", GuestID: "g-1", Status: models.InvoicePending, BalanceDue: 3000,
	}}
	svc := NewService(&stubTxnRepo{}, invoices)

	_, err := svc.Append(&models.Transaction{
		Amount: 5000, Type: models.TxnPayment, PaymentMethod: "cash", GuestID: "g-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if invoices.updates[0]["balance_due"] != int64(0) {
		t.Errorf("expected balance_due floored at 0, got %v", invoices.updates[0]["balance_due"])
	}
}

func TestPaymentSkipsPaidInvoice(t *testing.T) {
	invoices := &stubInvoiceRepo{invoice: &models.Invoice{
		ID: "inv-1", GuestID: "g-1", Status: models.InvoicePaid, BalanceDue: 0,
	}}
	svc := NewService(&stubTxnRepo{}, invoices)

	_, err := svc.Append(&models.Transaction{
		Amount: 1000, Type: models.TxnPayment, PaymentMethod: "cash", GuestID: "g-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(invoices.updates) != 0 {
		t.Fatalf("paid invoice must not be touched, got updates %+v", invoices.updates)
	}
}

func TestNetAdvance(t *testing.T) {
	repo := &stubTxnRepo{byRes: []models.Transaction{
		{Type: models.TxnAdvance, Amount: 10000},
		{Type: models.TxnRefund, Amount: 3000},
		{Type: models.TxnPayment, Amount: 2000},
	}}
	svc := NewService(repo, &stubInvoiceRepo{})

	net, err := svc.NetAdvance("r-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if net != 7000 {
		t.Fatalf("expected net 7000, got %d", net)
	}
}

func TestNetAdvanceFloorsAtZero(t *testing.T) {
	repo := &stubTxnRepo{byRes: []models.Transaction{
		{Type: models.TxnAdvance, Amount: 1000},
		{Type: models.TxnRefund, Amount: 5000},
	}}
	svc := NewService(repo, &stubInvoiceRepo{})

	net, err := svc.NetAdvance("r-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if net != 0 {
		t.Fatalf("expected net floored at 0, got %d", net)
	}
}
