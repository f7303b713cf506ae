package billing

import (
	"testing"

	"innkeep/models"

	"github.com/stretchr/testify/require"
)

func TestComputeSingleNight(t *testing.T) {
	q := Compute(QuoteInput{
		RoomNumber:   "101",
		RoomCategory: models.CategoryDeluxe,
		BedType:      models.BedTwo,
		Rate:         18000,
		Nights:       1,
		TaxRate:      5,
	})

	require.Equal(t, int64(18000), q.Subtotal)
	require.Equal(t, int64(900), q.TaxAmount)
	require.Equal(t, int64(18900), q.GrandTotal)
	require.Equal(t, int64(18900), q.BalanceDue)
	require.Equal(t, models.InvoicePending, q.Status)
	require.Len(t, q.Items, 1)
	require.Equal(t, "Room 101 (Deluxe)", q.Items[0].Description)
}

func TestComputeIsDeterministic(t *testing.T) {
	in := QuoteInput{
		RoomNumber:     "204",
		RoomCategory:   models.CategoryExecutive,
		BedType:        models.BedOne,
		Rate:           12500,
		Nights:         3,
		Mattresses:     3,
		Decor:          []DecorLine{{Name: "Honeymoon Setup", Price: 4000}},
		StdDiscountPct: 10,
		PromoPct:       5,
		FlatDiscount:   500,
		TaxRate:        12,
		MattressRate:   1500,
		Advance:        10000,
	}
	a := Compute(in)
	b := Compute(in)
	require.Equal(t, a, b)
}

func TestComputePercentDiscountsSkipAddOns(t *testing.T) {
	q := Compute(QuoteInput{
		RoomNumber:     "101",
		RoomCategory:   models.CategoryStandard,
		BedType:        models.BedOne,
		Rate:           10000,
		Nights:         2,
		Mattresses:     2,
		Decor:          []DecorLine{{Name: "Birthday Setup", Price: 5000}},
		StdDiscountPct: 10,
		MattressRate:   1000,
	})

	// 10% of the 20000 room rent only, never of mattresses or decor.
	require.Equal(t, int64(2000), q.DiscountAmount)
	require.Equal(t, int64(27000), q.Subtotal)
	require.Equal(t, int64(25000), q.GrandTotal)
}

func TestComputeFlatDiscountClamped(t *testing.T) {
	q := Compute(QuoteInput{
		RoomNumber:   "101",
		RoomCategory: models.CategoryStandard,
		Rate:         5000,
		Nights:       1,
		FlatDiscount: 9000,
	})
	require.Equal(t, int64(5000), q.AdditionalDiscount)
	require.Equal(t, int64(0), q.GrandTotal)
	require.Equal(t, models.InvoicePaid, q.Status)
}

func TestComputeAdvanceSettlesBalance(t *testing.T) {
	q := Compute(QuoteInput{
		RoomNumber:   "101",
		RoomCategory: models.CategoryStandard,
		Rate:         10000,
		Nights:       2,
		Advance:      25000,
	})
	require.Equal(t, int64(20000), q.GrandTotal)
	require.Equal(t, int64(0), q.BalanceDue)
	require.Equal(t, models.InvoicePaid, q.Status)
}

func TestFreeMattressAllowance(t *testing.T) {
	cases := []struct {
		category string
		bedType  string
		want     int
	}{
		{models.CategoryPresidential, models.BedTwo, 2},
		{models.CategoryDuluxePlus, models.BedTwo, 2},
		{models.CategoryDeluxe, models.BedOne, 1},
		{models.CategoryExecutive, models.BedOne, 1},
		{models.CategoryStandard, models.BedTwo, 0},
		{models.CategoryStudio, models.BedStudio, 0},
	}
	for _, c := range cases {
		got := FreeMattressAllowance(c.category, c.bedType)
		if got != c.want {
			t.Errorf("FreeMattressAllowance(%q, %q) = %d, want %d", c.category, c.bedType, got, c.want)
		}
	}
}

func TestChargeableMattresses(t *testing.T) {
	cases := []struct {
		requested int
		category  string
		bedType   string
		want      int
	}{
		{3, models.CategoryDeluxe, models.BedOne, 2},
		{2, models.CategoryStandard, models.BedOne, 2},
		{2, models.CategoryPresidential, models.BedTwo, 0},
		{9, models.CategoryStandard, models.BedOne, 4},
		{-1, models.CategoryDeluxe, models.BedTwo, 0},
	}
	for _, c := range cases {
		got := ChargeableMattresses(c.requested, c.category, c.bedType)
		if got != c.want {
			t.Errorf("ChargeableMattresses(%d, %q, %q) = %d, want %d", c.requested, c.category, c.bedType, got, c.want)
		}
	}
}

func deluxeInvoice(nights int, rate int64) *models.Invoice {
	q := Compute(QuoteInput{
		RoomNumber:   "305",
		RoomCategory: models.CategoryDeluxe,
		BedType:      models.BedTwo,
		Rate:         rate,
		Nights:       nights,
	})
	inv := &models.Invoice{ID: "inv-1", GuestID: "g-1"}
	q.ApplyTo(inv)
	return inv
}

func TestSetMattressLine(t *testing.T) {
	inv := deluxeInvoice(2, 10000)

	SetMattressLine(inv, 2, 1500)
	require.Len(t, inv.Items, 2)
	require.Equal(t, int64(23000), inv.GrandTotal)

	SetMattressLine(inv, 1, 1500)
	require.Len(t, inv.Items, 2)
	require.Equal(t, int64(21500), inv.GrandTotal)

	SetMattressLine(inv, 0, 1500)
	require.Len(t, inv.Items, 1)
	require.Equal(t, int64(20000), inv.GrandTotal)
}

func TestProrateEarlyCheckout(t *testing.T) {
	inv := deluxeInvoice(4, 10000)
	inv.AdvanceAdjusted = 40000
	Recalculate(inv)
	require.Equal(t, int64(0), inv.BalanceDue)

	refund := Prorate(inv, 2, 4)
	require.Equal(t, int64(20000), refund)
	require.Equal(t, int64(20000), inv.GrandTotal)
	require.Equal(t, int64(0), inv.BalanceDue)
	require.Equal(t, models.InvoicePaid, inv.Status)
}

func TestProrateSameNightsIsNoOp(t *testing.T) {
	inv := deluxeInvoice(3, 10000)
	before := *inv

	refund := Prorate(inv, 3, 3)
	require.Equal(t, int64(0), refund)
	require.Equal(t, before.GrandTotal, inv.GrandTotal)
	require.Equal(t, before.Subtotal, inv.Subtotal)
}

func TestProrateKeepsPercentDiscounts(t *testing.T) {
	q := Compute(QuoteInput{
		RoomNumber:     "500",
		RoomCategory:   models.CategoryExecutive,
		Rate:           10000,
		Nights:         4,
		StdDiscountPct: 10,
	})
	inv := &models.Invoice{ID: "inv-2", GuestID: "g-2"}
	q.ApplyTo(inv)
	require.Equal(t, int64(4000), inv.DiscountAmount)

	Prorate(inv, 2, 4)
	require.Equal(t, int64(2000), inv.DiscountAmount)
	require.Equal(t, int64(18000), inv.GrandTotal)
}

func TestProrateAfterExtension(t *testing.T) {
	inv := deluxeInvoice(2, 10000)
	Extend(inv, "305", 10000, 2, 0)
	inv.AdvanceAdjusted = 40000
	Recalculate(inv)
	require.Equal(t, int64(40000), inv.GrandTotal)

	refund := Prorate(inv, 3, 4)
	require.Equal(t, int64(10000), refund)
	require.Equal(t, int64(30000), inv.GrandTotal)
	require.Len(t, inv.Items, 2)
	require.Equal(t, 2, inv.Items[0].Quantity)
	require.Equal(t, 1, inv.Items[1].Quantity)
	require.Equal(t, "Room 305 extension", inv.Items[1].Description)
}

func TestProrateDropsUnusedExtensionLine(t *testing.T) {
	inv := deluxeInvoice(2, 10000)
	Extend(inv, "305", 10000, 2, 0)

	refund := Prorate(inv, 2, 4)
	require.Equal(t, int64(0), refund)
	require.Equal(t, int64(20000), inv.GrandTotal)
	require.Len(t, inv.Items, 1)
	require.Equal(t, 2, inv.Items[0].Quantity)
}

func TestExtendAppendsRoomLine(t *testing.T) {
	inv := deluxeInvoice(2, 10000)
	inv.TaxRate = 10
	Recalculate(inv)
	require.Equal(t, int64(22000), inv.GrandTotal)

	charges := Extend(inv, "305", 10000, 2, 1000)
	require.Equal(t, 2, charges.ExtraNights)
	require.Equal(t, int64(20000), charges.GrossRent)
	require.Equal(t, int64(1000), charges.FlatDiscount)
	require.Equal(t, int64(1900), charges.TaxAmount)
	require.Equal(t, int64(20900), charges.NetCharge)
	require.Equal(t, int64(42900), inv.GrandTotal)
	require.Len(t, inv.Items, 2)
	require.Equal(t, "Room 305 extension", inv.Items[1].Description)
}

func TestExtendCarriesPercentages(t *testing.T) {
	q := Compute(QuoteInput{
		RoomNumber:     "101",
		RoomCategory:   models.CategoryStandard,
		Rate:           10000,
		Nights:         2,
		StdDiscountPct: 10,
		PromoPct:       5,
	})
	inv := &models.Invoice{ID: "inv-3", GuestID: "g-3"}
	q.ApplyTo(inv)

	charges := Extend(inv, "101", 10000, 1, 0)
	// 10% + 5% of the 10000 extra night.
	require.Equal(t, int64(1000), charges.DiscountAmount)
	require.Equal(t, int64(500), charges.PromoDiscount)
	require.Equal(t, int64(8500), charges.NetCharge)
}

func TestExtendClampsFlatDiscount(t *testing.T) {
	inv := deluxeInvoice(1, 5000)
	charges := Extend(inv, "305", 5000, 1, 8000)
	require.Equal(t, int64(5000), charges.FlatDiscount)
}

func TestRecalculatePreservesCancelled(t *testing.T) {
	inv := deluxeInvoice(2, 10000)
	inv.Status = models.InvoiceCancelled
	Recalculate(inv)
	require.Equal(t, models.InvoiceCancelled, inv.Status)
}

func TestRecalculateBackfillsPercentages(t *testing.T) {
	// An invoice persisted before percentage fields existed carries only the
	// discount amounts.
	inv := &models.Invoice{
		Items: []models.InvoiceItem{{
			Description: "Room 101 (Standard)",
			Quantity:    2,
			UnitPrice:   10000,
			Total:       20000,
		}},
		DiscountAmount: 2000,
	}
	Recalculate(inv)
	require.Equal(t, float64(10), inv.DiscountPct)
	require.Equal(t, int64(18000), inv.GrandTotal)
}
