package billing

import (
	"fmt"
	"math"
	"strings"

	"innkeep/models"
)

// Line item naming conventions. Room-rent lines (including extension lines)
// share the "Room " prefix so percentage discounts can locate them later.
const (
	roomLinePrefix   = "Room "
	MattressLineDesc = "Extra Mattress"
)

// DecorLine is one add-on folded into a quote.
type DecorLine struct {
	Name  string
	Price int64
}

// QuoteInput carries everything the engine needs to price a stay. All
// percentages are whole-number percents (5 means 5%).
type QuoteInput struct {
	RoomNumber   string
	RoomCategory string
	BedType      string
	Rate         int64
	Nights       int
	Mattresses   int
	Decor        []DecorLine

	StdDiscountPct float64
	PromoPct       float64
	FlatDiscount   int64

	TaxRate      float64
	MattressRate int64
	Advance      int64
}

// Quote is a deterministic invoice snapshot produced from a QuoteInput.
type Quote struct {
	Items                []models.InvoiceItem
	Subtotal             int64
	DiscountAmount       int64
	AdditionalDiscount   int64
	PromoDiscount        int64
	DiscountPct          float64
	PromoPct             float64
	TaxRate              float64
	TaxAmount            int64
	GrandTotal           int64
	AdvanceAdjusted      int64
	BalanceDue           int64
	Status               string
	ChargeableMattresses int
}

// roundHalfUp rounds to the nearest whole unit, halves away from zero toward
// positive. Applied only where a figure is labeled tax or discount.
func roundHalfUp(x float64) int64 {
	return int64(math.Floor(x + 0.5))
}

func roomLineDesc(number, category string) string {
	return fmt.Sprintf("%s%s (%s)", roomLinePrefix, number, category)
}

func isRoomLine(item models.InvoiceItem) bool {
	return strings.HasPrefix(item.Description, roomLinePrefix)
}

// RoomRentTotal sums the room-rent lines of an item list. Percentage
// discounts apply to this figure only, never to mattress or decor lines.
func RoomRentTotal(items []models.InvoiceItem) int64 {
	var total int64
	for _, item := range items {
		if isRoomLine(item) {
			total += item.Total
		}
	}
	return total
}

// Compute prices a stay. Output is fully determined by the input.
func Compute(in QuoteInput) Quote {
	chargeable := ChargeableMattresses(in.Mattresses, in.RoomCategory, in.BedType)

	items := []models.InvoiceItem{{
		Description: roomLineDesc(in.RoomNumber, in.RoomCategory),
		Quantity:    in.Nights,
		UnitPrice:   in.Rate,
		Total:       in.Rate * int64(in.Nights),
	}}
	if chargeable > 0 {
		items = append(items, models.InvoiceItem{
			Description: MattressLineDesc,
			Quantity:    chargeable,
			UnitPrice:   in.MattressRate,
			Total:       in.MattressRate * int64(chargeable),
		})
	}
	for _, d := range in.Decor {
		items = append(items, models.InvoiceItem{
			Description: d.Name,
			Quantity:    1,
			UnitPrice:   d.Price,
			Total:       d.Price,
		})
	}

	q := Quote{
		Items:                items,
		DiscountPct:          in.StdDiscountPct,
		PromoPct:             in.PromoPct,
		AdditionalDiscount:   in.FlatDiscount,
		TaxRate:              in.TaxRate,
		AdvanceAdjusted:      in.Advance,
		ChargeableMattresses: chargeable,
	}
	q.settle()
	return q
}

// settle derives every downstream figure from Items plus the discount and
// tax fields, enforcing the clamps along the way.
func (q *Quote) settle() {
	var subtotal int64
	for i := range q.Items {
		q.Items[i].Total = q.Items[i].UnitPrice * int64(q.Items[i].Quantity)
		subtotal += q.Items[i].Total
	}
	q.Subtotal = subtotal

	roomTotal := RoomRentTotal(q.Items)
	q.DiscountAmount = roundHalfUp(float64(roomTotal) * q.DiscountPct / 100)
	q.PromoDiscount = roundHalfUp(float64(roomTotal) * q.PromoPct / 100)

	if q.AdditionalDiscount < 0 {
		q.AdditionalDiscount = 0
	}
	if q.AdditionalDiscount > subtotal {
		q.AdditionalDiscount = subtotal
	}

	totalDiscount := q.DiscountAmount + q.AdditionalDiscount + q.PromoDiscount
	if totalDiscount > subtotal {
		totalDiscount = subtotal
	}

	net := subtotal - totalDiscount
	q.TaxAmount = roundHalfUp(float64(net) * q.TaxRate / 100)
	q.GrandTotal = net + q.TaxAmount

	q.BalanceDue = q.GrandTotal - q.AdvanceAdjusted
	if q.BalanceDue < 0 {
		q.BalanceDue = 0
	}
	if q.BalanceDue == 0 {
		q.Status = models.InvoicePaid
	} else {
		q.Status = models.InvoicePending
	}
}

// ApplyTo writes the quote's figures onto an invoice.
func (q Quote) ApplyTo(inv *models.Invoice) {
	inv.Items = q.Items
	inv.Subtotal = q.Subtotal
	inv.DiscountAmount = q.DiscountAmount
	inv.AdditionalDiscount = q.AdditionalDiscount
	inv.PromoDiscount = q.PromoDiscount
	inv.DiscountPct = q.DiscountPct
	inv.PromoPct = q.PromoPct
	inv.TaxRate = q.TaxRate
	inv.TaxAmount = q.TaxAmount
	inv.GrandTotal = q.GrandTotal
	inv.AdvanceAdjusted = q.AdvanceAdjusted
	inv.BalanceDue = q.BalanceDue
	inv.Status = q.Status
}

// ensurePercentages backfills the persisted percentage fields on invoices
// written before percentages were stored, by reverse-deriving them from the
// stored amounts against the current room-rent total.
func ensurePercentages(inv *models.Invoice) {
	roomTotal := RoomRentTotal(inv.Items)
	if roomTotal == 0 {
		return
	}
	if inv.DiscountPct == 0 && inv.DiscountAmount > 0 {
		inv.DiscountPct = float64(inv.DiscountAmount) / float64(roomTotal) * 100
	}
	if inv.PromoPct == 0 && inv.PromoDiscount > 0 {
		inv.PromoPct = float64(inv.PromoDiscount) / float64(roomTotal) * 100
	}
}

// Recalculate re-derives subtotal, discounts, tax, grand total and balance
// from the invoice's item list and persisted percentage fields. Cancelled
// invoices keep their status.
func Recalculate(inv *models.Invoice) {
	ensurePercentages(inv)

	q := Quote{
		Items:              inv.Items,
		DiscountPct:        inv.DiscountPct,
		PromoPct:           inv.PromoPct,
		AdditionalDiscount: inv.AdditionalDiscount,
		TaxRate:            inv.TaxRate,
		AdvanceAdjusted:    inv.AdvanceAdjusted,
	}
	q.settle()

	cancelled := inv.Status == models.InvoiceCancelled
	q.ApplyTo(inv)
	if cancelled {
		inv.Status = models.InvoiceCancelled
	}
}

// SetMattressLine inserts, updates or removes the mattress surcharge line and
// resettles the invoice.
func SetMattressLine(inv *models.Invoice, chargeable int, mattressRate int64) {
	idx := -1
	for i, item := range inv.Items {
		if item.Description == MattressLineDesc {
			idx = i
			break
		}
	}
	switch {
	case chargeable == 0 && idx >= 0:
		inv.Items = append(inv.Items[:idx], inv.Items[idx+1:]...)
	case chargeable > 0 && idx >= 0:
		inv.Items[idx].Quantity = chargeable
		inv.Items[idx].UnitPrice = mattressRate
	case chargeable > 0:
		inv.Items = append(inv.Items, models.InvoiceItem{
			Description: MattressLineDesc,
			Quantity:    chargeable,
			UnitPrice:   mattressRate,
		})
	}
	Recalculate(inv)
}

// AddDecorLine appends a billed decor package to the invoice and resettles.
func AddDecorLine(inv *models.Invoice, name string, price int64) {
	inv.Items = append(inv.Items, models.InvoiceItem{
		Description: name,
		Quantity:    1,
		UnitPrice:   price,
	})
	Recalculate(inv)
}
