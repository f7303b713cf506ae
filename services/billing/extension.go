package billing

import (
	"fmt"

	"innkeep/models"
)

// ExtensionCharges breaks down what one extension added to an invoice.
type ExtensionCharges struct {
	ExtraNights    int   `json:"extraNights"`
	GrossRent      int64 `json:"grossRent"`
	DiscountAmount int64 `json:"discountAmount"`
	PromoDiscount  int64 `json:"promoDiscount"`
	FlatDiscount   int64 `json:"flatDiscount"`
	TaxAmount      int64 `json:"taxAmount"`
	NetCharge      int64 `json:"netCharge"`
}

// Extend appends a room-rent line for the additional nights and resettles the
// invoice. The stay's standard and promo percentages carry over to the new
// rent; the caller-supplied flat discount is clamped to the gross extra rent
// and added on top of any existing flat discount.
func Extend(inv *models.Invoice, roomNumber string, rate int64, extraNights int, flatDiscount int64) ExtensionCharges {
	ensurePercentages(inv)

	gross := rate * int64(extraNights)
	if flatDiscount < 0 {
		flatDiscount = 0
	}
	if flatDiscount > gross {
		flatDiscount = gross
	}

	prevDiscount := inv.DiscountAmount
	prevPromo := inv.PromoDiscount
	prevTax := inv.TaxAmount
	prevGrand := inv.GrandTotal

	inv.Items = append(inv.Items, models.InvoiceItem{
		Description: fmt.Sprintf("%s%s extension", roomLinePrefix, roomNumber),
		Quantity:    extraNights,
		UnitPrice:   rate,
	})
	inv.AdditionalDiscount += flatDiscount
	Recalculate(inv)

	return ExtensionCharges{
		ExtraNights:    extraNights,
		GrossRent:      gross,
		DiscountAmount: inv.DiscountAmount - prevDiscount,
		PromoDiscount:  inv.PromoDiscount - prevPromo,
		FlatDiscount:   flatDiscount,
		TaxAmount:      inv.TaxAmount - prevTax,
		NetCharge:      inv.GrandTotal - prevGrand,
	}
}
