package billing

import "innkeep/models"

// Prorate rescales the room-rent lines of an invoice when the actual stay
// length differs from the nights originally billed, then resettles every
// derived figure. Percentage discounts follow the room lines automatically;
// the flat additional discount does not scale. Returns the refund owed when
// the amount already paid exceeds the new grand total; balance due is zero in
// that case.
//
// Checking out exactly on the booked date is a no-op.
func Prorate(inv *models.Invoice, actualNights, originalNights int) int64 {
	if actualNights <= 0 || originalNights <= 0 || actualNights == originalNights {
		return 0
	}
	ensurePercentages(inv)

	// Nights are consumed against room-rent lines in billing order, so an
	// extension line only keeps whatever is left after the earlier lines are
	// exhausted. Fully unused lines drop out; overstayed nights land on the
	// last room line.
	remaining := actualNights
	lastRoom := -1
	items := inv.Items[:0]
	for _, item := range inv.Items {
		if !isRoomLine(item) {
			items = append(items, item)
			continue
		}
		if remaining <= 0 {
			continue
		}
		if item.Quantity > remaining {
			item.Quantity = remaining
		}
		remaining -= item.Quantity
		items = append(items, item)
		lastRoom = len(items) - 1
	}
	if remaining > 0 && lastRoom >= 0 {
		items[lastRoom].Quantity += remaining
	}
	inv.Items = items
	Recalculate(inv)

	refund := inv.AdvanceAdjusted - inv.GrandTotal
	if refund < 0 {
		return 0
	}
	return refund
}
