package handlers

// HandlerBundle groups all endpoint handlers into one struct for route
// registration.
type HandlerBundle struct {
	Rooms        *RoomHandler
	Reservations *ReservationHandler
	Guests       *GuestHandler
	Invoices     *InvoiceHandler
	Decor        *DecorHandler
	Transactions *TransactionHandler
	Inventory    *InventoryHandler
	Discounts    *DiscountHandler
	Settings     *SettingsHandler
	Storage      *StorageHandler
}

// emptyIfNil keeps list payloads encoding as [] rather than null when a
// lookup matches nothing.
func emptyIfNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
