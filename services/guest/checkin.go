package guest

import (
	"errors"
	"strings"
	"time"

	decorRepo "innkeep/database/repository/decor"
	discountRepo "innkeep/database/repository/discount"
	guestRepo "innkeep/database/repository/guest"
	invoiceRepo "innkeep/database/repository/invoice"
	reservationRepo "innkeep/database/repository/reservation"
	roomRepo "innkeep/database/repository/room"
	"innkeep/models"
	"innkeep/services/availability"
	"innkeep/services/billing"
	"innkeep/services/ledger"
	"innkeep/services/settings"
	"innkeep/services/tasks"
	"innkeep/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// DefaultService implements Service.
type DefaultService struct {
	Guests       guestRepo.GuestRepository
	Rooms        roomRepo.RoomRepository
	Reservations reservationRepo.ReservationRepository
	Invoices     invoiceRepo.InvoiceRepository
	Decor        decorRepo.DecorRepository
	Discounts    discountRepo.DiscountRepository
	Checker      availability.Checker
	Ledger       ledger.Service
	Settings     settings.Service
	Notifier     tasks.InventoryNotifier
}

// NewService creates a new instance of Service.
func NewService(
	guests guestRepo.GuestRepository,
	rooms roomRepo.RoomRepository,
	reservations reservationRepo.ReservationRepository,
	invoices invoiceRepo.InvoiceRepository,
	decor decorRepo.DecorRepository,
	discounts discountRepo.DiscountRepository,
	checker availability.Checker,
	ledgerSvc ledger.Service,
	settingsSvc settings.Service,
	notifier tasks.InventoryNotifier,
) Service {
	return &DefaultService{
		Guests:       guests,
		Rooms:        rooms,
		Reservations: reservations,
		Invoices:     invoices,
		Decor:        decor,
		Discounts:    discounts,
		Checker:      checker,
		Ledger:       ledgerSvc,
		Settings:     settingsSvc,
		Notifier:     notifier,
	}
}

// decorSelection is everything the check-in transaction needs to bill the
// stay's decor orders.
type decorSelection struct {
	lines      []billing.DecorLine
	orderIDs   []string
	walkInIDs  []string
	deductions []models.StockDeduction
	usages     []models.InventoryUsage
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// CheckIn validates, prices and commits a new stay.
func (s *DefaultService) CheckIn(in CheckInInput) (*CheckInResult, error) {
	logger := utils.GetLogger()

	if in.FullName == "" || in.Phone == "" {
		return nil, utils.Errf(400, "guest name and phone are required")
	}
	if in.CheckInAt.IsZero() || in.CheckOutAt.IsZero() {
		return nil, utils.Errf(400, "check-in and checkout dates are required")
	}
	if !in.CheckInAt.Before(in.CheckOutAt) {
		return nil, utils.Errf(400, "checkout must be after check-in")
	}
	now := time.Now()
	if startOfDay(in.CheckInAt).After(startOfDay(now)) {
		return nil, utils.Errf(400, "future stays must be booked as reservations")
	}

	room, err := s.Rooms.GetByNumber(in.RoomNumber)
	if err != nil {
		return nil, utils.Errf(500, "failed to fetch room: %v", err)
	}
	if room == nil {
		return nil, utils.Errf(404, "room %s not found", in.RoomNumber)
	}
	if room.Status == models.RoomMaintenance {
		return nil, utils.Errf(409, "room %s is under maintenance", room.Number)
	}
	if in.Adults < 1 {
		return nil, utils.Errf(400, "at least one adult is required")
	}
	if in.Adults > room.MaxAdults || in.Infants > room.MaxInfants {
		return nil, utils.Errf(400, "room %s accommodates at most %d adults and %d infants",
			room.Number, room.MaxAdults, room.MaxInfants)
	}

	// The linked reservation is excluded from the scan so converting it
	// does not conflict with itself.
	result, err := s.Checker.Check(room.ID, in.CheckInAt, in.CheckOutAt, in.ReservationID)
	if err != nil {
		return nil, utils.Errf(500, "availability check failed: %v", err)
	}
	if !result.Available {
		return nil, utils.ErrWithDetails(400, "room is not available for the requested dates", result.Conflicts)
	}

	var res *models.Reservation
	if in.ReservationID != "" {
		res, err = s.Reservations.GetByID(in.ReservationID)
		if err != nil {
			return nil, utils.Errf(500, "failed to fetch reservation: %v", err)
		}
		if res == nil {
			return nil, utils.Errf(404, "reservation not found")
		}
		if res.Status != models.ReservationReserved && res.Status != models.ReservationConfirmed {
			return nil, utils.Errf(400, "reservation is %s and cannot be checked in", res.Status)
		}
		if res.RoomID != room.ID {
			return nil, utils.Errf(400, "reservation is for room %s, not %s", res.RoomNumber, room.Number)
		}
	}

	advance := in.Advance
	if advance < 0 {
		return nil, utils.Errf(400, "advance must not be negative")
	}
	if res != nil {
		carried, err := s.Ledger.NetAdvance(res.ID)
		if err != nil {
			return nil, err
		}
		advance += carried
	}

	promoCode := strings.ToUpper(strings.TrimSpace(in.PromoCode))
	if promoCode == "" && res != nil {
		promoCode = strings.ToUpper(strings.TrimSpace(res.PromoCode))
	}
	var promoPct float64
	var promo *models.PromoCode
	if promoCode != "" {
		promo, err = s.Discounts.GetPromoByCode(promoCode)
		if err != nil {
			return nil, utils.Errf(500, "failed to look up promo code: %v", err)
		}
		if promo == nil || !promo.ValidOn(now) {
			return nil, utils.Errf(400, "invalid or expired promo code")
		}
		promoPct = promo.Percent
	}

	var stdPct float64
	if in.ApplyDiscount {
		d, err := s.Discounts.GetActiveDiscount(now)
		if err != nil {
			return nil, utils.Errf(500, "failed to look up active discount: %v", err)
		}
		if d != nil {
			stdPct = d.Percent
		}
	}

	cfg, err := s.Settings.Get()
	if err != nil {
		return nil, err
	}

	guestID := uuid.NewString()
	sel, err := s.collectDecor(in, guestID, room.ID)
	if err != nil {
		return nil, err
	}

	nights := billing.NightsBetween(in.CheckInAt, in.CheckOutAt)
	quote := billing.Compute(billing.QuoteInput{
		RoomNumber:     room.Number,
		RoomCategory:   room.Category,
		BedType:        room.BedType,
		Rate:           room.Rate,
		Nights:         nights,
		Mattresses:     in.Mattresses,
		Decor:          sel.lines,
		StdDiscountPct: stdPct,
		PromoPct:       promoPct,
		FlatDiscount:   in.AdditionalDiscount,
		TaxRate:        cfg.TaxRate,
		MattressRate:   cfg.MattressRate,
		Advance:        advance,
	})

	g := &models.Guest{
		ID:            guestID,
		FullName:      in.FullName,
		Phone:         in.Phone,
		Email:         in.Email,
		RoomID:        room.ID,
		RoomNumber:    room.Number,
		Adults:        in.Adults,
		Infants:       in.Infants,
		Mattresses:    billing.ClampMattresses(in.Mattresses),
		CheckInAt:     in.CheckInAt,
		CheckOutAt:    in.CheckOutAt,
		Status:        models.GuestCheckedIn,
		PaymentMethod: in.PaymentMethod,
		ReservationID: in.ReservationID,

		TotalRent:          quote.GrandTotal,
		GST:                quote.TaxAmount,
		AdditionalDiscount: quote.AdditionalDiscount,
		PromoCode:          promoCode,
		PromoDiscount:      quote.PromoDiscount,
		AdvancePayment:     advance,
		StayDuration:       nights,

		CreatedAt: now,
		UpdatedAt: now,
	}
	inv := &models.Invoice{
		ID:           uuid.NewString(),
		Number:       utils.NewInvoiceNumber(),
		GuestID:      guestID,
		GuestName:    in.FullName,
		RoomNumber:   room.Number,
		RoomCategory: room.Category,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	quote.ApplyTo(inv)

	var advanceEntry *models.Transaction
	if in.Advance > 0 {
		method := in.PaymentMethod
		if method == "" {
			method = "cash"
		}
		advanceEntry = &models.Transaction{
			ID:            uuid.NewString(),
			GuestID:       guestID,
			ReservationID: in.ReservationID,
			Amount:        in.Advance,
			Type:          models.TxnAdvance,
			PaymentMethod: method,
		}
	}

	err = s.Guests.CheckIn(guestRepo.CheckInTxn{
		Guest:         g,
		Invoice:       inv,
		ReservationID: in.ReservationID,
		DecorOrderIDs: sel.orderIDs,
		Deductions:    sel.deductions,
		Usages:        sel.usages,
		Advance:       advanceEntry,
	})
	if err != nil {
		s.cancelWalkInOrders(sel.walkInIDs)
		switch {
		case errors.Is(err, guestRepo.ErrRoomConflict):
			return nil, utils.Errf(400, "room was taken by another request for the requested dates")
		case errors.Is(err, guestRepo.ErrRoomUnavailable):
			return nil, utils.Errf(409, "room is not available for check-in")
		case errors.Is(err, guestRepo.ErrInsufficientStock):
			return nil, utils.Errf(409, "insufficient inventory stock for the selected decor")
		}
		return nil, utils.Errf(500, "failed to check in guest: %v", err)
	}

	// Post-commit best-effort steps. None of these can fail the check-in.
	if promo != nil {
		if err := s.Discounts.IncrementPromoUsage(promo.ID); err != nil {
			logger.Warn("failed to bump promo usage", zap.String("code", promo.Code), zap.Error(err))
		}
	}
	if err := s.Notifier.NotifyCheckIn(room.ID, guestID); err != nil {
		logger.Warn("inventory check-in notification failed", zap.String("guestID", guestID), zap.Error(err))
	}

	return &CheckInResult{Guest: g, Invoice: inv}, nil
}

// collectDecor gathers reservation pre-orders and the walk-in selection into
// one billing set. Walk-in orders are created pending up front and cancelled
// again if the check-in transaction fails.
func (s *DefaultService) collectDecor(in CheckInInput, guestID, roomID string) (*decorSelection, error) {
	sel := &decorSelection{}

	var orders []models.DecorOrder
	if in.ReservationID != "" {
		pre, err := s.Decor.GetPendingByReservation(in.ReservationID)
		if err != nil {
			return nil, utils.Errf(500, "failed to fetch decor pre-orders: %v", err)
		}
		orders = append(orders, pre...)
	}

	now := time.Now()
	for _, pkgID := range in.DecorPackageIDs {
		pkg, err := s.Decor.GetPackageByID(pkgID)
		if err != nil {
			return nil, utils.Errf(500, "failed to fetch decor package: %v", err)
		}
		if pkg == nil || !pkg.Active {
			return nil, utils.Errf(404, "decor package not found")
		}
		order := models.DecorOrder{
			ID:          uuid.NewString(),
			PackageID:   pkg.ID,
			PackageName: pkg.Name,
			Price:       pkg.Price,
			GuestID:     guestID,
			Status:      models.DecorPending,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := s.Decor.CreateOrder(&order); err != nil {
			s.cancelWalkInOrders(sel.walkInIDs)
			return nil, utils.Errf(500, "failed to create decor order: %v", err)
		}
		sel.walkInIDs = append(sel.walkInIDs, order.ID)
		orders = append(orders, order)
	}

	for _, order := range orders {
		pkg, err := s.Decor.GetPackageByID(order.PackageID)
		if err != nil {
			return nil, utils.Errf(500, "failed to fetch decor package: %v", err)
		}
		sel.orderIDs = append(sel.orderIDs, order.ID)
		sel.lines = append(sel.lines, billing.DecorLine{Name: order.PackageName, Price: order.Price})
		if pkg == nil {
			continue
		}
		for _, line := range pkg.Recipe {
			sel.deductions = append(sel.deductions, models.StockDeduction{
				ItemID:   line.ItemID,
				Quantity: line.Quantity,
			})
			sel.usages = append(sel.usages, models.InventoryUsage{
				ID:        uuid.NewString(),
				ItemID:    line.ItemID,
				ItemName:  line.ItemName,
				Quantity:  -line.Quantity,
				Reason:    models.UsageDecorBilling,
				GuestID:   guestID,
				RoomID:    roomID,
				CreatedAt: now,
			})
		}
	}
	return sel, nil
}

func (s *DefaultService) cancelWalkInOrders(ids []string) {
	for _, id := range ids {
		update := bson.M{"status": models.DecorCancelled, "updated_at": time.Now()}
		if err := s.Decor.UpdateOrderSet(id, update); err != nil {
			utils.GetLogger().Warn("failed to cancel walk-in decor order", zap.String("orderID", id), zap.Error(err))
		}
	}
}
