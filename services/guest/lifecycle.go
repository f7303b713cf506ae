package guest

import (
	"time"

	"innkeep/models"
	"innkeep/services/billing"
	"innkeep/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// Get fetches one stay.
func (s *DefaultService) Get(guestID string) (*models.Guest, error) {
	g, err := s.Guests.GetByID(guestID)
	if err != nil {
		return nil, utils.Errf(500, "failed to fetch guest: %v", err)
	}
	if g == nil {
		return nil, utils.Errf(404, "guest not found")
	}
	return g, nil
}

// List fetches all stays.
func (s *DefaultService) List() ([]models.Guest, error) {
	guests, err := s.Guests.GetAll()
	if err != nil {
		return nil, utils.Errf(500, "failed to fetch guests: %v", err)
	}
	return guests, nil
}

func (s *DefaultService) invoiceFor(guestID string) (*models.Invoice, error) {
	inv, err := s.Invoices.GetByGuest(guestID)
	if err != nil {
		return nil, utils.Errf(500, "failed to fetch invoice: %v", err)
	}
	if inv == nil {
		return nil, utils.Errf(404, "invoice not found for guest")
	}
	return inv, nil
}

// syncFinancialSnapshot mirrors the invoice's current figures onto the stay.
func syncFinancialSnapshot(g *models.Guest, inv *models.Invoice) {
	g.TotalRent = inv.GrandTotal
	g.GST = inv.TaxAmount
	g.AdditionalDiscount = inv.AdditionalDiscount
	g.PromoDiscount = inv.PromoDiscount
	g.AdvancePayment = inv.AdvanceAdjusted
}

// Checkout closes a stay at the current instant.
func (s *DefaultService) Checkout(guestID string) (*CheckoutResult, error) {
	logger := utils.GetLogger()

	g, err := s.Get(guestID)
	if err != nil {
		return nil, err
	}
	if g.Status == models.GuestCheckedOut {
		return nil, utils.Errf(400, "guest is already checked out")
	}
	inv, err := s.invoiceFor(guestID)
	if err != nil {
		return nil, err
	}

	// Checkout is always real-time; the requested date is ignored.
	now := time.Now()
	actualNights := billing.NightsBetween(g.CheckInAt, now)

	refund := billing.Prorate(inv, actualNights, g.StayDuration)
	inv.UpdatedAt = now
	if err := s.Invoices.Update(inv); err != nil {
		return nil, utils.Errf(500, "failed to update invoice: %v", err)
	}

	g.CheckOutAt = now
	g.StayDuration = actualNights
	g.Status = models.GuestCheckedOut
	g.UpdatedAt = now
	syncFinancialSnapshot(g, inv)
	if err := s.Guests.Update(g); err != nil {
		return nil, utils.Errf(500, "failed to update guest: %v", err)
	}

	if err := s.Rooms.SetStatus(g.RoomID, models.RoomAvailable); err != nil {
		logger.Warn("failed to release room at checkout", zap.String("roomID", g.RoomID), zap.Error(err))
	}
	if g.ReservationID != "" {
		update := bson.M{"status": models.ReservationCheckedOut, "updated_at": now}
		if err := s.Reservations.UpdateSetDocument(g.ReservationID, update); err != nil {
			logger.Warn("failed to close linked reservation", zap.String("reservationID", g.ReservationID), zap.Error(err))
		}
	}
	if err := s.Notifier.NotifyCheckOut(g.RoomID, g.ID); err != nil {
		logger.Warn("inventory checkout notification failed", zap.String("guestID", g.ID), zap.Error(err))
	}

	return &CheckoutResult{Guest: g, Invoice: inv, RefundDue: refund}, nil
}

// Extend pushes the checkout date later and bills the additional nights.
func (s *DefaultService) Extend(guestID string, newCheckOut time.Time, flatDiscount int64) (*ExtendResult, error) {
	g, err := s.Get(guestID)
	if err != nil {
		return nil, err
	}
	if g.Status == models.GuestCheckedOut {
		return nil, utils.Errf(400, "a checked-out stay cannot be extended")
	}
	if newCheckOut.IsZero() || !g.CheckOutAt.Before(newCheckOut) {
		return nil, utils.Errf(400, "new checkout must be after the current checkout")
	}

	// Only the delta period is re-validated; the guest's own stay is
	// excluded from the scan.
	result, err := s.Checker.Check(g.RoomID, g.CheckOutAt, newCheckOut, g.ID)
	if err != nil {
		return nil, utils.Errf(500, "availability check failed: %v", err)
	}
	if !result.Available {
		return nil, utils.ErrWithDetails(400, "room is not available for the extension period", result.Conflicts)
	}

	room, err := s.Rooms.GetByID(g.RoomID)
	if err != nil || room == nil {
		return nil, utils.Errf(500, "failed to fetch room for extension")
	}
	inv, err := s.invoiceFor(guestID)
	if err != nil {
		return nil, err
	}

	extraNights := billing.NightsBetween(g.CheckOutAt, newCheckOut)
	charges := billing.Extend(inv, room.Number, room.Rate, extraNights, flatDiscount)

	now := time.Now()
	inv.UpdatedAt = now
	if err := s.Invoices.Update(inv); err != nil {
		return nil, utils.Errf(500, "failed to update invoice: %v", err)
	}

	g.CheckOutAt = newCheckOut
	g.StayDuration += extraNights
	g.UpdatedAt = now
	syncFinancialSnapshot(g, inv)
	if err := s.Guests.Update(g); err != nil {
		return nil, utils.Errf(500, "failed to update guest: %v", err)
	}

	if g.ReservationID != "" {
		update := bson.M{"end_at": newCheckOut, "updated_at": now}
		if err := s.Reservations.UpdateSetDocument(g.ReservationID, update); err != nil {
			utils.GetLogger().Warn("failed to extend linked reservation",
				zap.String("reservationID", g.ReservationID), zap.Error(err))
		}
	}

	return &ExtendResult{Guest: g, Charges: charges, Invoice: inv}, nil
}

// UpdateProfile edits contact fields and the mattress count.
func (s *DefaultService) UpdateProfile(guestID string, in ProfileUpdate) (*models.Guest, error) {
	g, err := s.Get(guestID)
	if err != nil {
		return nil, err
	}
	if g.Status == models.GuestCheckedOut {
		return nil, utils.Errf(400, "a checked-out stay cannot be edited")
	}

	if in.FullName != nil {
		if *in.FullName == "" {
			return nil, utils.Errf(400, "guest name must not be empty")
		}
		g.FullName = *in.FullName
	}
	if in.Phone != nil {
		g.Phone = *in.Phone
	}
	if in.Email != nil {
		g.Email = *in.Email
	}

	if in.Mattresses != nil && *in.Mattresses != g.Mattresses {
		room, err := s.Rooms.GetByID(g.RoomID)
		if err != nil || room == nil {
			return nil, utils.Errf(500, "failed to fetch room for mattress update")
		}
		cfg, err := s.Settings.Get()
		if err != nil {
			return nil, err
		}
		inv, err := s.invoiceFor(guestID)
		if err != nil {
			return nil, err
		}

		g.Mattresses = billing.ClampMattresses(*in.Mattresses)
		chargeable := billing.ChargeableMattresses(g.Mattresses, room.Category, room.BedType)
		billing.SetMattressLine(inv, chargeable, cfg.MattressRate)
		inv.UpdatedAt = time.Now()
		if err := s.Invoices.Update(inv); err != nil {
			return nil, utils.Errf(500, "failed to update invoice: %v", err)
		}
		syncFinancialSnapshot(g, inv)
	}

	g.UpdatedAt = time.Now()
	if err := s.Guests.Update(g); err != nil {
		return nil, utils.Errf(500, "failed to update guest: %v", err)
	}
	return g, nil
}
