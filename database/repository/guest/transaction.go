package guestRepo

import (
	"fmt"
	"time"

	"innkeep/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// CheckIn commits a full check-in atomically. Inside one Mongo transaction it
// re-runs the overlap scan (so the availability pre-check cannot be raced),
// inserts the guest, invoice and advance ledger entry, flips the room to
// occupied only if it is still available, transitions the linked reservation,
// marks decor pre-orders billed and deducts their inventory with
// stock-guarded decrements.
func (r *MongoGuestRepo) CheckIn(txn CheckInTxn) error {
	ctx, cancel := newContext(15 * time.Second)
	defer cancel()

	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	now := time.Now()
	txn.Guest.CreatedAt = now
	txn.Guest.UpdatedAt = now
	txn.Invoice.CreatedAt = now
	txn.Invoice.UpdatedAt = now

	txnFn := func(sc mongo.SessionContext) error {
		// Overlap re-check against committed stays.
		n, err := r.coll.CountDocuments(sc, stayOverlapFilter(
			txn.Guest.RoomID, txn.Guest.CheckInAt, txn.Guest.CheckOutAt, ""))
		if err != nil {
			return fmt.Errorf("stay overlap re-check failed: %w", err)
		}
		if n > 0 {
			return ErrRoomConflict
		}

		// Overlap re-check against active reservations, excluding the one
		// being converted.
		resFilter := bson.M{
			"room_id":  txn.Guest.RoomID,
			"status":   bson.M{"$in": bson.A{models.ReservationReserved, models.ReservationConfirmed}},
			"start_at": bson.M{"$lt": txn.Guest.CheckOutAt},
			"end_at":   bson.M{"$gt": txn.Guest.CheckInAt},
		}
		if txn.ReservationID != "" {
			resFilter["id"] = bson.M{"$ne": txn.ReservationID}
		}
		n, err = r.reservationColl.CountDocuments(sc, resFilter)
		if err != nil {
			return fmt.Errorf("reservation overlap re-check failed: %w", err)
		}
		if n > 0 {
			return ErrRoomConflict
		}

		if _, err := r.coll.InsertOne(sc, txn.Guest); err != nil {
			return fmt.Errorf("insert guest failed: %w", err)
		}
		if _, err := r.invoiceColl.InsertOne(sc, txn.Invoice); err != nil {
			return fmt.Errorf("insert invoice failed: %w", err)
		}

		// Conditional room flip: a concurrent check-in loses this update.
		res, err := r.roomColl.UpdateOne(sc,
			bson.M{"id": txn.Guest.RoomID, "status": models.RoomAvailable},
			bson.M{"$set": bson.M{"status": models.RoomOccupied, "updated_at": now}},
		)
		if err != nil {
			return fmt.Errorf("room status flip failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrRoomUnavailable
		}

		if txn.ReservationID != "" {
			_, err := r.reservationColl.UpdateOne(sc,
				bson.M{"id": txn.ReservationID},
				bson.M{"$set": bson.M{
					"status":     models.ReservationCheckedIn,
					"guest_id":   txn.Guest.ID,
					"updated_at": now,
				}},
			)
			if err != nil {
				return fmt.Errorf("reservation transition failed: %w", err)
			}
		}

		for _, d := range txn.Deductions {
			res, err := r.inventoryColl.UpdateOne(sc,
				bson.M{"id": d.ItemID, "stock": bson.M{"$gte": d.Quantity}},
				bson.M{"$inc": bson.M{"stock": -d.Quantity}},
			)
			if err != nil {
				return fmt.Errorf("stock deduction failed for item %s: %w", d.ItemID, err)
			}
			if res.MatchedCount == 0 {
				return ErrInsufficientStock
			}
		}
		for _, u := range txn.Usages {
			u.CreatedAt = now
			if _, err := r.usageColl.InsertOne(sc, u); err != nil {
				return fmt.Errorf("insert inventory usage failed: %w", err)
			}
		}

		if txn.Advance != nil {
			txn.Advance.CreatedAt = now
			if _, err := r.txnColl.InsertOne(sc, txn.Advance); err != nil {
				return fmt.Errorf("insert advance ledger entry failed: %w", err)
			}
		}

		if len(txn.DecorOrderIDs) > 0 {
			_, err := r.decorOrderColl.UpdateMany(sc,
				bson.M{"id": bson.M{"$in": txn.DecorOrderIDs}},
				bson.M{"$set": bson.M{
					"status":     models.DecorBilled,
					"guest_id":   txn.Guest.ID,
					"updated_at": now,
				}},
			)
			if err != nil {
				return fmt.Errorf("decor order billing flip failed: %w", err)
			}
		}

		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return err
	}

	return nil
}
