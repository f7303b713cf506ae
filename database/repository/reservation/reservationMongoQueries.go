package reservationRepo

import (
	"fmt"
	"time"

	"innkeep/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// overlapFilter matches active reservations intersecting [start, end) on a
// room. Half-open interval semantics: start_at < end AND end_at > start.
func overlapFilter(roomID string, start, end time.Time, excludeID string) bson.M {
	filter := bson.M{
		"room_id":  roomID,
		"status":   bson.M{"$in": bson.A{models.ReservationReserved, models.ReservationConfirmed}},
		"start_at": bson.M{"$lt": end},
		"end_at":   bson.M{"$gt": start},
	}
	if excludeID != "" {
		filter["id"] = bson.M{"$ne": excludeID}
	}
	return filter
}

// FindOverlapping returns active reservations intersecting the interval.
func (r *MongoReservationRepo) FindOverlapping(roomID string, start, end time.Time, excludeID string) ([]models.Reservation, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, overlapFilter(roomID, start, end, excludeID))
	if err != nil {
		return nil, fmt.Errorf("failed to query overlapping reservations: %w", err)
	}
	defer cursor.Close(ctx)

	out := make([]models.Reservation, 0)
	for cursor.Next(ctx) {
		var res models.Reservation
		if err := cursor.Decode(&res); err != nil {
			return nil, fmt.Errorf("failed to decode reservation: %w", err)
		}
		out = append(out, res)
	}
	return out, nil
}

// CreateWithOverlapCheck re-checks for overlapping reservations and active
// guest stays and inserts the reservation inside one transaction, so two
// concurrent bookings for the same room/interval cannot both commit.
func (r *MongoReservationRepo) CreateWithOverlapCheck(res *models.Reservation) error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	now := time.Now()
	res.CreatedAt = now
	res.UpdatedAt = now

	txnFn := func(sc mongo.SessionContext) error {
		n, err := r.coll.CountDocuments(sc, overlapFilter(res.RoomID, res.StartAt, res.EndAt, res.ID))
		if err != nil {
			return fmt.Errorf("overlap re-check failed: %w", err)
		}
		if n > 0 {
			return ErrOverlap
		}

		guestFilter := bson.M{
			"room_id":      res.RoomID,
			"status":       models.GuestCheckedIn,
			"check_in_at":  bson.M{"$lt": res.EndAt},
			"check_out_at": bson.M{"$gt": res.StartAt},
		}
		n, err = r.guestColl.CountDocuments(sc, guestFilter)
		if err != nil {
			return fmt.Errorf("guest overlap re-check failed: %w", err)
		}
		if n > 0 {
			return ErrOverlap
		}

		if _, err := r.coll.InsertOne(sc, res); err != nil {
			return fmt.Errorf("insert reservation failed: %w", err)
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
