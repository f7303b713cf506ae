package guestRepo

import (
	"fmt"
	"time"

	"innkeep/models"

	"go.mongodb.org/mongo-driver/bson"
)

// stayOverlapFilter matches checked-in guests intersecting [start, end) on a
// room. Half-open interval semantics.
func stayOverlapFilter(roomID string, start, end time.Time, excludeID string) bson.M {
	filter := bson.M{
		"room_id":      roomID,
		"status":       models.GuestCheckedIn,
		"check_in_at":  bson.M{"$lt": end},
		"check_out_at": bson.M{"$gt": start},
	}
	if excludeID != "" {
		filter["id"] = bson.M{"$ne": excludeID}
	}
	return filter
}

// FindOverlapping returns checked-in guests intersecting the interval.
func (r *MongoGuestRepo) FindOverlapping(roomID string, start, end time.Time, excludeID string) ([]models.Guest, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, stayOverlapFilter(roomID, start, end, excludeID))
	if err != nil {
		return nil, fmt.Errorf("failed to query overlapping guests: %w", err)
	}
	defer cursor.Close(ctx)

	out := make([]models.Guest, 0)
	for cursor.Next(ctx) {
		var g models.Guest
		if err := cursor.Decode(&g); err != nil {
			return nil, fmt.Errorf("failed to decode guest: %w", err)
		}
		out = append(out, g)
	}
	return out, nil
}
