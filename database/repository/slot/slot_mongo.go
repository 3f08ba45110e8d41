package slotRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"talentsync/database"
	"talentsync/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSlotRepo implements SlotRepository using MongoDB.
type MongoSlotRepo struct {
	coll *mongo.Collection
}

// NewMongoSlotRepo creates a new instance of SlotRepository using MongoDB.
func NewMongoSlotRepo() SlotRepository {
	coll := database.Collection("slots")
	repo := &MongoSlotRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create slot indexes: %v\n", err)
	}
	return repo
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoSlotRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "candidate_id", Value: 1}, {Key: "interval.start", Value: 1}}},
		{Keys: bson.D{{Key: "candidate_id", Value: 1}, {Key: "status", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create slot indexes: %w", err)
	}
	return nil
}

// InsertMany stores a validated batch of slots for one candidate.
func (r *MongoSlotRepo) InsertMany(ctx context.Context, slots []models.Slot) error {
	if len(slots) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(slots))
	now := time.Now()
	for i := range slots {
		slots[i].CreatedAt = now
		slots[i].UpdatedAt = now
		docs = append(docs, slots[i])
	}
	// Ordered insert: a mid-batch failure inserts nothing past the failure,
	// and the caller treats any error as a full batch rejection.
	if _, err := r.coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true)); err != nil {
		return fmt.Errorf("failed to insert slots: %w", err)
	}
	return nil
}

// GetByID retrieves a slot by its unique ID.
func (r *MongoSlotRepo) GetByID(ctx context.Context, id string) (*models.Slot, error) {
	var slot models.Slot
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&slot)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch slot %s: %w", id, err)
	}
	return &slot, nil
}

// ListByCandidate returns the candidate's slots ordered by start ascending.
func (r *MongoSlotRepo) ListByCandidate(ctx context.Context, candidateID, status string) ([]models.Slot, error) {
	filter := bson.M{"candidate_id": candidateID}
	if status != "" {
		filter["status"] = status
	}
	opts := options.Find().SetSort(bson.D{{Key: "interval.start", Value: 1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list slots for candidate %s: %w", candidateID, err)
	}
	defer cursor.Close(ctx)

	var slots []models.Slot
	if err := cursor.All(ctx, &slots); err != nil {
		return nil, fmt.Errorf("failed to decode slots: %w", err)
	}
	return slots, nil
}

// FindCovering returns the earliest-starting available slot whose interval
// fully contains the requested one.
func (r *MongoSlotRepo) FindCovering(ctx context.Context, candidateID string, interval models.Interval, excludeID string) (*models.Slot, error) {
	filter := bson.M{
		"candidate_id":   candidateID,
		"status":         models.SlotStatusAvailable,
		"interval.start": bson.M{"$lte": interval.Start},
		"interval.end":   bson.M{"$gte": interval.End},
	}
	if excludeID != "" {
		filter["id"] = bson.M{"$ne": excludeID}
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "interval.start", Value: 1}})

	var slot models.Slot
	err := r.coll.FindOne(ctx, filter, opts).Decode(&slot)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find covering slot: %w", err)
	}
	return &slot, nil
}

// Book conditionally flips the slot to booked and links the meeting. The
// status filter makes this a compare-and-swap: of two concurrent bookings
// only one update matches, the other observes ErrUnavailable.
func (r *MongoSlotRepo) Book(ctx context.Context, slotID, meetingID string) (*models.Slot, error) {
	filter := bson.M{"id": slotID, "status": models.SlotStatusAvailable}
	update := bson.M{"$set": bson.M{
		"status":     models.SlotStatusBooked,
		"meeting_id": meetingID,
		"updated_at": time.Now(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var slot models.Slot
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&slot)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Distinguish a missing slot from one that lost the race.
			if _, getErr := r.GetByID(ctx, slotID); getErr != nil {
				return nil, getErr
			}
			return nil, ErrUnavailable
		}
		return nil, fmt.Errorf("failed to book slot %s: %w", slotID, err)
	}
	return &slot, nil
}

// Release returns the slot to available and clears the meeting link.
func (r *MongoSlotRepo) Release(ctx context.Context, slotID string) (*models.Slot, error) {
	filter := bson.M{"id": slotID}
	update := bson.M{
		"$set":   bson.M{"status": models.SlotStatusAvailable, "updated_at": time.Now()},
		"$unset": bson.M{"meeting_id": ""},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var slot models.Slot
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&slot)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to release slot %s: %w", slotID, err)
	}
	return &slot, nil
}

// Delete removes an available slot owned by the candidate.
func (r *MongoSlotRepo) Delete(ctx context.Context, candidateID, slotID string) error {
	filter := bson.M{
		"id":           slotID,
		"candidate_id": candidateID,
		"status":       models.SlotStatusAvailable,
	}
	res, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete slot %s: %w", slotID, err)
	}
	if res.DeletedCount == 0 {
		slot, getErr := r.GetByID(ctx, slotID)
		if getErr != nil {
			return getErr
		}
		if slot.CandidateID != candidateID {
			return ErrNotFound
		}
		return ErrBooked
	}
	return nil
}
