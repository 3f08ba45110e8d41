package meetingRepo

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

// MongoMeetingRepo implements MeetingRepository using MongoDB.
type MongoMeetingRepo struct {
	coll *mongo.Collection
}

// NewMongoMeetingRepo creates a new instance of MeetingRepository using MongoDB.
func NewMongoMeetingRepo() MeetingRepository {
	coll := database.Collection("meetings")
	repo := &MongoMeetingRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create meeting indexes: %v\n", err)
	}
	return repo
}

func (r *MongoMeetingRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "recruiter_id", Value: 1}, {Key: "interval.start", Value: 1}}},
		{Keys: bson.D{{Key: "candidate_id", Value: 1}, {Key: "interval.start", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create meeting indexes: %w", err)
	}
	return nil
}

// Create inserts a new meeting record.
func (r *MongoMeetingRepo) Create(ctx context.Context, meeting *models.Meeting) error {
	now := time.Now()
	meeting.CreatedAt = now
	meeting.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, meeting); err != nil {
		return fmt.Errorf("failed to create meeting: %w", err)
	}
	return nil
}

// GetByID retrieves a meeting by its unique ID.
func (r *MongoMeetingRepo) GetByID(ctx context.Context, id string) (*models.Meeting, error) {
	var meeting models.Meeting
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&meeting)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch meeting %s: %w", id, err)
	}
	return &meeting, nil
}

// ListByParticipant returns the meetings where the user appears in the given role.
func (r *MongoMeetingRepo) ListByParticipant(ctx context.Context, userID, role string, filter models.MeetingFilter) ([]models.Meeting, error) {
	query := bson.M{}
	if role == models.RoleCandidate {
		query["candidate_id"] = userID
	} else {
		query["recruiter_id"] = userID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	switch filter.Timeframe {
	case models.TimeframeUpcoming:
		query["interval.start"] = bson.M{"$gt": time.Now()}
	case models.TimeframePast:
		query["interval.end"] = bson.M{"$lt": time.Now()}
	}
	opts := options.Find().SetSort(bson.D{{Key: "interval.start", Value: 1}})

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list meetings for %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var meetings []models.Meeting
	if err := cursor.All(ctx, &meetings); err != nil {
		return nil, fmt.Errorf("failed to decode meetings: %w", err)
	}
	return meetings, nil
}

// ListByPair returns the meetings between one recruiter and one candidate,
// newest start first.
func (r *MongoMeetingRepo) ListByPair(ctx context.Context, recruiterID, candidateID string) ([]models.Meeting, error) {
	query := bson.M{"recruiter_id": recruiterID, "candidate_id": candidateID}
	opts := options.Find().SetSort(bson.D{{Key: "interval.start", Value: -1}})

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list meetings for pair: %w", err)
	}
	defer cursor.Close(ctx)

	var meetings []models.Meeting
	if err := cursor.All(ctx, &meetings); err != nil {
		return nil, fmt.Errorf("failed to decode meetings: %w", err)
	}
	return meetings, nil
}

// Update replaces the mutable fields of an existing meeting.
func (r *MongoMeetingRepo) Update(ctx context.Context, meeting *models.Meeting) error {
	meeting.UpdatedAt = time.Now()
	filter := bson.M{"id": meeting.ID}
	update := bson.M{"$set": meeting}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update meeting %s: %w", meeting.ID, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a meeting record.
func (r *MongoMeetingRepo) Delete(ctx context.Context, id string) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete meeting %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// CountScheduled returns the number of scheduled meetings the candidate has.
func (r *MongoMeetingRepo) CountScheduled(ctx context.Context, candidateID string) (int64, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{
		"candidate_id": candidateID,
		"status":       models.MeetingStatusScheduled,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count scheduled meetings: %w", err)
	}
	return count, nil
}
