package meetingRepo

import (
	"context"
	"errors"

	"talentsync/models"
)

// ErrNotFound means no meeting matched the given ID.
var ErrNotFound = errors.New("meeting not found")

// MeetingRepository defines data access for interview meetings.
type MeetingRepository interface {
	// Create inserts a new meeting record.
	Create(ctx context.Context, meeting *models.Meeting) error
	// GetByID retrieves a meeting by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Meeting, error)
	// ListByParticipant returns the meetings where the user appears in the
	// given role, narrowed by the filter and ordered by start ascending.
	ListByParticipant(ctx context.Context, userID, role string, filter models.MeetingFilter) ([]models.Meeting, error)
	// ListByPair returns the meetings between one recruiter and one
	// candidate, newest start first (used by the candidate directory).
	ListByPair(ctx context.Context, recruiterID, candidateID string) ([]models.Meeting, error)
	// Update replaces the mutable fields of an existing meeting.
	Update(ctx context.Context, meeting *models.Meeting) error
	// Delete removes a meeting record. Only the booking coordinator calls
	// this, to roll back a meeting whose slot booking lost a race.
	Delete(ctx context.Context, id string) error
	// CountScheduled returns the number of scheduled meetings the candidate
	// currently has (drives the advisory candidate status).
	CountScheduled(ctx context.Context, candidateID string) (int64, error)
}
