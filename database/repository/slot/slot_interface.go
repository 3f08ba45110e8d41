package slotRepo

import (
	"context"
	"errors"

	"talentsync/models"
)

// Storage-level outcomes the services translate into API errors.
var (
	// ErrNotFound means no slot matched the given ID (or owner).
	ErrNotFound = errors.New("slot not found")
	// ErrUnavailable means a conditional transition found the slot in the
	// wrong status, e.g. a book that lost the race to another booking.
	ErrUnavailable = errors.New("slot not available")
	// ErrBooked means a delete was attempted on a booked slot.
	ErrBooked = errors.New("slot is booked")
)

// SlotRepository defines data access for candidate availability windows.
//
// Book and Release are conditional single-document updates: Book flips
// available -> booked only if the slot is still available, Release is an
// idempotent booked -> available reset. The overlap invariant is enforced by
// the availability service, which serializes InsertMany per candidate.
type SlotRepository interface {
	// InsertMany stores a validated batch of slots for one candidate.
	InsertMany(ctx context.Context, slots []models.Slot) error
	// GetByID retrieves a slot by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Slot, error)
	// ListByCandidate returns the candidate's slots ordered by start time
	// ascending. status narrows the listing when non-empty.
	ListByCandidate(ctx context.Context, candidateID, status string) ([]models.Slot, error)
	// FindCovering returns the earliest-starting available slot of the
	// candidate whose interval fully contains the requested one. excludeID
	// skips one slot (used when rescheduling away from the current slot).
	FindCovering(ctx context.Context, candidateID string, interval models.Interval, excludeID string) (*models.Slot, error)
	// Book conditionally flips the slot to booked and links the meeting.
	// Returns ErrUnavailable if the slot is no longer available and
	// ErrNotFound if it does not exist.
	Book(ctx context.Context, slotID, meetingID string) (*models.Slot, error)
	// Release returns the slot to available and clears the meeting link.
	// Releasing an already-available slot is a no-op.
	Release(ctx context.Context, slotID string) (*models.Slot, error)
	// Delete removes an available slot owned by the candidate. Returns
	// ErrBooked when the slot is currently claimed by a meeting.
	Delete(ctx context.Context, candidateID, slotID string) error
}
