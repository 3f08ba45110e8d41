package availability

import (
	"context"
	"errors"
	"sync"
	"time"

	slotRepo "talentsync/database/repository/slot"
	userRepo "talentsync/database/repository/user"
	"talentsync/models"
	"talentsync/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AvailabilityService manages candidate availability windows.
type AvailabilityService interface {
	// AddSlots validates and stores a batch of availability windows for the
	// candidate. The batch is all-or-nothing: the first bad or overlapping
	// interval rejects the whole request.
	AddSlots(ctx context.Context, candidateID string, intervals []models.Interval) ([]models.Slot, error)
	// ListSlots returns the candidate's own slots, optionally narrowed by
	// status, ordered by start ascending.
	ListSlots(ctx context.Context, candidateID, status string) ([]models.Slot, error)
	// CandidateAvailability returns the public view of a candidate's open
	// future slots for recruiters.
	CandidateAvailability(ctx context.Context, candidateID string) (*models.User, []models.PublicSlot, error)
	// DeleteSlot removes one of the caller's own available slots. Booked
	// slots must be freed through meeting cancellation first.
	DeleteSlot(ctx context.Context, candidateID, slotID string) error
}

// candidateLocks serializes slot writes per candidate so an overlap check
// always sees a settled view of that candidate's slots. Keying by candidate
// keeps unrelated candidates fully parallel. Entries are reference-counted
// and dropped once the last holder releases, so the map only holds
// candidates with a write in flight.
type candidateLocks struct {
	mu    sync.Mutex
	locks map[string]*candidateLock
}

type candidateLock struct {
	sync.Mutex
	refs int
}

func (c *candidateLocks) acquire(candidateID string) *candidateLock {
	c.mu.Lock()
	if c.locks == nil {
		c.locks = make(map[string]*candidateLock)
	}
	lock, ok := c.locks[candidateID]
	if !ok {
		lock = &candidateLock{}
		c.locks[candidateID] = lock
	}
	lock.refs++
	c.mu.Unlock()

	lock.Lock()
	return lock
}

func (c *candidateLocks) release(candidateID string, lock *candidateLock) {
	lock.Unlock()

	c.mu.Lock()
	lock.refs--
	if lock.refs == 0 {
		delete(c.locks, candidateID)
	}
	c.mu.Unlock()
}

// DefaultAvailabilityService implements AvailabilityService.
type DefaultAvailabilityService struct {
	Repo  slotRepo.SlotRepository
	Users userRepo.UserRepository

	locks candidateLocks
}

// AddSlots validates and stores a batch of availability windows.
func (s *DefaultAvailabilityService) AddSlots(ctx context.Context, candidateID string, intervals []models.Interval) ([]models.Slot, error) {
	if len(intervals) == 0 {
		return nil, ErrValidation
	}

	// Per-candidate serialization point: no slot may slip in between the
	// overlap check and the insert.
	lock := s.locks.acquire(candidateID)
	defer s.locks.release(candidateID, lock)

	existing, err := s.Repo.ListByCandidate(ctx, candidateID, "")
	if err != nil {
		return nil, err
	}

	now := time.Now()
	slots := make([]models.Slot, 0, len(intervals))
	for _, interval := range intervals {
		if !interval.IsValid() || !interval.IsFuture(now) {
			return nil, ErrValidation
		}
		// Overlap checks run against every stored slot regardless of
		// status: a booked window is still a commitment.
		for _, other := range existing {
			if interval.Overlaps(other.Interval) {
				return nil, &OverlapError{Interval: interval, Existing: other.Interval}
			}
		}
		// And against the earlier intervals of this same batch.
		for _, accepted := range slots {
			if interval.Overlaps(accepted.Interval) {
				return nil, &OverlapError{Interval: interval, Existing: accepted.Interval}
			}
		}
		slots = append(slots, models.Slot{
			ID:          uuid.New().String(),
			CandidateID: candidateID,
			Interval:    interval,
			Status:      models.SlotStatusAvailable,
		})
	}

	if err := s.Repo.InsertMany(ctx, slots); err != nil {
		return nil, err
	}

	utils.GetLogger().Info("availability added",
		zap.String("candidateID", candidateID),
		zap.Int("slots", len(slots)),
	)
	return slots, nil
}

// ListSlots returns the candidate's own slots.
func (s *DefaultAvailabilityService) ListSlots(ctx context.Context, candidateID, status string) ([]models.Slot, error) {
	return s.Repo.ListByCandidate(ctx, candidateID, status)
}

// CandidateAvailability returns the public view of a candidate's open future slots.
func (s *DefaultAvailabilityService) CandidateAvailability(ctx context.Context, candidateID string) (*models.User, []models.PublicSlot, error) {
	user, err := s.Users.GetByID(ctx, candidateID)
	if err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	if user.Role != models.RoleCandidate {
		return nil, nil, ErrNotFound
	}

	slots, err := s.Repo.ListByCandidate(ctx, candidateID, models.SlotStatusAvailable)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	public := make([]models.PublicSlot, 0, len(slots))
	for _, slot := range slots {
		if slot.Interval.Start.After(now) {
			public = append(public, models.PublicSlot{ID: slot.ID, Interval: slot.Interval})
		}
	}
	return user, public, nil
}

// DeleteSlot removes one of the caller's own available slots.
func (s *DefaultAvailabilityService) DeleteSlot(ctx context.Context, candidateID, slotID string) error {
	lock := s.locks.acquire(candidateID)
	defer s.locks.release(candidateID, lock)

	err := s.Repo.Delete(ctx, candidateID, slotID)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, slotRepo.ErrBooked):
		return ErrInvalidState
	case errors.Is(err, slotRepo.ErrNotFound):
		return ErrNotFound
	default:
		return err
	}
}
