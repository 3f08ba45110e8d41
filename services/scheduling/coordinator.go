package scheduling

import (
	"context"
	"errors"
	"time"

	meetingRepo "talentsync/database/repository/meeting"
	slotRepo "talentsync/database/repository/slot"
	"talentsync/models"
	"talentsync/utils"

	"go.uber.org/zap"
)

// compensationRetries bounds how often a failed rollback is retried before
// the coordinator gives up and reports the store as inconsistent.
const compensationRetries = 3

// BookingCoordinator atomically pairs meetings with slots. The slot store's
// conditional book is the linearization point; everything around it is an
// explicit saga with compensating actions, since the two records live in
// different collections.
type BookingCoordinator struct {
	Slots    slotRepo.SlotRepository
	Meetings meetingRepo.MeetingRepository
}

// BookNew finds a covering slot for the meeting's interval, persists the
// meeting and claims the slot. If the conditional book loses a race, the
// meeting record is rolled back and ErrConflict is returned so the caller can
// re-select availability.
func (c *BookingCoordinator) BookNew(ctx context.Context, meeting *models.Meeting) error {
	slot, err := c.Slots.FindCovering(ctx, meeting.CandidateID, meeting.Interval, "")
	if err != nil {
		if errors.Is(err, slotRepo.ErrNotFound) {
			return ErrNoAvailability
		}
		return err
	}

	meeting.SlotID = slot.ID
	meeting.Status = models.MeetingStatusScheduled
	if err := c.Meetings.Create(ctx, meeting); err != nil {
		return err
	}

	if _, err := c.Slots.Book(ctx, slot.ID, meeting.ID); err != nil {
		// The slot was claimed between FindCovering and Book. Take the
		// meeting record back out before reporting the conflict.
		if delErr := c.Meetings.Delete(ctx, meeting.ID); delErr != nil {
			utils.GetLogger().Error("failed to roll back meeting after lost booking race",
				zap.String("meetingID", meeting.ID),
				zap.String("slotID", slot.ID),
				zap.Error(delErr),
			)
			return ErrInconsistent
		}
		if errors.Is(err, slotRepo.ErrUnavailable) || errors.Is(err, slotRepo.ErrNotFound) {
			return ErrConflict
		}
		return err
	}
	return nil
}

// Rebook moves a scheduled meeting onto a slot covering newInterval. The
// meeting's current slot is excluded from the search so a meeting cannot
// "re-cover" itself. No mutation happens at all when no covering slot exists.
//
// This is the one place that needs a compensating action: once the old slot
// is released, any later failure must re-book it to the original meeting.
func (c *BookingCoordinator) Rebook(ctx context.Context, meeting *models.Meeting, newInterval models.Interval) error {
	newSlot, err := c.Slots.FindCovering(ctx, meeting.CandidateID, newInterval, meeting.SlotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrNotFound) {
			return ErrNoAvailability
		}
		return err
	}

	oldSlotID := meeting.SlotID
	if _, err := c.Slots.Release(ctx, oldSlotID); err != nil {
		return err
	}

	if _, err := c.Slots.Book(ctx, newSlot.ID, meeting.ID); err != nil {
		if compErr := c.compensate(ctx, oldSlotID, meeting.ID); compErr != nil {
			return compErr
		}
		if errors.Is(err, slotRepo.ErrUnavailable) || errors.Is(err, slotRepo.ErrNotFound) {
			return ErrConflict
		}
		return err
	}

	oldInterval := meeting.Interval
	meeting.Interval = newInterval
	meeting.SlotID = newSlot.ID
	if err := c.Meetings.Update(ctx, meeting); err != nil {
		meeting.Interval = oldInterval
		meeting.SlotID = oldSlotID
		if _, relErr := c.Slots.Release(ctx, newSlot.ID); relErr != nil {
			utils.GetLogger().Error("failed to release slot while unwinding rebook",
				zap.String("meetingID", meeting.ID),
				zap.String("slotID", newSlot.ID),
				zap.Error(relErr),
			)
			return ErrInconsistent
		}
		if compErr := c.compensate(ctx, oldSlotID, meeting.ID); compErr != nil {
			return compErr
		}
		return err
	}
	return nil
}

// Cancel releases the meeting's slot. Releasing is idempotent, so cancelling
// a meeting whose slot was already freed is safe. The release is retried like
// a compensation: by the time it runs the meeting is already cancelled, so a
// release that never lands would strand the slot in booked.
func (c *BookingCoordinator) Cancel(ctx context.Context, meeting *models.Meeting) error {
	if meeting.SlotID == "" {
		return nil
	}
	var lastErr error
	for attempt := 1; attempt <= compensationRetries; attempt++ {
		if _, lastErr = c.Slots.Release(ctx, meeting.SlotID); lastErr == nil {
			return nil
		}
		if errors.Is(lastErr, slotRepo.ErrNotFound) {
			// Slot deleted out from under a historical meeting; nothing to free.
			return nil
		}
		time.Sleep(time.Duration(attempt) * 50 * time.Millisecond)
	}
	utils.GetLogger().Error("slot release failed on cancel, store inconsistent",
		zap.String("meetingID", meeting.ID),
		zap.String("slotID", meeting.SlotID),
		zap.Int("attempts", compensationRetries),
		zap.Error(lastErr),
	)
	return ErrInconsistent
}

// compensate re-books the original slot to the original meeting after a
// failed rebook, retrying a bounded number of times. A compensation failure
// leaves a released slot that the meeting still references, which is why it
// is logged at error level and surfaced as ErrInconsistent.
func (c *BookingCoordinator) compensate(ctx context.Context, slotID, meetingID string) error {
	var lastErr error
	for attempt := 1; attempt <= compensationRetries; attempt++ {
		if _, lastErr = c.Slots.Book(ctx, slotID, meetingID); lastErr == nil {
			return nil
		}
		time.Sleep(time.Duration(attempt) * 50 * time.Millisecond)
	}
	utils.GetLogger().Error("booking compensation failed, store inconsistent",
		zap.String("meetingID", meetingID),
		zap.String("slotID", slotID),
		zap.Int("attempts", compensationRetries),
		zap.Error(lastErr),
	)
	return ErrInconsistent
}
