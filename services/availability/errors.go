package availability

import (
	"errors"
	"fmt"

	"talentsync/models"
)

// Recoverable outcomes surfaced to the routing layer.
var (
	// ErrValidation means an interval was malformed or not in the future.
	ErrValidation = errors.New("invalid time slot")
	// ErrNotFound means the slot or candidate does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden means the caller does not own the slot.
	ErrForbidden = errors.New("not authorized")
	// ErrInvalidState means the operation is illegal for the slot's status,
	// e.g. deleting a booked slot.
	ErrInvalidState = errors.New("slot state does not permit this operation")
)

// OverlapError rejects a new interval that intersects an existing slot of the
// same candidate, booked or not.
type OverlapError struct {
	Interval models.Interval
	Existing models.Interval
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("slot %s-%s overlaps existing slot %s-%s",
		e.Interval.Start.Format("2006-01-02T15:04"), e.Interval.End.Format("15:04"),
		e.Existing.Start.Format("2006-01-02T15:04"), e.Existing.End.Format("15:04"))
}
