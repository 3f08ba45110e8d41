package scheduling

import "errors"

// Recoverable outcomes surfaced to the routing layer.
var (
	// ErrValidation means the requested interval was malformed or past.
	ErrValidation = errors.New("invalid meeting interval")
	// ErrNotFound means the meeting or candidate does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden means the caller is neither the creating recruiter nor,
	// where permitted, the candidate of the meeting.
	ErrForbidden = errors.New("not authorized")
	// ErrInvalidState means the meeting's status forbids the operation,
	// e.g. updating a cancelled meeting or cancelling twice.
	ErrInvalidState = errors.New("meeting state does not permit this operation")
	// ErrNoAvailability means no available slot covers the requested interval.
	ErrNoAvailability = errors.New("no covering slot available")
	// ErrConflict means a concurrent booking claimed the slot first; the
	// caller should pick a slot again.
	ErrConflict = errors.New("slot was booked concurrently")
)

// ErrInconsistent means a compensating rollback itself failed and a booked
// slot may be left without a scheduled meeting. It is never returned for
// ordinary contention; it signals a store that needs operator remediation.
var ErrInconsistent = errors.New("booking state inconsistent, operator attention required")
