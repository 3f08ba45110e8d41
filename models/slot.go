package models

import "time"

// Slot status values.
const (
	SlotStatusAvailable = "available"
	SlotStatusBooked    = "booked"
)

// Slot represents one availability window offered by a candidate. A booked
// slot always carries the ID of the meeting that claimed it; an available slot
// never does. The interval is the candidate's original offering and is kept
// as-is even when a narrower meeting books it.
type Slot struct {
	ID          string    `bson:"id" json:"id"`
	CandidateID string    `bson:"candidate_id" json:"candidate_id"`
	Interval    Interval  `bson:"interval" json:"interval"`
	Status      string    `bson:"status" json:"status"`
	MeetingID   *string   `bson:"meeting_id,omitempty" json:"meeting_id,omitempty"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

// IsBooked reports whether the slot is currently claimed by a meeting.
func (s Slot) IsBooked() bool {
	return s.Status == SlotStatusBooked
}

// PublicSlot is the trimmed view exposed to recruiters browsing a candidate's
// availability.
type PublicSlot struct {
	ID       string   `json:"id"`
	Interval Interval `json:"interval"`
}

// AddSlotsRequest is the payload for bulk availability creation.
type AddSlotsRequest struct {
	Slots []Interval `json:"slots" binding:"required"`
}
