package models

import "time"

// Meeting status values.
const (
	MeetingStatusScheduled = "scheduled"
	MeetingStatusCompleted = "completed"
	MeetingStatusCancelled = "cancelled"
)

// Timeframe filters for meeting listings.
const (
	TimeframeUpcoming = "upcoming"
	TimeframePast     = "past"
)

// Meeting represents a scheduled interview between one recruiter and one
// candidate. While scheduled, exactly one booked slot of the candidate points
// back at it; the terminal states keep the record for history but allow no
// further slot activity.
type Meeting struct {
	ID              string    `bson:"id" json:"id"`
	RecruiterID     string    `bson:"recruiter_id" json:"recruiter_id"`
	CandidateID     string    `bson:"candidate_id" json:"candidate_id"`
	SlotID          string    `bson:"slot_id" json:"slot_id"`
	Title           string    `bson:"title" json:"title"`
	Description     string    `bson:"description,omitempty" json:"description,omitempty"`
	Interval        Interval  `bson:"interval" json:"interval"`
	Location        string    `bson:"location" json:"location"`
	VideoCallLink   string    `bson:"video_call_link,omitempty" json:"video_call_link,omitempty"`
	CalendarLink    string    `bson:"calendar_link,omitempty" json:"calendar_link,omitempty"`
	CalendarEventID string    `bson:"calendar_event_id,omitempty" json:"calendar_event_id,omitempty"`
	Status          string    `bson:"status" json:"status"`
	Feedback        string    `bson:"feedback,omitempty" json:"feedback,omitempty"`
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time `bson:"updated_at" json:"updated_at"`
}

// IsTerminal reports whether the meeting may no longer mutate its interval or
// slot linkage.
func (m Meeting) IsTerminal() bool {
	return m.Status == MeetingStatusCompleted || m.Status == MeetingStatusCancelled
}

// CreateMeetingRequest is the payload for booking a new interview.
type CreateMeetingRequest struct {
	CandidateID string    `json:"candidate_id" binding:"required"`
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Start       time.Time `json:"start" binding:"required"`
	End         time.Time `json:"end" binding:"required"`
}

// UpdateMeetingRequest patches a scheduled meeting. Nil fields are left
// untouched; supplying Start/End reschedules through the booking coordinator.
type UpdateMeetingRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Location    *string    `json:"location,omitempty"`
	Start       *time.Time `json:"start,omitempty"`
	End         *time.Time `json:"end,omitempty"`
}

// MeetingFilter narrows meeting listings.
type MeetingFilter struct {
	Status    string
	Timeframe string
}
