package models

// MatchRequest asks the suggester for one interview time with a candidate.
type MatchRequest struct {
	CandidateID     string           `json:"candidate_id" binding:"required"`
	DurationMinutes int              `json:"duration_minutes" binding:"required,min=1"`
	Preferences     MatchPreferences `json:"preferences"`
	Title           string           `json:"title"`
	Description     string           `json:"description"`
}

// MatchPreferences captures the recruiter's daily scheduling window. It is
// passed verbatim into the generation prompt; the core never enforces it.
type MatchPreferences struct {
	EarliestHour int    `json:"earliest_hour,omitempty"`
	LatestHour   int    `json:"latest_hour,omitempty"`
	Timezone     string `json:"timezone,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

// MatchResponse reports the suggested time and the meeting booked from it.
type MatchResponse struct {
	SuggestedStart string   `json:"suggested_start"`
	Meeting        *Meeting `json:"meeting,omitempty"`
}
