package handlers

import (
	"net/http"
	"time"

	"talentsync/models"
	"talentsync/services/intelligence"
	"talentsync/services/scheduling"

	"github.com/gin-gonic/gin"
)

// MatchHandler exposes the AI-assisted meeting-time matcher.
type MatchHandler struct {
	Suggester intelligence.Suggester
	Meetings  scheduling.MeetingService
}

func NewMatchHandler(suggester intelligence.Suggester, meetings scheduling.MeetingService) *MatchHandler {
	return &MatchHandler{Suggester: suggester, Meetings: meetings}
}

// Match asks the suggester for one interview time and books it. The
// suggestion is re-validated against the slot store before booking, and the
// booking itself goes through the same coordinator as a manual one, so a
// stale suggestion degrades into an ordinary conflict rather than a
// double-booking.
func (h *MatchHandler) Match(c *gin.Context) {
	var req models.MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	start, err := h.Suggester.SuggestStart(c.Request.Context(), callerID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}

	title := req.Title
	if title == "" {
		title = "Interview"
	}
	meeting, err := h.Meetings.CreateMeeting(c.Request.Context(), callerID(c), models.CreateMeetingRequest{
		CandidateID: req.CandidateID,
		Title:       title,
		Description: req.Description,
		Start:       start,
		End:         start.Add(time.Duration(req.DurationMinutes) * time.Minute),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Successfully found and scheduled meeting",
		"match": models.MatchResponse{
			SuggestedStart: start.Format(time.RFC3339),
			Meeting:        meeting,
		},
	})
}
