package handlers

import (
	"net/http"

	"talentsync/models"
	"talentsync/services/scheduling"

	"github.com/gin-gonic/gin"
)

// MeetingHandler exposes the meeting lifecycle endpoints.
type MeetingHandler struct {
	Meetings scheduling.MeetingService
}

func NewMeetingHandler(svc scheduling.MeetingService) *MeetingHandler {
	return &MeetingHandler{Meetings: svc}
}

// Create books a new interview against a candidate's availability.
func (h *MeetingHandler) Create(c *gin.Context) {
	var req models.CreateMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	meeting, err := h.Meetings.CreateMeeting(c.Request.Context(), callerID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"meeting": meeting})
}

// List returns the caller's meetings with optional status/timeframe filters.
func (h *MeetingHandler) List(c *gin.Context) {
	filter := models.MeetingFilter{
		Status:    c.Query("status"),
		Timeframe: c.Query("timeframe"),
	}
	meetings, err := h.Meetings.ListMeetings(c.Request.Context(), callerID(c), callerRole(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"meetings": meetings})
}

// Get returns one meeting visible to its participants.
func (h *MeetingHandler) Get(c *gin.Context) {
	meeting, err := h.Meetings.GetMeeting(c.Request.Context(), callerID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"meeting": meeting})
}

// Update patches a scheduled meeting; changing the time reschedules it onto
// a different covering slot.
func (h *MeetingHandler) Update(c *gin.Context) {
	var patch models.UpdateMeetingRequest
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	meeting, err := h.Meetings.UpdateMeeting(c.Request.Context(), c.Param("id"), callerID(c), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"meeting": meeting})
}

// Cancel cancels a scheduled meeting and frees its slot.
func (h *MeetingHandler) Cancel(c *gin.Context) {
	meeting, err := h.Meetings.CancelMeeting(c.Request.Context(), c.Param("id"), callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"meeting": meeting})
}

// Complete marks a meeting as held and records feedback.
func (h *MeetingHandler) Complete(c *gin.Context) {
	var body struct {
		Feedback string `json:"feedback"`
	}
	if err := c.ShouldBindJSON(&body); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	meeting, err := h.Meetings.CompleteMeeting(c.Request.Context(), c.Param("id"), callerID(c), body.Feedback)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"meeting": meeting})
}
