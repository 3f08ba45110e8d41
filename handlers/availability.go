package handlers

import (
	"net/http"

	"talentsync/models"
	"talentsync/services/availability"

	"github.com/gin-gonic/gin"
)

// AvailabilityHandler exposes candidate slot management endpoints.
type AvailabilityHandler struct {
	Availability availability.AvailabilityService
}

func NewAvailabilityHandler(svc availability.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{Availability: svc}
}

// ListOwn returns the caller's slots, optionally filtered by status.
func (h *AvailabilityHandler) ListOwn(c *gin.Context) {
	slots, err := h.Availability.ListSlots(c.Request.Context(), callerID(c), c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"timeSlots": slots})
}

// GetCandidateAvailability returns a candidate's open future slots for recruiters.
func (h *AvailabilityHandler) GetCandidateAvailability(c *gin.Context) {
	candidate, slots, err := h.Availability.CandidateAvailability(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"candidate": gin.H{
			"id":     candidate.ID,
			"name":   candidate.Name,
			"email":  candidate.Email,
			"status": candidate.Status,
		},
		"availableSlots": slots,
	})
}

// AddSlots stores a batch of availability windows for the caller.
func (h *AvailabilityHandler) AddSlots(c *gin.Context) {
	var req models.AddSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	slots, err := h.Availability.AddSlots(c.Request.Context(), callerID(c), req.Slots)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":   "Time slots added successfully",
		"timeSlots": slots,
	})
}

// DeleteSlot removes one of the caller's available slots.
func (h *AvailabilityHandler) DeleteSlot(c *gin.Context) {
	if err := h.Availability.DeleteSlot(c.Request.Context(), callerID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Time slot deleted successfully"})
}
