package handlers

import (
	"net/http"

	"talentsync/services/user"

	"github.com/gin-gonic/gin"
)

// ScheduleHandler exposes the recruiter-facing candidate directory.
type ScheduleHandler struct {
	Accounts user.AccountService
}

func NewScheduleHandler(accounts user.AccountService) *ScheduleHandler {
	return &ScheduleHandler{Accounts: accounts}
}

// ListCandidates returns the candidate directory.
func (h *ScheduleHandler) ListCandidates(c *gin.Context) {
	candidates, err := h.Accounts.ListCandidates(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"candidates": candidates})
}

// GetCandidate returns one candidate with a derived availability status and
// the caller's meeting history with them.
func (h *ScheduleHandler) GetCandidate(c *gin.Context) {
	candidate, status, meetings, err := h.Accounts.CandidateDetail(c.Request.Context(), callerID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"candidate": gin.H{
			"id":        candidate.ID,
			"name":      candidate.Name,
			"email":     candidate.Email,
			"createdAt": candidate.CreatedAt,
		},
		"availabilityStatus": status,
		"meetings":           meetings,
	})
}
