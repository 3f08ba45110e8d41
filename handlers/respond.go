package handlers

import (
	"errors"
	"net/http"

	userRepo "talentsync/database/repository/user"
	"talentsync/services/availability"
	"talentsync/services/intelligence"
	"talentsync/services/scheduling"
	"talentsync/services/user"
	"talentsync/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps service errors onto HTTP statuses. Everything in the
// taxonomy is a recoverable caller outcome except the inconsistency marker,
// which is additionally logged for operational alerting.
func respondError(c *gin.Context, err error) {
	var overlap *availability.OverlapError

	switch {
	case errors.As(err, &overlap):
		utils.JSONError(c, http.StatusConflict, "Slot overlaps existing availability", overlap.Error())
	case errors.Is(err, availability.ErrValidation), errors.Is(err, scheduling.ErrValidation):
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
	case errors.Is(err, availability.ErrNotFound), errors.Is(err, scheduling.ErrNotFound),
		errors.Is(err, user.ErrNotFound), errors.Is(err, userRepo.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "Not found", err.Error())
	case errors.Is(err, availability.ErrForbidden), errors.Is(err, scheduling.ErrForbidden):
		utils.JSONError(c, http.StatusForbidden, "Not authorized", err.Error())
	case errors.Is(err, availability.ErrInvalidState), errors.Is(err, scheduling.ErrInvalidState):
		utils.JSONError(c, http.StatusConflict, "Operation not permitted in current state", err.Error())
	case errors.Is(err, scheduling.ErrNoAvailability):
		utils.JSONError(c, http.StatusNotFound, "No covering slot available", err.Error())
	case errors.Is(err, scheduling.ErrConflict):
		utils.JSONError(c, http.StatusConflict, "Slot was booked concurrently, please retry", err.Error())
	case errors.Is(err, intelligence.ErrNoOpenSlots):
		utils.JSONError(c, http.StatusNotFound, "No available time slots", err.Error())
	case errors.Is(err, intelligence.ErrSuggestionUnavailable):
		utils.JSONError(c, http.StatusServiceUnavailable, "Could not produce a usable suggestion", err.Error())
	case errors.Is(err, user.ErrEmailTaken):
		utils.JSONError(c, http.StatusConflict, "Email already registered", err.Error())
	case errors.Is(err, user.ErrInvalidCredentials):
		utils.JSONError(c, http.StatusUnauthorized, "Invalid email or password", err.Error())
	case errors.Is(err, scheduling.ErrInconsistent):
		utils.GetLogger().Error("inconsistent booking state surfaced to client", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Booking state inconsistent", "The operation could not be completed safely. Support has been notified.")
	default:
		utils.GetLogger().Error("unhandled service error", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error", "")
	}
}

// callerID returns the authenticated user's ID from the request context.
func callerID(c *gin.Context) string {
	return c.GetString("userID")
}

// callerRole returns the authenticated user's role from the request context.
func callerRole(c *gin.Context) string {
	return c.GetString("userRole")
}
