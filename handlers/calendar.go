package handlers

import (
	"net/http"
	"time"

	"talentsync/config"
	userRepo "talentsync/database/repository/user"
	"talentsync/services/calendar"
	"talentsync/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const calendarStateTTL = 10 * time.Minute

// CalendarHandler drives the calendar connect flow and event listing. It is
// only mounted when the OAuth credentials are configured.
type CalendarHandler struct {
	Calendar *calendar.Service
	Users    userRepo.UserRepository
}

func NewCalendarHandler(cal *calendar.Service, users userRepo.UserRepository) *CalendarHandler {
	return &CalendarHandler{Calendar: cal, Users: users}
}

// Connect returns the provider consent URL. The caller's identity rides in
// the OAuth state as a short-lived signed token, because the callback arrives
// from the provider without our auth header.
func (h *CalendarHandler) Connect(c *gin.Context) {
	user, err := h.Users.GetByID(c.Request.Context(), callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	state, err := utils.GenerateToken(user.ID, user.Email, "calendar-connect", calendarStateTTL)
	if err != nil {
		utils.GetLogger().Error("failed to sign calendar state", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start calendar connection"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"auth_url": h.Calendar.AuthURL(state, user.Email)})
}

// Callback completes the connect flow: it validates the state, exchanges the
// code, stores the serialized token on the user, and bounces the browser back
// to the frontend.
func (h *CalendarHandler) Callback(c *gin.Context) {
	code := c.Query("code")
	state := c.Query("state")
	if code == "" || state == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing code or state"})
		return
	}

	userID, role, err := utils.ExtractIdentityFromToken(state)
	if err != nil || role != "calendar-connect" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or expired state"})
		return
	}

	serialized, err := h.Calendar.Exchange(c.Request.Context(), code)
	if err != nil {
		utils.GetLogger().Error("calendar code exchange failed", zap.String("userID", userID), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to connect calendar"})
		return
	}

	if err := h.Users.SetCalendarToken(c.Request.Context(), userID, serialized); err != nil {
		respondError(c, err)
		return
	}

	utils.GetLogger().Info("calendar connected", zap.String("userID", userID))
	c.Redirect(http.StatusFound, config.AppConfig.FrontendURL+"/settings?calendar=connected")
}

// Events lists the caller's upcoming calendar events for the next two weeks.
func (h *CalendarHandler) Events(c *gin.Context) {
	user, err := h.Users.GetByID(c.Request.Context(), callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if user.CalendarToken == "" {
		c.JSON(http.StatusConflict, gin.H{"error": "calendar not connected"})
		return
	}

	now := time.Now()
	events, err := h.Calendar.ListEvents(c.Request.Context(), user, now, now.AddDate(0, 0, 14))
	if err != nil {
		utils.GetLogger().Warn("calendar event listing failed", zap.String("userID", user.ID), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch calendar events"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}
