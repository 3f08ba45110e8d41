package handlers

import (
	userRepo "talentsync/database/repository/user"
)

// HandlerBundle groups all HTTP handlers plus the user repository needed by
// the auth middleware, so route registration takes one dependency.
type HandlerBundle struct {
	UserRepo userRepo.UserRepository

	Auth         *AuthHandler
	Availability *AvailabilityHandler
	Meetings     *MeetingHandler
	Schedule     *ScheduleHandler
	Match        *MatchHandler
	Calendar     *CalendarHandler
}
