package scheduling

import (
	"context"
	"errors"
	"time"

	meetingRepo "talentsync/database/repository/meeting"
	slotRepo "talentsync/database/repository/slot"
	userRepo "talentsync/database/repository/user"
	"talentsync/models"
	"talentsync/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CalendarSync pushes a booked meeting to the recruiter's external calendar.
// Sync is best-effort: a failure is logged and the booking stands.
type CalendarSync interface {
	CreateEvent(ctx context.Context, recruiter *models.User, candidate *models.User, meeting *models.Meeting) (eventID, link string, err error)
}

// MeetingService owns the meeting lifecycle and drives the booking
// coordinator for every slot transition.
type MeetingService interface {
	CreateMeeting(ctx context.Context, recruiterID string, req models.CreateMeetingRequest) (*models.Meeting, error)
	GetMeeting(ctx context.Context, callerID, meetingID string) (*models.Meeting, error)
	ListMeetings(ctx context.Context, userID, role string, filter models.MeetingFilter) ([]models.Meeting, error)
	UpdateMeeting(ctx context.Context, meetingID, recruiterID string, patch models.UpdateMeetingRequest) (*models.Meeting, error)
	CancelMeeting(ctx context.Context, meetingID, callerID string) (*models.Meeting, error)
	CompleteMeeting(ctx context.Context, meetingID, recruiterID, feedback string) (*models.Meeting, error)
}

// DefaultMeetingService implements MeetingService.
type DefaultMeetingService struct {
	Meetings    meetingRepo.MeetingRepository
	Slots       slotRepo.SlotRepository
	Users       userRepo.UserRepository
	Coordinator *BookingCoordinator
	Calendar    CalendarSync // optional
}

// CreateMeeting books an interview against a covering slot of the candidate.
func (s *DefaultMeetingService) CreateMeeting(ctx context.Context, recruiterID string, req models.CreateMeetingRequest) (*models.Meeting, error) {
	interval := models.Interval{Start: req.Start, End: req.End}
	if !interval.IsValid() || !interval.IsFuture(time.Now()) {
		return nil, ErrValidation
	}

	candidate, err := s.Users.GetByID(ctx, req.CandidateID)
	if err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if candidate.Role != models.RoleCandidate {
		return nil, ErrNotFound
	}

	location := req.Location
	if location == "" {
		location = "Virtual Meeting"
	}
	meeting := &models.Meeting{
		ID:          uuid.New().String(),
		RecruiterID: recruiterID,
		CandidateID: req.CandidateID,
		Title:       req.Title,
		Description: req.Description,
		Interval:    interval,
		Location:    location,
	}

	if err := s.Coordinator.BookNew(ctx, meeting); err != nil {
		return nil, err
	}

	// Advisory only; the slot and meeting collections stay authoritative.
	if err := s.Users.SetStatus(ctx, candidate.ID, models.CandidateStatusScheduled); err != nil {
		utils.GetLogger().Warn("failed to update candidate status",
			zap.String("candidateID", candidate.ID), zap.Error(err))
	}

	s.syncCalendar(ctx, recruiterID, candidate, meeting)
	return meeting, nil
}

// syncCalendar pushes the meeting to the recruiter's calendar. Failures are
// logged and tolerated; calendar state may lag the store.
func (s *DefaultMeetingService) syncCalendar(ctx context.Context, recruiterID string, candidate *models.User, meeting *models.Meeting) {
	if s.Calendar == nil {
		return
	}
	recruiter, err := s.Users.GetByID(ctx, recruiterID)
	if err != nil || recruiter.CalendarToken == "" {
		return
	}
	eventID, link, err := s.Calendar.CreateEvent(ctx, recruiter, candidate, meeting)
	if err != nil {
		utils.GetLogger().Warn("calendar sync failed",
			zap.String("meetingID", meeting.ID), zap.Error(err))
		return
	}
	meeting.CalendarEventID = eventID
	meeting.CalendarLink = link
	if err := s.Meetings.Update(ctx, meeting); err != nil {
		utils.GetLogger().Warn("failed to store calendar reference",
			zap.String("meetingID", meeting.ID), zap.Error(err))
	}
}

// GetMeeting returns a meeting visible to one of its participants.
func (s *DefaultMeetingService) GetMeeting(ctx context.Context, callerID, meetingID string) (*models.Meeting, error) {
	meeting, err := s.Meetings.GetByID(ctx, meetingID)
	if err != nil {
		if errors.Is(err, meetingRepo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if meeting.RecruiterID != callerID && meeting.CandidateID != callerID {
		return nil, ErrForbidden
	}
	return meeting, nil
}

// ListMeetings returns the caller's meetings, filtered and ordered by start.
func (s *DefaultMeetingService) ListMeetings(ctx context.Context, userID, role string, filter models.MeetingFilter) ([]models.Meeting, error) {
	return s.Meetings.ListByParticipant(ctx, userID, role, filter)
}

// UpdateMeeting patches a scheduled meeting. An interval change runs through
// the coordinator's rebook; if that fails, nothing of the patch is applied.
func (s *DefaultMeetingService) UpdateMeeting(ctx context.Context, meetingID, recruiterID string, patch models.UpdateMeetingRequest) (*models.Meeting, error) {
	meeting, err := s.Meetings.GetByID(ctx, meetingID)
	if err != nil {
		if errors.Is(err, meetingRepo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if meeting.RecruiterID != recruiterID {
		return nil, ErrForbidden
	}
	if meeting.Status != models.MeetingStatusScheduled {
		return nil, ErrInvalidState
	}

	if patch.Title != nil {
		meeting.Title = *patch.Title
	}
	if patch.Description != nil {
		meeting.Description = *patch.Description
	}
	if patch.Location != nil {
		meeting.Location = *patch.Location
	}

	if patch.Start != nil || patch.End != nil {
		newInterval := meeting.Interval
		if patch.Start != nil {
			newInterval.Start = *patch.Start
		}
		if patch.End != nil {
			newInterval.End = *patch.End
		}
		if !newInterval.IsValid() || !newInterval.IsFuture(time.Now()) {
			return nil, ErrValidation
		}
		// Rebook persists the whole meeting, metadata changes included,
		// only once the slot swap has succeeded.
		if err := s.Coordinator.Rebook(ctx, meeting, newInterval); err != nil {
			return nil, err
		}
		return meeting, nil
	}

	if err := s.Meetings.Update(ctx, meeting); err != nil {
		return nil, err
	}
	return meeting, nil
}

// CancelMeeting cancels a scheduled meeting and frees its slot. Either
// participant may cancel. Cancelling twice reports ErrInvalidState without
// side effects.
func (s *DefaultMeetingService) CancelMeeting(ctx context.Context, meetingID, callerID string) (*models.Meeting, error) {
	meeting, err := s.Meetings.GetByID(ctx, meetingID)
	if err != nil {
		if errors.Is(err, meetingRepo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if meeting.RecruiterID != callerID && meeting.CandidateID != callerID {
		return nil, ErrForbidden
	}
	if meeting.IsTerminal() {
		return nil, ErrInvalidState
	}

	meeting.Status = models.MeetingStatusCancelled
	if err := s.Meetings.Update(ctx, meeting); err != nil {
		return nil, err
	}
	if err := s.Coordinator.Cancel(ctx, meeting); err != nil {
		return nil, err
	}

	s.refreshCandidateStatus(ctx, meeting.CandidateID)
	return meeting, nil
}

// CompleteMeeting marks a scheduled meeting as held. The slot stays booked as
// a historical record.
func (s *DefaultMeetingService) CompleteMeeting(ctx context.Context, meetingID, recruiterID, feedback string) (*models.Meeting, error) {
	meeting, err := s.Meetings.GetByID(ctx, meetingID)
	if err != nil {
		if errors.Is(err, meetingRepo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if meeting.RecruiterID != recruiterID {
		return nil, ErrForbidden
	}
	if meeting.Status != models.MeetingStatusScheduled {
		return nil, ErrInvalidState
	}

	meeting.Status = models.MeetingStatusCompleted
	if feedback != "" {
		meeting.Feedback = feedback
	}
	if err := s.Meetings.Update(ctx, meeting); err != nil {
		return nil, err
	}

	s.refreshCandidateStatus(ctx, meeting.CandidateID)
	return meeting, nil
}

func (s *DefaultMeetingService) refreshCandidateStatus(ctx context.Context, candidateID string) {
	count, err := s.Meetings.CountScheduled(ctx, candidateID)
	if err != nil {
		utils.GetLogger().Warn("failed to count scheduled meetings",
			zap.String("candidateID", candidateID), zap.Error(err))
		return
	}
	status := models.CandidateStatusAvailable
	if count > 0 {
		status = models.CandidateStatusScheduled
	}
	if err := s.Users.SetStatus(ctx, candidateID, status); err != nil {
		utils.GetLogger().Warn("failed to update candidate status",
			zap.String("candidateID", candidateID), zap.Error(err))
	}
}
