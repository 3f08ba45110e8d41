package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"talentsync/config"
	"talentsync/models"
	"talentsync/utils"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	calendarAPI "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// Event is the trimmed calendar event view returned to clients.
type Event struct {
	ID        string    `json:"id"`
	Summary   string    `json:"summary"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Link      string    `json:"link,omitempty"`
	Status    string    `json:"status"`
}

// Service wraps the Google Calendar collaborator. All calls are best-effort
// from the booking core's point of view; a calendar failure never unwinds a
// booked meeting.
type Service struct {
	oauth *oauth2.Config
}

// NewService builds the calendar service from the configured OAuth
// credentials. Returns nil when the credentials are absent, in which case
// calendar features stay switched off.
func NewService() *Service {
	cfg := config.AppConfig
	if cfg.GoogleClientID == "" || cfg.GoogleClientSecret == "" || cfg.GoogleRedirectURL == "" {
		return nil
	}
	return &Service{
		oauth: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{calendarAPI.CalendarEventsScope},
			Endpoint:     google.Endpoint,
		},
	}
}

// AuthURL returns the provider consent URL for the connect flow.
func (s *Service) AuthURL(state, loginHint string) string {
	opts := []oauth2.AuthCodeOption{oauth2.AccessTypeOffline}
	if loginHint != "" {
		opts = append(opts, oauth2.SetAuthURLParam("login_hint", loginHint))
	}
	return s.oauth.AuthCodeURL(state, opts...)
}

// Exchange trades the callback code for a token and serializes it for
// storage on the user record.
func (s *Service) Exchange(ctx context.Context, code string) (string, error) {
	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("failed to exchange authorization code: %w", err)
	}
	raw, err := json.Marshal(token)
	if err != nil {
		return "", fmt.Errorf("failed to serialize calendar token: %w", err)
	}
	return string(raw), nil
}

func (s *Service) client(ctx context.Context, serialized string) (*calendarAPI.Service, error) {
	var token oauth2.Token
	if err := json.Unmarshal([]byte(serialized), &token); err != nil {
		return nil, fmt.Errorf("stored calendar token is malformed: %w", err)
	}
	return calendarAPI.NewService(ctx, option.WithTokenSource(s.oauth.TokenSource(ctx, &token)))
}

// CreateEvent creates a calendar event for a booked meeting on the
// recruiter's primary calendar and returns the opaque event reference.
func (s *Service) CreateEvent(ctx context.Context, recruiter *models.User, candidate *models.User, meeting *models.Meeting) (string, string, error) {
	ctx, cancel := context.WithTimeout(ctx, utils.CalendarTimeout)
	defer cancel()

	svc, err := s.client(ctx, recruiter.CalendarToken)
	if err != nil {
		return "", "", err
	}

	event := &calendarAPI.Event{
		Summary:     meeting.Title,
		Description: meeting.Description,
		Location:    meeting.Location,
		Start:       &calendarAPI.EventDateTime{DateTime: meeting.Interval.Start.Format(time.RFC3339)},
		End:         &calendarAPI.EventDateTime{DateTime: meeting.Interval.End.Format(time.RFC3339)},
		Attendees: []*calendarAPI.EventAttendee{
			{Email: candidate.Email, DisplayName: candidate.Name},
		},
	}

	created, err := svc.Events.Insert("primary", event).Context(ctx).Do()
	if err != nil {
		return "", "", fmt.Errorf("failed to create calendar event: %w", err)
	}
	return created.Id, created.HtmlLink, nil
}

// ListEvents returns the user's upcoming events within the window.
func (s *Service) ListEvents(ctx context.Context, user *models.User, from, to time.Time) ([]Event, error) {
	ctx, cancel := context.WithTimeout(ctx, utils.CalendarTimeout)
	defer cancel()

	svc, err := s.client(ctx, user.CalendarToken)
	if err != nil {
		return nil, err
	}

	call := svc.Events.List("primary").
		TimeMin(from.Format(time.RFC3339)).
		TimeMax(to.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx)
	resp, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list calendar events: %w", err)
	}

	events := make([]Event, 0, len(resp.Items))
	for _, item := range resp.Items {
		ev := Event{ID: item.Id, Summary: item.Summary, Link: item.HtmlLink, Status: item.Status}
		if item.Start != nil && item.Start.DateTime != "" {
			ev.StartTime, _ = time.Parse(time.RFC3339, item.Start.DateTime)
		}
		if item.End != nil && item.End.DateTime != "" {
			ev.EndTime, _ = time.Parse(time.RFC3339, item.End.DateTime)
		}
		events = append(events, ev)
	}
	return events, nil
}
