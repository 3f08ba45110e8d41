package intelligence

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	meetingRepo "talentsync/database/repository/meeting"
	slotRepo "talentsync/database/repository/slot"
	"talentsync/models"
)

type stubSlots struct {
	slots []models.Slot
}

func (s *stubSlots) InsertMany(ctx context.Context, slots []models.Slot) error { return nil }

func (s *stubSlots) GetByID(ctx context.Context, id string) (*models.Slot, error) {
	return nil, slotRepo.ErrNotFound
}

func (s *stubSlots) ListByCandidate(ctx context.Context, candidateID, status string) ([]models.Slot, error) {
	var out []models.Slot
	for _, slot := range s.slots {
		if slot.CandidateID == candidateID && (status == "" || slot.Status == status) {
			out = append(out, slot)
		}
	}
	return out, nil
}

func (s *stubSlots) FindCovering(ctx context.Context, candidateID string, interval models.Interval, excludeID string) (*models.Slot, error) {
	for _, slot := range s.slots {
		if slot.CandidateID == candidateID && slot.Status == models.SlotStatusAvailable &&
			slot.ID != excludeID && slot.Interval.Contains(interval) {
			out := slot
			return &out, nil
		}
	}
	return nil, slotRepo.ErrNotFound
}

func (s *stubSlots) Book(ctx context.Context, slotID, meetingID string) (*models.Slot, error) {
	return nil, slotRepo.ErrNotFound
}

func (s *stubSlots) Release(ctx context.Context, slotID string) (*models.Slot, error) {
	return nil, slotRepo.ErrNotFound
}

func (s *stubSlots) Delete(ctx context.Context, candidateID, slotID string) error {
	return slotRepo.ErrNotFound
}

type stubMeetings struct {
	meetings []models.Meeting
}

func (s *stubMeetings) Create(ctx context.Context, meeting *models.Meeting) error { return nil }

func (s *stubMeetings) GetByID(ctx context.Context, id string) (*models.Meeting, error) {
	return nil, meetingRepo.ErrNotFound
}

func (s *stubMeetings) ListByParticipant(ctx context.Context, userID, role string, filter models.MeetingFilter) ([]models.Meeting, error) {
	var out []models.Meeting
	for _, m := range s.meetings {
		if role == models.RoleRecruiter && m.RecruiterID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *stubMeetings) ListByPair(ctx context.Context, recruiterID, candidateID string) ([]models.Meeting, error) {
	return nil, nil
}

func (s *stubMeetings) Update(ctx context.Context, meeting *models.Meeting) error { return nil }
func (s *stubMeetings) Delete(ctx context.Context, id string) error               { return nil }

func (s *stubMeetings) CountScheduled(ctx context.Context, candidateID string) (int64, error) {
	return 0, nil
}

type stubGenerator struct {
	reply string
	err   error

	prompt string
}

func (g *stubGenerator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	g.prompt = prompt
	if g.err != nil {
		return "", g.err
	}
	return g.reply, nil
}

func openSlot(id string, start time.Time, duration time.Duration) models.Slot {
	return models.Slot{
		ID:          id,
		CandidateID: "cand-1",
		Interval:    models.Interval{Start: start, End: start.Add(duration)},
		Status:      models.SlotStatusAvailable,
	}
}

func matchRequest(minutes int) models.MatchRequest {
	return models.MatchRequest{CandidateID: "cand-1", DurationMinutes: minutes}
}

func TestParseSuggestedStart(t *testing.T) {
	want := time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		raw  string
		ok   bool
	}{
		{"bare timestamp", "2026-09-14T10:00:00Z", true},
		{"json fenced", "```json\n\"2026-09-14T10:00:00Z\"\n```", true},
		{"plain fenced", "```\n2026-09-14T10:00:00Z\n```", true},
		{"quoted", `"2026-09-14T10:00:00Z"`, true},
		{"embedded in prose", "The best time is 2026-09-14T10:00:00Z, given the buffers.", true},
		{"date only", "2026-09-14", false},
		{"empty", "", false},
		{"no timestamp", "I'm sorry, I cannot schedule this meeting.", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSuggestedStart(tt.raw)
			if tt.ok {
				if err != nil {
					t.Fatalf("ParseSuggestedStart(%q) error = %v", tt.raw, err)
				}
				if !got.Equal(want) {
					t.Errorf("ParseSuggestedStart(%q) = %v, want %v", tt.raw, got, want)
				}
				return
			}
			if err == nil {
				t.Errorf("ParseSuggestedStart(%q) = %v, want error", tt.raw, got)
			}
		})
	}
}

func TestSuggestStartAcceptsValidSuggestion(t *testing.T) {
	start := time.Now().Add(24 * time.Hour).Truncate(time.Second).UTC()
	s := &DefaultSuggester{
		Slots:    &stubSlots{slots: []models.Slot{openSlot("slot-1", start, 2 * time.Hour)}},
		Meetings: &stubMeetings{},
		Gen:      &stubGenerator{reply: start.Add(30 * time.Minute).Format(time.RFC3339)},
	}

	got, err := s.SuggestStart(context.Background(), "rec-1", matchRequest(60))
	if err != nil {
		t.Fatalf("SuggestStart() error = %v", err)
	}
	if !got.Equal(start.Add(30 * time.Minute)) {
		t.Errorf("SuggestStart() = %v, want %v", got, start.Add(30*time.Minute))
	}
}

func TestSuggestStartNoOpenSlots(t *testing.T) {
	past := time.Now().Add(-24 * time.Hour)
	tests := []struct {
		name  string
		slots []models.Slot
	}{
		{"no slots at all", nil},
		{"only past slots", []models.Slot{openSlot("slot-1", past, time.Hour)}},
		{"only too-short slots", []models.Slot{openSlot("slot-1", time.Now().Add(24*time.Hour), 30*time.Minute)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &DefaultSuggester{
				Slots:    &stubSlots{slots: tt.slots},
				Meetings: &stubMeetings{},
				Gen:      &stubGenerator{},
			}
			if _, err := s.SuggestStart(context.Background(), "rec-1", matchRequest(60)); !errors.Is(err, ErrNoOpenSlots) {
				t.Errorf("SuggestStart() error = %v, want ErrNoOpenSlots", err)
			}
		})
	}
}

func TestSuggestStartRejectsBadGeneratorOutput(t *testing.T) {
	start := time.Now().Add(24 * time.Hour).Truncate(time.Second).UTC()
	slots := []models.Slot{openSlot("slot-1", start, 2 * time.Hour)}

	tests := []struct {
		name string
		gen  *stubGenerator
	}{
		{"generator error", &stubGenerator{err: errors.New("quota exhausted")}},
		{"unparseable reply", &stubGenerator{reply: "sometime next week"}},
		{"past time", &stubGenerator{reply: time.Now().Add(-time.Hour).UTC().Format(time.RFC3339)}},
		{"outside any slot", &stubGenerator{reply: start.Add(72 * time.Hour).Format(time.RFC3339)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &DefaultSuggester{
				Slots:    &stubSlots{slots: slots},
				Meetings: &stubMeetings{},
				Gen:      tt.gen,
			}
			if _, err := s.SuggestStart(context.Background(), "rec-1", matchRequest(60)); !errors.Is(err, ErrSuggestionUnavailable) {
				t.Errorf("SuggestStart() error = %v, want ErrSuggestionUnavailable", err)
			}
		})
	}
}

func TestSuggestStartRejectsBusyOverlap(t *testing.T) {
	start := time.Now().Add(24 * time.Hour).Truncate(time.Second).UTC()
	s := &DefaultSuggester{
		Slots: &stubSlots{slots: []models.Slot{openSlot("slot-1", start, 2 * time.Hour)}},
		Meetings: &stubMeetings{meetings: []models.Meeting{{
			ID:          "m-1",
			RecruiterID: "rec-1",
			CandidateID: "cand-9",
			Status:      models.MeetingStatusScheduled,
			Interval:    models.Interval{Start: start, End: start.Add(time.Hour)},
		}}},
		Gen: &stubGenerator{reply: start.Format(time.RFC3339)},
	}

	// The proposal lands inside an open slot but collides with the
	// recruiter's own schedule.
	if _, err := s.SuggestStart(context.Background(), "rec-1", matchRequest(60)); !errors.Is(err, ErrSuggestionUnavailable) {
		t.Errorf("SuggestStart() error = %v, want ErrSuggestionUnavailable", err)
	}
}

func TestSuggestStartPromptCarriesSchedule(t *testing.T) {
	start := time.Now().Add(24 * time.Hour).Truncate(time.Second).UTC()
	gen := &stubGenerator{reply: start.Format(time.RFC3339)}
	s := &DefaultSuggester{
		Slots:    &stubSlots{slots: []models.Slot{openSlot("slot-1", start, 2 * time.Hour)}},
		Meetings: &stubMeetings{},
		Gen:      gen,
	}

	if _, err := s.SuggestStart(context.Background(), "rec-1", matchRequest(90)); err != nil {
		t.Fatalf("SuggestStart() error = %v", err)
	}
	for _, fragment := range []string{start.Format(time.RFC3339), "90 minutes"} {
		if !strings.Contains(gen.prompt, fragment) {
			t.Errorf("prompt missing %q", fragment)
		}
	}
}
