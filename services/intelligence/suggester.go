package intelligence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	meetingRepo "talentsync/database/repository/meeting"
	slotRepo "talentsync/database/repository/slot"
	"talentsync/models"
	"talentsync/utils"

	"go.uber.org/zap"
)

// ErrSuggestionUnavailable means the external generator timed out, returned
// malformed output, or proposed a time the store cannot honor. The caller is
// expected to fall back to manual slot selection; no partial booking happens.
var ErrSuggestionUnavailable = errors.New("no usable meeting-time suggestion")

// ErrNoOpenSlots means the candidate has no future availability to feed the
// generator with.
var ErrNoOpenSlots = errors.New("candidate has no open time slots")

// Suggester proposes one interview start time for a recruiter/candidate pair.
type Suggester interface {
	SuggestStart(ctx context.Context, recruiterID string, req models.MatchRequest) (time.Time, error)
}

// DefaultSuggester implements Suggester on top of the external text
// generator. The generator only ranks; every proposal is re-validated against
// the slot store and the recruiter's busy times before it is trusted.
type DefaultSuggester struct {
	Slots    slotRepo.SlotRepository
	Meetings meetingRepo.MeetingRepository
	Gen      TextGenerator
}

type intervalJSON struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// SuggestStart asks the generator for one start time and re-validates it.
func (s *DefaultSuggester) SuggestStart(ctx context.Context, recruiterID string, req models.MatchRequest) (time.Time, error) {
	now := time.Now()
	duration := time.Duration(req.DurationMinutes) * time.Minute

	slots, err := s.Slots.ListByCandidate(ctx, req.CandidateID, models.SlotStatusAvailable)
	if err != nil {
		return time.Time{}, err
	}
	var openSlots []models.Interval
	for _, slot := range slots {
		if slot.Interval.Start.After(now) && slot.Interval.Duration() >= duration {
			openSlots = append(openSlots, slot.Interval)
		}
	}
	if len(openSlots) == 0 {
		return time.Time{}, ErrNoOpenSlots
	}

	busy, err := s.recruiterBusy(ctx, recruiterID)
	if err != nil {
		return time.Time{}, err
	}

	prompt := buildPrompt(openSlots, busy, req)

	// Bounded call, and no in-process lock is held across it.
	genCtx, cancel := context.WithTimeout(ctx, utils.SuggestionTimeout)
	defer cancel()
	raw, err := s.Gen.GenerateContent(genCtx, prompt)
	if err != nil {
		utils.GetLogger().Warn("suggestion generation failed", zap.Error(err))
		return time.Time{}, ErrSuggestionUnavailable
	}

	start, err := ParseSuggestedStart(raw)
	if err != nil {
		utils.GetLogger().Warn("unparseable suggestion", zap.String("raw", raw), zap.Error(err))
		return time.Time{}, ErrSuggestionUnavailable
	}

	// The generator's output may be stale or plain wrong; check it against
	// the store before anyone books on it.
	proposed := models.Interval{Start: start, End: start.Add(duration)}
	if !proposed.IsFuture(now) {
		return time.Time{}, ErrSuggestionUnavailable
	}
	if _, err := s.Slots.FindCovering(ctx, req.CandidateID, proposed, ""); err != nil {
		return time.Time{}, ErrSuggestionUnavailable
	}
	for _, b := range busy {
		if proposed.Overlaps(b) {
			return time.Time{}, ErrSuggestionUnavailable
		}
	}
	return start, nil
}

func (s *DefaultSuggester) recruiterBusy(ctx context.Context, recruiterID string) ([]models.Interval, error) {
	meetings, err := s.Meetings.ListByParticipant(ctx, recruiterID, models.RoleRecruiter, models.MeetingFilter{
		Status:    models.MeetingStatusScheduled,
		Timeframe: models.TimeframeUpcoming,
	})
	if err != nil {
		return nil, err
	}
	busy := make([]models.Interval, 0, len(meetings))
	for _, m := range meetings {
		busy = append(busy, m.Interval)
	}
	return busy, nil
}

func buildPrompt(open, busy []models.Interval, req models.MatchRequest) string {
	toJSON := func(intervals []models.Interval) string {
		out := make([]intervalJSON, 0, len(intervals))
		for _, iv := range intervals {
			out = append(out, intervalJSON{
				Start: iv.Start.Format(time.RFC3339),
				End:   iv.End.Format(time.RFC3339),
			})
		}
		b, _ := json.Marshal(out)
		return string(b)
	}
	prefs, _ := json.Marshal(req.Preferences)

	return fmt.Sprintf(`Schedule a meeting between a recruiter and a candidate.

Candidate's available times:
%s

Recruiter's busy times:
%s

Recruiter's daily availability window (time of day only):
%s

Meeting duration: %d minutes.

Rules:
- Do not schedule during busy times.
- Respect recruiter's time-of-day preferences.
- Prefer buffer time before/after meetings.
- Avoid back-to-back meetings.

Respond with the top one suggested ISO start time.`,
		toJSON(open), toJSON(busy), string(prefs), req.DurationMinutes)
}

// ParseSuggestedStart extracts a strict RFC 3339 timestamp from the
// generator's reply, tolerating markdown code fences and surrounding noise
// but nothing looser than that.
func ParseSuggestedStart(raw string) (time.Time, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.ReplaceAll(cleaned, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.Trim(cleaned, "\"'` \n\t")

	// Some replies wrap the timestamp in prose; take the first token that
	// parses rather than guessing at formats.
	for _, field := range strings.Fields(cleaned) {
		field = strings.Trim(field, "\"'`.,")
		if t, err := time.Parse(time.RFC3339, field); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("no RFC 3339 timestamp in %q", raw)
}
