package availability

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	slotRepo "talentsync/database/repository/slot"
	userRepo "talentsync/database/repository/user"
	"talentsync/models"
)

// stubSlotRepo is an in-memory SlotRepository for exercising the service's
// validation and serialization logic.
type stubSlotRepo struct {
	mu    sync.Mutex
	slots map[string]models.Slot

	insertErr error
}

func newStubSlotRepo() *stubSlotRepo {
	return &stubSlotRepo{slots: make(map[string]models.Slot)}
}

func (r *stubSlotRepo) InsertMany(ctx context.Context, slots []models.Slot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.insertErr != nil {
		return r.insertErr
	}
	for _, s := range slots {
		r.slots[s.ID] = s
	}
	return nil
}

func (r *stubSlotRepo) GetByID(ctx context.Context, id string) (*models.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.slots[id]
	if !ok {
		return nil, slotRepo.ErrNotFound
	}
	return &s, nil
}

func (r *stubSlotRepo) ListByCandidate(ctx context.Context, candidateID, status string) ([]models.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Slot
	for _, s := range r.slots {
		if s.CandidateID != candidateID {
			continue
		}
		if status != "" && s.Status != status {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (r *stubSlotRepo) FindCovering(ctx context.Context, candidateID string, interval models.Interval, excludeID string) (*models.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.slots {
		if s.CandidateID == candidateID && s.ID != excludeID &&
			s.Status == models.SlotStatusAvailable && s.Interval.Contains(interval) {
			out := s
			return &out, nil
		}
	}
	return nil, slotRepo.ErrNotFound
}

func (r *stubSlotRepo) Book(ctx context.Context, slotID, meetingID string) (*models.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.slots[slotID]
	if !ok {
		return nil, slotRepo.ErrNotFound
	}
	if s.Status != models.SlotStatusAvailable {
		return nil, slotRepo.ErrUnavailable
	}
	s.Status = models.SlotStatusBooked
	s.MeetingID = &meetingID
	r.slots[slotID] = s
	return &s, nil
}

func (r *stubSlotRepo) Release(ctx context.Context, slotID string) (*models.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.slots[slotID]
	if !ok {
		return nil, slotRepo.ErrNotFound
	}
	s.Status = models.SlotStatusAvailable
	s.MeetingID = nil
	r.slots[slotID] = s
	return &s, nil
}

func (r *stubSlotRepo) Delete(ctx context.Context, candidateID, slotID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.slots[slotID]
	if !ok || s.CandidateID != candidateID {
		return slotRepo.ErrNotFound
	}
	if s.Status == models.SlotStatusBooked {
		return slotRepo.ErrBooked
	}
	delete(r.slots, slotID)
	return nil
}

type stubUserRepo struct {
	users map[string]models.User
}

func (r *stubUserRepo) Create(ctx context.Context, user *models.User) error { return nil }

func (r *stubUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, userRepo.ErrNotFound
	}
	return &u, nil
}

func (r *stubUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return nil, userRepo.ErrNotFound
}

func (r *stubUserRepo) ListByRole(ctx context.Context, role string) ([]models.User, error) {
	return nil, nil
}

func (r *stubUserRepo) SetTokenHash(ctx context.Context, id, tokenHash string) error { return nil }
func (r *stubUserRepo) SetStatus(ctx context.Context, id, status string) error       { return nil }
func (r *stubUserRepo) SetCalendarToken(ctx context.Context, id, token string) error { return nil }

func futureInterval(startHours, durationMinutes int) models.Interval {
	start := time.Now().Add(time.Duration(startHours) * time.Hour).Truncate(time.Minute)
	return models.Interval{Start: start, End: start.Add(time.Duration(durationMinutes) * time.Minute)}
}

func newTestService(repo *stubSlotRepo) *DefaultAvailabilityService {
	return &DefaultAvailabilityService{
		Repo: repo,
		Users: &stubUserRepo{users: map[string]models.User{
			"cand-1": {ID: "cand-1", Name: "Dana", Role: models.RoleCandidate},
			"rec-1":  {ID: "rec-1", Name: "Riley", Role: models.RoleRecruiter},
		}},
	}
}

func TestAddSlotsStoresBatch(t *testing.T) {
	repo := newStubSlotRepo()
	svc := newTestService(repo)

	slots, err := svc.AddSlots(context.Background(), "cand-1", []models.Interval{
		futureInterval(24, 60),
		futureInterval(48, 60),
	})
	if err != nil {
		t.Fatalf("AddSlots() error = %v", err)
	}
	if len(slots) != 2 {
		t.Fatalf("AddSlots() returned %d slots, want 2", len(slots))
	}
	for _, s := range slots {
		if s.Status != models.SlotStatusAvailable {
			t.Errorf("slot %s status = %q, want available", s.ID, s.Status)
		}
		if s.CandidateID != "cand-1" {
			t.Errorf("slot %s candidate = %q, want cand-1", s.ID, s.CandidateID)
		}
	}
	if len(repo.slots) != 2 {
		t.Errorf("stored %d slots, want 2", len(repo.slots))
	}
}

func TestAddSlotsRejectsBadInput(t *testing.T) {
	good := futureInterval(24, 60)
	tests := []struct {
		name      string
		intervals []models.Interval
	}{
		{"empty batch", nil},
		{"zero-length interval", []models.Interval{{Start: good.Start, End: good.Start}}},
		{"reversed interval", []models.Interval{{Start: good.End, End: good.Start}}},
		{"past interval", []models.Interval{{
			Start: time.Now().Add(-2 * time.Hour),
			End:   time.Now().Add(-1 * time.Hour),
		}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newStubSlotRepo()
			svc := newTestService(repo)
			_, err := svc.AddSlots(context.Background(), "cand-1", tt.intervals)
			if !errors.Is(err, ErrValidation) {
				t.Errorf("AddSlots() error = %v, want ErrValidation", err)
			}
			if len(repo.slots) != 0 {
				t.Errorf("stored %d slots, want 0", len(repo.slots))
			}
		})
	}
}

func TestAddSlotsRejectsOverlapWithExisting(t *testing.T) {
	repo := newStubSlotRepo()
	svc := newTestService(repo)

	existing := futureInterval(24, 60)
	if _, err := svc.AddSlots(context.Background(), "cand-1", []models.Interval{existing}); err != nil {
		t.Fatalf("seeding slot: %v", err)
	}

	// Overlaps the existing window halfway through.
	overlapping := models.Interval{
		Start: existing.Start.Add(30 * time.Minute),
		End:   existing.End.Add(30 * time.Minute),
	}
	_, err := svc.AddSlots(context.Background(), "cand-1", []models.Interval{overlapping})
	var overlap *OverlapError
	if !errors.As(err, &overlap) {
		t.Fatalf("AddSlots() error = %v, want OverlapError", err)
	}
	if !overlap.Existing.Overlaps(overlapping) {
		t.Errorf("OverlapError reports non-overlapping existing interval %+v", overlap.Existing)
	}
}

func TestAddSlotsRejectsOverlapWithBookedSlot(t *testing.T) {
	repo := newStubSlotRepo()
	svc := newTestService(repo)

	existing := futureInterval(24, 60)
	seeded, err := svc.AddSlots(context.Background(), "cand-1", []models.Interval{existing})
	if err != nil {
		t.Fatalf("seeding slot: %v", err)
	}
	// A booked window is still a commitment.
	if _, err := repo.Book(context.Background(), seeded[0].ID, "meeting-1"); err != nil {
		t.Fatalf("booking seeded slot: %v", err)
	}

	overlapping := models.Interval{
		Start: existing.Start.Add(30 * time.Minute),
		End:   existing.End.Add(30 * time.Minute),
	}
	_, err = svc.AddSlots(context.Background(), "cand-1", []models.Interval{overlapping})
	var overlap *OverlapError
	if !errors.As(err, &overlap) {
		t.Fatalf("AddSlots() error = %v, want OverlapError against booked slot", err)
	}
}

func TestAddSlotsBatchIsAtomic(t *testing.T) {
	repo := newStubSlotRepo()
	svc := newTestService(repo)

	a := futureInterval(24, 60)
	b := models.Interval{Start: a.Start.Add(30 * time.Minute), End: a.End.Add(30 * time.Minute)}

	_, err := svc.AddSlots(context.Background(), "cand-1", []models.Interval{a, b})
	var overlap *OverlapError
	if !errors.As(err, &overlap) {
		t.Fatalf("AddSlots() error = %v, want OverlapError for intra-batch overlap", err)
	}
	if len(repo.slots) != 0 {
		t.Errorf("stored %d slots after rejected batch, want 0", len(repo.slots))
	}
}

func TestAddSlotsAllowsBackToBack(t *testing.T) {
	repo := newStubSlotRepo()
	svc := newTestService(repo)

	a := futureInterval(24, 60)
	b := models.Interval{Start: a.End, End: a.End.Add(time.Hour)}
	if _, err := svc.AddSlots(context.Background(), "cand-1", []models.Interval{a, b}); err != nil {
		t.Fatalf("AddSlots() error = %v for touching intervals", err)
	}

	// Other candidates are unaffected by cand-1's windows.
	if _, err := svc.AddSlots(context.Background(), "cand-2", []models.Interval{a}); err != nil {
		t.Fatalf("AddSlots() error = %v for a different candidate", err)
	}
}

func TestCandidateAvailability(t *testing.T) {
	repo := newStubSlotRepo()
	svc := newTestService(repo)

	open := futureInterval(24, 60)
	booked := futureInterval(48, 60)
	seeded, err := svc.AddSlots(context.Background(), "cand-1", []models.Interval{open, booked})
	if err != nil {
		t.Fatalf("seeding slots: %v", err)
	}
	for _, s := range seeded {
		if s.Interval.Start.Equal(booked.Start) {
			if _, err := repo.Book(context.Background(), s.ID, "meeting-1"); err != nil {
				t.Fatalf("booking slot: %v", err)
			}
		}
	}

	user, public, err := svc.CandidateAvailability(context.Background(), "cand-1")
	if err != nil {
		t.Fatalf("CandidateAvailability() error = %v", err)
	}
	if user.ID != "cand-1" {
		t.Errorf("user.ID = %q, want cand-1", user.ID)
	}
	if len(public) != 1 {
		t.Fatalf("public view has %d slots, want 1 (booked slot hidden)", len(public))
	}
	if !public[0].Interval.Start.Equal(open.Start) {
		t.Errorf("public slot start = %v, want %v", public[0].Interval.Start, open.Start)
	}
}

func TestCandidateAvailabilityRejectsNonCandidates(t *testing.T) {
	svc := newTestService(newStubSlotRepo())

	if _, _, err := svc.CandidateAvailability(context.Background(), "rec-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("CandidateAvailability(recruiter) error = %v, want ErrNotFound", err)
	}
	if _, _, err := svc.CandidateAvailability(context.Background(), "ghost"); !errors.Is(err, ErrNotFound) {
		t.Errorf("CandidateAvailability(unknown) error = %v, want ErrNotFound", err)
	}
}

func TestDeleteSlot(t *testing.T) {
	repo := newStubSlotRepo()
	svc := newTestService(repo)

	seeded, err := svc.AddSlots(context.Background(), "cand-1", []models.Interval{
		futureInterval(24, 60),
		futureInterval(48, 60),
	})
	if err != nil {
		t.Fatalf("seeding slots: %v", err)
	}
	if _, err := repo.Book(context.Background(), seeded[1].ID, "meeting-1"); err != nil {
		t.Fatalf("booking slot: %v", err)
	}

	if err := svc.DeleteSlot(context.Background(), "cand-1", seeded[0].ID); err != nil {
		t.Errorf("DeleteSlot(available) error = %v", err)
	}
	if err := svc.DeleteSlot(context.Background(), "cand-1", seeded[1].ID); !errors.Is(err, ErrInvalidState) {
		t.Errorf("DeleteSlot(booked) error = %v, want ErrInvalidState", err)
	}
	if err := svc.DeleteSlot(context.Background(), "cand-1", "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteSlot(missing) error = %v, want ErrNotFound", err)
	}
	// Ownership is part of the lookup.
	if err := svc.DeleteSlot(context.Background(), "cand-2", seeded[1].ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteSlot(other owner) error = %v, want ErrNotFound", err)
	}
}

func TestAddSlotsConcurrentSameCandidate(t *testing.T) {
	repo := newStubSlotRepo()
	svc := newTestService(repo)

	// Many goroutines race to add the same window; exactly one may win.
	interval := futureInterval(24, 60)
	const workers = 8
	results := make(chan error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.AddSlots(context.Background(), "cand-1", []models.Interval{interval})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var wins, overlaps int
	for err := range results {
		var overlap *OverlapError
		switch {
		case err == nil:
			wins++
		case errors.As(err, &overlap):
			overlaps++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	if wins != 1 {
		t.Errorf("%d concurrent adds succeeded, want exactly 1", wins)
	}
	if overlaps != workers-1 {
		t.Errorf("%d adds rejected as overlap, want %d", overlaps, workers-1)
	}
	if len(repo.slots) != 1 {
		t.Errorf("stored %d slots, want 1", len(repo.slots))
	}
	if remaining := lockCount(svc); remaining != 0 {
		t.Errorf("%d candidate locks retained after writes settled, want 0", remaining)
	}
}

func lockCount(svc *DefaultAvailabilityService) int {
	svc.locks.mu.Lock()
	defer svc.locks.mu.Unlock()
	return len(svc.locks.locks)
}

func TestCandidateLocksDrainAfterUse(t *testing.T) {
	repo := newStubSlotRepo()
	svc := newTestService(repo)

	// Writes for many distinct candidates must not leave a lock entry
	// behind once each write completes.
	const candidates = 20
	var wg sync.WaitGroup
	for i := 0; i < candidates; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			candidateID := fmt.Sprintf("cand-%d", n)
			if _, err := svc.AddSlots(context.Background(), candidateID, []models.Interval{futureInterval(24+n*2, 60)}); err != nil {
				t.Errorf("AddSlots(%s) error = %v", candidateID, err)
			}
		}(i)
	}
	wg.Wait()

	if len(repo.slots) != candidates {
		t.Errorf("stored %d slots, want %d", len(repo.slots), candidates)
	}
	if remaining := lockCount(svc); remaining != 0 {
		t.Errorf("%d candidate locks retained after writes settled, want 0", remaining)
	}
}
