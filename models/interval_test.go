package models

import (
	"testing"
	"time"
)

func at(hour, min int) time.Time {
	return time.Date(2026, 3, 10, hour, min, 0, 0, time.UTC)
}

func TestIntervalOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Interval
		want bool
	}{
		{
			name: "identical intervals overlap",
			a:    Interval{Start: at(10, 0), End: at(11, 0)},
			b:    Interval{Start: at(10, 0), End: at(11, 0)},
			want: true,
		},
		{
			name: "partial overlap",
			a:    Interval{Start: at(10, 0), End: at(11, 0)},
			b:    Interval{Start: at(10, 30), End: at(11, 30)},
			want: true,
		},
		{
			name: "containment overlaps",
			a:    Interval{Start: at(9, 0), End: at(12, 0)},
			b:    Interval{Start: at(10, 0), End: at(11, 0)},
			want: true,
		},
		{
			name: "back to back does not overlap",
			a:    Interval{Start: at(10, 0), End: at(11, 0)},
			b:    Interval{Start: at(11, 0), End: at(12, 0)},
			want: false,
		},
		{
			name: "disjoint does not overlap",
			a:    Interval{Start: at(9, 0), End: at(10, 0)},
			b:    Interval{Start: at(14, 0), End: at(15, 0)},
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Errorf("a.Overlaps(b) = %v, want %v", got, tt.want)
			}
			// Overlap is symmetric.
			if got := tt.b.Overlaps(tt.a); got != tt.want {
				t.Errorf("b.Overlaps(a) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIntervalContains(t *testing.T) {
	tests := []struct {
		name  string
		outer Interval
		inner Interval
		want  bool
	}{
		{
			name:  "exact match",
			outer: Interval{Start: at(10, 0), End: at(11, 0)},
			inner: Interval{Start: at(10, 0), End: at(11, 0)},
			want:  true,
		},
		{
			name:  "wider slot covers meeting",
			outer: Interval{Start: at(9, 0), End: at(12, 0)},
			inner: Interval{Start: at(10, 0), End: at(10, 30)},
			want:  true,
		},
		{
			name:  "starts too early",
			outer: Interval{Start: at(10, 0), End: at(12, 0)},
			inner: Interval{Start: at(9, 30), End: at(10, 30)},
			want:  false,
		},
		{
			name:  "ends too late",
			outer: Interval{Start: at(10, 0), End: at(11, 0)},
			inner: Interval{Start: at(10, 30), End: at(11, 30)},
			want:  false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.outer.Contains(tt.inner); got != tt.want {
				t.Errorf("Contains() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIntervalIsValid(t *testing.T) {
	if (Interval{Start: at(10, 0), End: at(10, 0)}).IsValid() {
		t.Error("zero-length interval must be invalid")
	}
	if (Interval{Start: at(11, 0), End: at(10, 0)}).IsValid() {
		t.Error("reversed interval must be invalid")
	}
	if !(Interval{Start: at(10, 0), End: at(10, 1)}).IsValid() {
		t.Error("one-minute interval must be valid")
	}
}

func TestIntervalIsFuture(t *testing.T) {
	now := at(10, 0)
	if (Interval{Start: at(10, 0), End: at(11, 0)}).IsFuture(now) {
		t.Error("interval starting exactly now is not future")
	}
	if (Interval{Start: at(9, 0), End: at(11, 0)}).IsFuture(now) {
		t.Error("interval starting in the past is not future")
	}
	if !(Interval{Start: at(10, 1), End: at(11, 0)}).IsFuture(now) {
		t.Error("interval starting after now must be future")
	}
}
