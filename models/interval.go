package models

import "time"

// Interval is a half-open time range [Start, End). Touching endpoints do not
// count as overlap, so back-to-back meetings are always legal.
type Interval struct {
	Start time.Time `bson:"start" json:"start"`
	End   time.Time `bson:"end" json:"end"`
}

// Overlaps reports whether two intervals intersect under half-open semantics.
func (a Interval) Overlaps(b Interval) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// Contains reports whether the interval fully covers inner. A slot wider than
// the requested meeting still qualifies.
func (a Interval) Contains(inner Interval) bool {
	return !a.Start.After(inner.Start) && !inner.End.After(a.End)
}

// IsValid reports whether the interval is well-formed (Start strictly before End).
func (a Interval) IsValid() bool {
	return a.Start.Before(a.End)
}

// IsFuture reports whether the interval starts strictly after the reference
// time. New availability may not be back-dated.
func (a Interval) IsFuture(now time.Time) bool {
	return a.Start.After(now)
}

// Duration returns the length of the interval.
func (a Interval) Duration() time.Duration {
	return a.End.Sub(a.Start)
}
