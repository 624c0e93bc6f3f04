package domain

import (
	"fmt"
	"time"
)

// TimeRange is a half-open interval [Start, End).
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// NewTimeRange validates that both bounds are set and strictly ordered.
func NewTimeRange(start, end time.Time) (TimeRange, error) {
	if start.IsZero() || end.IsZero() {
		return TimeRange{}, fmt.Errorf("%w: zero time bound", ErrInvalidRange)
	}
	if !start.Before(end) {
		return TimeRange{}, fmt.Errorf("%w: end must be after start", ErrInvalidRange)
	}
	return TimeRange{Start: start, End: end}, nil
}

// ParseTimeRange parses RFC3339 bounds and validates them.
func ParseTimeRange(start, end string) (TimeRange, error) {
	s, err := time.Parse(time.RFC3339, start)
	if err != nil {
		return TimeRange{}, fmt.Errorf("%w: invalid start time %q", ErrInvalidRange, start)
	}
	e, err := time.Parse(time.RFC3339, end)
	if err != nil {
		return TimeRange{}, fmt.Errorf("%w: invalid end time %q", ErrInvalidRange, end)
	}
	return NewTimeRange(s, e)
}

// Overlaps reports whether two half-open ranges intersect.
// Touching endpoints do not overlap.
func Overlaps(start1, end1, start2, end2 time.Time) bool {
	return start1.Before(end2) && start2.Before(end1)
}

func (r TimeRange) Overlaps(other TimeRange) bool {
	return Overlaps(r.Start, r.End, other.Start, other.End)
}

func (r TimeRange) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// Contains reports whether t falls within [Start, End).
func (r TimeRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}
