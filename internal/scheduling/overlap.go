package scheduling

import (
	"errors"
	"time"
)

var (
	ErrInvalidRange = errors.New("slot start time must be before end time")
	ErrOverlap      = errors.New("slot overlaps with existing availability")
)

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) intersect.
// Touching intervals do not overlap: [10:00, 11:00) and [11:00, 12:00) are
// both allowed.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return bStart.Before(aEnd) && bEnd.After(aStart)
}

// ValidateIntervals checks a creation batch against the provider's persisted
// slots and against itself. The first violation aborts the whole batch.
// Candidates are compared to every existing slot regardless of status, and to
// each other, so a request cannot smuggle in two conflicting slots.
func ValidateIntervals(candidates []Interval, existing []Slot) error {
	for i, c := range candidates {
		if !c.StartTime.Before(c.EndTime) {
			return ErrInvalidRange
		}
		for _, s := range existing {
			if Overlaps(c.StartTime, c.EndTime, s.StartTime, s.EndTime) {
				return ErrOverlap
			}
		}
		for _, prev := range candidates[:i] {
			if Overlaps(c.StartTime, c.EndTime, prev.StartTime, prev.EndTime) {
				return ErrOverlap
			}
		}
	}
	return nil
}
