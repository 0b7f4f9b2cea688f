package scheduling

import (
	"errors"
	"testing"
	"time"
)

func ts(hour, min int) time.Time {
	return time.Date(2025, 6, 2, hour, min, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name   string
		aStart time.Time
		aEnd   time.Time
		bStart time.Time
		bEnd   time.Time
		want   bool
	}{
		{"disjoint before", ts(8, 0), ts(9, 0), ts(10, 0), ts(11, 0), false},
		{"disjoint after", ts(12, 0), ts(13, 0), ts(10, 0), ts(11, 0), false},
		{"touching end to start", ts(10, 0), ts(11, 0), ts(11, 0), ts(12, 0), false},
		{"touching start to end", ts(11, 0), ts(12, 0), ts(10, 0), ts(11, 0), false},
		{"partial overlap", ts(10, 30), ts(11, 30), ts(10, 0), ts(11, 0), true},
		{"contained", ts(10, 15), ts(10, 45), ts(10, 0), ts(11, 0), true},
		{"containing", ts(9, 0), ts(12, 0), ts(10, 0), ts(11, 0), true},
		{"identical", ts(10, 0), ts(11, 0), ts(10, 0), ts(11, 0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd)
			if got != tt.want {
				t.Errorf("Overlaps(%v, %v, %v, %v) = %t, want %t",
					tt.aStart, tt.aEnd, tt.bStart, tt.bEnd, got, tt.want)
			}
		})
	}
}

func TestValidateIntervals(t *testing.T) {
	existing := []Slot{
		{StartTime: ts(10, 0), EndTime: ts(11, 0), Status: StatusAvailable},
	}

	tests := []struct {
		name       string
		candidates []Interval
		existing   []Slot
		wantErr    error
	}{
		{
			name:       "valid single",
			candidates: []Interval{{ts(11, 0), ts(12, 0)}},
			existing:   existing,
		},
		{
			name:       "zero length range",
			candidates: []Interval{{ts(10, 0), ts(10, 0)}},
			wantErr:    ErrInvalidRange,
		},
		{
			name:       "reversed range",
			candidates: []Interval{{ts(11, 0), ts(10, 0)}},
			wantErr:    ErrInvalidRange,
		},
		{
			name:       "overlaps existing",
			candidates: []Interval{{ts(10, 30), ts(11, 30)}},
			existing:   existing,
			wantErr:    ErrOverlap,
		},
		{
			name:       "adjacent to existing is allowed",
			candidates: []Interval{{ts(9, 0), ts(10, 0)}, {ts(11, 0), ts(12, 0)}},
			existing:   existing,
		},
		{
			name:       "intra-batch overlap",
			candidates: []Interval{{ts(13, 0), ts(14, 0)}, {ts(13, 30), ts(14, 30)}},
			wantErr:    ErrOverlap,
		},
		{
			name:       "later candidate invalid aborts",
			candidates: []Interval{{ts(13, 0), ts(14, 0)}, {ts(15, 0), ts(14, 0)}},
			wantErr:    ErrInvalidRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateIntervals(tt.candidates, tt.existing)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("ValidateIntervals() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ValidateIntervals() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
