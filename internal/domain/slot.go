package domain

import "github.com/Diana0617/BC-sub011/pkg/types"

// Slot candidate fixed-duration interval [StartTime, EndTime)
type Slot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
}

// Overlaps returns true if the half-open intervals [s.Start, s.End) and [start, end) intersect.
// Touching intervals (one ends exactly where the other starts) do not overlap
func (s Slot) Overlaps(start, end types.TimeString) bool {
	return s.StartTime.IsBefore(end) && s.EndTime.IsAfter(start)
}

// DurationMinutes returns slot length in minutes
func (s Slot) DurationMinutes() int {
	return s.EndTime.Minutes() - s.StartTime.Minutes()
}
