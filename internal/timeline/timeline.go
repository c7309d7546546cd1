package timeline

import "time"

// Timeline is the append-only log of one exchange. Events are sorted
// non-decreasing by timestamp, RoundBoundaries is strictly increasing and
// seeded with StartTime, and EndTime stays zero until the run finalizes or a
// replay of a still-running exchange pins it to the scrub instant.
type Timeline struct {
	StartTime       time.Time
	EndTime         time.Time
	Finalized       bool
	Events          []Event
	RoundBoundaries []time.Time
}

// NewTimeline creates a fresh timeline with the first round boundary seeded
// at the start instant.
func NewTimeline(start time.Time) *Timeline {
	return &Timeline{
		StartTime:       start,
		RoundBoundaries: []time.Time{start},
	}
}

// effectiveEnd returns the end instant to interpolate against: the recorded
// end once known, otherwise the caller's current instant.
func (t *Timeline) effectiveEnd(now time.Time) time.Time {
	if t.Finalized || !t.EndTime.IsZero() {
		return t.EndTime
	}
	return now
}

// Duration returns the span of the exchange against the given instant.
func (t *Timeline) Duration(now time.Time) time.Duration {
	return t.effectiveEnd(now).Sub(t.StartTime)
}

// Ticks returns the normalized scrub-axis positions of the round boundaries,
// for rendering as discrete marks along the scrubber.
func (t *Timeline) Ticks(now time.Time) []float64 {
	total := t.Duration(now)
	if total <= 0 {
		return nil
	}
	ticks := make([]float64, 0, len(t.RoundBoundaries))
	for _, b := range t.RoundBoundaries {
		ticks = append(ticks, clamp01(float64(b.Sub(t.StartTime))/float64(total)))
	}
	return ticks
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
