package timeline

import "time"

// RoundMark labels a scrub position: which round it falls in (1-based) and
// how far through that round's span it is.
type RoundMark struct {
	Round    int
	Progress float64
}

// Locate maps a normalized position to its round and intra-round progress.
// Unlike ComputeSnapshot it never mutates the timeline; an unfinalized run
// is measured against the given instant.
func Locate(tl *Timeline, position float64, now time.Time) RoundMark {
	if tl == nil {
		return RoundMark{Round: 1}
	}
	end := tl.effectiveEnd(now)
	total := end.Sub(tl.StartTime)
	if total <= 0 {
		return RoundMark{Round: 1}
	}
	target := tl.StartTime.Add(time.Duration(clamp01(position) * float64(total)))

	for i := len(tl.RoundBoundaries) - 1; i >= 0; i-- {
		if target.Before(tl.RoundBoundaries[i]) {
			continue
		}
		upper := end
		if i+1 < len(tl.RoundBoundaries) {
			upper = tl.RoundBoundaries[i+1]
		}
		span := upper.Sub(tl.RoundBoundaries[i])
		mark := RoundMark{Round: i + 1}
		if span > 0 {
			mark.Progress = clamp01(float64(target.Sub(tl.RoundBoundaries[i])) / float64(span))
		}
		return mark
	}
	// Boundaries are seeded with the start time, so this only happens on a
	// timeline built by hand.
	return RoundMark{Round: 1}
}
