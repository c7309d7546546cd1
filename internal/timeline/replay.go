package timeline

import "time"

// Snapshot is the derived visual state for one scrub position: what every
// participant's latest stance is and which message bubbles are in flight,
// with interpolated travel progress. It is recomputed, never mutated.
type Snapshot struct {
	Position    float64
	Conclusions map[string]string
	Bubbles     []BubbleView
}

// BubbleView is one in-flight message as it should be drawn at the snapshot
// instant. Expanded is a view flag layered on from the caller's expansion
// table, never derived from the log.
type BubbleView struct {
	ID       string
	From     string
	To       string
	Summary  string
	FullText string
	Progress float64
	Expanded bool
}

// ComputeSnapshot reconstructs the visual state at a normalized position in
// [0,1] from the event log alone. Identical inputs yield identical snapshots.
//
// Scrubbing a run that has not finalized pins the timeline's end to the
// given instant, so repeated calls during a live run are best-effort: the
// same slider position can map to a different target time on each call.
func ComputeSnapshot(tl *Timeline, position float64, expanded map[string]bool, now time.Time) Snapshot {
	snap := Snapshot{
		Position:    clamp01(position),
		Conclusions: make(map[string]string),
	}
	if tl == nil {
		return snap
	}
	if !tl.Finalized {
		tl.EndTime = now
	}
	total := tl.EndTime.Sub(tl.StartTime)
	if total <= 0 || len(tl.Events) == 0 {
		return snap
	}
	target := tl.StartTime.Add(time.Duration(snap.Position * float64(total)))

	// One ordered pass. Stances and starts are only "known" up to the
	// target instant; completion timestamps are collected from the whole
	// log so an in-flight bubble interpolates toward its real end rather
	// than the end of the exchange.
	var starts []BubbleStartEvent
	doneByTarget := make(map[string]bool)
	completeAt := make(map[string]time.Time)
	for _, ev := range tl.Events {
		switch e := ev.(type) {
		case PositionEvent:
			if !e.At.After(target) {
				snap.Conclusions[e.AgentID] = e.Position
			}
		case BubbleStartEvent:
			if !e.At.After(target) {
				starts = append(starts, e)
			}
		case BubbleCompleteEvent:
			if _, seen := completeAt[e.ID]; !seen {
				completeAt[e.ID] = e.At
			}
			if !e.At.After(target) {
				doneByTarget[e.ID] = true
			}
		}
	}

	for _, s := range starts {
		if doneByTarget[s.ID] {
			continue
		}
		end := tl.EndTime
		if at, ok := completeAt[s.ID]; ok && !at.After(tl.EndTime) {
			end = at
		}
		p := travelProgress(target, s.At, end)
		if p >= 1 {
			// Provably finished by the target instant, even without an
			// explicit complete event.
			continue
		}
		snap.Bubbles = append(snap.Bubbles, BubbleView{
			ID:       s.ID,
			From:     s.From,
			To:       s.To,
			Summary:  s.Summary,
			FullText: s.FullText,
			Progress: p,
			Expanded: expanded[s.ID],
		})
	}
	return snap
}

// travelProgress interpolates how far along its travel a bubble is at the
// target instant, clamped to [0,1]. A zero or negative span yields 0.
func travelProgress(target, start, end time.Time) float64 {
	span := end.Sub(start)
	if span <= 0 {
		return 0
	}
	return clamp01(float64(target.Sub(start)) / float64(span))
}
