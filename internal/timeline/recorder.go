package timeline

import "time"

// Recorder appends events to the exchange log as they are observed live.
// It is the only writer of the timeline during a run; the caller detects
// round transitions and reports boundaries through RecordRoundBoundary.
type Recorder struct {
	tl *Timeline
}

// NewRecorder creates a recorder with no active timeline. Events recorded
// before Initialize are dropped.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Initialize starts a fresh timeline for a new exchange, replacing any
// previous one.
func (r *Recorder) Initialize(start time.Time) *Timeline {
	r.tl = NewTimeline(start)
	return r.tl
}

// Timeline returns the active timeline, or nil before Initialize.
func (r *Recorder) Timeline() *Timeline {
	return r.tl
}

// Record appends an event to the log. It is a no-op when no timeline exists.
func (r *Recorder) Record(ev Event) {
	if r.tl == nil {
		return
	}
	r.tl.Events = append(r.tl.Events, ev)
}

// RecordRoundBoundary marks the start of a new round. Boundaries must be
// reported in increasing timestamp order; a timestamp not after the last
// boundary is dropped to keep the sequence strictly increasing.
func (r *Recorder) RecordRoundBoundary(ts time.Time) {
	if r.tl == nil {
		return
	}
	if n := len(r.tl.RoundBoundaries); n > 0 && !ts.After(r.tl.RoundBoundaries[n-1]) {
		return
	}
	r.tl.RoundBoundaries = append(r.tl.RoundBoundaries, ts)
}

// Finalize sets the end of the exchange. Only the first call counts; later
// calls leave the recorded end untouched.
func (r *Recorder) Finalize(end time.Time) {
	if r.tl == nil || r.tl.Finalized {
		return
	}
	r.tl.EndTime = end
	r.tl.Finalized = true
}
