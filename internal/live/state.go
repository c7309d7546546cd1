package live

import "time"

// Bubble is a message currently traveling between two participants on
// screen. Progress is interpolated by the frame loop.
type Bubble struct {
	ID        string
	From      string
	To        string
	Summary   string
	FullText  string
	Round     int
	StartedAt time.Time
	Progress  float64
}

// State is the live display state mutated as the stream arrives: the latest
// stance per participant and the set of animating bubbles. It is the
// renderer's source of truth while the coordinator is in live mode.
type State struct {
	Conclusions map[string]string
	Bubbles     []*Bubble
}

// NewState creates empty live state.
func NewState() *State {
	return &State{Conclusions: make(map[string]string)}
}

// Reset clears everything for a new run.
func (s *State) Reset() {
	s.Conclusions = make(map[string]string)
	s.Bubbles = nil
}

// ClearBubbles drops all in-flight bubbles. Round transitions invalidate the
// previous round's animations.
func (s *State) ClearBubbles() {
	s.Bubbles = nil
}
