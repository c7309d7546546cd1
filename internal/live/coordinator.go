// Package live holds the mutable state of a running exchange and the
// live/replay mode machine that decides which snapshot source the renderer
// reads from.
package live

import "github.com/agoraviz/agora/internal/timeline"

// Mode selects the authoritative snapshot source.
type Mode int

const (
	// ModeLive renders from the mutable live state; the frame loop runs.
	ModeLive Mode = iota
	// ModeReplay renders from the last computed playback snapshot; the
	// frame loop sees this mode and stops rescheduling itself.
	ModeReplay
)

// Coordinator is the two-state live/replay machine. It starts in live mode,
// enters replay on the first scrub after a run finalizes, and returns to
// live only when a new run starts.
type Coordinator struct {
	mode     Mode
	snapshot timeline.Snapshot
}

// NewCoordinator creates a coordinator in live mode.
func NewCoordinator() *Coordinator {
	return &Coordinator{}
}

// Mode returns the current mode.
func (c *Coordinator) Mode() Mode {
	return c.mode
}

// Replaying reports whether the stored snapshot is authoritative.
func (c *Coordinator) Replaying() bool {
	return c.mode == ModeReplay
}

// StartRun forces live mode and discards any stored snapshot.
func (c *Coordinator) StartRun() {
	c.mode = ModeLive
	c.snapshot = timeline.Snapshot{}
}

// EnterReplay switches to replay mode and stores the snapshot the renderer
// must read from.
func (c *Coordinator) EnterReplay(snap timeline.Snapshot) {
	c.mode = ModeReplay
	c.snapshot = snap
}

// Snapshot returns the stored playback snapshot. Meaningful only in replay
// mode.
func (c *Coordinator) Snapshot() timeline.Snapshot {
	return c.snapshot
}
