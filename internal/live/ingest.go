package live

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/agoraviz/agora/internal/stream"
	"github.com/agoraviz/agora/internal/timeline"
)

// Nominal bubble animation timings. A bubble travels for TravelDuration and
// lingers briefly at its destination before it is removed and its complete
// event recorded.
const (
	TravelDuration = 2400 * time.Millisecond
	RemovalDelay   = 300 * time.Millisecond
)

// Ingestor applies inbound stream records to the recorder and the live
// display state. It owns round transition detection: a record whose round is
// strictly greater than the highest round seen so far marks a boundary and
// clears the previous round's bubbles before the record itself lands.
type Ingestor struct {
	rec    *timeline.Recorder
	state  *State
	travel time.Duration
	linger time.Duration

	highestRound int
	done         bool

	ctx     context.Context
	runSpan spanHandle
}

// IngestorOption configures an Ingestor.
type IngestorOption func(*Ingestor)

// WithTimings overrides the nominal travel duration and removal delay.
func WithTimings(travel, linger time.Duration) IngestorOption {
	return func(in *Ingestor) {
		in.travel = travel
		in.linger = linger
	}
}

// NewIngestor creates an ingestor writing to the given recorder and state.
func NewIngestor(rec *timeline.Recorder, state *State, opts ...IngestorOption) *Ingestor {
	in := &Ingestor{
		rec:    rec,
		state:  state,
		travel: TravelDuration,
		linger: RemovalDelay,
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Start begins a new run: fresh timeline, cleared live state, round counter
// reset. The seeded boundary covers round one; transitions are only marked
// from round two on.
func (in *Ingestor) Start(ctx context.Context, now time.Time, agents, rounds int) {
	in.rec.Initialize(now)
	in.state.Reset()
	in.highestRound = 1
	in.done = false
	in.ctx, in.runSpan = startRunSpan(ctx, agents, rounds)
}

// Done reports whether the completion marker has been seen.
func (in *Ingestor) Done() bool {
	return in.done
}

// Apply handles one stream record at the given instant. Error records carry
// no timeline state; the UI surfaces them directly.
func (in *Ingestor) Apply(rec stream.Record, now time.Time) {
	switch rec.Kind {
	case stream.KindPosition:
		in.checkRound(rec.Round, now)
		in.rec.Record(timeline.PositionEvent{
			At:       now,
			Round:    rec.Round,
			AgentID:  rec.From,
			Position: rec.Position,
		})
		in.state.Conclusions[rec.From] = rec.Position

	case stream.KindMessage:
		in.checkRound(rec.Round, now)
		if strings.TrimSpace(rec.Summary) == "" || systemSender(rec.From) {
			return
		}
		id := uuid.NewString()
		in.rec.Record(timeline.BubbleStartEvent{
			At:       now,
			Round:    rec.Round,
			ID:       id,
			From:     rec.From,
			To:       rec.To,
			Summary:  rec.Summary,
			FullText: rec.Text,
		})
		in.state.Bubbles = append(in.state.Bubbles, &Bubble{
			ID:        id,
			From:      rec.From,
			To:        rec.To,
			Summary:   rec.Summary,
			FullText:  rec.Text,
			Round:     rec.Round,
			StartedAt: now,
		})

	case stream.KindComplete:
		in.rec.Finalize(now)
		in.done = true
		in.runSpan.end(nil)
	}
}

// Advance is the per-frame step: it interpolates each live bubble's travel
// progress and, once travel plus the removal delay has elapsed, records the
// complete event and drops the bubble from the display.
func (in *Ingestor) Advance(now time.Time) {
	kept := in.state.Bubbles[:0]
	for _, b := range in.state.Bubbles {
		elapsed := now.Sub(b.StartedAt)
		b.Progress = clampUnit(float64(elapsed) / float64(in.travel))
		if elapsed >= in.travel+in.linger {
			in.rec.Record(timeline.BubbleCompleteEvent{At: now, Round: b.Round, ID: b.ID})
			continue
		}
		kept = append(kept, b)
	}
	in.state.Bubbles = kept
}

// checkRound marks a round boundary when a strictly higher round number is
// first observed. The boundary and the bubble clear must land before any
// event of the new round, or a stale bubble could bleed into the new round's
// visual context.
func (in *Ingestor) checkRound(round int, now time.Time) {
	if round <= in.highestRound {
		return
	}
	in.rec.RecordRoundBoundary(now)
	in.state.ClearBubbles()
	in.highestRound = round
	addRoundEvent(in.runSpan, round)
}

// systemSender reports whether a sender is synthetic rather than a debate
// participant. The aggregator's closing summary is shown in the transcript
// but never animated as a bubble.
func systemSender(from string) bool {
	return from == "aggregator" || from == "system" || from == ""
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
