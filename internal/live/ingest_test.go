package live

import (
	"context"
	"testing"
	"time"

	"github.com/agoraviz/agora/internal/stream"
	"github.com/agoraviz/agora/internal/timeline"
)

var base = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func at(ms int) time.Time {
	return base.Add(time.Duration(ms) * time.Millisecond)
}

func newIngestor(opts ...IngestorOption) (*Ingestor, *timeline.Recorder, *State) {
	rec := timeline.NewRecorder()
	state := NewState()
	in := NewIngestor(rec, state, opts...)
	in.Start(context.Background(), at(0), 2, 3)
	return in, rec, state
}

func TestIngestor_PositionRecord(t *testing.T) {
	in, rec, state := newIngestor()

	in.Apply(stream.Record{Kind: stream.KindPosition, From: "n1", Position: "pro", Round: 1}, at(100))

	if state.Conclusions["n1"] != "pro" {
		t.Errorf("expected live conclusion 'pro', got %q", state.Conclusions["n1"])
	}
	events := rec.Timeline().Events
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	ev, ok := events[0].(timeline.PositionEvent)
	if !ok {
		t.Fatalf("expected PositionEvent, got %T", events[0])
	}
	if ev.AgentID != "n1" || ev.Position != "pro" || !ev.At.Equal(at(100)) {
		t.Errorf("unexpected event: %+v", ev)
	}
}

func TestIngestor_MessageSynthesizesBubble(t *testing.T) {
	in, rec, state := newIngestor()

	in.Apply(stream.Record{
		Kind: stream.KindMessage, From: "n1", To: "n2",
		Text: "full argument", Summary: "I concur", Round: 1,
	}, at(200))

	if len(state.Bubbles) != 1 {
		t.Fatalf("expected 1 live bubble, got %d", len(state.Bubbles))
	}
	b := state.Bubbles[0]
	if b.ID == "" {
		t.Error("bubble should get a generated id")
	}
	if b.From != "n1" || b.To != "n2" || b.Summary != "I concur" {
		t.Errorf("unexpected bubble: %+v", b)
	}

	events := rec.Timeline().Events
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	start, ok := events[0].(timeline.BubbleStartEvent)
	if !ok {
		t.Fatalf("expected BubbleStartEvent, got %T", events[0])
	}
	if start.ID != b.ID {
		t.Error("logged bubble id should match the live bubble")
	}
}

func TestIngestor_EmptySummaryNoBubble(t *testing.T) {
	in, rec, state := newIngestor()

	in.Apply(stream.Record{Kind: stream.KindMessage, From: "n1", To: "n2", Text: "text", Summary: "  ", Round: 1}, at(200))

	if len(state.Bubbles) != 0 || len(rec.Timeline().Events) != 0 {
		t.Error("blank summary must not synthesize a bubble")
	}
}

func TestIngestor_SystemSenderNoBubble(t *testing.T) {
	in, rec, state := newIngestor()

	in.Apply(stream.Record{Kind: stream.KindMessage, From: "aggregator", To: "all", Summary: "final summary", Round: 3}, at(300))

	if len(state.Bubbles) != 0 {
		t.Error("aggregator messages must not animate as bubbles")
	}
	for _, ev := range rec.Timeline().Events {
		if _, ok := ev.(timeline.BubbleStartEvent); ok {
			t.Error("aggregator messages must not log bubble starts")
		}
	}
}

func TestIngestor_RoundTransition(t *testing.T) {
	in, rec, state := newIngestor()

	in.Apply(stream.Record{Kind: stream.KindMessage, From: "n1", To: "n2", Summary: "s", Round: 1}, at(100))
	if len(state.Bubbles) != 1 {
		t.Fatalf("expected 1 bubble in round 1, got %d", len(state.Bubbles))
	}

	// First round-2 record: boundary marked, round-1 bubbles cleared before
	// the new event lands.
	in.Apply(stream.Record{Kind: stream.KindPosition, From: "n1", Position: "pro", Round: 2}, at(400))

	tl := rec.Timeline()
	if len(tl.RoundBoundaries) != 2 {
		t.Fatalf("expected 2 boundaries, got %d", len(tl.RoundBoundaries))
	}
	if !tl.RoundBoundaries[1].Equal(at(400)) {
		t.Errorf("expected boundary at 400ms, got %v", tl.RoundBoundaries[1])
	}
	if len(state.Bubbles) != 0 {
		t.Error("round transition must clear live bubbles")
	}

	// Same round again: no new boundary.
	in.Apply(stream.Record{Kind: stream.KindPosition, From: "n2", Position: "con", Round: 2}, at(500))
	if len(rec.Timeline().RoundBoundaries) != 2 {
		t.Error("repeated round number must not add boundaries")
	}
}

func TestIngestor_RoundOneDoesNotAddBoundary(t *testing.T) {
	in, rec, _ := newIngestor()

	in.Apply(stream.Record{Kind: stream.KindPosition, From: "n1", Position: "pro", Round: 1}, at(100))

	// The seeded boundary already covers round one.
	if got := len(rec.Timeline().RoundBoundaries); got != 1 {
		t.Errorf("expected only the seeded boundary, got %d", got)
	}
}

func TestIngestor_AdvanceInterpolatesAndCompletes(t *testing.T) {
	in, rec, state := newIngestor(WithTimings(1000*time.Millisecond, 200*time.Millisecond))

	in.Apply(stream.Record{Kind: stream.KindMessage, From: "n1", To: "n2", Summary: "s", Round: 1}, at(0))

	in.Advance(at(500))
	if len(state.Bubbles) != 1 {
		t.Fatalf("bubble should still be traveling, got %d bubbles", len(state.Bubbles))
	}
	if state.Bubbles[0].Progress != 0.5 {
		t.Errorf("expected progress 0.5 mid-travel, got %f", state.Bubbles[0].Progress)
	}

	// Travel done but still lingering: shown at full progress, no complete.
	in.Advance(at(1100))
	if len(state.Bubbles) != 1 || state.Bubbles[0].Progress != 1 {
		t.Fatalf("bubble should linger at progress 1, got %+v", state.Bubbles)
	}

	in.Advance(at(1200))
	if len(state.Bubbles) != 0 {
		t.Fatal("bubble should be removed after travel plus removal delay")
	}
	events := rec.Timeline().Events
	last := events[len(events)-1]
	done, ok := last.(timeline.BubbleCompleteEvent)
	if !ok {
		t.Fatalf("expected BubbleCompleteEvent, got %T", last)
	}
	if !done.At.Equal(at(1200)) {
		t.Errorf("expected complete at 1200ms, got %v", done.At)
	}
}

func TestIngestor_CompleteFinalizes(t *testing.T) {
	in, rec, _ := newIngestor()

	in.Apply(stream.Record{Kind: stream.KindComplete}, at(900))

	if !in.Done() {
		t.Error("ingestor should report done after the completion marker")
	}
	tl := rec.Timeline()
	if !tl.Finalized || !tl.EndTime.Equal(at(900)) {
		t.Errorf("expected finalized timeline ending at 900ms, got finalized=%v end=%v", tl.Finalized, tl.EndTime)
	}
}

func TestIngestor_StartResetsEverything(t *testing.T) {
	in, rec, state := newIngestor()

	in.Apply(stream.Record{Kind: stream.KindMessage, From: "n1", To: "n2", Summary: "s", Round: 1}, at(100))
	in.Apply(stream.Record{Kind: stream.KindPosition, From: "n1", Position: "pro", Round: 2}, at(400))
	in.Apply(stream.Record{Kind: stream.KindComplete}, at(500))

	in.Start(context.Background(), at(1000), 2, 3)

	if len(state.Bubbles) != 0 || len(state.Conclusions) != 0 {
		t.Error("Start should clear live state")
	}
	tl := rec.Timeline()
	if len(tl.Events) != 0 || tl.Finalized {
		t.Error("Start should begin a fresh timeline")
	}
	if in.Done() {
		t.Error("Start should reset the done flag")
	}

	// Round numbering restarts too: round 2 is again a transition.
	in.Apply(stream.Record{Kind: stream.KindPosition, From: "n1", Position: "x", Round: 2}, at(1100))
	if len(tl.RoundBoundaries) != 2 {
		t.Errorf("expected transition after reset, got %d boundaries", len(tl.RoundBoundaries))
	}
}
