package ui

import (
	"context"
	"io"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agoraviz/agora/internal/config"
	"github.com/agoraviz/agora/internal/graph"
	"github.com/agoraviz/agora/internal/stream"
)

// queueSource replays a fixed record sequence, then reports EOF.
type queueSource struct {
	records []stream.Record
}

func (s *queueSource) Next(ctx context.Context) (stream.Record, error) {
	if len(s.records) == 0 {
		return stream.Record{}, io.EOF
	}
	rec := s.records[0]
	s.records = s.records[1:]
	return rec, nil
}

func (s *queueSource) Close() error { return nil }

func testDebate() *graph.Config {
	return &graph.Config{
		Nodes:    []graph.Node{{ID: "n1", Label: "Alice"}, {ID: "n2", Label: "Bob"}},
		Edges:    []graph.Edge{{From: "n1", To: "n2", Direction: graph.DirectionBidirectional}},
		Rounds:   2,
		Question: "test topic",
	}
}

func finishedModel(t *testing.T) *Model {
	t.Helper()
	src := &queueSource{}
	m := NewModel(context.Background(), config.New(), testDebate(), src)
	m.Init()

	now := time.Now()
	m.applyRecord(stream.Record{Kind: stream.KindPosition, From: "n1", Position: "pro", Round: 1}, now)
	m.applyRecord(stream.Record{Kind: stream.KindMessage, From: "n1", To: "n2", Summary: "s", Text: "full", Round: 1}, now.Add(100*time.Millisecond))
	m.applyRecord(stream.Record{Kind: stream.KindComplete}, now.Add(time.Second))
	return m
}

func TestModel_ScrubEntersReplay(t *testing.T) {
	m := finishedModel(t)
	if m.coord.Replaying() {
		t.Fatal("model should start live")
	}

	m.handleKey(tea.KeyMsg{Type: tea.KeyLeft})
	if !m.coord.Replaying() {
		t.Fatal("scrub after finalize should enter replay")
	}
	if m.coord.Snapshot().Conclusions["n1"] != "pro" {
		t.Error("stored snapshot should carry the recorded stance")
	}
}

func TestModel_ScrubIgnoredWhileLive(t *testing.T) {
	src := &queueSource{}
	m := NewModel(context.Background(), config.New(), testDebate(), src)
	m.Init()
	m.applyRecord(stream.Record{Kind: stream.KindPosition, From: "n1", Position: "pro", Round: 1}, time.Now())

	m.handleKey(tea.KeyMsg{Type: tea.KeyLeft})
	if m.coord.Replaying() {
		t.Error("scrub input must not enter replay before the run finalizes")
	}
}

func TestModel_FrameLoopStopsInReplay(t *testing.T) {
	m := finishedModel(t)
	m.handleKey(tea.KeyMsg{Type: tea.KeyLeft})

	_, cmd := m.Update(frameMsg(time.Now()))
	if cmd != nil {
		t.Error("frame loop must not reschedule once replay is authoritative")
	}
}

func TestModel_FrameLoopStopsWhenStreamDies(t *testing.T) {
	src := &queueSource{}
	m := NewModel(context.Background(), config.New(), testDebate(), src)
	m.Init()
	m.applyRecord(stream.Record{Kind: stream.KindPosition, From: "n1", Position: "pro", Round: 1}, time.Now())

	// Connection drops before any completion marker arrives.
	m.Update(streamClosedMsg{err: io.EOF})
	if m.ingest.Done() {
		t.Fatal("a dead stream must not count as a finalized run")
	}

	_, cmd := m.Update(frameMsg(time.Now()))
	if cmd != nil {
		t.Error("frame loop must stop with the stream closed and no bubbles in flight")
	}
}

func TestModel_FrameLoopDrainsBubblesAfterStreamDies(t *testing.T) {
	src := &queueSource{}
	m := NewModel(context.Background(), config.New(), testDebate(), src)
	m.Init()
	now := time.Now()
	m.applyRecord(stream.Record{Kind: stream.KindMessage, From: "n1", To: "n2", Summary: "s", Text: "full", Round: 1}, now)
	m.Update(streamClosedMsg{err: io.EOF})

	_, cmd := m.Update(frameMsg(now.Add(time.Millisecond)))
	if cmd == nil {
		t.Fatal("an in-flight bubble should keep the frame loop armed")
	}

	// Past travel plus the removal delay the bubble completes and the loop
	// winds down.
	_, cmd = m.Update(frameMsg(now.Add(m.cfg.Travel() + m.cfg.RemovalDelay())))
	if cmd != nil {
		t.Error("frame loop must stop once the last bubble drains")
	}
}

func TestModel_ExpansionSurvivesScrubbing(t *testing.T) {
	m := finishedModel(t)

	// Scrub to the middle where the bubble is in flight, expand it.
	m.scrubTo(m.scrubber.Steps / 2)
	bubbles := m.visibleBubbles()
	if len(bubbles) != 1 {
		t.Fatalf("expected 1 bubble mid-run, got %d", len(bubbles))
	}
	m.toggleExpansion()
	if !m.visibleBubbles()[0].Expanded {
		t.Fatal("expansion toggle should mark the bubble expanded")
	}
	id := bubbles[0].ID

	// Scrub away and back: the flag sticks.
	m.scrubTo(0)
	m.scrubTo(m.scrubber.Steps / 2)
	if !m.expanded[id] {
		t.Error("expansion state must survive scrubbing")
	}
	if got := m.visibleBubbles(); len(got) != 1 || !got[0].Expanded {
		t.Error("re-derived snapshot should reapply the expansion flag")
	}
}

func TestModel_ErrorRecordSurfaced(t *testing.T) {
	src := &queueSource{}
	m := NewModel(context.Background(), config.New(), testDebate(), src)
	m.Init()

	m.applyRecord(stream.Record{Kind: stream.KindError, Err: "backend exploded"}, time.Now())
	if m.errText != "backend exploded" {
		t.Errorf("expected surfaced error, got %q", m.errText)
	}
	if m.recorder.Timeline() == nil {
		t.Fatal("timeline should exist")
	}
	if len(m.recorder.Timeline().Events) != 0 {
		t.Error("error records must not touch the event log")
	}
}
