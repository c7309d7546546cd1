package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agoraviz/agora/internal/config"
	"github.com/agoraviz/agora/internal/graph"
	"github.com/agoraviz/agora/internal/live"
	"github.com/agoraviz/agora/internal/stream"
	"github.com/agoraviz/agora/internal/timeline"
)

// Scrub step sizes in scrubber units.
const (
	scrubStep = 10
	scrubPage = 100
)

type recordMsg struct {
	rec stream.Record
}

type streamClosedMsg struct {
	err error
}

type frameMsg time.Time

// Model is the Bubble Tea model for one debate run. While the coordinator is
// live it renders the mutable live state and keeps the frame loop armed;
// after the run finalizes, scrub input switches it to replay and every frame
// is recomputed from the event log.
type Model struct {
	cfg    *config.Config
	debate *graph.Config
	source stream.Source

	coord    *live.Coordinator
	recorder *timeline.Recorder
	state    *live.State
	ingest   *live.Ingestor
	scrubber Scrubber
	expanded map[string]bool

	transcript []string
	vp         viewport.Model
	travelBar  progress.Model

	selected  int
	status    string
	errText   string
	width     int
	height    int
	vpReady   bool
	streaming bool

	ctx context.Context
}

// NewModel wires a model around an open record source.
func NewModel(ctx context.Context, cfg *config.Config, debate *graph.Config, src stream.Source) *Model {
	rec := timeline.NewRecorder()
	state := live.NewState()
	return &Model{
		cfg:      cfg,
		debate:   debate,
		source:   src,
		coord:    live.NewCoordinator(),
		recorder: rec,
		state:    state,
		ingest:   live.NewIngestor(rec, state, live.WithTimings(cfg.Travel(), cfg.RemovalDelay())),
		scrubber: NewScrubber(cfg.Playback.ScrubberSteps),
		expanded: make(map[string]bool),
		travelBar: progress.New(
			progress.WithDefaultGradient(),
			progress.WithWidth(24),
			progress.WithoutPercentage(),
		),
		status:    "connecting",
		streaming: true,
		ctx:       ctx,
	}
}

// Init starts the run: fresh timeline, live mode, stream listener and the
// animation frame loop.
func (m *Model) Init() tea.Cmd {
	m.coord.StartRun()
	m.ingest.Start(m.ctx, time.Now(), len(m.debate.Nodes), m.debate.Rounds)
	m.status = "live"
	return tea.Batch(m.listen(), m.frame())
}

// listen waits for the next stream record.
func (m *Model) listen() tea.Cmd {
	return func() tea.Msg {
		rec, err := m.source.Next(m.ctx)
		if err != nil {
			return streamClosedMsg{err: err}
		}
		return recordMsg{rec: rec}
	}
}

// frame schedules the next animation tick.
func (m *Model) frame() tea.Cmd {
	return tea.Tick(m.cfg.FrameInterval(), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case recordMsg:
		m.applyRecord(msg.rec, time.Now())
		return m, m.listen()

	case streamClosedMsg:
		m.streaming = false
		if msg.err != nil && !errors.Is(msg.err, io.EOF) && !errors.Is(msg.err, context.Canceled) {
			m.errText = msg.err.Error()
		}
		if !m.ingest.Done() {
			m.status = "stream closed"
		}
		return m, nil

	case frameMsg:
		// The frame loop polls the mode every tick and stops rescheduling
		// itself once replay takes over. There is no explicit cancel call.
		if m.coord.Replaying() {
			return m, nil
		}
		m.ingest.Advance(time.Time(msg))
		if !m.streaming && len(m.state.Bubbles) == 0 {
			// Stream gone and nothing left to animate. A run that dies
			// without a completion marker must not keep ticking.
			return m, nil
		}
		return m, m.frame()

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		vpHeight := msg.Height - 18
		if vpHeight < 4 {
			vpHeight = 4
		}
		if !m.vpReady {
			m.vp = viewport.New(msg.Width, vpHeight)
			m.vpReady = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = vpHeight
		}
		m.refreshTranscript()
		return m, nil
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "left", "h":
		m.scrub(-scrubStep)
	case "right", "l":
		m.scrub(+scrubStep)
	case "pgup", "H":
		m.scrub(-scrubPage)
	case "pgdown", "L":
		m.scrub(+scrubPage)
	case "home", "g":
		m.scrubTo(0)
	case "end", "G":
		m.scrubTo(m.scrubber.Steps)

	case "tab":
		if n := len(m.visibleBubbles()); n > 0 {
			m.selected = (m.selected + 1) % n
		}
	case "enter", "x":
		m.toggleExpansion()

	case "up", "k", "down", "j":
		var cmd tea.Cmd
		m.vp, cmd = m.vp.Update(msg)
		return m, cmd
	}
	return m, nil
}

// scrub moves the slider. The first scrub after the run finalizes flips the
// coordinator to replay; from then on the stored snapshot is authoritative.
func (m *Model) scrub(delta int) {
	if !m.scrubbable() {
		return
	}
	m.scrubber.Move(delta)
	m.recompute()
}

func (m *Model) scrubTo(v int) {
	if !m.scrubbable() {
		return
	}
	m.scrubber.Set(v)
	m.recompute()
}

func (m *Model) scrubbable() bool {
	return m.recorder.Timeline() != nil && m.ingest.Done()
}

// recompute derives the snapshot for the current scrubber position and
// stores it on the coordinator.
func (m *Model) recompute() {
	snap := timeline.ComputeSnapshot(m.recorder.Timeline(), m.scrubber.Position(), m.expanded, time.Now())
	m.coord.EnterReplay(snap)
	if n := len(snap.Bubbles); m.selected >= n {
		m.selected = 0
	}
}

// toggleExpansion flips the show-full-text flag for the selected bubble. The
// table outlives scrubbing and mode switches; only a new run clears it.
func (m *Model) toggleExpansion() {
	bubbles := m.visibleBubbles()
	if m.selected >= len(bubbles) {
		return
	}
	id := bubbles[m.selected].ID
	m.expanded[id] = !m.expanded[id]
	if m.coord.Replaying() {
		m.recompute()
	}
}

// visibleBubbles returns the bubbles the renderer is currently showing,
// from whichever source is authoritative.
func (m *Model) visibleBubbles() []timeline.BubbleView {
	if m.coord.Replaying() {
		return m.coord.Snapshot().Bubbles
	}
	views := make([]timeline.BubbleView, 0, len(m.state.Bubbles))
	for _, b := range m.state.Bubbles {
		views = append(views, timeline.BubbleView{
			ID:       b.ID,
			From:     b.From,
			To:       b.To,
			Summary:  b.Summary,
			FullText: b.FullText,
			Progress: b.Progress,
			Expanded: m.expanded[b.ID],
		})
	}
	return views
}

// applyRecord feeds one stream record through the ingestor and mirrors it
// into the transcript.
func (m *Model) applyRecord(rec stream.Record, now time.Time) {
	switch rec.Kind {
	case stream.KindError:
		m.errText = rec.Err
		m.appendTranscript(errorStyle.Render("error: " + rec.Err))
		return
	case stream.KindComplete:
		m.status = "completed"
	case stream.KindPosition:
		m.appendTranscript(fmt.Sprintf("[R%d] %s now holds: %s",
			rec.Round, agentStyle.Render(m.debate.Label(rec.From)), rec.Position))
	case stream.KindMessage:
		if rec.Summary != "" {
			m.appendTranscript(fmt.Sprintf("[R%d] %s → %s: %s",
				rec.Round, agentStyle.Render(m.debate.Label(rec.From)),
				agentStyle.Render(m.debate.Label(rec.To)), rec.Summary))
		}
	}
	m.ingest.Apply(rec, now)
}

func (m *Model) appendTranscript(line string) {
	m.transcript = append(m.transcript, line)
	m.refreshTranscript()
}
