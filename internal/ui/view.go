package ui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/muesli/reflow/wordwrap"

	"github.com/agoraviz/agora/internal/timeline"
)

func (m *Model) View() string {
	var b strings.Builder

	m.renderHeader(&b)
	m.renderConclusions(&b)
	m.renderBubbles(&b)

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("TRANSCRIPT"))
	b.WriteString("\n")
	if m.vpReady {
		b.WriteString(m.vp.View())
		b.WriteString("\n")
	}

	m.renderScrubber(&b)
	m.renderFooter(&b)
	return b.String()
}

func (m *Model) renderHeader(b *strings.Builder) {
	badge := liveStyle.Render("LIVE")
	if m.coord.Replaying() {
		badge = replayStyle.Render("REPLAY")
	}
	fmt.Fprintf(b, "%s %s  %s\n", titleStyle.Render("AGORA"), badge, dimStyle.Render(m.status))
	fmt.Fprintf(b, "%s %s\n", labelStyle.Render("Topic:"), valueStyle.Render(m.debate.Question))
	if m.errText != "" {
		fmt.Fprintf(b, "%s %s\n", errorStyle.Render("error:"), valueStyle.Render(m.errText))
	}
	b.WriteString(divider)
	b.WriteString("\n")
}

// conclusions returns the stance map the renderer should show: live state in
// live mode, the stored snapshot in replay.
func (m *Model) conclusions() map[string]string {
	if m.coord.Replaying() {
		return m.coord.Snapshot().Conclusions
	}
	return m.state.Conclusions
}

func (m *Model) renderConclusions(b *strings.Builder) {
	b.WriteString(titleStyle.Render("CONCLUSIONS"))
	b.WriteString("\n")

	stances := m.conclusions()
	labels := m.debate.Labels()
	ids := make([]string, 0, len(m.debate.Nodes))
	for _, n := range m.debate.Nodes {
		ids = append(ids, n.ID)
	}
	sort.Slice(ids, func(i, j int) bool {
		return labels[ids[i]] < labels[ids[j]]
	})

	for _, id := range ids {
		stance, ok := stances[id]
		if !ok {
			stance = dimStyle.Render("(none yet)")
		} else {
			stance = stanceStyle.Render(stance)
		}
		fmt.Fprintf(b, "  %s %s\n", agentStyle.Render(labels[id]+":"), stance)
	}
}

func (m *Model) renderBubbles(b *strings.Builder) {
	bubbles := m.visibleBubbles()
	labels := m.debate.Labels()
	fmt.Fprintf(b, "\n%s %s\n", titleStyle.Render("IN FLIGHT"), dimStyle.Render(fmt.Sprintf("(%d)", len(bubbles))))

	wrapWidth := m.width - 8
	if wrapWidth < 20 {
		wrapWidth = 20
	}
	for i, bubble := range bubbles {
		style := bubbleStyle
		marker := " "
		if i == m.selected {
			style = bubbleSelectedStyle
			marker = ">"
		}
		from, ok := labels[bubble.From]
		if !ok {
			from = bubble.From
		}
		to, ok := labels[bubble.To]
		if !ok {
			to = bubble.To
		}
		fmt.Fprintf(b, "%s %s %s %s\n",
			marker,
			m.travelBar.ViewAs(bubble.Progress),
			style.Render(fmt.Sprintf("%s → %s", from, to)),
			valueStyle.Render(bubble.Summary))
		if bubble.Expanded && bubble.FullText != "" {
			for _, line := range strings.Split(wordwrap.String(bubble.FullText, wrapWidth), "\n") {
				fmt.Fprintf(b, "      %s\n", dimStyle.Render(line))
			}
		}
	}
}

func (m *Model) renderScrubber(b *strings.Builder) {
	if !m.scrubbable() {
		return
	}
	tl := m.recorder.Timeline()
	now := time.Now()
	mark := timeline.Locate(tl, m.scrubber.Position(), now)

	width := m.width - 4
	if width < 20 {
		width = 20
	}
	b.WriteString("\n")
	fmt.Fprintf(b, "  %s\n", m.scrubber.RenderBar(width, tl.Ticks(now)))
	fmt.Fprintf(b, "  %s\n", scrubberStyle.Render(RoundLabel(mark)))
}

func (m *Model) renderFooter(b *strings.Builder) {
	help := " q: quit │ tab: select bubble │ enter: expand │ ↑/↓: transcript "
	if m.scrubbable() {
		help = " q: quit │ ←/→: scrub │ g/G: start/end │ tab: select │ enter: expand "
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(help))
}

// refreshTranscript rewraps the transcript into the viewport and keeps the
// view pinned to the newest entries.
func (m *Model) refreshTranscript() {
	if !m.vpReady {
		return
	}
	width := m.vp.Width
	if width <= 0 {
		width = 80
	}
	var lines []string
	for _, entry := range m.transcript {
		lines = append(lines, wordwrap.String(entry, width))
	}
	m.vp.SetContent(strings.Join(lines, "\n"))
	m.vp.GotoBottom()
}
