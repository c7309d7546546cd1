package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/agoraviz/agora/internal/timeline"
)

// Scrubber is the discretized playback slider. Integer positions in
// [0, Steps] normalize to [0,1] before the replay engine sees them.
type Scrubber struct {
	Steps int
	Value int
}

// NewScrubber creates a scrubber with the given resolution, parked at the
// end of the range.
func NewScrubber(steps int) Scrubber {
	if steps <= 0 {
		steps = 1000
	}
	return Scrubber{Steps: steps, Value: steps}
}

// Position returns the normalized scrub value in [0,1].
func (s Scrubber) Position() float64 {
	return float64(s.Value) / float64(s.Steps)
}

// Move shifts the scrubber by delta steps, clamped to the range.
func (s *Scrubber) Move(delta int) {
	s.Set(s.Value + delta)
}

// Set positions the scrubber, clamped to the range.
func (s *Scrubber) Set(v int) {
	if v < 0 {
		v = 0
	}
	if v > s.Steps {
		v = s.Steps
	}
	s.Value = v
}

// RoundLabel formats the scrubber caption, e.g. "Round 2 (17%)".
func RoundLabel(mark timeline.RoundMark) string {
	return fmt.Sprintf("Round %d (%d%%)", mark.Round, int(math.Round(mark.Progress*100)))
}

// RenderBar draws the scrub track with round boundary ticks and the cursor.
// Ticks are normalized boundary positions along the axis.
func (s Scrubber) RenderBar(width int, ticks []float64) string {
	if width < 3 {
		width = 3
	}
	cells := make([]rune, width)
	for i := range cells {
		cells[i] = '─'
	}
	for _, t := range ticks {
		cells[cellFor(t, width)] = '┊'
	}
	cursor := cellFor(s.Position(), width)

	var b strings.Builder
	for i, c := range cells {
		if i == cursor {
			b.WriteString(tickStyle.Render("●"))
			continue
		}
		if c == '┊' {
			b.WriteString(tickStyle.Render(string(c)))
			continue
		}
		b.WriteString(scrubberStyle.Render(string(c)))
	}
	return b.String()
}

func cellFor(pos float64, width int) int {
	cell := int(pos * float64(width-1))
	if cell < 0 {
		return 0
	}
	if cell > width-1 {
		return width - 1
	}
	return cell
}
