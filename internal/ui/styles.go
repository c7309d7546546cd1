// Package ui renders the debate in the terminal: live animation while the
// exchange runs, scrubbed replay once it finalizes.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Component color scheme - each panel has a distinct, consistent color.
var (
	// Structural / metadata
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")) // Gray - metadata, help

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")) // Gray - labels

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")) // White - values

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")) // White bold - headers

	// Participants and stances - Cyan
	agentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("14"))

	stanceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15"))

	// Bubbles - Magenta
	bubbleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("13"))

	bubbleSelectedStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("13"))

	// Scrubber - Yellow
	scrubberStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	tickStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("11"))

	// Modes
	liveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("10")) // Green

	replayStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")) // Blue

	// Outcomes
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")) // Red

	divider = lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Render(strings.Repeat("━", 60))
)
