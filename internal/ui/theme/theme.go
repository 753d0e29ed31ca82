// Package theme holds the colors and shared styles of the terminal client.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/konnektoren/internal/challenge"
)

// Palette. Red, sky and gold on charcoal.
var (
	Primary   = lipgloss.Color("#E11D48") // Rot
	Secondary = lipgloss.Color("#0EA5E9")
	Accent    = lipgloss.Color("#F59E0B")
	Success   = lipgloss.Color("#22C55E")
	Error     = lipgloss.Color("#F43F5E")
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	BgDark    = lipgloss.Color("#111827")
	BgCard    = lipgloss.Color("#1F2937")
	Border    = lipgloss.Color("#374151")
	XPGold    = lipgloss.Color("#FACC15")
	Highlight = lipgloss.Color("#22D3EE")
)

var kindColors = map[challenge.Kind]color.Color{
	challenge.KindMultipleChoice:   Secondary,
	challenge.KindSortTable:        lipgloss.Color("#A855F7"),
	challenge.KindContextualChoice: lipgloss.Color("#14B8A6"),
	challenge.KindInformative:      TextDim,
	challenge.KindCustom:           Accent,
}

// KindColor is the badge color of a challenge kind.
func KindColor(k challenge.Kind) color.Color {
	if c, ok := kindColors[k]; ok {
		return c
	}
	return Border
}

// PerformanceColor grades a 0..100 score: perfect, passing or failed.
func PerformanceColor(p float64) color.Color {
	switch {
	case p >= 100:
		return Success
	case p >= 50:
		return Text
	default:
		return Error
	}
}

var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Answer and selection states.
var (
	Selected = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	// Locked marks challenges whose unlock points exceed the player's XP.
	Locked = lipgloss.NewStyle().
		Foreground(Accent).
		Italic(true)
)

var (
	ProgressFilled = lipgloss.NewStyle().
			Background(Secondary)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)
)
