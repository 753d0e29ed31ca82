package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/konnektoren/internal/challenge"
	"github.com/abhisek/konnektoren/internal/ui/theme"
)

// ContentWidth is the inner width shared by every box inside a frame of
// frameWidth columns, so stacked sections line up.
func ContentWidth(frameWidth int) int {
	// border 2, padding 4
	return min(max(frameWidth-6, 20), 64)
}

// CabinetFrame centers content inside a double border filling width×height.
func CabinetFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// Card is a rounded box cw columns wide.
func Card(content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw - 2).
		Padding(1, 2).
		Render(content)
}

// Button renders a menu entry at a fixed width. The selected entry is filled
// in XP gold.
func Button(label string, selected bool, width int) string {
	style := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	if !selected {
		return style.Foreground(theme.Text).BorderForeground(theme.Border).Render(label)
	}
	return style.
		Bold(true).
		Foreground(theme.BgDark).
		Background(theme.XPGold).
		BorderForeground(theme.XPGold).
		Render("▸ " + label)
}

// KindBadge labels a challenge kind, e.g. "MULTIPLE CHOICE", in its kind
// color.
func KindBadge(k challenge.Kind) string {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.BgDark).
		Background(theme.KindColor(k)).
		Padding(0, 1).
		Render(strings.ToUpper(k.DisplayName()))
}

// XPBadge shows an XP amount, with the missing points when an unlock target
// is still ahead.
func XPBadge(xp, target int) string {
	text := fmt.Sprintf("★ %d XP", xp)
	if target > xp {
		return theme.Locked.Render(fmt.Sprintf("%s · %d to go", text, target-xp))
	}
	return lipgloss.NewStyle().Foreground(theme.XPGold).Bold(true).Render(text)
}
