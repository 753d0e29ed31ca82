package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/konnektoren/internal/challenge"
	"github.com/abhisek/konnektoren/internal/ui/components"
	"github.com/abhisek/konnektoren/internal/ui/theme"
)

const titleFull = `╦╔═╔═╗╔╗╔╔╗╔╔═╗╦╔═╔╦╗╔═╗╦═╗╔═╗╔╗╔
╠╩╗║ ║║║║║║║║╣ ╠╩╗ ║ ║ ║╠╦╝║╣ ║║║
╩ ╩╚═╝╝╚╝╝╚╝╚═╝╩ ╩ ╩ ╚═╝╩╚═╚═╝╝╚╝`

const titleCompact = "K · O · N · N · E · K · T · O · R · E · N"

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	title := titleFull
	if compact {
		title = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(lipgloss.NewStyle().Foreground(theme.XPGold).Bold(true).Render(title))
}

// renderStatsBar renders XP, completed challenges and unlocked achievements
// in a double-bordered box matching content width.
func renderStatsBar(xp, completed, achievements, cw int, compact bool) string {
	xpStyle := lipgloss.NewStyle().Foreground(theme.XPGold).Bold(true)
	doneStyle := lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
	achStyle := lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true)

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s %s",
			xpStyle.Render(fmt.Sprintf("★%d", xp)),
			doneStyle.Render(fmt.Sprintf("✓%d", completed)),
			achStyle.Render(fmt.Sprintf("♛%d", achievements)),
		)
	} else {
		stats = fmt.Sprintf("%s  %s  %s",
			xpStyle.Render(fmt.Sprintf("★ %d XP", xp)),
			doneStyle.Render(fmt.Sprintf("✓ %d DONE", completed)),
			achStyle.Render(fmt.Sprintf("♛ %d BADGES", achievements)),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Highlight).
		Width(cw - 2). // account for border chars
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

// renderNext describes the challenge that PLAY continues with.
func renderNext(name string, kind challenge.Kind, xp int, locked bool, unlockPoints, cw int) string {
	line := lipgloss.NewStyle().Foreground(theme.Text).Render("Next: "+name) + "  " + components.KindBadge(kind)
	if locked {
		line += "\n" + theme.Locked.Render(fmt.Sprintf("(needs %d XP)", unlockPoints)) + "  " + components.XPBadge(xp, unlockPoints)
	}
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(line)
}

// renderMenu renders each menu item as a fixed-width button.
func renderMenu(items []string, selected int, cw int) string {
	buttons := make([]string, len(items))
	for i, label := range items {
		buttons[i] = components.Button(label, i == selected, buttonWidth)
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}
