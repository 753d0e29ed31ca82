package home

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/konnektoren/internal/challenge"
	"github.com/abhisek/konnektoren/internal/ui/theme"
)

// MascotVariant is the mascot's mood.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota
	MascotCelebrating               // last finished challenge was perfect
	MascotAlert                     // the next challenge is locked
)

// The mascot wears the kind of the next challenge on its chest. Each entry
// is three cells wide.
var mascotChest = map[challenge.Kind]string{
	challenge.KindMultipleChoice:   "abc",
	challenge.KindSortTable:        "↕≡↕",
	challenge.KindContextualChoice: "…?…",
	challenge.KindInformative:      " i ",
	challenge.KindCustom:           "<·>",
}

// RenderMascot draws the mascot in mood v for a challenge of kind k.
func RenderMascot(v MascotVariant, k challenge.Kind) string {
	eyes, mouth, flag := "◉ ◉", "▽", ""
	fg := theme.Primary
	switch v {
	case MascotCelebrating:
		eyes, mouth = "★ ★", "▿"
		fg = theme.XPGold
	case MascotAlert:
		flag = " !"
		fg = theme.Accent
	}

	chest, ok := mascotChest[k]
	if !ok {
		chest = "äöü"
	}

	lines := []string{
		"┌─────┐",
		"│ " + eyes + " │" + flag,
		"│  " + mouth + "  │",
		"│ " + chest + " │",
	}
	if v == MascotCelebrating {
		lines = append(lines, "└─╥═╥─┘", "  ╚═╝")
	} else {
		lines = append(lines, "└─────┘")
	}
	return lipgloss.NewStyle().Foreground(fg).Render(strings.Join(lines, "\n"))
}
