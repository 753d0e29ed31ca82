package history

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/konnektoren/internal/challenge"
	"github.com/abhisek/konnektoren/internal/controller"
	"github.com/abhisek/konnektoren/internal/router"
	"github.com/abhisek/konnektoren/internal/screen"
	"github.com/abhisek/konnektoren/internal/ui/layout"
	"github.com/abhisek/konnektoren/internal/ui/theme"
)

type historyLoadedMsg struct {
	Challenges []challenge.Challenge
}

// HistoryScreen displays completed challenges, newest first.
type HistoryScreen struct {
	ctrl       controller.Controller
	challenges []challenge.Challenge
	selected   int
	expanded   map[int]bool
	loaded     bool
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(ctrl controller.Controller) *HistoryScreen {
	return &HistoryScreen{
		ctrl:     ctrl,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return s.load()
}

func (s *HistoryScreen) load() tea.Cmd {
	ctrl := s.ctrl
	return func() tea.Msg {
		past := ctrl.Snapshot().Game.History.Challenges()
		for i, j := 0, len(past)-1; i < j; i, j = i+1, j-1 {
			past[i], past[j] = past[j], past[i]
		}
		return historyLoadedMsg{Challenges: past}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if len(msg.Challenges) != len(s.challenges) {
			// Entries shift down when a challenge is added.
			s.expanded = make(map[int]bool)
			s.selected = 0
		}
		s.challenges = msg.Challenges
		s.loaded = true
		return s, nil

	case screen.GameEventMsg:
		return s, s.load()

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.challenges)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.challenges) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No challenges completed yet. Start playing!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, c := range s.challenges {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		name := c.Config.Name
		if name == "" {
			name = c.Type.Name()
		}
		line := fmt.Sprintf("%s%-28s %-18s %3.0f%%  (%s)",
			prefix, name, c.Type.Kind.DisplayName(), c.Performance(), c.Config.ID)

		style := lipgloss.NewStyle().Foreground(theme.PerformanceColor(c.Performance()))
		if i == s.selected {
			style = style.Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.TextDim).Render("    "+taskMarks(c))))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// taskMarks renders one mark per answered task.
func taskMarks(c challenge.Challenge) string {
	n := c.Result.Len()
	if n == 0 {
		return "No answers recorded"
	}
	marks := make([]string, n)
	for i := range n {
		if c.TaskCorrect(i) {
			marks[i] = "✓"
		} else {
			marks[i] = "✗"
		}
	}
	return fmt.Sprintf("%d/%d answered  %s", n, c.Type.Len(), strings.Join(marks, " "))
}
