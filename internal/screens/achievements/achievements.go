// Package achievements shows which achievements the player has unlocked.
package achievements

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/konnektoren/internal/achievement"
	"github.com/abhisek/konnektoren/internal/controller"
	"github.com/abhisek/konnektoren/internal/router"
	"github.com/abhisek/konnektoren/internal/screen"
	"github.com/abhisek/konnektoren/internal/ui/components"
	"github.com/abhisek/konnektoren/internal/ui/layout"
	"github.com/abhisek/konnektoren/internal/ui/theme"
)

type evaluatedMsg struct {
	Statistics achievement.Statistics
	Achieved   map[string]bool
	Err        error
}

// AchievementsScreen lists every achievement definition in definition order
// and highlights the unlocked ones.
type AchievementsScreen struct {
	ctrl      controller.Controller
	evaluator *achievement.Evaluator

	spinner  spinner.Model
	loaded   bool
	stats    achievement.Statistics
	achieved map[string]bool
	errMsg   string
}

var _ screen.Screen = (*AchievementsScreen)(nil)
var _ screen.KeyHintProvider = (*AchievementsScreen)(nil)

// New creates an AchievementsScreen.
func New(ctrl controller.Controller, evaluator *achievement.Evaluator) *AchievementsScreen {
	return &AchievementsScreen{
		ctrl:      ctrl,
		evaluator: evaluator,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.MiniDot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.XPGold)),
		),
	}
}

func (s *AchievementsScreen) Init() tea.Cmd {
	return tea.Batch(s.spinner.Tick, s.evaluate())
}

// evaluate runs the conditions off the UI goroutine.
func (s *AchievementsScreen) evaluate() tea.Cmd {
	ctrl, evaluator := s.ctrl, s.evaluator
	return func() tea.Msg {
		g := ctrl.Snapshot().Game
		achieved, err := evaluator.Evaluate(g)
		if err != nil {
			return evaluatedMsg{Err: err}
		}
		ids := make(map[string]bool, len(achieved))
		for _, d := range achieved {
			ids[d.ID] = true
		}
		return evaluatedMsg{Statistics: achievement.ComputeStatistics(g), Achieved: ids}
	}
}

func (s *AchievementsScreen) Title() string {
	return "Achievements"
}

func (s *AchievementsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (s *AchievementsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case evaluatedMsg:
		s.loaded = true
		s.errMsg = ""
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.stats = msg.Statistics
		s.achieved = msg.Achieved
		return s, nil

	case screen.GameEventMsg:
		return s, s.evaluate()

	case spinner.TickMsg:
		if s.loaded {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		if msg.String() == "esc" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *AchievementsScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	if s.errMsg != "" {
		return center.Foreground(theme.Error).Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return center.Foreground(theme.TextDim).Render("\n\n" + s.spinner.View() + " Checking achievements...")
	}

	cw := components.ContentWidth(width)
	var b strings.Builder

	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	fmt.Fprintf(&b, "%s\n\n", dim.Render(fmt.Sprintf(
		"%d challenges  ·  %.0f%% average  ·  %d XP  ·  %d perfect",
		s.stats.TotalChallenges, s.stats.AveragePerformance, s.stats.TotalXP, s.stats.PerfectChallenges)))

	for _, d := range s.evaluator.Definitions() {
		mark := lipgloss.NewStyle().Foreground(theme.TextDim).Render("·")
		name := lipgloss.NewStyle().Foreground(theme.TextDim).Render(d.Name)
		if s.achieved[d.ID] {
			mark = lipgloss.NewStyle().Foreground(theme.XPGold).Render("★")
			name = lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(d.Name)
		}
		fmt.Fprintf(&b, "%s %s\n", mark, name)
		if d.Description != "" {
			fmt.Fprintf(&b, "  %s\n", dim.Render(d.Description))
		}
	}

	return center.Render(components.Card(strings.TrimRight(b.String(), "\n"), cw))
}

// Unlocked returns how many achievements are currently unlocked.
func (s *AchievementsScreen) Unlocked() int {
	return len(s.achieved)
}
