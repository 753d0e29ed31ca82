package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/konnektoren/internal/achievement"
	"github.com/abhisek/konnektoren/internal/challenge"
	"github.com/abhisek/konnektoren/internal/controller"
	"github.com/abhisek/konnektoren/internal/router"
	"github.com/abhisek/konnektoren/internal/screen"
	"github.com/abhisek/konnektoren/internal/screens/achievements"
	"github.com/abhisek/konnektoren/internal/screens/history"
	"github.com/abhisek/konnektoren/internal/screens/play"
	"github.com/abhisek/konnektoren/internal/ui/components"
	"github.com/abhisek/konnektoren/internal/ui/layout"
)

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	ctrl      controller.Controller
	evaluator *achievement.Evaluator

	menu       components.Menu
	menuLabels []string

	xp           int
	completed    int
	unlocked     int
	nextName     string
	nextLocked   bool
	unlockPoints int
	kind         challenge.Kind
	mascot       MascotVariant
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen. evaluator may be nil, in which case the
// achievements entry is disabled.
func New(ctrl controller.Controller, evaluator *achievement.Evaluator) *HomeScreen {
	menuLabels := []string{"PLAY", "HISTORY", "ACHIEVEMENTS", "EXIT"}

	items := []components.MenuItem{
		{Label: menuLabels[0], Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: play.New(ctrl)}
			}
		}},
		{Label: menuLabels[1], Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(ctrl)}
			}
		}},
		{Label: menuLabels[2], Disabled: evaluator == nil, Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: achievements.New(ctrl, evaluator)}
			}
		}},
		{Label: menuLabels[3], Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	h := &HomeScreen{
		ctrl:       ctrl,
		evaluator:  evaluator,
		menu:       components.NewMenu(items),
		menuLabels: menuLabels,
	}
	h.refresh()
	return h
}

// refresh recomputes the stats bar and the mascot from the current state.
func (h *HomeScreen) refresh() {
	s := h.ctrl.Snapshot()
	h.xp = s.Game.XP
	h.completed = s.Game.History.Len()

	h.unlocked = 0
	if h.evaluator != nil {
		// A broken definition only hides the badge count.
		if got, err := h.evaluator.Evaluate(s.Game); err == nil {
			h.unlocked = len(got)
		}
	}

	h.nextName = s.Challenge.Config.Name
	if h.nextName == "" {
		h.nextName = s.Challenge.Config.ID
	}
	h.nextLocked = !s.Challenge.Config.Unlocked(s.Game.XP)
	h.unlockPoints = s.Challenge.Config.UnlockPoints
	h.kind = s.Challenge.Type.Kind

	h.mascot = MascotIdle
	switch {
	case h.nextLocked:
		h.mascot = MascotAlert
	case h.completed > 0:
		past := s.Game.History.Challenges()
		if past[len(past)-1].Performance() >= 100 {
			h.mascot = MascotCelebrating
		}
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if _, ok := msg.(screen.GameEventMsg); ok {
		h.refresh()
		return h, nil
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height
	// by adding back header (3) + footer (3) + frame gaps
	termHeight := height + 8
	compact := termHeight < 30 || width < 100

	// All sections share a uniform content width so they line up.
	cw := components.ContentWidth(width)

	var sections []string

	sections = append(sections, renderTitle(cw, compact))

	if !compact {
		sections = append(sections, RenderMascot(h.mascot, h.kind))
	}

	sections = append(sections, renderStatsBar(h.xp, h.completed, h.unlocked, cw, compact))
	sections = append(sections, renderNext(h.nextName, h.kind, h.xp, h.nextLocked, h.unlockPoints, cw))
	sections = append(sections, renderMenu(h.menuLabels, h.menu.Selected, cw))

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
