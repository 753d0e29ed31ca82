package app

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/konnektoren/internal/achievement"
	"github.com/abhisek/konnektoren/internal/controller"
	"github.com/abhisek/konnektoren/internal/event"
	"github.com/abhisek/konnektoren/internal/router"
	"github.com/abhisek/konnektoren/internal/screen"
	"github.com/abhisek/konnektoren/internal/screens/home"
	"github.com/abhisek/konnektoren/internal/ui/layout"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	ctrl   controller.Controller
	router *router.Router
	width  int
	height int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(ctrl controller.Controller, evaluator *achievement.Evaluator) AppModel {
	return AppModel{
		ctrl:   ctrl,
		router: router.New(home.New(ctrl, evaluator)),
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	s := m.ctrl.Snapshot()
	header := layout.RenderHeader(title, s.Game.XP, s.Game.History.Len(), m.width)

	var footerHints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		footerHints = p.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program over ctrl. Every event the controller
// publishes is delivered to all screens on the stack.
func Run(ctrl controller.Controller, evaluator *achievement.Evaluator) error {
	p := tea.NewProgram(newAppModel(ctrl, evaluator))

	forward := func(e event.Event) {
		p.Send(router.BroadcastMsg{Msg: screen.GameEventMsg{Event: e}})
	}
	ctrl.EventBus().Subscribe(event.TypeGame, forward)
	ctrl.EventBus().Subscribe(event.TypeChallenge, forward)

	if _, err := p.Run(); err != nil {
		ctrl.Logger().Error().Err(err).Msg("run program")
		return err
	}
	return nil
}
