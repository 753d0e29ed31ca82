package play

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/konnektoren/internal/controller"
	"github.com/abhisek/konnektoren/internal/event"
	"github.com/abhisek/konnektoren/internal/game"
	"github.com/abhisek/konnektoren/internal/persistence"
	"github.com/abhisek/konnektoren/internal/plugins"
	"github.com/abhisek/konnektoren/internal/screen"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// harness drives a PlayScreen the way the program would: commands returned
// by Update are run and bus events are fed back as messages.
type harness struct {
	t      *testing.T
	ctrl   *controller.GameController
	screen *PlayScreen
	events []event.Event
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	ctrl := controller.New(game.Default(), persistence.NewMemory(), controller.WithPlugins(
		plugins.NewChallengeFinishPlugin(),
		plugins.NewGameXPPlugin(),
	))
	h := &harness{t: t, ctrl: ctrl}
	record := func(e event.Event) { h.events = append(h.events, e) }
	ctrl.EventBus().Subscribe(event.TypeGame, record)
	ctrl.EventBus().Subscribe(event.TypeChallenge, record)
	if err := ctrl.Init(); err != nil {
		t.Fatalf("init controller: %v", err)
	}
	h.events = nil
	h.screen = New(ctrl)
	return h
}

func (h *harness) send(msg tea.Msg) {
	h.t.Helper()
	_, cmd := h.screen.Update(msg)
	if cmd == nil {
		return
	}
	result := cmd()
	pending := h.events
	h.events = nil
	for _, e := range pending {
		h.screen.Update(screen.GameEventMsg{Event: e})
	}
	if result != nil {
		h.screen.Update(result)
	}
}

func TestAnswerPublishesSolveOption(t *testing.T) {
	h := newHarness(t)

	// First question of konnektoren-1 is "und", a Konjunktion (first option).
	h.send(specialKey(tea.KeyEnter))

	s := h.ctrl.Snapshot()
	if s.Challenge.Result.Len() != 1 {
		t.Fatalf("expected 1 answer, got %d", s.Challenge.Result.Len())
	}
	if s.CurrentTaskIndex != 1 {
		t.Errorf("expected task index 1 after answering, got %d", s.CurrentTaskIndex)
	}
	if !h.screen.feedbackOK || !strings.Contains(h.screen.feedback, "richtig") {
		t.Errorf("expected positive feedback, got %q", h.screen.feedback)
	}
	if h.screen.task != 1 {
		t.Errorf("option list not rebuilt for next task, task = %d", h.screen.task)
	}
}

func TestWrongAnswerFeedback(t *testing.T) {
	h := newHarness(t)

	h.send(specialKey(tea.KeyDown))
	h.send(specialKey(tea.KeyEnter))

	if h.screen.feedbackOK {
		t.Errorf("expected negative feedback, got %q", h.screen.feedback)
	}
	if !strings.Contains(h.screen.feedback, "Task 1") {
		t.Errorf("feedback should name the task: %q", h.screen.feedback)
	}
}

func TestTaskNavigationBoundaries(t *testing.T) {
	h := newHarness(t)

	h.send(keyPress('p'))
	if got := h.ctrl.Snapshot().CurrentTaskIndex; got != 0 {
		t.Fatalf("previous at first task moved to %d", got)
	}

	for i := 0; i < 10; i++ {
		h.send(specialKey(tea.KeyRight))
	}
	s := h.ctrl.Snapshot()
	if s.CurrentTaskIndex != s.TasksLen()-1 {
		t.Errorf("expected to stop at last task %d, got %d", s.TasksLen()-1, s.CurrentTaskIndex)
	}
	if !strings.Contains(h.screen.feedback, "Last task") {
		t.Errorf("expected last task hint, got %q", h.screen.feedback)
	}

	h.send(specialKey(tea.KeyLeft))
	if got := h.ctrl.Snapshot().CurrentTaskIndex; got != s.TasksLen()-2 {
		t.Errorf("left moved to %d", got)
	}
}

func TestChallengeNavigation(t *testing.T) {
	h := newHarness(t)

	h.send(keyPress('['))
	if got := h.ctrl.Snapshot().CurrentChallengeIndex; got != 0 {
		t.Fatalf("previous challenge at start moved to %d", got)
	}

	h.send(keyPress(']'))
	s := h.ctrl.Snapshot()
	if s.CurrentChallengeIndex != 1 || s.CurrentTaskIndex != 0 {
		t.Errorf("expected challenge 1 task 0, got %d/%d", s.CurrentChallengeIndex, s.CurrentTaskIndex)
	}
	if h.screen.state.Challenge.Config.ID != "konnektoren-2" {
		t.Errorf("screen shows %q", h.screen.state.Challenge.Config.ID)
	}
}

func TestFinishRecordsHistoryAndXP(t *testing.T) {
	h := newHarness(t)

	// konnektoren-1 answers: und=0, weil=1, deshalb=2, entweder...oder=3, obwohl=1.
	for _, opt := range []rune{'1', '2', '3', '4', '2'} {
		h.send(keyPress(opt))
		h.send(specialKey(tea.KeyEnter))
	}
	h.send(keyPress('f'))

	g := h.ctrl.Snapshot().Game
	if g.History.Len() != 1 {
		t.Fatalf("expected 1 history entry, got %d", g.History.Len())
	}
	if g.XP != 10 {
		t.Errorf("expected 10 XP, got %d", g.XP)
	}
	if !h.screen.completed {
		t.Error("expected screen to show completion")
	}
	if !strings.Contains(h.screen.feedback, "100%") || !strings.Contains(h.screen.feedback, "+10 XP") {
		t.Errorf("completion feedback = %q", h.screen.feedback)
	}
}

func TestViewRendersQuestion(t *testing.T) {
	h := newHarness(t)

	view := h.screen.View(100, 30)
	for _, want := range []string{"Konjunktion", "Subjunktion", "Task 1/5"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if h.screen.Title() == "" {
		t.Error("expected a title")
	}
	if len(h.screen.KeyHints()) == 0 {
		t.Error("expected key hints")
	}
}

func TestInformativeChallenge(t *testing.T) {
	g := game.Default()
	for i, p := range g.Paths {
		if p.ID == "einfuehrung" {
			g.Paths[0], g.Paths[i] = g.Paths[i], g.Paths[0]
		}
	}
	ctrl := controller.New(g, nil)
	if err := ctrl.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	s := New(ctrl)

	view := s.View(100, 30)
	if !strings.Contains(view, "Press F") {
		t.Errorf("informative view missing finish hint")
	}

	// Enter does nothing for informative challenges.
	if _, cmd := s.Update(specialKey(tea.KeyEnter)); cmd != nil {
		t.Error("expected no command for enter on informative challenge")
	}
}
