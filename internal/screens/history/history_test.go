package history

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/konnektoren/internal/command"
	"github.com/abhisek/konnektoren/internal/controller"
	"github.com/abhisek/konnektoren/internal/event"
	"github.com/abhisek/konnektoren/internal/game"
	"github.com/abhisek/konnektoren/internal/persistence"
	"github.com/abhisek/konnektoren/internal/plugins"
	"github.com/abhisek/konnektoren/internal/router"
	"github.com/abhisek/konnektoren/internal/screen"
)

func newController(t *testing.T) *controller.GameController {
	t.Helper()
	ctrl := controller.New(game.Default(), persistence.NewMemory(), controller.WithPlugins(
		plugins.NewChallengeFinishPlugin(),
	))
	if err := ctrl.Init(); err != nil {
		t.Fatalf("init controller: %v", err)
	}
	return ctrl
}

// finish publishes a Finish carrying the active challenge's result.
func finish(ctrl *controller.GameController) {
	s := ctrl.Snapshot()
	result := s.Challenge.Result.Clone()
	ctrl.PublishCommand(command.FinishFor(s.Challenge.Config.ID, &result))
}

func load(t *testing.T, s *HistoryScreen, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected load command")
	}
	s.Update(cmd())
}

func TestHistoryEmpty(t *testing.T) {
	s := New(newController(t))
	if !strings.Contains(s.View(100, 30), "Loading") {
		t.Error("expected loading text before the first load")
	}
	load(t, s, s.Init())
	if !strings.Contains(s.View(100, 30), "No challenges completed yet") {
		t.Error("expected empty state")
	}
}

func TestHistoryListsNewestFirst(t *testing.T) {
	ctrl := newController(t)
	// konnektoren-1 with the first answer right, the second wrong.
	for _, opt := range []int{0, 0} {
		if err := ctrl.HandleCommand(command.SolveOption(opt)); err != nil {
			t.Fatalf("solve: %v", err)
		}
	}
	finish(ctrl)
	ctrl.PublishCommand(command.NextChallenge())
	finish(ctrl)

	s := New(ctrl)
	load(t, s, s.Init())
	if len(s.challenges) != 2 {
		t.Fatalf("len(challenges) = %d, want 2", len(s.challenges))
	}
	if got := s.challenges[0].Config.ID; got != "konnektoren-2" {
		t.Errorf("newest entry = %q, want konnektoren-2", got)
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	view := s.View(120, 30)
	if !strings.Contains(view, "konnektoren-1") {
		t.Error("view should show config ids")
	}
	if !strings.Contains(view, "2/5 answered  ✓ ✗") {
		t.Errorf("expanded entry should show task marks, got:\n%s", view)
	}
}

func TestHistoryReloadsOnGameEvent(t *testing.T) {
	ctrl := newController(t)
	s := New(ctrl)
	load(t, s, s.Init())

	finish(ctrl)
	_, cmd := s.Update(screen.GameEventMsg{Event: event.Completed()})
	load(t, s, cmd)
	if len(s.challenges) != 1 {
		t.Errorf("len(challenges) = %d, want 1", len(s.challenges))
	}
}

func TestHistoryEscPops(t *testing.T) {
	s := New(newController(t))
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("esc should pop the screen")
	}
}
