package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/konnektoren/internal/screen"
)

// stubScreen is a minimal screen for testing.
type stubScreen struct {
	title   string
	initRan bool
	seen    []tea.Msg
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}
func (s *stubScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.seen = append(s.seen, msg)
	return s, nil
}
func (s *stubScreen) View(int, int) string { return s.title }
func (s *stubScreen) Title() string        { return s.title }

func TestPush(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Push(s2)

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "second" {
		t.Errorf("expected active 'second', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run on pushed screen")
	}
}

func TestPop(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Push(s2)
	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("expected depth 1, got %d", r.Depth())
	}
	if r.Active().Title() != "first" {
		t.Errorf("expected active 'first', got %q", r.Active().Title())
	}
}

func TestPopNoopAtBottom(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after pop at bottom, got %d", r.Depth())
	}
}

func TestReplace(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Replace(s2)

	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after replace, got %d", r.Depth())
	}
	if r.Active().Title() != "second" {
		t.Errorf("expected active 'second', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run on replaced screen")
	}
}

func TestReplaceScreenMsg(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Update(ReplaceScreenMsg{Screen: s2})

	if r.Active().Title() != "second" {
		t.Errorf("expected active 'second', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run via ReplaceScreenMsg")
	}
}

func TestReplacePreservesStackDepth(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Push(s2)

	s3 := &stubScreen{title: "third"}
	r.Replace(s3)

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "third" {
		t.Errorf("expected active 'third', got %q", r.Active().Title())
	}
}

type pingMsg struct{}

func TestUpdateReachesOnlyActiveScreen(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)
	s2 := &stubScreen{title: "second"}
	r.Push(s2)

	r.Update(pingMsg{})

	if len(s1.seen) != 0 {
		t.Errorf("expected covered screen to see nothing, got %d messages", len(s1.seen))
	}
	if len(s2.seen) != 1 {
		t.Errorf("expected active screen to see 1 message, got %d", len(s2.seen))
	}
}

func TestBroadcastReachesAllScreens(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)
	s2 := &stubScreen{title: "second"}
	r.Push(s2)

	r.Update(BroadcastMsg{Msg: pingMsg{}})

	for _, s := range []*stubScreen{s1, s2} {
		if len(s.seen) != 1 {
			t.Errorf("%s: expected 1 message, got %d", s.title, len(s.seen))
			continue
		}
		if _, ok := s.seen[0].(pingMsg); !ok {
			t.Errorf("%s: expected unwrapped pingMsg, got %T", s.title, s.seen[0])
		}
	}
}
