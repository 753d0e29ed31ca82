package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/konnektoren/internal/challenge"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func TestMenuSkipsDisabledItems(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "A", Disabled: true},
		{Label: "B"},
		{Label: "C", Disabled: true},
		{Label: "D"},
	})
	if m.Selected != 1 {
		t.Fatalf("expected first enabled item selected, got %d", m.Selected)
	}

	m, _ = m.Update(specialKey(tea.KeyDown))
	if m.Selected != 3 {
		t.Errorf("expected down to skip disabled item, got %d", m.Selected)
	}
	m, _ = m.Update(keyPress('k'))
	if m.Selected != 1 {
		t.Errorf("expected k to skip disabled item, got %d", m.Selected)
	}
}

func TestMenuEnterRunsAction(t *testing.T) {
	ran := false
	m := NewMenu([]MenuItem{{Label: "Go", Action: func() tea.Cmd {
		ran = true
		return nil
	}}})

	m.Update(specialKey(tea.KeyEnter))
	if !ran {
		t.Error("expected enter to run the selected action")
	}
	if got := m.Labels(); len(got) != 1 || got[0] != "Go" {
		t.Errorf("labels = %v", got)
	}
}

func TestOptionListNavigation(t *testing.T) {
	o := NewOptionList("weil", "", []string{"Konjunktion", "Subjunktion", "Verbindungsadverb"})

	o, _ = o.Update(specialKey(tea.KeyUp))
	if o.Selected != 0 {
		t.Errorf("up at top moved cursor to %d", o.Selected)
	}
	o, _ = o.Update(keyPress('j'))
	o, _ = o.Update(keyPress('j'))
	o, _ = o.Update(keyPress('j'))
	if o.Selected != 2 {
		t.Errorf("expected cursor clamped at 2, got %d", o.Selected)
	}
	o, _ = o.Update(keyPress('2'))
	if o.Selected != 1 {
		t.Errorf("number key selected %d, want 1", o.Selected)
	}
	o, _ = o.Update(keyPress('9'))
	if o.Selected != 1 {
		t.Errorf("out of range number key moved cursor to %d", o.Selected)
	}
}

func TestOptionListView(t *testing.T) {
	o := NewOptionList("Ich lerne Deutsch, ___ ich in Berlin wohne.", "Nebensatz", []string{"und", "weil"})
	o.MarkAnswered(1, true)

	view := o.View()
	for _, want := range []string{"Berlin", "Nebensatz", "1)  und", "2)  weil"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
	if o.Answered != 1 || !o.Correct {
		t.Errorf("feedback not recorded: %+v", o)
	}
}

func TestTaskProgress(t *testing.T) {
	p := TaskProgress(1, 4, 40)
	if p.Label != "Task 2/4" {
		t.Errorf("label = %q", p.Label)
	}
	if p.Percent != 0.5 {
		t.Errorf("percent = %v, want 0.5", p.Percent)
	}
	if empty := TaskProgress(0, 0, 40); empty.Percent != 0 {
		t.Errorf("percent for no tasks = %v", empty.Percent)
	}
}

func TestContentWidthBounds(t *testing.T) {
	for _, tc := range []struct{ frame, want int }{
		{10, 20},
		{50, 44},
		{200, 64},
	} {
		if got := ContentWidth(tc.frame); got != tc.want {
			t.Errorf("ContentWidth(%d) = %d, want %d", tc.frame, got, tc.want)
		}
	}
}

func TestKindBadge(t *testing.T) {
	if got := KindBadge(challenge.KindSortTable); !strings.Contains(got, "SORT TABLE") {
		t.Errorf("expected kind label, got %q", got)
	}
}

func TestXPBadge(t *testing.T) {
	if got := XPBadge(3, 5); !strings.Contains(got, "★ 3 XP · 2 to go") {
		t.Errorf("expected missing points, got %q", got)
	}
	if got := XPBadge(7, 5); strings.Contains(got, "to go") {
		t.Errorf("unlocked target should not show missing points, got %q", got)
	}
}
