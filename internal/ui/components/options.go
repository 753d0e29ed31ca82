package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/konnektoren/internal/ui/theme"
)

// OptionList is the answer selector for a multiple-choice task. It only
// tracks the cursor; answering is left to the owner.
type OptionList struct {
	Question string
	Help     string
	Options  []string
	Selected int

	// Answered is the option chosen for the current task, or -1. Correct
	// tells whether it was right.
	Answered int
	Correct  bool
}

// NewOptionList creates an unanswered option list.
func NewOptionList(question, help string, options []string) OptionList {
	return OptionList{
		Question: question,
		Help:     help,
		Options:  options,
		Answered: -1,
	}
}

// Update moves the cursor. Number keys jump straight to an option.
func (o OptionList) Update(msg tea.Msg) (OptionList, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return o, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if o.Selected > 0 {
			o.Selected--
		}
	case "down", "j":
		if o.Selected < len(o.Options)-1 {
			o.Selected++
		}
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if i := int(key[0] - '1'); i < len(o.Options) {
				o.Selected = i
			}
		}
	}
	return o, nil
}

// MarkAnswered records the feedback for the option at index i.
func (o *OptionList) MarkAnswered(i int, correct bool) {
	o.Answered = i
	o.Correct = correct
}

// View renders the question and its options.
func (o OptionList) View() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(o.Question))
	b.WriteString("\n")
	if o.Help != "" {
		b.WriteString(theme.Hint.Render(o.Help))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for i, opt := range o.Options {
		prefix := "  "
		if i == o.Selected {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d)  %s", prefix, i+1, opt)

		var style lipgloss.Style
		switch {
		case i == o.Answered && o.Correct:
			style = theme.Correct
		case i == o.Answered:
			style = theme.Incorrect
		case i == o.Selected:
			style = theme.Selected
		default:
			style = theme.Unselected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
