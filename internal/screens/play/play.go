// Package play is the screen where the active challenge is played.
package play

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/konnektoren/internal/challenge"
	"github.com/abhisek/konnektoren/internal/command"
	"github.com/abhisek/konnektoren/internal/controller"
	"github.com/abhisek/konnektoren/internal/event"
	"github.com/abhisek/konnektoren/internal/game"
	"github.com/abhisek/konnektoren/internal/screen"
	"github.com/abhisek/konnektoren/internal/ui/components"
	"github.com/abhisek/konnektoren/internal/ui/layout"
)

// commandSentMsg is returned once a command has gone through the bus.
type commandSentMsg struct {
	Command command.Command
}

// PlayScreen renders the active challenge and turns key presses into
// commands on the controller's bus.
type PlayScreen struct {
	ctrl  controller.Controller
	state *game.State

	options components.OptionList
	// task is the task index the option list was built for.
	task int

	feedback   string
	feedbackOK bool
	completed  bool
	// xpBefore is the XP at the time the challenge was entered, for the
	// completion message.
	xpBefore int
}

var _ screen.Screen = (*PlayScreen)(nil)
var _ screen.KeyHintProvider = (*PlayScreen)(nil)

// New creates a PlayScreen over ctrl.
func New(ctrl controller.Controller) *PlayScreen {
	s := &PlayScreen{ctrl: ctrl, task: -1}
	s.refresh()
	s.xpBefore = s.state.Game.XP
	return s
}

func (s *PlayScreen) Init() tea.Cmd {
	return nil
}

func (s *PlayScreen) Title() string {
	if name := s.state.Challenge.Type.Name(); name != "" {
		return name
	}
	return "Challenge"
}

func (s *PlayScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{}
	if s.state.Challenge.Type.Kind == challenge.KindMultipleChoice {
		hints = append(hints,
			layout.KeyHint{Key: "↑↓", Description: "Choose"},
			layout.KeyHint{Key: "Enter", Description: "Answer"},
		)
	}
	return append(hints,
		layout.KeyHint{Key: "←→", Description: "Task"},
		layout.KeyHint{Key: "[ ]", Description: "Challenge"},
		layout.KeyHint{Key: "F", Description: "Finish"},
		layout.KeyHint{Key: "Esc", Description: "Back"},
	)
}

func (s *PlayScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.GameEventMsg:
		s.handleEvent(msg.Event)
		return s, nil

	case commandSentMsg:
		// Failed commands publish no event.
		s.refresh()
		if s.completed {
			s.feedback, s.feedbackOK = s.completionText(), true
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *PlayScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if s.state.Challenge.Type.Kind != challenge.KindMultipleChoice || s.state.TasksLen() == 0 {
			return s, nil
		}
		return s, s.publish(command.SolveOption(s.options.Selected))
	case "right", "n":
		if s.state.CurrentTaskIndex+1 >= s.state.TasksLen() {
			s.feedback, s.feedbackOK = "Last task. Press F to finish.", false
			return s, nil
		}
		return s, s.publish(command.NextTask())
	case "left", "p":
		if s.state.CurrentTaskIndex == 0 {
			return s, nil
		}
		return s, s.publish(command.PreviousTask())
	case "]":
		if s.state.CurrentChallengeIndex+1 >= s.state.CurrentPath().Len() {
			s.feedback, s.feedbackOK = "This is the last challenge of the path.", false
			return s, nil
		}
		return s, s.publish(command.NextChallenge())
	case "[":
		if s.state.CurrentChallengeIndex == 0 {
			return s, nil
		}
		return s, s.publish(command.PreviousChallenge())
	case "f":
		result := s.state.Challenge.Result.Clone()
		return s, s.publish(command.FinishFor(s.state.Challenge.Config.ID, &result))
	}

	var cmd tea.Cmd
	s.options, cmd = s.options.Update(msg)
	return s, cmd
}

// publish sends c through the command bus off the UI goroutine, so plugins
// observe it and resulting events flow back as GameEventMsg.
func (s *PlayScreen) publish(c command.Command) tea.Cmd {
	ctrl := s.ctrl
	return func() tea.Msg {
		ctrl.PublishCommand(c)
		return commandSentMsg{Command: c}
	}
}

func (s *PlayScreen) handleEvent(e event.Event) {
	s.refresh()

	ce, ok := e.(event.ChallengeEvent)
	if !ok {
		return
	}
	switch ce.Action {
	case event.ChallengeSolvedCorrect:
		s.feedback, s.feedbackOK = fmt.Sprintf("Task %d: richtig!", ce.Index+1), true
	case event.ChallengeSolvedIncorrect:
		s.feedback, s.feedbackOK = fmt.Sprintf("Task %d: leider falsch.", ce.Index+1), false
	case event.ChallengeStarted:
		s.feedback = ""
		s.completed = false
		s.xpBefore = s.state.Game.XP
	case event.ChallengeCompleted:
		s.completed = true
		s.feedback, s.feedbackOK = s.completionText(), true
	}
}

func (s *PlayScreen) completionText() string {
	return fmt.Sprintf("Challenge completed: %.0f%%, +%d XP",
		s.state.Challenge.Performance(), s.state.Game.XP-s.xpBefore)
}

// refresh reloads the state and rebuilds the option list when the task
// changed.
func (s *PlayScreen) refresh() {
	s.state = s.ctrl.Snapshot()

	mc := s.state.Challenge.Type.MultipleChoice
	task := s.state.CurrentTaskIndex
	if mc == nil || task >= len(mc.Questions) {
		s.options = components.OptionList{Answered: -1}
		s.task = -1
		return
	}
	if task == s.task {
		return
	}

	q := mc.Questions[task]
	labels := make([]string, len(mc.Options))
	for i, o := range mc.Options {
		labels[i] = o.Name
	}
	s.options = components.NewOptionList(q.Question, q.Help, labels)
	s.task = task

	if answers := s.state.Challenge.Result.MultipleChoice; task < len(answers) {
		for i, o := range mc.Options {
			if o.ID == answers[task].ID {
				s.options.MarkAnswered(i, s.state.Challenge.TaskCorrect(task))
			}
		}
	}
}
