package command

import (
	"errors"
	"fmt"

	"github.com/abhisek/konnektoren/internal/challenge"
	"github.com/abhisek/konnektoren/internal/game"
)

// Navigation errors. They are expected at path and challenge boundaries.
var (
	ErrNoMoreChallenges     = errors.New("no more challenges")
	ErrNoPreviousChallenges = errors.New("no previous challenges")
	ErrNoMoreTasks          = errors.New("no more tasks")
	ErrNoPreviousTasks      = errors.New("no previous tasks")
)

// InvalidOptionError is returned by SolveOption when the option index does
// not exist in the active challenge.
type InvalidOptionError struct {
	Index int
}

func (e *InvalidOptionError) Error() string {
	return fmt.Sprintf("invalid option id: %d", e.Index)
}

// Type is the bus category of a command.
type Type string

const (
	TypeGame      Type = "Game"
	TypeChallenge Type = "Challenge"
)

// Command is a transition over the game state. Execute validates before it
// mutates, so a failed command leaves the state unchanged.
type Command interface {
	Type() Type
	Execute(s *game.State) error
	String() string
}

// GameAction is a navigation step between challenges.
type GameAction string

const (
	NextChallengeAction     GameAction = "NextChallenge"
	PreviousChallengeAction GameAction = "PreviousChallenge"
)

// GameCommand moves between challenges of the active path.
type GameCommand struct {
	Action GameAction
}

// NextChallenge returns the command that enters the following challenge.
func NextChallenge() GameCommand { return GameCommand{Action: NextChallengeAction} }

// PreviousChallenge returns the command that re-enters the preceding challenge.
func PreviousChallenge() GameCommand { return GameCommand{Action: PreviousChallengeAction} }

func (c GameCommand) Type() Type { return TypeGame }

func (c GameCommand) String() string { return "Game." + string(c.Action) }

// Execute applies the navigation step.
func (c GameCommand) Execute(s *game.State) error {
	switch c.Action {
	case NextChallengeAction:
		return enterChallenge(s, s.CurrentChallengeIndex+1, ErrNoMoreChallenges)
	case PreviousChallengeAction:
		return enterChallenge(s, s.CurrentChallengeIndex-1, ErrNoPreviousChallenges)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownAction, c.Action)
	}
}

// enterChallenge re-instantiates the challenge at index and resets the task
// cursor. Content lookup failures fall back to the placeholder challenge.
func enterChallenge(s *game.State, index int, boundary error) error {
	cfg, ok := s.ConfigAt(index)
	if !ok {
		return boundary
	}
	s.Challenge = s.Instantiate(cfg)
	s.CurrentChallengeIndex = index
	s.CurrentTaskIndex = 0
	return nil
}

// ChallengeAction is a step inside the active challenge.
type ChallengeAction string

const (
	NextTaskAction     ChallengeAction = "NextTask"
	PreviousTaskAction ChallengeAction = "PreviousTask"
	SolveOptionAction  ChallengeAction = "SolveOption"
	FinishAction       ChallengeAction = "Finish"
)

// ChallengeCommand operates on the active challenge.
type ChallengeCommand struct {
	Action ChallengeAction

	// OptionIndex is the chosen option for SolveOption.
	OptionIndex int

	// Result optionally replaces the challenge result on Finish.
	Result *challenge.Result

	// ConfigID names the challenge a Finish belongs to. Empty means the
	// active one.
	ConfigID string
}

// NextTask returns the command that advances to the next task.
func NextTask() ChallengeCommand { return ChallengeCommand{Action: NextTaskAction} }

// PreviousTask returns the command that goes back one task.
func PreviousTask() ChallengeCommand { return ChallengeCommand{Action: PreviousTaskAction} }

// SolveOption returns the command that answers the current task with the
// option at index i.
func SolveOption(i int) ChallengeCommand {
	return ChallengeCommand{Action: SolveOptionAction, OptionIndex: i}
}

// Finish returns the command that completes the active challenge. A non-nil
// result replaces the recorded one.
func Finish(result *challenge.Result) ChallengeCommand {
	return ChallengeCommand{Action: FinishAction, Result: result}
}

// FinishFor is Finish bound to a specific challenge config.
func FinishFor(configID string, result *challenge.Result) ChallengeCommand {
	c := Finish(result)
	c.ConfigID = configID
	return c
}

func (c ChallengeCommand) Type() Type { return TypeChallenge }

func (c ChallengeCommand) String() string {
	switch c.Action {
	case SolveOptionAction:
		return fmt.Sprintf("Challenge.SolveOption(%d)", c.OptionIndex)
	case FinishAction:
		if c.Result != nil {
			return fmt.Sprintf("Challenge.Finish(%d answers)", c.Result.Len())
		}
		return "Challenge.Finish"
	default:
		return "Challenge." + string(c.Action)
	}
}

// AppliesTo reports whether c targets the active challenge of s. Only a
// Finish bound to another challenge config does not.
func (c ChallengeCommand) AppliesTo(s *game.State) bool {
	return c.ConfigID == "" || c.ConfigID == s.Challenge.Config.ID
}

// Execute applies the challenge step.
func (c ChallengeCommand) Execute(s *game.State) error {
	switch c.Action {
	case NextTaskAction:
		return nextTask(s)
	case PreviousTaskAction:
		if s.CurrentTaskIndex <= 0 {
			return ErrNoPreviousTasks
		}
		s.CurrentTaskIndex--
		return nil
	case SolveOptionAction:
		return solveOption(s, c.OptionIndex)
	case FinishAction:
		// A finish addressed to another challenge arrived late; the active
		// challenge keeps its result.
		if !c.AppliesTo(s) {
			return nil
		}
		if c.Result != nil {
			s.Challenge.Result = c.Result.Clone()
		}
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownAction, c.Action)
	}
}

func nextTask(s *game.State) error {
	if s.CurrentTaskIndex >= s.TasksLen()-1 {
		return ErrNoMoreTasks
	}
	s.CurrentTaskIndex++
	return nil
}

func solveOption(s *game.State, i int) error {
	options := s.Challenge.Type.Options()
	if i < 0 || i >= len(options) {
		return &InvalidOptionError{Index: i}
	}
	if err := s.Challenge.Solve(challenge.MultipleChoiceInput(options[i])); err != nil {
		return err
	}
	// Reaching the last task is the normal end of a challenge.
	_ = nextTask(s)
	return nil
}
