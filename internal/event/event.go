package event

import (
	"errors"
	"fmt"
	"math"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Wire format errors.
var (
	ErrUnknownEventType = errors.New("unknown event type")
	ErrUnknownAction    = errors.New("unknown action")
	ErrMissingData      = errors.New("missing data")
	ErrInvalidData      = errors.New("invalid data")
)

// Type is the bus category of an event.
type Type string

const (
	TypeGame      Type = "Game"
	TypeChallenge Type = "Challenge"
)

// Event is an observation published after a command was applied.
type Event interface {
	Type() Type
	String() string
}

// GameAction names a game level event.
type GameAction string

const GameStarted GameAction = "Started"

// GameEvent is published for game level changes.
type GameEvent struct {
	Action GameAction
}

func (e GameEvent) Type() Type { return TypeGame }

func (e GameEvent) String() string { return "Game." + string(e.Action) }

// ChallengeAction names a challenge level event.
type ChallengeAction string

const (
	ChallengeStarted         ChallengeAction = "Started"
	ChallengeSolvedCorrect   ChallengeAction = "SolvedCorrect"
	ChallengeSolvedIncorrect ChallengeAction = "SolvedIncorrect"
	ChallengeCompleted       ChallengeAction = "Completed"
)

// ChallengeEvent is published for changes of the active challenge. Index is
// the task index for the Solved actions.
type ChallengeEvent struct {
	Action ChallengeAction
	Index  int
}

// Started reports that a challenge was entered.
func Started() ChallengeEvent { return ChallengeEvent{Action: ChallengeStarted} }

// Completed reports that the active challenge was finished.
func Completed() ChallengeEvent { return ChallengeEvent{Action: ChallengeCompleted} }

// Solved reports the outcome of answering task index.
func Solved(index int, correct bool) ChallengeEvent {
	if correct {
		return ChallengeEvent{Action: ChallengeSolvedCorrect, Index: index}
	}
	return ChallengeEvent{Action: ChallengeSolvedIncorrect, Index: index}
}

func (e ChallengeEvent) Type() Type { return TypeChallenge }

func (e ChallengeEvent) String() string {
	if e.hasIndex() {
		return fmt.Sprintf("Challenge.%s(%d)", e.Action, e.Index)
	}
	return "Challenge." + string(e.Action)
}

func (e ChallengeEvent) hasIndex() bool {
	return e.Action == ChallengeSolvedCorrect || e.Action == ChallengeSolvedIncorrect
}

// Parse decodes an event from its JSON wire form, e.g.
// {"type":"Challenge","action":"SolvedCorrect","index":2}.
func Parse(data []byte) (Event, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed json", ErrInvalidData)
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, fmt.Errorf("%w: event must be an object", ErrInvalidData)
	}
	typ, action := doc.Get("type"), doc.Get("action")
	if !typ.Exists() || !action.Exists() {
		return nil, fmt.Errorf("%w: type and action are required", ErrMissingData)
	}
	if typ.Type != gjson.String || action.Type != gjson.String {
		return nil, fmt.Errorf("%w: type and action must be strings", ErrInvalidData)
	}

	switch Type(typ.Str) {
	case TypeGame:
		if GameAction(action.Str) != GameStarted {
			return nil, fmt.Errorf("%w: %s", ErrUnknownAction, action.Str)
		}
		return GameEvent{Action: GameStarted}, nil
	case TypeChallenge:
		e := ChallengeEvent{Action: ChallengeAction(action.Str)}
		switch e.Action {
		case ChallengeStarted, ChallengeCompleted:
			return e, nil
		case ChallengeSolvedCorrect, ChallengeSolvedIncorrect:
			idx := doc.Get("index")
			if !idx.Exists() {
				return nil, fmt.Errorf("%w: index", ErrMissingData)
			}
			if idx.Type != gjson.Number || idx.Num != math.Trunc(idx.Num) {
				return nil, fmt.Errorf("%w: index must be an integer", ErrInvalidData)
			}
			e.Index = int(idx.Int())
			return e, nil
		default:
			return nil, fmt.Errorf("%w: %s", ErrUnknownAction, action.Str)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownEventType, typ.Str)
	}
}

// Marshal encodes an event in its JSON wire form.
func Marshal(e Event) ([]byte, error) {
	var (
		out []byte
		err error
	)
	switch e := e.(type) {
	case GameEvent:
		out, err = header(TypeGame, string(e.Action))
	case ChallengeEvent:
		out, err = header(TypeChallenge, string(e.Action))
		if err == nil && e.hasIndex() {
			out, err = sjson.SetBytes(out, "index", e.Index)
		}
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownEventType, e)
	}
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	return out, nil
}

func header(t Type, action string) ([]byte, error) {
	out, err := sjson.SetBytes([]byte("{}"), "type", string(t))
	if err != nil {
		return nil, err
	}
	return sjson.SetBytes(out, "action", action)
}
