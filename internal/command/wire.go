package command

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/abhisek/konnektoren/internal/challenge"
)

// Wire format errors.
var (
	ErrUnknownCommandType = errors.New("unknown command type")
	ErrUnknownAction      = errors.New("unknown action")
	ErrMissingData        = errors.New("missing data")
	ErrInvalidData        = errors.New("invalid data")
)

// Parse decodes a command from its JSON wire form:
//
//	{"type": "Game", "action": "NextChallenge"}
//	{"type": "Challenge", "action": "SolveOption", "optionIndex": 2}
//	{"type": "Challenge", "action": "Finish", "result": {...}}
func Parse(data []byte) (Command, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed json", ErrInvalidData)
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, fmt.Errorf("%w: command must be an object", ErrInvalidData)
	}

	typ := doc.Get("type")
	if !typ.Exists() {
		return nil, fmt.Errorf("%w: type", ErrMissingData)
	}
	action := doc.Get("action")
	if !action.Exists() {
		return nil, fmt.Errorf("%w: action", ErrMissingData)
	}
	if typ.Type != gjson.String || action.Type != gjson.String {
		return nil, fmt.Errorf("%w: type and action must be strings", ErrInvalidData)
	}

	switch Type(typ.Str) {
	case TypeGame:
		switch a := GameAction(action.Str); a {
		case NextChallengeAction, PreviousChallengeAction:
			return GameCommand{Action: a}, nil
		default:
			return nil, fmt.Errorf("%w: %s", ErrUnknownAction, action.Str)
		}
	case TypeChallenge:
		return parseChallenge(doc, ChallengeAction(action.Str))
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommandType, typ.Str)
	}
}

func parseChallenge(doc gjson.Result, action ChallengeAction) (Command, error) {
	switch action {
	case NextTaskAction, PreviousTaskAction:
		return ChallengeCommand{Action: action}, nil

	case SolveOptionAction:
		idx := doc.Get("optionIndex")
		if !idx.Exists() {
			return nil, fmt.Errorf("%w: optionIndex", ErrMissingData)
		}
		if idx.Type != gjson.Number || idx.Num != math.Trunc(idx.Num) {
			return nil, fmt.Errorf("%w: optionIndex must be an integer", ErrInvalidData)
		}
		return SolveOption(int(idx.Int())), nil

	case FinishAction:
		cmd := ChallengeCommand{Action: FinishAction}
		if id := doc.Get("configId"); id.Exists() {
			if id.Type != gjson.String {
				return nil, fmt.Errorf("%w: configId must be a string", ErrInvalidData)
			}
			cmd.ConfigID = id.Str
		}
		res := doc.Get("result")
		if !res.Exists() || res.Type == gjson.Null {
			return cmd, nil
		}
		if !res.IsObject() {
			return nil, fmt.Errorf("%w: result must be an object", ErrInvalidData)
		}
		var r challenge.Result
		if err := json.Unmarshal([]byte(res.Raw), &r); err != nil {
			return nil, fmt.Errorf("%w: result: %v", ErrInvalidData, err)
		}
		cmd.Result = &r
		return cmd, nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownAction, action)
	}
}

// Marshal encodes a command in its JSON wire form.
func Marshal(c Command) ([]byte, error) {
	var (
		out []byte
		err error
	)
	switch c := c.(type) {
	case GameCommand:
		out, err = header(TypeGame, string(c.Action))
	case ChallengeCommand:
		out, err = header(TypeChallenge, string(c.Action))
		if err != nil {
			break
		}
		switch c.Action {
		case SolveOptionAction:
			out, err = sjson.SetBytes(out, "optionIndex", c.OptionIndex)
		case FinishAction:
			if c.ConfigID != "" {
				out, err = sjson.SetBytes(out, "configId", c.ConfigID)
				if err != nil {
					break
				}
			}
			if c.Result != nil {
				var raw []byte
				if raw, err = json.Marshal(c.Result); err == nil {
					out, err = sjson.SetRawBytes(out, "result", raw)
				}
			}
		}
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownCommandType, c)
	}
	if err != nil {
		return nil, fmt.Errorf("marshal command: %w", err)
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
