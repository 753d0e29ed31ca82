package challenge

import (
	"errors"
	"fmt"
	"slices"
)

// ErrInputMismatch is returned when an answer does not fit the challenge kind.
var ErrInputMismatch = errors.New("input does not match challenge kind")

// ContextualChoiceAnswer holds the chosen option index for every gap of one
// contextual item.
type ContextualChoiceAnswer struct {
	IDs []int `json:"ids" yaml:"ids"`
}

// Result collects the player's answers. Only the slice matching Kind is used;
// informative and custom results carry no answers.
type Result struct {
	Kind             Kind                     `json:"kind"`
	MultipleChoice   []MultipleChoiceOption   `json:"multipleChoice,omitempty"`
	SortTable        []SortTableRow           `json:"sortTable,omitempty"`
	ContextualChoice []ContextualChoiceAnswer `json:"contextualChoice,omitempty"`

	// Score is an externally computed performance (0-100) for custom challenges.
	Score *float64 `json:"score,omitempty"`
}

// NewResult returns an empty result for the given kind.
func NewResult(kind Kind) Result {
	return Result{Kind: kind}
}

// Len returns the number of answered tasks.
func (r Result) Len() int {
	switch r.Kind {
	case KindMultipleChoice:
		return len(r.MultipleChoice)
	case KindSortTable:
		return len(r.SortTable)
	case KindContextualChoice:
		return len(r.ContextualChoice)
	default:
		return 0
	}
}

// Input is a single answer submitted for the current task.
type Input struct {
	Kind             Kind
	MultipleChoice   *MultipleChoiceOption
	SortTable        *SortTableRow
	ContextualChoice *ContextualChoiceAnswer
}

// MultipleChoiceInput wraps a chosen option.
func MultipleChoiceInput(opt MultipleChoiceOption) Input {
	return Input{Kind: KindMultipleChoice, MultipleChoice: &opt}
}

// SortTableInput wraps a sorted row.
func SortTableInput(row SortTableRow) Input {
	return Input{Kind: KindSortTable, SortTable: &row}
}

// ContextualChoiceInput wraps the choices made for one item.
func ContextualChoiceInput(ans ContextualChoiceAnswer) Input {
	return Input{Kind: KindContextualChoice, ContextualChoice: &ans}
}

// Push appends in to the result. The result is left untouched on error.
func (r *Result) Push(in Input) error {
	if in.Kind != r.Kind {
		return fmt.Errorf("%w: got %s, want %s", ErrInputMismatch, in.Kind, r.Kind)
	}
	switch in.Kind {
	case KindMultipleChoice:
		if in.MultipleChoice == nil {
			return fmt.Errorf("%w: missing option", ErrInputMismatch)
		}
		r.MultipleChoice = append(r.MultipleChoice, *in.MultipleChoice)
	case KindSortTable:
		if in.SortTable == nil {
			return fmt.Errorf("%w: missing row", ErrInputMismatch)
		}
		row := SortTableRow{ID: in.SortTable.ID, Values: slices.Clone(in.SortTable.Values)}
		r.SortTable = append(r.SortTable, row)
	case KindContextualChoice:
		if in.ContextualChoice == nil {
			return fmt.Errorf("%w: missing answer", ErrInputMismatch)
		}
		ans := ContextualChoiceAnswer{IDs: slices.Clone(in.ContextualChoice.IDs)}
		r.ContextualChoice = append(r.ContextualChoice, ans)
	default:
		return fmt.Errorf("%w: %s challenges take no answers", ErrInputMismatch, in.Kind)
	}
	return nil
}

// Clone returns a deep copy of r.
func (r Result) Clone() Result {
	out := Result{Kind: r.Kind}
	out.MultipleChoice = slices.Clone(r.MultipleChoice)
	if r.SortTable != nil {
		out.SortTable = make([]SortTableRow, len(r.SortTable))
		for i, row := range r.SortTable {
			out.SortTable[i] = SortTableRow{ID: row.ID, Values: slices.Clone(row.Values)}
		}
	}
	if r.ContextualChoice != nil {
		out.ContextualChoice = make([]ContextualChoiceAnswer, len(r.ContextualChoice))
		for i, ans := range r.ContextualChoice {
			out.ContextualChoice[i] = ContextualChoiceAnswer{IDs: slices.Clone(ans.IDs)}
		}
	}
	if r.Score != nil {
		s := *r.Score
		out.Score = &s
	}
	return out
}
