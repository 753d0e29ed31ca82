package challenge

import (
	"fmt"
	"slices"
)

// Challenge is a playable instance: content, the config it was created from,
// and the answers collected so far.
type Challenge struct {
	Type   Type   `json:"type"`
	Config Config `json:"config"`
	Result Result `json:"result"`
}

// New creates a challenge with an empty result for the content's kind.
func New(t Type, cfg Config) Challenge {
	return Challenge{
		Type:   t,
		Config: cfg,
		Result: NewResult(t.Kind),
	}
}

// Default returns the placeholder challenge used when a config cannot be
// instantiated.
func Default() Challenge {
	return New(Type{
		Kind: KindInformative,
		Informative: &Informative{
			ID:   "unavailable",
			Name: "Unavailable",
			Text: []InformativeText{{Language: "en", Text: "This challenge could not be loaded."}},
		},
	}, Config{})
}

// Solve records an answer for the next task. The result is unchanged on error.
func (c *Challenge) Solve(in Input) error {
	if in.Kind != c.Type.Kind {
		return fmt.Errorf("%w: challenge %q is %s", ErrInputMismatch, c.Type.ID(), c.Type.Kind)
	}
	return c.Result.Push(in)
}

// Performance returns the score of the current result in percent.
func (c Challenge) Performance() float64 {
	return Performance(c.Type, c.Result)
}

// TaskCorrect reports whether the answer recorded at index i is correct.
// Informative and custom tasks have no wrong answers.
func (c Challenge) TaskCorrect(i int) bool {
	return taskCorrect(c.Type, c.Result, i)
}

// Clone returns a deep copy of c.
func (c Challenge) Clone() Challenge {
	return Challenge{
		Type:   c.Type.Clone(),
		Config: c.Config.Clone(),
		Result: c.Result.Clone(),
	}
}

// Performance scores result against content in percent (0-100).
func Performance(t Type, r Result) float64 {
	total := t.Len()
	switch t.Kind {
	case KindInformative:
		return 100
	case KindCustom:
		if r.Score != nil {
			return min(max(*r.Score, 0), 100)
		}
		return 100
	}
	if total == 0 {
		return 0
	}
	correct := 0
	for i := 0; i < total; i++ {
		if taskCorrect(t, r, i) {
			correct++
		}
	}
	return float64(correct) / float64(total) * 100
}

func taskCorrect(t Type, r Result, i int) bool {
	if i < 0 {
		return false
	}
	switch t.Kind {
	case KindMultipleChoice:
		mc := t.MultipleChoice
		if mc == nil || i >= len(mc.Questions) || i >= len(r.MultipleChoice) {
			return false
		}
		return r.MultipleChoice[i].ID == mc.Questions[i].Option
	case KindSortTable:
		st := t.SortTable
		if st == nil || i >= len(r.SortTable) {
			return false
		}
		answer := r.SortTable[i]
		for _, row := range st.Rows {
			if row.ID == answer.ID {
				return slices.Equal(row.Values, answer.Values)
			}
		}
		return false
	case KindContextualChoice:
		cc := t.ContextualChoice
		if cc == nil || i >= len(cc.Items) || i >= len(r.ContextualChoice) {
			return false
		}
		item := cc.Items[i]
		ids := r.ContextualChoice[i].IDs
		if len(ids) != len(item.Choices) {
			return false
		}
		for j, choice := range item.Choices {
			id := ids[j]
			if id < 0 || id >= len(choice.Options) || choice.Options[id] != choice.Correct {
				return false
			}
		}
		return true
	case KindInformative, KindCustom:
		return true
	}
	return false
}
