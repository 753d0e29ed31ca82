package challenge

import (
	"errors"
	"fmt"
)

// ErrChallengeTypeNotFound is returned when a config references unknown content.
var ErrChallengeTypeNotFound = errors.New("challenge type not found")

// Factory creates challenges from loaded content.
type Factory struct {
	Challenges []Type `json:"challenges" yaml:"challenges"`
}

// NewFactory creates a factory over the given content.
func NewFactory(types ...Type) Factory {
	return Factory{Challenges: types}
}

// Lookup returns the content with the given id.
func (f Factory) Lookup(id string) (Type, bool) {
	for _, t := range f.Challenges {
		if t.ID() == id {
			return t, true
		}
	}
	return Type{}, false
}

// Create instantiates the challenge referenced by cfg with its task pattern
// applied. The factory's content is never modified.
func (f Factory) Create(cfg Config) (Challenge, error) {
	t, ok := f.Lookup(cfg.Challenge)
	if !ok {
		return Challenge{}, fmt.Errorf("%w: %q", ErrChallengeTypeNotFound, cfg.Challenge)
	}
	return New(t.OfTasks(cfg.Tasks), cfg.Clone()), nil
}

// Clone returns a deep copy of f.
func (f Factory) Clone() Factory {
	if f.Challenges == nil {
		return Factory{}
	}
	out := Factory{Challenges: make([]Type, len(f.Challenges))}
	for i, t := range f.Challenges {
		out.Challenges[i] = t.Clone()
	}
	return out
}
