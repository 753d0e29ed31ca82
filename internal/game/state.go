package game

import (
	"github.com/abhisek/konnektoren/internal/challenge"
)

// State is the mutable progress cursor over a Game. It is only changed by
// command execution and is persisted wholesale.
type State struct {
	Game      *Game               `json:"game"`
	Challenge challenge.Challenge `json:"challenge"`

	CurrentGamePathIndex  int `json:"currentGamePathIndex"`
	CurrentChallengeIndex int `json:"currentChallengeIndex"`
	CurrentTaskIndex      int `json:"currentTaskIndex"`
}

// NewState creates a state positioned at the first challenge of the first
// path. The first challenge is instantiated eagerly; if that fails the
// placeholder challenge is used.
func NewState(g *Game) *State {
	s := &State{Game: g}
	if cfg, ok := s.ConfigAt(0); ok {
		s.Challenge = s.Instantiate(cfg)
	} else {
		s.Challenge = challenge.Default()
	}
	return s
}

// DefaultState returns a fresh state over the built-in game.
func DefaultState() *State {
	return NewState(Default())
}

// CurrentPath returns the active game path.
func (s *State) CurrentPath() Path {
	if s.Game == nil || s.CurrentGamePathIndex < 0 || s.CurrentGamePathIndex >= len(s.Game.Paths) {
		return Path{}
	}
	return s.Game.Paths[s.CurrentGamePathIndex]
}

// ConfigAt returns the config at index i of the active path.
func (s *State) ConfigAt(i int) (challenge.Config, bool) {
	p := s.CurrentPath()
	if i < 0 || i >= len(p.Challenges) {
		return challenge.Config{}, false
	}
	return p.Challenges[i], true
}

// CurrentConfig returns the config of the active challenge slot.
func (s *State) CurrentConfig() (challenge.Config, bool) {
	return s.ConfigAt(s.CurrentChallengeIndex)
}

// Instantiate creates a challenge for cfg, falling back to the placeholder
// challenge when the content cannot be found.
func (s *State) Instantiate(cfg challenge.Config) challenge.Challenge {
	if s.Game == nil {
		return challenge.Default()
	}
	c, err := s.Game.CreateChallenge(cfg.ID)
	if err != nil {
		return challenge.Default()
	}
	return c
}

// TasksLen returns the number of tasks in the active challenge.
func (s *State) TasksLen() int {
	return s.Challenge.Type.Len()
}

// Clone returns a deep copy of s.
func (s *State) Clone() *State {
	out := *s
	if s.Game != nil {
		out.Game = s.Game.Clone()
	}
	out.Challenge = s.Challenge.Clone()
	return &out
}
