package game

import (
	"errors"
	"fmt"

	"github.com/abhisek/konnektoren/internal/challenge"
)

// ErrChallengeConfigNotFound is returned when no path contains a config id.
var ErrChallengeConfigNotFound = errors.New("challenge config not found")

// Path is a named, ordered sequence of challenge configs.
type Path struct {
	ID         string             `json:"id" yaml:"id"`
	Name       string             `json:"name" yaml:"name"`
	Challenges []challenge.Config `json:"challenges" yaml:"challenges"`
}

// Len returns the number of challenges in the path.
func (p Path) Len() int {
	return len(p.Challenges)
}

// Config returns the config with the given id.
func (p Path) Config(id string) (challenge.Config, bool) {
	for _, c := range p.Challenges {
		if c.ID == id {
			return c, true
		}
	}
	return challenge.Config{}, false
}

// Completed reports whether every challenge of the path appears in history.
// An empty path is never completed.
func (p Path) Completed(h challenge.History) bool {
	if len(p.Challenges) == 0 {
		return false
	}
	done := h.CompletedIDs()
	for _, c := range p.Challenges {
		if !done[c.ID] {
			return false
		}
	}
	return true
}

func (p Path) clone() Path {
	out := Path{ID: p.ID, Name: p.Name}
	if p.Challenges != nil {
		out.Challenges = make([]challenge.Config, len(p.Challenges))
		for i, c := range p.Challenges {
			out.Challenges[i] = c.Clone()
		}
	}
	return out
}

// Game aggregates the paths, the content factory, and the player's progress.
type Game struct {
	Paths   []Path            `json:"paths"`
	Factory challenge.Factory `json:"factory"`
	History challenge.History `json:"history"`
	XP      int               `json:"xp"`
}

// New creates a game over the given paths and content.
func New(paths []Path, factory challenge.Factory) *Game {
	return &Game{Paths: paths, Factory: factory}
}

// Config finds a challenge config by id across all paths.
func (g *Game) Config(id string) (challenge.Config, bool) {
	for _, p := range g.Paths {
		if c, ok := p.Config(id); ok {
			return c, true
		}
	}
	return challenge.Config{}, false
}

// CreateChallenge instantiates the challenge configured under configID.
func (g *Game) CreateChallenge(configID string) (challenge.Challenge, error) {
	cfg, ok := g.Config(configID)
	if !ok {
		return challenge.Challenge{}, fmt.Errorf("%w: %q", ErrChallengeConfigNotFound, configID)
	}
	c, err := g.Factory.Create(cfg)
	if err != nil {
		return challenge.Challenge{}, fmt.Errorf("create challenge %q: %w", configID, err)
	}
	return c, nil
}

// CompletedPaths returns the number of paths whose challenges all appear
// in the history.
func (g *Game) CompletedPaths() int {
	n := 0
	for _, p := range g.Paths {
		if p.Completed(g.History) {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of g.
func (g *Game) Clone() *Game {
	out := &Game{
		Factory: g.Factory.Clone(),
		History: g.History.Clone(),
		XP:      g.XP,
	}
	if g.Paths != nil {
		out.Paths = make([]Path, len(g.Paths))
		for i, p := range g.Paths {
			out.Paths[i] = p.clone()
		}
	}
	return out
}
