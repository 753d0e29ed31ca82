// Package plugins holds the built-in controller plugins.
package plugins

import (
	"context"
	"errors"

	"github.com/abhisek/konnektoren/internal/challenge"
	"github.com/abhisek/konnektoren/internal/command"
	"github.com/abhisek/konnektoren/internal/controller"
	"github.com/abhisek/konnektoren/internal/game"
)

var errNoRecorder = errors.New("command log plugin needs a recorder")

// finishResult extracts the Finish command with a result, if cmd is one.
func finishResult(cmd command.Command) (command.ChallengeCommand, bool) {
	cc, ok := cmd.(command.ChallengeCommand)
	if !ok || cc.Action != command.FinishAction || cc.Result == nil {
		return command.ChallengeCommand{}, false
	}
	return cc, true
}

func save(c controller.Controller, plugin string) {
	if err := c.SaveGameState(context.Background()); err != nil {
		c.Logger().Error().Err(err).Str("plugin", plugin).Msg("save game state")
	}
}

// ChallengeFinishPlugin records finished challenges in the history.
type ChallengeFinishPlugin struct{}

func NewChallengeFinishPlugin() *ChallengeFinishPlugin { return &ChallengeFinishPlugin{} }

func (p *ChallengeFinishPlugin) Name() string { return "challenge-finish" }

func (p *ChallengeFinishPlugin) Init() error { return nil }

func (p *ChallengeFinishPlugin) Load(c controller.Controller) error {
	c.CommandBus().Subscribe(command.TypeChallenge, func(cmd command.Command) {
		finish, ok := finishResult(cmd)
		if !ok {
			return
		}
		recorded := false
		c.WithState(func(s *game.State) {
			if !finish.AppliesTo(s) {
				return
			}
			s.Challenge.Result = finish.Result.Clone()
			s.Game.History.Add(s.Challenge)
			recorded = true
		})
		if !recorded {
			c.Logger().Warn().Str("config", finish.ConfigID).Msg("ignoring finish for inactive challenge")
			return
		}
		save(c, p.Name())
	})
	return nil
}

func (p *ChallengeFinishPlugin) Unload(c controller.Controller) error { return nil }

// Experience converts a performance percentage into XP, one point per ten
// percent.
func Experience(performance float64) int {
	return int(performance / 10)
}

// GameXPPlugin awards experience points for finished challenges.
type GameXPPlugin struct{}

func NewGameXPPlugin() *GameXPPlugin { return &GameXPPlugin{} }

func (p *GameXPPlugin) Name() string { return "game-xp" }

func (p *GameXPPlugin) Init() error { return nil }

func (p *GameXPPlugin) Load(c controller.Controller) error {
	c.CommandBus().Subscribe(command.TypeChallenge, func(cmd command.Command) {
		finish, ok := finishResult(cmd)
		if !ok {
			return
		}
		xp := -1
		c.WithState(func(s *game.State) {
			if !finish.AppliesTo(s) {
				return
			}
			xp = Experience(challenge.Performance(s.Challenge.Type, *finish.Result))
			s.Game.XP += xp
		})
		if xp < 0 {
			return
		}
		c.Logger().Debug().Int("xp", xp).Msg("experience awarded")
		save(c, p.Name())
	})
	return nil
}

func (p *GameXPPlugin) Unload(c controller.Controller) error { return nil }
