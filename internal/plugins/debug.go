package plugins

import (
	"context"

	"github.com/abhisek/konnektoren/internal/command"
	"github.com/abhisek/konnektoren/internal/controller"
	"github.com/abhisek/konnektoren/internal/event"
)

// DebugPlugin logs every command and event at debug level.
type DebugPlugin struct{}

func NewDebugPlugin() *DebugPlugin { return &DebugPlugin{} }

func (p *DebugPlugin) Name() string { return "debug" }

func (p *DebugPlugin) Init() error { return nil }

func (p *DebugPlugin) Load(c controller.Controller) error {
	logger := c.Logger().With().Str("plugin", p.Name()).Logger()
	logCommand := func(cmd command.Command) {
		logger.Debug().Str("type", string(cmd.Type())).Str("command", cmd.String()).Msg("command")
	}
	c.CommandBus().Subscribe(command.TypeGame, logCommand)
	c.CommandBus().Subscribe(command.TypeChallenge, logCommand)

	logEvent := func(e event.Event) {
		logger.Debug().Str("type", string(e.Type())).Str("event", e.String()).Msg("event")
	}
	c.EventBus().Subscribe(event.TypeGame, logEvent)
	c.EventBus().Subscribe(event.TypeChallenge, logEvent)
	return nil
}

func (p *DebugPlugin) Unload(c controller.Controller) error { return nil }

// CommandRecorder stores published commands.
type CommandRecorder interface {
	Append(ctx context.Context, sessionID string, cmd command.Command) error
}

// CommandLogPlugin appends every published command to a recorder so a
// session can be replayed later.
type CommandLogPlugin struct {
	recorder CommandRecorder
}

func NewCommandLogPlugin(r CommandRecorder) *CommandLogPlugin {
	return &CommandLogPlugin{recorder: r}
}

func (p *CommandLogPlugin) Name() string { return "command-log" }

func (p *CommandLogPlugin) Init() error {
	if p.recorder == nil {
		return errNoRecorder
	}
	return nil
}

func (p *CommandLogPlugin) Load(c controller.Controller) error {
	record := func(cmd command.Command) {
		if err := p.recorder.Append(context.Background(), c.SessionID(), cmd); err != nil {
			c.Logger().Error().Err(err).Str("command", cmd.String()).Msg("record command")
		}
	}
	c.CommandBus().Subscribe(command.TypeGame, record)
	c.CommandBus().Subscribe(command.TypeChallenge, record)
	return nil
}

func (p *CommandLogPlugin) Unload(c controller.Controller) error { return nil }
