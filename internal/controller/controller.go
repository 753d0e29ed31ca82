package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/abhisek/konnektoren/internal/bus"
	"github.com/abhisek/konnektoren/internal/command"
	"github.com/abhisek/konnektoren/internal/event"
	"github.com/abhisek/konnektoren/internal/game"
)

var (
	// ErrNoSavedState is returned by a Persistence that has nothing stored.
	ErrNoSavedState = errors.New("no saved game state")

	// ErrAlreadyInitialized is returned when Init or Register is called on
	// a controller that was already initialized.
	ErrAlreadyInitialized = errors.New("controller already initialized")
)

// Persistence saves and restores the whole game state.
type Persistence interface {
	SaveGameState(ctx context.Context, s *game.State) error
	LoadGameState(ctx context.Context) (*game.State, error)
}

// CommandBus carries commands by command category.
type CommandBus = bus.Bus[command.Type, command.Command]

// EventBus carries events by event category.
type EventBus = bus.Bus[event.Type, event.Event]

// Controller is the view of the game runtime that plugins and bindings get.
type Controller interface {
	// WithState runs fn while holding the state lock. fn must not call back
	// into the controller.
	WithState(fn func(s *game.State))
	// Snapshot returns a deep copy of the current state.
	Snapshot() *game.State

	CommandBus() *CommandBus
	EventBus() *EventBus

	// PublishCommand hands cmd to the command bus. Failures are logged and
	// never reach the caller.
	// The events it causes are published once every command handler,
	// plugins included, has run.
	PublishCommand(cmd command.Command)
	PublishEvent(e event.Event)
	// HandleCommand executes cmd directly and returns its error. Plugins
	// subscribed to the command bus do not see it.
	HandleCommand(cmd command.Command) error

	SaveGameState(ctx context.Context) error
	LoadGameState(ctx context.Context) error

	Logger() *zerolog.Logger
	SessionID() string
}

// Plugin is a first-party extension that subscribes to the controller's
// buses in Load.
type Plugin interface {
	Name() string
	Init() error
	Load(c Controller) error
	Unload(c Controller) error
}

// GameController owns the game state, both buses and the plugins.
type GameController struct {
	mu    sync.Mutex
	state *game.State

	commands *CommandBus
	events   *EventBus

	pmu         sync.Mutex
	plugins     []Plugin
	initialized bool

	// Events caused by bus-published commands are held in pending until
	// every PublishCommand in flight has returned.
	dmu     sync.Mutex
	depth   int
	pending []event.Event

	persistence Persistence
	logger      zerolog.Logger
	sessionID   string
}

// Option configures a GameController.
type Option func(*GameController)

// WithLogger sets the controller logger. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(c *GameController) { c.logger = l }
}

// WithPlugins registers plugins in the given order.
func WithPlugins(plugins ...Plugin) Option {
	return func(c *GameController) { c.plugins = append(c.plugins, plugins...) }
}

// WithSessionID overrides the generated session id.
func WithSessionID(id string) Option {
	return func(c *GameController) { c.sessionID = id }
}

// WithState starts the controller from an existing state instead of a fresh
// one.
func WithState(s *game.State) Option {
	return func(c *GameController) { c.state = s }
}

// New creates a controller over g. Subscriptions are wired by Init.
// persistence may be nil, in which case saves are no-ops.
func New(g *game.Game, persistence Persistence, opts ...Option) *GameController {
	c := &GameController{
		persistence: persistence,
		logger:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.state == nil {
		c.state = game.NewState(g)
	}
	if c.sessionID == "" {
		c.sessionID = uuid.NewString()
	}
	c.logger = c.logger.With().Str("session", c.sessionID).Logger()
	c.commands = bus.New[command.Type, command.Command](c.logger)
	c.events = bus.New[event.Type, event.Event](c.logger)
	return c
}

// Register adds a plugin before Init.
func (c *GameController) Register(p Plugin) error {
	c.pmu.Lock()
	defer c.pmu.Unlock()
	if c.initialized {
		return ErrAlreadyInitialized
	}
	c.plugins = append(c.plugins, p)
	return nil
}

// Init subscribes the command executor to both command categories, then
// initializes and loads every plugin in registration order.
func (c *GameController) Init() error {
	c.pmu.Lock()
	if c.initialized {
		c.pmu.Unlock()
		return ErrAlreadyInitialized
	}
	c.initialized = true
	plugins := append([]Plugin(nil), c.plugins...)
	c.pmu.Unlock()

	c.commands.Subscribe(command.TypeGame, c.execute)
	c.commands.Subscribe(command.TypeChallenge, c.execute)

	for _, p := range plugins {
		if err := p.Init(); err != nil {
			return fmt.Errorf("init plugin %s: %w", p.Name(), err)
		}
		if err := p.Load(c); err != nil {
			return fmt.Errorf("load plugin %s: %w", p.Name(), err)
		}
		c.logger.Debug().Str("plugin", p.Name()).Msg("plugin loaded")
	}

	c.events.Publish(event.GameEvent{Action: event.GameStarted})
	return nil
}

// Unload unloads every plugin. All plugins are visited even if one fails.
func (c *GameController) Unload() error {
	c.pmu.Lock()
	plugins := append([]Plugin(nil), c.plugins...)
	c.pmu.Unlock()

	var errs []error
	for _, p := range plugins {
		if err := p.Unload(c); err != nil {
			errs = append(errs, fmt.Errorf("unload plugin %s: %w", p.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// Plugins returns the registered plugins.
func (c *GameController) Plugins() []Plugin {
	c.pmu.Lock()
	defer c.pmu.Unlock()
	return append([]Plugin(nil), c.plugins...)
}

func (c *GameController) WithState(fn func(s *game.State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(c.state)
}

func (c *GameController) Snapshot() *game.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

func (c *GameController) CommandBus() *CommandBus { return c.commands }

func (c *GameController) EventBus() *EventBus { return c.events }

func (c *GameController) Logger() *zerolog.Logger { return &c.logger }

func (c *GameController) SessionID() string { return c.sessionID }

func (c *GameController) PublishCommand(cmd command.Command) {
	c.dmu.Lock()
	c.depth++
	c.dmu.Unlock()

	c.commands.Publish(cmd)

	c.dmu.Lock()
	c.depth--
	var events []event.Event
	if c.depth == 0 {
		events, c.pending = c.pending, nil
	}
	c.dmu.Unlock()

	for _, e := range events {
		c.events.Publish(e)
	}
}

func (c *GameController) PublishEvent(e event.Event) {
	c.events.Publish(e)
}

func (c *GameController) HandleCommand(cmd command.Command) error {
	events, err := c.apply(cmd)
	if err != nil {
		return err
	}
	for _, e := range events {
		c.events.Publish(e)
	}
	return nil
}

// Replay publishes cmds in order, as if they had been issued one after the
// other. Plugins observe every command.
func (c *GameController) Replay(cmds []command.Command) {
	for _, cmd := range cmds {
		c.PublishCommand(cmd)
	}
}

// execute is the bus handler for commands. It has no way to report errors
// to the publisher, so they are logged. Inside PublishCommand its events are
// deferred to pending.
func (c *GameController) execute(cmd command.Command) {
	events, err := c.apply(cmd)
	if err != nil {
		c.logger.Warn().Err(err).Str("command", cmd.String()).Msg("command failed")
		return
	}

	c.dmu.Lock()
	if c.depth > 0 {
		c.pending = append(c.pending, events...)
		events = nil
	}
	c.dmu.Unlock()

	for _, e := range events {
		c.events.Publish(e)
	}
}

// apply executes cmd under the state lock and returns the events it caused.
func (c *GameController) apply(cmd command.Command) ([]event.Event, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	task := c.state.CurrentTaskIndex
	answered := c.state.Challenge.Result.Len()
	if err := cmd.Execute(c.state); err != nil {
		return nil, err
	}
	return derivedEvents(cmd, c.state, task, answered), nil
}

func derivedEvents(cmd command.Command, s *game.State, task, answered int) []event.Event {
	switch cmd := cmd.(type) {
	case command.GameCommand:
		return []event.Event{event.Started()}
	case command.ChallengeCommand:
		switch cmd.Action {
		case command.SolveOptionAction:
			return []event.Event{event.Solved(task, s.Challenge.TaskCorrect(answered))}
		case command.FinishAction:
			if !cmd.AppliesTo(s) {
				return nil
			}
			return []event.Event{event.Completed()}
		}
	}
	return nil
}

// SaveGameState copies the state under the lock and persists the copy after
// the lock is released.
func (c *GameController) SaveGameState(ctx context.Context) error {
	if c.persistence == nil {
		return nil
	}
	if err := c.persistence.SaveGameState(ctx, c.Snapshot()); err != nil {
		return fmt.Errorf("save game state: %w", err)
	}
	return nil
}

// LoadGameState replaces the current state with the persisted one.
func (c *GameController) LoadGameState(ctx context.Context) error {
	if c.persistence == nil {
		return ErrNoSavedState
	}
	s, err := c.persistence.LoadGameState(ctx)
	if err != nil {
		return fmt.Errorf("load game state: %w", err)
	}
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()

	c.events.Publish(event.GameEvent{Action: event.GameStarted})
	return nil
}
