package controller

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/konnektoren/internal/command"
	"github.com/abhisek/konnektoren/internal/event"
	"github.com/abhisek/konnektoren/internal/game"
)

type recordingPlugin struct {
	name      string
	log       *[]string
	initErr   error
	unloadErr error
}

func (p *recordingPlugin) Name() string { return p.name }

func (p *recordingPlugin) Init() error {
	*p.log = append(*p.log, p.name+".init")
	return p.initErr
}

func (p *recordingPlugin) Load(c Controller) error {
	*p.log = append(*p.log, p.name+".load")
	c.CommandBus().Subscribe(command.TypeGame, func(cmd command.Command) {
		*p.log = append(*p.log, p.name+":"+cmd.String())
	})
	return nil
}

func (p *recordingPlugin) Unload(Controller) error {
	*p.log = append(*p.log, p.name+".unload")
	return p.unloadErr
}

type memoryPersistence struct {
	mu    sync.Mutex
	state *game.State
}

func (m *memoryPersistence) SaveGameState(_ context.Context, s *game.State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = s.Clone()
	return nil
}

func (m *memoryPersistence) LoadGameState(context.Context) (*game.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == nil {
		return nil, ErrNoSavedState
	}
	return m.state.Clone(), nil
}

func TestNewDoesNotSubscribe(t *testing.T) {
	c := New(game.Default(), nil)
	assert.Equal(t, 0, c.CommandBus().Len(command.TypeGame))
	assert.Equal(t, 0, c.CommandBus().Len(command.TypeChallenge))
	assert.NotEmpty(t, c.SessionID())

	// Without Init nothing executes.
	c.PublishCommand(command.NextChallenge())
	assert.Equal(t, 0, c.Snapshot().CurrentChallengeIndex)
}

func TestInitWiresExecutorThenPlugins(t *testing.T) {
	var log []string
	c := New(game.Default(), nil, WithPlugins(
		&recordingPlugin{name: "a", log: &log},
		&recordingPlugin{name: "b", log: &log},
	))
	require.NoError(t, c.Init())
	assert.Equal(t, []string{"a.init", "a.load", "b.init", "b.load"}, log)

	log = nil
	c.PublishCommand(command.NextChallenge())
	assert.Equal(t, 1, c.Snapshot().CurrentChallengeIndex)
	assert.Equal(t, []string{"a:Game.NextChallenge", "b:Game.NextChallenge"}, log)

	assert.ErrorIs(t, c.Init(), ErrAlreadyInitialized)
	assert.ErrorIs(t, c.Register(&recordingPlugin{name: "late", log: &log}), ErrAlreadyInitialized)
}

func TestInitFailsOnPluginError(t *testing.T) {
	var log []string
	boom := errors.New("boom")
	c := New(game.Default(), nil, WithPlugins(&recordingPlugin{name: "bad", log: &log, initErr: boom}))
	err := c.Init()
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"bad.init"}, log)
}

func TestUnloadVisitsAllPlugins(t *testing.T) {
	var log []string
	boom := errors.New("boom")
	c := New(game.Default(), nil)
	require.NoError(t, c.Register(&recordingPlugin{name: "a", log: &log, unloadErr: boom}))
	require.NoError(t, c.Register(&recordingPlugin{name: "b", log: &log}))
	require.NoError(t, c.Init())

	err := c.Unload()
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, log, "a.unload")
	assert.Contains(t, log, "b.unload")
	assert.Len(t, c.Plugins(), 2)
}

func TestPublishedFailuresAreLogged(t *testing.T) {
	var buf bytes.Buffer
	c := New(game.Default(), nil, WithLogger(zerolog.New(&buf)))
	require.NoError(t, c.Init())

	before := c.Snapshot()
	assert.NotPanics(t, func() { c.PublishCommand(command.PreviousChallenge()) })
	assert.Equal(t, before.CurrentChallengeIndex, c.Snapshot().CurrentChallengeIndex)
	assert.Contains(t, buf.String(), "command failed")
	assert.Contains(t, buf.String(), "no previous challenges")
}

func TestHandleCommandReturnsErrors(t *testing.T) {
	c := New(game.Default(), nil)

	err := c.HandleCommand(command.PreviousTask())
	assert.ErrorIs(t, err, command.ErrNoPreviousTasks)

	require.NoError(t, c.HandleCommand(command.NextTask()))
	assert.Equal(t, 1, c.Snapshot().CurrentTaskIndex)
}

func TestEventsFollowSuccessfulCommands(t *testing.T) {
	c := New(game.Default(), nil)

	var got []event.Event
	c.EventBus().Subscribe(event.TypeChallenge, func(e event.Event) { got = append(got, e) })
	c.EventBus().Subscribe(event.TypeGame, func(e event.Event) { got = append(got, e) })
	require.NoError(t, c.Init())

	c.PublishCommand(command.SolveOption(0))  // "und" is a Konjunktion
	c.PublishCommand(command.SolveOption(0))  // "weil" is not
	c.PublishCommand(command.NextTask())      // no event
	c.PublishCommand(command.PreviousTask())  // no event
	c.PublishCommand(command.NextChallenge()) // started
	c.PublishCommand(command.Finish(nil))     // completed
	c.PublishCommand(command.PreviousTask())  // fails, no event

	assert.Equal(t, []event.Event{
		event.GameEvent{Action: event.GameStarted},
		event.Solved(0, true),
		event.Solved(1, false),
		event.Started(),
		event.Completed(),
	}, got)
}

func TestStaleFinishPublishesNoEvent(t *testing.T) {
	c := New(game.Default(), nil)
	var got []event.Event
	c.EventBus().Subscribe(event.TypeChallenge, func(e event.Event) { got = append(got, e) })
	require.NoError(t, c.Init())

	c.PublishCommand(command.FinishFor("konnektoren-3", nil))
	require.NoError(t, c.HandleCommand(command.FinishFor("konnektoren-3", nil)))
	assert.Empty(t, got)

	c.PublishCommand(command.FinishFor("konnektoren-1", nil))
	assert.Equal(t, []event.Event{event.Completed()}, got)
}

// bonusPlugin adds XP for every Finish and chains a NextChallenge, the way
// a plugin reacting to the command bus would.
type bonusPlugin struct{ chain bool }

func (p *bonusPlugin) Name() string { return "bonus" }

func (p *bonusPlugin) Init() error { return nil }

func (p *bonusPlugin) Load(c Controller) error {
	c.CommandBus().Subscribe(command.TypeChallenge, func(cmd command.Command) {
		cc := cmd.(command.ChallengeCommand)
		if cc.Action != command.FinishAction {
			return
		}
		c.WithState(func(s *game.State) { s.Game.XP += 10 })
		if p.chain {
			c.PublishCommand(command.NextChallenge())
		}
	})
	return nil
}

func (p *bonusPlugin) Unload(Controller) error { return nil }

func TestEventsSeePluginChanges(t *testing.T) {
	c := New(game.Default(), nil, WithPlugins(&bonusPlugin{}))
	xpAtCompleted := -1
	c.EventBus().Subscribe(event.TypeChallenge, func(e event.Event) {
		if e == event.Event(event.Completed()) {
			xpAtCompleted = c.Snapshot().Game.XP
		}
	})
	require.NoError(t, c.Init())

	c.PublishCommand(command.Finish(nil))
	assert.Equal(t, 10, xpAtCompleted)
}

func TestNestedPublishDefersEvents(t *testing.T) {
	c := New(game.Default(), nil, WithPlugins(&bonusPlugin{chain: true}))
	var got []event.Event
	c.EventBus().Subscribe(event.TypeChallenge, func(e event.Event) { got = append(got, e) })
	require.NoError(t, c.Init())

	c.PublishCommand(command.Finish(nil))

	s := c.Snapshot()
	assert.Equal(t, 10, s.Game.XP)
	assert.Equal(t, 1, s.CurrentChallengeIndex)
	assert.Equal(t, []event.Event{event.Completed(), event.Started()}, got)
}

func TestSnapshotIsIsolated(t *testing.T) {
	c := New(game.Default(), nil)
	snap := c.Snapshot()
	snap.Game.XP = 100
	snap.CurrentTaskIndex = 3
	assert.Equal(t, 0, c.Snapshot().Game.XP)
	assert.Equal(t, 0, c.Snapshot().CurrentTaskIndex)
}

func TestSaveAndLoad(t *testing.T) {
	ctx := context.Background()
	p := &memoryPersistence{}
	c := New(game.Default(), p)

	assert.ErrorIs(t, c.LoadGameState(ctx), ErrNoSavedState)

	require.NoError(t, c.HandleCommand(command.NextChallenge()))
	c.WithState(func(s *game.State) { s.Game.XP = 5 })
	require.NoError(t, c.SaveGameState(ctx))

	other := New(game.Default(), p)
	require.NoError(t, other.LoadGameState(ctx))
	snap := other.Snapshot()
	assert.Equal(t, 1, snap.CurrentChallengeIndex)
	assert.Equal(t, 5, snap.Game.XP)

	noop := New(game.Default(), nil)
	assert.NoError(t, noop.SaveGameState(ctx))
	assert.ErrorIs(t, noop.LoadGameState(ctx), ErrNoSavedState)
}

func TestConcurrentPublishIsSerialized(t *testing.T) {
	c := New(game.Default(), nil)
	require.NoError(t, c.Init())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.PublishCommand(command.NextChallenge())
		}()
	}
	wg.Wait()

	// Exactly four transitions fit into the five-challenge path.
	assert.Equal(t, 4, c.Snapshot().CurrentChallengeIndex)
}

func TestWithStateAndSessionOptions(t *testing.T) {
	s := game.DefaultState()
	s.CurrentTaskIndex = 2
	c := New(nil, nil, WithState(s), WithSessionID("session-1"))
	assert.Equal(t, 2, c.Snapshot().CurrentTaskIndex)
	assert.Equal(t, "session-1", c.SessionID())
}

func TestReplayPublishesInOrder(t *testing.T) {
	var log []string
	c := New(game.Default(), nil, WithPlugins(&recordingPlugin{name: "rec", log: &log}))
	require.NoError(t, c.Init())

	c.Replay([]command.Command{
		command.NextChallenge(),
		command.SolveOption(0),
		command.NextChallenge(),
		command.PreviousChallenge(),
	})

	s := c.Snapshot()
	assert.Equal(t, 1, s.CurrentChallengeIndex)
	assert.Equal(t, 0, s.CurrentTaskIndex)
	assert.Equal(t, []string{
		"rec.init", "rec.load",
		"rec:Game.NextChallenge", "rec:Game.NextChallenge", "rec:Game.PreviousChallenge",
	}, log)
}
