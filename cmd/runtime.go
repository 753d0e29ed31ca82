package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/abhisek/konnektoren/internal/achievement"
	"github.com/abhisek/konnektoren/internal/command"
	"github.com/abhisek/konnektoren/internal/config"
	"github.com/abhisek/konnektoren/internal/controller"
	"github.com/abhisek/konnektoren/internal/game"
	"github.com/abhisek/konnektoren/internal/logging"
	"github.com/abhisek/konnektoren/internal/persistence"
	"github.com/abhisek/konnektoren/internal/plugins"
	"github.com/abhisek/konnektoren/internal/store"
)

// runtime bundles what every command needs: configuration, a logger, the
// controller over the persisted state and, for the sqlite backend, the open
// store with its command log.
type runtime struct {
	cfg       config.Config
	logger    zerolog.Logger
	game      *game.Game
	ctrl      *controller.GameController
	evaluator *achievement.Evaluator

	store      *store.Store
	commandLog *store.CommandLog
}

// loadConfig reads the environment and applies persistent flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	override := func(flag string, dst *string) {
		if v, _ := cmd.Flags().GetString(flag); v != "" {
			*dst = v
		}
	}
	override("db", &cfg.DB)
	override("backend", &cfg.Backend)
	override("log-level", &cfg.LogLevel)
	override("content", &cfg.Content)
	override("achievements", &cfg.Achievements)
	return cfg, cfg.Validate()
}

// loadGame returns the dataset from cfg.Content, or the built-in one.
func loadGame(cfg config.Config) (*game.Game, error) {
	if cfg.Content == "" {
		return game.Default(), nil
	}
	g, err := game.LoadFile(cfg.Content)
	if err != nil {
		return nil, fmt.Errorf("load content: %w", err)
	}
	return g, nil
}

func loadAchievements(cfg config.Config) (*achievement.Evaluator, error) {
	if cfg.Achievements == "" {
		return achievement.NewEvaluator(achievement.Defaults()), nil
	}
	defs, err := achievement.LoadFile(cfg.Achievements)
	if err != nil {
		return nil, fmt.Errorf("load achievements: %w", err)
	}
	return achievement.NewEvaluator(defs), nil
}

// openRuntime builds the controller for cmd, loads the saved state and
// initializes the plugins. Callers must Close the runtime.
func openRuntime(cmd *cobra.Command) (*runtime, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	rt := &runtime{
		cfg:    cfg,
		logger: logging.Stderr(cfg.LogLevel, cfg.LogFormat),
	}

	if rt.game, err = loadGame(cfg); err != nil {
		return nil, err
	}
	if rt.evaluator, err = loadAchievements(cfg); err != nil {
		return nil, err
	}

	var (
		backend  controller.Persistence
		snapshot *store.SnapshotRepo
	)
	switch cfg.Backend {
	case config.BackendSQLite:
		dbPath, err := resolveDBPath(cfg)
		if err != nil {
			return nil, fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		rt.store = st
		rt.commandLog = st.CommandLog()
		snapshot = st.SnapshotRepo()
		backend = snapshot
	case config.BackendFile:
		backend = persistence.NewFile(cfg.StateFile)
	default:
		backend = persistence.NewMemory()
	}

	opts := []controller.Option{
		controller.WithLogger(rt.logger),
		controller.WithPlugins(rt.plugins()...),
	}
	rt.ctrl = controller.New(rt.game.Clone(), backend, opts...)
	if snapshot != nil {
		snapshot.SessionID = rt.ctrl.SessionID()
	}

	if err := rt.ctrl.Init(); err != nil {
		rt.Close()
		return nil, fmt.Errorf("init controller: %w", err)
	}
	if err := rt.ctrl.LoadGameState(cmd.Context()); err != nil && !errors.Is(err, controller.ErrNoSavedState) {
		rt.Close()
		return nil, err
	}
	rt.logger.Debug().
		Str("backend", cfg.Backend).
		Str("session", rt.ctrl.SessionID()).
		Msg("runtime ready")
	return rt, nil
}

// plugins returns the plugin set for the configured backend.
func (rt *runtime) plugins() []controller.Plugin {
	ps := []controller.Plugin{
		plugins.NewChallengeFinishPlugin(),
		plugins.NewGameXPPlugin(),
		plugins.NewDebugPlugin(),
	}
	if rt.commandLog != nil {
		ps = append(ps, plugins.NewCommandLogPlugin(rt.commandLog))
	}
	return ps
}

// Close unloads the plugins and closes the store.
func (rt *runtime) Close() {
	if rt.ctrl != nil {
		if err := rt.ctrl.Unload(); err != nil {
			rt.logger.Warn().Err(err).Msg("unload plugins")
		}
	}
	if rt.store != nil {
		if err := rt.store.Close(); err != nil {
			rt.logger.Warn().Err(err).Msg("close store")
		}
	}
}

// execute runs c directly so its error reaches the user, records it in the
// command log and saves the new state. Plugins do not see it.
func (rt *runtime) execute(ctx context.Context, c command.Command) error {
	if err := rt.ctrl.HandleCommand(c); err != nil {
		return err
	}
	if rt.commandLog != nil {
		if err := rt.commandLog.Append(ctx, rt.ctrl.SessionID(), c); err != nil {
			rt.logger.Warn().Err(err).Str("command", c.String()).Msg("append command log")
		}
	}
	return rt.ctrl.SaveGameState(ctx)
}

// publish sends c through the bus so plugins react to it, then saves.
func (rt *runtime) publish(ctx context.Context, c command.Command) error {
	rt.ctrl.PublishCommand(c)
	return rt.ctrl.SaveGameState(ctx)
}

// resolveDBPath returns the database path using the configured path (flag or
// KONNEKTOREN_DB), then the default XDG path.
func resolveDBPath(cfg config.Config) (string, error) {
	if cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}
