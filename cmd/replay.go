package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/konnektoren/internal/controller"
	"github.com/abhisek/konnektoren/internal/game"
	"github.com/abhisek/konnektoren/internal/persistence"
	"github.com/abhisek/konnektoren/internal/plugins"
	"github.com/abhisek/konnektoren/internal/store"
)

var errNoCommandLog = errors.New("replay needs the sqlite backend")

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay logged commands against a fresh game",
	Long: "Replay reads commands from the command log and publishes them, in order, to a\n" +
		"fresh game. By default every command since the last reset is replayed.",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()
		if rt.commandLog == nil {
			return errNoCommandLog
		}

		ctx := cmd.Context()
		out := cmd.OutOrStdout()
		opts := store.QueryOpts{}
		empty := "The command log is empty."
		session, _ := cmd.Flags().GetString("session")
		all, _ := cmd.Flags().GetBool("all")
		switch {
		case session != "":
			opts.SessionID = session
			empty = fmt.Sprintf("No commands logged for session %s.", session)
		case !all:
			if opts.After, err = rt.commandLog.LastReset(ctx); err != nil {
				return err
			}
			if opts.After > 0 {
				empty = "No commands logged since the last reset."
			}
		}

		entries, err := rt.commandLog.Entries(ctx, opts)
		if err != nil {
			return err
		}

		if len(entries) == 0 {
			fmt.Fprintln(out, empty)
			return nil
		}

		fresh := controller.New(rt.game.Clone(), persistence.NewMemory(),
			controller.WithLogger(rt.logger),
			controller.WithPlugins(
				plugins.NewChallengeFinishPlugin(),
				plugins.NewGameXPPlugin(),
			))
		if err := fresh.Init(); err != nil {
			return fmt.Errorf("init replay controller: %w", err)
		}
		fresh.Replay(store.Commands(entries))

		fmt.Fprintf(out, "Replayed %d commands\n\n", len(entries))
		replayed := fresh.Snapshot()
		printStatus(out, replayed)

		if save, _ := cmd.Flags().GetBool("save"); save {
			rt.ctrl.WithState(func(s *game.State) { *s = *replayed })
			if err := rt.ctrl.SaveGameState(ctx); err != nil {
				return err
			}
			fmt.Fprintln(out, "\nReplayed state saved.")
		}
		return nil
	},
}

func init() {
	replayCmd.Flags().String("session", "", "Replay only the commands of this session id")
	replayCmd.Flags().Bool("all", false, "Replay every logged command, including those before the last reset")
	replayCmd.Flags().Bool("save", false, "Save the replayed state as the current game")
}
