package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/konnektoren/internal/game"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Start over with a fresh game",
	Long:  "Reset saves a fresh game state. XP and history are lost. The command log is\n" +
		"kept, and replay starts after the reset unless --all is given.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			return fmt.Errorf("reset discards all progress; rerun with --yes to confirm")
		}

		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		fresh := game.NewState(rt.game.Clone())
		rt.ctrl.WithState(func(s *game.State) { *s = *fresh })
		if err := rt.ctrl.SaveGameState(cmd.Context()); err != nil {
			return err
		}
		if rt.commandLog != nil {
			if _, err := rt.commandLog.MarkReset(cmd.Context()); err != nil {
				return err
			}
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Progress reset.")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm the reset")
}
