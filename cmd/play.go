package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/konnektoren/internal/app"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal UI",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd)
	},
}

// runTUI opens the runtime and launches the terminal UI.
func runTUI(cmd *cobra.Command) error {
	rt, err := openRuntime(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	if err := app.Run(rt.ctrl, rt.evaluator); err != nil {
		return err
	}
	return rt.ctrl.SaveGameState(cmd.Context())
}
