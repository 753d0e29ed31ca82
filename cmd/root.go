package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "konnektoren",
	Short: "Learn German connectors in the terminal",
	Long: "Konnektoren is a terminal game for learning German grammar. Challenges are grouped\n" +
		"into game paths; finishing them earns XP that unlocks further challenges.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("db", "", "Path to SQLite database file (overrides KONNEKTOREN_DB env var)")
	flags.String("backend", "", "Storage backend: sqlite, file or memory (overrides KONNEKTOREN_BACKEND)")
	flags.String("log-level", "", "Log level (overrides KONNEKTOREN_LOG_LEVEL)")
	flags.String("content", "", "Game dataset YAML file (overrides KONNEKTOREN_CONTENT)")
	flags.String("achievements", "", "Achievement definitions YAML file (overrides KONNEKTOREN_ACHIEVEMENTS)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(nextCmd)
	rootCmd.AddCommand(prevCmd)
	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(finishCmd)
	rootCmd.AddCommand(achievementsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(pathsCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}
