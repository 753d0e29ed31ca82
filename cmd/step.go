package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abhisek/konnektoren/internal/command"
	"github.com/abhisek/konnektoren/internal/plugins"
)

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Move to the next challenge (or task with --task)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := command.Command(command.NextChallenge())
		if task, _ := cmd.Flags().GetBool("task"); task {
			c = command.NextTask()
		}
		return runStep(cmd, c)
	},
}

var prevCmd = &cobra.Command{
	Use:   "prev",
	Short: "Move to the previous challenge (or task with --task)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := command.Command(command.PreviousChallenge())
		if task, _ := cmd.Flags().GetBool("task"); task {
			c = command.PreviousTask()
		}
		return runStep(cmd, c)
	},
}

var solveCmd = &cobra.Command{
	Use:   "solve OPTION",
	Short: "Answer the current task with the option at index OPTION",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		option, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("option must be a number: %w", err)
		}

		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		before := rt.ctrl.Snapshot()
		if err := rt.execute(cmd.Context(), command.SolveOption(option)); err != nil {
			return err
		}
		after := rt.ctrl.Snapshot()

		out := cmd.OutOrStdout()
		answered := before.Challenge.Result.Len()
		if after.Challenge.TaskCorrect(answered) {
			fmt.Fprintf(out, "Task %d: richtig!\n", before.CurrentTaskIndex+1)
		} else {
			fmt.Fprintf(out, "Task %d: leider falsch.\n", before.CurrentTaskIndex+1)
		}
		if after.CurrentTaskIndex == before.CurrentTaskIndex {
			fmt.Fprintln(out, "All tasks answered. Run 'konnektoren finish' to complete the challenge.")
		}
		return nil
	},
}

var finishCmd = &cobra.Command{
	Use:   "finish",
	Short: "Complete the active challenge and collect XP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		s := rt.ctrl.Snapshot()
		result := s.Challenge.Result.Clone()
		// Finish goes through the bus so the history and XP plugins see it.
		if err := rt.publish(cmd.Context(), command.FinishFor(s.Challenge.Config.ID, &result)); err != nil {
			return err
		}

		after := rt.ctrl.Snapshot()
		fmt.Fprintf(cmd.OutOrStdout(), "%s completed: %.0f%%, +%d XP (total %d)\n",
			s.Challenge.Config.Name, s.Challenge.Performance(),
			plugins.Experience(s.Challenge.Performance()), after.Game.XP)
		return nil
	},
}

// runStep executes a navigation command and prints the new status.
func runStep(cmd *cobra.Command, c command.Command) error {
	rt, err := openRuntime(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	if err := rt.execute(cmd.Context(), c); err != nil {
		return err
	}
	printStatus(cmd.OutOrStdout(), rt.ctrl.Snapshot())
	return nil
}

func init() {
	nextCmd.Flags().Bool("task", false, "Move between tasks instead of challenges")
	prevCmd.Flags().Bool("task", false, "Move between tasks instead of challenges")
}
