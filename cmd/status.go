package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/konnektoren/internal/challenge"
	"github.com/abhisek/konnektoren/internal/game"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the active challenge and task",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		printStatus(cmd.OutOrStdout(), rt.ctrl.Snapshot())
		return nil
	},
}

// printStatus writes the position, progress and current task of s.
func printStatus(w io.Writer, s *game.State) {
	path := s.CurrentPath()
	c := s.Challenge

	fmt.Fprintf(w, "Path:      %s (%d/%d)\n", path.Name, s.CurrentChallengeIndex+1, path.Len())
	fmt.Fprintf(w, "Challenge: %s [%s] %s\n", c.Config.Name, c.Config.ID, c.Type.Kind.DisplayName())
	fmt.Fprintf(w, "Task:      %d/%d  answered %d  %.0f%%\n",
		s.CurrentTaskIndex+1, s.TasksLen(), c.Result.Len(), c.Performance())
	fmt.Fprintf(w, "XP:        %d  completed %d\n", s.Game.XP, s.Game.History.Len())
	if !c.Config.Unlocked(s.Game.XP) {
		fmt.Fprintf(w, "Locked:    needs %d XP\n", c.Config.UnlockPoints)
	}

	mc := c.Type.MultipleChoice
	if mc == nil || s.CurrentTaskIndex >= len(mc.Questions) {
		return
	}
	q := mc.Questions[s.CurrentTaskIndex]
	fmt.Fprintf(w, "\n%s\n", q.Question)
	if q.Help != "" {
		fmt.Fprintf(w, "(%s)\n", q.Help)
	}
	fmt.Fprintln(w, optionList(mc.Options))
}

func optionList(options []challenge.MultipleChoiceOption) string {
	parts := make([]string, len(options))
	for i, o := range options {
		parts[i] = fmt.Sprintf("  %d) %s", i, o.Name)
	}
	return strings.Join(parts, "\n")
}
