package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/konnektoren/internal/achievement"
)

var achievementsCmd = &cobra.Command{
	Use:   "achievements",
	Short: "List achievements and learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		g := rt.ctrl.Snapshot().Game
		achieved, err := rt.evaluator.Evaluate(g)
		if err != nil {
			return err
		}
		unlocked := make(map[string]bool, len(achieved))
		for _, d := range achieved {
			unlocked[d.ID] = true
		}

		out := cmd.OutOrStdout()
		st := achievement.ComputeStatistics(g)
		fmt.Fprintf(out, "Challenges: %d  Average: %.0f%%  XP: %d  Perfect: %d  Kinds: %d  Paths: %d\n\n",
			st.TotalChallenges, st.AveragePerformance, st.TotalXP,
			st.PerfectChallenges, st.DifferentChallengeTypes, st.CompletedGamePaths)

		for _, d := range rt.evaluator.Definitions() {
			mark := " "
			if unlocked[d.ID] {
				mark = "✓"
			}
			fmt.Fprintf(out, "[%s] %-20s  %s\n", mark, d.Name, d.Description)
		}
		fmt.Fprintf(out, "\n%d/%d unlocked\n", len(achieved), len(rt.evaluator.Definitions()))
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List completed challenges",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		out := cmd.OutOrStdout()
		past := rt.ctrl.Snapshot().Game.History.Challenges()
		if len(past) == 0 {
			fmt.Fprintln(out, "No challenges completed yet.")
			return nil
		}

		fmt.Fprintf(out, "%-4s  %-20s  %-28s  %-18s  %s\n", "#", "ID", "Name", "Kind", "Score")
		fmt.Fprintln(out, strings.Repeat("─", 84))
		for i, c := range past {
			fmt.Fprintf(out, "%-4d  %-20s  %-28s  %-18s  %4.0f%%\n",
				i+1, c.Config.ID, truncate(c.Config.Name, 28), c.Type.Kind.DisplayName(), c.Performance())
		}
		return nil
	},
}

var pathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "List game paths and their challenges",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		out := cmd.OutOrStdout()
		s := rt.ctrl.Snapshot()
		done := s.Game.History.CompletedIDs()
		for pi, p := range s.Game.Paths {
			state := ""
			if p.Completed(s.Game.History) {
				state = "  (completed)"
			}
			fmt.Fprintf(out, "%s [%s]%s\n", p.Name, p.ID, state)
			for ci, c := range p.Challenges {
				marker := "  "
				if pi == s.CurrentGamePathIndex && ci == s.CurrentChallengeIndex {
					marker = "> "
				}
				status := ""
				switch {
				case done[c.ID]:
					status = "✓"
				case !c.Unlocked(s.Game.XP):
					status = fmt.Sprintf("locked, %d XP", c.UnlockPoints)
				}
				fmt.Fprintf(out, "%s%-20s  %-28s  %s\n", marker, c.ID, truncate(c.Name, 28), status)
			}
		}
		return nil
	},
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
