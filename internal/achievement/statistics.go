package achievement

import "github.com/abhisek/konnektoren/internal/game"

// Statistics is an aggregate snapshot of a game's progress.
type Statistics struct {
	TotalChallenges         int     `json:"totalChallenges"`
	AveragePerformance      float64 `json:"averagePerformance"`
	TotalXP                 int     `json:"totalXp"`
	CompletedGamePaths      int     `json:"completedGamePaths"`
	PerfectChallenges       int     `json:"perfectChallenges"`
	DifferentChallengeTypes int     `json:"differentChallengeTypes"`
}

// ComputeStatistics aggregates g's history and XP. A nil game yields zero
// statistics.
func ComputeStatistics(g *game.Game) Statistics {
	if g == nil {
		return Statistics{}
	}
	return Statistics{
		TotalChallenges:         g.History.Len(),
		AveragePerformance:      g.History.AveragePerformance(),
		TotalXP:                 g.XP,
		CompletedGamePaths:      g.CompletedPaths(),
		PerfectChallenges:       g.History.PerfectCount(),
		DifferentChallengeTypes: g.History.DistinctKinds(),
	}
}

// variables maps the names usable in conditions to their values.
func (s Statistics) variables() map[string]float64 {
	return map[string]float64{
		"total_challenges":          float64(s.TotalChallenges),
		"average_performance":       s.AveragePerformance,
		"total_xp":                  float64(s.TotalXP),
		"completed_game_paths":      float64(s.CompletedGamePaths),
		"perfect_challenges":        float64(s.PerfectChallenges),
		"different_challenge_types": float64(s.DifferentChallengeTypes),
	}
}
