package main

import (
	"context"
	"fmt"

	"github.com/dsapatterns/dsatrack/internal/stats"
)

// cmdStats shows solve progress by difficulty, preferring the backend's
// aggregates and falling back to locally derived counts.
func cmdStats() error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := context.Background()

	if agg, err := a.client.Stats(ctx); err == nil {
		breakdown := stats.Breakdown{
			Easy:   stats.Count{Solved: agg.EasySolved, Total: agg.EasyTotal},
			Medium: stats.Count{Solved: agg.MediumSolved, Total: agg.MediumTotal},
			Hard:   stats.Count{Solved: agg.HardSolved, Total: agg.HardTotal},
		}
		printStats(breakdown, agg.SolvedProblems, agg.TotalProblems)
		return nil
	}

	a.log.Warn("backend stats unavailable, deriving locally")

	problems, err := a.catalog.Problems(ctx)
	if err != nil {
		return fmt.Errorf("derive stats: %w", err)
	}

	breakdown := stats.ByDifficulty(problems, a.activity.IsSolved)
	printStats(breakdown, breakdown.SolvedTotal(), breakdown.Total())
	return nil
}

func printStats(b stats.Breakdown, solved, total int) {
	fmt.Println("Progress")
	fmt.Println("========")
	fmt.Printf("Solved: %d / %d (%d%%)\n\n", solved, total, stats.OverallPercentage(solved, total))

	rows := []struct {
		name  string
		count stats.Count
	}{
		{"Easy", b.Easy},
		{"Medium", b.Medium},
		{"Hard", b.Hard},
	}

	for _, row := range rows {
		fraction := 0.0
		if row.count.Total > 0 {
			fraction = float64(row.count.Solved) / float64(row.count.Total)
		}
		bar := renderProgressBar(fraction, 20)
		fmt.Printf("%-8s %s %3d%% (%d/%d)\n",
			row.name, bar, row.count.Percentage(), row.count.Solved, row.count.Total)
	}
}
