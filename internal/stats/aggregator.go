// Package stats derives progress statistics from the problem catalog
// and the solved set. All functions are pure; remote aggregate stats
// are preferred at the call site and these serve as the local fallback.
package stats

import (
	"math"

	"github.com/dsapatterns/dsatrack/internal/domain"
)

// Count is a solved/total pair for one difficulty bucket.
type Count struct {
	Solved int
	Total  int
}

// Percentage returns the bucket's completion percentage, 0 when empty.
func (c Count) Percentage() int {
	return OverallPercentage(c.Solved, c.Total)
}

// Breakdown holds per-difficulty progress counts.
type Breakdown struct {
	Easy   Count
	Medium Count
	Hard   Count
}

// SolvedTotal sums solved counts across difficulties.
func (b Breakdown) SolvedTotal() int {
	return b.Easy.Solved + b.Medium.Solved + b.Hard.Solved
}

// Total sums problem counts across difficulties.
func (b Breakdown) Total() int {
	return b.Easy.Total + b.Medium.Total + b.Hard.Total
}

// ByDifficulty partitions the catalog by difficulty and counts solved
// membership per bucket.
func ByDifficulty(problems []domain.Problem, isSolved func(problemID int) bool) Breakdown {
	var b Breakdown
	for _, p := range problems {
		var bucket *Count
		switch p.Difficulty {
		case domain.DifficultyEasy:
			bucket = &b.Easy
		case domain.DifficultyHard:
			bucket = &b.Hard
		default:
			bucket = &b.Medium
		}
		bucket.Total++
		if isSolved(p.ID) {
			bucket.Solved++
		}
	}
	return b
}

// OverallPercentage returns solved/total as a percentage rounded to the
// nearest integer, 0 when total is 0.
func OverallPercentage(solved, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(solved) / float64(total) * 100))
}
