package activity

import (
	"sort"
	"time"

	"github.com/dsapatterns/dsatrack/internal/domain"
)

// CurrentStreak counts consecutive active days ending at today. A day with
// no activity at the most recent position breaks the streak immediately:
// if today itself has nothing recorded the streak is 0, no matter what
// happened yesterday.
func CurrentStreak(counts map[domain.DateKey]int, today time.Time) int {
	day := domain.NewDateKey(today)
	streak := 0
	for counts[day] > 0 {
		streak++
		day = day.AddDays(-1)
	}
	return streak
}

// MaxStreak returns the longest run of consecutive active dates.
// A single active day counts as a streak of 1; no activity is 0.
func MaxStreak(counts map[domain.DateKey]int) int {
	active := activeDates(counts)
	if len(active) == 0 {
		return 0
	}

	maxStreak := 1
	run := 1
	for i := 1; i < len(active); i++ {
		if domain.DaysBetween(active[i-1], active[i]) == 1 {
			run++
		} else {
			run = 1
		}
		if run > maxStreak {
			maxStreak = run
		}
	}
	return maxStreak
}

// Streaks computes both streak statistics in one pass over the counts.
func Streaks(counts map[domain.DateKey]int, today time.Time) domain.Streak {
	return domain.Streak{
		Current: CurrentStreak(counts, today),
		Max:     MaxStreak(counts),
	}
}

// BuildHeatmap produces exactly windowDays heatmap entries ending at today
// inclusive, oldest first, one per calendar day. Days absent from counts
// get a zero count.
func BuildHeatmap(counts map[domain.DateKey]int, today time.Time, windowDays int) []domain.HeatmapDay {
	if windowDays <= 0 {
		return nil
	}

	end := domain.NewDateKey(today)
	series := make([]domain.HeatmapDay, 0, windowDays)
	for i := windowDays - 1; i >= 0; i-- {
		date := end.AddDays(-i)
		count := counts[date]
		if count < 0 {
			count = 0
		}
		series = append(series, domain.HeatmapDay{
			Date:  date,
			Count: count,
			Level: IntensityLevel(count),
		})
	}
	return series
}

// IntensityLevel maps a daily solve count to a heatmap intensity band:
// 0 no activity, 1-2 level 1, 3-5 level 2, 6-10 level 3, 11+ level 4.
func IntensityLevel(count int) int {
	switch {
	case count >= 11:
		return 4
	case count >= 6:
		return 3
	case count >= 3:
		return 2
	case count >= 1:
		return 1
	default:
		return 0
	}
}

func activeDates(counts map[domain.DateKey]int) []domain.DateKey {
	active := make([]domain.DateKey, 0, len(counts))
	for date, count := range counts {
		if count > 0 {
			active = append(active, date)
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i] < active[j] })
	return active
}
