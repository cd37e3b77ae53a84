package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/dsapatterns/dsatrack/internal/activity"
	"github.com/dsapatterns/dsatrack/internal/domain"
)

// levelGlyphs maps heatmap intensity levels to terminal cells
var levelGlyphs = [5]string{"·", "░", "▒", "▓", "█"}

// cmdStreak shows current and longest daily streaks
func cmdStreak() error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	// Best effort; local activity remains in effect when this fails
	a.progress.RefreshCalendar(context.Background())

	now := time.Now()
	counts := a.activity.Counts()
	streak := activity.Streaks(counts, now)

	fmt.Println("Daily Streaks")
	fmt.Println("=============")
	fmt.Printf("Current streak: %d days\n", streak.Current)
	fmt.Printf("Longest streak: %d days\n", streak.Max)

	days := a.cfg.Display.ActivityDays
	if days <= 0 {
		days = 7
	}

	fmt.Printf("\nLast %d days:\n", days)
	for offset := days - 1; offset >= 0; offset-- {
		date := domain.Today().AddDays(-offset)
		count := counts[date]
		marker := levelGlyphs[activity.IntensityLevel(count)]
		fmt.Printf("  %s %s %d solved\n", date, marker, count)
	}

	if !a.activity.Reconciled() {
		fmt.Println("\n(backend unreachable; counts derived from the local log)")
	}

	return nil
}

// cmdHeatmap renders the daily activity heatmap
func cmdHeatmap(args []string) error {
	days := 0
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--days":
			if i+1 >= len(args) {
				return fmt.Errorf("--days requires a number")
			}
			i++
			n, err := strconv.Atoi(args[i])
			if err != nil || n <= 0 {
				return fmt.Errorf("invalid day count: %s", args[i])
			}
			days = n
		default:
			return fmt.Errorf("unknown heatmap flag: %s", args[i])
		}
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if days == 0 {
		days = a.cfg.Display.HeatmapDays
		if days <= 0 {
			days = 371
		}
	}

	a.progress.RefreshCalendar(context.Background())

	now := time.Now()
	series := activity.BuildHeatmap(a.activity.Counts(), now, days)

	fmt.Printf("Activity Heatmap (last %d days)\n\n", days)
	printHeatmapGrid(series)

	total := 0
	active := 0
	for _, day := range series {
		total += day.Count
		if day.Count > 0 {
			active++
		}
	}
	fmt.Printf("\n%d solved across %d active days\n", total, active)
	fmt.Printf("Legend: %s none", levelGlyphs[0])
	for level := 1; level < len(levelGlyphs); level++ {
		fmt.Printf("  %s L%d", levelGlyphs[level], level)
	}
	fmt.Println()

	return nil
}

// printHeatmapGrid lays the series out as weekday rows and week columns,
// oldest week on the left.
func printHeatmapGrid(series []domain.HeatmapDay) {
	if len(series) == 0 {
		return
	}

	lead := int(series[0].Date.Time().Weekday())

	weeks := (lead + len(series) + 6) / 7
	grid := make([][]string, 7)
	for row := range grid {
		grid[row] = make([]string, weeks)
		for col := range grid[row] {
			grid[row][col] = " "
		}
	}

	for i, day := range series {
		slot := lead + i
		grid[slot%7][slot/7] = levelGlyphs[day.Level]
	}

	labels := [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	for row := 0; row < 7; row++ {
		fmt.Printf("  %s ", labels[row])
		for col := 0; col < weeks; col++ {
			fmt.Print(grid[row][col], " ")
		}
		fmt.Println()
	}
}
