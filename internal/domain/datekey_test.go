package domain

import (
	"testing"
	"time"
)

func TestNewDateKey(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want DateKey
	}{
		{"zero padded", time.Date(2024, 3, 5, 10, 0, 0, 0, time.Local), "2024-03-05"},
		{"leap day", time.Date(2024, 2, 29, 0, 0, 0, 0, time.Local), "2024-02-29"},
		{"year end", time.Date(2023, 12, 31, 23, 59, 59, 0, time.Local), "2023-12-31"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewDateKey(tt.in); got != tt.want {
				t.Errorf("NewDateKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewDateKey_usesLocalComponents(t *testing.T) {
	// 23:30 local must stay on the local calendar day regardless of what
	// the same instant reads in UTC.
	late := time.Date(2024, 3, 1, 23, 30, 0, 0, time.Local)
	if got := NewDateKey(late); got != "2024-03-01" {
		t.Errorf("NewDateKey(23:30 local) = %q, want 2024-03-01", got)
	}
}

func TestDateKey_RoundTrip(t *testing.T) {
	keys := []DateKey{"2024-02-29", "2023-12-31", "2024-01-01", "2024-07-15"}
	for _, key := range keys {
		t.Run(string(key), func(t *testing.T) {
			if got := NewDateKey(key.Time()); got != key {
				t.Errorf("round trip = %q, want %q", got, key)
			}
		})
	}
}

func TestDateKey_AddDays(t *testing.T) {
	tests := []struct {
		name string
		in   DateKey
		n    int
		want DateKey
	}{
		{"year boundary forward", "2023-12-31", 1, "2024-01-01"},
		{"leap day forward", "2024-02-28", 1, "2024-02-29"},
		{"leap day backward", "2024-03-01", -1, "2024-02-29"},
		{"no-op", "2024-03-05", 0, "2024-03-05"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.AddDays(tt.n); got != tt.want {
				t.Errorf("%q.AddDays(%d) = %q, want %q", tt.in, tt.n, got, tt.want)
			}
		})
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name string
		a, b DateKey
		want int
	}{
		{"same day", "2024-03-05", "2024-03-05", 0},
		{"adjacent", "2024-03-01", "2024-03-02", 1},
		{"reversed", "2024-03-02", "2024-03-01", -1},
		{"across leap day", "2024-02-28", "2024-03-01", 2},
		{"across year", "2023-12-30", "2024-01-02", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysBetween(tt.a, tt.b); got != tt.want {
				t.Errorf("DaysBetween(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		in   string
		want Difficulty
	}{
		{"Easy", DifficultyEasy},
		{"easy", DifficultyEasy},
		{" HARD ", DifficultyHard},
		{"Medium", DifficultyMedium},
		{"unknown", DifficultyMedium},
	}

	for _, tt := range tests {
		if got := ParseDifficulty(tt.in); got != tt.want {
			t.Errorf("ParseDifficulty(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
