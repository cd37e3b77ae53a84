package domain

import "strings"

// Difficulty is a problem's difficulty rating.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// ParseDifficulty normalizes a difficulty string from the backend.
// Unknown values default to Medium.
func ParseDifficulty(s string) Difficulty {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return DifficultyEasy
	case "hard":
		return DifficultyHard
	default:
		return DifficultyMedium
	}
}

// Problem is a single practice problem from the remote catalog.
// Problems are immutable from the client's perspective; the catalog
// owns them and the client only caches.
type Problem struct {
	ID         int        `json:"id"`
	Title      string     `json:"title"`
	Difficulty Difficulty `json:"difficulty"`
	Topics     []string   `json:"topics"`
	Subtopic   string     `json:"subtopic,omitempty"`
	Link       string     `json:"link,omitempty"`
	Solution   string     `json:"solution,omitempty"`
}

// HasTopic reports whether the problem is filed under the given topic.
func (p Problem) HasTopic(topic string) bool {
	for _, t := range p.Topics {
		if t == topic {
			return true
		}
	}
	return false
}

// Streak is the derived pair of activity-streak statistics.
type Streak struct {
	Current int `json:"current"`
	Max     int `json:"max"`
}

// HeatmapDay is one cell of the calendar heatmap series.
type HeatmapDay struct {
	Date  DateKey `json:"date"`
	Count int     `json:"count"`
	Level int     `json:"level"`
}
