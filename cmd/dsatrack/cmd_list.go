package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/dsapatterns/dsatrack/internal/catalog"
	"github.com/dsapatterns/dsatrack/internal/domain"
)

// listFilter holds the parsed list command filters
type listFilter struct {
	solved   bool
	unsolved bool
	revision bool
	topic    string
	tags     []string
	search   string
}

// cmdList lists problems grouped by topic
func cmdList(args []string) error {
	var filter listFilter
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--solved":
			filter.solved = true
		case "--unsolved":
			filter.unsolved = true
		case "--revision":
			filter.revision = true
		case "--topic":
			if i+1 >= len(args) {
				return fmt.Errorf("--topic requires a topic name")
			}
			i++
			filter.topic = args[i]
		case "--tag":
			if i+1 >= len(args) {
				return fmt.Errorf("--tag requires a tag name")
			}
			i++
			filter.tags = append(filter.tags, args[i])
		case "--search":
			if i+1 >= len(args) {
				return fmt.Errorf("--search requires a term")
			}
			i++
			filter.search = args[i]
		default:
			return fmt.Errorf("unknown list flag: %s", args[i])
		}
	}
	if filter.solved && filter.unsolved {
		return fmt.Errorf("--solved and --unsolved are mutually exclusive")
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := context.Background()
	problems, err := a.catalog.Problems(ctx)
	if err != nil {
		return err
	}

	var tagIDs []int
	if len(filter.tags) > 0 {
		tagIDs, err = resolveTagNames(ctx, a, filter.tags)
		if err != nil {
			return err
		}
	}

	matched := 0
	grouped := catalog.GroupByTopic(problems)
	for _, topic := range catalog.OrderedTopics(grouped) {
		var lines []string
		for _, section := range catalog.GroupBySubtopic(grouped[topic]) {
			var rows []string
			for _, p := range section.Problems {
				if !matchesFilter(a, p, filter, tagIDs) {
					continue
				}
				rows = append(rows, renderProblemRow(a, p))
				matched++
			}
			if len(rows) == 0 {
				continue
			}
			if section.Name != "" {
				lines = append(lines, "  "+section.Name)
			}
			lines = append(lines, rows...)
		}
		if len(lines) == 0 {
			continue
		}

		fmt.Printf("%s\n%s\n", topic, strings.Repeat("-", len(topic)))
		for _, line := range lines {
			fmt.Println(line)
		}
		fmt.Println()
	}

	if matched == 0 {
		fmt.Println("No problems match the given filters.")
		return nil
	}

	fmt.Printf("%d problems (%d solved)\n", matched, a.activity.SolvedCount())
	return nil
}

func matchesFilter(a *app, p domain.Problem, filter listFilter, tagIDs []int) bool {
	if filter.solved && !a.activity.IsSolved(p.ID) {
		return false
	}
	if filter.unsolved && a.activity.IsSolved(p.ID) {
		return false
	}
	if filter.revision && !a.progress.InRevision(p.ID) {
		return false
	}
	if filter.topic != "" && !p.HasTopic(filter.topic) {
		return false
	}
	if len(tagIDs) > 0 && !a.tags.HasAllTags(p.ID, tagIDs) {
		return false
	}
	if filter.search != "" &&
		!strings.Contains(strings.ToLower(p.Title), strings.ToLower(filter.search)) {
		return false
	}
	return true
}

func renderProblemRow(a *app, p domain.Problem) string {
	mark := " "
	if a.activity.IsSolved(p.ID) {
		mark = "✓"
	}
	star := " "
	if a.progress.InRevision(p.ID) {
		star = "★"
	}
	return fmt.Sprintf("  [%s]%s #%-4d %-50s %s", mark, star, p.ID, p.Title, p.Difficulty)
}

// resolveTagNames maps tag names to ids, case-insensitively, and warms
// the tag index so membership checks work offline afterwards.
func resolveTagNames(ctx context.Context, a *app, names []string) ([]int, error) {
	known, err := a.tags.Names(ctx)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]int, len(known))
	for id, name := range known {
		byName[strings.ToLower(name)] = id
	}

	ids := make([]int, 0, len(names))
	for _, name := range names {
		id, ok := byName[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("unknown tag: %s (see 'dsatrack tags list')", name)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
