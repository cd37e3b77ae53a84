// Package catalog caches the remote problem catalog and company-tag
// index locally, so listing and filtering keep working when the backend
// is unreachable.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/dsapatterns/dsatrack/internal/domain"
	"github.com/dsapatterns/dsatrack/internal/remote"
	"github.com/dsapatterns/dsatrack/internal/storage/local"
)

const keyCatalog = "problemCatalog"

// Remote is the backend surface the catalog depends on.
type Remote interface {
	ListProblems(ctx context.Context) ([]domain.Problem, error)
	CreateProblem(ctx context.Context, p remote.NewProblem) (domain.Problem, error)
	DeleteProblem(ctx context.Context, problemID int) error
}

// Service serves the problem catalog, remote first with local fallback.
type Service struct {
	remote Remote
	store  *local.Store
	log    *slog.Logger

	cached []domain.Problem
}

// NewService creates a catalog service.
func NewService(remote Remote, store *local.Store, log *slog.Logger) *Service {
	return &Service{remote: remote, store: store, log: log}
}

// Problems returns the catalog: the in-session cache when warm, else the
// backend, else the persisted snapshot from a previous session.
func (s *Service) Problems(ctx context.Context) ([]domain.Problem, error) {
	if s.cached != nil {
		return s.cached, nil
	}

	problems, err := s.remote.ListProblems(ctx)
	if err != nil {
		s.log.Warn("catalog fetch failed, using local snapshot", "error", err)
		return s.loadSnapshot(err)
	}

	s.cached = problems
	if err := s.store.Save(keyCatalog, problems); err != nil {
		s.log.Warn("persist catalog snapshot failed", "error", err)
	}
	return problems, nil
}

// Refresh drops the in-session cache and refetches from the backend.
func (s *Service) Refresh(ctx context.Context) ([]domain.Problem, error) {
	s.cached = nil
	return s.Problems(ctx)
}

// CreateProblem adds a problem to the backend catalog and refreshes the
// cached copy so the next listing includes it.
func (s *Service) CreateProblem(ctx context.Context, p remote.NewProblem) (domain.Problem, error) {
	created, err := s.remote.CreateProblem(ctx, p)
	if err != nil {
		return domain.Problem{}, err
	}

	if _, err := s.Refresh(ctx); err != nil {
		s.log.Warn("catalog refresh after create failed", "error", err)
	}
	return created, nil
}

// DeleteProblem removes a problem from the backend catalog and refreshes
// the cached copy.
func (s *Service) DeleteProblem(ctx context.Context, problemID int) error {
	if err := s.remote.DeleteProblem(ctx, problemID); err != nil {
		return err
	}

	if _, err := s.Refresh(ctx); err != nil {
		s.log.Warn("catalog refresh after delete failed", "error", err)
	}
	return nil
}

func (s *Service) loadSnapshot(fetchErr error) ([]domain.Problem, error) {
	var problems []domain.Problem
	if err := s.store.Load(keyCatalog, &problems); err != nil {
		if errors.Is(err, local.ErrNotFound) {
			return nil, fmt.Errorf("catalog unavailable: %w", fetchErr)
		}
		return nil, fmt.Errorf("load catalog snapshot: %w", err)
	}
	s.cached = problems
	return problems, nil
}

// categoryOrder is the curated pattern-based ordering for listing
// topics, fundamentals first, then core patterns.
var categoryOrder = []string{
	"Programming Fundamentals", "Time and Space Complexity / Online Judge", "Dsa Fundamentals",
	"Hashing", "2 Pointers", "Two Pointers", "Sliding Window",
	"Stack", "Queue", "Linked List", "Linked Lists",
	"Binary Tree", "Trees", "Binary Search", "Binary Search Tree",
	"Heap (Priority Queue)", "Heap",
	"Recursion & Backtracking", "Backtracking",
	"Dynamic Programming", "Dynamic Programming Level 1", "Dynamic Programming Level 2",
	"Greedy", "Graphs", "Tries", "Bit Manipulation",
	"Matrix", "Sorting", "String Matching Algos", "Prefix Sum",
	"Intervals", "Game Theory", "Combinatorics & Geometry",
	"Advance algorithm",
}

// GroupByTopic buckets problems under each of their topics. Problems
// without topics land under "General".
func GroupByTopic(problems []domain.Problem) map[string][]domain.Problem {
	grouped := make(map[string][]domain.Problem)
	for _, p := range problems {
		topics := p.Topics
		if len(topics) == 0 {
			topics = []string{"General"}
		}
		for _, topic := range topics {
			grouped[topic] = append(grouped[topic], p)
		}
	}
	return grouped
}

// SubtopicSection is one subtopic's slice of a topic group. An empty
// name holds the problems filed directly under the topic.
type SubtopicSection struct {
	Name     string
	Problems []domain.Problem
}

// GroupBySubtopic splits a topic's problems into subtopic sections,
// preserving first-seen order.
func GroupBySubtopic(problems []domain.Problem) []SubtopicSection {
	index := make(map[string]int)
	var sections []SubtopicSection

	for _, p := range problems {
		i, ok := index[p.Subtopic]
		if !ok {
			i = len(sections)
			index[p.Subtopic] = i
			sections = append(sections, SubtopicSection{Name: p.Subtopic})
		}
		sections[i].Problems = append(sections[i].Problems, p)
	}
	return sections
}

// OrderedTopics returns the group keys in curated category order, with
// topics outside the curated list appended alphabetically.
func OrderedTopics(grouped map[string][]domain.Problem) []string {
	seen := make(map[string]bool, len(categoryOrder))
	var topics []string

	for _, name := range categoryOrder {
		seen[name] = true
		if len(grouped[name]) > 0 {
			topics = append(topics, name)
		}
	}

	var rest []string
	for name, problems := range grouped {
		if !seen[name] && len(problems) > 0 {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)

	return append(topics, rest...)
}
