package catalog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/dsapatterns/dsatrack/internal/domain"
	"github.com/dsapatterns/dsatrack/internal/remote"
	"github.com/dsapatterns/dsatrack/internal/storage/local"
)

type mockCatalogRemote struct {
	listProblemsFn  func(ctx context.Context) ([]domain.Problem, error)
	createProblemFn func(ctx context.Context, p remote.NewProblem) (domain.Problem, error)
	deleteProblemFn func(ctx context.Context, problemID int) error
}

func (m *mockCatalogRemote) ListProblems(ctx context.Context) ([]domain.Problem, error) {
	return m.listProblemsFn(ctx)
}

func (m *mockCatalogRemote) CreateProblem(ctx context.Context, p remote.NewProblem) (domain.Problem, error) {
	if m.createProblemFn != nil {
		return m.createProblemFn(ctx, p)
	}
	return domain.Problem{}, errors.New("mock: not implemented")
}

func (m *mockCatalogRemote) DeleteProblem(ctx context.Context, problemID int) error {
	if m.deleteProblemFn != nil {
		return m.deleteProblemFn(ctx, problemID)
	}
	return errors.New("mock: not implemented")
}

type mockTagRemote struct {
	listCompanyTagsFn func(ctx context.Context) ([]remote.CompanyTag, error)
	allProblemTagsFn  func(ctx context.Context) (map[int][]int, error)
	setProblemTagsFn  func(ctx context.Context, problemID int, tagIDs []int) error
}

func (m *mockTagRemote) ListCompanyTags(ctx context.Context) ([]remote.CompanyTag, error) {
	if m.listCompanyTagsFn != nil {
		return m.listCompanyTagsFn(ctx)
	}
	return nil, errors.New("mock: not implemented")
}

func (m *mockTagRemote) AllProblemTags(ctx context.Context) (map[int][]int, error) {
	if m.allProblemTagsFn != nil {
		return m.allProblemTagsFn(ctx)
	}
	return nil, errors.New("mock: not implemented")
}

func (m *mockTagRemote) ProblemTags(ctx context.Context, problemID int) ([]int, error) {
	return nil, errors.New("mock: not implemented")
}

func (m *mockTagRemote) SetProblemTags(ctx context.Context, problemID int, tagIDs []int) error {
	if m.setProblemTagsFn != nil {
		return m.setProblemTagsFn(ctx, problemID, tagIDs)
	}
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestService_Problems_CachesAndFallsBack(t *testing.T) {
	blob, err := local.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}

	catalog := []domain.Problem{{ID: 1, Title: "Two Sum", Topics: []string{"Hashing"}}}
	calls := 0
	backend := &mockCatalogRemote{
		listProblemsFn: func(ctx context.Context) ([]domain.Problem, error) {
			calls++
			if calls > 1 {
				return nil, errors.New("backend down")
			}
			return catalog, nil
		},
	}

	s := NewService(backend, blob, testLogger())
	ctx := context.Background()

	got, err := s.Problems(ctx)
	if err != nil {
		t.Fatalf("Problems() error = %v", err)
	}
	if len(got) != 1 || got[0].Title != "Two Sum" {
		t.Errorf("Problems() = %v", got)
	}

	t.Run("in-session cache", func(t *testing.T) {
		s.Problems(ctx)
		if calls != 1 {
			t.Errorf("backend called %d times, want 1", calls)
		}
	})

	t.Run("snapshot fallback across sessions", func(t *testing.T) {
		fresh := NewService(backend, blob, testLogger())
		got, err := fresh.Problems(ctx)
		if err != nil {
			t.Fatalf("Problems() with backend down error = %v", err)
		}
		if len(got) != 1 || got[0].Title != "Two Sum" {
			t.Errorf("snapshot Problems() = %v", got)
		}
	})
}

func TestService_Problems_NoSnapshotSurfacesError(t *testing.T) {
	blob, _ := local.NewStore(t.TempDir())
	backend := &mockCatalogRemote{
		listProblemsFn: func(ctx context.Context) ([]domain.Problem, error) {
			return nil, errors.New("backend down")
		},
	}

	s := NewService(backend, blob, testLogger())
	if _, err := s.Problems(context.Background()); err == nil {
		t.Error("expected error when backend is down and no snapshot exists")
	}
}

func TestService_CreateProblem_RefreshesCache(t *testing.T) {
	blob, _ := local.NewStore(t.TempDir())

	catalog := []domain.Problem{{ID: 1, Title: "Two Sum"}}
	backend := &mockCatalogRemote{
		listProblemsFn: func(ctx context.Context) ([]domain.Problem, error) {
			return catalog, nil
		},
		createProblemFn: func(ctx context.Context, p remote.NewProblem) (domain.Problem, error) {
			created := domain.Problem{ID: p.Number, Title: p.Title}
			catalog = append(catalog, created)
			return created, nil
		},
	}

	s := NewService(backend, blob, testLogger())
	ctx := context.Background()

	// Warm the cache so a stale copy exists to invalidate.
	if _, err := s.Problems(ctx); err != nil {
		t.Fatalf("Problems() error = %v", err)
	}

	created, err := s.CreateProblem(ctx, remote.NewProblem{Number: 2, Title: "Three Sum"})
	if err != nil {
		t.Fatalf("CreateProblem() error = %v", err)
	}
	if created.ID != 2 {
		t.Errorf("created.ID = %d, want 2", created.ID)
	}

	got, err := s.Problems(ctx)
	if err != nil {
		t.Fatalf("Problems() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("listing after create = %d problems, want 2", len(got))
	}
}

func TestService_DeleteProblem_RefreshesCache(t *testing.T) {
	blob, _ := local.NewStore(t.TempDir())

	catalog := []domain.Problem{{ID: 1, Title: "Two Sum"}, {ID: 2, Title: "Three Sum"}}
	backend := &mockCatalogRemote{
		listProblemsFn: func(ctx context.Context) ([]domain.Problem, error) {
			return catalog, nil
		},
		deleteProblemFn: func(ctx context.Context, problemID int) error {
			kept := catalog[:0]
			for _, p := range catalog {
				if p.ID != problemID {
					kept = append(kept, p)
				}
			}
			catalog = kept
			return nil
		},
	}

	s := NewService(backend, blob, testLogger())
	ctx := context.Background()

	if _, err := s.Problems(ctx); err != nil {
		t.Fatalf("Problems() error = %v", err)
	}

	if err := s.DeleteProblem(ctx, 1); err != nil {
		t.Fatalf("DeleteProblem() error = %v", err)
	}

	got, err := s.Problems(ctx)
	if err != nil {
		t.Fatalf("Problems() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != 2 {
		t.Errorf("listing after delete = %v, want only problem 2", got)
	}
}

func TestService_DeleteProblem_BackendFailureKeepsCache(t *testing.T) {
	blob, _ := local.NewStore(t.TempDir())
	backend := &mockCatalogRemote{
		listProblemsFn: func(ctx context.Context) ([]domain.Problem, error) {
			return []domain.Problem{{ID: 1}}, nil
		},
		deleteProblemFn: func(ctx context.Context, problemID int) error {
			return errors.New("backend down")
		},
	}

	s := NewService(backend, blob, testLogger())
	ctx := context.Background()
	s.Problems(ctx)

	if err := s.DeleteProblem(ctx, 1); err == nil {
		t.Fatal("DeleteProblem() should surface the backend error")
	}

	got, err := s.Problems(ctx)
	if err != nil {
		t.Fatalf("Problems() error = %v", err)
	}
	if len(got) != 1 {
		t.Errorf("failed delete must not drop the cached problem, got %v", got)
	}
}

func TestGroupByTopic(t *testing.T) {
	problems := []domain.Problem{
		{ID: 1, Topics: []string{"Hashing"}},
		{ID: 2, Topics: []string{"Hashing", "Two Pointers"}},
		{ID: 3},
	}

	grouped := GroupByTopic(problems)

	if len(grouped["Hashing"]) != 2 {
		t.Errorf("Hashing group = %d problems, want 2", len(grouped["Hashing"]))
	}
	if len(grouped["Two Pointers"]) != 1 {
		t.Errorf("Two Pointers group = %d problems, want 1", len(grouped["Two Pointers"]))
	}
	if len(grouped["General"]) != 1 {
		t.Errorf("topicless problem should land in General, got %v", grouped["General"])
	}
}

func TestGroupBySubtopic(t *testing.T) {
	problems := []domain.Problem{
		{ID: 1, Subtopic: "Basics"},
		{ID: 2},
		{ID: 3, Subtopic: "Basics"},
		{ID: 4, Subtopic: "Advanced"},
	}

	sections := GroupBySubtopic(problems)

	if len(sections) != 3 {
		t.Fatalf("got %d sections, want 3", len(sections))
	}
	if sections[0].Name != "Basics" || len(sections[0].Problems) != 2 {
		t.Errorf("section 0 = %q with %d problems, want Basics with 2",
			sections[0].Name, len(sections[0].Problems))
	}
	if sections[1].Name != "" || len(sections[1].Problems) != 1 {
		t.Errorf("section 1 = %q, want unnamed section for subtopic-less problems", sections[1].Name)
	}
	if sections[2].Name != "Advanced" {
		t.Errorf("section 2 = %q, want Advanced (first-seen order)", sections[2].Name)
	}
}

func TestOrderedTopics(t *testing.T) {
	grouped := map[string][]domain.Problem{
		"Graphs":        {{ID: 1}},
		"Hashing":       {{ID: 2}},
		"Zeta Patterns": {{ID: 3}},
		"Alpha Custom":  {{ID: 4}},
		"Stack":         {},
	}

	topics := OrderedTopics(grouped)

	want := []string{"Hashing", "Graphs", "Alpha Custom", "Zeta Patterns"}
	if len(topics) != len(want) {
		t.Fatalf("OrderedTopics() = %v, want %v", topics, want)
	}
	for i := range want {
		if topics[i] != want[i] {
			t.Fatalf("OrderedTopics() = %v, want %v", topics, want)
		}
	}
}

func TestTagIndex(t *testing.T) {
	blob, _ := local.NewStore(t.TempDir())
	listCalls := 0
	mock := &mockTagRemote{
		listCompanyTagsFn: func(ctx context.Context) ([]remote.CompanyTag, error) {
			listCalls++
			return []remote.CompanyTag{{ID: 1, Name: "Initech"}, {ID: 2, Name: "Hooli"}}, nil
		},
		allProblemTagsFn: func(ctx context.Context) (map[int][]int, error) {
			return map[int][]int{42: {1, 2}, 7: {2}}, nil
		},
	}

	idx := NewTagIndex(mock, blob, testLogger())
	ctx := context.Background()

	names, err := idx.Names(ctx)
	if err != nil {
		t.Fatalf("Names() error = %v", err)
	}
	if names[1] != "Initech" || names[2] != "Hooli" {
		t.Errorf("Names() = %v", names)
	}

	tags, err := idx.TagsFor(ctx, 42)
	if err != nil {
		t.Fatalf("TagsFor() error = %v", err)
	}
	if len(tags) != 2 || tags[0] != "Hooli" || tags[1] != "Initech" {
		t.Errorf("TagsFor(42) = %v, want sorted [Hooli Initech]", tags)
	}

	t.Run("loaded once per session", func(t *testing.T) {
		idx.Names(ctx)
		idx.ProblemTags(ctx)
		if listCalls != 1 {
			t.Errorf("backend listed %d times, want 1", listCalls)
		}
	})

	t.Run("mutation invalidates", func(t *testing.T) {
		if err := idx.SetProblemTags(ctx, 42, []int{1}); err != nil {
			t.Fatalf("SetProblemTags() error = %v", err)
		}
		idx.Names(ctx)
		if listCalls != 2 {
			t.Errorf("backend listed %d times after invalidation, want 2", listCalls)
		}
	})
}

func TestTagIndex_HasAllTags(t *testing.T) {
	idx := &TagIndex{problemTags: map[int][]int{42: {1, 2}}}

	if !idx.HasAllTags(42, []int{1}) {
		t.Error("HasAllTags(42, [1]) should be true")
	}
	if !idx.HasAllTags(42, []int{1, 2}) {
		t.Error("HasAllTags(42, [1 2]) should be true")
	}
	if idx.HasAllTags(42, []int{1, 3}) {
		t.Error("HasAllTags(42, [1 3]) should be false")
	}
	if idx.HasAllTags(7, []int{1}) {
		t.Error("HasAllTags on unknown problem should be false")
	}
	if !idx.HasAllTags(7, nil) {
		t.Error("empty requirement should always match")
	}
}
