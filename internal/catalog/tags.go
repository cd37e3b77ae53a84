package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/dsapatterns/dsatrack/internal/remote"
	"github.com/dsapatterns/dsatrack/internal/storage/local"
)

const keyTags = "companyTags"

// TagRemote is the backend surface the tag index depends on.
type TagRemote interface {
	ListCompanyTags(ctx context.Context) ([]remote.CompanyTag, error)
	AllProblemTags(ctx context.Context) (map[int][]int, error)
	ProblemTags(ctx context.Context, problemID int) ([]int, error)
	SetProblemTags(ctx context.Context, problemID int, tagIDs []int) error
}

// tagSnapshot is the persisted shape of the tag index.
type tagSnapshot struct {
	Names       map[int]string `json:"names"`
	ProblemTags map[int][]int  `json:"problem_tags"`
}

// TagIndex caches company tags and the problem-to-tag mapping. The
// cache is loaded once per session and invalidated only by explicit
// tag mutations.
type TagIndex struct {
	remote TagRemote
	store  *local.Store
	log    *slog.Logger

	loaded      bool
	names       map[int]string
	problemTags map[int][]int
}

// NewTagIndex creates a company-tag index.
func NewTagIndex(remote TagRemote, store *local.Store, log *slog.Logger) *TagIndex {
	return &TagIndex{remote: remote, store: store, log: log}
}

// Names returns the tag-id to tag-name mapping.
func (t *TagIndex) Names(ctx context.Context) (map[int]string, error) {
	if err := t.ensure(ctx); err != nil {
		return nil, err
	}
	return t.names, nil
}

// ProblemTags returns the problem-id to tag-ids mapping.
func (t *TagIndex) ProblemTags(ctx context.Context) (map[int][]int, error) {
	if err := t.ensure(ctx); err != nil {
		return nil, err
	}
	return t.problemTags, nil
}

// TagsFor returns the tag names attached to one problem, sorted.
func (t *TagIndex) TagsFor(ctx context.Context, problemID int) ([]string, error) {
	if err := t.ensure(ctx); err != nil {
		return nil, err
	}

	var names []string
	for _, tagID := range t.problemTags[problemID] {
		if name, ok := t.names[tagID]; ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// SetProblemTags replaces a problem's tags on the backend and
// invalidates the cache.
func (t *TagIndex) SetProblemTags(ctx context.Context, problemID int, tagIDs []int) error {
	if err := t.remote.SetProblemTags(ctx, problemID, tagIDs); err != nil {
		return err
	}
	t.Invalidate()
	return nil
}

// Invalidate drops the cached index; the next read reloads it.
func (t *TagIndex) Invalidate() {
	t.loaded = false
	t.names = nil
	t.problemTags = nil
}

// HasAllTags reports whether the problem carries every one of the given
// tag ids (AND semantics, used by the tag filter).
func (t *TagIndex) HasAllTags(problemID int, required []int) bool {
	attached := make(map[int]bool, len(t.problemTags[problemID]))
	for _, id := range t.problemTags[problemID] {
		attached[id] = true
	}
	for _, id := range required {
		if !attached[id] {
			return false
		}
	}
	return true
}

func (t *TagIndex) ensure(ctx context.Context) error {
	if t.loaded {
		return nil
	}

	tags, err := t.remote.ListCompanyTags(ctx)
	if err != nil {
		t.log.Warn("company tags fetch failed, using local snapshot", "error", err)
		return t.loadSnapshot(err)
	}

	problemTags, err := t.remote.AllProblemTags(ctx)
	if err != nil {
		t.log.Warn("problem tags fetch failed, using local snapshot", "error", err)
		return t.loadSnapshot(err)
	}

	t.names = make(map[int]string, len(tags))
	for _, tag := range tags {
		t.names[tag.ID] = tag.Name
	}
	t.problemTags = problemTags
	t.loaded = true

	snapshot := tagSnapshot{Names: t.names, ProblemTags: t.problemTags}
	if err := t.store.Save(keyTags, snapshot); err != nil {
		t.log.Warn("persist tag snapshot failed", "error", err)
	}
	return nil
}

func (t *TagIndex) loadSnapshot(fetchErr error) error {
	var snapshot tagSnapshot
	if err := t.store.Load(keyTags, &snapshot); err != nil {
		if errors.Is(err, local.ErrNotFound) {
			return fmt.Errorf("company tags unavailable: %w", fetchErr)
		}
		return fmt.Errorf("load tag snapshot: %w", err)
	}
	t.names = snapshot.Names
	t.problemTags = snapshot.ProblemTags
	t.loaded = true
	return nil
}
