package progress

import (
	"context"
	"errors"

	"github.com/dsapatterns/dsatrack/internal/domain"
)

var errNotImplemented = errors.New("mock: not implemented")

// mockRemote implements Remote for testing
type mockRemote struct {
	markSolvedFn     func(ctx context.Context, problemID int, localDate domain.DateKey) error
	markUnsolvedFn   func(ctx context.Context, problemID int) error
	solvedSetFn      func(ctx context.Context) ([]int, error)
	calendarFn       func(ctx context.Context) (map[domain.DateKey]int, error)
	revisionListFn   func(ctx context.Context) ([]int, error)
	addRevisionFn    func(ctx context.Context, problemID int) error
	removeRevisionFn func(ctx context.Context, problemID int) error
}

func (m *mockRemote) MarkSolved(ctx context.Context, problemID int, localDate domain.DateKey) error {
	if m.markSolvedFn != nil {
		return m.markSolvedFn(ctx, problemID, localDate)
	}
	return nil
}

func (m *mockRemote) MarkUnsolved(ctx context.Context, problemID int) error {
	if m.markUnsolvedFn != nil {
		return m.markUnsolvedFn(ctx, problemID)
	}
	return nil
}

func (m *mockRemote) SolvedSet(ctx context.Context) ([]int, error) {
	if m.solvedSetFn != nil {
		return m.solvedSetFn(ctx)
	}
	return nil, errNotImplemented
}

func (m *mockRemote) Calendar(ctx context.Context) (map[domain.DateKey]int, error) {
	if m.calendarFn != nil {
		return m.calendarFn(ctx)
	}
	return nil, errNotImplemented
}

func (m *mockRemote) RevisionList(ctx context.Context) ([]int, error) {
	if m.revisionListFn != nil {
		return m.revisionListFn(ctx)
	}
	return nil, errNotImplemented
}

func (m *mockRemote) AddRevision(ctx context.Context, problemID int) error {
	if m.addRevisionFn != nil {
		return m.addRevisionFn(ctx, problemID)
	}
	return nil
}

func (m *mockRemote) RemoveRevision(ctx context.Context, problemID int) error {
	if m.removeRevisionFn != nil {
		return m.removeRevisionFn(ctx, problemID)
	}
	return nil
}
