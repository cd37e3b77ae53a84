package progress

import (
	"context"

	"github.com/dsapatterns/dsatrack/internal/domain"
)

// Remote is the backend surface the sync service depends on.
// *remote.Client satisfies it; tests supply a mock.
type Remote interface {
	MarkSolved(ctx context.Context, problemID int, localDate domain.DateKey) error
	MarkUnsolved(ctx context.Context, problemID int) error
	SolvedSet(ctx context.Context) ([]int, error)
	Calendar(ctx context.Context) (map[domain.DateKey]int, error)
	RevisionList(ctx context.Context) ([]int, error)
	AddRevision(ctx context.Context, problemID int) error
	RemoveRevision(ctx context.Context, problemID int) error
}
