package activity

import (
	"errors"
	"log/slog"
	"sort"
	"time"

	"github.com/dsapatterns/dsatrack/internal/domain"
	"github.com/dsapatterns/dsatrack/internal/storage/local"
)

const (
	keySolved   = "solvedProblems"
	keyActivity = "activityDates"
)

// Store tracks which problems were solved on which calendar days. State
// lives in memory and is persisted to the local blob store on every
// mutation; a failed write is reported but never loses the in-memory
// state, which stays authoritative for the session.
type Store struct {
	store *local.Store
	log   *slog.Logger

	// dates maps a calendar day to the problem ids solved that day.
	// Invariant: no key maps to an empty bucket.
	dates  map[domain.DateKey][]int
	solved map[int]struct{}

	// remote holds the backend's calendar counts once reconciled.
	// While set it fully replaces locally derived counts, so a date
	// can never be double counted from both sources.
	remote map[domain.DateKey]int
}

// NewStore creates an activity store backed by the given blob store,
// loading any persisted snapshot. A corrupt snapshot is logged and
// discarded rather than failing startup.
func NewStore(store *local.Store, log *slog.Logger) *Store {
	s := &Store{
		store:  store,
		log:    log,
		dates:  make(map[domain.DateKey][]int),
		solved: make(map[int]struct{}),
	}

	var solved []int
	if err := store.Load(keySolved, &solved); err != nil && !errors.Is(err, local.ErrNotFound) {
		log.Warn("discarding unreadable solved snapshot", "error", err)
	}
	for _, id := range solved {
		s.solved[id] = struct{}{}
	}

	var dates map[domain.DateKey][]int
	if err := store.Load(keyActivity, &dates); err != nil && !errors.Is(err, local.ErrNotFound) {
		log.Warn("discarding unreadable activity snapshot", "error", err)
	}
	for date, ids := range dates {
		if len(ids) > 0 {
			s.dates[date] = ids
		}
	}

	return s
}

// RecordSolved marks a problem solved on the given day. If the problem is
// already recorded under some date the activity entry is left alone, so
// re-solving never moves a problem to a new day. Returns whether anything
// changed; a persistence failure is returned alongside but leaves the
// in-memory state applied.
func (s *Store) RecordSolved(problemID int, day time.Time) (bool, error) {
	changed := false

	if _, ok := s.solved[problemID]; !ok {
		s.solved[problemID] = struct{}{}
		changed = true
	}

	if !s.recorded(problemID) {
		key := domain.NewDateKey(day)
		s.dates[key] = append(s.dates[key], problemID)
		changed = true
	}

	if !changed {
		return false, nil
	}
	return true, s.persist()
}

// RecordUnsolved removes a problem from the solved set and from every date
// bucket it appears in, dropping buckets that become empty. Unsolving a
// problem that was never tracked is a no-op.
func (s *Store) RecordUnsolved(problemID int) (bool, error) {
	changed := false

	if _, ok := s.solved[problemID]; ok {
		delete(s.solved, problemID)
		changed = true
	}

	if s.removeFromBuckets(problemID) {
		changed = true
	}

	if !changed {
		return false, nil
	}
	return true, s.persist()
}

// ReconcileRemote installs the backend's calendar counts as the effective
// activity view. Remote wins entirely over local reconstruction; entries
// with non-positive counts are dropped.
func (s *Store) ReconcileRemote(counts map[domain.DateKey]int) {
	remote := make(map[domain.DateKey]int, len(counts))
	for date, count := range counts {
		if count > 0 {
			remote[date] = count
		}
	}
	s.remote = remote
}

// ClearRemote drops the reconciled snapshot, falling back to counts
// derived from the local buckets.
func (s *Store) ClearRemote() {
	s.remote = nil
}

// Reconciled reports whether a remote calendar snapshot is in effect.
func (s *Store) Reconciled() bool {
	return s.remote != nil
}

// CleanupOrphans removes bucket entries for problems no longer in the
// solved set and drops buckets left empty. Calling it twice in a row
// never reports a change the second time.
func (s *Store) CleanupOrphans() (bool, error) {
	changed := false

	for date, ids := range s.dates {
		kept := ids[:0]
		for _, id := range ids {
			if _, ok := s.solved[id]; ok {
				kept = append(kept, id)
			}
		}
		if len(kept) != len(ids) {
			changed = true
		}
		if len(kept) == 0 {
			delete(s.dates, date)
		} else {
			s.dates[date] = kept
		}
	}

	if !changed {
		return false, nil
	}
	return true, s.persist()
}

// ReplaceSolved replaces the solved set with the authoritative remote
// membership and persists.
func (s *Store) ReplaceSolved(ids []int) error {
	s.solved = make(map[int]struct{}, len(ids))
	for _, id := range ids {
		s.solved[id] = struct{}{}
	}
	return s.persist()
}

// IsSolved reports solved-set membership.
func (s *Store) IsSolved(problemID int) bool {
	_, ok := s.solved[problemID]
	return ok
}

// Solved returns the solved problem ids in ascending order.
func (s *Store) Solved() []int {
	ids := make([]int, 0, len(s.solved))
	for id := range s.solved {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// SolvedCount returns the size of the solved set.
func (s *Store) SolvedCount() int {
	return len(s.solved)
}

// Counts returns the effective per-day solve counts: the reconciled
// remote snapshot when one is in effect, otherwise counts derived from
// the local buckets. The two sources are never merged.
func (s *Store) Counts() map[domain.DateKey]int {
	if s.remote != nil {
		counts := make(map[domain.DateKey]int, len(s.remote))
		for date, count := range s.remote {
			counts[date] = count
		}
		return counts
	}

	counts := make(map[domain.DateKey]int, len(s.dates))
	for date, ids := range s.dates {
		counts[date] = len(ids)
	}
	return counts
}

func (s *Store) recorded(problemID int) bool {
	for _, ids := range s.dates {
		for _, id := range ids {
			if id == problemID {
				return true
			}
		}
	}
	return false
}

func (s *Store) removeFromBuckets(problemID int) bool {
	changed := false
	for date, ids := range s.dates {
		kept := ids[:0]
		for _, id := range ids {
			if id != problemID {
				kept = append(kept, id)
			}
		}
		if len(kept) != len(ids) {
			changed = true
		}
		if len(kept) == 0 {
			delete(s.dates, date)
		} else {
			s.dates[date] = kept
		}
	}
	return changed
}

func (s *Store) persist() error {
	if err := s.store.Save(keySolved, s.Solved()); err != nil {
		s.log.Warn("persist solved set failed", "error", err)
		return err
	}
	if err := s.store.Save(keyActivity, s.dates); err != nil {
		s.log.Warn("persist activity dates failed", "error", err)
		return err
	}
	return nil
}
