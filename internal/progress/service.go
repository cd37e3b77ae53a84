package progress

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/dsapatterns/dsatrack/internal/activity"
	"github.com/dsapatterns/dsatrack/internal/domain"
	"github.com/dsapatterns/dsatrack/internal/storage/local"
)

const keyRevision = "revisionProblems"

// Result reports the outcome of an optimistic mutation. The local apply
// always takes effect; remote and persistence failures are carried here
// instead of being raised, so a disconnected client still reflects the
// user's action.
type Result struct {
	// Changed reports whether the local state actually changed.
	Changed bool
	// RemoteErr is set when the backend call failed. Local state is
	// retained, not rolled back.
	RemoteErr error
	// PersistErr is set when writing the local snapshot failed. The
	// in-memory state remains authoritative for the session.
	PersistErr error
}

// Ok reports whether the mutation fully succeeded.
func (r Result) Ok() bool {
	return r.RemoteErr == nil && r.PersistErr == nil
}

// Service keeps the solved set, revision set and activity calendar
// consistent between the local optimistic state and the remote source
// of truth.
type Service struct {
	activity *activity.Store
	remote   Remote
	store    *local.Store
	log      *slog.Logger

	revision map[int]struct{}
}

// NewService creates a sync service, loading the persisted revision set.
func NewService(act *activity.Store, remote Remote, store *local.Store, log *slog.Logger) *Service {
	s := &Service{
		activity: act,
		remote:   remote,
		store:    store,
		log:      log,
		revision: make(map[int]struct{}),
	}

	var ids []int
	if err := store.Load(keyRevision, &ids); err != nil && !errors.Is(err, local.ErrNotFound) {
		log.Warn("discarding unreadable revision snapshot", "error", err)
	}
	for _, id := range ids {
		s.revision[id] = struct{}{}
	}

	return s
}

// Activity exposes the underlying activity store for read paths.
func (s *Service) Activity() *activity.Store {
	return s.activity
}

// SetSolved marks a problem solved on the caller's local calendar day.
// The local state is updated first; the backend call follows and its
// failure is reported, not rolled back.
func (s *Service) SetSolved(ctx context.Context, problemID int, day time.Time) Result {
	changed, persistErr := s.activity.RecordSolved(problemID, day)
	result := Result{Changed: changed, PersistErr: persistErr}
	if !changed {
		return result
	}

	if err := s.remote.MarkSolved(ctx, problemID, domain.NewDateKey(day)); err != nil {
		s.log.Warn("mark solved failed on backend, keeping local state",
			"problem", problemID, "error", err)
		result.RemoteErr = err
	}
	return result
}

// SetUnsolved removes a problem from the solved set and its activity
// entries, mirroring SetSolved's optimistic semantics.
func (s *Service) SetUnsolved(ctx context.Context, problemID int) Result {
	changed, persistErr := s.activity.RecordUnsolved(problemID)
	result := Result{Changed: changed, PersistErr: persistErr}
	if !changed {
		return result
	}

	if err := s.remote.MarkUnsolved(ctx, problemID); err != nil {
		s.log.Warn("mark unsolved failed on backend, keeping local state",
			"problem", problemID, "error", err)
		result.RemoteErr = err
	}
	return result
}

// ToggleRevision flips a problem's revision membership. After a
// successful backend call the local set is replaced wholesale with the
// server's list (read-after-write) so concurrent edits from other
// devices can't drift it. Returns the resulting membership.
func (s *Service) ToggleRevision(ctx context.Context, problemID int) (bool, Result) {
	_, wasIn := s.revision[problemID]
	if wasIn {
		delete(s.revision, problemID)
	} else {
		s.revision[problemID] = struct{}{}
	}
	result := Result{Changed: true, PersistErr: s.persistRevision()}

	var err error
	if wasIn {
		err = s.remote.RemoveRevision(ctx, problemID)
	} else {
		err = s.remote.AddRevision(ctx, problemID)
	}
	if err != nil {
		s.log.Warn("revision toggle failed on backend, keeping local state",
			"problem", problemID, "error", err)
		result.RemoteErr = err
		return !wasIn, result
	}

	ids, err := s.remote.RevisionList(ctx)
	if err != nil {
		s.log.Warn("revision list refresh failed after toggle", "error", err)
		result.RemoteErr = err
		return !wasIn, result
	}

	s.revision = make(map[int]struct{}, len(ids))
	for _, id := range ids {
		s.revision[id] = struct{}{}
	}
	result.PersistErr = s.persistRevision()

	_, nowIn := s.revision[problemID]
	return nowIn, result
}

// RefreshSolved replaces the local solved set with the backend's and
// prunes activity entries orphaned by the replacement.
func (s *Service) RefreshSolved(ctx context.Context) error {
	ids, err := s.remote.SolvedSet(ctx)
	if err != nil {
		return fmt.Errorf("refresh solved set: %w", err)
	}

	if err := s.activity.ReplaceSolved(ids); err != nil {
		return err
	}
	_, err = s.activity.CleanupOrphans()
	return err
}

// RefreshRevision replaces the local revision set with the backend's.
func (s *Service) RefreshRevision(ctx context.Context) error {
	ids, err := s.remote.RevisionList(ctx)
	if err != nil {
		return fmt.Errorf("refresh revision set: %w", err)
	}

	s.revision = make(map[int]struct{}, len(ids))
	for _, id := range ids {
		s.revision[id] = struct{}{}
	}
	return s.persistRevision()
}

// RefreshCalendar installs the backend's calendar counts as the
// effective activity view. On failure the previous view, local or
// remote, stays in effect.
func (s *Service) RefreshCalendar(ctx context.Context) error {
	counts, err := s.remote.Calendar(ctx)
	if err != nil {
		s.log.Warn("calendar refresh failed, using local activity", "error", err)
		return fmt.Errorf("refresh calendar: %w", err)
	}

	s.activity.ReconcileRemote(counts)
	return nil
}

// InRevision reports revision-set membership.
func (s *Service) InRevision(problemID int) bool {
	_, ok := s.revision[problemID]
	return ok
}

// Revision returns the revision problem ids in ascending order.
func (s *Service) Revision() []int {
	ids := make([]int, 0, len(s.revision))
	for id := range s.revision {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func (s *Service) persistRevision() error {
	if err := s.store.Save(keyRevision, s.Revision()); err != nil {
		s.log.Warn("persist revision set failed", "error", err)
		return err
	}
	return nil
}
