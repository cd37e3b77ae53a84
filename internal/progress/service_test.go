package progress

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/dsapatterns/dsatrack/internal/activity"
	"github.com/dsapatterns/dsatrack/internal/domain"
	"github.com/dsapatterns/dsatrack/internal/storage/local"
)

func newTestService(t *testing.T, remote Remote) *Service {
	t.Helper()
	blob, err := local.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(activity.NewStore(blob, log), remote, blob, log)
}

func mar(day int) time.Time {
	return time.Date(2024, 3, day, 12, 0, 0, 0, time.Local)
}

func TestService_SetSolved(t *testing.T) {
	var gotID int
	var gotDate domain.DateKey
	remote := &mockRemote{
		markSolvedFn: func(ctx context.Context, problemID int, localDate domain.DateKey) error {
			gotID = problemID
			gotDate = localDate
			return nil
		},
	}
	s := newTestService(t, remote)

	result := s.SetSolved(context.Background(), 42, mar(1))
	if !result.Ok() || !result.Changed {
		t.Fatalf("SetSolved() result = %+v", result)
	}
	if gotID != 42 {
		t.Errorf("backend got problem %d, want 42", gotID)
	}
	if gotDate != "2024-03-01" {
		t.Errorf("backend got date %s, want 2024-03-01 (caller's local date)", gotDate)
	}
	if !s.Activity().IsSolved(42) {
		t.Error("problem 42 should be solved locally")
	}

	t.Run("repeat is a no-op without backend call", func(t *testing.T) {
		gotID = 0
		result := s.SetSolved(context.Background(), 42, mar(2))
		if result.Changed {
			t.Error("repeat SetSolved should not report a change")
		}
		if gotID != 0 {
			t.Error("repeat SetSolved should not hit the backend")
		}
	})
}

func TestService_SetSolved_RemoteFailureKeepsLocal(t *testing.T) {
	remoteErr := errors.New("backend down")
	remote := &mockRemote{
		markSolvedFn: func(ctx context.Context, problemID int, localDate domain.DateKey) error {
			return remoteErr
		},
	}
	s := newTestService(t, remote)

	result := s.SetSolved(context.Background(), 42, mar(1))
	if !result.Changed {
		t.Error("local change should be applied")
	}
	if !errors.Is(result.RemoteErr, remoteErr) {
		t.Errorf("RemoteErr = %v, want wrapped backend error", result.RemoteErr)
	}
	// Local-first: the optimistic state survives the failure.
	if !s.Activity().IsSolved(42) {
		t.Error("optimistic solved state must be retained on remote failure")
	}
	if s.Activity().Counts()["2024-03-01"] != 1 {
		t.Error("optimistic activity entry must be retained on remote failure")
	}
}

func TestService_SolveThenUnsolveLeavesNoTrace(t *testing.T) {
	s := newTestService(t, &mockRemote{})

	s.SetSolved(context.Background(), 42, mar(1))
	result := s.SetUnsolved(context.Background(), 42)
	if !result.Ok() || !result.Changed {
		t.Fatalf("SetUnsolved() result = %+v", result)
	}

	if s.Activity().IsSolved(42) {
		t.Error("problem 42 should not be solved")
	}
	if _, ok := s.Activity().Counts()["2024-03-01"]; ok {
		t.Error("no activity entry should remain for 2024-03-01")
	}
}

func TestService_ToggleRevision_ReadAfterWrite(t *testing.T) {
	// The server's post-toggle list includes an id added from another
	// device; the local set must be replaced wholesale, not just flipped.
	remote := &mockRemote{
		revisionListFn: func(ctx context.Context) ([]int, error) {
			return []int{7, 99}, nil
		},
	}
	s := newTestService(t, remote)

	nowIn, result := s.ToggleRevision(context.Background(), 7)
	if !result.Ok() {
		t.Fatalf("ToggleRevision() result = %+v", result)
	}
	if !nowIn {
		t.Error("problem 7 should be in revision")
	}
	if !s.InRevision(99) {
		t.Error("server-side addition 99 should be picked up by read-after-write")
	}

	got := s.Revision()
	if len(got) != 2 || got[0] != 7 || got[1] != 99 {
		t.Errorf("Revision() = %v, want [7 99]", got)
	}
}

func TestService_ToggleRevision_RemoteFailureKeepsFlip(t *testing.T) {
	remoteErr := errors.New("backend down")
	remote := &mockRemote{
		addRevisionFn: func(ctx context.Context, problemID int) error {
			return remoteErr
		},
	}
	s := newTestService(t, remote)

	nowIn, result := s.ToggleRevision(context.Background(), 7)
	if !nowIn {
		t.Error("optimistic flip should be retained")
	}
	if !errors.Is(result.RemoteErr, remoteErr) {
		t.Errorf("RemoteErr = %v, want backend error", result.RemoteErr)
	}
	if !s.InRevision(7) {
		t.Error("problem 7 should remain in revision locally")
	}
}

func TestService_RefreshSolved_ReplacesAndPrunes(t *testing.T) {
	remote := &mockRemote{
		solvedSetFn: func(ctx context.Context) ([]int, error) {
			return []int{2}, nil
		},
	}
	s := newTestService(t, remote)

	// Local optimistic state the backend doesn't know about.
	s.SetSolved(context.Background(), 1, mar(1))
	s.SetSolved(context.Background(), 2, mar(1))

	if err := s.RefreshSolved(context.Background()); err != nil {
		t.Fatalf("RefreshSolved() error = %v", err)
	}

	if s.Activity().IsSolved(1) {
		t.Error("problem 1 should be dropped: remote is authoritative")
	}
	if !s.Activity().IsSolved(2) {
		t.Error("problem 2 should remain solved")
	}
	if got := s.Activity().Counts()["2024-03-01"]; got != 1 {
		t.Errorf("count[2024-03-01] = %d, want 1 after orphan pruning", got)
	}
}

func TestService_RefreshCalendar(t *testing.T) {
	remote := &mockRemote{
		calendarFn: func(ctx context.Context) (map[domain.DateKey]int, error) {
			return map[domain.DateKey]int{"2024-03-01": 5}, nil
		},
	}
	s := newTestService(t, remote)

	// Local reconstruction says 1; remote aggregate says 5.
	s.SetSolved(context.Background(), 1, mar(1))

	if err := s.RefreshCalendar(context.Background()); err != nil {
		t.Fatalf("RefreshCalendar() error = %v", err)
	}

	if got := s.Activity().Counts()["2024-03-01"]; got != 5 {
		t.Errorf("count = %d, want 5 (remote wins, never merged)", got)
	}
}

func TestService_RefreshCalendar_FailureFallsBackToLocal(t *testing.T) {
	remote := &mockRemote{
		calendarFn: func(ctx context.Context) (map[domain.DateKey]int, error) {
			return nil, errors.New("backend down")
		},
	}
	s := newTestService(t, remote)

	s.SetSolved(context.Background(), 1, mar(1))

	if err := s.RefreshCalendar(context.Background()); err == nil {
		t.Fatal("RefreshCalendar() should report the failure")
	}

	if got := s.Activity().Counts()["2024-03-01"]; got != 1 {
		t.Errorf("count = %d, want 1 (local view retained)", got)
	}
}

func TestService_RevisionPersistsAcrossRestart(t *testing.T) {
	blob, err := local.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	remote := &mockRemote{
		revisionListFn: func(ctx context.Context) ([]int, error) {
			return []int{7}, nil
		},
	}

	s := NewService(activity.NewStore(blob, log), remote, blob, log)
	s.ToggleRevision(context.Background(), 7)

	restarted := NewService(activity.NewStore(blob, log), remote, blob, log)
	if !restarted.InRevision(7) {
		t.Error("revision set should survive restart")
	}
}
