package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/dsapatterns/dsatrack/internal/progress"
)

// cmdSolve marks a problem solved on today's local date
func cmdSolve(args []string) error {
	id, err := parseProblemID(args)
	if err != nil {
		return err
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	result := a.progress.SetSolved(context.Background(), id, time.Now())
	if !result.Changed {
		fmt.Printf("Problem %d is already marked solved.\n", id)
		return nil
	}

	fmt.Printf("✓ Problem %d marked solved (%d total)\n", id, a.activity.SolvedCount())
	reportResult(result)
	return nil
}

// cmdUnsolve removes a problem from the solved set
func cmdUnsolve(args []string) error {
	id, err := parseProblemID(args)
	if err != nil {
		return err
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	result := a.progress.SetUnsolved(context.Background(), id)
	if !result.Changed {
		fmt.Printf("Problem %d was not marked solved.\n", id)
		return nil
	}

	fmt.Printf("✓ Problem %d unmarked (%d total)\n", id, a.activity.SolvedCount())
	reportResult(result)
	return nil
}

func parseProblemID(args []string) (int, error) {
	if len(args) < 1 {
		return 0, fmt.Errorf("problem id required")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid problem id: %s", args[0])
	}
	return id, nil
}

// reportResult surfaces partial failures of an optimistic mutation. The
// local change is already applied either way.
func reportResult(result progress.Result) {
	if result.RemoteErr != nil {
		fmt.Println("  ⚠ Backend unreachable; change kept locally and visible on next sync.")
	}
	if result.PersistErr != nil {
		fmt.Println("  ⚠ Local save failed; change holds for this session only.")
	}
}
