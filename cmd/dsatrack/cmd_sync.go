package main

import (
	"context"
	"fmt"
)

// cmdSync pulls the authoritative state from the backend
func cmdSync() error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := context.Background()
	failures := 0

	fmt.Print("Syncing solved set...    ")
	if err := a.progress.RefreshSolved(ctx); err != nil {
		fmt.Printf("✗ %v\n", err)
		failures++
	} else {
		fmt.Printf("✓ %d problems\n", a.activity.SolvedCount())
	}

	fmt.Print("Syncing revision list... ")
	if err := a.progress.RefreshRevision(ctx); err != nil {
		fmt.Printf("✗ %v\n", err)
		failures++
	} else {
		fmt.Printf("✓ %d problems\n", len(a.progress.Revision()))
	}

	fmt.Print("Syncing calendar...      ")
	if err := a.progress.RefreshCalendar(ctx); err != nil {
		fmt.Printf("✗ %v\n", err)
		failures++
	} else {
		fmt.Printf("✓ %d active days\n", len(a.activity.Counts()))
	}

	fmt.Print("Refreshing catalog...    ")
	if problems, err := a.catalog.Refresh(ctx); err != nil {
		fmt.Printf("✗ %v\n", err)
		failures++
	} else {
		fmt.Printf("✓ %d problems\n", len(problems))
	}

	fmt.Print("Refreshing tags...       ")
	a.tags.Invalidate()
	if names, err := a.tags.Names(ctx); err != nil {
		fmt.Printf("✗ %v\n", err)
		failures++
	} else {
		fmt.Printf("✓ %d tags\n", len(names))
	}

	if failures > 0 {
		return fmt.Errorf("%d sync steps failed; local state is unchanged for those", failures)
	}

	fmt.Println("\nSync complete.")
	return nil
}
