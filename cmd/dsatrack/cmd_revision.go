package main

import (
	"context"
	"fmt"
)

// cmdRevision manages the revision (review-later) list
func cmdRevision(args []string) error {
	if len(args) < 1 {
		args = []string{"list"}
	}

	switch args[0] {
	case "list":
		return cmdRevisionList()
	case "add", "remove", "toggle":
		id, err := parseProblemID(args[1:])
		if err != nil {
			return err
		}
		return cmdRevisionToggle(args[0], id)
	default:
		return fmt.Errorf("unknown revision command: %s (valid: list, add, remove, toggle)", args[0])
	}
}

func cmdRevisionList() error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ids := a.progress.Revision()
	if len(ids) == 0 {
		fmt.Println("Revision list is empty. Add problems with 'dsatrack revision add <id>'.")
		return nil
	}

	// Titles come from the catalog when it is reachable or cached
	titles := make(map[int]string)
	if problems, err := a.catalog.Problems(context.Background()); err == nil {
		for _, p := range problems {
			titles[p.ID] = p.Title
		}
	}

	fmt.Println("Revision List")
	fmt.Println("=============")
	for _, id := range ids {
		if title, ok := titles[id]; ok {
			fmt.Printf("  #%-4d %s\n", id, title)
		} else {
			fmt.Printf("  #%-4d\n", id)
		}
	}
	fmt.Printf("\n%d problems queued for review\n", len(ids))
	return nil
}

func cmdRevisionToggle(verb string, id int) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	inList := a.progress.InRevision(id)
	if verb == "add" && inList {
		fmt.Printf("Problem %d is already on the revision list.\n", id)
		return nil
	}
	if verb == "remove" && !inList {
		fmt.Printf("Problem %d is not on the revision list.\n", id)
		return nil
	}

	nowIn, result := a.progress.ToggleRevision(context.Background(), id)
	if nowIn {
		fmt.Printf("✓ Problem %d added to revision list\n", id)
	} else {
		fmt.Printf("✓ Problem %d removed from revision list\n", id)
	}
	reportResult(result)
	return nil
}
