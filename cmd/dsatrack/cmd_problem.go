package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dsapatterns/dsatrack/internal/remote"
)

// cmdProblem manages catalog problems
func cmdProblem(args []string) error {
	if len(args) < 1 {
		fmt.Println(`Problem commands:

  dsatrack problem show <id>      Show one problem's details
  dsatrack problem add            Add a problem to the catalog
      --number <n> --title <t> --difficulty <easy|medium|hard>
      --topic <name> [--topic <name> ...] [--subtopic <s>] [--link <url>]
  dsatrack problem remove <id>    Remove a problem from the catalog`)
		return nil
	}

	switch args[0] {
	case "show":
		id, err := parseProblemID(args[1:])
		if err != nil {
			return err
		}
		return cmdProblemShow(id)
	case "add":
		return cmdProblemAdd(args[1:])
	case "remove":
		id, err := parseProblemID(args[1:])
		if err != nil {
			return err
		}
		return cmdProblemRemove(id)
	default:
		return fmt.Errorf("unknown problem command: %s (valid: show, add, remove)", args[0])
	}
}

func cmdProblemShow(id int) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := context.Background()
	p, err := a.client.GetProblem(ctx, id)
	if err != nil {
		return err
	}

	fmt.Printf("#%d %s\n", p.ID, p.Title)
	fmt.Printf("  Difficulty: %s\n", p.Difficulty)
	if len(p.Topics) > 0 {
		fmt.Printf("  Topics:     %s\n", strings.Join(p.Topics, ", "))
	}
	if p.Subtopic != "" {
		fmt.Printf("  Subtopic:   %s\n", p.Subtopic)
	}
	if p.Link != "" {
		fmt.Printf("  Link:       %s\n", p.Link)
	}

	status := "unsolved"
	if a.activity.IsSolved(p.ID) {
		status = "solved"
	}
	if a.progress.InRevision(p.ID) {
		status += ", queued for revision"
	}
	fmt.Printf("  Status:     %s\n", status)

	if tags, err := a.tags.TagsFor(ctx, p.ID); err == nil && len(tags) > 0 {
		fmt.Printf("  Companies:  %s\n", strings.Join(tags, ", "))
	}

	return nil
}

func cmdProblemAdd(args []string) error {
	var p remote.NewProblem
	for i := 0; i < len(args); i++ {
		flag := args[i]
		if i+1 >= len(args) {
			return fmt.Errorf("%s requires a value", flag)
		}
		i++
		value := args[i]

		switch flag {
		case "--number":
			n, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("invalid problem number: %s", value)
			}
			p.Number = n
		case "--title":
			p.Title = value
		case "--difficulty":
			p.Difficulty = value
		case "--topic":
			p.Topics = append(p.Topics, value)
		case "--subtopic":
			p.Subtopic = value
		case "--link":
			p.Link = value
		default:
			return fmt.Errorf("unknown problem add flag: %s", flag)
		}
	}

	if p.Number <= 0 {
		return fmt.Errorf("--number is required and must be positive")
	}
	if p.Title == "" {
		return fmt.Errorf("--title is required")
	}
	if p.Difficulty == "" {
		return fmt.Errorf("--difficulty is required")
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	created, err := a.catalog.CreateProblem(context.Background(), p)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Problem #%d %q added (%s)\n", created.ID, created.Title, created.Difficulty)
	return nil
}

func cmdProblemRemove(id int) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.catalog.DeleteProblem(context.Background(), id); err != nil {
		return err
	}

	fmt.Printf("✓ Problem %d removed from the catalog\n", id)
	return nil
}
