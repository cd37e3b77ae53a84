package main

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// cmdTags manages company tags and per-problem tag assignments
func cmdTags(args []string) error {
	if len(args) < 1 {
		fmt.Println(`Tag commands:

  dsatrack tags list                    List all company tags
  dsatrack tags create <name>           Create a company tag
  dsatrack tags rename <id> <name>      Rename a company tag
  dsatrack tags delete <id>             Delete a company tag
  dsatrack tags show <problem-id>       Show a problem's tags
  dsatrack tags set <problem-id> <tag-ids...>  Replace a problem's tags`)
		return nil
	}

	switch args[0] {
	case "list":
		return cmdTagsList()
	case "create":
		if len(args) < 2 {
			return fmt.Errorf("tag name required")
		}
		return cmdTagsCreate(strings.Join(args[1:], " "))
	case "rename":
		if len(args) < 3 {
			return fmt.Errorf("usage: dsatrack tags rename <id> <name>")
		}
		id, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid tag id: %s", args[1])
		}
		return cmdTagsRename(id, strings.Join(args[2:], " "))
	case "delete":
		if len(args) < 2 {
			return fmt.Errorf("tag id required")
		}
		id, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid tag id: %s", args[1])
		}
		return cmdTagsDelete(id)
	case "show":
		id, err := parseProblemID(args[1:])
		if err != nil {
			return err
		}
		return cmdTagsShow(id)
	case "set":
		if len(args) < 2 {
			return fmt.Errorf("usage: dsatrack tags set <problem-id> <tag-ids...>")
		}
		id, err := parseProblemID(args[1:])
		if err != nil {
			return err
		}
		tagIDs := make([]int, 0, len(args)-2)
		for _, arg := range args[2:] {
			tagID, err := strconv.Atoi(arg)
			if err != nil {
				return fmt.Errorf("invalid tag id: %s", arg)
			}
			tagIDs = append(tagIDs, tagID)
		}
		return cmdTagsSet(id, tagIDs)
	default:
		return fmt.Errorf("unknown tags command: %s", args[0])
	}
}

func cmdTagsList() error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := context.Background()
	names, err := a.tags.Names(ctx)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Println("No company tags yet. Create one with 'dsatrack tags create <name>'.")
		return nil
	}

	problemTags, err := a.tags.ProblemTags(ctx)
	if err != nil {
		return err
	}
	usage := make(map[int]int)
	for _, tagIDs := range problemTags {
		for _, tagID := range tagIDs {
			usage[tagID]++
		}
	}

	ids := make([]int, 0, len(names))
	for id := range names {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return names[ids[i]] < names[ids[j]] })

	fmt.Println("Company Tags")
	fmt.Println("============")
	for _, id := range ids {
		fmt.Printf("  %-4d %-30s %d problems\n", id, names[id], usage[id])
	}
	return nil
}

func cmdTagsCreate(name string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	tag, err := a.client.CreateCompanyTag(context.Background(), name)
	if err != nil {
		return fmt.Errorf("create tag: %w", err)
	}
	a.tags.Invalidate()

	fmt.Printf("✓ Tag %q created (id %d)\n", tag.Name, tag.ID)
	return nil
}

func cmdTagsRename(id int, name string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.client.UpdateCompanyTag(context.Background(), id, name); err != nil {
		return fmt.Errorf("rename tag: %w", err)
	}
	a.tags.Invalidate()

	fmt.Printf("✓ Tag %d renamed to %q\n", id, name)
	return nil
}

func cmdTagsDelete(id int) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.client.DeleteCompanyTag(context.Background(), id); err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	a.tags.Invalidate()

	fmt.Printf("✓ Tag %d deleted\n", id)
	return nil
}

func cmdTagsShow(problemID int) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	names, err := a.tags.TagsFor(context.Background(), problemID)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Printf("Problem %d has no company tags.\n", problemID)
		return nil
	}

	fmt.Printf("Problem %d: %s\n", problemID, strings.Join(names, ", "))
	return nil
}

func cmdTagsSet(problemID int, tagIDs []int) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.tags.SetProblemTags(context.Background(), problemID, tagIDs); err != nil {
		return fmt.Errorf("set problem tags: %w", err)
	}

	if len(tagIDs) == 0 {
		fmt.Printf("✓ Problem %d tags cleared\n", problemID)
	} else {
		fmt.Printf("✓ Problem %d tagged with %d tags\n", problemID, len(tagIDs))
	}
	return nil
}
