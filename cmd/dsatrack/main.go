package main

import (
	"fmt"
	"os"
	"strings"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "init":
		err = cmdInit()
	case "login":
		err = cmdLogin()
	case "config":
		err = cmdConfig()
	case "list":
		err = cmdList(os.Args[2:])
	case "problem":
		err = cmdProblem(os.Args[2:])
	case "solve":
		err = cmdSolve(os.Args[2:])
	case "unsolve":
		err = cmdUnsolve(os.Args[2:])
	case "revision":
		err = cmdRevision(os.Args[2:])
	case "tags":
		err = cmdTags(os.Args[2:])
	case "stats":
		err = cmdStats()
	case "streak":
		err = cmdStreak()
	case "heatmap":
		err = cmdHeatmap(os.Args[2:])
	case "sync":
		err = cmdSync()
	case "help", "-h", "--help":
		printUsage()
	case "version", "-v", "--version":
		fmt.Printf("dsatrack %s\n", Version)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`DSATrack - Coding Practice Progress Tracker

Usage:
  dsatrack <command> [arguments]

Setup Commands:
  init            Initialize DSATrack (first-time setup)
  login           Save a backend access token
  config          Show current configuration

Progress Commands:
  list            List problems grouped by topic
  problem         Show, add or remove catalog problems
  solve <id>      Mark a problem solved today
  unsolve <id>    Remove a problem from the solved set
  revision        Manage the revision (review-later) list
  tags            Manage company tags and problem tag filters

Analytics Commands:
  stats           Show solve progress by difficulty
  streak          Show current and longest daily streaks
  heatmap         Show the daily activity heatmap

Sync Commands:
  sync            Pull solved set, revision list and calendar from the backend

Other:
  help            Show this help message
  version         Show version information

Examples:
  dsatrack solve 42               # Mark problem 42 solved today
  dsatrack list --unsolved        # List problems left to solve
  dsatrack list --tag Google      # Filter by company tag
  dsatrack list --topic Graphs    # Filter by topic
  dsatrack revision add 42        # Queue problem 42 for review
  dsatrack heatmap --days 90      # Activity for the last 90 days`)
}

// renderProgressBar creates a visual progress bar
func renderProgressBar(value float64, width int) string {
	filled := int(value * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	empty := width - filled

	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", empty) + "]"
}
