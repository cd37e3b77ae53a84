package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dsapatterns/dsatrack/internal/config"
)

// cmdInit initializes DSATrack for first-time use
func cmdInit() error {
	fmt.Println("DSATrack - First-Time Setup")
	fmt.Println("===========================")
	fmt.Println()

	fmt.Print("Creating ~/.dsatrack directory structure... ")
	dir, err := config.EnsureDir()
	if err != nil {
		return fmt.Errorf("create directories: %w", err)
	}
	fmt.Println("✓")

	configPath := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		fmt.Print("Creating default configuration... ")
		if err := config.Save(config.Default()); err != nil {
			return fmt.Errorf("save config: %w", err)
		}
		fmt.Println("✓")
	} else {
		fmt.Println("Configuration already exists ✓")
	}

	// Load mints and persists a user id on first run
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	fmt.Printf("User ID: %s\n", cfg.API.UserID)

	if cfg.API.Token == "" {
		fmt.Println()
		fmt.Println("No access token configured. Progress syncs under your user id;")
		fmt.Println("run 'dsatrack login' to attach a backend account.")
	}

	fmt.Println()
	fmt.Println("Setup Complete!")
	fmt.Println("===============")
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("  1. dsatrack sync    # Pull your progress from the backend")
	fmt.Println("  2. dsatrack list    # Browse problems by topic")
	fmt.Println("  3. dsatrack solve 1 # Mark your first problem solved")

	return nil
}

// cmdLogin prompts for a backend access token and stores it
func cmdLogin() error {
	fmt.Print("Enter access token: ")
	reader := bufio.NewReader(os.Stdin)
	token, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	token = strings.TrimSpace(token)

	if token == "" {
		return fmt.Errorf("access token cannot be empty")
	}

	if err := config.SaveToken(token); err != nil {
		return fmt.Errorf("save token: %w", err)
	}

	fmt.Println("✓ Token saved")
	return nil
}

// cmdConfig shows current configuration
func cmdConfig() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	fmt.Println("DSATrack Configuration")

	fmt.Println("API:")
	fmt.Printf("  base_url: %s\n", cfg.API.BaseURL)
	fmt.Printf("  user_id:  %s\n", cfg.API.UserID)
	tokenStatus := "✗ (run 'dsatrack login')"
	if cfg.API.Token != "" {
		tokenStatus = "✓"
	}
	fmt.Printf("  token:    %s\n", tokenStatus)

	fmt.Println("\nDisplay:")
	fmt.Printf("  heatmap_days:  %d\n", cfg.Display.HeatmapDays)
	fmt.Printf("  activity_days: %d\n", cfg.Display.ActivityDays)

	fmt.Printf("\nLog level: %s\n", cfg.LogLevel)

	dir, _ := config.Dir()
	fmt.Printf("Config path: %s/config.yaml\n", dir)

	return nil
}
