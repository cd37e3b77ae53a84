package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Config holds the tracker client configuration.
type Config struct {
	API      APIConfig     `yaml:"api"`
	Display  DisplayConfig `yaml:"display"`
	LogLevel string        `yaml:"log_level"`
}

// APIConfig holds backend connection settings.
type APIConfig struct {
	BaseURL string `yaml:"base_url"`
	// UserID identifies this user against the backend when no bearer
	// token is configured. Generated on first run.
	UserID string `yaml:"user_id"`
	// Token is loaded from secrets.yaml, never from config.yaml.
	Token string `yaml:"-"`
}

// DisplayConfig holds terminal rendering settings.
type DisplayConfig struct {
	HeatmapDays  int `yaml:"heatmap_days"`
	ActivityDays int `yaml:"activity_days"`
}

// secretsConfig holds the access token loaded from secrets.yaml.
type secretsConfig struct {
	AccessToken string `yaml:"access_token"`
}

// Dir returns the path to ~/.dsatrack
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".dsatrack"), nil
}

// EnsureDir creates ~/.dsatrack and its subdirectories if they don't exist.
func EnsureDir() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}

	subdirs := []string{
		"",
		"data",
		"logs",
	}

	for _, subdir := range subdirs {
		path := filepath.Join(dir, subdir)
		if err := os.MkdirAll(path, 0755); err != nil {
			return "", fmt.Errorf("create dir %s: %w", path, err)
		}
	}

	return dir, nil
}

// DataDir returns the directory holding the local progress cache.
func DataDir() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "data"), nil
}

// Default returns sensible defaults for a fresh install.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "https://dsa-patterns-backend.onrender.com",
		},
		Display: DisplayConfig{
			HeatmapDays:  371,
			ActivityDays: 7,
		},
		LogLevel: "info",
	}
}

// Load reads configuration from ~/.dsatrack/config.yaml, falling back to
// defaults when the file doesn't exist. A user id is minted on first load.
func Load() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	return LoadFrom(dir)
}

// LoadFrom reads configuration from the given directory.
func LoadFrom(dir string) (*Config, error) {
	cfg := Default()

	configPath := filepath.Join(dir, "config.yaml")
	if data, err := os.ReadFile(configPath); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := loadSecrets(dir, cfg); err != nil {
		return nil, fmt.Errorf("load secrets: %w", err)
	}

	if cfg.API.UserID == "" {
		cfg.API.UserID = "user_" + uuid.NewString()
		if err := SaveTo(dir, cfg); err != nil {
			return nil, fmt.Errorf("persist generated user id: %w", err)
		}
	}

	return cfg, nil
}

// loadSecrets loads the access token from secrets.yaml when present.
func loadSecrets(dir string, cfg *Config) error {
	secretsPath := filepath.Join(dir, "secrets.yaml")

	data, err := os.ReadFile(secretsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read secrets: %w", err)
	}

	var secrets secretsConfig
	if err := yaml.Unmarshal(data, &secrets); err != nil {
		return fmt.Errorf("parse secrets: %w", err)
	}

	cfg.API.Token = secrets.AccessToken
	return nil
}

// Save writes configuration to ~/.dsatrack/config.yaml.
func Save(cfg *Config) error {
	dir, err := EnsureDir()
	if err != nil {
		return err
	}
	return SaveTo(dir, cfg)
}

// SaveTo writes configuration to the given directory.
func SaveTo(dir string, cfg *Config) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	configPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}

// SaveToken writes the access token to ~/.dsatrack/secrets.yaml.
func SaveToken(token string) error {
	dir, err := EnsureDir()
	if err != nil {
		return err
	}
	return SaveTokenTo(dir, token)
}

// SaveTokenTo writes the access token to secrets.yaml in the given directory.
func SaveTokenTo(dir, token string) error {
	data, err := yaml.Marshal(secretsConfig{AccessToken: token})
	if err != nil {
		return fmt.Errorf("marshal secrets: %w", err)
	}

	secretsPath := filepath.Join(dir, "secrets.yaml")

	// Owner read/write only
	if err := os.WriteFile(secretsPath, data, 0600); err != nil {
		return fmt.Errorf("write secrets: %w", err)
	}

	return nil
}
