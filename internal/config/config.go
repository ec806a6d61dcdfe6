package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"

	"github.com/gerunddev/larkbridge/internal/lark"
)

// Config represents the larkbridge configuration
type Config struct {
	AuthorID      string        `json:"author_id"`
	PageTitle     string        `json:"page_title"`
	MaxNesting    int           `json:"max_nesting"`
	FrontMatter   bool          `json:"front_matter"`
	LogFile       string        `json:"log_file,omitempty"`
	WatchInterval time.Duration `json:"-"` // Custom JSON handling below
}

// rawConfig is the on-disk shape, with the interval as a duration string
type rawConfig struct {
	AuthorID      string `json:"author_id"`
	PageTitle     string `json:"page_title"`
	MaxNesting    int    `json:"max_nesting"`
	FrontMatter   *bool  `json:"front_matter"`
	LogFile       string `json:"log_file,omitempty"`
	WatchInterval string `json:"watch_interval"`
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		AuthorID:      lark.DefaultAuthorID,
		PageTitle:     lark.DefaultPageTitle,
		MaxNesting:    32,
		FrontMatter:   true,
		WatchInterval: 2 * time.Second,
	}
}

// ConfigPath returns the path to the config file
// Uses ~/.config on all platforms for consistency
// Can be overridden for testing
var ConfigPath = func() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(xdg.ConfigHome, "larkbridge", "config.json")
	}
	return filepath.Join(home, ".config", "larkbridge", "config.json")
}

// StateFilePath returns the path to the watch state file
// Can be overridden for testing
var StateFilePath = func() string {
	return filepath.Join(xdg.DataHome, "larkbridge", "state.json")
}

// Load reads configuration from ConfigPath
func Load() (*Config, error) {
	return LoadFile(ConfigPath())
}

// LoadFile reads configuration from path. Missing files yield defaults and
// missing fields keep their default values.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	var raw rawConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg := DefaultConfig()
	if raw.AuthorID != "" {
		cfg.AuthorID = raw.AuthorID
	}
	if raw.PageTitle != "" {
		cfg.PageTitle = raw.PageTitle
	}
	if raw.MaxNesting != 0 {
		cfg.MaxNesting = raw.MaxNesting
	}
	if raw.FrontMatter != nil {
		cfg.FrontMatter = *raw.FrontMatter
	}
	cfg.LogFile = raw.LogFile

	if raw.WatchInterval != "" {
		interval, err := time.ParseDuration(raw.WatchInterval)
		if err != nil {
			return nil, fmt.Errorf("invalid watch_interval format '%s': %w", raw.WatchInterval, err)
		}
		cfg.WatchInterval = interval
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.ExpandPaths(); err != nil {
		return nil, fmt.Errorf("failed to expand paths: %w", err)
	}

	return cfg, nil
}

// Save writes configuration to ConfigPath
func (c *Config) Save() error {
	return c.SaveFile(ConfigPath())
}

// SaveFile writes configuration to path
func (c *Config) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	frontMatter := c.FrontMatter
	raw := rawConfig{
		AuthorID:      c.AuthorID,
		PageTitle:     c.PageTitle,
		MaxNesting:    c.MaxNesting,
		FrontMatter:   &frontMatter,
		LogFile:       c.LogFile,
		WatchInterval: c.WatchInterval.String(),
	}

	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.AuthorID == "" {
		return fmt.Errorf("author_id cannot be empty")
	}
	for _, r := range c.AuthorID {
		if r < '0' || r > '9' {
			return fmt.Errorf("invalid author_id '%s': must be numeric", c.AuthorID)
		}
	}
	if c.MaxNesting < 1 || c.MaxNesting > 256 {
		return fmt.Errorf("max_nesting must be between 1 and 256, got %d", c.MaxNesting)
	}
	if c.WatchInterval <= 0 {
		return fmt.Errorf("watch_interval must be positive")
	}
	return nil
}

// ExpandPaths expands any ~ or relative paths to absolute paths
func (c *Config) ExpandPaths() error {
	var err error

	c.LogFile, err = expandPath(c.LogFile)
	if err != nil {
		return fmt.Errorf("failed to expand log_file: %w", err)
	}

	return nil
}

// expandPath expands ~ to home directory and converts to absolute path
func expandPath(path string) (string, error) {
	if path == "" {
		return path, nil
	}

	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if len(path) == 1 {
			return homeDir, nil
		}
		path = filepath.Join(homeDir, path[1:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	return absPath, nil
}
