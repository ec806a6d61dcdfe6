package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// useConfigPath points ConfigPath at path for the duration of the test
func useConfigPath(t *testing.T, path string) {
	t.Helper()
	original := ConfigPath
	ConfigPath = func() string {
		return path
	}
	t.Cleanup(func() {
		ConfigPath = original
	})
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.AuthorID != "7092639913849389057" {
		t.Errorf("Expected default author id, got %q", cfg.AuthorID)
	}
	if cfg.PageTitle == "" {
		t.Error("Expected PageTitle to be set")
	}
	if cfg.MaxNesting != 32 {
		t.Errorf("Expected MaxNesting 32, got %d", cfg.MaxNesting)
	}
	if !cfg.FrontMatter {
		t.Error("Expected FrontMatter to default to true")
	}
	if cfg.WatchInterval != 2*time.Second {
		t.Errorf("Expected WatchInterval to be 2s, got %v", cfg.WatchInterval)
	}
}

func TestConfigValidate(t *testing.T) {
	valid := func(mut func(*Config)) *Config {
		cfg := DefaultConfig()
		mut(cfg)
		return cfg
	}

	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{
			name:    "valid config",
			config:  DefaultConfig(),
			wantErr: false,
		},
		{
			name:    "empty author_id",
			config:  valid(func(c *Config) { c.AuthorID = "" }),
			wantErr: true,
		},
		{
			name:    "non numeric author_id",
			config:  valid(func(c *Config) { c.AuthorID = "abc" }),
			wantErr: true,
		},
		{
			name:    "zero max_nesting",
			config:  valid(func(c *Config) { c.MaxNesting = 0 }),
			wantErr: true,
		},
		{
			name:    "huge max_nesting",
			config:  valid(func(c *Config) { c.MaxNesting = 1000 }),
			wantErr: true,
		},
		{
			name:    "zero interval",
			config:  valid(func(c *Config) { c.WatchInterval = 0 }),
			wantErr: true,
		},
		{
			name:    "negative interval",
			config:  valid(func(c *Config) { c.WatchInterval = -5 * time.Second }),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	testConfigPath := filepath.Join(t.TempDir(), "nested", "config.json")
	useConfigPath(t, testConfigPath)

	testCfg := &Config{
		AuthorID:      "123",
		PageTitle:     "Notes",
		MaxNesting:    8,
		FrontMatter:   false,
		LogFile:       "/tmp/larkbridge-test.log",
		WatchInterval: 45 * time.Second,
	}

	if err := testCfg.Save(); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	if _, err := os.Stat(testConfigPath); os.IsNotExist(err) {
		t.Fatal("Config file was not created")
	}

	loadedCfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if loadedCfg.WatchInterval != testCfg.WatchInterval {
		t.Errorf("WatchInterval mismatch: got %v, want %v", loadedCfg.WatchInterval, testCfg.WatchInterval)
	}
	if loadedCfg.AuthorID != "123" || loadedCfg.PageTitle != "Notes" || loadedCfg.MaxNesting != 8 {
		t.Errorf("Fields not preserved: %+v", loadedCfg)
	}
	if loadedCfg.FrontMatter {
		t.Error("FrontMatter false was not preserved")
	}
}

func TestLoadNonExistentConfig(t *testing.T) {
	useConfigPath(t, filepath.Join(t.TempDir(), "nonexistent.json"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() should not error on missing file: %v", err)
	}

	if cfg.WatchInterval != 2*time.Second {
		t.Errorf("Expected default interval 2s, got %v", cfg.WatchInterval)
	}
}

func TestLoadPartialConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"page_title": "Inbox"}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.PageTitle != "Inbox" {
		t.Errorf("PageTitle = %q, want Inbox", cfg.PageTitle)
	}
	if cfg.AuthorID != DefaultConfig().AuthorID {
		t.Errorf("AuthorID should fall back to default, got %q", cfg.AuthorID)
	}
	if !cfg.FrontMatter {
		t.Error("FrontMatter should fall back to true")
	}
}

func TestLoadInvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{"bad json", `{`, "failed to parse config"},
		{"bad interval", `{"watch_interval": "soon"}`, "invalid watch_interval"},
		{"bad author", `{"author_id": "x1"}`, "invalid configuration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.json")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			_, err := LoadFile(path)
			if err == nil || !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("LoadFile() error = %v, want containing %q", err, tt.wantMsg)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	homeDir, _ := os.UserHomeDir()

	tests := []struct {
		name     string
		input    string
		contains string
	}{
		{
			name:     "tilde expansion",
			input:    "~/test",
			contains: homeDir,
		},
		{
			name:     "tilde only",
			input:    "~",
			contains: homeDir,
		},
		{
			name:     "absolute path",
			input:    "/tmp/test",
			contains: "/tmp/test",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := expandPath(tt.input)
			if err != nil {
				t.Fatalf("expandPath() error = %v", err)
			}
			if !strings.Contains(result, tt.contains) {
				t.Errorf("expandPath(%q) = %q, want containing %q", tt.input, result, tt.contains)
			}
		})
	}
}

func TestLogFileExpanded(t *testing.T) {
	useConfigPath(t, filepath.Join(t.TempDir(), "config.json"))

	testCfg := DefaultConfig()
	testCfg.LogFile = "~/larkbridge.log"
	if err := testCfg.Save(); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	loadedCfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if loadedCfg.LogFile[0] == '~' {
		t.Error("LogFile was not expanded")
	}
}
