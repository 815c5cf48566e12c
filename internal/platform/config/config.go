// Package config resolves the data directory and loads tasktimer settings.
// Values come from <data-dir>/config.yaml when present; missing fields keep
// their defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"

	LocaleEnglish = "en"
	LocaleTaiwan  = "zh-TW"
)

type Config struct {
	DataDir  string `yaml:"-"`
	DBPath   string `yaml:"-"`
	LogPath  string `yaml:"-"`
	Location string `yaml:"-"`

	Storage       StorageConfig      `yaml:"storage"`
	Notifications NotificationConfig `yaml:"notifications"`
	Sound         SoundConfig        `yaml:"sound"`
	Display       DisplayConfig      `yaml:"display"`
	Log           LogConfig          `yaml:"log"`
}

type StorageConfig struct {
	// Backend: "file" (default) | "sqlite"
	Backend string `yaml:"backend"`
}

type NotificationConfig struct {
	Enabled bool `yaml:"enabled"`
}

type SoundConfig struct {
	Enabled bool `yaml:"enabled"`
	// Bell falls back to the terminal bell when the speaker cannot be opened.
	Bell bool `yaml:"bell"`
}

type DisplayConfig struct {
	// Locale selects duration unit labels and date layout: "en" | "zh-TW".
	Locale string `yaml:"locale"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

func Default(dataDir string) Config {
	return Config{
		DataDir:       dataDir,
		DBPath:        filepath.Join(dataDir, "tasktimer.db"),
		LogPath:       filepath.Join(dataDir, "tasktimer.log"),
		Location:      filepath.Join(dataDir, "config.yaml"),
		Storage:       StorageConfig{Backend: BackendFile},
		Notifications: NotificationConfig{Enabled: true},
		Sound:         SoundConfig{Enabled: true, Bell: true},
		Display:       DisplayConfig{Locale: LocaleEnglish},
		Log:           LogConfig{Level: "info"},
	}
}

// New loads the configuration rooted at dataDir. An empty dataDir resolves to
// DefaultDataDir.
func New(dataDir string) (Config, error) {
	if strings.TrimSpace(dataDir) == "" {
		resolved, err := DefaultDataDir()
		if err != nil {
			return Config{}, err
		}
		dataDir = resolved
	}
	cfg := Default(dataDir)
	payload, err := os.ReadFile(cfg.Location)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(payload, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config %s: %w", cfg.Location, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Storage.Backend {
	case BackendFile, BackendSQLite:
	default:
		return fmt.Errorf("storage.backend must be %q or %q, got %q", BackendFile, BackendSQLite, c.Storage.Backend)
	}
	switch c.Display.Locale {
	case LocaleEnglish, LocaleTaiwan:
	default:
		return fmt.Errorf("display.locale must be %q or %q, got %q", LocaleEnglish, LocaleTaiwan, c.Display.Locale)
	}
	return nil
}

// Save writes the current settings to the config file location.
func (c Config) Save() error {
	if err := os.MkdirAll(c.DataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	payload, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(c.Location, payload, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// DefaultDataDir is $XDG_DATA_HOME/tasktimer, falling back to
// ~/.local/share/tasktimer.
func DefaultDataDir() (string, error) {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "tasktimer"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".local", "share", "tasktimer"), nil
}
