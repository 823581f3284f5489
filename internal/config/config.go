// Package config handles aoc configuration loading and validation.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/tOgg1/aoc2024/internal/display"
)

// Config is the root configuration structure for aoc.
type Config struct {
	// Global settings
	Global GlobalConfig `yaml:"global" mapstructure:"global"`

	// Logging settings
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`

	// TUI settings for the live solve display
	TUI TUIConfig `yaml:"tui" mapstructure:"tui"`

	// History settings
	History HistoryConfig `yaml:"history" mapstructure:"history"`
}

// GlobalConfig contains global settings.
type GlobalConfig struct {
	// DataDir holds puzzle inputs named <day>.txt (default: ./data).
	DataDir string `yaml:"data_dir" mapstructure:"data_dir"`

	// ConfigDir is where config and context files are stored (default: ~/.config/aoc).
	ConfigDir string `yaml:"config_dir" mapstructure:"config_dir"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	// Level is the minimum log level (debug, info, warn, error, disabled).
	Level string `yaml:"level" mapstructure:"level"`

	// Format is the output format (json, console).
	Format string `yaml:"format" mapstructure:"format"`

	// File is an optional log file path. Without one, logging is silenced
	// while the live display owns the terminal.
	File string `yaml:"file" mapstructure:"file"`

	// EnableCaller adds caller information to logs.
	EnableCaller bool `yaml:"enable_caller" mapstructure:"enable_caller"`
}

// TUIConfig contains live display settings.
type TUIConfig struct {
	// TickInterval is how often the display wakes up without input.
	TickInterval time.Duration `yaml:"tick_interval" mapstructure:"tick_interval"`

	// RowThrottle is the pause after each streamed row.
	RowThrottle time.Duration `yaml:"row_throttle" mapstructure:"row_throttle"`

	// ViewportHeight is the number of terminal lines the display occupies,
	// including the two footer lines.
	ViewportHeight int `yaml:"viewport_height" mapstructure:"viewport_height"`

	// MaxRows bounds the streamed row history.
	MaxRows int `yaml:"max_rows" mapstructure:"max_rows"`

	// QuitKeys end the display.
	QuitKeys []string `yaml:"quit_keys" mapstructure:"quit_keys"`

	// Theme is the color theme (default, high-contrast).
	Theme string `yaml:"theme" mapstructure:"theme"`
}

// HistoryConfig contains run history settings.
type HistoryConfig struct {
	// Enabled records every solve in the history database.
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`

	// Path is the SQLite database file path.
	Path string `yaml:"path" mapstructure:"path"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		Global: GlobalConfig{
			DataDir:   "data",
			ConfigDir: filepath.Join(homeDir, ".config", "aoc"),
		},
		Logging: LoggingConfig{
			Level:        "info",
			Format:       "console",
			EnableCaller: false,
		},
		TUI: TUIConfig{
			TickInterval:   200 * time.Millisecond,
			RowThrottle:    2 * time.Millisecond,
			ViewportHeight: 8,
			MaxRows:        256,
			QuitKeys:       []string{"q", "ctrl+c"},
			Theme:          "default",
		},
		History: HistoryConfig{
			Enabled: true,
			Path:    "", // Will be set to ConfigDir/history.db
		},
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Global.DataDir == "" {
		return fmt.Errorf("global.data_dir is required")
	}

	if c.TUI.TickInterval < 10*time.Millisecond {
		return fmt.Errorf("tui.tick_interval must be at least 10ms")
	}

	if c.TUI.RowThrottle < 0 {
		return fmt.Errorf("tui.row_throttle must not be negative")
	}

	if c.TUI.ViewportHeight < 3 {
		return fmt.Errorf("tui.viewport_height must be at least 3")
	}

	if c.TUI.MaxRows < 1 {
		return fmt.Errorf("tui.max_rows must be at least 1")
	}

	if len(c.TUI.QuitKeys) == 0 {
		return fmt.Errorf("tui.quit_keys must not be empty")
	}

	if _, ok := display.Themes[c.TUI.Theme]; !ok {
		names := make([]string, 0, len(display.Themes))
		for name := range display.Themes {
			names = append(names, name)
		}
		slices.Sort(names)
		return fmt.Errorf("tui.theme must be one of %s", strings.Join(names, ", "))
	}

	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be one of console, json")
	}

	return nil
}

// EnsureDirectories creates required directories.
func (c *Config) EnsureDirectories() error {
	if err := os.MkdirAll(c.Global.ConfigDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", c.Global.ConfigDir, err)
	}
	return nil
}

// HistoryPath returns the full history database path.
func (c *Config) HistoryPath() string {
	if c.History.Path != "" {
		return c.History.Path
	}
	return filepath.Join(c.Global.ConfigDir, "history.db")
}

// InputPath returns the puzzle input path for day.
func (c *Config) InputPath(day int) string {
	return filepath.Join(c.Global.DataDir, fmt.Sprintf("%d.txt", day))
}

// ContextPath returns the path of the persisted CLI context.
func (c *Config) ContextPath() string {
	return filepath.Join(c.Global.ConfigDir, "context.yaml")
}
