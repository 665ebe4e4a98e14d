package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/example/renux/internal/core/rename"
)

// Color modes
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config represents the renux configuration file.
type Config struct {
	Defaults Defaults `yaml:"defaults"`
	Journal  Journal  `yaml:"journal"`
	Log      Log      `yaml:"log"`
	Color    string   `yaml:"color"` // auto, always, never
}

// Defaults are the rename options used when no flag overrides them.
type Defaults struct {
	Count         int    `yaml:"count"`
	Regex         bool   `yaml:"regex"`
	CaseSensitive bool   `yaml:"case_sensitive"`
	ApplyTo       string `yaml:"apply_to"`
}

// Journal configures the SQLite rename journal.
type Journal struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Log configures the log file.
type Log struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`
}

// Dir returns ~/.renux.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".renux"), nil
}

// DefaultPath returns ~/.renux/config.yaml.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	cfg := &Config{
		Defaults: Defaults{
			Count:   0,
			Regex:   true,
			ApplyTo: string(rename.ApplyToName),
		},
		Journal: Journal{Enabled: true},
		Log:     Log{Level: "info"},
		Color:   ColorAuto,
	}
	if dir, err := Dir(); err == nil {
		cfg.Journal.Path = filepath.Join(dir, "renux.db")
		cfg.Log.File = filepath.Join(dir, "renux.log")
	}
	return cfg
}

// Load reads the config file at path. A missing file yields Default().
// Keys absent from the file keep their default values.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	cfg.Journal.Path = expandHome(cfg.Journal.Path)
	cfg.Log.File = expandHome(cfg.Log.File)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path, creating the parent directory.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate checks enumerated values and ranges.
func (c *Config) Validate() error {
	if c.Defaults.Count < 0 {
		return fmt.Errorf("defaults.count must be 0 or more, got %d", c.Defaults.Count)
	}
	if _, err := rename.ParseApplyTo(c.Defaults.ApplyTo); err != nil {
		return fmt.Errorf("defaults.apply_to: %w", err)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error, got %q", c.Log.Level)
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("color must be one of auto, always, never, got %q", c.Color)
	}
	if c.Journal.Enabled && c.Journal.Path == "" {
		return errors.New("journal.path is required when the journal is enabled")
	}
	return nil
}

// Options returns the default rename options.
func (c *Config) Options() rename.Options {
	applyTo, err := rename.ParseApplyTo(c.Defaults.ApplyTo)
	if err != nil {
		applyTo = rename.ApplyToName
	}
	return rename.Options{
		MaxReplacements: c.Defaults.Count,
		UseRegex:        c.Defaults.Regex,
		CaseSensitive:   c.Defaults.CaseSensitive,
		ApplyTo:         applyTo,
	}
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
