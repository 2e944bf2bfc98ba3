package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/dshills/textforge/internal/engine/history"
)

// EnvPrefix is the prefix for environment variable overrides.
const EnvPrefix = "TEXTFORGE_"

// Config holds all editor settings.
type Config struct {
	Editor    EditorConfig    `toml:"editor" yaml:"editor"`
	Log       LogConfig       `toml:"log" yaml:"log"`
	Highlight HighlightConfig `toml:"highlight" yaml:"highlight"`
}

// EditorConfig holds core editing settings.
type EditorConfig struct {
	// TabWidth is the number of spaces one indent level occupies.
	TabWidth int `toml:"tabWidth" yaml:"tabWidth"`

	// UndoLimit caps the undo stack depth.
	UndoLimit int `toml:"undoLimit" yaml:"undoLimit"`

	// CaseSensitiveSearch is the default case mode for search and replace.
	CaseSensitiveSearch bool `toml:"caseSensitiveSearch" yaml:"caseSensitiveSearch"`

	// AutoSession restores cursor and clipboard state across runs.
	AutoSession bool `toml:"autoSession" yaml:"autoSession"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level" yaml:"level"`

	// File is the log destination path; empty logs to stderr.
	File string `toml:"file" yaml:"file"`
}

// HighlightConfig holds syntax highlighting settings.
type HighlightConfig struct {
	Enabled bool   `toml:"enabled" yaml:"enabled"`
	Theme   string `toml:"theme" yaml:"theme"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Editor: EditorConfig{
			TabWidth:            4,
			UndoLimit:           history.DefaultMaxEntries,
			CaseSensitiveSearch: true,
			AutoSession:         false,
		},
		Log: LogConfig{
			Level: "info",
			File:  "",
		},
		Highlight: HighlightConfig{
			Enabled: true,
			Theme:   "default",
		},
	}
}

// Load builds a Config from defaults, the file at path, and environment
// overrides, in that order. A missing file is skipped; an empty path
// skips the file layer entirely. The result is validated.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFile(&cfg, path); err != nil {
			return cfg, err
		}
	}
	loadEnv(&cfg)
	cfg.Validate()

	return cfg, nil
}

// loadFile unmarshals the file at path over cfg. The format is chosen by
// extension: .yaml/.yml parse as YAML, anything else as TOML.
func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parsing config file %s: %w", path, err)
		}
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	return nil
}

// loadEnv applies TEXTFORGE_* overrides to cfg. Unparseable values are
// ignored so a stray variable cannot poison the whole config.
func loadEnv(cfg *Config) {
	if v, ok := envInt("TAB_WIDTH"); ok {
		cfg.Editor.TabWidth = v
	}
	if v, ok := envInt("UNDO_LIMIT"); ok {
		cfg.Editor.UndoLimit = v
	}
	if v, ok := envBool("CASE_SENSITIVE"); ok {
		cfg.Editor.CaseSensitiveSearch = v
	}
	if v, ok := envBool("AUTO_SESSION"); ok {
		cfg.Editor.AutoSession = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "LOG_LEVEL"); ok {
		cfg.Log.Level = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "LOG_FILE"); ok {
		cfg.Log.File = v
	}
	if v, ok := envBool("HIGHLIGHT"); ok {
		cfg.Highlight.Enabled = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "THEME"); ok {
		cfg.Highlight.Theme = v
	}
}

func envInt(name string) (int, bool) {
	s, ok := os.LookupEnv(EnvPrefix + name)
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return v, true
}

func envBool(name string) (bool, bool) {
	s, ok := os.LookupEnv(EnvPrefix + name)
	if !ok {
		return false, false
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "on", "1":
		return true, true
	case "false", "no", "off", "0":
		return false, true
	}
	return false, false
}

// Validate clamps out-of-range values to usable ones.
func (c *Config) Validate() {
	if c.Editor.TabWidth < 1 {
		c.Editor.TabWidth = 4
	}
	if c.Editor.TabWidth > 16 {
		c.Editor.TabWidth = 16
	}
	if c.Editor.UndoLimit < 1 {
		c.Editor.UndoLimit = history.DefaultMaxEntries
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		c.Log.Level = "info"
	}
	if c.Highlight.Theme == "" {
		c.Highlight.Theme = "default"
	}
}
