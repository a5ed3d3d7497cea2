// Package config loads nudge settings from ~/.config/nudge/config.toml and
// NUDGE_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	DefaultWidgetWidth   = 48
	DefaultWidgetRefresh = 30 * time.Second
)

type Config struct {
	Store  Store  `toml:"store"`
	Widget Widget `toml:"widget"`
	Log    Log    `toml:"log"`
}

type Store struct {
	// Path of the SQLite file shared by the widget and the board.
	Path string `toml:"path"`
}

type Widget struct {
	// Width truncates widget lines; 0 disables truncation.
	Width int `toml:"width"`
	// RefreshInterval re-renders the watching widget so colors advance
	// with time even when nothing is written.
	RefreshInterval Duration `toml:"refresh-interval"`
}

type Log struct {
	Enabled bool `toml:"enabled"`
	// File receives use-case logs instead of stderr when set.
	File string `toml:"file"`
}

// Duration decodes TOML strings such as "30s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the configuration used when no file or env is present.
func Default() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Config{
		Store:  Store{Path: filepath.Join(home, ".nudge", "nudge.db")},
		Widget: Widget{Width: DefaultWidgetWidth, RefreshInterval: Duration{DefaultWidgetRefresh}},
	}
}

// DefaultPath is the global config file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "nudge", "config.toml"), nil
}

// Load reads the config file at path over the defaults, then applies env
// overrides. A missing file is not an error; a malformed one is.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	default:
		meta, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
		if meta.IsDefined("store", "path") {
			cfg.Store.Path = expandHome(strings.TrimSpace(cfg.Store.Path))
		}
		if meta.IsDefined("log", "file") {
			cfg.Log.File = expandHome(strings.TrimSpace(cfg.Log.File))
		}
		if cfg.Widget.RefreshInterval.Duration <= 0 {
			cfg.Widget.RefreshInterval.Duration = DefaultWidgetRefresh
		}
		if cfg.Widget.Width < 0 {
			cfg.Widget.Width = 0
		}
	}

	applyEnv(&cfg)
	return &cfg, nil
}

// applyEnv overrides from NUDGE_* variables. Unparsable values are ignored.
func applyEnv(cfg *Config) {
	if v := os.Getenv("NUDGE_DB"); v != "" {
		cfg.Store.Path = expandHome(v)
	}
	if v := os.Getenv("NUDGE_LOG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Log.Enabled = b
		}
	}
	if v := os.Getenv("NUDGE_WIDGET_WIDTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.Widget.Width = n
		}
	}
	if v := os.Getenv("NUDGE_WIDGET_REFRESH"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Widget.RefreshInterval.Duration = d
		}
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
