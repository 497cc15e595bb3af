package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Akashdeep-Patra/pooled-list/internal/recycler"
	"github.com/Akashdeep-Patra/pooled-list/internal/window"
)

// Config holds the resolved application configuration.
type Config struct {
	// Mode is the tab shown first: "linear" (default) or "grid".
	Mode string `mapstructure:"mode"`
	// Axis is the scroll axis: "vertical" (default) or "horizontal".
	Axis string `mapstructure:"axis"`
	// Count is the number of items the random provider generates.
	Count int `mapstructure:"count"`
	// ElementSize is the extent of one item in cells along the axis.
	ElementSize int `mapstructure:"element_size"`
	Spacing     int `mapstructure:"spacing"`
	Padding     int `mapstructure:"padding"`
	// Columns is the grid constraint count.
	Columns            int `mapstructure:"columns"`
	PoolCapacity       int `mapstructure:"pool_capacity"`
	SpacerPoolCapacity int `mapstructure:"spacer_pool_capacity"`
	// Colors is the random provider palette.
	Colors []string `mapstructure:"colors"`
	// DataFile is a TOML item file used instead of the random provider.
	DataFile      string        `mapstructure:"data_file"`
	Watch         bool          `mapstructure:"watch"`
	WatchDebounce time.Duration `mapstructure:"watch_debounce"`
	// ResetOnMutation scrolls back to the start after every add, insert or
	// remove.
	ResetOnMutation bool   `mapstructure:"reset_on_mutation"`
	LogFile         string `mapstructure:"log_file"`
	LogLevel        string `mapstructure:"log_level"`
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"count":   "count",
	"mode":    "mode",
	"axis":    "axis",
	"file":    "data_file",
	"columns": "columns",
}

// Load reads configuration from ~/.config/pls/config.yaml (or TOML/JSON),
// then the PLS_* environment, then any flags in flags that were set.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.AddConfigPath(configDirectory())
	v.AddConfigPath(".")

	setDefaults(v)

	v.SetEnvPrefix("PLS")
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, err
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		// Config file not found is fine, use defaults.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("mode", "linear")
	v.SetDefault("axis", "vertical")
	v.SetDefault("count", 100)
	v.SetDefault("element_size", 3)
	v.SetDefault("spacing", 1)
	v.SetDefault("padding", 1)
	v.SetDefault("columns", 4)
	v.SetDefault("pool_capacity", recycler.DefaultPoolCapacity)
	v.SetDefault("spacer_pool_capacity", recycler.DefaultSpacerPoolCapacity)
	v.SetDefault("colors", DefaultPalette())
	v.SetDefault("data_file", "")
	v.SetDefault("watch", true)
	v.SetDefault("watch_debounce", 300*time.Millisecond)
	v.SetDefault("reset_on_mutation", false)
	v.SetDefault("log_file", "")
	v.SetDefault("log_level", "info")
}

// Validate checks values that would otherwise fail deep inside the engine.
func (c *Config) Validate() error {
	var errs []error
	if _, err := ParseMode(c.Mode); err != nil {
		errs = append(errs, err)
	}
	if _, err := ParseAxis(c.Axis); err != nil {
		errs = append(errs, err)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.Count < 0 {
		errs = append(errs, fmt.Errorf("count must not be negative, got %d", c.Count))
	}
	if c.ElementSize < 1 {
		errs = append(errs, fmt.Errorf("element_size must be at least 1, got %d", c.ElementSize))
	}
	if c.Spacing < 0 || c.Padding < 0 {
		errs = append(errs, errors.New("spacing and padding must not be negative"))
	}
	if c.Columns < 1 {
		errs = append(errs, fmt.Errorf("columns must be at least 1, got %d", c.Columns))
	}
	if len(c.Colors) == 0 {
		errs = append(errs, errors.New("colors must name at least one colour"))
	}
	return errors.Join(errs...)
}

// ParseMode converts a config value into a layout mode.
func ParseMode(s string) (recycler.Mode, error) {
	switch strings.ToLower(s) {
	case "linear", "list", "":
		return recycler.Linear, nil
	case "grid":
		return recycler.Grid, nil
	}
	return 0, fmt.Errorf("unknown mode %q (want linear or grid)", s)
}

// ParseAxis converts a config value into a scroll axis.
func ParseAxis(s string) (window.Axis, error) {
	switch strings.ToLower(s) {
	case "vertical", "v", "":
		return window.Vertical, nil
	case "horizontal", "h":
		return window.Horizontal, nil
	}
	return 0, fmt.Errorf("unknown axis %q (want vertical or horizontal)", s)
}

// ParseLevel converts a config value into a log level.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("unknown log_level %q", s)
	}
	return level, nil
}

// Layout returns the engine layout metadata for mode.
func (c *Config) Layout(mode recycler.Mode) *recycler.LayoutMetadata {
	meta := &recycler.LayoutMetadata{
		Spacing:         float64(c.Spacing),
		PaddingStart:    float64(c.Padding),
		PaddingEnd:      float64(c.Padding),
		ConstraintCount: 1,
	}
	if mode == recycler.Grid {
		meta.ConstraintCount = c.Columns
	}
	return meta
}

func configDirectory() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "pls")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "pls")
}
