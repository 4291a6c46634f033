// Package config provides configuration types and defaults for jjview.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zjrosen/jjview/internal/jj"
	"github.com/zjrosen/jjview/internal/log"
	"github.com/zjrosen/jjview/internal/tracing"
)

// Config holds all configuration options for jjview.
//
// Fields left empty are filled from jj's own configuration (the [jjview]
// and [ui] tables) by ApplyJJ, so settings can live in either place.
type Config struct {
	JJBin               string         `mapstructure:"jj_bin" yaml:"jj_bin"`
	Path                string         `mapstructure:"path" yaml:"path,omitempty"`
	Revset              string         `mapstructure:"revset" yaml:"revset,omitempty"`
	DiffFormat          string         `mapstructure:"diff_format" yaml:"diff_format,omitempty"` // color-words, git, diff-tool, summary, stat
	DiffTool            string         `mapstructure:"diff_tool" yaml:"diff_tool,omitempty"`
	Layout              string         `mapstructure:"layout" yaml:"layout,omitempty"` // horizontal or vertical
	LayoutPercent       int            `mapstructure:"layout_percent" yaml:"layout_percent,omitempty"`
	AutoRefresh         bool           `mapstructure:"auto_refresh" yaml:"auto_refresh"`
	AutoRefreshDebounce time.Duration  `mapstructure:"auto_refresh_debounce" yaml:"auto_refresh_debounce"`
	LogCacheTTL         time.Duration  `mapstructure:"log_cache_ttl" yaml:"log_cache_ttl"`
	UI                  UIConfig       `mapstructure:"ui" yaml:"ui"`
	Tracing             tracing.Config `mapstructure:"tracing" yaml:"tracing"`
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	HighlightColor string `mapstructure:"highlight_color" yaml:"highlight_color,omitempty"`
	MarkdownStyle  string `mapstructure:"markdown_style" yaml:"markdown_style"` // "dark" (default) or "light"
}

// Config file locations, in lookup order.
const (
	LocalConfigDir  = ".jjview"
	ConfigFileName  = "config.yaml"
	DefaultLogFile  = "debug.log"
	appConfigSubdir = "jjview"
)

// LocalConfigPath returns .jjview/config.yaml relative to the working directory.
func LocalConfigPath() string {
	return filepath.Join(LocalConfigDir, ConfigFileName)
}

// UserConfigDir returns ~/.config/jjview or empty string if home dir unavailable.
func UserConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appConfigSubdir)
}

// DefaultTracesFilePath returns ~/.config/jjview/traces/traces.jsonl or
// empty string if home dir unavailable.
func DefaultTracesFilePath() string {
	dir := UserConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "traces", "traces.jsonl")
}

// Defaults returns the default configuration.
func Defaults() Config {
	tracingCfg := tracing.DefaultConfig()
	tracingCfg.FilePath = DefaultTracesFilePath()

	return Config{
		JJBin:               "jj",
		AutoRefresh:         true,
		AutoRefreshDebounce: 100 * time.Millisecond,
		LogCacheTTL:         30 * time.Second,
		UI: UIConfig{
			MarkdownStyle: "dark",
		},
		Tracing: tracingCfg,
	}
}

// Validate checks option values that viper cannot type-check.
func (c Config) Validate() error {
	switch c.Layout {
	case "", "horizontal", "vertical":
	default:
		return fmt.Errorf("layout must be horizontal or vertical (got %q)", c.Layout)
	}
	if c.LayoutPercent != 0 && (c.LayoutPercent < 1 || c.LayoutPercent > 99) {
		return fmt.Errorf("layout_percent must be between 1 and 99 (got %d)", c.LayoutPercent)
	}
	if c.DiffFormat != "" {
		if _, err := jj.ParseDiffFormat(c.DiffFormat); err != nil {
			return fmt.Errorf("diff_format: %w", err)
		}
	}
	switch c.UI.MarkdownStyle {
	case "", "dark", "light":
	default:
		return fmt.Errorf("ui.markdown_style must be dark or light (got %q)", c.UI.MarkdownStyle)
	}
	if c.AutoRefreshDebounce < 0 {
		return fmt.Errorf("auto_refresh_debounce must not be negative")
	}
	if c.LogCacheTTL < 0 {
		return fmt.Errorf("log_cache_ttl must not be negative")
	}
	if err := c.Tracing.Validate(); err != nil {
		return err
	}
	return nil
}

// ApplyJJ fills layout and color settings the jjview config leaves empty
// from jj's configuration.
func (c *Config) ApplyJJ(j jj.Config) {
	if c.Layout == "" {
		c.Layout = j.Layout()
	}
	if c.LayoutPercent == 0 {
		c.LayoutPercent = j.LayoutPercent()
	}
	if c.UI.HighlightColor == "" {
		c.UI.HighlightColor = j.HighlightColor()
	}
	log.Debug(log.CatConfig, "Applied jj config",
		"layout", c.Layout,
		"layout_percent", c.LayoutPercent,
		"highlight", c.UI.HighlightColor)
}

// InitialDiffFormat resolves the diff format to start with. The jjview
// config wins over jj's configuration.
func (c Config) InitialDiffFormat(j jj.Config) jj.DiffFormat {
	if c.DiffFormat != "" {
		if f, err := jj.ParseDiffFormat(c.DiffFormat); err == nil {
			if f.IsTool() && f.Tool == "" {
				f.Tool, _ = c.ResolveDiffTool(j)
			}
			return f
		}
	}
	return j.DiffFormat()
}

// ResolveDiffTool resolves the external diff tool used by the format cycle.
func (c Config) ResolveDiffTool(j jj.Config) (string, bool) {
	if c.DiffTool != "" {
		return c.DiffTool, true
	}
	return j.DiffTool()
}
