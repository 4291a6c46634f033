package jj

import (
	"context"
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/zjrosen/jjview/internal/log"
)

// Defaults applied when jj's configuration does not say otherwise.
const (
	DefaultHighlightColor = "#323296"
	DefaultLayout         = "horizontal"
	DefaultLayoutPercent  = 50
)

// Config is the subset of jj's effective configuration jjview reads,
// including its own [jjview] table.
type Config struct {
	values map[string]any
}

// ParseConfig parses `jj config list` output.
func ParseConfig(data string) (Config, error) {
	values := map[string]any{}
	if err := toml.Unmarshal([]byte(data), &values); err != nil {
		return Config{}, fmt.Errorf("%w: parsing config list: %w", ErrConfig, err)
	}
	return Config{values: values}, nil
}

// LoadConfig reads and parses jj's effective configuration.
func LoadConfig(ctx context.Context, exec Executor) (Config, error) {
	out, err := exec.ConfigList(ctx)
	if err != nil {
		return Config{}, err
	}
	return ParseConfig(out)
}

func (c Config) lookup(path ...string) (any, bool) {
	var cur any = c.values
	for _, key := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func (c Config) lookupString(path ...string) (string, bool) {
	v, ok := c.lookup(path...)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// DiffTool returns the configured external diff tool. A configured tool
// without a usable name (ui.diff.tool given as a command array) reports
// ok with an empty name, meaning "jj's default tool".
func (c Config) DiffTool() (name string, ok bool) {
	if s, ok := c.lookupString("jjview", "diff-tool"); ok && s != "" {
		return s, true
	}
	v, ok := c.lookup("ui", "diff", "tool")
	if !ok {
		return "", false
	}
	if s, isString := v.(string); isString {
		return s, true
	}
	return "", true
}

// DiffFormat resolves the initial diff format. jjview.diff-format wins,
// then ui.diff.format, then ui.diff-formatter, then the diff tool when one
// is configured, and ColorWords otherwise.
func (c Config) DiffFormat() DiffFormat {
	if s, ok := c.lookupString("jjview", "diff-format"); ok {
		if f, err := ParseDiffFormat(s); err == nil {
			return f
		}
		log.Warn(log.CatConfig, "Ignoring unknown jjview.diff-format", "value", s)
	}

	if s, ok := c.lookupString("ui", "diff", "format"); ok {
		if f, err := ParseDiffFormat(s); err == nil {
			return f
		}
		log.Warn(log.CatConfig, "Ignoring unknown ui.diff.format", "value", s)
	}

	if s, ok := c.lookupString("ui", "diff-formatter"); ok && s != "" {
		if builtin, isBuiltin := strings.CutPrefix(s, ":"); isBuiltin {
			if f, err := ParseDiffFormat(builtin); err == nil {
				return f
			}
		} else {
			return ToolFormat(s)
		}
	}

	if tool, ok := c.DiffTool(); ok {
		return ToolFormat(tool)
	}
	return FormatColorWords
}

// HighlightColor returns jjview.highlight-color, used for the selected row.
func (c Config) HighlightColor() string {
	if s, ok := c.lookupString("jjview", "highlight-color"); ok && s != "" {
		return s
	}
	return DefaultHighlightColor
}

// Layout returns jjview.layout ("horizontal" or "vertical").
func (c Config) Layout() string {
	if s, ok := c.lookupString("jjview", "layout"); ok && (s == "horizontal" || s == "vertical") {
		return s
	}
	return DefaultLayout
}

// LayoutPercent returns jjview.layout-percent, clamped to 1..99.
func (c Config) LayoutPercent() int {
	v, ok := c.lookup("jjview", "layout-percent")
	if !ok {
		return DefaultLayoutPercent
	}
	n, ok := v.(int64)
	if !ok || n < 1 || n > 99 {
		return DefaultLayoutPercent
	}
	return int(n)
}

// Has reports whether the dotted key is set, e.g. Has("jjview.layout").
func (c Config) Has(dotted string) bool {
	_, ok := c.lookup(strings.Split(dotted, ".")...)
	return ok
}
