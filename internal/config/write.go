package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/zjrosen/jjview/internal/log"
)

// keyComments documents top-level keys in the generated file.
var keyComments = map[string]string{
	"jj_bin":                "Path to the jj binary",
	"auto_refresh":          "Reload the log when the repository changes",
	"auto_refresh_debounce": "Wait this long after the last change before reloading",
	"log_cache_ttl":         "How long jj log output is reused before running jj again",
	"ui":                    "UI settings (highlight_color defaults to jjview.highlight-color from jj config)",
	"tracing":               "OpenTelemetry tracing (exporter: none, file, stdout, otlp)",
}

// unsetKeys are written commented out; jj config supplies them when absent.
const unsetKeys = `
# The following fall back to jj's configuration when left unset:
# diff_format: color-words   # color-words, git, diff-tool, summary, stat
# diff_tool: difft           # jjview.diff-tool or ui.diff.tool in jj config
# layout: horizontal         # horizontal or vertical
# layout_percent: 50         # size of the log panel, 1-99
# revset: "::@"              # defaults to jj's revsets.log
`

// DefaultConfigYAML renders Defaults() as a commented YAML document.
func DefaultConfigYAML() ([]byte, error) {
	var doc yaml.Node
	if err := doc.Encode(Defaults()); err != nil {
		return nil, fmt.Errorf("encoding defaults: %w", err)
	}
	doc.HeadComment = "jjview configuration"

	for i := 0; i < len(doc.Content); i += 2 {
		key := doc.Content[i]
		if comment, ok := keyComments[key.Value]; ok {
			key.HeadComment = comment
		}
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	buf.WriteString(unsetKeys)
	return buf.Bytes(), nil
}

// WriteDefaultConfig creates a config file at the given path with default
// settings and comments. Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	data, err := DefaultConfigYAML()
	if err != nil {
		return err
	}

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
