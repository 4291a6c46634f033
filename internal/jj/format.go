package jj

import (
	"fmt"
	"strings"
)

// DiffFormatKind enumerates the diff renderings `jj show` supports.
type DiffFormatKind int

const (
	ColorWords DiffFormatKind = iota
	Git
	DiffTool
	Summary
	Stat
)

// DiffFormat selects how `jj show` renders the diff.
// Tool names the external tool for DiffTool; empty means jj's configured one.
type DiffFormat struct {
	Kind DiffFormatKind
	Tool string
}

// Predefined formats.
var (
	FormatColorWords = DiffFormat{Kind: ColorWords}
	FormatGit        = DiffFormat{Kind: Git}
	FormatSummary    = DiffFormat{Kind: Summary}
	FormatStat       = DiffFormat{Kind: Stat}
)

// ToolFormat returns the DiffTool format for the named tool ("" for default).
func ToolFormat(tool string) DiffFormat {
	return DiffFormat{Kind: DiffTool, Tool: tool}
}

// IsTool reports whether rendering is delegated to an external tool, whose
// output depends on the terminal width.
func (f DiffFormat) IsTool() bool {
	return f.Kind == DiffTool
}

// Next returns the format the cycle key switches to.
// ColorWords goes to Git, Git goes to the diff tool when one is configured
// and back to ColorWords otherwise; every other format returns to ColorWords.
func (f DiffFormat) Next(tool string, hasTool bool) DiffFormat {
	switch f.Kind {
	case ColorWords:
		return FormatGit
	case Git:
		if hasTool {
			return ToolFormat(tool)
		}
		return FormatColorWords
	default:
		return FormatColorWords
	}
}

// Args returns the `jj show` flags selecting this format.
func (f DiffFormat) Args() []string {
	switch f.Kind {
	case Git:
		return []string{"--git"}
	case DiffTool:
		if f.Tool == "" {
			return []string{"--tool", ":default"}
		}
		return []string{"--tool", f.Tool}
	case Summary:
		return []string{"--summary"}
	case Stat:
		return []string{"--stat"}
	default:
		return []string{"--color-words"}
	}
}

func (f DiffFormat) String() string {
	switch f.Kind {
	case Git:
		return "git"
	case DiffTool:
		if f.Tool == "" {
			return "diff-tool"
		}
		return "diff-tool:" + f.Tool
	case Summary:
		return "summary"
	case Stat:
		return "stat"
	default:
		return "color-words"
	}
}

// ParseDiffFormat parses the kebab-case names used in config files.
// "diff-tool" may carry a tool name as "diff-tool:<name>".
func ParseDiffFormat(s string) (DiffFormat, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch s {
	case "color-words":
		return FormatColorWords, nil
	case "git":
		return FormatGit, nil
	case "summary":
		return FormatSummary, nil
	case "stat":
		return FormatStat, nil
	case "diff-tool":
		return ToolFormat(""), nil
	}
	if tool, ok := strings.CutPrefix(s, "diff-tool:"); ok && tool != "" {
		return ToolFormat(tool), nil
	}
	return DiffFormat{}, fmt.Errorf("%w: %q", ErrUnknownDiffFormat, s)
}
