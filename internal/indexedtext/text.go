// Package indexedtext holds large, immutable command output together with a
// line-start index so a window of lines can be sliced and decoded without
// rescanning the whole blob on every frame.
package indexedtext

import (
	"fmt"
	"strings"

	"github.com/zjrosen/jjview/internal/log"
)

// Text is an immutable blob plus the byte offset of every line start.
//
// A line ends at "\n", "\r" or "\r\n". The terminator belongs to the line it
// ends, so concatenating every line reproduces the content exactly.
type Text struct {
	content string
	starts  []int
}

// New indexes content in a single pass.
func New(content string) *Text {
	return &Text{
		content: content,
		starts:  indexLines(content),
	}
}

// indexLines returns the offset of each line start in s.
func indexLines(s string) []int {
	// Rough guess for typical diff output; avoids most regrowth.
	starts := make([]int, 0, len(s)/48+1)

	for i := 0; i < len(s); {
		starts = append(starts, i)

		eol := strings.IndexAny(s[i:], "\r\n")
		if eol < 0 {
			break
		}
		i += eol
		if s[i] == '\r' && i+1 < len(s) && s[i+1] == '\n' {
			i++
		}
		i++
	}

	return starts
}

// LineCount returns the number of lines, counting a trailing partial line.
func (t *Text) LineCount() int {
	return len(t.starts)
}

// Len returns the size of the content in bytes.
func (t *Text) Len() int {
	return len(t.content)
}

// String returns the whole content.
func (t *Text) String() string {
	return t.content
}

// lineStarts returns a copy of the line-start offsets.
func (t *Text) lineStarts() []int {
	out := make([]int, len(t.starts))
	copy(out, t.starts)
	return out
}

// offset maps a line number to a byte offset, clamped to the content bounds.
func (t *Text) offset(line int) int {
	if line <= 0 {
		return 0
	}
	if line >= len(t.starts) {
		return len(t.content)
	}
	return t.starts[line]
}

// Slice returns the raw bytes of lines [top, top+count).
// Out of range windows are truncated, never an error.
func (t *Text) Slice(top, count int) string {
	if count <= 0 || top >= len(t.starts) {
		return ""
	}
	end := top + min(count, len(t.starts))
	top = max(top, 0)
	if end <= top {
		return ""
	}

	return t.content[t.offset(top):t.offset(end)]
}

// Render slices lines [top, top+count) and decodes their ANSI styling.
//
// Malformed escape sequences never fail the render: the window is replaced
// with a plain-text description of the problem and the error is logged.
func (t *Text) Render(top, count int) StyledText {
	raw := t.Slice(top, count)

	styled, err := Decode(raw)
	if err != nil {
		log.ErrorErr(log.CatUI, "Failed to decode ansi window", err,
			"top", top,
			"count", count,
			"bytes", len(raw))
		return PlainText(fmt.Sprintf("Error rendering content: %v", err))
	}

	return styled
}
