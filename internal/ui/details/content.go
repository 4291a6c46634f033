package details

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"

	"github.com/zjrosen/jjview/internal/indexedtext"
)

// Content is what the panel can show. The panel asks for a line count to
// bound scrolling and for the rows of the visible window.
type Content interface {
	// LineCount returns the scrollable line count at the given width.
	LineCount(cols int, wrapped bool) int
	// Window returns at most rows display rows starting at line top.
	Window(top, rows, cols int, wrapped bool) []string
}

// TextContent is a small, possibly styled, text. It is wrapped as a whole,
// so the line count includes continuation rows.
type TextContent string

// LineCount implements Content.
func (c TextContent) LineCount(cols int, wrapped bool) int {
	return len(c.rows(cols, wrapped))
}

// Window implements Content.
func (c TextContent) Window(top, rows, cols int, wrapped bool) []string {
	all := c.rows(cols, wrapped)
	if top >= len(all) || rows <= 0 {
		return nil
	}
	return all[max(top, 0):min(top+rows, len(all))]
}

func (c TextContent) rows(cols int, wrapped bool) []string {
	s := string(c)
	if s == "" {
		return nil
	}
	if wrapped {
		s = wrapText(s, cols)
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

// IndexedContent is a large output. Only the visible window is decoded, and
// the line count is the count of source lines: wrapping adds continuation
// rows inside the window but never changes how far the panel can scroll.
type IndexedContent struct {
	Text *indexedtext.Text
}

// LineCount implements Content.
func (c IndexedContent) LineCount(int, bool) int {
	if c.Text == nil {
		return 0
	}
	return c.Text.LineCount()
}

// Window implements Content.
func (c IndexedContent) Window(top, rows, cols int, wrapped bool) []string {
	if c.Text == nil || rows <= 0 {
		return nil
	}
	lines := c.Text.Render(top, rows).Rows()
	if !wrapped {
		return lines
	}

	out := make([]string, 0, rows)
	for _, line := range lines {
		out = append(out, strings.Split(wrapText(line, cols), "\n")...)
		if len(out) >= rows {
			return out[:rows]
		}
	}
	return out
}

// wrapText word-wraps at cols, then hard-wraps words longer than a row.
// Both passes keep ANSI styling intact.
func wrapText(s string, cols int) string {
	if cols < 1 {
		return s
	}
	return wrap.String(wordwrap.String(s, cols), cols)
}
