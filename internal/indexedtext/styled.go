package indexedtext

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Style is the SGR state in effect for a run of text.
// Colors hold their SGR parameter form, e.g. "31", "38;5;208" or "48;2;1;2;3".
type Style struct {
	Bold          bool
	Faint         bool
	Italic        bool
	Underline     bool
	Blink         bool
	Reverse       bool
	Conceal       bool
	Strikethrough bool

	Foreground     string
	Background     string
	UnderlineColor string
}

// IsZero reports whether the style carries no attributes.
func (s Style) IsZero() bool {
	return s == Style{}
}

// SGR returns the style as an ansi.Style sequence builder.
func (s Style) SGR() ansi.Style {
	var out ansi.Style
	flags := []struct {
		on   bool
		attr int
	}{
		{s.Bold, ansi.AttrBold},
		{s.Faint, ansi.AttrFaint},
		{s.Italic, ansi.AttrItalic},
		{s.Underline, ansi.AttrUnderline},
		{s.Blink, ansi.AttrBlink},
		{s.Reverse, ansi.AttrReverse},
		{s.Conceal, ansi.AttrConceal},
		{s.Strikethrough, ansi.AttrStrikethrough},
	}
	for _, f := range flags {
		if f.on {
			out = append(out, strconv.Itoa(f.attr))
		}
	}
	for _, c := range []string{s.Foreground, s.Background, s.UnderlineColor} {
		if c != "" {
			out = append(out, c)
		}
	}
	return out
}

// Span is a run of text sharing one style.
type Span struct {
	Style Style
	Text  string
}

// StyledLine is one decoded line. Terminator is the original line ending
// ("\n", "\r", "\r\n") or empty for a final unterminated line.
type StyledLine struct {
	Spans      []Span
	Terminator string
}

// String renders the line without its terminator, each styled span wrapped
// in its SGR sequence and a trailing reset.
func (l StyledLine) String() string {
	var sb strings.Builder
	for _, span := range l.Spans {
		sb.WriteString(span.Style.SGR().Styled(span.Text))
	}
	return sb.String()
}

// Plain returns the line text without styling or terminator.
func (l StyledLine) Plain() string {
	var sb strings.Builder
	for _, span := range l.Spans {
		sb.WriteString(span.Text)
	}
	return sb.String()
}

// StyledText is a decoded window of lines.
type StyledText struct {
	Lines []StyledLine
}

// PlainText builds unstyled text, splitting on the same terminators as Text.
func PlainText(s string) StyledText {
	var out StyledText
	idx := indexLines(s)
	for i, start := range idx {
		end := len(s)
		if i+1 < len(idx) {
			end = idx[i+1]
		}
		body, term := splitTerminator(s[start:end])

		line := StyledLine{Terminator: term}
		if body != "" {
			line.Spans = []Span{{Text: body}}
		}
		out.Lines = append(out.Lines, line)
	}
	return out
}

// splitTerminator separates a single indexed line from its line ending.
func splitTerminator(line string) (body, term string) {
	switch {
	case strings.HasSuffix(line, "\r\n"):
		return line[:len(line)-2], "\r\n"
	case strings.HasSuffix(line, "\n"), strings.HasSuffix(line, "\r"):
		return line[:len(line)-1], line[len(line)-1:]
	}
	return line, ""
}

// String renders the text for a terminal, terminators included.
func (t StyledText) String() string {
	var sb strings.Builder
	for _, line := range t.Lines {
		sb.WriteString(line.String())
		sb.WriteString(line.Terminator)
	}
	return sb.String()
}

// Plain returns the text without styling, terminators included.
func (t StyledText) Plain() string {
	var sb strings.Builder
	for _, line := range t.Lines {
		sb.WriteString(line.Plain())
		sb.WriteString(line.Terminator)
	}
	return sb.String()
}

// Rows renders each line for display, without terminators.
func (t StyledText) Rows() []string {
	rows := make([]string, len(t.Lines))
	for i, line := range t.Lines {
		rows[i] = line.String()
	}
	return rows
}
