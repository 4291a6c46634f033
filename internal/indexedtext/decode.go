package indexedtext

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
)

// Decode errors.
var (
	// ErrInvalidUTF8 indicates the window is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("invalid utf-8")

	// ErrUnterminated indicates an escape sequence runs off the end of input.
	ErrUnterminated = errors.New("unterminated escape sequence")

	// ErrInvalidSequence indicates a malformed escape or control sequence.
	ErrInvalidSequence = errors.New("invalid escape sequence")

	// ErrInvalidColor indicates a malformed extended color in an SGR sequence.
	ErrInvalidColor = errors.New("invalid sgr color")
)

// Decode converts ANSI-styled text into styled lines.
//
// Only SGR sequences affect the result; every other escape sequence is
// dropped, as are C0 controls other than tab and line endings. Line endings
// follow the same rules as the line index.
func Decode(s string) (out StyledText, err error) {
	if !utf8.ValidString(s) {
		return StyledText{}, ErrInvalidUTF8
	}

	// The parser indexes a fixed parameter buffer and panics when a
	// sequence carries too many parameters.
	defer func() {
		if r := recover(); r != nil {
			out = StyledText{}
			err = fmt.Errorf("%w: %v", ErrInvalidSequence, r)
		}
	}()

	d := decoder{parser: ansi.NewParser()}
	if err := d.run(s); err != nil {
		return StyledText{}, err
	}
	return d.out, nil
}

type decoder struct {
	parser *ansi.Parser
	out    StyledText
	style  Style
	line   StyledLine
	text   strings.Builder
	// afterCR is set right after a "\r" ended a line, so a following "\n"
	// joins the same terminator.
	afterCR bool
}

func (d *decoder) run(s string) error {
	var state byte
	for len(s) > 0 {
		seq, _, n, next := ansi.DecodeSequence(s, state, d.parser)
		if n <= 0 {
			return fmt.Errorf("%w: no progress at %q", ErrInvalidSequence, truncateForError(s))
		}
		state = next
		s = s[n:]

		if state != ansi.NormalState {
			return fmt.Errorf("%w: %q", ErrUnterminated, truncateForError(seq))
		}
		if err := d.handle(seq); err != nil {
			return err
		}
	}

	d.flushSpan()
	if len(d.line.Spans) > 0 {
		d.out.Lines = append(d.out.Lines, d.line)
	}
	return nil
}

func (d *decoder) handle(seq string) error {
	switch {
	case seq == "\n":
		if d.afterCR {
			last := &d.out.Lines[len(d.out.Lines)-1]
			last.Terminator += "\n"
			d.afterCR = false
			return nil
		}
		d.endLine("\n")
		return nil
	case seq == "\r":
		d.endLine("\r")
		d.afterCR = true
		return nil
	}
	d.afterCR = false

	switch {
	case ansi.HasCsiPrefix(seq):
		return d.handleCSI(seq)
	case seq[0] == ansi.ESC:
		// A bare ESC is what the decoder returns for an escape followed by
		// a byte that cannot start or finish any sequence.
		if len(seq) == 1 {
			return fmt.Errorf("%w: stray ESC", ErrInvalidSequence)
		}
		// OSC, DCS, APC and plain ESC sequences carry no styling.
		return nil
	case isControl(seq):
		return nil
	}

	d.text.WriteString(seq)
	return nil
}

// isControl reports whether seq is a single C0 control other than tab, or DEL.
func isControl(seq string) bool {
	if len(seq) != 1 {
		return false
	}
	c := seq[0]
	return (c < 0x20 && c != '\t') || c == 0x7f
}

func (d *decoder) handleCSI(seq string) error {
	cmd := ansi.Cmd(d.parser.Command())
	final := seq[len(seq)-1]
	if final < '@' || final > '~' || cmd.Final() != final {
		return fmt.Errorf("%w: %q", ErrInvalidSequence, seq)
	}
	if final != 'm' || cmd.Prefix() != 0 || cmd.Intermediate() != 0 {
		return nil
	}

	next := d.style
	if err := next.apply(d.parser.Params()); err != nil {
		return fmt.Errorf("%w in %q", err, seq)
	}
	if next != d.style {
		d.flushSpan()
		d.style = next
	}
	return nil
}

func (d *decoder) flushSpan() {
	if d.text.Len() == 0 {
		return
	}
	d.line.Spans = append(d.line.Spans, Span{Style: d.style, Text: d.text.String()})
	d.text.Reset()
}

func (d *decoder) endLine(term string) {
	d.flushSpan()
	d.line.Terminator = term
	d.out.Lines = append(d.out.Lines, d.line)
	d.line = StyledLine{}
}

// apply folds one SGR parameter list into the style.
func (s *Style) apply(params ansi.Params) error {
	if len(params) == 0 {
		*s = Style{}
		return nil
	}

	for i := 0; i < len(params); i++ {
		p := params[i].Param(0)
		switch {
		case p == 0:
			*s = Style{}
		case p == 1:
			s.Bold = true
		case p == 2:
			s.Faint = true
		case p == 3:
			s.Italic = true
		case p == 4 || p == 21:
			s.Underline = true
		case p == 5 || p == 6:
			s.Blink = true
		case p == 7:
			s.Reverse = true
		case p == 8:
			s.Conceal = true
		case p == 9:
			s.Strikethrough = true
		case p == 22:
			s.Bold, s.Faint = false, false
		case p == 23:
			s.Italic = false
		case p == 24:
			s.Underline = false
		case p == 25:
			s.Blink = false
		case p == 27:
			s.Reverse = false
		case p == 28:
			s.Conceal = false
		case p == 29:
			s.Strikethrough = false
		case p >= 30 && p <= 37, p >= 90 && p <= 97:
			s.Foreground = strconv.Itoa(p)
		case p == 39:
			s.Foreground = ""
		case p >= 40 && p <= 47, p >= 100 && p <= 107:
			s.Background = strconv.Itoa(p)
		case p == 49:
			s.Background = ""
		case p == 59:
			s.UnderlineColor = ""
		case p == 38 || p == 48 || p == 58:
			color, used, err := extendedColor(p, params[i].HasMore(), params[i+1:])
			if err != nil {
				return err
			}
			i += used
			switch p {
			case 38:
				s.Foreground = color
			case 48:
				s.Background = color
			default:
				s.UnderlineColor = color
			}
		}
	}
	return nil
}

// extendedColor parses the arguments of a 38/48/58 parameter, in either the
// "38;5;n" form or the colon form "38:2::r:g:b". It returns the SGR form and
// the number of parameters consumed after the introducer.
func extendedColor(intro int, colon bool, rest ansi.Params) (string, int, error) {
	args := make([]int, 0, 5)
	used := 0

	if colon {
		for used < len(rest) {
			args = append(args, rest[used].Param(-1))
			used++
			if !rest[used-1].HasMore() {
				break
			}
		}
		// The colon form may carry a color space id before r:g:b.
		if len(args) == 5 && args[0] == 2 {
			args = append(args[:1], args[2:]...)
		}
	} else if len(rest) > 0 {
		args = append(args, rest[0].Param(-1))
		want := 0
		switch args[0] {
		case 5:
			want = 1
		case 2:
			want = 3
		}
		if want > len(rest)-1 {
			return "", 0, fmt.Errorf("%w: %d needs %d arguments", ErrInvalidColor, intro, want)
		}
		for j := 1; j <= want; j++ {
			args = append(args, rest[j].Param(-1))
		}
		used = 1 + want
	}

	if len(args) == 0 {
		return "", 0, fmt.Errorf("%w: %d without arguments", ErrInvalidColor, intro)
	}

	switch {
	case args[0] == 5 && len(args) == 2:
	case args[0] == 2 && len(args) == 4:
	default:
		return "", 0, fmt.Errorf("%w: %d with arguments %v", ErrInvalidColor, intro, args)
	}

	parts := []string{strconv.Itoa(intro), strconv.Itoa(args[0])}
	for _, v := range args[1:] {
		if v < 0 || v > 255 {
			return "", 0, fmt.Errorf("%w: component %d out of range", ErrInvalidColor, v)
		}
		parts = append(parts, strconv.Itoa(v))
	}
	return strings.Join(parts, ";"), used, nil
}

func truncateForError(s string) string {
	const limit = 24
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
