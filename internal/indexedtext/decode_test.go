package indexedtext

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestDecode_PlainText(t *testing.T) {
	out, err := Decode("hello\nworld")
	require.NoError(t, err)
	require.Len(t, out.Lines, 2)
	require.Equal(t, "\n", out.Lines[0].Terminator)
	require.Equal(t, "", out.Lines[1].Terminator)
	require.Equal(t, "hello\nworld", out.Plain())
	require.Equal(t, "hello\nworld", out.String(), "unstyled text renders without escapes")
}

func TestDecode_ColorSpans(t *testing.T) {
	out, err := Decode("a\x1b[1;31mb\x1b[22mc\x1b[0md\n")
	require.NoError(t, err)
	require.Len(t, out.Lines, 1)

	spans := out.Lines[0].Spans
	require.Len(t, spans, 4)
	require.True(t, spans[0].Style.IsZero())
	require.Equal(t, Style{Bold: true, Foreground: "31"}, spans[1].Style)
	require.Equal(t, Style{Foreground: "31"}, spans[2].Style)
	require.True(t, spans[3].Style.IsZero())
	require.Equal(t, "abcd\n", out.Plain())
}

func TestDecode_StyleCarriesAcrossLines(t *testing.T) {
	out, err := Decode("\x1b[32mone\ntwo\x1b[m\n")
	require.NoError(t, err)
	require.Len(t, out.Lines, 2)
	require.Equal(t, "32", out.Lines[1].Spans[0].Style.Foreground)
}

func TestDecode_ExtendedColors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Style
	}{
		{"256 foreground", "\x1b[38;5;208mx", Style{Foreground: "38;5;208"}},
		{"truecolor background", "\x1b[48;2;1;2;3mx", Style{Background: "48;2;1;2;3"}},
		{"colon form", "\x1b[38:5:12mx", Style{Foreground: "38;5;12"}},
		{"colon form with color space", "\x1b[38:2::10:20:30mx", Style{Foreground: "38;2;10;20;30"}},
		{"underline color", "\x1b[4;58;5;1mx", Style{Underline: true, UnderlineColor: "58;5;1"}},
		{"followed by bold", "\x1b[38;5;1;1mx", Style{Foreground: "38;5;1", Bold: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Decode(tt.input)
			require.NoError(t, err)
			require.Equal(t, tt.want, out.Lines[0].Spans[0].Style)
		})
	}
}

func TestDecode_DropsNonStyleSequences(t *testing.T) {
	// Cursor movement, OSC hyperlink and a private mode set.
	input := "\x1b[2Kx\x1b]8;;https://example.com\x07link\x1b]8;;\x07\x1b[?25hy"
	out, err := Decode(input)
	require.NoError(t, err)
	require.Equal(t, "xlinky", out.Plain())
}

func TestDecode_DropsControlCharacters(t *testing.T) {
	out, err := Decode("be\ball\a\tx\x00\x7fy\x1b[31mz\x0e\n")
	require.NoError(t, err)
	require.Equal(t, "beall\txyz\n", out.Plain())
	require.Len(t, out.Rows(), 1)
	require.NotContains(t, out.Rows()[0], "\a")
	require.NotContains(t, out.Rows()[0], "\b")
}

func TestProperty_RowsHoldNoControlCharacters(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		input := rapid.StringMatching(`([a-z]|[\x00-\x08]|[\x0b-\x0c]|[\x0e-\x1a]|\x7f|\n){0,60}`).Draw(rt, "input")
		out, err := Decode(input)
		require.NoError(rt, err)
		for _, row := range out.Rows() {
			for _, r := range row {
				require.False(rt, r < 0x20 || r == 0x7f, "control %q in row %q", r, row)
			}
		}
	})
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"unterminated csi", "text\x1b[31", ErrUnterminated},
		{"unterminated osc", "\x1b]8;;https://x", ErrUnterminated},
		{"lone escape at end", "abc\x1b", ErrUnterminated},
		{"invalid csi byte", "\x1b[31\x01m", ErrInvalidSequence},
		{"stray escape", "\x1b\x01", ErrInvalidSequence},
		{"short 256 color", "\x1b[38;5m", ErrInvalidColor},
		{"short truecolor", "\x1b[48;2;1;2m", ErrInvalidColor},
		{"unknown color mode", "\x1b[38;7;1m", ErrInvalidColor},
		{"component out of range", "\x1b[38;2;1;2;300m", ErrInvalidColor},
		{"invalid utf8", "ok\xff\n", ErrInvalidUTF8},
		{"too many params", "\x1b[" + strings.Repeat("1;", 40) + "m", ErrInvalidSequence},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error
			require.NotPanics(t, func() {
				_, err = Decode(tt.input)
			})
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestStyledText_StringReEncodes(t *testing.T) {
	out, err := Decode("\x1b[1;32mok\x1b[0m\n")
	require.NoError(t, err)
	require.Equal(t, "\x1b[1;32mok\x1b[m\n", out.String())
}

func TestPlainText_SplitsTerminators(t *testing.T) {
	out := PlainText("x\r\ny\rz")
	require.Len(t, out.Lines, 3)
	require.Equal(t, "\r\n", out.Lines[0].Terminator)
	require.Equal(t, "\r", out.Lines[1].Terminator)
	require.Equal(t, "x\r\ny\rz", out.Plain())
}

func TestStyledText_Rows(t *testing.T) {
	out, err := Decode("a\nb\n")
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, out.Rows())
}

func TestProperty_PlainInputDecodesToItself(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		input := rapid.StringMatching(`([ -~\t]|é|漢|\n|\r){0,80}`).Draw(rt, "input")
		out, err := Decode(input)
		require.NoError(rt, err)
		require.Equal(rt, input, out.Plain())
	})
}

func TestProperty_DecodeNeverPanics(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		input := rapid.StringMatching(`(\x1b|\[|\]|;|:|[0-9]{1,3}|m|[a-z]|\n|\x07){0,60}`).Draw(rt, "input")
		require.NotPanics(rt, func() {
			_, _ = Decode(input)
		})
	})
}
