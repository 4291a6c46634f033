package indexedtext

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestNew_MixedTerminators(t *testing.T) {
	text := New("a\r\nb\nc")

	require.Equal(t, []int{0, 3, 5}, text.lineStarts())
	require.Equal(t, 3, text.LineCount())
	require.Equal(t, "b\n", text.Render(1, 1).Plain())
	require.Equal(t, "a\r\nb\nc", text.Render(0, 10).Plain())
}

func TestNew_Empty(t *testing.T) {
	text := New("")

	require.Equal(t, 0, text.LineCount())
	require.Empty(t, text.Slice(0, 5))
	require.Empty(t, text.Render(0, 5).Lines)
}

func TestNew_TrailingTerminator(t *testing.T) {
	text := New("one\ntwo\n")

	require.Equal(t, 2, text.LineCount(), "a trailing newline does not open a new line")
	require.Equal(t, "two\n", text.Slice(1, 1))
}

func TestNew_LoneCarriageReturns(t *testing.T) {
	text := New("a\rb\r\rc")

	require.Equal(t, []int{0, 2, 4, 5}, text.lineStarts())
	require.Equal(t, "\r", text.Slice(2, 1))
}

func TestNew_NewlineThenCarriageReturnAreTwoTerminators(t *testing.T) {
	text := New("a\n\rb")

	require.Equal(t, 3, text.LineCount())
	require.Equal(t, "\r", text.Slice(1, 1))
}

func TestSlice_WindowClamp(t *testing.T) {
	text := New("l0\nl1\nl2\n")

	require.Equal(t, "l1\nl2\n", text.Slice(1, 100), "window past the end keeps trailing lines")
	require.Empty(t, text.Slice(3, 1), "top at line count is empty")
	require.Empty(t, text.Slice(42, 3), "top past line count is empty")
	require.Empty(t, text.Slice(0, 0))
	require.Empty(t, text.Slice(0, -1))
	require.Equal(t, "l0\n", text.Slice(-1, 2), "negative top clips to the first line")
	require.Empty(t, text.Slice(-5, 2))
}

func TestRender_DecodeFailureFallsBackToMessage(t *testing.T) {
	text := New("ok\n\x1b[38;5mbroken\n")

	var rendered StyledText
	require.NotPanics(t, func() {
		rendered = text.Render(0, 2)
	})
	require.Contains(t, rendered.Plain(), "Error rendering content")
	require.Contains(t, rendered.Plain(), ErrInvalidColor.Error())
}

func TestRender_OnlyDecodesWindow(t *testing.T) {
	// The broken sequence sits outside the requested window.
	text := New("\x1b[31mred\x1b[0m\nplain\n\x1b[")

	rendered := text.Render(0, 2)
	require.Equal(t, "red\nplain\n", rendered.Plain())
	require.Equal(t, "31", rendered.Lines[0].Spans[0].Style.Foreground)
}

func TestRender_LargeContentWindow(t *testing.T) {
	var sb strings.Builder
	for i := range 100_000 {
		sb.WriteString("\x1b[32m+ line ")
		sb.WriteString(strings.Repeat("x", i%17))
		sb.WriteString("\x1b[0m\n")
	}
	text := New(sb.String())

	require.Equal(t, 100_000, text.LineCount())
	rendered := text.Render(99_990, 50)
	require.Len(t, rendered.Lines, 10)
}

// lineGen draws one line body free of terminators and escapes.
func lineGen() *rapid.Generator[string] {
	return rapid.StringMatching(`[a-zA-Z0-9 \t.,:;+\-]{0,12}`)
}

func terminatorGen() *rapid.Generator[string] {
	return rapid.SampledFrom([]string{"\n", "\r", "\r\n"})
}

func TestProperty_LineIndexRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		k := rapid.IntRange(0, 40).Draw(rt, "terminators")

		var sb strings.Builder
		for range k {
			sb.WriteString(lineGen().Draw(rt, "body"))
			term := terminatorGen().Draw(rt, "terminator")
			// "\r" directly followed by "\n" is a single terminator.
			if term == "\n" && strings.HasSuffix(sb.String(), "\r") {
				term = "\r\n"
			}
			sb.WriteString(term)
		}
		content := sb.String()
		text := New(content)

		require.Equal(rt, k, text.LineCount())

		var rebuilt strings.Builder
		for i := range text.LineCount() {
			rebuilt.WriteString(text.Render(i, 1).Plain())
		}
		require.Equal(rt, content, rebuilt.String())
	})
}

func TestProperty_WindowClamp(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		lines := rapid.IntRange(0, 30).Draw(rt, "lines")
		var sb strings.Builder
		for range lines {
			sb.WriteString(lineGen().Draw(rt, "body"))
			sb.WriteString("\n")
		}
		text := New(sb.String())

		top := rapid.IntRange(0, 40).Draw(rt, "top")
		count := rapid.IntRange(0, 40).Draw(rt, "count")

		got := text.Render(top, count)
		want := 0
		if top < lines {
			want = min(count, lines-top)
		}
		require.Len(rt, got.Lines, want)
		require.Equal(rt, text.Slice(top, count), got.Plain())
	})
}

func TestProperty_SliceConcatenation(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		content := rapid.StringMatching(`([a-z]{0,4}(\n|\r|\r\n)){0,20}[a-z]{0,4}`).Draw(rt, "content")
		text := New(content)
		split := rapid.IntRange(0, text.LineCount()).Draw(rt, "split")

		head := text.Slice(0, split)
		tail := text.Slice(split, text.LineCount())
		require.Equal(rt, content, head+tail)
	})
}
