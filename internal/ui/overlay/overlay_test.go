package overlay

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

func blank(w, h int) string {
	rows := make([]string, h)
	for i := range rows {
		rows[i] = strings.Repeat(".", w)
	}
	return strings.Join(rows, "\n")
}

func TestPlace_Center(t *testing.T) {
	out := Place(Config{Width: 10, Height: 5, Position: Center}, "XX\nXX", blank(10, 5))
	rows := strings.Split(ansi.Strip(out), "\n")

	require.Len(t, rows, 5)
	require.Equal(t, "..........", rows[0])
	require.Equal(t, "....XX....", rows[1])
	require.Equal(t, "....XX....", rows[2])
	require.Equal(t, "..........", rows[3])
}

func TestPlace_TopAndBottomPadding(t *testing.T) {
	top := strings.Split(ansi.Strip(Place(Config{Width: 6, Height: 4, Position: Top, PadY: 1}, "AA", blank(6, 4))), "\n")
	require.Equal(t, "..AA..", top[1])

	bottom := strings.Split(ansi.Strip(Place(Config{Width: 6, Height: 4, Position: Bottom}, "BB", blank(6, 4))), "\n")
	require.Equal(t, "..BB..", bottom[3])
}

func TestPlace_RaggedForegroundCoversBackground(t *testing.T) {
	out := Place(Config{Width: 8, Height: 3, Position: Center}, "ABCD\nE", blank(8, 3))
	rows := strings.Split(ansi.Strip(out), "\n")

	require.Equal(t, "..ABCD..", rows[0])
	require.Equal(t, "..E   ..", rows[1])
}

func TestPlace_ShortBackgroundIsPadded(t *testing.T) {
	out := Place(Config{Width: 6, Height: 3, Position: Center}, "X", "")
	rows := strings.Split(ansi.Strip(out), "\n")

	require.Len(t, rows, 3)
	require.Equal(t, "  X", rows[1])
}

func TestPlace_LargeForegroundClampsToOrigin(t *testing.T) {
	out := Place(Config{Width: 4, Height: 2, Position: Center}, "ABCDEFGH\n1\n2\n3", blank(4, 2))
	rows := strings.Split(ansi.Strip(out), "\n")

	require.Len(t, rows, 2)
	require.True(t, strings.HasPrefix(rows[0], "ABCDEFGH"))
}

func TestPlace_PreservesBackgroundStyling(t *testing.T) {
	bg := "\x1b[31mRRRRRRRR\x1b[0m"
	out := Place(Config{Width: 8, Height: 1, Position: Center}, "--", bg)

	require.Equal(t, "RRR--RRR", ansi.Strip(out))
	require.Contains(t, out, "\x1b[31m")
}
