package panes

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestScrollbarEdge_NilWhenContentFits(t *testing.T) {
	require.Nil(t, ScrollbarEdge(Scroll{TotalLines: 5, ViewportHeight: 10}))
	require.Nil(t, ScrollbarEdge(Scroll{TotalLines: 10, ViewportHeight: 10}))
	require.Nil(t, ScrollbarEdge(Scroll{TotalLines: 10, ViewportHeight: 0}))
}

func TestScrollbarEdge_ThumbPosition(t *testing.T) {
	thumbRows := func(cells []string) []int {
		var rows []int
		for i, c := range cells {
			if ansi.Strip(c) == scrollbarThumbChar {
				rows = append(rows, i)
			}
		}
		return rows
	}

	top := ScrollbarEdge(Scroll{TotalLines: 100, ViewportHeight: 10, Offset: 0})
	require.Len(t, top, 10)
	require.Equal(t, []int{0}, thumbRows(top))

	bottom := ScrollbarEdge(Scroll{TotalLines: 100, ViewportHeight: 10, Offset: 99})
	require.Equal(t, []int{9}, thumbRows(bottom))

	half := ScrollbarEdge(Scroll{TotalLines: 20, ViewportHeight: 10, Offset: 0})
	require.Equal(t, []int{0, 1, 2, 3, 4}, thumbRows(half))
}

func TestProperty_ThumbStaysInTrack(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		total := rapid.IntRange(1, 100_000).Draw(t, "total")
		height := rapid.IntRange(1, 200).Draw(t, "height")
		offset := rapid.IntRange(-5, total+5).Draw(t, "offset")

		start, size := thumbBounds(Scroll{TotalLines: total, ViewportHeight: height, Offset: offset})
		if size < 1 || start < 0 || start+size > height {
			t.Fatalf("thumb [%d,+%d) outside track of %d", start, size, height)
		}
	})
}
