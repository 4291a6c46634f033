package help

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func TestMarkdown_ListsEveryBinding(t *testing.T) {
	md := Markdown()

	for _, s := range sections() {
		require.Contains(t, md, "## "+s.name)
		for _, b := range s.bindings {
			require.Contains(t, md, b.Help().Desc)
		}
	}
}

func TestView_ContainsSectionsAndFooter(t *testing.T) {
	view := ansi.Strip(New("notty").SetSize(100, 60).View())

	require.Contains(t, view, "Log")
	require.Contains(t, view, "Details")
	require.Contains(t, view, "General")
	require.Contains(t, view, "cycle diff format")
	require.Contains(t, view, "toggle wrap")
	require.Contains(t, view, "Press ? or esc to close")
}

func TestNew_UnknownStyleFallsBack(t *testing.T) {
	m := New("bogus")
	require.NotNil(t, m.renderer)
	require.Equal(t, "dark", m.renderer.Style())
}

func TestOverlay_FitsScreen(t *testing.T) {
	bg := strings.TrimSuffix(strings.Repeat(strings.Repeat(" ", 80)+"\n", 20), "\n")
	out := New("notty").SetSize(80, 20).Overlay(bg)
	rows := strings.Split(out, "\n")

	require.Len(t, rows, 20)
	require.Contains(t, ansi.Strip(out), "Press ? or esc to close")
	for _, r := range rows {
		require.LessOrEqual(t, ansi.StringWidth(r), 80)
	}
}

func TestSetSize_Immutability(t *testing.T) {
	m := New("").SetSize(120, 40)
	m2 := m.SetSize(80, 24)

	require.Equal(t, 120, m.width)
	require.Equal(t, 80, m2.width)
}
