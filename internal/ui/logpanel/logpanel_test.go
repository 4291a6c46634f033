package logpanel

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/jjview/internal/jj"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func entry(change, commit string) jj.LogEntry {
	return jj.LogEntry{
		Head:        jj.Head{ChangeID: jj.ChangeID(change), CommitID: jj.CommitID(commit)},
		Author:      "alice@example.com",
		Timestamp:   time.Date(2026, 1, 2, 15, 4, 0, 0, time.Local),
		Description: "describe " + change,
	}
}

func manyEntries(n int) []jj.LogEntry {
	out := make([]jj.LogEntry, n)
	for i := range out {
		out[i] = entry(fmt.Sprintf("change%04d", i), fmt.Sprintf("commit%04d", i))
	}
	return out
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestHeads_InDisplayOrder(t *testing.T) {
	m := New().SetEntries([]jj.LogEntry{entry("aaa", "111"), entry("bbb", "222")})

	require.Equal(t, []jj.Head{
		{ChangeID: "aaa", CommitID: "111"},
		{ChangeID: "bbb", CommitID: "222"},
	}, m.Heads())
}

func TestSelected_EmptyLog(t *testing.T) {
	_, ok := New().Selected()
	require.False(t, ok)
	require.Empty(t, New().Heads())
}

func TestHandleKey_Navigation(t *testing.T) {
	m := New().SetSize(60, 10).SetEntries(manyEntries(20))

	m, handled := m.HandleKey(runes("j"))
	require.True(t, handled)
	sel, _ := m.Selected()
	require.Equal(t, jj.ChangeID("change0001"), sel.Head.ChangeID)

	m, _ = m.HandleKey(runes("G"))
	sel, _ = m.Selected()
	require.Equal(t, jj.ChangeID("change0019"), sel.Head.ChangeID)

	m, _ = m.HandleKey(runes("j"))
	sel, _ = m.Selected()
	require.Equal(t, jj.ChangeID("change0019"), sel.Head.ChangeID, "clamped at bottom")

	m, _ = m.HandleKey(runes("g"))
	m, _ = m.HandleKey(runes("k"))
	sel, _ = m.Selected()
	require.Equal(t, jj.ChangeID("change0000"), sel.Head.ChangeID, "clamped at top")

	_, handled = m.HandleKey(runes("d"))
	require.False(t, handled)
}

func TestSetEntries_FollowsSelectedChange(t *testing.T) {
	m := New().SetEntries([]jj.LogEntry{entry("aaa", "111"), entry("bbb", "222"), entry("ccc", "333")}).Select(1)

	// bbb was rewritten and moved to the top.
	m = m.SetEntries([]jj.LogEntry{entry("bbb", "999"), entry("aaa", "111"), entry("ccc", "333")})
	sel, _ := m.Selected()
	require.Equal(t, jj.Head{ChangeID: "bbb", CommitID: "999"}, sel.Head)

	// bbb abandoned: selection stays on the same row.
	m = m.SetEntries([]jj.LogEntry{entry("aaa", "111"), entry("ccc", "333")})
	sel, _ = m.Selected()
	require.Equal(t, jj.ChangeID("aaa"), sel.Head.ChangeID)
}

func TestSetEntries_PrefersExactHeadForDivergentChange(t *testing.T) {
	a := entry("div", "111")
	a.Divergent = true
	b := entry("div", "222")
	b.Divergent = true

	m := New().SetEntries([]jj.LogEntry{a, b}).Select(1)
	m = m.SetEntries([]jj.LogEntry{entry("new", "000"), a, b})

	sel, _ := m.Selected()
	require.Equal(t, jj.CommitID("222"), sel.Head.CommitID)
}

func TestView_KeepsSelectionVisible(t *testing.T) {
	m := New().SetSize(80, 7).SetEntries(manyEntries(50)).Select(30)
	view := ansi.Strip(m.View())

	require.Contains(t, view, "change00")
	require.Contains(t, view, "describe change0030")
	require.NotContains(t, view, "describe change0025")
	require.Contains(t, view, "31/50")
}

func TestView_RowDetails(t *testing.T) {
	wc := entry("wcchange", "wccommit")
	wc.IsWorkingCopy = true
	wc.Empty = true
	wc.Description = ""
	div := entry("divchangeXYZ", "divcommit")
	div.Divergent = true
	div.Bookmarks = []string{"main", "feature"}

	m := New().SetSize(120, 6).SetEntries([]jj.LogEntry{wc, div})
	lines := strings.Split(ansi.Strip(m.View()), "\n")

	require.Contains(t, lines[1], "@ wcchange")
	require.Contains(t, lines[1], "(empty) (no description set)")
	require.Contains(t, lines[2], "divchang??")
	require.Contains(t, lines[2], "main feature")
	require.Contains(t, lines[2], "alice ")
	require.Contains(t, lines[2], "2026-01-02 15:04")
}

func TestView_EmptyLog(t *testing.T) {
	view := ansi.Strip(New().SetSize(40, 5).SetRevset("none()").View())

	require.Contains(t, view, "(no commits)")
	require.Contains(t, view, "Log: none()")
}

func TestFixedWidth(t *testing.T) {
	require.Equal(t, "bob       ", fixedWidth("bob", 10))
	require.Equal(t, "abcdefghi…", fixedWidth("abcdefghijklmnop", 10))
	require.Equal(t, "日本語    ", fixedWidth("日本語", 10))
}

func TestAuthorName(t *testing.T) {
	require.Equal(t, "alice", authorName("alice@example.com"))
	require.Equal(t, "noemail", authorName("noemail"))
	require.Equal(t, "@weird", authorName("@weird"))
}
