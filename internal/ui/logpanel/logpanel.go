// Package logpanel renders the commit list and tracks the selected change.
package logpanel

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/jjview/internal/jj"
	"github.com/zjrosen/jjview/internal/keys"
	"github.com/zjrosen/jjview/internal/ui/shared/panes"
	"github.com/zjrosen/jjview/internal/ui/styles"
)

const (
	authorWidth     = 14
	timestampLayout = "2006-01-02 15:04"
	divergentMarker = "??"
)

var (
	changeIDStyle  = lipgloss.NewStyle().Foreground(styles.ChangeIDColor).Bold(true)
	commitIDStyle  = lipgloss.NewStyle().Foreground(styles.CommitIDColor)
	bookmarkStyle  = lipgloss.NewStyle().Foreground(styles.BookmarkColor)
	divergentStyle = lipgloss.NewStyle().Foreground(styles.DivergentColor).Bold(true)
	authorStyle    = lipgloss.NewStyle().Foreground(styles.TextSecondaryColor)
	timeStyle      = lipgloss.NewStyle().Foreground(styles.TextDescriptionColor)
	wcStyle        = lipgloss.NewStyle().Foreground(styles.WorkingCopy).Bold(true)
)

// Model holds the log panel state.
type Model struct {
	entries  []jj.LogEntry
	selected int
	offset   int
	revset   string
	focused  bool
	width    int
	height   int
}

// New creates an empty log panel.
func New() Model {
	return Model{focused: true}
}

// SetSize updates the panel rectangle, borders included.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m.follow()
}

// SetFocused toggles the focused border color.
func (m Model) SetFocused(focused bool) Model {
	m.focused = focused
	return m
}

// SetRevset sets the revset shown in the title.
func (m Model) SetRevset(revset string) Model {
	m.revset = revset
	return m
}

// SetEntries replaces the commit list. The selection follows the selected
// change when it is still listed and stays at the same row otherwise.
func (m Model) SetEntries(entries []jj.LogEntry) Model {
	prev, hadPrev := m.Selected()
	m.entries = entries

	if hadPrev {
		for i, e := range entries {
			if e.Head == prev.Head {
				m.selected = i
				return m.follow()
			}
		}
		for i, e := range entries {
			if e.Head.ChangeID == prev.Head.ChangeID {
				m.selected = i
				return m.follow()
			}
		}
	}
	m.selected = max(0, min(m.selected, len(entries)-1))
	return m.follow()
}

// Entries returns the commit list.
func (m Model) Entries() []jj.LogEntry {
	return m.entries
}

// Heads returns the heads of every listed commit, in display order.
func (m Model) Heads() []jj.Head {
	heads := make([]jj.Head, len(m.entries))
	for i, e := range m.entries {
		heads[i] = e.Head
	}
	return heads
}

// Selected returns the selected entry. False when the log is empty.
func (m Model) Selected() (jj.LogEntry, bool) {
	if m.selected < 0 || m.selected >= len(m.entries) {
		return jj.LogEntry{}, false
	}
	return m.entries[m.selected], true
}

// Select moves the selection to index i, clamped.
func (m Model) Select(i int) Model {
	m.selected = max(0, min(i, len(m.entries)-1))
	return m.follow()
}

func (m Model) rows() int {
	_, rows := panes.InnerSize(m.width, m.height, 0)
	return rows
}

// follow scrolls just enough to keep the selection visible.
func (m Model) follow() Model {
	rows := m.rows()
	if m.selected < m.offset {
		m.offset = m.selected
	}
	if m.selected >= m.offset+rows {
		m.offset = m.selected - rows + 1
	}
	m.offset = max(0, min(m.offset, len(m.entries)-rows))
	return m
}

// HandleKey moves the selection. The second result reports whether the
// key was consumed.
func (m Model) HandleKey(msg tea.KeyMsg) (Model, bool) {
	switch {
	case key.Matches(msg, keys.Log.Down):
		return m.Select(m.selected + 1), true
	case key.Matches(msg, keys.Log.Up):
		return m.Select(m.selected - 1), true
	case key.Matches(msg, keys.Log.Top):
		return m.Select(0), true
	case key.Matches(msg, keys.Log.Bottom):
		return m.Select(len(m.entries) - 1), true
	}
	return m, false
}

// Update handles key messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		m, _ = m.HandleKey(k)
	}
	return m, nil
}

// View renders the panel.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	cols, rows := panes.InnerSize(m.width, m.height, 0)

	var lines []string
	for i := m.offset; i < len(m.entries) && i < m.offset+rows; i++ {
		line := padCells(renderEntry(m.entries[i]), cols)
		if i == m.selected {
			line = styles.SelectedRowStyle().Render(ansi.Strip(line))
		}
		lines = append(lines, line)
	}
	if len(m.entries) == 0 {
		lines = append(lines, styles.MutedStyle.Render("(no commits)"))
	}

	title := "Log"
	if m.revset != "" {
		title += ": " + m.revset
	}

	var position string
	if len(m.entries) > 0 {
		position = fmt.Sprintf("%d/%d", m.selected+1, len(m.entries))
	}

	return panes.BorderedPane(panes.BorderConfig{
		Content:            strings.Join(lines, "\n"),
		Width:              m.width,
		Height:             m.height,
		TopLeft:            title,
		BottomRight:        position,
		Focused:            m.focused,
		FocusedBorderColor: styles.BorderFocusColor,
	})
}
