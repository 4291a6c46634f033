// Package logoverlay provides an in-app log viewer overlay that shows
// recent debug log entries without leaving the TUI.
package logoverlay

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/jjview/internal/log"
	"github.com/zjrosen/jjview/internal/ui/overlay"
	"github.com/zjrosen/jjview/internal/ui/styles"
)

const (
	viewportMaxHeight = 25  // Fixed viewport height in lines
	viewportMinHeight = 5   // Minimum viewport height for very small screens
	boxMaxWidth       = 160 // Maximum box width in characters
	boxMinWidth       = 40  // Minimum box width in characters

	// DefaultCapacity is how many entries are retained.
	DefaultCapacity = 500
)

// CloseMsg is sent when the overlay is closed.
type CloseMsg struct{}

// Model is the log overlay state. Entries arrive through Append; the
// overlay keeps the most recent ones up to its capacity.
type Model struct {
	visible  bool
	enabled  bool
	minLevel log.Level
	entries  []string
	capacity int
	width    int
	height   int
	viewport viewport.Model
}

// New creates a hidden overlay. enabled reports whether debug logging is
// on; when it is not the overlay explains how to turn it on.
func New(enabled bool) Model {
	return Model{
		enabled:  enabled,
		minLevel: log.LevelDebug,
		capacity: DefaultCapacity,
	}
}

// Append records one log entry, dropping the oldest past capacity.
func (m Model) Append(entry string) Model {
	entry = strings.TrimSuffix(entry, "\n")
	if entry == "" {
		return m
	}
	m.entries = append(m.entries, entry)
	if over := len(m.entries) - m.capacity; over > 0 {
		m.entries = append([]string(nil), m.entries[over:]...)
	}
	if m.visible {
		m = m.refresh(true)
	}
	return m
}

// Entries returns the retained entries, oldest first.
func (m Model) Entries() []string {
	return m.entries
}

// Update handles keys while the overlay is visible.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.visible {
		return m, nil
	}

	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch k.String() {
	case "c":
		m.entries = nil
		return m.refresh(false), nil
	case "d":
		m.minLevel = log.LevelDebug
		return m.refresh(true), nil
	case "i":
		m.minLevel = log.LevelInfo
		return m.refresh(true), nil
	case "w":
		m.minLevel = log.LevelWarn
		return m.refresh(true), nil
	case "e":
		m.minLevel = log.LevelError
		return m.refresh(true), nil
	case "j", "down":
		m.viewport.ScrollDown(1)
	case "k", "up":
		m.viewport.ScrollUp(1)
	case "g":
		m.viewport.GotoTop()
	case "G":
		m.viewport.GotoBottom()
	case "ctrl+x", "esc", "q":
		m.visible = false
		return m, func() tea.Msg { return CloseMsg{} }
	}
	return m, nil
}

// Toggle shows or hides the overlay. It opens scrolled to the newest entry.
func (m Model) Toggle() Model {
	m.visible = !m.visible
	if m.visible {
		m = m.refresh(true)
	}
	return m
}

// Visible returns whether the overlay is currently visible.
func (m Model) Visible() bool {
	return m.visible
}

// MinLevel returns the filter level.
func (m Model) MinLevel() log.Level {
	return m.minLevel
}

// SetSize updates the screen dimensions.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m.refresh(false)
}

// View renders the log box.
func (m Model) View() string {
	if !m.visible {
		return ""
	}

	boxWidth := m.boxWidth()
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.OverlayTitleColor).
		PaddingLeft(1)
	dividerStyle := lipgloss.NewStyle().Foreground(styles.OverlayBorderColor)
	divider := dividerStyle.Render(strings.Repeat("─", boxWidth))

	body := strings.Join([]string{
		titleStyle.Render("Debug log"),
		divider,
		m.viewport.View(),
		divider,
		m.filterHint(),
	}, "\n")

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OverlayBorderColor).
		Width(boxWidth).
		Render(body)
}

// Overlay renders the log box centered on the given background.
func (m Model) Overlay(bg string) string {
	if !m.visible {
		return bg
	}
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, m.View(), bg)
}

func (m Model) boxWidth() int {
	return max(min(m.width-4, boxMaxWidth), boxMinWidth)
}

// refresh rebuilds the viewport. bottom scrolls to the newest entry.
func (m Model) refresh(bottom bool) Model {
	if m.width == 0 || m.height == 0 {
		return m
	}

	// Header, footer and their dividers take 4 lines, borders 2 more.
	height := min(viewportMaxHeight, m.height-6)
	height = max(height, viewportMinHeight)
	contentWidth := m.boxWidth() - 2

	offset := m.viewport.YOffset
	m.viewport = viewport.New(contentWidth, height)
	m.viewport.SetContent(m.content(contentWidth))
	if bottom {
		m.viewport.GotoBottom()
	} else {
		m.viewport.SetYOffset(offset)
	}
	return m
}

func (m Model) content(width int) string {
	muted := lipgloss.NewStyle().Foreground(styles.TextMutedColor).Italic(true)
	if !m.enabled {
		return muted.Render("Debug logging is off. Run with --debug or JJVIEW_DEBUG=1.")
	}

	var lines []string
	for _, entry := range m.entries {
		if entryLevel(entry) >= m.minLevel {
			lines = append(lines, colorize(entry, width))
		}
	}
	if len(lines) == 0 {
		return muted.Render("No logs to display")
	}
	return strings.Join(lines, "\n")
}

// entryLevel reads the level tag written by the log package. Entries
// without one are treated as errors so no filter hides them.
func entryLevel(entry string) log.Level {
	switch {
	case strings.Contains(entry, "[ERROR]"):
		return log.LevelError
	case strings.Contains(entry, "[WARN]"):
		return log.LevelWarn
	case strings.Contains(entry, "[INFO]"):
		return log.LevelInfo
	case strings.Contains(entry, "[DEBUG]"):
		return log.LevelDebug
	default:
		return log.LevelError
	}
}

func colorize(entry string, width int) string {
	if ansi.StringWidth(entry) > width {
		entry = ansi.Truncate(entry, width, "...")
	}

	var color lipgloss.TerminalColor
	switch entryLevel(entry) {
	case log.LevelError:
		color = styles.StatusErrorColor
	case log.LevelWarn:
		color = styles.StatusWarningColor
	case log.LevelInfo:
		color = styles.TextPrimaryColor
	default:
		color = styles.TextMutedColor
	}
	return lipgloss.NewStyle().Foreground(color).Render(entry)
}

func (m Model) filterHint() string {
	hint := lipgloss.NewStyle().Foreground(styles.TextMutedColor)
	active := lipgloss.NewStyle().Foreground(styles.TextPrimaryColor).Bold(true)

	parts := []string{hint.Render("[c] Clear")}
	for _, f := range []struct {
		level log.Level
		label string
	}{
		{log.LevelDebug, "[d] Debug"},
		{log.LevelInfo, "[i] Info"},
		{log.LevelWarn, "[w] Warn"},
		{log.LevelError, "[e] Error"},
	} {
		if f.level == m.minLevel {
			parts = append(parts, active.Render(f.label))
		} else {
			parts = append(parts, hint.Render(f.label))
		}
	}
	return strings.Join(parts, "  ")
}
