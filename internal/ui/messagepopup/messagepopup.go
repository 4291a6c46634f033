// Package messagepopup shows a titled message on top of the screen until
// the user dismisses it.
package messagepopup

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/jjview/internal/keys"
	"github.com/zjrosen/jjview/internal/ui/overlay"
	"github.com/zjrosen/jjview/internal/ui/styles"
)

// Alignment of the message lines inside the popup.
type Alignment int

const (
	AlignCenter Alignment = iota
	AlignLeft
)

// Popup width bounds, in cells, borders included.
const (
	minWidth = 30
	maxWidth = 100
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#008B8B", Dark: "#00FFFF"})

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(styles.StatusSuccessColor).
			Padding(0, 1)

	footerStyle = lipgloss.NewStyle().
			Foreground(styles.TextMutedColor)
)

// DismissedMsg is sent when the user closes the popup.
type DismissedMsg struct{}

// Model holds the popup state.
type Model struct {
	title    string
	messages []string
	align    Alignment
	visible  bool
	width    int
	height   int
}

// New creates a hidden popup.
func New() Model {
	return Model{}
}

// Show displays a popup with the given title and message lines.
func (m Model) Show(title string, messages []string, align Alignment) Model {
	m.title = title
	m.messages = messages
	m.align = align
	m.visible = true
	return m
}

// ShowError displays err, one popup line per line of its message.
func (m Model) ShowError(title string, err error) Model {
	return m.Show(title, strings.Split(strings.TrimRight(err.Error(), "\n"), "\n"), AlignLeft)
}

// Hide dismisses the popup.
func (m Model) Hide() Model {
	m.visible = false
	m.title = ""
	m.messages = nil
	return m
}

// Visible returns whether the popup is currently showing.
func (m Model) Visible() bool {
	return m.visible
}

// SetSize updates the screen dimensions used for centering.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// Update dismisses the popup on esc, enter or q. All other keys are
// swallowed while it is visible.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.visible {
		return m, nil
	}
	if k, ok := msg.(tea.KeyMsg); ok && key.Matches(k, keys.Popup.Dismiss) {
		return m.Hide(), func() tea.Msg { return DismissedMsg{} }
	}
	return m, nil
}

// View renders the popup box.
func (m Model) View() string {
	if !m.visible {
		return ""
	}

	// Padding and borders take 4 columns.
	limit := maxWidth - 4
	if m.width > 0 {
		limit = min(limit, m.width-4)
	}
	textWidth := lipgloss.Width(m.title) + 2
	for _, line := range m.messages {
		textWidth = max(textWidth, lipgloss.Width(line))
	}
	textWidth = max(min(textWidth, limit), minWidth-4)

	pos := lipgloss.Center
	if m.align == AlignLeft {
		pos = lipgloss.Left
	}
	body := lipgloss.NewStyle().Width(textWidth).Align(pos).Render(strings.Join(m.messages, "\n"))
	title := lipgloss.PlaceHorizontal(textWidth, lipgloss.Center, titleStyle.Render(" "+m.title+" "))
	footer := lipgloss.PlaceHorizontal(textWidth, lipgloss.Center, footerStyle.Render("esc to dismiss"))

	return boxStyle.Render(title + "\n\n" + body + "\n\n" + footer)
}

// Overlay renders the popup centered on top of a background view.
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
