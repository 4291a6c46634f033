// Package help contains the help overlay component.
package help

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/jjview/internal/keys"
	"github.com/zjrosen/jjview/internal/log"
	"github.com/zjrosen/jjview/internal/ui/overlay"
	"github.com/zjrosen/jjview/internal/ui/shared/markdown"
	"github.com/zjrosen/jjview/internal/ui/styles"
)

// maxBoxWidth caps the help box on wide terminals.
const maxBoxWidth = 72

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(styles.OverlayBorderColor).
			Padding(0, 1)

	footerStyle = lipgloss.NewStyle().
			Foreground(styles.TextMutedColor)
)

type section struct {
	name     string
	bindings []key.Binding
}

func sections() []section {
	return []section{
		{"Log", []key.Binding{keys.Log.Up, keys.Log.Down, keys.Log.Top, keys.Log.Bottom}},
		{"Details", []key.Binding{
			keys.Details.ScrollDown, keys.Details.ScrollUp,
			keys.Details.HalfPageDown, keys.Details.HalfPageUp,
			keys.Details.PageDown, keys.Details.PageUp,
			keys.Details.ToggleWrap,
		}},
		{"General", []key.Binding{keys.App.CycleFormat, keys.App.Reload, keys.App.SwitchFocus, keys.App.Help, keys.App.Logs, keys.App.Quit}},
	}
}

// Markdown returns the help document.
func Markdown() string {
	var b strings.Builder
	b.WriteString("# jjview\n")
	for _, s := range sections() {
		fmt.Fprintf(&b, "\n## %s\n\n| Key | Action |\n| --- | --- |\n", s.name)
		for _, binding := range s.bindings {
			h := binding.Help()
			fmt.Fprintf(&b, "| `%s` | %s |\n", h.Key, h.Desc)
		}
	}
	b.WriteString("\nThe mouse wheel scrolls the details panel.\n")
	return b.String()
}

// Model holds the help view state.
type Model struct {
	renderer *markdown.Renderer
	width    int
	height   int
}

// New creates a help view rendering with the given glamour style.
func New(style string) Model {
	r, err := markdown.New(style)
	if err != nil {
		log.Warn(log.CatUI, "Falling back to dark help style", "style", style, "error", err)
		r, _ = markdown.New("dark")
	}
	return Model{renderer: r}
}

// SetSize updates dimensions.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// View renders the help box without a background.
func (m Model) View() string {
	return m.Overlay("")
}

// Overlay renders the help box on top of a background view.
func (m Model) Overlay(background string) string {
	box := m.renderBox()
	if background == "" {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, box, background)
}

func (m Model) renderBox() string {
	// Border and padding take 4 columns.
	width := min(maxBoxWidth, m.width) - 4
	width = max(width, 20)

	body, err := m.renderer.Render(Markdown(), width)
	if err != nil {
		log.ErrorErr(log.CatUI, "Failed to render help", err)
		body = Markdown()
	}
	body = strings.Trim(body, "\n")

	// Keep the footer on screen when the terminal is short.
	if m.height > 0 {
		lines := strings.Split(body, "\n")
		if maxLines := m.height - 5; maxLines > 0 && len(lines) > maxLines {
			body = strings.Join(lines[:maxLines], "\n")
		}
	}

	footer := footerStyle.Render("Press ? or esc to close")
	return boxStyle.Render(body + "\n\n" + footer)
}
