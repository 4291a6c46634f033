// Package details is the scrollable panel that shows `jj show` output.
//
// The panel owns no content. The caller hands it a Content each time the
// selection or format changes, and the panel keeps the scroll position, the
// wrap toggle and the content rectangle the render width is derived from.
package details

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/jjview/internal/keys"
	"github.com/zjrosen/jjview/internal/log"
	"github.com/zjrosen/jjview/internal/ui/shared/panes"
	"github.com/zjrosen/jjview/internal/ui/styles"
)

// Event is a command the panel handles.
type Event int

const (
	ScrollDown Event = iota
	ScrollUp
	ScrollDownHalfPage
	ScrollUpHalfPage
	ScrollDownPage
	ScrollUpPage
	ToggleWrap
)

// mouseScrollLines is how far one wheel notch scrolls.
const mouseScrollLines = 3

// paddingX is the blank column kept inside each side border.
const paddingX = 1

// Model holds the details panel state.
type Model struct {
	zoneID  string
	content Content

	title      string
	rightTitle string
	focused    bool

	width, height int // panel, borders included
	cols, rows    int // content rectangle

	scroll int
	lines  int
	wrap   bool
}

// New creates an empty panel. zoneID names the bubblezone mark used for
// mouse hit-testing and must be unique on screen.
func New(zoneID string) Model {
	return Model{zoneID: zoneID, wrap: true}
}

// SetSize updates the panel rectangle, borders included.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	if width <= 0 || height <= 0 {
		m.cols, m.rows = 0, 0
	} else {
		m.cols, m.rows = panes.InnerSize(width, height, paddingX)
	}
	return m.relayout()
}

// SetContent replaces what the panel shows. The scroll position is kept,
// clamped to the new content.
func (m Model) SetContent(c Content) Model {
	m.content = c
	return m.relayout()
}

// SetTitles sets the left and right titles of the top border.
func (m Model) SetTitles(title, right string) Model {
	m.title = title
	m.rightTitle = right
	return m
}

// SetFocused toggles the focused border color.
func (m Model) SetFocused(focused bool) Model {
	m.focused = focused
	return m
}

// Content returns the content currently shown, nil when none.
func (m Model) Content() Content {
	return m.content
}

// Columns returns the width available for content. Zero before the first
// SetSize.
func (m Model) Columns() int { return m.cols }

// Rows returns the height available for content. Zero before the first
// SetSize.
func (m Model) Rows() int { return m.rows }

// Scroll returns the first visible line.
func (m Model) Scroll() int { return m.scroll }

// Lines returns the scrollable line count.
func (m Model) Lines() int { return m.lines }

// Wrap reports whether long lines are wrapped.
func (m Model) Wrap() bool { return m.wrap }

func (m Model) relayout() Model {
	if m.content == nil {
		m.lines = 0
	} else {
		m.lines = m.content.LineCount(m.cols, m.wrap)
	}
	return m.ScrollTo(m.scroll)
}

// ScrollTo moves the first visible line to n, clamped to the last line.
func (m Model) ScrollTo(n int) Model {
	m.scroll = max(0, min(n, m.lines-1))
	return m
}

func (m Model) scrollBy(delta int) Model {
	return m.ScrollTo(m.scroll + delta)
}

// HandleEvent applies a panel command.
func (m Model) HandleEvent(e Event) Model {
	switch e {
	case ScrollDown:
		return m.scrollBy(1)
	case ScrollUp:
		return m.scrollBy(-1)
	case ScrollDownHalfPage:
		return m.scrollBy(m.rows / 2)
	case ScrollUpHalfPage:
		return m.scrollBy(-(m.rows / 2))
	case ScrollDownPage:
		return m.scrollBy(m.rows)
	case ScrollUpPage:
		return m.scrollBy(-m.rows)
	case ToggleWrap:
		m.wrap = !m.wrap
		return m.relayout()
	}
	return m
}

// HandleKey maps a key to a panel command. The second result reports
// whether the key was consumed.
func (m Model) HandleKey(msg tea.KeyMsg) (Model, bool) {
	switch {
	case key.Matches(msg, keys.Details.ScrollDown):
		return m.HandleEvent(ScrollDown), true
	case key.Matches(msg, keys.Details.ScrollUp):
		return m.HandleEvent(ScrollUp), true
	case key.Matches(msg, keys.Details.HalfPageDown):
		return m.HandleEvent(ScrollDownHalfPage), true
	case key.Matches(msg, keys.Details.HalfPageUp):
		return m.HandleEvent(ScrollUpHalfPage), true
	case key.Matches(msg, keys.Details.PageDown):
		return m.HandleEvent(ScrollDownPage), true
	case key.Matches(msg, keys.Details.PageUp):
		return m.HandleEvent(ScrollUpPage), true
	case key.Matches(msg, keys.Details.ToggleWrap):
		return m.HandleEvent(ToggleWrap), true
	}
	return m, false
}

// HandleMouse scrolls on wheel events over the panel. Events elsewhere on
// screen are not consumed.
func (m Model) HandleMouse(msg tea.MouseMsg) (Model, bool) {
	if msg.Button != tea.MouseButtonWheelUp && msg.Button != tea.MouseButtonWheelDown {
		return m, false
	}
	z := zone.Get(m.zoneID)
	if z == nil || !z.InBounds(msg) {
		log.Debug(log.CatUI, "Mouse outside details panel", "x", msg.X, "y", msg.Y)
		return m, false
	}

	event := ScrollDown
	if msg.Button == tea.MouseButtonWheelUp {
		event = ScrollUp
	}
	for range mouseScrollLines {
		m = m.HandleEvent(event)
	}
	return m, true
}

// Update handles key and mouse messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m, _ = m.HandleKey(msg)
	case tea.MouseMsg:
		m, _ = m.HandleMouse(msg)
	}
	return m, nil
}

// View renders the panel. Only the visible window of the content is
// rendered, whatever its size.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	var rows []string
	if m.content != nil {
		rows = m.content.Window(m.scroll, m.rows, m.cols, m.wrap)
	}

	var position string
	scroll := panes.Scroll{TotalLines: m.lines, ViewportHeight: m.rows, Offset: m.scroll}
	if scroll.Needed() {
		position = fmt.Sprintf("%d/%d", m.scroll+1, m.lines)
	}

	view := panes.BorderedPane(panes.BorderConfig{
		Content:            strings.Join(rows, "\n"),
		Width:              m.width,
		Height:             m.height,
		TopLeft:            m.title,
		TopRight:           m.rightTitle,
		BottomRight:        position,
		PaddingX:           paddingX,
		RightEdge:          panes.ScrollbarEdge(scroll),
		Focused:            m.focused,
		FocusedBorderColor: styles.BorderFocusColor,
	})
	return zone.Mark(m.zoneID, view)
}
