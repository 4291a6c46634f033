package panes

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/jjview/internal/ui/styles"
)

const (
	scrollbarThumbChar = "█"
	scrollbarTrackChar = "│"
)

// Scroll describes where a viewport sits within its content.
type Scroll struct {
	TotalLines     int // Total lines in content
	ViewportHeight int // Visible lines in viewport
	Offset         int // Current scroll position (top line)
}

// Needed reports whether the content overflows the viewport.
func (s Scroll) Needed() bool {
	return s.ViewportHeight > 0 && s.TotalLines > s.ViewportHeight
}

// thumbBounds returns the start row and height of the scroll thumb.
// thumbHeight = max(1, viewportHeight * viewportHeight / totalLines)
func thumbBounds(s Scroll) (start, height int) {
	if s.TotalLines <= 0 || s.ViewportHeight <= 0 {
		return 0, 0
	}
	if s.TotalLines <= s.ViewportHeight {
		return 0, s.ViewportHeight
	}

	height = max(1, s.ViewportHeight*s.ViewportHeight/s.TotalLines)

	maxOffset := s.TotalLines - 1
	track := s.ViewportHeight - height
	if track <= 0 || maxOffset <= 0 {
		return 0, height
	}

	// Offset may run to the last line, not just the last full page.
	start = track * min(max(s.Offset, 0), maxOffset) / maxOffset
	return max(0, min(start, track)), height
}

// ScrollbarEdge returns one cell per viewport row, drawn over a pane's
// right border. Returns nil when the content fits.
func ScrollbarEdge(s Scroll) []string {
	if !s.Needed() {
		return nil
	}

	trackStyle := lipgloss.NewStyle().Foreground(styles.ScrollTrackColor)
	thumbStyle := lipgloss.NewStyle().Foreground(styles.ScrollThumbColor)

	start, height := thumbBounds(s)
	cells := make([]string, s.ViewportHeight)
	for row := range cells {
		if row >= start && row < start+height {
			cells[row] = thumbStyle.Render(scrollbarThumbChar)
		} else {
			cells[row] = trackStyle.Render(scrollbarTrackChar)
		}
	}
	return cells
}
