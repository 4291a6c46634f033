// Package overlay draws popups on top of an already rendered screen.
package overlay

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Position specifies where to place the overlay content.
type Position int

const (
	// Center places the overlay in the middle of the screen.
	Center Position = iota
	// Top places the overlay at the top center of the screen.
	Top
	// Bottom places the overlay at the bottom center of the screen.
	Bottom
)

// Config controls overlay rendering behavior.
type Config struct {
	Width    int // screen width
	Height   int // screen height
	Position Position
	PadY     int // rows kept free above a Top or below a Bottom overlay
}

// Place renders fg over bg. Both may carry ANSI styling; cells of bg
// outside the popup keep their styling.
func Place(cfg Config, fg, bg string) string {
	fgLines := strings.Split(fg, "\n")
	bgLines := strings.Split(bg, "\n")
	for len(bgLines) < cfg.Height {
		bgLines = append(bgLines, "")
	}

	fgWidth := 0
	for _, l := range fgLines {
		fgWidth = max(fgWidth, ansi.StringWidth(l))
	}
	x, y := origin(cfg, fgWidth, len(fgLines))

	for i, line := range fgLines {
		row := y + i
		if row >= len(bgLines) {
			break
		}
		bgLines[row] = splice(bgLines[row], line, x, fgWidth)
	}
	return strings.Join(bgLines, "\n")
}

// splice replaces width cells of bg starting at column x with fg, padding fg
// to width so ragged popup lines still cover the background beneath them.
func splice(bg, fg string, x, width int) string {
	left := ansi.Truncate(bg, x, "")
	if w := ansi.StringWidth(left); w < x {
		left += strings.Repeat(" ", x-w)
	}
	if w := ansi.StringWidth(fg); w < width {
		fg += strings.Repeat(" ", width-w)
	}

	var right string
	if end := x + width; ansi.StringWidth(bg) > end {
		right = ansi.TruncateLeft(bg, end, "")
	}
	// Reset between pieces so popup styling cannot bleed into the background.
	return left + ansi.ResetStyle + fg + ansi.ResetStyle + right
}

func origin(cfg Config, w, h int) (x, y int) {
	x = (cfg.Width - w) / 2
	switch cfg.Position {
	case Top:
		y = cfg.PadY
	case Bottom:
		y = cfg.Height - h - cfg.PadY
	default:
		y = (cfg.Height - h) / 2
	}
	return max(x, 0), max(y, 0)
}
