// Package panes contains reusable bordered pane UI components.
package panes

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/jjview/internal/ui/styles"
)

// Border characters (rounded)
const (
	borderTopLeft     = "╭"
	borderTopRight    = "╮"
	borderBottomLeft  = "╰"
	borderBottomRight = "╯"
	borderHorizontal  = "─"
	borderVertical    = "│"
)

// BorderConfig configures the appearance of a bordered panel.
type BorderConfig struct {
	Content string // The content to render inside the border
	Width   int    // Total width including borders
	Height  int    // Total height including borders

	// Titles embedded in the border, all optional.
	TopLeft     string
	TopRight    string
	BottomLeft  string
	BottomRight string

	// PaddingX is blank columns kept between each side border and the content.
	PaddingX int

	// RightEdge replaces the right border cell of each content row when set,
	// e.g. with a scrollbar. Missing rows keep the plain border.
	RightEdge []string

	Focused            bool
	TitleColor         lipgloss.TerminalColor
	BorderColor        lipgloss.TerminalColor
	FocusedBorderColor lipgloss.TerminalColor
}

// InnerSize returns the content rectangle of a pane of the given outer size.
func InnerSize(width, height, paddingX int) (cols, rows int) {
	return max(width-2-2*paddingX, 1), max(height-2, 1)
}

// BorderedPane renders content within a bordered panel with optional titles.
//
// Nil color fallback rules:
//   - Both BorderColor and FocusedBorderColor nil: use BorderDefaultColor for both states
//   - BorderColor set, FocusedBorderColor nil: inherit BorderColor for focused state
//   - BorderColor nil, FocusedBorderColor set: unfocused uses BorderDefaultColor, focused uses specified
//   - Both set: use appropriately based on Focused flag
func BorderedPane(cfg BorderConfig) string {
	borderColor := resolveBorderColor(cfg.BorderColor, cfg.FocusedBorderColor, cfg.Focused)

	titleColor := cfg.TitleColor
	if titleColor == nil {
		titleColor = styles.BorderDefaultColor
	}

	borderStyle := lipgloss.NewStyle().Foreground(borderColor)
	titleStyle := lipgloss.NewStyle().Foreground(titleColor)

	innerWidth := max(cfg.Width-2, 1)
	contentWidth, contentHeight := InnerSize(cfg.Width, cfg.Height, cfg.PaddingX)
	pad := strings.Repeat(" ", max(innerWidth-contentWidth, 0)/2)

	top := buildEdge(cfg.TopLeft, cfg.TopRight, innerWidth, borderTopLeft, borderTopRight, borderStyle, titleStyle)
	bottom := buildEdge(cfg.BottomLeft, cfg.BottomRight, innerWidth, borderBottomLeft, borderBottomRight, borderStyle, titleStyle)

	contentLines := strings.Split(cfg.Content, "\n")
	leftBorder := borderStyle.Render(borderVertical)
	plainRight := leftBorder

	var result strings.Builder
	result.WriteString(top)
	for i := range contentHeight {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}
		// ANSI-aware so styled content never spills past the border.
		if ansi.StringWidth(line) > contentWidth {
			line = ansi.Truncate(line, contentWidth, "")
		}
		if w := ansi.StringWidth(line); w < contentWidth {
			line += strings.Repeat(" ", contentWidth-w)
		}

		right := plainRight
		if i < len(cfg.RightEdge) && cfg.RightEdge[i] != "" {
			right = cfg.RightEdge[i]
		}

		result.WriteString("\n")
		result.WriteString(leftBorder + pad + line + pad + right)
	}
	result.WriteString("\n")
	result.WriteString(bottom)

	return result.String()
}

// resolveBorderColor implements the nil color fallback logic for border colors.
func resolveBorderColor(borderColor, focusedBorderColor lipgloss.TerminalColor, focused bool) lipgloss.TerminalColor {
	switch {
	case borderColor == nil && focusedBorderColor == nil:
		return styles.BorderDefaultColor
	case focusedBorderColor == nil:
		return borderColor
	case focused:
		return focusedBorderColor
	case borderColor == nil:
		return styles.BorderDefaultColor
	default:
		return borderColor
	}
}

// buildEdge renders a top or bottom border with optional embedded titles.
// Format: ╭─ Left ─────────── Right ─╮
// When both titles do not fit, the right one is dropped and the left one
// truncated.
func buildEdge(left, right string, innerWidth int, cornerL, cornerR string, borderStyle, titleStyle lipgloss.Style) string {
	if innerWidth < 1 {
		return borderStyle.Render(cornerL + cornerR)
	}
	plain := borderStyle.Render(cornerL + strings.Repeat(borderHorizontal, innerWidth) + cornerR)
	if left == "" && right == "" {
		return plain
	}

	leftWidth := lipgloss.Width(left)
	rightWidth := lipgloss.Width(right)

	// "─ " + left + " " and " " + right + " ─", plus at least one dash between.
	need := 1
	if left != "" {
		need += leftWidth + 3
	}
	if right != "" {
		need += rightWidth + 3
	}

	if need > innerWidth {
		if left == "" {
			return plain
		}
		// "─ " + title + " " + at least one dash
		avail := innerWidth - 4
		if avail < 1 {
			return plain
		}
		left = styles.TruncateString(left, avail)
		leftWidth = lipgloss.Width(left)
		right, rightWidth = "", 0
	}

	dashes := innerWidth - 1
	if left != "" {
		dashes -= leftWidth + 3
	}
	if right != "" {
		dashes -= rightWidth + 3
	}
	dashes = max(dashes, 0) + 1

	var b strings.Builder
	b.WriteString(borderStyle.Render(cornerL))
	if left != "" {
		b.WriteString(borderStyle.Render(borderHorizontal + " "))
		b.WriteString(titleStyle.Render(left))
		b.WriteString(borderStyle.Render(" "))
	}
	b.WriteString(borderStyle.Render(strings.Repeat(borderHorizontal, dashes)))
	if right != "" {
		b.WriteString(borderStyle.Render(" "))
		b.WriteString(titleStyle.Render(right))
		b.WriteString(borderStyle.Render(" " + borderHorizontal))
	}
	b.WriteString(borderStyle.Render(cornerR))
	return b.String()
}
