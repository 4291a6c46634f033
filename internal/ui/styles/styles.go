// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

// DefaultHighlightColor is the selected-row background when jj config and
// the jjview config leave it unset.
const DefaultHighlightColor = "#323296"

var (
	// Semantic color names - Text hierarchy
	TextPrimaryColor     = lipgloss.AdaptiveColor{Light: "#1F1F1F", Dark: "#CCCCCC"} // Main/primary text
	TextSecondaryColor   = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BBBBBB"} // Commit ids, secondary info
	TextMutedColor       = lipgloss.AdaptiveColor{Light: "#999999", Dark: "#696969"} // Hints, help text, footers
	TextDescriptionColor = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"} // Description/body text

	// Semantic color names - Border
	BorderDefaultColor = lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#696969"} // Unfocused borders
	BorderFocusColor   = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"} // Focused panel

	// Semantic color names - Status
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}

	// jj identity colors, close to jj's own defaults
	ChangeIDColor  = lipgloss.AdaptiveColor{Light: "#C000C0", Dark: "#FF87FF"}
	CommitIDColor  = lipgloss.AdaptiveColor{Light: "#0060C0", Dark: "#5FAFFF"}
	BookmarkColor  = lipgloss.AdaptiveColor{Light: "#A000A0", Dark: "#D787D7"}
	DivergentColor = lipgloss.AdaptiveColor{Light: "#C00000", Dark: "#FF5F5F"}
	WorkingCopy    = lipgloss.AdaptiveColor{Light: "#008000", Dark: "#87D787"}

	// Selected row background, overridable from config.
	HighlightColor lipgloss.TerminalColor = lipgloss.Color(DefaultHighlightColor)

	// Overlay colors
	OverlayTitleColor  = lipgloss.AdaptiveColor{Light: "#333333", Dark: "#C9C9C9"}
	OverlayBorderColor = lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#8C8C8C"}

	// Scrollbar
	ScrollTrackColor = TextMutedColor
	ScrollThumbColor = TextSecondaryColor

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextSecondaryColor).
			Padding(0, 1)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(StatusErrorColor).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().Foreground(TextMutedColor)
)

// ApplyHighlight sets the selected-row background. Empty keeps the current one.
func ApplyHighlight(color string) {
	if color != "" {
		HighlightColor = lipgloss.Color(color)
	}
}

// SelectedRowStyle returns the style for the selected log row.
func SelectedRowStyle() lipgloss.Style {
	return lipgloss.NewStyle().Background(HighlightColor).Bold(true)
}
