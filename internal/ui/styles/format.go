package styles

import (
	"strings"

	"github.com/rivo/uniseg"
)

const ellipsis = "..."

// TruncateString truncates a string to fit within maxWidth, adding ellipsis if needed.
// Cuts on grapheme cluster boundaries so emoji and combining marks stay whole.
func TruncateString(s string, maxWidth int) string {
	if maxWidth < 1 {
		return ""
	}

	if uniseg.StringWidth(s) <= maxWidth {
		return s
	}

	if maxWidth <= len(ellipsis) {
		return strings.Repeat(".", maxWidth)
	}

	budget := maxWidth - len(ellipsis)
	var b strings.Builder
	width := 0
	state := -1
	rest := s
	for len(rest) > 0 {
		var cluster string
		var w int
		cluster, rest, w, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if width+w > budget {
			break
		}
		b.WriteString(cluster)
		width += w
	}

	return b.String() + ellipsis
}

// PadRight pads s with spaces to exactly width cells, truncating when longer.
func PadRight(s string, width int) string {
	w := uniseg.StringWidth(s)
	if w > width {
		return TruncateString(s, width)
	}
	return s + strings.Repeat(" ", width-w)
}
