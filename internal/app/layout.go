package app

// Layout arranges the log and details panels.
type Layout int

const (
	// Horizontal puts the log left of the details panel.
	Horizontal Layout = iota
	// Vertical puts the log above the details panel.
	Vertical
)

// ParseLayout maps the config value to a Layout. Anything but "vertical"
// is horizontal.
func ParseLayout(s string) Layout {
	if s == "vertical" {
		return Vertical
	}
	return Horizontal
}

func (l Layout) String() string {
	if l == Vertical {
		return "vertical"
	}
	return "horizontal"
}

type rect struct {
	width, height int
}

// statusBarHeight is the single line below both panels.
const statusBarHeight = 1

// split divides the screen between the panels. percent is the log panel's
// share and is clamped to 1..99; each panel keeps at least one cell.
func split(layout Layout, percent, width, height int) (logRect, detailsRect rect) {
	percent = max(1, min(percent, 99))
	height = max(height-statusBarHeight, 0)

	if layout == Vertical {
		logH := height * percent / 100
		if height >= 2 {
			logH = max(1, min(logH, height-1))
		}
		return rect{width, logH}, rect{width, height - logH}
	}

	logW := width * percent / 100
	if width >= 2 {
		logW = max(1, min(logW, width-1))
	}
	return rect{logW, height}, rect{width - logW, height}
}
