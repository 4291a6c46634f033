// Package markdown provides styled markdown rendering for the TUI.
package markdown

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// noMarginStyle is a JSON style that removes document margins.
const noMarginStyle = `{
	"document": {
		"margin": 0,
		"block_prefix": "",
		"block_suffix": ""
	}
}`

// Styles accepted by New.
var knownStyles = map[string]bool{"dark": true, "light": true, "notty": true, "ascii": true}

// Renderer renders markdown with a fixed glamour style. Glamour renderers
// are bound to one wrap width, so one is built lazily per width seen.
type Renderer struct {
	style     string
	renderers map[int]*glamour.TermRenderer
}

// New creates a renderer for the given style. An empty style means "dark".
// Named styles are used instead of WithAutoStyle, which queries the terminal
// and leaks the reply into the input stream.
func New(style string) (*Renderer, error) {
	if style == "" {
		style = "dark"
	}
	if !knownStyles[style] {
		return nil, fmt.Errorf("unknown markdown style %q", style)
	}
	return &Renderer{style: style, renderers: map[int]*glamour.TermRenderer{}}, nil
}

// Style returns the glamour style name.
func (r *Renderer) Style() string {
	return r.style
}

// Render transforms markdown to styled terminal output wrapped at width.
func (r *Renderer) Render(markdown string, width int) (string, error) {
	tr, ok := r.renderers[width]
	if !ok {
		var err error
		tr, err = glamour.NewTermRenderer(
			glamour.WithStylePath(r.style),
			glamour.WithStylesFromJSONBytes([]byte(noMarginStyle)),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return "", fmt.Errorf("creating markdown renderer: %w", err)
		}
		r.renderers[width] = tr
	}
	return tr.Render(markdown)
}
