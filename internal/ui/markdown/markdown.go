// Package markdown renders markdown for terminal output with glamour.
package markdown

import (
	"github.com/charmbracelet/glamour"
)

// noMarginStyle drops the document margin so output lines up with plain
// command output.
const noMarginStyle = `{
	"document": {
		"margin": 0,
		"block_prefix": "",
		"block_suffix": ""
	}
}`

// Renderer renders markdown at a fixed wrap width.
type Renderer struct {
	renderer *glamour.TermRenderer
	width    int
}

// New creates a renderer wrapping at width. Plain disables colors, for
// output that is not a terminal.
func New(width int, plain bool) (*Renderer, error) {
	style := glamour.WithAutoStyle()
	if plain {
		style = glamour.WithStandardStyle("notty")
	}
	r, err := glamour.NewTermRenderer(
		style,
		glamour.WithStylesFromJSONBytes([]byte(noMarginStyle)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	return &Renderer{renderer: r, width: width}, nil
}

func (r *Renderer) Width() int {
	return r.width
}

// Render returns md styled for the terminal.
func (r *Renderer) Render(md string) (string, error) {
	return r.renderer.Render(md)
}
