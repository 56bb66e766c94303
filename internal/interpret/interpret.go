// Package interpret formats the prose reply of the text generation service
// for display, as HTML in the dashboard or styled text in a terminal.
package interpret

import (
	"bytes"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/ziadkadry99/codeviz/internal/diagrams"
)

// Formatter converts a generation reply into display text.
type Formatter struct {
	md goldmark.Markdown
}

// NewFormatter creates a Formatter. Raw HTML in the reply is escaped, and
// single newlines are kept as line breaks.
func NewFormatter() *Formatter {
	return &Formatter{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				highlighting.NewHighlighting(
					highlighting.WithStyle("github"),
				),
			),
			goldmark.WithRendererOptions(
				html.WithHardWraps(),
			),
		),
	}
}

// HTML renders the reply as an HTML fragment.
func (f *Formatter) HTML(reply string) (string, error) {
	var buf bytes.Buffer
	if err := f.md.Convert([]byte(diagrams.InterpretationText(reply)), &buf); err != nil {
		return "", fmt.Errorf("rendering interpretation: %w", err)
	}
	return buf.String(), nil
}

// Terminal renders the reply for a terminal of the given width.
func (f *Formatter) Terminal(reply string, width int) (string, error) {
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("creating terminal renderer: %w", err)
	}
	out, err := r.Render(diagrams.InterpretationText(reply))
	if err != nil {
		return "", fmt.Errorf("rendering interpretation: %w", err)
	}
	return out, nil
}
