package render

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/dossier-dev/dossier/internal/model"
)

// Terminal renders the report as styled text for display in a
// terminal. width controls word wrap; zero uses the default.
func (r *Renderer) Terminal(report *model.Report, width int) (string, error) {
	if width <= 0 {
		width = 100
	}

	tr, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("create terminal renderer: %w", err)
	}

	out, err := tr.Render(r.Markdown(report))
	if err != nil {
		return "", fmt.Errorf("render terminal: %w", err)
	}
	return out, nil
}
