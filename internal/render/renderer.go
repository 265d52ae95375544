package render

import (
	"fmt"
	"os"

	"github.com/dossier-dev/dossier/internal/model"
)

// Renderer writes a report in its canonical output forms. The same
// report always renders to the same bytes.
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer. includeFooter controls the trailing
// attribution line in Markdown and HTML output.
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderMarkdown writes the canonical Markdown form to a file.
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	if err := os.WriteFile(path, []byte(r.Markdown(report)), 0644); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}

// RenderJSON writes the JSON form to a file.
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := r.JSON(report)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

// RenderYAML writes the YAML form to a file.
func (r *Renderer) RenderYAML(report *model.Report, path string) error {
	data, err := r.YAML(report)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write yaml: %w", err)
	}
	return nil
}

// RenderHTML writes the HTML page form to a file.
func (r *Renderer) RenderHTML(report *model.Report, path string) error {
	page, err := r.HTML(report)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(page), 0644); err != nil {
		return fmt.Errorf("write html: %w", err)
	}
	return nil
}

// RenderSummary prints a one-screen overview of the report to stdout.
func (r *Renderer) RenderSummary(report *model.Report) {
	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════")
	fmt.Printf("  %s\n", report.Title)
	fmt.Println("═══════════════════════════════════════════════════════════")
	fmt.Println()
	fmt.Printf("  Confidence:    %s\n", report.Confidence)
	fmt.Printf("  Research date: %s\n", report.ResearchDate)
	fmt.Printf("  Key findings:  %d\n", len(report.KeyFindings))
	fmt.Printf("  Sources:       %d\n", len(report.Sources))
	fmt.Println()
}
