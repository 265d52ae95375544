package render

import (
	"fmt"
	"strings"

	"github.com/dossier-dev/dossier/internal/model"
)

const footerLine = "_Formatted by dossier._"

// Markdown renders the canonical Markdown layout: title, summary,
// numbered key findings, bolded metadata fields, and a bullet list of
// sources. Parsing this output yields an equal report.
func (r *Renderer) Markdown(report *model.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", report.Title)

	b.WriteString("## Summary\n\n")
	for _, paragraph := range summaryParagraphs(report.Summary) {
		b.WriteString(paragraph)
		b.WriteString("\n\n")
	}

	b.WriteString("## Key Findings\n\n")
	for _, f := range report.KeyFindings {
		fmt.Fprintf(&b, "%d. %s\n", f.Number, f.Text)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "**Confidence Level:** %s\n", report.Confidence)
	fmt.Fprintf(&b, "**Research Date:** %s\n\n", report.ResearchDate)

	b.WriteString("## Sources\n\n")
	for _, s := range report.Sources {
		if s.Title != "" {
			fmt.Fprintf(&b, "- [%s](%s)\n", s.Title, s.URL)
		} else {
			fmt.Fprintf(&b, "- %s\n", s.URL)
		}
	}

	if r.includeFooter {
		b.WriteString("\n---\n\n")
		b.WriteString(footerLine)
		b.WriteString("\n")
	}

	return b.String()
}

// summaryParagraphs splits a summary on blank lines, preserving
// paragraph boundaries.
func summaryParagraphs(summary string) []string {
	var out []string
	for _, p := range strings.Split(summary, "\n\n") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		out = []string{""}
	}
	return out
}
