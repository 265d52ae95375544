package render

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/dossier-dev/dossier/internal/model"
)

var htmlPage = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
<h1>{{.Title}}</h1>
<h2>Summary</h2>
{{range .Paragraphs}}<p>{{.}}</p>
{{end}}<h2>Key Findings</h2>
<ol>
{{range .KeyFindings}}<li value="{{.Number}}">{{.Text}}</li>
{{end}}</ol>
<p><strong>Confidence Level:</strong> {{.Confidence}}</p>
<p><strong>Research Date:</strong> {{.ResearchDate}}</p>
<h2>Sources</h2>
<ul>
{{range .Sources}}<li><a href="{{.URL}}">{{if .Title}}{{.Title}}{{else}}{{.URL}}{{end}}</a></li>
{{end}}</ul>
{{if .Footer}}<footer><em>{{.Footer}}</em></footer>
{{end}}</body>
</html>
`))

type htmlData struct {
	Title        string
	Paragraphs   []string
	KeyFindings  []model.Finding
	Confidence   model.Confidence
	ResearchDate string
	Sources      []model.Source
	Footer       string
}

// HTML renders the report as a standalone page mirroring the Markdown
// structure, so the HTML reader can ingest it back.
func (r *Renderer) HTML(report *model.Report) (string, error) {
	data := htmlData{
		Title:        report.Title,
		Paragraphs:   summaryParagraphs(report.Summary),
		KeyFindings:  report.KeyFindings,
		Confidence:   report.Confidence,
		ResearchDate: report.ResearchDate.String(),
		Sources:      report.Sources,
	}
	if r.includeFooter {
		data.Footer = "Formatted by dossier."
	}

	var b strings.Builder
	if err := htmlPage.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render html: %w", err)
	}
	return b.String(), nil
}
