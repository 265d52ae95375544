package parse

import (
	"strings"
	"testing"
)

const sampleHTML = `<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>Ignored Head Title</title></head>
<body>
<h1>Grid Storage Economics</h1>
<h2>Summary</h2>
<p>Battery storage costs fell again this year.</p>
<p>Deployment is concentrated in three markets.</p>
<h2>Key Findings</h2>
<ol>
<li>Pack prices dropped 12% year over year.</li>
<li>Four-hour systems dominate new interconnection requests.</li>
</ol>
<p><strong>Confidence Level:</strong> Medium</p>
<p><strong>Research Date:</strong> 2025-02-28</p>
<h2>Sources</h2>
<ul>
<li><a href="https://www.nrel.gov/storage-report">NREL storage report</a></li>
<li><a href="https://example.org/market-data">https://example.org/market-data</a></li>
</ul>
</body>
</html>`

func TestParseHTML_FullDocument(t *testing.T) {
	doc, err := ParseHTML(strings.NewReader(sampleHTML))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(doc.Titles) != 1 {
		t.Fatalf("expected 1 title, got %d", len(doc.Titles))
	}
	if doc.Titles[0].Text != "Grid Storage Economics" {
		t.Errorf("unexpected title: %q (head title must be ignored)", doc.Titles[0].Text)
	}

	if len(doc.Summary) != 2 {
		t.Fatalf("expected 2 summary paragraphs, got %d", len(doc.Summary))
	}

	if len(doc.Findings) != 2 {
		t.Fatalf("expected 2 findings, got %d", len(doc.Findings))
	}
	if doc.Findings[0].Number != 1 || doc.Findings[1].Number != 2 {
		t.Errorf("unexpected finding numbers: %d, %d", doc.Findings[0].Number, doc.Findings[1].Number)
	}

	if doc.Confidence == nil || doc.Confidence.Raw != "Medium" {
		t.Errorf("unexpected confidence: %+v", doc.Confidence)
	}
	if doc.Date == nil || doc.Date.Raw != "2025-02-28" {
		t.Errorf("unexpected date: %+v", doc.Date)
	}

	if len(doc.Sources) != 2 {
		t.Fatalf("expected 2 sources, got %d", len(doc.Sources))
	}
	if doc.Sources[0].Title != "NREL storage report" {
		t.Errorf("unexpected source title: %q", doc.Sources[0].Title)
	}
	// Anchor text equal to the href is not a title.
	if doc.Sources[1].Title != "" {
		t.Errorf("expected empty title for bare-URL anchor, got %q", doc.Sources[1].Title)
	}
}

func TestParseHTML_OrderedListAttributes(t *testing.T) {
	input := `<html><body>
<h1>T</h1>
<h2>Key Findings</h2>
<ol start="3">
<li>Third.</li>
<li value="7">Seventh.</li>
<li>Eighth.</li>
</ol>
</body></html>`

	doc, err := ParseHTML(strings.NewReader(input))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(doc.Findings) != 3 {
		t.Fatalf("expected 3 findings, got %d", len(doc.Findings))
	}

	want := []int{3, 7, 8}
	for i, f := range doc.Findings {
		if f.Number != want[i] {
			t.Errorf("finding %d: number %d, want %d", i, f.Number, want[i])
		}
	}
}

func TestParseHTML_ListsOutsideSectionsIgnored(t *testing.T) {
	input := `<html><body>
<h1>T</h1>
<ol><li>Not a finding.</li></ol>
<ul><li><a href="https://example.com">Not a source</a></li></ul>
</body></html>`

	doc, err := ParseHTML(strings.NewReader(input))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(doc.Findings) != 0 {
		t.Errorf("expected no findings outside the findings section, got %d", len(doc.Findings))
	}
	if len(doc.Sources) != 0 {
		t.Errorf("expected no sources outside the sources section, got %d", len(doc.Sources))
	}
}
