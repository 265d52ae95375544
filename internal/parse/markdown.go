package parse

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/araddon/dateparse"
	"github.com/dossier-dev/dossier/internal/model"
)

// Document is the loose, position-aware parse of a report document.
// It records everything the document actually says, including
// malformed pieces, so the linter can point at exact lines. The
// canonical model.Report is derived from it via Report().
type Document struct {
	Titles     []Heading     // every level-1 heading, in order
	Summary    []string      // paragraphs under the Summary section
	Findings   []FindingItem // items under the Key Findings section
	Confidence *Field        // first confidence metadata field
	Date       *Field        // first research-date metadata field
	Sources    []SourceItem  // bullets under the Sources section
}

// Heading is a level-1 heading with its position.
type Heading struct {
	Text string
	Line int
}

// FindingItem is one numbered list item with its literal number.
type FindingItem struct {
	Number int
	Text   string
	Line   int
}

// Field is a bolded metadata field value.
type Field struct {
	Raw  string
	Line int
}

// SourceItem is one source bullet.
type SourceItem struct {
	URL   string
	Title string
	Line  int
}

type section int

const (
	sectionNone section = iota
	sectionSummary
	sectionFindings
	sectionSources
	sectionOther
)

var (
	findingRe  = regexp.MustCompile(`^(\d+)[.)]\s+(.+)$`)
	metadataRe = regexp.MustCompile(`^\*\*\s*([^:*]+?)\s*:?\s*\*\*\s*:?\s*(.+?)\s*$`)
	bulletRe   = regexp.MustCompile(`^[-*+]\s+(.+)$`)
	linkRe     = regexp.MustCompile(`^\[([^\]]*)\]\(([^)\s]+)\)`)
)

// Parse reads a markdown report document. Parsing is lenient: it
// never fails on structural problems, it records them in the
// Document for the linter to judge.
func Parse(r io.Reader) (*Document, error) {
	doc := &Document{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	current := sectionNone
	var paragraph strings.Builder
	flushParagraph := func() {
		if paragraph.Len() > 0 {
			doc.Summary = append(doc.Summary, strings.TrimSpace(paragraph.String()))
			paragraph.Reset()
		}
	}

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := scanner.Text()
		line := strings.TrimRight(raw, " \t")
		trimmed := strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(trimmed, "# ") || trimmed == "#":
			flushParagraph()
			doc.Titles = append(doc.Titles, Heading{
				Text: strings.TrimSpace(strings.TrimPrefix(trimmed, "#")),
				Line: lineNo,
			})
			current = sectionNone
			continue

		case strings.HasPrefix(trimmed, "## "):
			flushParagraph()
			current = classifySection(strings.TrimSpace(strings.TrimPrefix(trimmed, "##")))
			continue
		}

		// Bolded metadata fields may appear anywhere after the title.
		if m := metadataRe.FindStringSubmatch(trimmed); m != nil {
			if handleMetadata(doc, m[1], m[2], lineNo) {
				flushParagraph()
				continue
			}
		}

		switch current {
		case sectionSummary:
			if trimmed == "" {
				flushParagraph()
				continue
			}
			if paragraph.Len() > 0 {
				paragraph.WriteString(" ")
			}
			paragraph.WriteString(trimmed)

		case sectionFindings:
			if m := findingRe.FindStringSubmatch(trimmed); m != nil {
				n, _ := strconv.Atoi(m[1])
				doc.Findings = append(doc.Findings, FindingItem{
					Number: n,
					Text:   strings.TrimSpace(m[2]),
					Line:   lineNo,
				})
			} else if trimmed != "" && len(doc.Findings) > 0 && strings.HasPrefix(raw, " ") {
				// Indented continuation of the previous item.
				last := &doc.Findings[len(doc.Findings)-1]
				last.Text += " " + trimmed
			}

		case sectionSources:
			if m := bulletRe.FindStringSubmatch(trimmed); m != nil {
				url, title := splitSourceItem(m[1])
				doc.Sources = append(doc.Sources, SourceItem{
					URL:   url,
					Title: title,
					Line:  lineNo,
				})
			}
		}
	}

	flushParagraph()

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return doc, nil
}

// ParseFile parses a report from disk, choosing the parser by
// extension (.html/.htm use the HTML reader, everything else is
// treated as markdown).
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	defer func() { _ = f.Close() }()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return ParseHTML(f)
	default:
		return Parse(f)
	}
}

// Report derives the canonical report from the document. The
// conversion is best-effort: missing or malformed pieces become zero
// values rather than errors, so callers should lint the Document
// first if they need validity.
func (d *Document) Report() *model.Report {
	r := &model.Report{}

	if len(d.Titles) > 0 {
		r.Title = d.Titles[0].Text
	}
	r.Summary = strings.Join(d.Summary, "\n\n")

	for _, f := range d.Findings {
		r.KeyFindings = append(r.KeyFindings, model.Finding{Number: f.Number, Text: f.Text})
	}

	if d.Confidence != nil {
		if c, ok := model.ParseConfidence(d.Confidence.Raw); ok {
			r.Confidence = c
		} else {
			r.Confidence = model.Confidence(strings.TrimSpace(d.Confidence.Raw))
		}
	}

	if d.Date != nil {
		if date, err := ParseResearchDate(d.Date.Raw); err == nil {
			r.ResearchDate = date
		}
	}

	for _, s := range d.Sources {
		r.Sources = append(r.Sources, model.Source{URL: s.URL, Title: s.Title})
	}

	return r
}

// ParseResearchDate parses a research date leniently, accepting the
// canonical YYYY-MM-DD form as well as common prose formats like
// "June 3, 2025".
func ParseResearchDate(raw string) (model.Date, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return model.Date{}, fmt.Errorf("empty date")
	}
	if d, err := model.ParseDate(raw); err == nil {
		return d, nil
	}
	t, err := dateparse.ParseAny(raw)
	if err != nil {
		return model.Date{}, fmt.Errorf("parse research date %q: %w", raw, err)
	}
	return model.DateOf(t), nil
}

// classifySection maps a level-2 heading to a known section.
func classifySection(heading string) section {
	switch strings.ToLower(strings.TrimSpace(heading)) {
	case "summary", "executive summary", "overview":
		return sectionSummary
	case "key findings", "findings":
		return sectionFindings
	case "sources", "references":
		return sectionSources
	default:
		return sectionOther
	}
}

// handleMetadata records a recognized metadata field. Only the first
// occurrence of each field wins; later duplicates are ignored.
func handleMetadata(doc *Document, key, value string, line int) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "confidence level", "confidence":
		if doc.Confidence == nil {
			doc.Confidence = &Field{Raw: value, Line: line}
		}
		return true
	case "research date", "date":
		if doc.Date == nil {
			doc.Date = &Field{Raw: value, Line: line}
		}
		return true
	default:
		return false
	}
}

// splitSourceItem extracts the URL (and optional title) from a source
// bullet. Supported forms: a bare URL, "[title](url)", and
// "url — title".
func splitSourceItem(item string) (url, title string) {
	item = strings.TrimSpace(item)

	if m := linkRe.FindStringSubmatch(item); m != nil {
		return m[2], strings.TrimSpace(m[1])
	}

	fields := strings.Fields(item)
	if len(fields) == 0 {
		return "", ""
	}
	url = strings.Trim(fields[0], "<>")
	title = strings.TrimSpace(strings.TrimLeft(strings.TrimPrefix(item, fields[0]), " -—–:"))
	return url, title
}
