package model

import "strings"

// Report is a structured research report: a title, a prose summary,
// numbered key findings, an author-assigned confidence label, the date
// the research was performed, and the cited source URLs.
//
// A report is authored once and read thereafter. Nothing in this
// package mutates a report after it has been built.
type Report struct {
	Title        string     `json:"title" yaml:"title"`
	Summary      string     `json:"summary" yaml:"summary"`
	KeyFindings  []Finding  `json:"key_findings" yaml:"key_findings"`   // presentation order is meaningful
	Confidence   Confidence `json:"confidence" yaml:"confidence"`       // author-assigned, never computed
	ResearchDate Date       `json:"research_date" yaml:"research_date"`
	Sources      []Source   `json:"sources" yaml:"sources"`             // citation order
}

// Finding is a single numbered key finding. Number is the literal
// number from the document, which the linter checks for sequence.
type Finding struct {
	Number int    `json:"number" yaml:"number"`
	Text   string `json:"text" yaml:"text"`
}

// Source is a cited source URL with an optional display title.
type Source struct {
	URL       string        `json:"url" yaml:"url"`
	Title     string        `json:"title,omitempty" yaml:"title,omitempty"`
	Authority AuthorityTier `json:"authority,omitempty" yaml:"authority,omitempty"`
}

// Confidence is the author-assigned confidence label.
type Confidence string

const (
	ConfidenceHigh   Confidence = "High"
	ConfidenceMedium Confidence = "Medium"
	ConfidenceLow    Confidence = "Low"
)

// Confidences lists the valid labels in canonical form.
func Confidences() []Confidence {
	return []Confidence{ConfidenceHigh, ConfidenceMedium, ConfidenceLow}
}

// ParseConfidence maps a raw label to its canonical form. Matching is
// case-insensitive and tolerates surrounding whitespace.
func ParseConfidence(raw string) (Confidence, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "high":
		return ConfidenceHigh, true
	case "medium", "moderate":
		return ConfidenceMedium, true
	case "low":
		return ConfidenceLow, true
	default:
		return "", false
	}
}

// Valid reports whether c is one of the canonical labels.
func (c Confidence) Valid() bool {
	return c == ConfidenceHigh || c == ConfidenceMedium || c == ConfidenceLow
}

func (c Confidence) String() string {
	return string(c)
}
