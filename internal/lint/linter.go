package lint

import (
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dossier-dev/dossier/internal/classify"
	"github.com/dossier-dev/dossier/internal/model"
	"github.com/dossier-dev/dossier/internal/parse"
)

// nowFunc is the clock used for future-date checks (injectable for tests)
var nowFunc = time.Now

// Linter runs the structural checks against a parsed document.
type Linter struct {
	cfg       *model.Config
	authority *classify.AuthorityClassifier
}

// New creates a linter. A nil config uses the defaults.
func New(cfg *model.Config) *Linter {
	if cfg == nil {
		cfg = model.DefaultConfig()
	}
	return &Linter{
		cfg:       cfg,
		authority: classify.NewAuthorityClassifier(&cfg.Authority),
	}
}

// Lint checks a document and returns every issue found. Issues are
// reported in document order within each concern.
func (l *Linter) Lint(doc *parse.Document) *Result {
	result := &Result{}

	l.checkTitle(doc, result)
	l.checkSummary(doc, result)
	l.checkFindings(doc, result)
	l.checkConfidence(doc, result)
	l.checkDate(doc, result)
	l.checkSources(doc, result)

	return result
}

func (l *Linter) checkTitle(doc *parse.Document, result *Result) {
	switch {
	case len(doc.Titles) == 0:
		result.add(RuleTitleRequired, SeverityCritical, 0, "document has no title line")
	case len(doc.Titles) > 1:
		result.add(RuleTitleSingle, SeverityCritical, doc.Titles[1].Line,
			fmt.Sprintf("document has %d title lines, expected exactly one", len(doc.Titles)))
	}
	if len(doc.Titles) > 0 && strings.TrimSpace(doc.Titles[0].Text) == "" {
		result.add(RuleTitleEmpty, SeverityCritical, doc.Titles[0].Line, "title line is empty")
	}
}

func (l *Linter) checkSummary(doc *parse.Document, result *Result) {
	if len(doc.Summary) == 0 {
		result.add(RuleSummaryRequired, SeverityWarning, 0, "document has no summary section")
		return
	}
	if max := l.cfg.Lint.MaxSummaryLength; max > 0 {
		total := 0
		for _, p := range doc.Summary {
			total += utf8.RuneCountInString(p)
		}
		if total > max {
			result.add(RuleSummaryLength, SeverityWarning, 0,
				fmt.Sprintf("summary is %d characters, limit is %d", total, max))
		}
	}
}

func (l *Linter) checkFindings(doc *parse.Document, result *Result) {
	if len(doc.Findings) == 0 {
		result.add(RuleFindingsRequired, SeverityCritical, 0, "key findings list is empty")
		return
	}

	expected := 1
	for _, f := range doc.Findings {
		if f.Number != expected {
			result.add(RuleFindingsSequential, SeverityCritical, f.Line,
				fmt.Sprintf("finding numbered %d, expected %d (findings must be numbered sequentially from 1)", f.Number, expected))
			// Resync so one gap does not cascade into errors for every
			// following item.
			expected = f.Number
		}
		expected++
	}
}

func (l *Linter) checkConfidence(doc *parse.Document, result *Result) {
	if doc.Confidence == nil {
		result.add(RuleConfidenceRequired, SeverityCritical, 0, "confidence level field is missing")
		return
	}
	if _, ok := model.ParseConfidence(doc.Confidence.Raw); !ok {
		result.add(RuleConfidenceValue, SeverityCritical, doc.Confidence.Line,
			fmt.Sprintf("confidence level %q is not one of %v", strings.TrimSpace(doc.Confidence.Raw), model.Confidences()))
	}
}

func (l *Linter) checkDate(doc *parse.Document, result *Result) {
	if doc.Date == nil {
		result.add(RuleDateRequired, SeverityCritical, 0, "research date field is missing")
		return
	}

	date, err := parse.ParseResearchDate(doc.Date.Raw)
	if err != nil {
		result.add(RuleDateValid, SeverityCritical, doc.Date.Line,
			fmt.Sprintf("research date %q is not a valid calendar date", strings.TrimSpace(doc.Date.Raw)))
		return
	}

	if !l.cfg.Lint.AllowFutureDate && date.After(model.DateOf(nowFunc())) {
		result.add(RuleDateFuture, SeverityWarning, doc.Date.Line,
			fmt.Sprintf("research date %s is in the future", date))
	}
}

func (l *Linter) checkSources(doc *parse.Document, result *Result) {
	if len(doc.Sources) == 0 {
		sev := SeverityWarning
		if l.cfg.Lint.RequireSources {
			sev = SeverityCritical
		}
		result.add(RuleSourcesRequired, sev, 0, "document lists no sources")
		return
	}

	seen := make(map[string]int) // url -> first line
	nonTertiary := false

	for _, s := range doc.Sources {
		parsed, err := url.Parse(s.URL)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			result.add(RuleSourceURL, SeverityCritical, s.Line,
				fmt.Sprintf("source %q is not a valid URL", s.URL))
			continue
		}

		if !l.schemeAllowed(parsed.Scheme) {
			result.add(RuleSourceScheme, SeverityWarning, s.Line,
				fmt.Sprintf("source %q uses scheme %q, allowed: %s", s.URL, parsed.Scheme, strings.Join(l.cfg.Lint.AllowedSchemes, ", ")))
		}

		if first, dup := seen[s.URL]; dup {
			result.add(RuleSourceDuplicate, SeverityWarning, s.Line,
				fmt.Sprintf("source %q already listed on line %d", s.URL, first))
		} else {
			seen[s.URL] = s.Line
		}

		if tier := l.authority.Classify(s.URL); tier == model.TierPrimary || tier == model.TierSecondary {
			nonTertiary = true
		}
	}

	if !nonTertiary {
		result.add(RuleSourceAuthority, SeverityInfo, 0,
			"no primary or secondary sources cited")
	}
}

func (l *Linter) schemeAllowed(scheme string) bool {
	for _, allowed := range l.cfg.Lint.AllowedSchemes {
		if strings.EqualFold(scheme, allowed) {
			return true
		}
	}
	return false
}
