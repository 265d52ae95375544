package lint

// Rule identifies a single structural check.
type Rule string

const (
	RuleTitleRequired      Rule = "title-required"      // document has a title line
	RuleTitleSingle        Rule = "title-single"        // exactly one title line
	RuleTitleEmpty         Rule = "title-empty"         // title line has text
	RuleSummaryRequired    Rule = "summary-required"    // summary section present
	RuleSummaryLength      Rule = "summary-length"      // summary within configured length
	RuleFindingsRequired   Rule = "findings-required"   // key findings list non-empty
	RuleFindingsSequential Rule = "findings-sequential" // numbered 1, 2, 3, ...
	RuleConfidenceRequired Rule = "confidence-required" // confidence field present
	RuleConfidenceValue    Rule = "confidence-value"    // confidence is High/Medium/Low
	RuleDateRequired       Rule = "date-required"       // research date present
	RuleDateValid          Rule = "date-valid"          // research date parses
	RuleDateFuture         Rule = "date-future"         // research date not in the future
	RuleSourcesRequired    Rule = "sources-required"    // source list non-empty
	RuleSourceURL          Rule = "source-url"          // each source is a valid URL
	RuleSourceScheme       Rule = "source-scheme"       // source scheme is allowed
	RuleSourceDuplicate    Rule = "source-duplicate"    // no repeated source URLs
	RuleSourceAuthority    Rule = "source-authority"    // at least one non-tertiary source
)

// Severity indicates how serious an issue is.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Issue is a single lint finding, pointing at the offending line
// when the input format carries line positions.
type Issue struct {
	Rule     Rule     `json:"rule"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Line     int      `json:"line,omitempty"`
}

// Result collects the issues for one document.
type Result struct {
	Issues []Issue `json:"issues"`
}

// Valid reports whether the document passed: no critical issues.
func (r *Result) Valid() bool {
	return r.Count(SeverityCritical) == 0
}

// Count returns the number of issues at the given severity.
func (r *Result) Count(sev Severity) int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == sev {
			n++
		}
	}
	return n
}

func (r *Result) add(rule Rule, sev Severity, line int, message string) {
	r.Issues = append(r.Issues, Issue{Rule: rule, Severity: sev, Message: message, Line: line})
}
