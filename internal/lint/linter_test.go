package lint

import (
	"strings"
	"testing"
	"time"

	"github.com/dossier-dev/dossier/internal/model"
	"github.com/dossier-dev/dossier/internal/parse"
)

func init() {
	// Fixed clock so future-date checks are deterministic.
	nowFunc = func() time.Time {
		return time.Date(2025, time.August, 27, 12, 0, 0, 0, time.UTC)
	}
}

const validDoc = `# Solid Report

## Summary

A perfectly well-formed report.

## Key Findings

1. First finding.
2. Second finding.

**Confidence Level:** High
**Research Date:** 2025-08-12

## Sources

- https://www.nist.gov/report
- https://example.com/extra
`

func lintString(t *testing.T, cfg *model.Config, input string) *Result {
	t.Helper()
	doc, err := parse.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return New(cfg).Lint(doc)
}

func hasRule(result *Result, rule Rule) bool {
	for _, issue := range result.Issues {
		if issue.Rule == rule {
			return true
		}
	}
	return false
}

func TestLint_ValidDocument(t *testing.T) {
	result := lintString(t, nil, validDoc)

	if !result.Valid() {
		t.Fatalf("expected valid document, got issues: %+v", result.Issues)
	}
	if result.Count(SeverityCritical) != 0 {
		t.Errorf("expected no critical issues, got %d", result.Count(SeverityCritical))
	}
}

func TestLint_TitleRules(t *testing.T) {
	tests := []struct {
		name  string
		input string
		rule  Rule
	}{
		{"missing title", "## Summary\n\ntext\n", RuleTitleRequired},
		{"two titles", "# One\n\n# Two\n", RuleTitleSingle},
		{"empty title", "#\n", RuleTitleEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := lintString(t, nil, tt.input)
			if !hasRule(result, tt.rule) {
				t.Errorf("expected rule %s, got %+v", tt.rule, result.Issues)
			}
			if result.Valid() {
				t.Error("expected document to be invalid")
			}
		})
	}
}

func TestLint_FindingsSequential(t *testing.T) {
	tests := []struct {
		name    string
		items   string
		wantBad bool
	}{
		{"sequential", "1. A.\n2. B.\n3. C.\n", false},
		{"starts at zero", "0. A.\n1. B.\n", true},
		{"starts at two", "2. A.\n3. B.\n", true},
		{"gap", "1. A.\n3. B.\n", true},
		{"repeat", "1. A.\n1. B.\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := "# T\n\n## Key Findings\n\n" + tt.items
			result := lintString(t, nil, input)
			if got := hasRule(result, RuleFindingsSequential); got != tt.wantBad {
				t.Errorf("findings-sequential = %v, want %v (issues: %+v)", got, tt.wantBad, result.Issues)
			}
		})
	}
}

func TestLint_FindingsSequential_GapDoesNotCascade(t *testing.T) {
	input := "# T\n\n## Key Findings\n\n1. A.\n3. B.\n4. C.\n5. D.\n"
	result := lintString(t, nil, input)

	count := 0
	for _, issue := range result.Issues {
		if issue.Rule == RuleFindingsSequential {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected one sequence issue after resync, got %d", count)
	}
}

func TestLint_FindingsEmpty(t *testing.T) {
	result := lintString(t, nil, "# T\n\n## Key Findings\n\n")
	if !hasRule(result, RuleFindingsRequired) {
		t.Errorf("expected findings-required, got %+v", result.Issues)
	}
}

func TestLint_ConfidenceRules(t *testing.T) {
	missing := lintString(t, nil, "# T\n")
	if !hasRule(missing, RuleConfidenceRequired) {
		t.Error("expected confidence-required when field is missing")
	}

	bad := lintString(t, nil, "# T\n\n**Confidence Level:** Enormous\n")
	if !hasRule(bad, RuleConfidenceValue) {
		t.Error("expected confidence-value for label outside the enum")
	}

	ok := lintString(t, nil, "# T\n\n**Confidence Level:** medium\n")
	if hasRule(ok, RuleConfidenceValue) {
		t.Error("case-insensitive label should pass")
	}
}

func TestLint_DateRules(t *testing.T) {
	missing := lintString(t, nil, "# T\n")
	if !hasRule(missing, RuleDateRequired) {
		t.Error("expected date-required when field is missing")
	}

	bad := lintString(t, nil, "# T\n\n**Research Date:** sometime soon\n")
	if !hasRule(bad, RuleDateValid) {
		t.Error("expected date-valid for unparseable date")
	}

	future := lintString(t, nil, "# T\n\n**Research Date:** 2031-01-01\n")
	if !hasRule(future, RuleDateFuture) {
		t.Error("expected date-future warning")
	}

	cfg := model.DefaultConfig()
	cfg.Lint.AllowFutureDate = true
	allowed := lintString(t, cfg, "# T\n\n**Research Date:** 2031-01-01\n")
	if hasRule(allowed, RuleDateFuture) {
		t.Error("expected no date-future warning when allowed by config")
	}
}

func TestLint_DateFutureIsWarningOnly(t *testing.T) {
	input := strings.Replace(validDoc, "2025-08-12", "2031-01-01", 1)
	result := lintString(t, nil, input)

	if !hasRule(result, RuleDateFuture) {
		t.Fatal("expected date-future warning")
	}
	if !result.Valid() {
		t.Error("a future date alone must not fail the lint")
	}
}

func TestLint_SourceRules(t *testing.T) {
	base := "# T\n\n## Sources\n\n"

	tests := []struct {
		name    string
		sources string
		rule    Rule
	}{
		{"invalid url", "- not a url\n", RuleSourceURL},
		{"missing scheme", "- www.example.com/page\n", RuleSourceURL},
		{"ftp scheme", "- ftp://example.com/file\n", RuleSourceScheme},
		{"duplicate", "- https://example.com/a\n- https://example.com/a\n", RuleSourceDuplicate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := lintString(t, nil, base+tt.sources)
			if !hasRule(result, tt.rule) {
				t.Errorf("expected rule %s, got %+v", tt.rule, result.Issues)
			}
		})
	}
}

func TestLint_SourcesEmptySeverity(t *testing.T) {
	input := "# T\n\n## Key Findings\n\n1. A.\n\n**Confidence Level:** Low\n**Research Date:** 2025-01-01\n\n## Summary\n\ntext\n"

	lenient := lintString(t, nil, input)
	if !hasRule(lenient, RuleSourcesRequired) {
		t.Fatal("expected sources-required")
	}
	if !lenient.Valid() {
		t.Error("missing sources should be a warning by default")
	}

	cfg := model.DefaultConfig()
	cfg.Lint.RequireSources = true
	strict := lintString(t, cfg, input)
	if strict.Valid() {
		t.Error("missing sources should be critical when required by config")
	}
}

func TestLint_SourceAuthorityInfo(t *testing.T) {
	tertiaryOnly := "# T\n\n## Sources\n\n- https://someblog.example.net/post\n"
	result := lintString(t, nil, tertiaryOnly)
	if !hasRule(result, RuleSourceAuthority) {
		t.Error("expected source-authority info for tertiary-only sources")
	}

	withPrimary := "# T\n\n## Sources\n\n- https://www.nist.gov/report\n"
	result = lintString(t, nil, withPrimary)
	if hasRule(result, RuleSourceAuthority) {
		t.Error("expected no source-authority info with a primary source")
	}
}

func TestLint_IssueLines(t *testing.T) {
	input := "# T\n\n## Key Findings\n\n1. A.\n3. B.\n"
	result := lintString(t, nil, input)

	for _, issue := range result.Issues {
		if issue.Rule == RuleFindingsSequential && issue.Line != 6 {
			t.Errorf("expected sequence issue on line 6, got %d", issue.Line)
		}
	}
}
