package classify

import (
	"testing"

	"github.com/dossier-dev/dossier/internal/model"
)

func TestClassify_Defaults(t *testing.T) {
	c := NewAuthorityClassifier(nil)

	tests := []struct {
		name string
		url  string
		want model.AuthorityTier
	}{
		{"listed primary", "https://www.nist.gov/pqc", model.TierPrimary},
		{"primary subdomain", "https://csrc.nist.gov/projects", model.TierPrimary},
		{"uk government", "https://www.gov.uk/guidance", model.TierPrimary},
		{"listed secondary", "https://en.wikipedia.org/wiki/Entropy", model.TierSecondary},
		{"unlisted gov tld", "https://obscure-agency.gov/report", model.TierPrimary},
		{"unlisted edu tld", "https://cs.stanford.edu/paper", model.TierPrimary},
		{"uk academic", "https://www.cam.ac.uk/research", model.TierPrimary},
		{"random blog", "https://someblog.example.com/post", model.TierTertiary},
		{"host with port", "https://www.nist.gov:443/pqc", model.TierPrimary},
		{"relative url", "/just/a/path", model.TierTertiary},
		{"empty", "", model.TierTertiary},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Classify(tt.url); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}

func TestClassify_DomainMapOverride(t *testing.T) {
	cfg := model.DefaultConfig().Authority
	cfg.DomainMap = map[string]string{
		"en.wikipedia.org":  "primary",
		"www.nist.gov":      "tertiary",
		"internal.corp.net": "2",
	}
	c := NewAuthorityClassifier(&cfg)

	if got := c.Classify("https://en.wikipedia.org/wiki/X"); got != model.TierPrimary {
		t.Errorf("override to primary failed, got %v", got)
	}
	if got := c.Classify("https://www.nist.gov/x"); got != model.TierTertiary {
		t.Errorf("override to tertiary failed, got %v", got)
	}
	if got := c.Classify("https://internal.corp.net/x"); got != model.TierSecondary {
		t.Errorf("numeric tier override failed, got %v", got)
	}
}

func TestClassify_PathPatterns(t *testing.T) {
	cfg := model.AuthorityConfig{
		PathPatterns: []model.PathPattern{
			{Pattern: `^/rfc/rfc\d+`, Tier: "primary"},
			{Pattern: `^/whitepapers/`, Tier: "secondary"},
			{Pattern: `[invalid`, Tier: "primary"}, // skipped at compile time
		},
	}
	c := NewAuthorityClassifier(&cfg)

	if got := c.Classify("https://example.org/rfc/rfc9000"); got != model.TierPrimary {
		t.Errorf("rfc path = %v, want primary", got)
	}
	if got := c.Classify("https://example.org/whitepapers/storage.pdf"); got != model.TierSecondary {
		t.Errorf("whitepaper path = %v, want secondary", got)
	}
	if got := c.Classify("https://example.org/blog/post"); got != model.TierTertiary {
		t.Errorf("unmatched path = %v, want tertiary", got)
	}
}

func TestClassifySources(t *testing.T) {
	c := NewAuthorityClassifier(nil)

	in := []model.Source{
		{URL: "https://www.nist.gov/pqc"},
		{URL: "https://en.wikipedia.org/wiki/X", Title: "Wikipedia"},
		{URL: "https://someblog.example.com/post"},
	}
	got := c.ClassifySources(in)

	want := []model.AuthorityTier{model.TierPrimary, model.TierSecondary, model.TierTertiary}
	for i, tier := range want {
		if got[i].Authority != tier {
			t.Errorf("source %d authority = %v, want %v", i, got[i].Authority, tier)
		}
	}
	if in[1].Authority != model.TierUnknown {
		t.Error("input slice was mutated")
	}
	if got[1].Title != "Wikipedia" {
		t.Error("title not preserved")
	}
}
