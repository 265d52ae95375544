package classify

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/dossier-dev/dossier/internal/model"
)

// AuthorityClassifier assigns authority tiers to source URLs by
// domain and path matching alone. It never fetches anything.
type AuthorityClassifier struct {
	config       *model.AuthorityConfig
	primaryMap   map[string]bool
	secondaryMap map[string]bool
	pathPatterns []*compiledPattern
}

type compiledPattern struct {
	pattern *regexp.Regexp
	tier    model.AuthorityTier
}

// NewAuthorityClassifier creates a classifier from configuration.
// A nil config uses the built-in domain lists.
func NewAuthorityClassifier(config *model.AuthorityConfig) *AuthorityClassifier {
	if config == nil {
		config = &model.DefaultConfig().Authority
	}

	c := &AuthorityClassifier{
		config:       config,
		primaryMap:   make(map[string]bool),
		secondaryMap: make(map[string]bool),
	}

	for _, domain := range config.PrimaryDomains {
		c.primaryMap[domain] = true
	}
	for _, domain := range config.SecondaryDomains {
		c.secondaryMap[domain] = true
	}

	for _, pp := range config.PathPatterns {
		re, err := regexp.Compile(pp.Pattern)
		if err != nil {
			continue
		}
		tier := model.TierTertiary
		switch strings.ToLower(pp.Tier) {
		case "primary":
			tier = model.TierPrimary
		case "secondary":
			tier = model.TierSecondary
		}
		c.pathPatterns = append(c.pathPatterns, &compiledPattern{pattern: re, tier: tier})
	}

	return c
}

// Classify assigns an authority tier to a URL. Unparseable URLs are
// tertiary.
func (c *AuthorityClassifier) Classify(rawURL string) model.AuthorityTier {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return model.TierTertiary
	}

	host := parsed.Host
	if idx := strings.Index(host, ":"); idx > 0 {
		host = host[:idx]
	}

	// Explicit per-domain overrides win.
	if c.config.DomainMap != nil {
		if tierStr, ok := c.config.DomainMap[host]; ok {
			return parseTierString(tierStr)
		}
	}

	if matchesDomain(host, c.primaryMap) {
		return model.TierPrimary
	}
	if matchesDomain(host, c.secondaryMap) {
		return model.TierSecondary
	}

	for _, cp := range c.pathPatterns {
		if cp.pattern.MatchString(parsed.Path) {
			return cp.tier
		}
	}

	// Government and academic TLDs are primary even when unlisted.
	if strings.HasSuffix(host, ".gov") || strings.HasSuffix(host, ".edu") ||
		strings.HasSuffix(host, ".ac.uk") {
		return model.TierPrimary
	}

	return model.TierTertiary
}

// ClassifySources fills in the Authority field on each source.
func (c *AuthorityClassifier) ClassifySources(sources []model.Source) []model.Source {
	out := make([]model.Source, len(sources))
	for i, s := range sources {
		s.Authority = c.Classify(s.URL)
		out[i] = s
	}
	return out
}

// matchesDomain checks for an exact match or a subdomain match
// (foo.gov.uk matches gov.uk).
func matchesDomain(host string, domains map[string]bool) bool {
	if domains[host] {
		return true
	}
	for domain := range domains {
		if strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}

// parseTierString converts a configured tier name to a tier value.
func parseTierString(tier string) model.AuthorityTier {
	switch strings.ToLower(tier) {
	case "primary", "1":
		return model.TierPrimary
	case "secondary", "2":
		return model.TierSecondary
	default:
		return model.TierTertiary
	}
}
