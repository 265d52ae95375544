package model

import (
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// Config holds all configuration for dossier
type Config struct {
	Lint        LintConfig        `json:"lint" yaml:"lint"`
	Output      OutputConfig      `json:"output" yaml:"output"`
	Cache       CacheConfig       `json:"cache" yaml:"cache"`
	Archive     ArchiveConfig     `json:"archive" yaml:"archive"`
	Concurrency ConcurrencyConfig `json:"concurrency" yaml:"concurrency"`
	Authority   AuthorityConfig   `json:"authority" yaml:"authority"`
}

// LintConfig controls the lint rule set
type LintConfig struct {
	// AllowFutureDate disables the research-date-in-the-future warning
	AllowFutureDate bool `json:"allow_future_date" yaml:"allow_future_date"`

	// RequireSources makes an empty source list an error instead of a warning
	RequireSources bool `json:"require_sources" yaml:"require_sources"`

	// AllowedSchemes lists acceptable source URL schemes
	AllowedSchemes []string `json:"allowed_schemes" yaml:"allowed_schemes"`

	// MaxSummaryLength flags summaries longer than this many runes (0 = no limit)
	MaxSummaryLength int `json:"max_summary_length" yaml:"max_summary_length"`
}

// OutputConfig controls rendering
type OutputConfig struct {
	Verbose       bool   `json:"verbose" yaml:"verbose"`
	Format        string `json:"format" yaml:"format"`                 // text or json lint output
	IncludeFooter bool   `json:"include_footer" yaml:"include_footer"` // footer line in rendered Markdown
	WordWrap      int    `json:"word_wrap" yaml:"word_wrap"`           // terminal rendering width
}

// CacheConfig controls the lint result cache
type CacheConfig struct {
	Enabled   bool          `json:"enabled" yaml:"enabled"`
	Dir       string        `json:"dir" yaml:"dir"`
	MemoryTTL time.Duration `json:"memory_ttl" yaml:"memory_ttl"`
	DiskTTL   time.Duration `json:"disk_ttl" yaml:"disk_ttl"`
}

// ArchiveConfig controls the report archive
type ArchiveConfig struct {
	Path string `json:"path" yaml:"path"`
}

// ConcurrencyConfig controls batch processing
type ConcurrencyConfig struct {
	Workers int `json:"workers" yaml:"workers"`
}

// AuthorityConfig controls source authority classification
type AuthorityConfig struct {
	PrimaryDomains   []string          `json:"primary_domains" yaml:"primary_domains"`
	SecondaryDomains []string          `json:"secondary_domains" yaml:"secondary_domains"`
	DomainMap        map[string]string `json:"domain_map,omitempty" yaml:"domain_map,omitempty"`
	PathPatterns     []PathPattern     `json:"path_patterns,omitempty" yaml:"path_patterns,omitempty"`
}

// PathPattern maps a URL path regexp to an authority tier
type PathPattern struct {
	Pattern string `json:"pattern" yaml:"pattern"`
	Tier    string `json:"tier" yaml:"tier"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}

	return &Config{
		Lint: LintConfig{
			AllowFutureDate:  false,
			RequireSources:   false,
			AllowedSchemes:   []string{"http", "https"},
			MaxSummaryLength: 0,
		},
		Output: OutputConfig{
			Verbose:       false,
			Format:        "text",
			IncludeFooter: true,
			WordWrap:      100,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       filepath.Join(home, ".dossier", "cache"),
			MemoryTTL: 10 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Archive: ArchiveConfig{
			Path: filepath.Join(home, ".dossier", "archive.db"),
		},
		Concurrency: ConcurrencyConfig{
			Workers: runtime.NumCPU(),
		},
		Authority: AuthorityConfig{
			PrimaryDomains: []string{
				"gov.uk", "europa.eu", "un.org", "who.int",
				"nist.gov", "nih.gov", "arxiv.org", "doi.org",
				"ietf.org", "iso.org", "acm.org", "ieee.org",
				"nature.com", "science.org",
			},
			SecondaryDomains: []string{
				"britannica.com", "reuters.com", "apnews.com",
				"bbc.co.uk", "bbc.com", "nytimes.com",
				"economist.com", "wikipedia.org",
			},
		},
	}
}
