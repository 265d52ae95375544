package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dossier-dev/dossier/internal/cache"
	"github.com/dossier-dev/dossier/internal/lint"
	"github.com/dossier-dev/dossier/internal/model"
	"github.com/dossier-dev/dossier/internal/parse"
	"github.com/dossier-dev/dossier/internal/render"
	"go.uber.org/zap"
)

// Pipeline ties the pieces together: read a document, check the lint
// cache, parse, lint, and hold the renderer for output.
type Pipeline struct {
	linter   *lint.Linter
	renderer *render.Renderer
	cache    cache.Cache // nil when caching is disabled
	config   *model.Config
	logger   *zap.Logger
}

// FileResult is the outcome of processing one document.
type FileResult struct {
	Path   string
	Doc    *parse.Document // nil on a cache hit
	Report *model.Report   // nil on a cache hit
	Lint   *lint.Result
	Cached bool
}

// New creates a pipeline from configuration.
func New(cfg *model.Config, logger *zap.Logger) *Pipeline {
	if cfg == nil {
		cfg = model.DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	var c cache.Cache
	if cfg.Cache.Enabled {
		c = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
	}

	return &Pipeline{
		linter:   lint.New(cfg),
		renderer: render.NewRenderer(cfg.Output.IncludeFooter),
		cache:    c,
		config:   cfg,
		logger:   logger,
	}
}

// ProcessFile reads, parses, and lints a document. Unchanged content
// is served from the lint cache without re-parsing.
func (p *Pipeline) ProcessFile(path string) (*FileResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}

	if p.cache != nil {
		key := cache.Key(data)
		if raw, found := p.cache.Get(key); found {
			var cached lint.Result
			if err := json.Unmarshal(raw, &cached); err == nil {
				p.logger.Debug("lint cache hit", zap.String("path", path))
				return &FileResult{Path: path, Lint: &cached, Cached: true}, nil
			}
			_ = p.cache.Delete(key)
		}
	}

	result, err := p.process(path, data)
	if err != nil {
		return nil, err
	}

	if p.cache != nil {
		if raw, err := json.Marshal(result.Lint); err == nil {
			if err := p.cache.Set(cache.Key(data), raw, 0); err != nil {
				p.logger.Warn("lint cache write failed", zap.String("path", path), zap.Error(err))
			}
		}
	}

	return result, nil
}

// ParseFile parses and lints a document, always bypassing the cache.
// Commands that need the document itself (fmt, convert, show,
// archive) use this path.
func (p *Pipeline) ParseFile(path string) (*FileResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return p.process(path, data)
}

func (p *Pipeline) process(path string, data []byte) (*FileResult, error) {
	var (
		doc *parse.Document
		err error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		doc, err = parse.ParseHTML(strings.NewReader(string(data)))
	default:
		doc, err = parse.Parse(strings.NewReader(string(data)))
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	result := p.linter.Lint(doc)
	p.logger.Debug("linted document",
		zap.String("path", path),
		zap.Int("issues", len(result.Issues)),
		zap.Bool("valid", result.Valid()))

	return &FileResult{
		Path:   path,
		Doc:    doc,
		Report: doc.Report(),
		Lint:   result,
	}, nil
}

// Renderer exposes the configured renderer.
func (p *Pipeline) Renderer() *render.Renderer {
	return p.renderer
}
