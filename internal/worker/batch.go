package worker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dossier-dev/dossier/internal/pipeline"
)

// Processor lints a single document; satisfied by pipeline.Pipeline.
type Processor interface {
	ProcessFile(path string) (*pipeline.FileResult, error)
}

// LintJob lints one file.
type LintJob struct {
	Path      string
	Processor Processor
}

// LintResult is the outcome of one lint job.
type LintResult struct {
	Path   string
	Result *pipeline.FileResult
	Err    error
}

// GetError returns the job error, if any.
func (r *LintResult) GetError() error {
	return r.Err
}

// Execute runs the lint job, honoring pool cancellation.
func (j *LintJob) Execute(ctx context.Context) Result {
	select {
	case <-ctx.Done():
		return &LintResult{Path: j.Path, Err: ctx.Err()}
	default:
	}

	result, err := j.Processor.ProcessFile(j.Path)
	return &LintResult{Path: j.Path, Result: result, Err: err}
}

// BatchProcessor lints many documents concurrently.
type BatchProcessor struct {
	processor   Processor
	concurrency int
}

// NewBatchProcessor creates a batch processor over the given
// concurrency.
func NewBatchProcessor(processor Processor, concurrency int) *BatchProcessor {
	return &BatchProcessor{processor: processor, concurrency: concurrency}
}

// ProcessPaths lints the given files with the worker pool. Results
// come back sorted by path so output is deterministic.
func (b *BatchProcessor) ProcessPaths(ctx context.Context, paths []string) []*LintResult {
	if len(paths) == 0 {
		return nil
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			pool.Shutdown()
		case <-done:
		}
	}()

	// Submit from a separate goroutine so results can be drained as
	// they arrive; batches can be much larger than the queue buffer.
	go func() {
		for _, path := range paths {
			pool.Submit(&LintJob{Path: path, Processor: b.processor})
		}
		pool.Close()
	}()

	results := make([]*LintResult, 0, len(paths))
	for r := range pool.Results() {
		if lr, ok := r.(*LintResult); ok {
			results = append(results, lr)
		}
	}
	close(done)
	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })

	return results
}

// ProcessDir lints every report document found under dir.
func (b *BatchProcessor) ProcessDir(ctx context.Context, dir string) ([]*LintResult, error) {
	paths, err := CollectDocuments(dir)
	if err != nil {
		return nil, err
	}
	return b.ProcessPaths(ctx, paths), nil
}

// CollectDocuments walks dir and returns every file with a report
// document extension, sorted.
func CollectDocuments(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".md", ".markdown", ".html", ".htm":
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}
	sort.Strings(paths)
	return paths, nil
}
