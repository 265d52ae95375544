package cli

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/dossier-dev/dossier/internal/lint"
	"github.com/dossier-dev/dossier/internal/model"
	"github.com/dossier-dev/dossier/internal/pipeline"
	"github.com/dossier-dev/dossier/internal/worker"
	"github.com/spf13/cobra"
)

var (
	batchConcurrency int
	batchTimeout     time.Duration
	batchNoCache     bool
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <dir|file...>",
	Short: "Lint many report documents in parallel",
	Long: `Batch lints every report document under the given directories (or
the listed files) concurrently. Unchanged documents are served from
the lint cache.

Example:
  dossier batch reports/
  dossier batch reports/ --concurrency 8
  dossier batch a.md b.md c.md --no-cache`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 5*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().BoolVar(&batchNoCache, "no-cache", false, "disable the lint result cache")
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg := model.DefaultConfig()
	cfg.Output.Verbose = verbose
	cfg.Cache.Enabled = !batchNoCache
	cfg.Concurrency.Workers = batchConcurrency

	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	paths, err := expandPaths(args)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Dossier Batch Lint\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Documents:  %d\n", len(paths))
	fmt.Fprintf(os.Stderr, "  Workers:    %d\n", batchConcurrency)
	fmt.Fprintf(os.Stderr, "  Cache:      %v\n", cfg.Cache.Enabled)
	fmt.Fprintf(os.Stderr, "\n")

	p := pipeline.New(cfg, logger)
	processor := worker.NewBatchProcessor(p, batchConcurrency)

	results := processor.ProcessPaths(ctx, paths)

	passed := 0
	failed := 0
	cached := 0

	for _, result := range results {
		if result.Err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Path, result.Err)
			continue
		}

		if result.Result.Cached {
			cached++
		}

		lr := result.Result.Lint
		if lr.Valid() {
			passed++
			fmt.Fprintf(os.Stderr, "✓ %s (%d warnings)\n", result.Path, lr.Count(lint.SeverityWarning))
		} else {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s (%d critical, %d warnings)\n",
				result.Path, lr.Count(lint.SeverityCritical), lr.Count(lint.SeverityWarning))
		}
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d documents\n", len(results))
	fmt.Fprintf(os.Stderr, "  Passed:    %d\n", passed)
	fmt.Fprintf(os.Stderr, "  Failed:    %d\n", failed)
	fmt.Fprintf(os.Stderr, "  Cached:    %d\n", cached)
	fmt.Fprintf(os.Stderr, "\n")

	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed lint", failed, len(results))
	}
	return nil
}
