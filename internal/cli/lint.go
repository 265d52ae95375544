package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dossier-dev/dossier/internal/lint"
	"github.com/dossier-dev/dossier/internal/model"
	"github.com/dossier-dev/dossier/internal/pipeline"
	"github.com/dossier-dev/dossier/internal/watch"
	"github.com/dossier-dev/dossier/internal/worker"
	"github.com/spf13/cobra"
)

var (
	lintFormat    string
	lintStrict    bool
	lintNoCache   bool
	lintWatchMode bool
)

// lintCmd represents the lint command
var lintCmd = &cobra.Command{
	Use:   "lint <file|dir> [...]",
	Short: "Check report documents against the structural rules",
	Long: `Lint checks each document for:
- exactly one title line
- a non-empty key findings list numbered sequentially from 1
- a confidence level that is one of High, Medium, Low
- a research date that parses as a valid calendar date
- syntactically valid source URLs

Critical issues fail the lint; warnings do not unless --strict is set.

Example:
  dossier lint report.md
  dossier lint reports/ --format json
  dossier lint report.md --watch`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLint,
}

func init() {
	rootCmd.AddCommand(lintCmd)

	lintCmd.Flags().StringVar(&lintFormat, "format", "text", "issue output format (text, json)")
	lintCmd.Flags().BoolVar(&lintStrict, "strict", false, "treat warnings as failures")
	lintCmd.Flags().BoolVar(&lintNoCache, "no-cache", false, "disable the lint result cache")
	lintCmd.Flags().BoolVar(&lintWatchMode, "watch", false, "re-lint when watched documents change")
}

func runLint(cmd *cobra.Command, args []string) error {
	cfg := model.DefaultConfig()
	cfg.Output.Verbose = verbose
	cfg.Cache.Enabled = !lintNoCache

	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	p := pipeline.New(cfg, logger)

	paths, err := expandPaths(args)
	if err != nil {
		return err
	}

	if lintWatchMode {
		return watchLint(p, args, paths)
	}

	failed := 0
	var fileReports []fileReport
	for _, path := range paths {
		result, err := p.ProcessFile(path)
		if err != nil {
			return err
		}
		if !lintPassed(result.Lint) {
			failed++
		}
		fileReports = append(fileReports, fileReport{
			Path:   path,
			Valid:  result.Lint.Valid(),
			Issues: result.Lint.Issues,
		})
	}

	if err := printLintReports(fileReports); err != nil {
		return err
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed lint", failed, len(paths))
	}
	return nil
}

// watchLint lints everything once, then re-lints on change until
// interrupted.
func watchLint(p *pipeline.Pipeline, watchTargets, paths []string) error {
	relint := func(path string) {
		result, err := p.ProcessFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", path, err)
			return
		}
		_ = printLintReports([]fileReport{{
			Path:   path,
			Valid:  result.Lint.Valid(),
			Issues: result.Lint.Issues,
		}})
	}

	for _, path := range paths {
		relint(path)
	}

	w, err := watch.New(watchTargets, 0, newLogger(), relint)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Watching %d path(s), Ctrl-C to stop\n", len(watchTargets))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := w.Run(ctx); err != nil && err != context.Canceled {
		return err
	}
	return nil
}

type fileReport struct {
	Path   string       `json:"path"`
	Valid  bool         `json:"valid"`
	Issues []lint.Issue `json:"issues"`
}

func printLintReports(reports []fileReport) error {
	if lintFormat == "json" {
		data, err := json.MarshalIndent(reports, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal lint report: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	for _, fr := range reports {
		if len(fr.Issues) == 0 {
			fmt.Printf("✓ %s\n", fr.Path)
			continue
		}
		for _, issue := range fr.Issues {
			if issue.Line > 0 {
				fmt.Printf("%s:%d %s %s: %s\n", fr.Path, issue.Line, issue.Severity, issue.Rule, issue.Message)
			} else {
				fmt.Printf("%s %s %s: %s\n", fr.Path, issue.Severity, issue.Rule, issue.Message)
			}
		}
	}
	return nil
}

func lintPassed(result *lint.Result) bool {
	if !result.Valid() {
		return false
	}
	if lintStrict && result.Count(lint.SeverityWarning) > 0 {
		return false
	}
	return true
}

// expandPaths replaces directories with the documents they contain.
func expandPaths(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", arg, err)
		}
		if info.IsDir() {
			found, err := worker.CollectDocuments(arg)
			if err != nil {
				return nil, err
			}
			paths = append(paths, found...)
		} else {
			paths = append(paths, arg)
		}
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no report documents found")
	}
	return paths, nil
}
