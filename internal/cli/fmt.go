package cli

import (
	"fmt"
	"os"

	"github.com/dossier-dev/dossier/internal/model"
	"github.com/dossier-dev/dossier/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	fmtWrite    bool
	fmtNoFooter bool
)

// fmtCmd represents the fmt command
var fmtCmd = &cobra.Command{
	Use:   "fmt <file>",
	Short: "Rewrite a report document into the canonical layout",
	Long: `Fmt parses a document leniently and re-renders it strictly:
canonical heading names, sequential finding numbers preserved as
written, canonical metadata lines, and a bullet source list.

Documents with critical lint issues are refused; fix them first.

Example:
  dossier fmt report.md            # print canonical form to stdout
  dossier fmt report.md --write    # rewrite the file in place`,
	Args: cobra.ExactArgs(1),
	RunE: runFmt,
}

func init() {
	rootCmd.AddCommand(fmtCmd)

	fmtCmd.Flags().BoolVarP(&fmtWrite, "write", "w", false, "rewrite the file in place")
	fmtCmd.Flags().BoolVar(&fmtNoFooter, "no-footer", false, "disable footer in formatted output")
}

func runFmt(cmd *cobra.Command, args []string) error {
	path := args[0]

	cfg := model.DefaultConfig()
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !fmtNoFooter

	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	p := pipeline.New(cfg, logger)
	result, err := p.ParseFile(path)
	if err != nil {
		return err
	}

	if !result.Lint.Valid() {
		_ = printLintReports([]fileReport{{Path: path, Issues: result.Lint.Issues}})
		return fmt.Errorf("cannot format %s: document has critical lint issues", path)
	}

	out := p.Renderer().Markdown(result.Report)

	if fmtWrite {
		if err := os.WriteFile(path, []byte(out), 0644); err != nil {
			return fmt.Errorf("rewrite %s: %w", path, err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Formatted %s\n", path)
		}
		return nil
	}

	fmt.Print(out)
	return nil
}
