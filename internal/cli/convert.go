package cli

import (
	"fmt"
	"os"

	"github.com/dossier-dev/dossier/internal/model"
	"github.com/dossier-dev/dossier/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	convertTo  string
	convertOut string
)

// convertCmd represents the convert command
var convertCmd = &cobra.Command{
	Use:   "convert <file>",
	Short: "Convert a report document to another format",
	Long: `Convert reads a report document (markdown or HTML) and emits it as
JSON, YAML, HTML, or canonical markdown.

Example:
  dossier convert report.md --to json
  dossier convert report.md --to html --out report.html
  dossier convert report.html --to md`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVar(&convertTo, "to", "json", "target format (json, yaml, html, md)")
	convertCmd.Flags().StringVar(&convertOut, "out", "", "output path (default: stdout)")
}

func runConvert(cmd *cobra.Command, args []string) error {
	path := args[0]

	cfg := model.DefaultConfig()
	cfg.Output.Verbose = verbose

	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	p := pipeline.New(cfg, logger)
	result, err := p.ParseFile(path)
	if err != nil {
		return err
	}

	if !result.Lint.Valid() {
		_ = printLintReports([]fileReport{{Path: path, Issues: result.Lint.Issues}})
		return fmt.Errorf("cannot convert %s: document has critical lint issues", path)
	}

	var data []byte
	switch convertTo {
	case "json":
		data, err = p.Renderer().JSON(result.Report)
	case "yaml", "yml":
		data, err = p.Renderer().YAML(result.Report)
	case "html":
		var page string
		page, err = p.Renderer().HTML(result.Report)
		data = []byte(page)
	case "md", "markdown":
		data = []byte(p.Renderer().Markdown(result.Report))
	default:
		return fmt.Errorf("unknown format %q (expected json, yaml, html, or md)", convertTo)
	}
	if err != nil {
		return err
	}

	if convertOut != "" {
		if err := os.WriteFile(convertOut, data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", convertOut, err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote %s\n", convertOut)
		}
		return nil
	}

	fmt.Print(string(data))
	return nil
}
