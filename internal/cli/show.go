package cli

import (
	"fmt"

	"github.com/dossier-dev/dossier/internal/model"
	"github.com/dossier-dev/dossier/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	showWidth int
	showPlain bool
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "Display a report document in the terminal",
	Long: `Show renders a report document as styled terminal output. With
--plain it prints a one-screen overview instead.

Example:
  dossier show report.md
  dossier show report.md --width 80
  dossier show report.md --plain`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().IntVar(&showWidth, "width", 100, "word wrap width")
	showCmd.Flags().BoolVar(&showPlain, "plain", false, "print a plain overview instead of styled output")
}

func runShow(cmd *cobra.Command, args []string) error {
	path := args[0]

	cfg := model.DefaultConfig()
	cfg.Output.Verbose = verbose
	cfg.Output.WordWrap = showWidth

	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	p := pipeline.New(cfg, logger)
	result, err := p.ParseFile(path)
	if err != nil {
		return err
	}

	if showPlain {
		p.Renderer().RenderSummary(result.Report)
		return nil
	}

	out, err := p.Renderer().Terminal(result.Report, showWidth)
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}
