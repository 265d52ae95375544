package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dossier-dev/dossier/internal/classify"
	"github.com/dossier-dev/dossier/internal/model"
	"github.com/dossier-dev/dossier/internal/pipeline"
	"github.com/dossier-dev/dossier/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	archivePath   string
	archiveForce  bool
	archiveLimit  int
	archiveOffset int
	archiveAsMD   bool
)

// archiveCmd represents the archive command
var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Manage the append-only report archive",
	Long: `Archive keeps finished reports in a local SQLite database. A report
is written once when added and only ever read back afterwards; there
is no update or delete.`,
}

var archiveAddCmd = &cobra.Command{
	Use:   "add <file>",
	Short: "Archive a report document",
	Args:  cobra.ExactArgs(1),
	RunE:  runArchiveAdd,
}

var archiveShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Display an archived report",
	Args:  cobra.ExactArgs(1),
	RunE:  runArchiveShow,
}

var archiveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived reports, newest first",
	Args:  cobra.NoArgs,
	RunE:  runArchiveList,
}

var archiveFindCmd = &cobra.Command{
	Use:   "find <query>",
	Short: "Find archived reports by title",
	Args:  cobra.ExactArgs(1),
	RunE:  runArchiveFind,
}

func init() {
	rootCmd.AddCommand(archiveCmd)
	archiveCmd.AddCommand(archiveAddCmd)
	archiveCmd.AddCommand(archiveShowCmd)
	archiveCmd.AddCommand(archiveListCmd)
	archiveCmd.AddCommand(archiveFindCmd)

	archiveCmd.PersistentFlags().StringVar(&archivePath, "db", "", "archive database path (default: ~/.dossier/archive.db)")

	archiveAddCmd.Flags().BoolVar(&archiveForce, "force", false, "archive even with critical lint issues")
	archiveListCmd.Flags().IntVar(&archiveLimit, "limit", 20, "maximum entries to list")
	archiveListCmd.Flags().IntVar(&archiveOffset, "offset", 0, "entries to skip")
	archiveShowCmd.Flags().BoolVar(&archiveAsMD, "md", false, "print the archived markdown instead of the overview")
}

func openArchive(cfg *model.Config, logger *zap.Logger) (*store.Store, error) {
	path := archivePath
	if path == "" {
		path = cfg.Archive.Path
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create archive directory: %w", err)
	}
	return store.New(path, logger)
}

func runArchiveAdd(cmd *cobra.Command, args []string) error {
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

	if !result.Lint.Valid() && !archiveForce {
		_ = printLintReports([]fileReport{{Path: path, Issues: result.Lint.Issues}})
		return fmt.Errorf("refusing to archive %s: document has critical lint issues (use --force to override)", path)
	}

	report := result.Report
	classifier := classify.NewAuthorityClassifier(&cfg.Authority)
	report.Sources = classifier.ClassifySources(report.Sources)

	s, err := openArchive(cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	markdown := p.Renderer().Markdown(report)
	archived, err := s.Add(report, markdown)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Archived %q as %s\n", report.Title, archived.ID)
	return nil
}

func runArchiveShow(cmd *cobra.Command, args []string) error {
	cfg := model.DefaultConfig()

	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	s, err := openArchive(cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	archived, err := s.Get(args[0])
	if err != nil {
		return err
	}

	if archiveAsMD {
		fmt.Print(archived.Markdown)
		return nil
	}

	fmt.Printf("ID:          %s\n", archived.ID)
	fmt.Printf("Archived at: %s\n", archived.ArchivedAt.Format("2006-01-02 15:04:05 MST"))
	pipeline.New(cfg, logger).Renderer().RenderSummary(&archived.Report)
	return nil
}

func runArchiveList(cmd *cobra.Command, args []string) error {
	cfg := model.DefaultConfig()

	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	s, err := openArchive(cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	summaries, err := s.List(archiveLimit, archiveOffset)
	if err != nil {
		return err
	}

	printSummaries(summaries)
	return nil
}

func runArchiveFind(cmd *cobra.Command, args []string) error {
	cfg := model.DefaultConfig()

	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	s, err := openArchive(cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	summaries, err := s.FindByTitle(args[0])
	if err != nil {
		return err
	}

	printSummaries(summaries)
	return nil
}

func printSummaries(summaries []store.Summary) {
	if len(summaries) == 0 {
		fmt.Println("No archived reports.")
		return
	}
	for _, sum := range summaries {
		fmt.Printf("%s  %-10s %-7s %s\n",
			sum.ID, sum.ResearchDate, sum.Confidence, sum.Title)
	}
}
