package store

import (
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	"github.com/dossier-dev/dossier/internal/model"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

//go:embed schema.sql
var schema string

// Store is the append-only report archive. Reports go in once and are
// only ever read back; there are no update or delete operations.
type Store struct {
	db     *sql.DB
	logger *zap.Logger
}

// ArchivedReport is a report as it sits in the archive, together with
// the raw markdown it was archived from.
type ArchivedReport struct {
	ID         string       `json:"id"`
	ArchivedAt time.Time    `json:"archived_at"`
	Markdown   string       `json:"markdown"`
	Report     model.Report `json:"report"`
}

// Summary is the listing view of an archived report.
type Summary struct {
	ID           string           `json:"id"`
	Title        string           `json:"title"`
	Confidence   model.Confidence `json:"confidence"`
	ResearchDate model.Date       `json:"research_date"`
	ArchivedAt   time.Time        `json:"archived_at"`
}

// New opens (or creates) the archive at dbPath.
func New(dbPath string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init archive schema: %w", err)
	}

	return &Store{db: db, logger: logger}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Add archives a report. The insert is the only write the archive
// ever performs for a report.
func (s *Store) Add(report *model.Report, markdown string) (*ArchivedReport, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin archive tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(
		"INSERT INTO reports (id, title, summary, confidence, research_date, body_md, archived_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		id, report.Title, report.Summary, string(report.Confidence), report.ResearchDate.String(), markdown, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert report: %w", err)
	}

	for i, f := range report.KeyFindings {
		if _, err := tx.Exec(
			"INSERT INTO findings (report_id, position, number, text) VALUES (?, ?, ?, ?)",
			id, i, f.Number, f.Text,
		); err != nil {
			return nil, fmt.Errorf("insert finding: %w", err)
		}
	}

	for i, src := range report.Sources {
		if _, err := tx.Exec(
			"INSERT INTO sources (report_id, position, url, title, authority) VALUES (?, ?, ?, ?, ?)",
			id, i, src.URL, src.Title, int(src.Authority),
		); err != nil {
			return nil, fmt.Errorf("insert source: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit archive tx: %w", err)
	}

	s.logger.Debug("archived report",
		zap.String("id", id),
		zap.String("title", report.Title),
		zap.Int("findings", len(report.KeyFindings)),
		zap.Int("sources", len(report.Sources)))

	return &ArchivedReport{
		ID:         id,
		ArchivedAt: now,
		Markdown:   markdown,
		Report:     *report,
	}, nil
}

// Get retrieves an archived report by ID.
func (s *Store) Get(id string) (*ArchivedReport, error) {
	var (
		ar      ArchivedReport
		dateStr string
	)
	ar.ID = id

	err := s.db.QueryRow(
		"SELECT title, summary, confidence, research_date, body_md, archived_at FROM reports WHERE id = ?",
		id,
	).Scan(&ar.Report.Title, &ar.Report.Summary, (*string)(&ar.Report.Confidence), &dateStr, &ar.Markdown, &ar.ArchivedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("report %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get report: %w", err)
	}

	if dateStr != "" {
		date, err := model.ParseDate(dateStr)
		if err != nil {
			return nil, fmt.Errorf("stored research date: %w", err)
		}
		ar.Report.ResearchDate = date
	}

	if ar.Report.KeyFindings, err = s.findings(id); err != nil {
		return nil, err
	}
	if ar.Report.Sources, err = s.sources(id); err != nil {
		return nil, err
	}

	return &ar, nil
}

// List returns archive summaries newest first.
func (s *Store) List(limit, offset int) ([]Summary, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		"SELECT id, title, confidence, research_date, archived_at FROM reports ORDER BY archived_at DESC LIMIT ? OFFSET ?",
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanSummaries(rows)
}

// FindByTitle returns summaries whose title contains the query,
// case-insensitively, newest first.
func (s *Store) FindByTitle(query string) ([]Summary, error) {
	rows, err := s.db.Query(
		"SELECT id, title, confidence, research_date, archived_at FROM reports WHERE title LIKE ? ORDER BY archived_at DESC",
		"%"+query+"%",
	)
	if err != nil {
		return nil, fmt.Errorf("find reports: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanSummaries(rows)
}

func (s *Store) findings(reportID string) ([]model.Finding, error) {
	rows, err := s.db.Query(
		"SELECT number, text FROM findings WHERE report_id = ? ORDER BY position",
		reportID,
	)
	if err != nil {
		return nil, fmt.Errorf("get findings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var findings []model.Finding
	for rows.Next() {
		var f model.Finding
		if err := rows.Scan(&f.Number, &f.Text); err != nil {
			return nil, fmt.Errorf("scan finding: %w", err)
		}
		findings = append(findings, f)
	}
	return findings, rows.Err()
}

func (s *Store) sources(reportID string) ([]model.Source, error) {
	rows, err := s.db.Query(
		"SELECT url, title, authority FROM sources WHERE report_id = ? ORDER BY position",
		reportID,
	)
	if err != nil {
		return nil, fmt.Errorf("get sources: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var sources []model.Source
	for rows.Next() {
		var (
			src  model.Source
			tier int
		)
		if err := rows.Scan(&src.URL, &src.Title, &tier); err != nil {
			return nil, fmt.Errorf("scan source: %w", err)
		}
		src.Authority = model.AuthorityTier(tier)
		sources = append(sources, src)
	}
	return sources, rows.Err()
}

func scanSummaries(rows *sql.Rows) ([]Summary, error) {
	var summaries []Summary
	for rows.Next() {
		var (
			sum     Summary
			dateStr string
		)
		if err := rows.Scan(&sum.ID, &sum.Title, (*string)(&sum.Confidence), &dateStr, &sum.ArchivedAt); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		if dateStr != "" {
			if date, err := model.ParseDate(dateStr); err == nil {
				sum.ResearchDate = date
			}
		}
		summaries = append(summaries, sum)
	}
	return summaries, rows.Err()
}
