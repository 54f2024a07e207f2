package report

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

var (
	timeNow = time.Now
	newID   = uuid.NewString
)

// sqliteTime is the layout used for timestamps stored in SQLite.
const sqliteTime = "2006-01-02 15:04:05"

// DefaultHistoryLimit caps List when no limit is given.
const DefaultHistoryLimit = 10

// ErrNotFound is returned by Get for an unknown entry ID.
var ErrNotFound = errors.New("report: history entry not found")

// Entry is one exported report kept in history.
type Entry struct {
	ID              string    `json:"id"`
	ModuleID        string    `json:"module_id"`
	Title           string    `json:"title"`
	Date            string    `json:"date"`
	Format          Format    `json:"format"`
	OverallScore    int       `json:"overall_score"`
	ComplianceLevel string    `json:"compliance_level"`
	Body            string    `json:"body,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// History is a SQLite log of exported reports.
type History struct {
	db *sql.DB
}

// OpenHistory opens (creating when needed) the history database at path.
// It creates the parent directory, enables WAL mode and runs migrations.
func OpenHistory(path string) (*History, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("report: history path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("report: create data dir: %w", err)
	}

	db, err := openDB("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("report: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("report: pragma %q: %w", p, err)
		}
	}

	h := &History{db: db}
	if err := h.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("report: migration: %w", err)
	}
	return h, nil
}

// Close closes the underlying database connection.
func (h *History) Close() error {
	return h.db.Close()
}

func (h *History) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS reports (
			id               TEXT PRIMARY KEY,
			module_id        TEXT    NOT NULL,
			title            TEXT    NOT NULL,
			report_date      TEXT    NOT NULL,
			format           TEXT    NOT NULL,
			overall_score    INTEGER NOT NULL,
			compliance_level TEXT    NOT NULL,
			body             TEXT    NOT NULL,
			created_at       TEXT    NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_reports_module ON reports(module_id, created_at DESC);
	`
	_, err := h.db.Exec(schema)
	return err
}

// Save records an exported report and its rendered body.
func (h *History) Save(r Report, format Format, body []byte) (*Entry, error) {
	e := &Entry{
		ID:              newID(),
		ModuleID:        r.ModuleID,
		Title:           r.Module,
		Date:            r.Date,
		Format:          format,
		OverallScore:    r.OverallScore,
		ComplianceLevel: r.ComplianceLevel,
		Body:            string(body),
		CreatedAt:       timeNow().UTC().Truncate(time.Second),
	}

	_, err := h.db.Exec(
		`INSERT INTO reports (id, module_id, title, report_date, format, overall_score, compliance_level, body, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.ModuleID, e.Title, e.Date, string(e.Format), e.OverallScore, e.ComplianceLevel, e.Body,
		e.CreatedAt.Format(sqliteTime),
	)
	if err != nil {
		return nil, fmt.Errorf("report: save history: %w", err)
	}
	return e, nil
}

// List returns the most recent entries, newest first, without bodies. An
// empty moduleID lists every module.
func (h *History) List(moduleID string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	query := `
		SELECT id, module_id, title, report_date, format, overall_score, compliance_level, '', created_at
		FROM reports
		WHERE 1=1
	`
	var args []any
	if moduleID != "" {
		query += " AND module_id = ?"
		args = append(args, moduleID)
	}
	query += " ORDER BY created_at DESC, rowid DESC LIMIT ?"
	args = append(args, limit)

	rows, err := h.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("report: list history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("report: list history: %w", err)
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

// Get returns one entry including its body.
func (h *History) Get(id string) (*Entry, error) {
	row := h.db.QueryRow(
		`SELECT id, module_id, title, report_date, format, overall_score, compliance_level, body, created_at
		 FROM reports WHERE id = ?`, id,
	)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("report: get history: %w", err)
	}
	return e, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (*Entry, error) {
	var (
		e         Entry
		format    string
		createdAt string
	)
	if err := s.Scan(&e.ID, &e.ModuleID, &e.Title, &e.Date, &format, &e.OverallScore, &e.ComplianceLevel, &e.Body, &createdAt); err != nil {
		return nil, err
	}
	e.Format = Format(format)
	t, err := time.ParseInLocation(sqliteTime, createdAt, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at %q: %w", createdAt, err)
	}
	e.CreatedAt = t
	return &e, nil
}
