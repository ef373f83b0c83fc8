// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog persists processed-paper records in a SQLite database
// inside the vault and offers full-text search over their note text. The
// bundle files on disk remain the source of truth; the catalog is derived
// state for the list and search commands.
//
// The FTS5 virtual table needs go-sqlite3 compiled with the sqlite_fts5
// build tag; the mage Build and Test targets pass it.
package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/pdf2obsidian/pkg/types"
)

const (
	catalogDir = ".pdf2obsidian"
	dbFile     = "catalog.db"

	defaultMaxResults = 20
)

// Store manages the catalog SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// NewStore opens or creates the catalog database at
// <vaultDir>/.pdf2obsidian/catalog.db, creating the schema if needed.
func NewStore(vaultDir string, cfg types.CatalogConfig) (*Store, error) {
	dir := filepath.Join(vaultDir, catalogDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating catalog directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening catalog database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating catalog schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS papers (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			folder TEXT NOT NULL UNIQUE,
			title TEXT,
			authors TEXT,
			year TEXT,
			journal TEXT,
			source_pdf TEXT,
			processed_at TEXT,
			note_text TEXT
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='papers_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE papers_fts USING fts5(note_text, content=papers, content_rowid=rowid)`,
			`CREATE TRIGGER papers_ai AFTER INSERT ON papers BEGIN
				INSERT INTO papers_fts(rowid, note_text) VALUES (new.rowid, new.note_text);
			END`,
			`CREATE TRIGGER papers_ad AFTER DELETE ON papers BEGIN
				INSERT INTO papers_fts(papers_fts, rowid, note_text) VALUES('delete', old.rowid, old.note_text);
			END`,
			`CREATE TRIGGER papers_au AFTER UPDATE ON papers BEGIN
				INSERT INTO papers_fts(papers_fts, rowid, note_text) VALUES('delete', old.rowid, old.note_text);
				INSERT INTO papers_fts(rowid, note_text) VALUES (new.rowid, new.note_text);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// Record upserts one processed paper together with its main-note text for
// full-text indexing.
func (s *Store) Record(ctx context.Context, p *types.Paper, noteText string) error {
	authorsJSON, _ := json.Marshal(p.Authors)
	processedAt := ""
	if !p.ProcessedAt.IsZero() {
		processedAt = p.ProcessedAt.UTC().Format(time.RFC3339)
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO papers (folder, title, authors, year, journal, source_pdf, processed_at, note_text)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(folder) DO UPDATE SET
			title=excluded.title, authors=excluded.authors, year=excluded.year,
			journal=excluded.journal, source_pdf=excluded.source_pdf,
			processed_at=excluded.processed_at, note_text=excluded.note_text`,
		p.Folder, p.Title, string(authorsJSON), p.Year, p.Journal,
		p.SourcePDF, processedAt, noteText,
	)
	if err != nil {
		return fmt.Errorf("recording paper %s: %w", p.Folder, err)
	}
	return nil
}

// List returns all cataloged papers in processing order. Insertion order is
// the processing order; processed_at timestamps only have one-second
// resolution, so rowid is the sort key.
func (s *Store) List(ctx context.Context) ([]types.Paper, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT folder, title, authors, year, journal, source_pdf, processed_at
		 FROM papers ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("listing catalog: %w", err)
	}
	defer rows.Close()

	var papers []types.Paper
	for rows.Next() {
		p, err := scanPaper(rows)
		if err != nil {
			return nil, err
		}
		papers = append(papers, p)
	}
	return papers, rows.Err()
}

// SearchResult is a catalog entry matched by full-text search, with a
// snippet of the matching note text.
type SearchResult struct {
	types.Paper
	Snippet string `json:"snippet" yaml:"snippet"`
}

// Search runs an FTS5 query over note text and returns matches ranked by
// relevance. A limit of zero uses the store default.
func (s *Store) Search(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = s.maxResults
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT p.folder, p.title, p.authors, p.year, p.journal, p.source_pdf, p.processed_at,
			snippet(papers_fts, 0, '', '', '...', 12)
		 FROM papers_fts
		 JOIN papers p ON p.rowid = papers_fts.rowid
		 WHERE papers_fts MATCH ?
		 ORDER BY papers_fts.rank
		 LIMIT ?`,
		query, limit)
	if err != nil {
		return nil, fmt.Errorf("searching catalog: %w", err)
	}
	defer rows.Close()

	var results []SearchResult
	for rows.Next() {
		var (
			r           SearchResult
			title       sql.NullString
			authorsJSON sql.NullString
			sourcePDF   sql.NullString
			processedAt sql.NullString
		)
		if err := rows.Scan(&r.Folder, &title, &authorsJSON, &r.Year, &r.Journal,
			&sourcePDF, &processedAt, &r.Snippet); err != nil {
			return nil, fmt.Errorf("scanning search result: %w", err)
		}
		r.Title = title.String
		r.SourcePDF = sourcePDF.String
		if authorsJSON.Valid {
			_ = json.Unmarshal([]byte(authorsJSON.String), &r.Authors)
		}
		if processedAt.Valid && processedAt.String != "" {
			if t, err := time.Parse(time.RFC3339, processedAt.String); err == nil {
				r.ProcessedAt = t
			}
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

func scanPaper(rows *sql.Rows) (types.Paper, error) {
	var (
		p           types.Paper
		title       sql.NullString
		authorsJSON sql.NullString
		sourcePDF   sql.NullString
		processedAt sql.NullString
	)
	if err := rows.Scan(&p.Folder, &title, &authorsJSON, &p.Year, &p.Journal,
		&sourcePDF, &processedAt); err != nil {
		return types.Paper{}, fmt.Errorf("scanning catalog row: %w", err)
	}
	p.Title = title.String
	p.SourcePDF = sourcePDF.String
	if authorsJSON.Valid {
		_ = json.Unmarshal([]byte(authorsJSON.String), &p.Authors)
	}
	if processedAt.Valid && processedAt.String != "" {
		if t, err := time.Parse(time.RFC3339, processedAt.String); err == nil {
			p.ProcessedAt = t
		}
	}
	return p, nil
}
