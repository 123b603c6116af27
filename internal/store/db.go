// Package store persists the document and chunk catalog in SQLite.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Store manages the catalog database.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates a catalog database at the given path and
// ensures the schema exists.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create catalog dir: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=journal_mode=WAL&_pragma=synchronous=NORMAL")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initSchema() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			id TEXT PRIMARY KEY,
			path TEXT,
			name TEXT,
			format TEXT,
			pages INTEGER,
			ocr_pages INTEGER,
			char_count INTEGER,
			word_count INTEGER,
			chunk_count INTEGER,
			ingested_at TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS chunks (
			id TEXT PRIMARY KEY,
			doc_id TEXT REFERENCES documents(id) ON DELETE CASCADE,
			chunk_index INTEGER,
			title TEXT,
			content TEXT,
			word_count INTEGER,
			char_count INTEGER,
			created_at TEXT
		);`,
		`CREATE INDEX IF NOT EXISTS chunks_doc_idx ON chunks(doc_id);`,
		`CREATE INDEX IF NOT EXISTS documents_format_idx ON documents(format);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

// Clear removes all catalog rows (useful before a full re-ingest).
func (s *Store) Clear() error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin clear: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"chunks", "documents"} {
		if _, err := tx.Exec(fmt.Sprintf("DELETE FROM %s", table)); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit clear: %w", err)
	}
	return nil
}

// Stats returns catalog statistics.
func (s *Store) Stats() (*Stats, error) {
	stats := &Stats{ByFormat: make(map[string]int64)}

	if err := s.db.QueryRow("SELECT COUNT(*) FROM documents").Scan(&stats.DocumentCount); err != nil {
		return nil, fmt.Errorf("count documents: %w", err)
	}
	if err := s.db.QueryRow("SELECT COUNT(*) FROM chunks").Scan(&stats.ChunkCount); err != nil {
		return nil, fmt.Errorf("count chunks: %w", err)
	}
	if err := s.db.QueryRow("SELECT COALESCE(SUM(word_count), 0) FROM chunks").Scan(&stats.TotalWords); err != nil {
		return nil, fmt.Errorf("sum chunk words: %w", err)
	}

	rows, err := s.db.Query("SELECT format, COUNT(*) FROM documents GROUP BY format")
	if err != nil {
		return nil, fmt.Errorf("count by format: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var format string
		var count int64
		if err := rows.Scan(&format, &count); err != nil {
			return nil, fmt.Errorf("scan format count: %w", err)
		}
		stats.ByFormat[format] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate format counts: %w", err)
	}

	if info, err := os.Stat(s.path); err == nil {
		stats.SizeBytes = info.Size()
	}

	return stats, nil
}
