package store

import (
	"database/sql"
	"fmt"
	"time"
)

// ChunkIDsForDocument returns the IDs of all chunks currently stored
// for a document. Used to purge stale text-index entries before a
// re-ingest.
func (s *Store) ChunkIDsForDocument(docID string) ([]string, error) {
	rows, err := s.db.Query("SELECT id FROM chunks WHERE doc_id = ?", docID)
	if err != nil {
		return nil, fmt.Errorf("query chunk ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan chunk id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chunk ids: %w", err)
	}
	return ids, nil
}

// ReplaceDocument replaces a document row and all of its chunks in one
// transaction. Safe to call for both first ingest and re-ingest.
func (s *Store) ReplaceDocument(doc *Document, chunks []*Chunk) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM chunks WHERE doc_id = ?", doc.ID); err != nil {
		return fmt.Errorf("delete stale chunks: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM documents WHERE id = ?", doc.ID); err != nil {
		return fmt.Errorf("delete stale document: %w", err)
	}

	if _, err := tx.Exec(
		`INSERT INTO documents (id, path, name, format, pages, ocr_pages, char_count, word_count, chunk_count, ingested_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		doc.ID, doc.Path, doc.Name, doc.Format, doc.Pages, doc.OCRPages,
		doc.CharCount, doc.WordCount, doc.ChunkCount,
		doc.IngestedAt.UTC().Format(time.RFC3339),
	); err != nil {
		return fmt.Errorf("insert document: %w", err)
	}

	for _, chunk := range chunks {
		if _, err := tx.Exec(
			`INSERT INTO chunks (id, doc_id, chunk_index, title, content, word_count, char_count, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			chunk.ID, chunk.DocID, chunk.Index, chunk.Title, chunk.Content,
			chunk.WordCount, chunk.CharCount,
			chunk.CreatedAt.UTC().Format(time.RFC3339),
		); err != nil {
			return fmt.Errorf("insert chunk %d: %w", chunk.Index, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace: %w", err)
	}
	return nil
}

// DocumentByID looks up one document, returning nil when absent.
func (s *Store) DocumentByID(id string) (*Document, error) {
	row := s.db.QueryRow(
		`SELECT id, path, name, format, pages, ocr_pages, char_count, word_count, chunk_count, ingested_at
		 FROM documents WHERE id = ?`, id)
	return scanDocument(row)
}

func scanDocument(row *sql.Row) (*Document, error) {
	var doc Document
	var ingestedAt string
	err := row.Scan(&doc.ID, &doc.Path, &doc.Name, &doc.Format, &doc.Pages, &doc.OCRPages,
		&doc.CharCount, &doc.WordCount, &doc.ChunkCount, &ingestedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan document: %w", err)
	}
	if t, err := time.Parse(time.RFC3339, ingestedAt); err == nil {
		doc.IngestedAt = t
	}
	return &doc, nil
}
