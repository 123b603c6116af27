package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// ChunkWithSource pairs a chunk with its document's source path.
type ChunkWithSource struct {
	Chunk
	DocPath string
}

// ChunksByIDs fetches chunks (with their document paths) for a set of
// chunk IDs, returned keyed by ID. Missing IDs are simply absent.
func (s *Store) ChunksByIDs(ids []string) (map[string]*ChunkWithSource, error) {
	result := make(map[string]*ChunkWithSource, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := s.db.Query(
		`SELECT c.id, c.doc_id, d.name, c.chunk_index, c.title, c.content, c.word_count, c.char_count, c.created_at, d.path
		 FROM chunks c JOIN documents d ON d.id = c.doc_id
		 WHERE c.id IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, fmt.Errorf("query chunks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		cws, err := scanChunkWithSource(rows)
		if err != nil {
			return nil, err
		}
		result[cws.ID] = cws
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chunks: %w", err)
	}
	return result, nil
}

// ChunksForDocument returns a document's chunks ordered by index.
func (s *Store) ChunksForDocument(docID string) ([]*Chunk, error) {
	rows, err := s.db.Query(
		`SELECT c.id, c.doc_id, d.name, c.chunk_index, c.title, c.content, c.word_count, c.char_count, c.created_at
		 FROM chunks c JOIN documents d ON d.id = c.doc_id
		 WHERE c.doc_id = ? ORDER BY c.chunk_index`, docID)
	if err != nil {
		return nil, fmt.Errorf("query document chunks: %w", err)
	}
	defer rows.Close()

	var chunks []*Chunk
	for rows.Next() {
		var chunk Chunk
		var createdAt string
		if err := rows.Scan(&chunk.ID, &chunk.DocID, &chunk.SourceFile, &chunk.Index, &chunk.Title,
			&chunk.Content, &chunk.WordCount, &chunk.CharCount, &createdAt); err != nil {
			return nil, fmt.Errorf("scan chunk: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			chunk.CreatedAt = t
		}
		chunks = append(chunks, &chunk)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate document chunks: %w", err)
	}
	return chunks, nil
}

func scanChunkWithSource(rows *sql.Rows) (*ChunkWithSource, error) {
	var cws ChunkWithSource
	var createdAt string
	if err := rows.Scan(&cws.ID, &cws.DocID, &cws.SourceFile, &cws.Index, &cws.Title,
		&cws.Content, &cws.WordCount, &cws.CharCount, &createdAt, &cws.DocPath); err != nil {
		return nil, fmt.Errorf("scan chunk: %w", err)
	}
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		cws.CreatedAt = t
	}
	return &cws, nil
}
