package store

import "time"

// Document is one ingested source file.
type Document struct {
	// SHA-1 of the absolute source path; stable across re-ingestion
	ID string `json:"id"`

	Path   string `json:"path"`
	Name   string `json:"name"`   // basename
	Format string `json:"format"` // pdf | docx | txt

	// Extraction statistics
	Pages    int `json:"pages,omitempty"`     // PDF only
	OCRPages int `json:"ocr_pages,omitempty"` // PDF only

	CharCount  int `json:"char_count"` // cleaned text
	WordCount  int `json:"word_count"`
	ChunkCount int `json:"chunk_count"`

	IngestedAt time.Time `json:"ingested_at"`
}

// Chunk is one retrievable unit of a document.
type Chunk struct {
	ID         string    `json:"chunk_id"` // UUIDv4
	DocID      string    `json:"-"`
	SourceFile string    `json:"source_file"` // document basename
	Index      int       `json:"chunk_index"`
	Title      string    `json:"inferred_title"`
	Content    string    `json:"-"`
	WordCount  int       `json:"word_count"`
	CharCount  int       `json:"char_count"`
	CreatedAt  time.Time `json:"processed_at"`
}

// Stats summarizes the catalog.
type Stats struct {
	DocumentCount int64
	ChunkCount    int64
	TotalWords    int64
	ByFormat      map[string]int64
	SizeBytes     int64
}
