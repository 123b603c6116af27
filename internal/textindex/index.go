// Package textindex maintains the bleve full-text index over chunks.
package textindex

import (
	"fmt"
	"os"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
)

// Entry is the indexed representation of a chunk.
type Entry struct {
	Source  string `json:"source"` // document basename
	Title   string `json:"title"`
	Content string `json:"content"`
	Index   int    `json:"chunk_index"`
}

type Indexer interface {
	IndexChunk(id string, entry Entry) error
	DeleteChunk(id string) error
	Close() error
}

type BleveIndexer struct {
	index bleve.Index
}

// Create resets and creates a fresh text index at dir.
func Create(dir string) (Indexer, error) {
	if err := os.RemoveAll(dir); err != nil {
		return nil, fmt.Errorf("reset text index dir: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create text index dir: %w", err)
	}
	index, err := bleve.New(dir, buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create bleve index: %w", err)
	}
	return &BleveIndexer{index: index}, nil
}

// OpenOrCreate opens an existing text index, creating it when absent.
func OpenOrCreate(dir string) (Indexer, error) {
	index, err := bleve.Open(dir)
	if err == bleve.ErrorIndexPathDoesNotExist || err == bleve.ErrorIndexMetaMissing {
		return Create(dir)
	}
	if err != nil {
		return nil, fmt.Errorf("open bleve index: %w", err)
	}
	return &BleveIndexer{index: index}, nil
}

// Open opens an existing text index read-side.
func Open(dir string) (bleve.Index, error) {
	index, err := bleve.Open(dir)
	if err != nil {
		return nil, fmt.Errorf("open bleve index: %w", err)
	}
	return index, nil
}

func (b *BleveIndexer) IndexChunk(id string, entry Entry) error {
	return b.index.Index(id, entry)
}

func (b *BleveIndexer) DeleteChunk(id string) error {
	return b.index.Delete(id)
}

func (b *BleveIndexer) Close() error {
	return b.index.Close()
}

func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = "en"
	indexMapping.DefaultField = "content"

	docMapping := bleve.NewDocumentMapping()

	contentField := bleve.NewTextFieldMapping()
	contentField.Store = false
	contentField.Index = true
	docMapping.AddFieldMappingsAt("content", contentField)

	sourceField := bleve.NewTextFieldMapping()
	sourceField.Store = true
	sourceField.Index = true
	docMapping.AddFieldMappingsAt("source", sourceField)

	titleField := bleve.NewTextFieldMapping()
	titleField.Store = true
	titleField.Index = true
	docMapping.AddFieldMappingsAt("title", titleField)

	indexField := bleve.NewNumericFieldMapping()
	indexField.Store = true
	indexField.Index = false
	docMapping.AddFieldMappingsAt("chunk_index", indexField)

	indexMapping.DefaultMapping = docMapping
	return indexMapping
}
