package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/docpipe/docpipe/internal/store"
)

const maxTitleLen = 100

// buildChunks turns raw chunk texts into catalog rows with metadata.
// Chunks shorter than minChars are dropped; indexes are assigned after
// filtering so they stay contiguous.
func buildChunks(doc *store.Document, texts []string, minChars int) []*store.Chunk {
	now := time.Now().UTC()
	chunks := make([]*store.Chunk, 0, len(texts))

	for _, text := range texts {
		if len(text) < minChars {
			continue
		}
		chunks = append(chunks, &store.Chunk{
			ID:         uuid.NewString(),
			DocID:      doc.ID,
			SourceFile: doc.Name,
			Index:      len(chunks),
			Title:      inferTitle(text),
			Content:    text,
			WordCount:  len(strings.Fields(text)),
			CharCount:  len(text),
			CreatedAt:  now,
		})
	}
	return chunks
}

// inferTitle guesses a section heading from the chunk's first line: it
// must be short and start with an upper-case letter, otherwise the
// title is "Unknown".
func inferTitle(text string) string {
	line, _, _ := strings.Cut(text, "\n")
	line = strings.TrimSpace(line)
	if line == "" || len(line) >= maxTitleLen {
		return "Unknown"
	}
	first := []rune(line)[0]
	if !unicode.IsUpper(first) {
		return "Unknown"
	}
	return line
}

// chunkRecord is one entry of the per-document output file.
type chunkRecord struct {
	Metadata *store.Chunk `json:"metadata"`
	Content  string       `json:"content"`
}

// writeOutputFile writes the processed chunks of one document to
// <outDir>/<base>_processed.json as a JSON array of records.
func writeOutputFile(outDir string, doc *store.Document, chunks []*store.Chunk) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	records := make([]chunkRecord, 0, len(chunks))
	for _, chunk := range chunks {
		records = append(records, chunkRecord{Metadata: chunk, Content: chunk.Content})
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal chunk records: %w", err)
	}

	base := strings.TrimSuffix(doc.Name, filepath.Ext(doc.Name))
	outPath := filepath.Join(outDir, base+"_processed.json")
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return "", fmt.Errorf("write output file: %w", err)
	}
	return outPath, nil
}
