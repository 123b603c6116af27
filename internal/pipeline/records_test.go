package pipeline

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/docpipe/docpipe/internal/store"
)

func TestInferTitle(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{"heading", "Leave Policy\nEmployees accrue leave.", "Leave Policy"},
		{"single line", "Remote Work Guidelines", "Remote Work Guidelines"},
		{"lowercase first line", "this chunk starts mid-sentence\nmore text", "Unknown"},
		{"empty", "", "Unknown"},
		{"long first line", strings.Repeat("A very long heading ", 10) + "\nbody", "Unknown"},
		{"leading whitespace", "  Scope\nbody", "Scope"},
		{"digit start", "401k Matching\nbody", "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := inferTitle(tt.text); got != tt.expected {
				t.Errorf("inferTitle(%q) = %q, want %q", tt.text, got, tt.expected)
			}
		})
	}
}

func TestBuildChunks(t *testing.T) {
	doc := &store.Document{
		ID:   "doc-1",
		Name: "policy.pdf",
	}
	texts := []string{
		"Leave Policy\nEmployees accrue twenty days of annual leave every calendar year.",
		"tiny",
		"Carry Over\nUnused leave days may carry over into the next calendar year of service.",
	}

	chunks := buildChunks(doc, texts, 50)

	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2 (short chunk dropped)", len(chunks))
	}

	// Indexes stay contiguous after the short chunk is dropped.
	if chunks[0].Index != 0 || chunks[1].Index != 1 {
		t.Errorf("indexes = %d, %d, want 0, 1", chunks[0].Index, chunks[1].Index)
	}

	first := chunks[0]
	if first.ID == "" || first.ID == chunks[1].ID {
		t.Error("chunk IDs must be unique and non-empty")
	}
	if first.DocID != "doc-1" {
		t.Errorf("DocID = %q", first.DocID)
	}
	if first.SourceFile != "policy.pdf" {
		t.Errorf("SourceFile = %q", first.SourceFile)
	}
	if first.Title != "Leave Policy" {
		t.Errorf("Title = %q", first.Title)
	}
	if first.WordCount != len(strings.Fields(texts[0])) {
		t.Errorf("WordCount = %d", first.WordCount)
	}
	if first.CharCount != len(texts[0]) {
		t.Errorf("CharCount = %d", first.CharCount)
	}
	if first.CreatedAt.IsZero() || first.CreatedAt.Location() != time.UTC {
		t.Errorf("CreatedAt = %v, want non-zero UTC", first.CreatedAt)
	}
}

func TestBuildChunks_Empty(t *testing.T) {
	doc := &store.Document{ID: "doc-1", Name: "policy.pdf"}
	if chunks := buildChunks(doc, nil, 50); len(chunks) != 0 {
		t.Errorf("expected no chunks, got %d", len(chunks))
	}
}

func TestWriteOutputFile(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "out")
	doc := &store.Document{ID: "doc-1", Name: "leave-policy.pdf"}
	chunks := buildChunks(doc, []string{
		"Leave Policy\nEmployees accrue twenty days of annual leave every calendar year.",
	}, 0)

	outPath, err := writeOutputFile(outDir, doc, chunks)
	if err != nil {
		t.Fatalf("writeOutputFile: %v", err)
	}
	if filepath.Base(outPath) != "leave-policy_processed.json" {
		t.Errorf("output file = %q", filepath.Base(outPath))
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}

	var records []struct {
		Metadata struct {
			ChunkID       string `json:"chunk_id"`
			SourceFile    string `json:"source_file"`
			ChunkIndex    int    `json:"chunk_index"`
			InferredTitle string `json:"inferred_title"`
			WordCount     int    `json:"word_count"`
			CharCount     int    `json:"char_count"`
			ProcessedAt   string `json:"processed_at"`
		} `json:"metadata"`
		Content string `json:"content"`
	}
	if err := json.Unmarshal(data, &records); err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}

	rec := records[0]
	if rec.Metadata.ChunkID == "" {
		t.Error("chunk_id missing")
	}
	if rec.Metadata.SourceFile != "leave-policy.pdf" {
		t.Errorf("source_file = %q", rec.Metadata.SourceFile)
	}
	if rec.Metadata.InferredTitle != "Leave Policy" {
		t.Errorf("inferred_title = %q", rec.Metadata.InferredTitle)
	}
	if rec.Metadata.ProcessedAt == "" {
		t.Error("processed_at missing")
	}
	if !strings.Contains(rec.Content, "annual leave") {
		t.Errorf("content = %q", rec.Content)
	}
	if strings.Contains(string(data), `"content"`) && strings.Count(string(data), "annual leave") != 1 {
		t.Errorf("content duplicated into metadata: %s", data)
	}
}
