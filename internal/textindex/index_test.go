package textindex

import (
	"path/filepath"
	"testing"
)

func seedIndex(t *testing.T, dir string) {
	t.Helper()

	indexer, err := Create(dir)
	if err != nil {
		t.Fatalf("create index: %v", err)
	}
	defer indexer.Close()

	entries := map[string]Entry{
		"chunk-1": {
			Source:  "leave-policy.pdf",
			Title:   "Leave Policy",
			Content: "Employees accrue twenty days of annual leave per year.",
			Index:   0,
		},
		"chunk-2": {
			Source:  "leave-policy.pdf",
			Title:   "Leave Policy",
			Content: "Unused leave days may carry over into the next calendar year.",
			Index:   1,
		},
		"chunk-3": {
			Source:  "expenses.docx",
			Title:   "Expense Reimbursement",
			Content: "Submit receipts within thirty days of the purchase.",
			Index:   0,
		},
	}
	for id, entry := range entries {
		if err := indexer.IndexChunk(id, entry); err != nil {
			t.Fatalf("index chunk %s: %v", id, err)
		}
	}
}

func TestSearch_RoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "text")
	seedIndex(t, dir)

	hits, err := Search(dir, "annual leave", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(hits) == 0 {
		t.Fatal("expected hits for 'annual leave'")
	}
	if hits[0].ChunkID != "chunk-1" {
		t.Errorf("top hit = %s, want chunk-1", hits[0].ChunkID)
	}
	if hits[0].Source != "leave-policy.pdf" {
		t.Errorf("source = %q", hits[0].Source)
	}
	if hits[0].Title != "Leave Policy" {
		t.Errorf("title = %q", hits[0].Title)
	}
	if hits[0].Score <= 0 {
		t.Errorf("score = %f", hits[0].Score)
	}
}

func TestSearch_TitleBoost(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "text")
	seedIndex(t, dir)

	// "expense" matches chunk-3 in both title and content; it must rank
	// above any incidental match.
	hits, err := Search(dir, "expense receipts", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(hits) == 0 {
		t.Fatal("expected hits")
	}
	if hits[0].ChunkID != "chunk-3" {
		t.Errorf("top hit = %s, want chunk-3", hits[0].ChunkID)
	}
}

func TestSearch_TopK(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "text")
	seedIndex(t, dir)

	hits, err := Search(dir, "days", 1)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(hits) > 1 {
		t.Errorf("got %d hits, want at most 1", len(hits))
	}
}

func TestSearch_NoMatch(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "text")
	seedIndex(t, dir)

	hits, err := Search(dir, "zygomorphic", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("expected no hits, got %v", hits)
	}
}

func TestDeleteChunk(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "text")
	seedIndex(t, dir)

	indexer, err := OpenOrCreate(dir)
	if err != nil {
		t.Fatalf("reopen index: %v", err)
	}
	if err := indexer.DeleteChunk("chunk-3"); err != nil {
		t.Fatalf("delete chunk: %v", err)
	}
	if err := indexer.Close(); err != nil {
		t.Fatalf("close index: %v", err)
	}

	hits, err := Search(dir, "receipts", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	for _, hit := range hits {
		if hit.ChunkID == "chunk-3" {
			t.Error("deleted chunk still searchable")
		}
	}
}

func TestOpenOrCreate_Missing(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "fresh")

	indexer, err := OpenOrCreate(dir)
	if err != nil {
		t.Fatalf("OpenOrCreate on missing dir: %v", err)
	}
	if err := indexer.IndexChunk("c1", Entry{Source: "a.txt", Content: "hello"}); err != nil {
		t.Fatalf("index chunk: %v", err)
	}
	indexer.Close()
}

func TestParseNumericField(t *testing.T) {
	tests := []struct {
		val      any
		expected int
	}{
		{float64(3), 3},
		{int(7), 7},
		{int64(9), 9},
		{"not a number", 0},
		{nil, 0},
	}

	for _, tt := range tests {
		if got := parseNumericField(tt.val); got != tt.expected {
			t.Errorf("parseNumericField(%v) = %d, want %d", tt.val, got, tt.expected)
		}
	}
}
