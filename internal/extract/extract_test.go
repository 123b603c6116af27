package extract

import (
	"strings"
	"testing"
)

func TestSupported(t *testing.T) {
	tests := []struct {
		ext      string
		expected bool
	}{
		{".pdf", true},
		{".PDF", true},
		{"pdf", true},
		{".docx", true},
		{".txt", true},
		{".doc", false},
		{".md", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := Supported(tt.ext); got != tt.expected {
			t.Errorf("Supported(%q) = %v, want %v", tt.ext, got, tt.expected)
		}
	}
}

func TestFile_DispatchTXT(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "notes.txt", []byte("some policy text"))

	result, err := File(path, Options{})
	if err != nil {
		t.Fatalf("File: %v", err)
	}
	if result.Format != "txt" || result.Text != "some policy text" {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestFile_UnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "image.png", []byte{0x89, 'P', 'N', 'G'})

	_, err := File(path, Options{})
	if err == nil || !strings.Contains(err.Error(), "unsupported file format") {
		t.Fatalf("expected unsupported format error, got %v", err)
	}
}

func TestFile_Missing(t *testing.T) {
	if _, err := File("/nonexistent/doc.txt", Options{}); err == nil {
		t.Fatal("expected error for missing file")
	}
}
