// Package extract pulls raw text out of source documents. Supported
// formats: PDF (native text with per-page OCR fallback for scanned
// pages), DOCX, and plain text.
package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Options controls extraction behavior.
type Options struct {
	OCR         bool   // OCR fallback for scanned PDF pages
	OCRLanguage string // tesseract language code, e.g. "eng"
	OCRMinChars int    // pages with less trimmed text than this are treated as scanned
}

// Result is the outcome of extracting a single document.
type Result struct {
	Text     string
	Format   string // "pdf" | "docx" | "txt"
	Pages    int    // PDF page count, 0 for other formats
	OCRPages int    // number of pages that went through OCR
}

// Supported reports whether the file extension is a supported document
// format. The extension is matched case-insensitively and may be given
// with or without the leading dot.
func Supported(ext string) bool {
	switch normalizeExt(ext) {
	case ".pdf", ".docx", ".txt":
		return true
	}
	return false
}

// File extracts raw text from the document at path, dispatching on the
// file extension.
func File(path string, opts Options) (*Result, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("stat document: %w", err)
	}

	switch normalizeExt(filepath.Ext(path)) {
	case ".pdf":
		return extractPDF(path, opts)
	case ".docx":
		return extractDOCX(path)
	case ".txt":
		return extractTXT(path)
	default:
		return nil, fmt.Errorf("unsupported file format: %s", filepath.Ext(path))
	}
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
