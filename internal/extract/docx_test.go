package extract

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const minimalDocumentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Leave Policy</w:t></w:r></w:p>
    <w:p><w:r><w:t>Employees accrue </w:t></w:r><w:r><w:t>20 days per year.</w:t></w:r></w:p>
    <w:p><w:pPr></w:pPr></w:p>
    <w:tbl>
      <w:tr>
        <w:tc><w:p><w:r><w:t>Tenure</w:t></w:r></w:p></w:tc>
        <w:tc><w:p><w:r><w:t>Days</w:t></w:r></w:p></w:tc>
      </w:tr>
      <w:tr>
        <w:tc><w:p><w:r><w:t>5+ years</w:t></w:r></w:p></w:tc>
        <w:tc><w:p><w:r><w:t>25</w:t></w:r></w:p></w:tc>
      </w:tr>
    </w:tbl>
  </w:body>
</w:document>`

func writeDocx(t *testing.T, dir, name, documentXML string) string {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for entry, content := range map[string]string{
		"[Content_Types].xml": `<?xml version="1.0"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`,
		"word/document.xml":   documentXML,
	} {
		w, err := zw.Create(entry)
		if err != nil {
			t.Fatalf("create zip entry: %v", err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("write zip entry: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write docx fixture: %v", err)
	}
	return path
}

func TestExtractDOCX(t *testing.T) {
	path := writeDocx(t, t.TempDir(), "policy.docx", minimalDocumentXML)

	result, err := extractDOCX(path)
	if err != nil {
		t.Fatalf("extractDOCX: %v", err)
	}
	if result.Format != "docx" {
		t.Errorf("format = %q, want docx", result.Format)
	}

	paragraphs := strings.Split(result.Text, "\n\n")
	expected := []string{
		"Leave Policy",
		"Employees accrue 20 days per year.",
		"Tenure\tDays",
		"5+ years\t25",
	}
	if len(paragraphs) != len(expected) {
		t.Fatalf("got %d parts, want %d: %q", len(paragraphs), len(expected), result.Text)
	}
	for i, want := range expected {
		if paragraphs[i] != want {
			t.Errorf("part %d = %q, want %q", i, paragraphs[i], want)
		}
	}
}

func TestExtractDOCX_NotAZip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.docx")
	if err := os.WriteFile(path, []byte("not a zip archive"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	if _, err := extractDOCX(path); err == nil {
		t.Fatal("expected error for non-zip input")
	}
}

func TestExtractDOCX_MissingDocumentPart(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, _ := zw.Create("word/styles.xml")
	w.Write([]byte("<styles/>"))
	zw.Close()

	dir := t.TempDir()
	path := filepath.Join(dir, "empty.docx")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	_, err := extractDOCX(path)
	if err == nil || !strings.Contains(err.Error(), "document.xml") {
		t.Fatalf("expected missing document.xml error, got %v", err)
	}
}
