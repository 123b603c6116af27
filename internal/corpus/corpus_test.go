package corpus

import (
	"os"
	"path/filepath"
	"testing"
)

func TestID_Stable(t *testing.T) {
	a := ID("/data/policies")
	b := ID("/data/policies")
	if a != b {
		t.Errorf("ID not stable: %q vs %q", a, b)
	}
	if len(a) != 40 {
		t.Errorf("ID length = %d, want 40 hex chars", len(a))
	}
	if a == ID("/data/other") {
		t.Error("different roots must map to different IDs")
	}
}

func TestPathsIn(t *testing.T) {
	paths := PathsIn("/base", "/data/policies")

	if paths.CorpusID != ID("/data/policies") {
		t.Errorf("CorpusID = %q", paths.CorpusID)
	}
	if paths.Root != "/data/policies" {
		t.Errorf("Root = %q", paths.Root)
	}
	wantCorpusDir := filepath.Join("/base", "corpora", paths.CorpusID)
	if paths.CorpusDir != wantCorpusDir {
		t.Errorf("CorpusDir = %q, want %q", paths.CorpusDir, wantCorpusDir)
	}
	if paths.TextDir != filepath.Join(wantCorpusDir, "text") {
		t.Errorf("TextDir = %q", paths.TextDir)
	}
	if CatalogDBPath(paths) != filepath.Join(wantCorpusDir, "catalog", "catalog.db") {
		t.Errorf("CatalogDBPath = %q", CatalogDBPath(paths))
	}
}

func TestInitIn(t *testing.T) {
	base := t.TempDir()

	paths, meta, err := InitIn(base, "/data/policies")
	if err != nil {
		t.Fatalf("InitIn: %v", err)
	}
	if meta == nil {
		t.Fatal("expected meta record")
	}
	if meta.CorpusID != paths.CorpusID || meta.Root != "/data/policies" {
		t.Errorf("meta = %+v", meta)
	}
	if meta.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}

	for _, dir := range []string{paths.CorpusDir, paths.TextDir, paths.CatalogDir, paths.MetaDir} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Errorf("state dir %s not created: %v", dir, err)
		}
	}

	// Second init loads the existing record instead of resetting it.
	_, again, err := InitIn(base, "/data/policies")
	if err != nil {
		t.Fatalf("InitIn (second): %v", err)
	}
	if !again.CreatedAt.Equal(meta.CreatedAt) {
		t.Errorf("CreatedAt changed across init: %v vs %v", again.CreatedAt, meta.CreatedAt)
	}
}

func TestLoadMeta_Missing(t *testing.T) {
	paths := PathsIn(t.TempDir(), "/data/policies")
	meta, err := LoadMeta(paths)
	if err != nil {
		t.Fatalf("LoadMeta: %v", err)
	}
	if meta != nil {
		t.Errorf("expected nil meta, got %+v", meta)
	}
}
