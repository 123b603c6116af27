// Package corpus manages per-corpus state directories under the
// docpipe base dir. A corpus is identified by a SHA-1 of its absolute
// root path, so the same folder always maps to the same catalog and
// text index.
package corpus

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
)

const (
	baseDirName    = ".docpipe"
	corporaDirName = "corpora"
)

// Paths describes the on-disk layout for one corpus.
type Paths struct {
	CorpusID   string
	Root       string
	BaseDir    string
	CorpusDir  string
	TextDir    string // bleve index
	CatalogDir string // sqlite catalog
	MetaDir    string
	MetaFile   string
}

// BaseDir returns the docpipe state directory (~/.docpipe).
func BaseDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, baseDirName), nil
}

// ID derives the corpus identifier from a root path.
func ID(root string) string {
	sum := sha1.Sum([]byte(root))
	return hex.EncodeToString(sum[:])
}

// PathsFor resolves the state layout for the corpus rooted at root.
func PathsFor(root string) (Paths, error) {
	base, err := BaseDir()
	if err != nil {
		return Paths{}, err
	}
	return pathsIn(base, root), nil
}

// PathsIn is PathsFor with an explicit base directory. Used by tests
// and by callers that relocate state.
func PathsIn(base, root string) Paths {
	return pathsIn(base, root)
}

func pathsIn(base, root string) Paths {
	id := ID(root)
	corpusDir := filepath.Join(base, corporaDirName, id)
	metaDir := filepath.Join(corpusDir, "meta")
	return Paths{
		CorpusID:   id,
		Root:       root,
		BaseDir:    base,
		CorpusDir:  corpusDir,
		TextDir:    filepath.Join(corpusDir, "text"),
		CatalogDir: filepath.Join(corpusDir, "catalog"),
		MetaDir:    metaDir,
		MetaFile:   filepath.Join(metaDir, "corpus.json"),
	}
}

// CatalogDBPath returns the sqlite file for a corpus.
func CatalogDBPath(paths Paths) string {
	return filepath.Join(paths.CatalogDir, "catalog.db")
}

// EnsureDirs creates the corpus state directories.
func EnsureDirs(paths Paths) error {
	for _, dir := range []string{paths.CorpusDir, paths.TextDir, paths.CatalogDir, paths.MetaDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create corpus dir: %w", err)
		}
	}
	return nil
}
