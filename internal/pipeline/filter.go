package pipeline

import (
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/docpipe/docpipe/internal/extract"
	"github.com/docpipe/docpipe/internal/logging"
)

// FileFilter decides which files in a walked directory get processed.
type FileFilter struct {
	exclude []string
}

func NewFileFilter(exclude []string) *FileFilter {
	return &FileFilter{exclude: exclude}
}

// ShouldProcess reports whether relPath names a supported document that
// is not excluded. Patterns match against both the slash-separated
// relative path and the basename.
func (f *FileFilter) ShouldProcess(relPath string) bool {
	relPath = filepath.ToSlash(relPath)

	if !extract.Supported(filepath.Ext(relPath)) {
		return false
	}

	for _, pattern := range f.exclude {
		matched, _ := doublestar.Match(pattern, relPath)
		if matched {
			logging.Debug("file excluded by pattern", map[string]interface{}{
				"path":    relPath,
				"pattern": pattern,
			})
			return false
		}
		base := filepath.Base(relPath)
		matched, _ = doublestar.Match(pattern, base)
		if matched {
			logging.Debug("file excluded by basename pattern", map[string]interface{}{
				"path":     relPath,
				"pattern":  pattern,
				"basename": base,
			})
			return false
		}
	}

	return true
}
