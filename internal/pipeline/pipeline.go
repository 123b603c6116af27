// Package pipeline orchestrates the ETL run: walk inputs, extract
// text, clean it, chunk it, attach metadata, then persist to the
// catalog, the text index, and per-document JSON output files.
package pipeline

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/docpipe/docpipe/internal/chunk"
	"github.com/docpipe/docpipe/internal/clean"
	"github.com/docpipe/docpipe/internal/config"
	"github.com/docpipe/docpipe/internal/corpus"
	"github.com/docpipe/docpipe/internal/extract"
	"github.com/docpipe/docpipe/internal/logging"
	"github.com/docpipe/docpipe/internal/store"
	"github.com/docpipe/docpipe/internal/textindex"
)

// IngestWarning reports per-file failures without failing the run.
type IngestWarning struct {
	Count   int
	Samples []string
}

func (w *IngestWarning) Error() string {
	if w == nil {
		return ""
	}
	if len(w.Samples) > 0 {
		return fmt.Sprintf("ingest completed with %d errors: %s", w.Count, strings.Join(w.Samples, "; "))
	}
	return fmt.Sprintf("ingest completed with %d errors", w.Count)
}

type errorCollector struct {
	mu      sync.Mutex
	count   int
	samples []string
}

func (c *errorCollector) Add(path string, err error) {
	if err == nil {
		return
	}
	logging.Error("file failed", map[string]interface{}{
		"path":  path,
		"error": err.Error(),
	})
	c.mu.Lock()
	defer c.mu.Unlock()
	c.count++
	if len(c.samples) < 5 {
		c.samples = append(c.samples, fmt.Sprintf("%s: %v", path, err))
	}
}

func (c *errorCollector) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.count == 0 {
		return nil
	}
	return &IngestWarning{Count: c.count, Samples: c.samples}
}

// Summary is the outcome of one ingest run.
type Summary struct {
	Documents int
	Chunks    int
	OCRPages  int
	Duration  time.Duration
	OutputDir string
}

// Pipeline ties the stages to one corpus's catalog and text index.
type Pipeline struct {
	cfg     *config.Config
	paths   corpus.Paths
	meta    *corpus.Meta
	catalog *store.Store
	index   textindex.Indexer
	filter  *FileFilter
}

// New opens (or creates) the corpus state for root and returns a ready
// pipeline. Close must be called when done.
func New(cfg *config.Config, root string) (*Pipeline, error) {
	paths, meta, err := corpus.Init(root)
	if err != nil {
		return nil, err
	}
	return newAt(cfg, paths, meta)
}

// NewIn is New with an explicit base state directory, for tests.
func NewIn(cfg *config.Config, base, root string) (*Pipeline, error) {
	paths, meta, err := corpus.InitIn(base, root)
	if err != nil {
		return nil, err
	}
	return newAt(cfg, paths, meta)
}

func newAt(cfg *config.Config, paths corpus.Paths, meta *corpus.Meta) (*Pipeline, error) {
	catalog, err := store.Open(corpus.CatalogDBPath(paths))
	if err != nil {
		return nil, err
	}

	index, err := textindex.OpenOrCreate(paths.TextDir)
	if err != nil {
		catalog.Close()
		return nil, err
	}

	return &Pipeline{
		cfg:     cfg,
		paths:   paths,
		meta:    meta,
		catalog: catalog,
		index:   index,
		filter:  NewFileFilter(cfg.Pipeline.Exclude),
	}, nil
}

func (p *Pipeline) Close() error {
	indexErr := p.index.Close()
	catalogErr := p.catalog.Close()
	if indexErr != nil {
		return indexErr
	}
	return catalogErr
}

// Catalog exposes the underlying store for command-level reporting.
func (p *Pipeline) Catalog() *store.Store {
	return p.catalog
}

// Run processes target (a file or a directory) and returns a summary.
// Per-file failures are collected and surfaced as an *IngestWarning;
// only setup problems abort the run.
func (p *Pipeline) Run(ctx context.Context, target string, reporter ProgressReporter) (*Summary, error) {
	start := time.Now()

	files, err := p.collectFiles(target)
	if err != nil {
		return nil, err
	}
	logging.Info("ingest starting", map[string]interface{}{
		"target": target,
		"files":  len(files),
	})

	if reporter != nil {
		reporter.Start(len(files))
		defer reporter.Finish()
	}

	collector := &errorCollector{}
	summary := &Summary{OutputDir: p.cfg.Output.Dir}

	var storeMu sync.Mutex
	var summaryMu sync.Mutex
	var wg sync.WaitGroup

	workers := p.cfg.Pipeline.MaxWorkers
	if workers < 1 {
		workers = 1
	}
	jobs := make(chan string, workers*2)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				chunks, ocrPages, err := p.processFile(path, &storeMu)
				if err != nil {
					collector.Add(path, err)
				} else {
					summaryMu.Lock()
					summary.Documents++
					summary.Chunks += chunks
					summary.OCRPages += ocrPages
					summaryMu.Unlock()
				}
				if reporter != nil {
					reporter.Increment()
				}
			}
		}()
	}

feed:
	for _, file := range files {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- file:
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.meta.LastIngestAt = time.Now()
	p.meta.UpdatedAt = time.Now()
	if err := corpus.SaveMeta(p.paths, p.meta); err != nil {
		return nil, err
	}

	summary.Duration = time.Since(start)
	logging.Info("ingest finished", map[string]interface{}{
		"documents": summary.Documents,
		"chunks":    summary.Chunks,
		"ocr_pages": summary.OCRPages,
		"duration":  summary.Duration.String(),
	})
	return summary, collector.Err()
}

// collectFiles resolves target into the list of files to process. A
// directory is walked with the exclude filter applied; an explicit file
// must be a supported format.
func (p *Pipeline) collectFiles(target string) ([]string, error) {
	abs, err := filepath.Abs(target)
	if err != nil {
		return nil, fmt.Errorf("resolve target: %w", err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("stat target: %w", err)
	}

	if !info.IsDir() {
		if !extract.Supported(filepath.Ext(abs)) {
			return nil, fmt.Errorf("unsupported file format: %s", filepath.Ext(abs))
		}
		return []string{abs}, nil
	}

	var files []string
	err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(abs, path)
		if err != nil {
			return err
		}
		if p.filter.ShouldProcess(rel) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk target: %w", err)
	}
	return files, nil
}

// processFile runs the ETL stages for one document. Catalog and index
// writes are serialized through storeMu.
func (p *Pipeline) processFile(path string, storeMu *sync.Mutex) (int, int, error) {
	result, err := extract.File(path, extract.Options{
		OCR:         p.cfg.OCREnabled(),
		OCRLanguage: p.cfg.Extract.OCRLanguage,
		OCRMinChars: p.cfg.Extract.OCRMinChars,
	})
	if err != nil {
		return 0, 0, err
	}

	cleaned := clean.Text(result.Text)

	doc := &store.Document{
		ID:         corpus.ID(path),
		Path:       path,
		Name:       filepath.Base(path),
		Format:     result.Format,
		Pages:      result.Pages,
		OCRPages:   result.OCRPages,
		CharCount:  len(cleaned),
		WordCount:  len(strings.Fields(cleaned)),
		IngestedAt: time.Now(),
	}

	var chunks []*store.Chunk
	if cleaned == "" {
		logging.Warn("no text extracted", map[string]interface{}{"path": path})
	} else {
		texts := chunk.Split(cleaned, chunk.Options{
			MaxWords:     p.cfg.Chunk.MaxWords,
			OverlapWords: p.cfg.Chunk.OverlapWords,
		})
		chunks = buildChunks(doc, texts, p.cfg.Chunk.MinChars)
	}
	doc.ChunkCount = len(chunks)

	storeMu.Lock()
	defer storeMu.Unlock()

	staleIDs, err := p.catalog.ChunkIDsForDocument(doc.ID)
	if err != nil {
		return 0, 0, err
	}
	if err := p.catalog.ReplaceDocument(doc, chunks); err != nil {
		return 0, 0, err
	}
	for _, id := range staleIDs {
		if err := p.index.DeleteChunk(id); err != nil {
			return 0, 0, fmt.Errorf("delete stale index entry: %w", err)
		}
	}
	for _, c := range chunks {
		err := p.index.IndexChunk(c.ID, textindex.Entry{
			Source:  c.SourceFile,
			Title:   c.Title,
			Content: c.Content,
			Index:   c.Index,
		})
		if err != nil {
			return 0, 0, fmt.Errorf("index chunk: %w", err)
		}
	}

	if len(chunks) > 0 {
		if _, err := writeOutputFile(p.cfg.Output.Dir, doc, chunks); err != nil {
			return 0, 0, err
		}
	}

	return len(chunks), result.OCRPages, nil
}
