package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/docpipe/docpipe/internal/config"
	"github.com/docpipe/docpipe/internal/corpus"
	"github.com/docpipe/docpipe/internal/pipeline"
	"github.com/docpipe/docpipe/internal/store"
	"github.com/docpipe/docpipe/internal/textindex"
)

// searchResult is the JSON shape of one hit.
type searchResult struct {
	Score      float64 `json:"score"`
	SourceFile string  `json:"source_file"`
	DocPath    string  `json:"doc_path,omitempty"`
	ChunkIndex int     `json:"chunk_index"`
	Title      string  `json:"inferred_title,omitempty"`
	Snippet    string  `json:"snippet"`
}

// handleSearch implements the search subcommand
func handleSearch(cfg *config.Config, root string, args []string) {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	topK := fs.Int("k", 0, "Number of results (default from config)")
	asJSON := fs.Bool("json", false, "Emit results as JSON")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `USAGE:
    docpipe search [options] <query>

DESCRIPTION:
    Full-text search over ingested chunks. Matches chunk content,
    inferred titles, and source file names.

OPTIONS:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
EXAMPLES:
    docpipe search "annual leave carryover"
    docpipe search -k 5 -json "notice period"
`)
	}

	if err := fs.Parse(args); err != nil {
		log.Fatalf("Failed to parse arguments: %v", err)
	}

	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: search requires a query\n\n")
		fs.Usage()
		os.Exit(1)
	}
	query := strings.Join(fs.Args(), " ")

	limit := *topK
	if limit <= 0 {
		limit = cfg.Search.DefaultTopK
	}

	paths, err := corpus.PathsFor(root)
	if err != nil {
		log.Fatalf("Failed to resolve corpus: %v", err)
	}

	stop := pipeline.StartSpinner(!*asJSON && pipeline.DefaultProgressEnabled(), "searching")
	hits, err := textindex.Search(paths.TextDir, query, limit)
	stop()
	if err != nil {
		log.Fatalf("Search failed (have you run `docpipe ingest`?): %v", err)
	}

	if len(hits) == 0 {
		if *asJSON {
			fmt.Println("[]")
		} else {
			fmt.Println("No results.")
		}
		return
	}

	catalog, err := store.Open(corpus.CatalogDBPath(paths))
	if err != nil {
		log.Fatalf("Failed to open catalog: %v", err)
	}
	defer catalog.Close()

	ids := make([]string, 0, len(hits))
	for _, hit := range hits {
		ids = append(ids, hit.ChunkID)
	}
	chunks, err := catalog.ChunksByIDs(ids)
	if err != nil {
		log.Fatalf("Failed to load chunks: %v", err)
	}

	results := make([]searchResult, 0, len(hits))
	for _, hit := range hits {
		result := searchResult{
			Score:      hit.Score,
			SourceFile: hit.Source,
			ChunkIndex: hit.Index,
			Title:      hit.Title,
		}
		if chunk, ok := chunks[hit.ChunkID]; ok {
			result.DocPath = chunk.DocPath
			result.Snippet = snippet(chunk.Content, 200)
		}
		results = append(results, result)
	}

	if *asJSON {
		out, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			log.Fatalf("Failed to marshal results: %v", err)
		}
		fmt.Println(string(out))
		return
	}

	for i, result := range results {
		fmt.Printf("%2d. [%.3f] %s #%d", i+1, result.Score, result.SourceFile, result.ChunkIndex)
		if result.Title != "" && result.Title != "Unknown" {
			fmt.Printf("  (%s)", result.Title)
		}
		fmt.Println()
		if result.Snippet != "" {
			fmt.Printf("    %s\n", result.Snippet)
		}
	}
}

// snippet collapses whitespace and truncates content for display.
func snippet(content string, maxLen int) string {
	collapsed := strings.Join(strings.Fields(content), " ")
	if len(collapsed) <= maxLen {
		return collapsed
	}
	cut := collapsed[:maxLen]
	if idx := strings.LastIndex(cut, " "); idx > maxLen/2 {
		cut = cut[:idx]
	}
	return cut + "..."
}
