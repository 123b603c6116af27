package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/docpipe/docpipe/internal/config"
	"github.com/docpipe/docpipe/internal/corpus"
	"github.com/docpipe/docpipe/internal/store"
)

// handleStats implements the stats subcommand
func handleStats(cfg *config.Config, root string, args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `USAGE:
    docpipe stats

DESCRIPTION:
    Show catalog statistics for the current corpus.
`)
	}

	if err := fs.Parse(args); err != nil {
		log.Fatalf("Failed to parse arguments: %v", err)
	}

	paths, err := corpus.PathsFor(root)
	if err != nil {
		log.Fatalf("Failed to resolve corpus: %v", err)
	}

	meta, err := corpus.LoadMeta(paths)
	if err != nil {
		log.Fatalf("Failed to load corpus meta: %v", err)
	}
	if meta == nil {
		fmt.Printf("No catalog for %s yet. Run `docpipe ingest` first.\n", root)
		return
	}

	catalog, err := store.Open(corpus.CatalogDBPath(paths))
	if err != nil {
		log.Fatalf("Failed to open catalog: %v", err)
	}
	defer catalog.Close()

	stats, err := catalog.Stats()
	if err != nil {
		log.Fatalf("Failed to read stats: %v", err)
	}

	fmt.Printf("📊 Catalog for %s\n\n", root)
	fmt.Printf("   Documents:   %6d\n", stats.DocumentCount)
	fmt.Printf("   Chunks:      %6d\n", stats.ChunkCount)
	fmt.Printf("   Total words: %6d\n", stats.TotalWords)
	fmt.Printf("   Catalog:     %6.1f KB\n", float64(stats.SizeBytes)/1024)

	if len(stats.ByFormat) > 0 {
		fmt.Println("\n   By format:")
		formats := make([]string, 0, len(stats.ByFormat))
		for format := range stats.ByFormat {
			formats = append(formats, format)
		}
		sort.Strings(formats)
		for _, format := range formats {
			fmt.Printf("     %-6s %6d\n", format, stats.ByFormat[format])
		}
	}

	if !meta.LastIngestAt.IsZero() {
		fmt.Printf("\n   Last ingest: %s\n", meta.LastIngestAt.Format("2006-01-02 15:04:05"))
	}
}
