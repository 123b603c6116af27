package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/docpipe/docpipe/internal/config"
	"github.com/docpipe/docpipe/internal/pipeline"
)

// handleIngest implements the ingest subcommand
func handleIngest(cfg *config.Config, root string, args []string) {
	fs := flag.NewFlagSet("ingest", flag.ExitOnError)
	out := fs.String("out", "", "Output directory for processed chunk files (overrides config)")
	noOCR := fs.Bool("no-ocr", false, "Disable OCR fallback for scanned PDF pages")
	quiet := fs.Bool("quiet", false, "Disable the progress bar")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `USAGE:
    docpipe ingest [options] <path>

DESCRIPTION:
    Process a document file or a directory of documents.
    For each document this will:
      1. Extract raw text (PDF/DOCX/TXT, OCR fallback for scanned PDFs)
      2. Clean the text (whitespace, noise lines, unicode)
      3. Split it into paragraph-aware chunks with overlap
      4. Attach chunk metadata
      5. Write <name>_processed.json and update the catalog and search index

OPTIONS:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
EXAMPLES:
    # Process one document
    docpipe ingest handbook.pdf

    # Process a folder, writing outputs elsewhere
    docpipe ingest -out /tmp/chunks ./documents

    # Skip the OCR fallback (fast, text-layer only)
    docpipe ingest -no-ocr scans/
`)
	}

	if err := fs.Parse(args); err != nil {
		log.Fatalf("Failed to parse arguments: %v", err)
	}

	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: ingest requires exactly one path argument\n\n")
		fs.Usage()
		os.Exit(1)
	}
	target := fs.Arg(0)

	if *out != "" {
		cfg.Output.Dir = *out
	}
	if *noOCR {
		disabled := false
		cfg.Extract.OCR = &disabled
	}

	if _, err := os.Stat(target); os.IsNotExist(err) {
		log.Fatalf("Path does not exist: %s", target)
	}

	fmt.Printf("🏗️  Ingesting: %s\n\n", target)

	p, err := pipeline.New(cfg, root)
	if err != nil {
		log.Fatalf("Failed to open pipeline: %v", err)
	}
	defer p.Close()

	reporter := pipeline.NewIngestProgress(!*quiet && pipeline.DefaultProgressEnabled())

	summary, err := p.Run(context.Background(), target, reporter)
	if err != nil {
		var warning *pipeline.IngestWarning
		if errors.As(err, &warning) {
			fmt.Fprintf(os.Stderr, "\n⚠️  %v\n", warning)
		} else {
			log.Fatalf("Ingest failed: %v", err)
		}
	}

	fmt.Println()
	fmt.Println("✅ Ingest completed!")
	fmt.Printf("\n⏱️  Duration: %v\n", summary.Duration.Round(time.Millisecond))
	fmt.Println("\n📊 Results:")
	fmt.Printf("   Documents: %6d\n", summary.Documents)
	fmt.Printf("   Chunks:    %6d\n", summary.Chunks)
	if summary.OCRPages > 0 {
		fmt.Printf("   OCR pages: %6d\n", summary.OCRPages)
	}
	fmt.Printf("\n   Output: %s\n", summary.OutputDir)
}
