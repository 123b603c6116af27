package internal

import (
	"fmt"
	"os"
)

const Version = "0.3.1"

// PrintUsage writes the top-level help text to stderr.
func PrintUsage() {
	fmt.Fprintf(os.Stderr, `docpipe - Document Ingestion & ETL Pipeline

Version: %s

Extracts text from PDF, DOCX, and TXT documents (with OCR fallback for
scanned PDFs), cleans it, splits it into chunks with metadata, and
keeps a searchable catalog of everything ingested.

USAGE:
    docpipe [global options] <command> [command options]

GLOBAL OPTIONS:
    -config <path>
        Path to config file (default: ~/.docpipe/config/docpipe.yaml)

    -root <path>
        Corpus root directory (default: current working directory).
        The catalog and search index are keyed by this path.

    -v, -version
        Show version information

    -h, -help
        Show this help message

COMMANDS:
    ingest
        Process a document file or a directory of documents

    search
        Full-text search over ingested chunks

    stats
        Show catalog statistics

EXAMPLES:
    # Process a single document
    docpipe ingest policy_handbook.pdf

    # Process a whole folder
    docpipe ingest ./documents

    # Search ingested content
    docpipe search "parental leave"

    # Machine-readable search results
    docpipe search -json "remote work policy"

    # Show catalog statistics
    docpipe stats

For detailed help on each command, use:
    docpipe <command> -help
`, Version)
}

// PrintConfigExample shows a minimal config snippet after a config error.
func PrintConfigExample() {
	fmt.Fprintf(os.Stderr, `Example configuration (~/.docpipe/config/docpipe.yaml):

extract:
  ocr: true
  ocr_language: eng
chunk:
  max_words: 500
  overlap_words: 50
pipeline:
  max_workers: 4
output:
  dir: output_chunks
`)
}
