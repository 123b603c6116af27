package extract

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// extractTXT reads a plain-text file. Content that is not valid UTF-8
// is decoded as ISO-8859-1, which cannot fail and covers the common
// legacy exports.
func extractTXT(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read text file: %w", err)
	}

	if !utf8.Valid(data) {
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return nil, fmt.Errorf("decode latin-1: %w", err)
		}
		data = decoded
	}

	return &Result{
		Text:   strings.TrimSpace(string(data)),
		Format: "txt",
	}, nil
}
