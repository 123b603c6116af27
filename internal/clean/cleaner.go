package clean

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	multiNewline = regexp.MustCompile(`\n{3,}`)
	horizSpace   = regexp.MustCompile(`[ \t]+`)

	// Lines that are page furniture rather than content:
	// "Page 3", "page 12 of 40", bare numbers.
	noisePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^\s*page\s+\d+\s*$`),
		regexp.MustCompile(`(?i)^\s*page\s+\d+\s+of\s+\d+\s*$`),
		regexp.MustCompile(`^\s*\d+\s*$`),
	}
)

// Text normalizes raw extracted text: unicode normalization, whitespace
// normalization, and removal of page-number noise lines. Paragraph
// boundaries (blank lines) are preserved.
func Text(text string) string {
	if text == "" {
		return ""
	}

	text = norm.NFC.String(text)
	text = normalizeWhitespace(text)
	text = removeNoiseLines(text)

	// Removing a noise line between paragraphs can leave a triple newline.
	text = multiNewline.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}

// normalizeWhitespace replaces non-breaking spaces, normalizes line
// endings to LF, collapses runs of horizontal whitespace within each
// line, and collapses 3+ newlines to a paragraph break.
func normalizeWhitespace(text string) string {
	text = strings.ReplaceAll(text, "\u00a0", " ")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(horizSpace.ReplaceAllString(line, " "))
	}
	text = strings.Join(lines, "\n")

	return multiNewline.ReplaceAllString(text, "\n\n")
}

// removeNoiseLines drops lines matching known header/footer patterns.
// Only strict pattern matches are removed; short lines are kept since
// they may be bullet points or headings.
func removeNoiseLines(text string) string {
	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))

	for _, line := range lines {
		if isNoise(line) {
			continue
		}
		cleaned = append(cleaned, line)
	}

	return strings.Join(cleaned, "\n")
}

func isNoise(line string) bool {
	for _, pattern := range noisePatterns {
		if pattern.MatchString(line) {
			return true
		}
	}
	return false
}
