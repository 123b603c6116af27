package chunk

import "strings"

// Options controls chunk sizing. Zero values fall back to the defaults
// used by the config package.
type Options struct {
	MaxWords     int // word cap per chunk
	OverlapWords int // words carried from a flushed chunk into the next
}

const (
	defaultMaxWords     = 500
	defaultOverlapWords = 50
)

// Split breaks cleaned text into paragraph-aware chunks. Paragraphs
// (blank-line separated) accumulate until the word cap would be
// exceeded; the chunk is then flushed and the next one starts with the
// tail words of the previous chunk as overlap. A single paragraph
// larger than the cap is split on word boundaries with the same
// overlap.
func Split(text string, opts Options) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	maxWords := opts.MaxWords
	if maxWords <= 0 {
		maxWords = defaultMaxWords
	}
	overlap := opts.OverlapWords
	if overlap < 0 {
		overlap = defaultOverlapWords
	}
	if overlap >= maxWords {
		overlap = maxWords / 2
	}

	var chunks []string
	var current []string // accumulated paragraphs
	currentWords := 0

	flush := func() string {
		if len(current) == 0 {
			return ""
		}
		chunk := strings.Join(current, "\n\n")
		chunks = append(chunks, chunk)
		current = nil
		currentWords = 0
		return chunk
	}

	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		words := strings.Fields(para)

		if currentWords+len(words) > maxWords && currentWords > 0 {
			flushed := flush()
			if tail := tailWords(flushed, overlap); tail != "" {
				current = append(current, tail)
				currentWords = len(strings.Fields(tail))
			}
		}

		if len(words) > maxWords {
			// Oversized paragraph: split on word boundaries. Any overlap
			// buffer is merged into the first piece; the last piece stays
			// open so following paragraphs can join it.
			pieces := splitWords(words, maxWords, overlap)
			if len(current) > 0 {
				pieces[0] = strings.Join(current, " ") + " " + pieces[0]
				current = nil
				currentWords = 0
			}
			for i, piece := range pieces {
				if i == len(pieces)-1 {
					current = []string{piece}
					currentWords = len(strings.Fields(piece))
				} else {
					chunks = append(chunks, piece)
				}
			}
			continue
		}

		current = append(current, para)
		currentWords += len(words)
	}

	flush()
	return chunks
}

// tailWords returns the last n words of text joined by single spaces.
func tailWords(text string, n int) string {
	if n <= 0 || text == "" {
		return ""
	}
	words := strings.Fields(text)
	if len(words) <= n {
		return strings.Join(words, " ")
	}
	return strings.Join(words[len(words)-n:], " ")
}

// splitWords cuts a word slice into pieces of at most maxWords words,
// each piece starting with the last overlap words of the previous one.
func splitWords(words []string, maxWords, overlap int) []string {
	var pieces []string
	start := 0
	for start < len(words) {
		end := start + maxWords
		if end > len(words) {
			end = len(words)
		}
		pieces = append(pieces, strings.Join(words[start:end], " "))
		if end == len(words) {
			break
		}
		start = end - overlap
	}
	return pieces
}
