package chunker

import (
	"strings"
)

// Join concatenates extracted sections into one body before windowing.
// Empty sections still contribute a separator so positions stay stable
// when a page of the source is blank.
func Join(sections []string) string {
	return strings.Join(sections, "\n")
}

// Split cuts text into fixed-size rune windows with a fixed overlap between
// consecutive windows. It is pure arithmetic: the same text and the same
// size/overlap always yield the same chunk sequence, which is what makes
// reprocessing idempotent.
//
// With size=1000 and overlap=100 a 2500-rune body yields windows
// [0,1000), [900,1900), [1800,2500).
func Split(text string, size, overlap int) []string {
	if size <= 0 {
		return nil
	}
	if overlap < 0 || overlap >= size {
		overlap = 0
	}

	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}

	stride := size - overlap
	var out []string
	for start := 0; ; start += stride {
		end := start + size
		if end >= len(runes) {
			out = append(out, string(runes[start:]))
			break
		}
		out = append(out, string(runes[start:end]))
	}
	return out
}
