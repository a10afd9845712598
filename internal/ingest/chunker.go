package ingest

import "strings"

const (
	// Chunk sizing in runes. Overlap carries sentence tails across chunk
	// boundaries so retrieval does not lose context mid-thought.
	maxChunkSize = 1000
	chunkOverlap = 200
)

// SplitText splits cleaned page text into chunks of at most maxChunkSize
// runes with chunkOverlap runes of overlap, preferring to break at sentence
// ends, then at word boundaries. Returns nil for empty input.
func SplitText(text string) []string {
	runes := []rune(strings.TrimSpace(text))
	if len(runes) == 0 {
		return nil
	}
	if len(runes) <= maxChunkSize {
		return []string{string(runes)}
	}

	var chunks []string
	start := 0
	for start < len(runes) {
		end := start + maxChunkSize
		if end >= len(runes) {
			chunks = append(chunks, strings.TrimSpace(string(runes[start:])))
			break
		}

		cut := findBreak(runes, start, end)
		chunks = append(chunks, strings.TrimSpace(string(runes[start:cut])))

		next := cut - chunkOverlap
		if next <= start {
			next = cut
		}
		start = next
	}

	// Drop any empty chunks produced by whitespace-only spans.
	filtered := chunks[:0]
	for _, c := range chunks {
		if c != "" {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

// findBreak scans backwards from end for a sentence end, then a space,
// falling back to a hard cut at end.
func findBreak(runes []rune, start, end int) int {
	// Prefer a sentence boundary in the back half of the window.
	for i := end - 1; i > start+maxChunkSize/2; i-- {
		if runes[i] == '.' || runes[i] == '!' || runes[i] == '?' {
			return i + 1
		}
	}
	for i := end - 1; i > start; i-- {
		if runes[i] == ' ' {
			return i
		}
	}
	return end
}
