package ingest

import (
	"regexp"
	"strings"
)

var (
	doubledLetters = regexp.MustCompile(`([A-Za-z])(?:\s\1)+`)
	headingPattern = regexp.MustCompile(`^((\d+\.){1,3}|[A-Z]{1,5}\.)\s+([^\n]+)`)

	operationOfLaw = regexp.MustCompile(`survivorship|operation of law|tenancy in common`)
	muslimAudience = regexp.MustCompile(`faraid|syariah|muslim|hibah|wasiyyah`)
	willsAudience  = regexp.MustCompile(`wills act|non-muslim|testator|executor`)
)

// CleanPageText normalizes raw PDF page text: newlines become spaces and
// repeated-letter extraction artifacts ("e e state") collapse to a single
// letter.
func CleanPageText(text string) string {
	flattened := strings.TrimSpace(strings.ReplaceAll(text, "\n", " "))
	return doubledLetters.ReplaceAllString(flattened, "$1")
}

// ExtractHeading pulls a section heading from the start of page text:
// a numbered ("1.2.3") or lettered ("IV.") prefix line when present,
// otherwise the first six words as a synthetic heading.
func ExtractHeading(text string) string {
	if m := headingPattern.FindString(text); m != "" {
		return strings.TrimSpace(m)
	}
	words := strings.Fields(text)
	if len(words) > 6 {
		words = words[:6]
	}
	return strings.Join(words, " ") + "..."
}

// DetectLegalMetadata tags a passage with legal-process and audience
// metadata inferred from its content. Used as vector store payload so
// retrieved passages can be inspected during debugging.
func DetectLegalMetadata(content string) map[string]any {
	lower := strings.ToLower(content)
	meta := make(map[string]any)

	if operationOfLaw.MatchString(lower) {
		meta["legal_process"] = "operation_of_law"
		meta["probate_type"] = "non-probate"
	}
	if muslimAudience.MatchString(lower) {
		meta["audience"] = "muslim"
	} else if willsAudience.MatchString(lower) {
		meta["audience"] = "non-muslim"
	}
	return meta
}
