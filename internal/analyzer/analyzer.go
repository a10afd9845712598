// Package analyzer classifies the linguistic structure of raw exam questions.
// All functions are pure and deterministic: they lower-case and pattern-match
// the question text, and they degrade to empty or neutral results on text that
// does not look like an exam question. Nothing in this package performs I/O or
// returns an error.
package analyzer

import (
	"regexp"
	"strings"
)

// ChapterContext is the coarse topic classification of a question, used to
// adjust retrieval parameters and query expansion.
type ChapterContext string

const (
	ContextInsurance ChapterContext = "insurance"
	ContextBusiness  ChapterContext = "business"
	ContextGeneral   ChapterContext = "general"
)

// Option is a single answer option parsed positionally from the question text.
// Letters are not guaranteed contiguous or complete.
type Option struct {
	Letter string
	Text   string
}

var (
	insuranceTerms = regexp.MustCompile(`life insurance|policy|nominee|beneficiary|statutory trust|assignment`)
	businessTerms  = regexp.MustCompile(`sole proprietor|partnership|company|shareholder|business owner|buy-sell|key person`)

	whichIsNot  = regexp.MustCompile(`which .*is.* not`)
	whichAreNot = regexp.MustCompile(`which .*are.* not`)

	// Roman-numeral statement markers I. / I) / bare I..IIII followed by . or ).
	romanMarker = regexp.MustCompile(`(?i)\b[I]{1,3}\.|\b[I]{1,3}\)|\b[I]{1,4}\b[.)]`)
	// I then II with punctuation on the same line, or bare I II III tokens.
	numberedPair    = regexp.MustCompile(`\bI\s*[.)].*\bII\s*[.)]`)
	numberedTriple  = regexp.MustCompile(`\bI\b.*\bII\b.*\bIII\b`)
	statementList   = regexp.MustCompile(`(?i)which (?:of the following |)(?:statement|statements)(?:\(s\)|s | )(?:is|are) (?:correct|true|false|not correct|incorrect)`)
	bareRomanToken  = regexp.MustCompile(`\b[I]{1,4}\b`)
	optionMarker    = regexp.MustCompile(`[A-D]\.`)
	statementChunk  = regexp.MustCompile(`\b[I]{1,4}\b[.)]\s*[^IVX]*`)
	statementPrefix = regexp.MustCompile(`^\s*\b[I]{1,4}\b[.)]\s*`)
)

// Negative phrasings checked as plain lower-case substrings. The two
// structural "which ... is/are ... not" patterns are checked separately.
var negativePhrases = []string{
	"not correct",
	"is not correct",
	"are not correct",
	"except",
	"which of the following is not",
	"incorrect",
	"not true",
	"no longer",
	"not relevant",
}

// DetectChapterContext classifies the question's topic. Insurance terms are
// checked before business terms; first match wins.
func DetectChapterContext(question string) ChapterContext {
	lower := strings.ToLower(question)
	if insuranceTerms.MatchString(lower) {
		return ContextInsurance
	}
	if businessTerms.MatchString(lower) {
		return ContextBusiness
	}
	return ContextGeneral
}

// ContainsNegativeLogic reports whether the question asks for what is NOT
// correct (negated phrasing or an "except"-style stem).
func ContainsNegativeLogic(question string) bool {
	lower := strings.ToLower(question)
	for _, phrase := range negativePhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return whichIsNot.MatchString(lower) || whichAreNot.MatchString(lower)
}

// DetectMultipleStatements reports whether the question lists Roman-numeral
// statements (I, II, III, ...) that should be reasoned about individually.
// The heuristics deliberately favor false positives: missing a statement
// question forfeits statement-level reasoning, while a spurious match only
// changes the prompt scaffold.
func DetectMultipleStatements(question string) bool {
	if romanMarker.MatchString(question) {
		return true
	}
	if numberedPair.MatchString(question) || numberedTriple.MatchString(question) {
		return true
	}
	return statementList.MatchString(question) && bareRomanToken.MatchString(question)
}

// ExtractOptions parses "LETTER. text" answer options from the question.
// Option text runs until the next letter marker or the end of the question;
// multi-line options are permitted. Returns nil when no markers are found.
func ExtractOptions(question string) []Option {
	marks := optionMarker.FindAllStringIndex(question, -1)
	if len(marks) == 0 {
		return nil
	}

	options := make([]Option, 0, len(marks))
	for i, mark := range marks {
		end := len(question)
		if i+1 < len(marks) {
			end = marks[i+1][0]
		}
		options = append(options, Option{
			Letter: question[mark[0] : mark[0]+1],
			Text:   strings.TrimSpace(question[mark[1]:end]),
		})
	}
	return options
}

// ExtractStatements pulls the individual Roman-numeral statements out of a
// multi-statement question. It isolates the substring from the first "I."
// marker up to (but excluding) the first "A." option marker, then splits on
// Roman-numeral boundaries and strips each marker. Returns nil when the
// question has no Roman-numeral marker at all.
func ExtractStatements(question string) []string {
	section := question
	if start := strings.Index(question, "I."); start >= 0 {
		rest := question[start:]
		if optIdx := strings.Index(rest, "A."); optIdx >= 0 {
			section = rest[:optIdx]
		} else {
			section = rest
		}
	}

	chunks := statementChunk.FindAllString(section, -1)
	if len(chunks) == 0 {
		return nil
	}

	statements := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		statements = append(statements, strings.TrimSpace(statementPrefix.ReplaceAllString(chunk, "")))
	}
	return statements
}

// HasAllOfAboveOption reports whether any option is an "all of the above"
// variant.
func HasAllOfAboveOption(options []Option) bool {
	for _, opt := range options {
		text := strings.ToLower(opt.Text)
		if strings.Contains(text, "all of the above") ||
			strings.Contains(text, "all the above") ||
			strings.Contains(text, "all are correct") ||
			text == "all of these" {
			return true
		}
	}
	return false
}
