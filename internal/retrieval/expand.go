package retrieval

import (
	"strings"

	"examprep-ai/internal/analyzer"
)

// expansionRule appends domain synonym terms to the query when the question
// contains the trigger substring. The rules are static term expansion, not
// learned: they exist to pull in passages that phrase a concept differently
// than the exam does.
type expansionRule struct {
	trigger   string
	expansion string
}

var expansionRules = map[analyzer.ChapterContext][]expansionRule{
	analyzer.ContextInsurance: {
		{trigger: "nominee", expansion: "beneficiary executor trustee"},
		{trigger: "trust", expansion: "statutory policy protection creditor"},
		{trigger: "assignment", expansion: "transfer ownership assignor assignee"},
	},
	analyzer.ContextBusiness: {
		{trigger: "sole proprietor", expansion: "individual unlimited liability"},
		{trigger: "partnership", expansion: "partners joint several liability"},
		{trigger: "company", expansion: "shareholder limited liability separate entity"},
	},
}

// ExpandQuery flattens newlines in the question and, when enhance is true,
// appends the synonym expansions whose triggers appear in the flattened
// text. Triggers match against the question text only, never against text
// appended by an earlier rule, and the rule table is selected from the
// flattened text so a domain term split across a line break still counts.
func ExpandQuery(question string, enhance bool) string {
	flattened := strings.ReplaceAll(question, "\n", " ")
	if !enhance {
		return flattened
	}

	query := flattened
	for _, rule := range expansionRules[analyzer.DetectChapterContext(flattened)] {
		if strings.Contains(flattened, rule.trigger) {
			query += " " + rule.expansion
		}
	}
	return query
}

// ComputeTopK returns the candidate count to request from the vector store.
// Multi-statement questions need more passages (each statement must be
// supported independently), and non-general chapters get a wider net.
// The result is always within [10, 20].
func ComputeTopK(hasMultipleStatements bool, chapterContext analyzer.ChapterContext) int {
	topK := 10
	if hasMultipleStatements {
		topK = 15
	}
	if chapterContext != analyzer.ContextGeneral {
		topK += 5
	}
	return topK
}
