package answer

import "examprep-ai/internal/analyzer"

// Indeterminate is the sentinel predicted value meaning no valid letter
// could be extracted from the provider's output. It can never equal a real
// answer key, so downstream accuracy counting treats it as incorrect while
// still being distinguishable from a genuinely wrong letter.
const Indeterminate = "X"

// Request is one exam question to answer. The answer key and chapter tag
// are supplied externally by the evaluation data.
type Request struct {
	Question  string `json:"question"`
	AnswerKey string `json:"answerKey"`
	Chapter   string `json:"chapter"`
}

// Result is the structured outcome of answering one question. It is created
// once per request and never mutated after construction.
type Result struct {
	Predicted             string                  `json:"predicted"`
	Correct               string                  `json:"correct"`
	Context               string                  `json:"context"`
	ChapterContext        analyzer.ChapterContext `json:"chapterContext"`
	HasMultipleStatements bool                    `json:"hasMultipleStatements"`
	HasAllOfAbove         bool                    `json:"hasAllOfAbove"`
	IsNegative            bool                    `json:"isNegative"`
	IsCorrect             bool                    `json:"isCorrect"`
	RawAnswer             string                  `json:"rawAnswer"`
}
