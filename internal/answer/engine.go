// Package answer orchestrates the question-answering pipeline: analyze the
// question's structure, retrieve supporting passages, build the reasoning
// prompt, and resolve a final answer letter against the completion provider.
// Each request is independent and stateless; the engine holds only read-only
// handles to its collaborators.
package answer

import (
	"context"
	"fmt"

	"examprep-ai/internal/analyzer"
	"examprep-ai/internal/contextutil"
	"examprep-ai/internal/prompt"
	"examprep-ai/internal/retrieval"
)

// Retriever fetches the supporting context for one question.
type Retriever interface {
	Retrieve(ctx context.Context, question, chapter string, chapterContext analyzer.ChapterContext, hasMultipleStatements bool) (retrieval.Context, error)
}

// Engine answers one exam question per call.
type Engine interface {
	Answer(ctx context.Context, req Request) (Result, error)
}

type engine struct {
	retriever Retriever
	resolver  *Resolver
}

// NewEngine creates the answering engine.
func NewEngine(retriever Retriever, resolver *Resolver) Engine {
	return &engine{
		retriever: retriever,
		resolver:  resolver,
	}
}

// Answer runs the full pipeline for one question. Any collaborator failure
// propagates as a request-level error; parse uncertainty does not (the
// analyzer degrades to empty results and the prompt is built from whatever
// structure was found).
func (e *engine) Answer(ctx context.Context, req Request) (Result, error) {
	logger := contextutil.LoggerFromContext(ctx)

	chapterContext := analyzer.DetectChapterContext(req.Question)
	isNegative := analyzer.ContainsNegativeLogic(req.Question)
	hasMultipleStatements := analyzer.DetectMultipleStatements(req.Question)

	retrieved, err := e.retriever.Retrieve(ctx, req.Question, req.Chapter, chapterContext, hasMultipleStatements)
	if err != nil {
		return Result{}, fmt.Errorf("retrieval failed: %w", err)
	}

	options := analyzer.ExtractOptions(req.Question)
	var statements []string
	if hasMultipleStatements {
		statements = analyzer.ExtractStatements(req.Question)
	}
	hasAllOfAbove := analyzer.HasAllOfAboveOption(options)

	plan := prompt.Build(prompt.Inputs{
		Question:              req.Question,
		Context:               retrieved.Text,
		Options:               options,
		Statements:            statements,
		IsNegative:            isNegative,
		HasMultipleStatements: hasMultipleStatements,
		HasAllOfAbove:         hasAllOfAbove,
	})

	veryComplex := IsVeryComplex(hasMultipleStatements, hasAllOfAbove, isNegative)
	logger.InfoContext(ctx, "resolving answer",
		"chapter_context", chapterContext,
		"negative", isNegative,
		"multi_statement", hasMultipleStatements,
		"all_of_above", hasAllOfAbove,
		"very_complex", veryComplex,
	)

	resolution, err := e.resolver.Resolve(ctx, plan, req.Question, veryComplex)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Predicted:             resolution.Predicted,
		Correct:               req.AnswerKey,
		Context:               retrieved.Text,
		ChapterContext:        chapterContext,
		HasMultipleStatements: hasMultipleStatements,
		HasAllOfAbove:         hasAllOfAbove,
		IsNegative:            isNegative,
		IsCorrect:             resolution.Predicted == req.AnswerKey,
		RawAnswer:             resolution.RawAnswer,
	}, nil
}
