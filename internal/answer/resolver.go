package answer

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"examprep-ai/internal/contextutil"
	"examprep-ai/internal/llm"
	"examprep-ai/internal/prompt"
)

const (
	// Output budgets: the simple and verification calls only need a letter,
	// the reasoning call needs room to think out loud.
	simpleMaxTokens = 10
	verifyMaxTokens = 5
	reasonMaxTokens = 1024

	// Low-but-nonzero temperature for the reasoning stage; everything else
	// samples deterministically.
	reasonTemperature = 0.2
)

var (
	leadingLetter      = regexp.MustCompile(`^[ABCD][.:\s]`)
	anyLetter          = regexp.MustCompile(`[ABCD]`)
	finalAnswerPattern = regexp.MustCompile(`(?i)Your final answer: ([A-D])`)
)

// IsVeryComplex is the complexity gate: a question takes the two-stage
// verification protocol only when it is simultaneously multi-statement,
// negatively phrased, and carries an "all of the above" option.
func IsVeryComplex(hasMultipleStatements, hasAllOfAbove, isNegative bool) bool {
	return hasMultipleStatements && hasAllOfAbove && isNegative
}

// Resolver runs one of two protocols against the completion provider and
// normalizes the raw output into a single answer letter.
type Resolver struct {
	completions llm.CompletionClient

	// trustVerifierOnly disables the fallback to the reasoning stage's
	// preliminary letter when the verification stage yields nothing.
	// Tunable policy, off by default.
	trustVerifierOnly bool
}

// NewResolver creates a resolver over the given completion client.
func NewResolver(completions llm.CompletionClient) *Resolver {
	return &Resolver{completions: completions}
}

// Resolution is the immutable outcome of one resolution run.
type Resolution struct {
	// Predicted is a single letter A-D, or Indeterminate.
	Predicted string
	// RawAnswer is the provider text the letter was normalized from. On the
	// two-stage path this is the verification stage's output.
	RawAnswer string
	// Preliminary is the letter scanned out of the reasoning stage, if any.
	// Empty on the simple path.
	Preliminary string
}

// reasoned is the record passed from the reasoning stage to verification.
type reasoned struct {
	Analysis    string
	Preliminary string
}

// Resolve answers the prompt. Provider errors are not retried and propagate
// to the caller as request-level failures.
func (r *Resolver) Resolve(ctx context.Context, plan prompt.Plan, question string, veryComplex bool) (Resolution, error) {
	if !veryComplex {
		return r.direct(ctx, plan)
	}

	stage1, err := r.reason(ctx, plan)
	if err != nil {
		return Resolution{}, err
	}
	return r.verify(ctx, stage1, question)
}

// direct is the single-call protocol: deterministic sampling with an output
// budget sized only for a letter.
func (r *Resolver) direct(ctx context.Context, plan prompt.Plan) (Resolution, error) {
	raw, err := r.completions.Complete(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: plan.System},
		{Role: llm.RoleUser, Content: plan.User},
	}, llm.ChatParams{Temperature: 0, MaxTokens: simpleMaxTokens})
	if err != nil {
		return Resolution{}, fmt.Errorf("completion failed: %w", err)
	}

	predicted := NormalizeLetter(raw)
	if predicted == "" {
		predicted = Indeterminate
	}
	return Resolution{Predicted: predicted, RawAnswer: raw}, nil
}

// reason is stage 1 of the two-stage protocol: the same prompt plus an
// explicit instruction to show the reasoning before the final letter. An
// answer-less analysis is not an error; it just leaves the preliminary
// letter absent.
func (r *Resolver) reason(ctx context.Context, plan prompt.Plan) (reasoned, error) {
	logger := contextutil.LoggerFromContext(ctx)

	analysis, err := r.completions.Complete(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: plan.System},
		{Role: llm.RoleUser, Content: plan.User + "\n\nPlease show your reasoning step by step, and then provide your final answer."},
	}, llm.ChatParams{Temperature: reasonTemperature, MaxTokens: reasonMaxTokens})
	if err != nil {
		return reasoned{}, fmt.Errorf("reasoning completion failed: %w", err)
	}

	preliminary := ""
	if m := finalAnswerPattern.FindStringSubmatch(analysis); m != nil {
		preliminary = strings.ToUpper(m[1])
	}
	logger.DebugContext(ctx, "reasoning stage completed", "preliminary", preliminary, "analysis_length", len(analysis))

	return reasoned{Analysis: analysis, Preliminary: preliminary}, nil
}

// verify is stage 2: an independent call restating the preliminary letter
// and the original question, asking for a confirmed single letter.
func (r *Resolver) verify(ctx context.Context, stage1 reasoned, question string) (Resolution, error) {
	restated := stage1.Preliminary
	if restated == "" {
		restated = "?"
	}

	userContent := fmt.Sprintf(
		"I've analyzed this question in detail. My analysis points to answer %s.\n\nQuestion: %q\n\nBased on the analysis, what is the final answer (ONLY a single letter A, B, C, or D)?",
		restated, question,
	)

	raw, err := r.completions.Complete(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: "You are a verification system that provides a single letter answer."},
		{Role: llm.RoleUser, Content: userContent},
	}, llm.ChatParams{Temperature: 0, MaxTokens: verifyMaxTokens})
	if err != nil {
		return Resolution{}, fmt.Errorf("verification completion failed: %w", err)
	}

	predicted := NormalizeLetter(raw)
	if predicted == "" && !r.trustVerifierOnly {
		predicted = stage1.Preliminary
	}
	if predicted == "" {
		predicted = Indeterminate
	}

	return Resolution{Predicted: predicted, RawAnswer: raw, Preliminary: stage1.Preliminary}, nil
}

// NormalizeLetter extracts a single answer letter from raw provider text:
// the whole trimmed text if it is exactly one of A-D, else a leading letter
// followed by punctuation or whitespace, else the first occurrence of A-D
// anywhere. Returns "" when no letter can be found.
func NormalizeLetter(raw string) string {
	trimmed := strings.TrimSpace(raw)
	switch trimmed {
	case "A", "B", "C", "D":
		return trimmed
	}
	if leadingLetter.MatchString(trimmed) {
		return trimmed[:1]
	}
	return anyLetter.FindString(trimmed)
}
