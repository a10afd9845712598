// Package prompt builds the system and user instructions for one question.
// Building is deterministic: identical inputs produce byte-identical prompt
// text, which keeps the scaffold testable and lets the two-stage resolution
// protocol re-derive intermediate context.
package prompt

import (
	"fmt"
	"strings"

	"examprep-ai/internal/analyzer"
)

// Statements beyond IV have no addressable Roman numeral in the scaffold.
var romanNumerals = []string{"I", "II", "III", "IV"}

const negativeWarning = "This question uses negative logic asking for what is NOT correct. " +
	"Identify which statements are FALSE or which option contradicts the context."

// Inputs is everything the builder needs for one question. The struct is
// treated as immutable.
type Inputs struct {
	Question              string
	Context               string
	Options               []analyzer.Option
	Statements            []string
	IsNegative            bool
	HasMultipleStatements bool
	HasAllOfAbove         bool
}

// Plan holds the fully resolved instruction pair for one question. No
// further templating is applied after Build.
type Plan struct {
	System string
	User   string
}

// Build constructs the system instruction and the structured four-step user
// instruction from the analyzer output and retrieved context.
func Build(in Inputs) Plan {
	return Plan{
		System: buildSystem(in),
		User:   buildUser(in),
	}
}

func buildSystem(in Inputs) string {
	lines := []string{
		"Your task is to select the most complete correct answer to a multiple-choice question based ONLY on the provided context.",
		"CRITICAL INSTRUCTIONS:",
		`1. Read the question carefully - pay special attention to negative wording like "not," "except," "false," "incorrect".`,
		"2. Analyze EACH statement or option individually against the context.",
		"3. For questions with statements labeled I, II, III, etc., evaluate each statement separately before considering combinations.",
		"4. Only use information explicitly stated or directly implied in the context - never use external knowledge.",
		"5. Choose the most complete correct answer after evaluating all options.",
	}

	if in.HasAllOfAbove {
		lines = append(lines, `For "All of the above" options, verify all statements carefully before selecting this option.`)
	}
	if in.IsNegative {
		lines = append(lines, "WARNING: "+negativeWarning)
	}

	lines = append(lines, "You MUST answer with ONLY a single uppercase letter (A, B, C, or D) - no explanation or reasoning.")
	return strings.Join(lines, "\n")
}

func buildUser(in Inputs) string {
	var b strings.Builder

	if in.IsNegative {
		b.WriteString("WARNING: " + negativeWarning + "\n\n")
	}

	fmt.Fprintf(&b, "Context:\n%s\n\nQuestion:\n%s\n\n", in.Context, in.Question)

	if in.HasAllOfAbove {
		b.WriteString(`Note: One of the options is "All of the above" or similar. Verify all statements carefully before selecting this option.` + "\n\n")
	}

	b.WriteString("Step 1: Identify the key question and type of logic required.\n")
	b.WriteString("Step 2: Evaluate each statement or option individually:\n")
	b.WriteString(evaluationBlock(in))
	b.WriteString("\n\n")

	b.WriteString("Step 3: Determine the correct answer based on the evaluation above.\n")
	if in.HasMultipleStatements {
		polarity := "TRUE"
		if in.IsNegative {
			polarity = "FALSE"
		}
		fmt.Fprintf(&b, "- Which statements are %s? List them.\n", polarity)
		fmt.Fprintf(&b, "- Which answer option correctly matches these %s statements?\n", polarity)
	}
	b.WriteString("\n")

	logic := "what IS correct"
	if in.IsNegative {
		logic = "what is NOT correct"
	}
	b.WriteString("Step 4: Verify your answer:\n")
	fmt.Fprintf(&b, "- Double-check that your selected option matches the question's logic (%s).\n\n", logic)

	b.WriteString("IMPORTANT: Your final answer MUST be ONLY a single letter A, B, C, or D without any explanation.\n\n")
	b.WriteString("Your final answer: ")

	return b.String()
}

// evaluationBlock enumerates either the statements (multi-statement
// questions) or the options, each with a placeholder instructing the model
// to quote supporting context before judging it.
func evaluationBlock(in Inputs) string {
	var parts []string

	if in.HasMultipleStatements {
		for i, statement := range in.Statements {
			if i >= len(romanNumerals) {
				break
			}
			numeral := romanNumerals[i]
			parts = append(parts, fmt.Sprintf("- Statement %s: %q\n  [Quote relevant context]\n  Therefore, Statement %s is [TRUE/FALSE]", numeral, statement, numeral))
		}
	} else {
		for _, opt := range in.Options {
			parts = append(parts, fmt.Sprintf("- Option %s: %q\n  [Quote relevant context]\n  Therefore, Option %s is [CORRECT/INCORRECT]", opt.Letter, opt.Text, opt.Letter))
		}
	}

	return strings.Join(parts, "\n\n")
}
