// Package eval drives batch evaluation of the answering API: it replays a
// chapter-keyed question bank against a running instance, tallies accuracy
// per chapter and overall, and dumps the questions the system got wrong for
// later inspection.
package eval

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"examprep-ai/internal/answer"
	"examprep-ai/internal/contextutil"
)

// Question is one entry of the question bank.
type Question struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// WrongAnswer records one incorrectly answered question.
type WrongAnswer struct {
	Chapter         string `json:"chapter"`
	Question        string `json:"question"`
	CorrectAnswer   string `json:"correctAnswer"`
	PredictedAnswer string `json:"predictedAnswer"`
	RawAnswer       string `json:"rawAnswer"`
	Context         string `json:"context"`
}

// ChapterScore is the per-chapter tally.
type ChapterScore struct {
	Chapter string
	Correct int
	Total   int
}

// Report is the outcome of one evaluation run.
type Report struct {
	Chapters     []ChapterScore
	Correct      int
	Total        int
	WrongAnswers []WrongAnswer
}

// Accuracy returns the overall accuracy percentage, 0 for an empty run.
func (r Report) Accuracy() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Correct) / float64(r.Total) * 100
}

// Evaluator replays questions against a running answering API.
type Evaluator struct {
	baseURL string
	client  *http.Client
}

// NewEvaluator creates an evaluator for the API at baseURL.
func NewEvaluator(baseURL string, client *http.Client) *Evaluator {
	if client == nil {
		client = &http.Client{Timeout: 2 * time.Minute}
	}
	return &Evaluator{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

// LoadQuestions reads a chapter-keyed question bank from a JSON file.
func LoadQuestions(path string) (map[string][]Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read question bank: %w", err)
	}
	var bank map[string][]Question
	if err := json.Unmarshal(data, &bank); err != nil {
		return nil, fmt.Errorf("failed to parse question bank: %w", err)
	}
	return bank, nil
}

// Run evaluates every chapter whose key starts with "chapter_", in sorted
// key order. Individual request failures are logged and counted as wrong
// without aborting the run.
func (e *Evaluator) Run(ctx context.Context, bank map[string][]Question) (Report, error) {
	logger := contextutil.LoggerFromContext(ctx)

	keys := make([]string, 0, len(bank))
	for key := range bank {
		if strings.HasPrefix(key, "chapter_") {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	var report Report
	for _, chapter := range keys {
		score := ChapterScore{Chapter: chapter}
		for _, q := range bank[chapter] {
			score.Total++
			result, err := e.ask(ctx, chapter, q)
			if err != nil {
				logger.ErrorContext(ctx, "evaluation request failed", "chapter", chapter, "error", err)
				report.WrongAnswers = append(report.WrongAnswers, WrongAnswer{
					Chapter:       chapter,
					Question:      q.Question,
					CorrectAnswer: q.Answer,
				})
				continue
			}

			logger.InfoContext(ctx, "question evaluated",
				"chapter", chapter,
				"predicted", result.Predicted,
				"correct", result.IsCorrect,
			)

			if result.IsCorrect {
				score.Correct++
			} else {
				report.WrongAnswers = append(report.WrongAnswers, WrongAnswer{
					Chapter:         chapter,
					Question:        q.Question,
					CorrectAnswer:   result.Correct,
					PredictedAnswer: result.Predicted,
					RawAnswer:       result.RawAnswer,
					Context:         result.Context,
				})
			}
		}

		report.Chapters = append(report.Chapters, score)
		report.Correct += score.Correct
		report.Total += score.Total
		logger.InfoContext(ctx, "chapter evaluated",
			"chapter", chapter,
			"correct", score.Correct,
			"total", score.Total,
		)
	}

	return report, nil
}

// ask posts one question to the answering endpoint.
func (e *Evaluator) ask(ctx context.Context, chapter string, q Question) (answer.Result, error) {
	body, err := json.Marshal(answer.Request{
		Question:  q.Question,
		AnswerKey: q.Answer,
		Chapter:   chapter,
	})
	if err != nil {
		return answer.Result{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/answer", bytes.NewReader(body))
	if err != nil {
		return answer.Result{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return answer.Result{}, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return answer.Result{}, fmt.Errorf("bad status %d: %s", resp.StatusCode, string(raw))
	}

	var result answer.Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return answer.Result{}, fmt.Errorf("failed to decode response: %w", err)
	}
	return result, nil
}

// WriteWrongAnswers dumps the wrong answers to a timestamped JSON file in
// dir and returns the file path. Returns "" when there is nothing to write.
func WriteWrongAnswers(report Report, dir string) (string, error) {
	if len(report.WrongAnswers) == 0 {
		return "", nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	timestamp := time.Now().UTC().Format("2006-01-02T15-04-05Z")
	path := filepath.Join(dir, fmt.Sprintf("wrong_answers_%s.json", timestamp))

	data, err := json.MarshalIndent(report.WrongAnswers, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal wrong answers: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write wrong answers: %w", err)
	}
	return path, nil
}
