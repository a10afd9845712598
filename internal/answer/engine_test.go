package answer

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"examprep-ai/internal/analyzer"
	llmmocks "examprep-ai/internal/llm/mocks"
	"examprep-ai/internal/retrieval"
)

// stubRetriever returns a fixed context and records the arguments it was
// called with.
type stubRetriever struct {
	text                  string
	err                   error
	gotQuestion           string
	gotChapter            string
	gotChapterContext     analyzer.ChapterContext
	gotMultipleStatements bool
}

func (s *stubRetriever) Retrieve(_ context.Context, question, chapter string, chapterContext analyzer.ChapterContext, hasMultipleStatements bool) (retrieval.Context, error) {
	s.gotQuestion = question
	s.gotChapter = chapter
	s.gotChapterContext = chapterContext
	s.gotMultipleStatements = hasMultipleStatements
	if s.err != nil {
		return retrieval.Context{}, s.err
	}
	return retrieval.Context{Text: s.text}, nil
}

func TestEngineAnswerComplexNegativeQuestion(t *testing.T) {
	ctrl := gomock.NewController(t)
	completions := llmmocks.NewMockCompletionClient(ctrl)

	question := "Which of the following statements about a life insurance policy is NOT correct?\n" +
		"I. A nominee may be revoked.\nII. A trust nomination is irrevocable without consent.\nIII. Policy moneys bypass the estate.\n" +
		"A. I only B. II only C. III only D. All of the above"

	// Two-stage path: reasoning then verification.
	first := completions.EXPECT().
		Complete(gomock.Any(), gomock.Any(), gomock.Any()).
		Return("All three statements are supported by the context.\nYour final answer: D", nil)
	completions.EXPECT().
		Complete(gomock.Any(), gomock.Any(), gomock.Any()).
		Return("D", nil).
		After(first)

	retriever := &stubRetriever{text: "Nomination rules context."}
	engine := NewEngine(retriever, NewResolver(completions))

	got, err := engine.Answer(context.Background(), Request{
		Question:  question,
		AnswerKey: "D",
		Chapter:   "chapter_5",
	})
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}

	if got.Predicted != "D" {
		t.Errorf("predicted = %q, want D", got.Predicted)
	}
	if got.Correct != "D" {
		t.Errorf("correct = %q, want D", got.Correct)
	}
	if !got.IsCorrect {
		t.Error("isCorrect = false, want true")
	}
	if !got.IsNegative {
		t.Error("isNegative = false, want true")
	}
	if !got.HasMultipleStatements {
		t.Error("hasMultipleStatements = false, want true")
	}
	if !got.HasAllOfAbove {
		t.Error("hasAllOfAbove = false, want true")
	}
	if got.ChapterContext != analyzer.ContextInsurance {
		t.Errorf("chapterContext = %q, want insurance", got.ChapterContext)
	}
	if got.Context != "Nomination rules context." {
		t.Errorf("context = %q", got.Context)
	}
	if got.RawAnswer != "D" {
		t.Errorf("rawAnswer = %q, want D", got.RawAnswer)
	}

	if retriever.gotChapter != "chapter_5" {
		t.Errorf("retriever chapter = %q, want chapter_5", retriever.gotChapter)
	}
	if !retriever.gotMultipleStatements {
		t.Error("retriever should have been told the question is multi-statement")
	}
}

func TestEngineAnswerSimpleQuestion(t *testing.T) {
	ctrl := gomock.NewController(t)
	completions := llmmocks.NewMockCompletionClient(ctrl)

	// Single call: the question fails the complexity gate.
	completions.EXPECT().
		Complete(gomock.Any(), gomock.Any(), gomock.Any()).
		Return("B) correct", nil)

	retriever := &stubRetriever{text: "ctx"}
	engine := NewEngine(retriever, NewResolver(completions))

	got, err := engine.Answer(context.Background(), Request{
		Question:  "What does a will govern? A. Debts B. Estate distribution C. Taxes D. Insurance claims",
		AnswerKey: "B",
		Chapter:   "chapter_1",
	})
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	if got.Predicted != "B" {
		t.Errorf("predicted = %q, want B", got.Predicted)
	}
	if !got.IsCorrect {
		t.Error("isCorrect = false, want true")
	}
	if got.HasMultipleStatements {
		t.Error("hasMultipleStatements = true, want false")
	}
	if got.IsNegative {
		t.Error("isNegative = true, want false")
	}
}

func TestEngineAnswerRetrievalFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	completions := llmmocks.NewMockCompletionClient(ctrl)

	wantErr := errors.New("vector store unreachable")
	retriever := &stubRetriever{err: wantErr}
	engine := NewEngine(retriever, NewResolver(completions))

	_, err := engine.Answer(context.Background(), Request{Question: "Q?", AnswerKey: "A", Chapter: "chapter_1"})
	if err == nil {
		t.Fatal("Answer() expected error, got nil")
	}
	if !errors.Is(err, wantErr) {
		t.Errorf("Answer() error = %v, want wrapped %v", err, wantErr)
	}
}

func TestEngineAnswerIncorrectPrediction(t *testing.T) {
	ctrl := gomock.NewController(t)
	completions := llmmocks.NewMockCompletionClient(ctrl)

	completions.EXPECT().
		Complete(gomock.Any(), gomock.Any(), gomock.Any()).
		Return("A", nil)

	retriever := &stubRetriever{text: "ctx"}
	engine := NewEngine(retriever, NewResolver(completions))

	got, err := engine.Answer(context.Background(), Request{
		Question:  "Pick one. A. Foo B. Bar C. Baz D. Qux",
		AnswerKey: "C",
		Chapter:   "chapter_2",
	})
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	if got.Predicted != "A" || got.IsCorrect {
		t.Errorf("predicted = %q, isCorrect = %v; want A and false", got.Predicted, got.IsCorrect)
	}
}
