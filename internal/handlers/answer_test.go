package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"examprep-ai/internal/answer"
)

// stubEngine returns a canned result or error.
type stubEngine struct {
	result answer.Result
	err    error
}

func (s *stubEngine) Answer(_ context.Context, _ answer.Request) (answer.Result, error) {
	if s.err != nil {
		return answer.Result{}, s.err
	}
	return s.result, nil
}

func TestAnswerHandlerSuccess(t *testing.T) {
	engine := &stubEngine{result: answer.Result{
		Predicted:             "B",
		Correct:               "B",
		Context:               "supporting passage",
		ChapterContext:        "insurance",
		HasMultipleStatements: true,
		HasAllOfAbove:         false,
		IsNegative:            false,
		IsCorrect:             true,
		RawAnswer:             "B",
	}}
	handler := NewAnswerHandler(engine)

	body := `{"question":"Which are correct? I. Foo II. Bar A. I only B. Both","answerKey":"B","chapter":"chapter_5"}`
	req := httptest.NewRequest(http.MethodPost, "/answer", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var got map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	for field, want := range map[string]any{
		"predicted":             "B",
		"correct":               "B",
		"context":               "supporting passage",
		"chapterContext":        "insurance",
		"hasMultipleStatements": true,
		"hasAllOfAbove":         false,
		"isNegative":            false,
		"isCorrect":             true,
		"rawAnswer":             "B",
	} {
		if got[field] != want {
			t.Errorf("response field %q = %v, want %v", field, got[field], want)
		}
	}
}

func TestAnswerHandlerEngineFailure(t *testing.T) {
	engine := &stubEngine{err: errors.New("retrieval failed: vector store unreachable")}
	handler := NewAnswerHandler(engine)

	req := httptest.NewRequest(http.MethodPost, "/answer", strings.NewReader(`{"question":"Q?","answerKey":"A","chapter":"chapter_1"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}

	var got map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	msg, ok := got["error"].(string)
	if !ok || msg == "" {
		t.Errorf("error field = %v, want a non-empty string", got["error"])
	}
	if _, ok := got["predicted"]; ok {
		t.Error("error response must not carry a predicted field")
	}
}

func TestAnswerHandlerInvalidBody(t *testing.T) {
	handler := NewAnswerHandler(&stubEngine{})

	req := httptest.NewRequest(http.MethodPost, "/answer", strings.NewReader("not json"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestAnswerHandlerEmptyQuestion(t *testing.T) {
	handler := NewAnswerHandler(&stubEngine{})

	req := httptest.NewRequest(http.MethodPost, "/answer", strings.NewReader(`{"question":"","answerKey":"A","chapter":"chapter_1"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestAnswerHandlerMethodNotAllowed(t *testing.T) {
	handler := NewAnswerHandler(&stubEngine{})

	req := httptest.NewRequest(http.MethodGet, "/answer", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}
