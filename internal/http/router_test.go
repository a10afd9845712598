package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"examprep-ai/internal/answer"
)

type stubEngine struct {
	result answer.Result
}

func (s *stubEngine) Answer(_ context.Context, _ answer.Request) (answer.Result, error) {
	return s.result, nil
}

type stubChecker struct {
	exists bool
}

func (s *stubChecker) CollectionExists(_ context.Context, _ string) (bool, error) {
	return s.exists, nil
}

func newTestRouter() http.Handler {
	return NewRouter(&Deps{
		Engine:         &stubEngine{result: answer.Result{Predicted: "A", Correct: "A", IsCorrect: true}},
		VectorStore:    &stubChecker{exists: true},
		CollectionName: "lessons",
	})
}

func TestRouterAnswerRoute(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/answer", strings.NewReader(`{"question":"Q?","answerKey":"A","chapter":"chapter_1"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var got answer.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if got.Predicted != "A" {
		t.Errorf("predicted = %q, want A", got.Predicted)
	}
}

func TestRouterHealthRoute(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestRouterUnknownRoute(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestRouterCORSPreflight(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodOptions, "/answer", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("preflight status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got == "" {
		t.Error("missing Access-Control-Allow-Origin header")
	}
}
