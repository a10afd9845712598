package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"examprep-ai/internal/answer"
	"examprep-ai/internal/handlers"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Engine         answer.Engine
	VectorStore    handlers.CollectionChecker
	CollectionName string
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(CORS)

	answerHandler := handlers.NewAnswerHandler(deps.Engine)
	healthHandler := handlers.NewHealthHandler(deps.VectorStore, deps.CollectionName)

	r.Method(http.MethodPost, "/answer", answerHandler)
	r.Method(http.MethodGet, "/healthz", healthHandler)

	return r
}
