package main

import (
	"context"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"examprep-ai/internal/answer"
	"examprep-ai/internal/config"
	"examprep-ai/internal/http"
	"examprep-ai/internal/llm"
	"examprep-ai/internal/retrieval"
	"examprep-ai/internal/vectorstore"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	ctx := context.Background()

	// Initialize Qdrant vector store
	vectorStore, err := vectorstore.NewQdrantStore(cfg.QdrantURL)
	if err != nil {
		log.Fatalf("Failed to create Qdrant client: %v", err)
	}
	if err := vectorStore.EnsureCollection(ctx, cfg.QdrantCollection, cfg.QdrantVectorSize); err != nil {
		log.Fatalf("Failed to ensure Qdrant collection: %v", err)
	}
	slog.Info("Qdrant collection ready", "collection", cfg.QdrantCollection, "vector_size", cfg.QdrantVectorSize)

	// Provider clients (long-lived, shared read-only across requests)
	embedder := llm.NewEmbeddingsClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.EmbeddingModel, cfg.QdrantVectorSize)
	completions := llm.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.ChatModel)

	planner := retrieval.NewPlanner(embedder, vectorStore, cfg.QdrantCollection, cfg.RetrievalEnhancement)
	resolver := answer.NewResolver(completions)
	engine := answer.NewEngine(planner, resolver)
	slog.Info("Answer engine initialized", "chat_model", cfg.ChatModel, "embedding_model", cfg.EmbeddingModel, "retrieval_enhancement", cfg.RetrievalEnhancement)

	router := http.NewRouter(&http.Deps{
		Engine:         engine,
		VectorStore:    vectorStore,
		CollectionName: cfg.QdrantCollection,
	})

	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}
