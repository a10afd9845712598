package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"examprep-ai/internal/config"
	"examprep-ai/internal/ingest"
	"examprep-ai/internal/llm"
	"examprep-ai/internal/storage"
	"examprep-ai/internal/vectorstore"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))

	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()
	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	ctx := context.Background()

	vectorStore, err := vectorstore.NewQdrantStore(cfg.QdrantURL)
	if err != nil {
		log.Fatalf("Failed to create Qdrant client: %v", err)
	}
	if err := vectorStore.EnsureCollection(ctx, cfg.QdrantCollection, cfg.QdrantVectorSize); err != nil {
		log.Fatalf("Failed to ensure Qdrant collection: %v", err)
	}

	embedder := llm.NewEmbeddingsClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.EmbeddingModel, cfg.QdrantVectorSize)

	pipeline := ingest.NewPipeline(
		storage.NewDocumentRepo(db),
		storage.NewPassageRepo(db),
		embedder,
		vectorStore,
		cfg.QdrantCollection,
	)

	slog.Info("Starting ingestion", "lessons_dir", cfg.LessonsDir, "collection", cfg.QdrantCollection)
	if err := pipeline.IngestDir(ctx, cfg.LessonsDir); err != nil {
		log.Fatalf("Ingestion completed with errors: %v", err)
	}
	slog.Info("Ingestion completed successfully")
}
