package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"examprep-ai/internal/config"
	"examprep-ai/internal/storage"
	"examprep-ai/internal/vectorstore"
)

// purge removes every ingested namespace from the vector store and clears
// the ingestion registry. Intended for full re-indexing runs.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, opts)))

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

	ctx := context.Background()

	vectorStore, err := vectorstore.NewQdrantStore(cfg.QdrantURL)
	if err != nil {
		log.Fatalf("Failed to create Qdrant client: %v", err)
	}

	docRepo := storage.NewDocumentRepo(db)
	namespaces, err := docRepo.ListNamespaces(ctx)
	if err != nil {
		log.Fatalf("Failed to list namespaces: %v", err)
	}
	if len(namespaces) == 0 {
		slog.Info("No namespaces found")
		return
	}

	slog.Info("Deleting namespaces", "count", len(namespaces))
	for _, ns := range namespaces {
		slog.Info("Deleting namespace", "namespace", ns)
		if err := vectorStore.DeleteNamespace(ctx, cfg.QdrantCollection, ns); err != nil {
			log.Fatalf("Failed to delete namespace %s: %v", ns, err)
		}
		if err := docRepo.DeleteByNamespace(ctx, ns); err != nil {
			log.Fatalf("Failed to clear registry for namespace %s: %v", ns, err)
		}
	}
	slog.Info("All namespaces deleted")
}
