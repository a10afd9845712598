// Package ingest populates the vector store from lesson PDFs: per-page text
// extraction and cleanup, chunking, metadata tagging, embedding, and upsert
// into the chapter's namespace. An SQLite registry makes re-runs idempotent
// by skipping files whose content hash is unchanged.
package ingest

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/ledongthuc/pdf"

	"examprep-ai/internal/contextutil"
	"examprep-ai/internal/retrieval"
	"examprep-ai/internal/storage"
	"examprep-ai/internal/vectorstore"
)

// Stored passage text is bounded well below the retrieval context limit so
// a single record can never dominate the assembled context.
const maxPassageBytes = 36000

var chapterPrefix = regexp.MustCompile(`^(\d+)\.`)

// BatchEmbedder generates embeddings for a batch of texts.
type BatchEmbedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Pipeline orchestrates the ingestion of PDF lesson files into SQLite and
// the vector store.
type Pipeline struct {
	docRepo     storage.DocumentStore
	passageRepo storage.PassageStore
	embedder    BatchEmbedder
	store       vectorstore.VectorStore
	collection  string
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(
	docRepo storage.DocumentStore,
	passageRepo storage.PassageStore,
	embedder BatchEmbedder,
	store vectorstore.VectorStore,
	collection string,
) *Pipeline {
	return &Pipeline{
		docRepo:     docRepo,
		passageRepo: passageRepo,
		embedder:    embedder,
		store:       store,
		collection:  collection,
	}
}

// NamespaceFromFileName derives the chapter namespace from a lesson file
// name of the form "<n>. Title". The result is ASCII-normalized.
func NamespaceFromFileName(fileName string) (string, error) {
	m := chapterPrefix.FindStringSubmatch(fileName)
	if m == nil {
		return "", fmt.Errorf("cannot extract namespace from file name: %s", fileName)
	}
	return vectorstore.NormalizeNamespace("chapter_" + m[1]), nil
}

// IngestDir ingests every PDF in dir. Per-file failures are logged and do
// not abort the run.
func (p *Pipeline) IngestDir(ctx context.Context, dir string) error {
	logger := contextutil.LoggerFromContext(ctx)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read lessons directory: %w", err)
	}

	var failed int
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := p.IngestFile(ctx, path); err != nil {
			logger.ErrorContext(ctx, "failed to ingest file", "file", entry.Name(), "error", err)
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d file(s) failed to ingest", failed)
	}
	return nil
}

// IngestFile ingests a single PDF. Files whose content hash matches the
// registry are skipped.
func (p *Pipeline) IngestFile(ctx context.Context, path string) error {
	logger := contextutil.LoggerFromContext(ctx)

	fileName := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	namespace, err := NamespaceFromFileName(fileName)
	if err != nil {
		return err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", path, err)
	}
	hashHex := fmt.Sprintf("%x", sha256.Sum256(content))

	existing, err := p.docRepo.GetByFileName(ctx, fileName)
	if err != nil && err != storage.ErrNotFound {
		return fmt.Errorf("failed to check existing document: %w", err)
	}
	if existing != nil && existing.Hash == hashHex {
		logger.DebugContext(ctx, "skipping unchanged file", "file", fileName, "hash", hashHex)
		return nil
	}

	pages, err := extractPages(path)
	if err != nil {
		return fmt.Errorf("failed to extract PDF text: %w", err)
	}
	if len(pages) == 0 {
		logger.WarnContext(ctx, "no text extracted", "file", fileName)
		return nil
	}

	docID := uuid.NewString()
	if existing != nil {
		docID = existing.ID
		// Changed content: evict stale points and passages before re-inserting.
		ids, err := p.passageRepo.ListIDsByDocument(ctx, docID)
		if err != nil {
			return err
		}
		if len(ids) > 0 {
			if err := p.store.Delete(ctx, p.collection, ids); err != nil {
				return err
			}
			if err := p.passageRepo.DeleteByDocument(ctx, docID); err != nil {
				return err
			}
		}
	}

	var points []vectorstore.Point
	var passages []*storage.Passage
	var texts []string

	for pageNum, pageText := range pages {
		cleaned := CleanPageText(pageText)
		if cleaned == "" {
			continue
		}
		heading := ExtractHeading(cleaned)

		for _, chunk := range SplitText(cleaned) {
			stored := retrieval.TruncateBytes(chunk, maxPassageBytes)
			pointID := uuid.NewMD5(uuid.NameSpaceOID, []byte(stored)).String()

			meta := map[string]any{
				"text":        stored,
				"page_number": int64(pageNum + 1),
				"chapter":     namespace,
				"file_name":   fileName,
				"heading":     heading,
			}
			for k, v := range DetectLegalMetadata(stored) {
				meta[k] = v
			}

			points = append(points, vectorstore.Point{ID: pointID, Meta: meta})
			passages = append(passages, &storage.Passage{
				ID:         pointID,
				DocumentID: docID,
				PageNumber: pageNum + 1,
				Heading:    heading,
				Text:       stored,
			})
			texts = append(texts, stored)
		}
	}

	if len(points) == 0 {
		logger.WarnContext(ctx, "no chunks generated", "file", fileName)
		return nil
	}

	vectors, err := p.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return fmt.Errorf("failed to embed chunks: %w", err)
	}
	for i := range points {
		points[i].Vec = vectors[i]
	}

	if err := p.store.Upsert(ctx, p.collection, namespace, points); err != nil {
		return err
	}

	if err := p.docRepo.Upsert(ctx, &storage.Document{
		ID:        docID,
		FileName:  fileName,
		Namespace: namespace,
		Hash:      hashHex,
		PageCount: len(pages),
	}); err != nil {
		return err
	}
	for _, passage := range passages {
		if err := p.passageRepo.Insert(ctx, passage); err != nil {
			return err
		}
	}

	logger.InfoContext(ctx, "ingested file", "file", fileName, "namespace", namespace, "pages", len(pages), "chunks", len(points))
	return nil
}

// extractPages returns the plain text of each page of a PDF.
func extractPages(path string) ([]string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	pages := make([]string, 0, reader.NumPage())
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i, err)
		}
		pages = append(pages, text)
	}
	return pages, nil
}
