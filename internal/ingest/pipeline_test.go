package ingest

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/mock/gomock"

	"examprep-ai/internal/storage"
	storemocks "examprep-ai/internal/vectorstore/mocks"
)

func TestNamespaceFromFileName(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		want     string
		wantErr  bool
	}{
		{name: "numbered lesson", fileName: "5. Life Insurance Nominations", want: "chapter_5"},
		{name: "two digit chapter", fileName: "12. Business Succession", want: "chapter_12"},
		{name: "no chapter prefix", fileName: "appendix", wantErr: true},
		{name: "number without dot", fileName: "5 Lessons", wantErr: true},
		{name: "empty", fileName: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NamespaceFromFileName(tt.fileName)
			if tt.wantErr {
				if err == nil {
					t.Fatal("NamespaceFromFileName() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("NamespaceFromFileName() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("NamespaceFromFileName(%q) = %q, want %q", tt.fileName, got, tt.want)
			}
		})
	}
}

// stubDocumentStore returns a fixed document for GetByFileName.
type stubDocumentStore struct {
	storage.DocumentStore
	doc *storage.Document
}

func (s *stubDocumentStore) GetByFileName(_ context.Context, _ string) (*storage.Document, error) {
	if s.doc == nil {
		return nil, storage.ErrNotFound
	}
	return s.doc, nil
}

func TestIngestFileSkipsUnchangedContent(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := storemocks.NewMockVectorStore(ctrl)
	// No vector store expectations: an unchanged file must not touch it.

	dir := t.TempDir()
	path := filepath.Join(dir, "5. Lessons.pdf")
	content := []byte("not really a pdf, hash is all that matters here")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	docRepo := &stubDocumentStore{doc: &storage.Document{
		ID:       "doc-1",
		FileName: "5. Lessons",
		Hash:     fmt.Sprintf("%x", sha256.Sum256(content)),
	}}

	pipeline := NewPipeline(docRepo, nil, nil, store, "lessons")
	if err := pipeline.IngestFile(context.Background(), path); err != nil {
		t.Fatalf("IngestFile() error = %v, unchanged files must be skipped", err)
	}
}

func TestIngestFileRejectsUnnamespacedFile(t *testing.T) {
	pipeline := NewPipeline(nil, nil, nil, nil, "lessons")
	err := pipeline.IngestFile(context.Background(), filepath.Join(t.TempDir(), "notes.pdf"))
	if err == nil {
		t.Fatal("IngestFile() expected error for file without a chapter prefix")
	}
}

func TestIngestDirMissingDirectory(t *testing.T) {
	pipeline := NewPipeline(nil, nil, nil, nil, "lessons")
	err := pipeline.IngestDir(context.Background(), filepath.Join(t.TempDir(), "absent"))
	if err == nil {
		t.Fatal("IngestDir() expected error for missing directory")
	}
}

func TestIngestDirSkipsNonPDFFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("text"), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	// No collaborators are touched when the directory holds no PDFs.
	pipeline := NewPipeline(nil, nil, nil, nil, "lessons")
	if err := pipeline.IngestDir(context.Background(), dir); err != nil {
		t.Fatalf("IngestDir() error = %v", err)
	}
}
