package storage

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Document represents one ingested source file (a lesson PDF).
type Document struct {
	ID         string // UUID
	FileName   string // File name without extension
	Namespace  string // ASCII-normalized chapter namespace (e.g. "chapter_5")
	Hash       string // SHA256 hex string of file content
	PageCount  int
	IngestedAt time.Time
}

// Passage represents one embedded chunk of a document page. Its ID doubles
// as the vector store point ID.
type Passage struct {
	ID         string // UUID (same as the Qdrant point ID)
	DocumentID string // Foreign key to documents.id
	PageNumber int
	Heading    string
	Text       string
}
