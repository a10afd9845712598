package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// DocumentStore defines the interface for document registry operations.
type DocumentStore interface {
	// GetByFileName gets a document by file name. Returns ErrNotFound if absent.
	GetByFileName(ctx context.Context, fileName string) (*Document, error)
	// Upsert inserts a document or replaces the existing row for the same
	// file name. The document.ID must be set before calling.
	Upsert(ctx context.Context, doc *Document) error
	// Delete removes a document (and its passages, via cascade).
	Delete(ctx context.Context, id string) error
	// ListNamespaces returns the distinct namespaces present in the registry.
	ListNamespaces(ctx context.Context) ([]string, error)
	// DeleteByNamespace removes every document in a namespace.
	DeleteByNamespace(ctx context.Context, namespace string) error
}

// DocumentRepo provides methods for document registry operations.
// It implements the DocumentStore interface.
type DocumentRepo struct {
	db *sql.DB
}

// NewDocumentRepo creates a new DocumentRepo.
func NewDocumentRepo(db *sql.DB) *DocumentRepo {
	return &DocumentRepo{db: db}
}

// GetByFileName gets a document by file name.
func (r *DocumentRepo) GetByFileName(ctx context.Context, fileName string) (*Document, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT id, file_name, namespace, hash, page_count, ingested_at FROM documents WHERE file_name = ?",
		fileName,
	)

	var doc Document
	err := row.Scan(&doc.ID, &doc.FileName, &doc.Namespace, &doc.Hash, &doc.PageCount, &doc.IngestedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	return &doc, nil
}

// Upsert inserts a document or replaces the existing row for the same file name.
func (r *DocumentRepo) Upsert(ctx context.Context, doc *Document) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO documents (id, file_name, namespace, hash, page_count) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(file_name) DO UPDATE SET namespace = excluded.namespace, hash = excluded.hash,
		 page_count = excluded.page_count, ingested_at = CURRENT_TIMESTAMP`,
		doc.ID, doc.FileName, doc.Namespace, doc.Hash, doc.PageCount,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert document: %w", err)
	}
	return nil
}

// Delete removes a document by ID.
func (r *DocumentRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}

// ListNamespaces returns the distinct namespaces present in the registry.
func (r *DocumentRepo) ListNamespaces(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT DISTINCT namespace FROM documents ORDER BY namespace")
	if err != nil {
		return nil, fmt.Errorf("failed to query namespaces: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var namespaces []string
	for rows.Next() {
		var ns string
		if err := rows.Scan(&ns); err != nil {
			return nil, fmt.Errorf("failed to scan namespace: %w", err)
		}
		namespaces = append(namespaces, ns)
	}
	return namespaces, rows.Err()
}

// DeleteByNamespace removes every document in a namespace.
func (r *DocumentRepo) DeleteByNamespace(ctx context.Context, namespace string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM documents WHERE namespace = ?", namespace)
	if err != nil {
		return fmt.Errorf("failed to delete documents by namespace: %w", err)
	}
	return nil
}
