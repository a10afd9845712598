package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// PassageStore defines the interface for passage registry operations.
type PassageStore interface {
	// Insert inserts a single passage. The passage.ID must be set (UUID)
	// before calling this method.
	Insert(ctx context.Context, passage *Passage) error
	// DeleteByDocument deletes all passages for a given document ID.
	DeleteByDocument(ctx context.Context, documentID string) error
	// ListIDsByDocument returns all passage IDs for a given document,
	// ordered by page number. These double as vector store point IDs.
	ListIDsByDocument(ctx context.Context, documentID string) ([]string, error)
}

// PassageRepo provides methods for passage operations.
// It implements the PassageStore interface.
type PassageRepo struct {
	db *sql.DB
}

// NewPassageRepo creates a new PassageRepo.
func NewPassageRepo(db *sql.DB) *PassageRepo {
	return &PassageRepo{db: db}
}

// Insert inserts a single passage.
func (r *PassageRepo) Insert(ctx context.Context, passage *Passage) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO passages (id, document_id, page_number, heading, text) VALUES (?, ?, ?, ?, ?)",
		passage.ID, passage.DocumentID, passage.PageNumber, passage.Heading, passage.Text,
	)
	if err != nil {
		return fmt.Errorf("failed to insert passage: %w", err)
	}
	return nil
}

// DeleteByDocument deletes all passages for a given document ID.
// Used when re-ingesting a changed file to remove stale passages first.
func (r *PassageRepo) DeleteByDocument(ctx context.Context, documentID string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM passages WHERE document_id = ?", documentID)
	if err != nil {
		return fmt.Errorf("failed to delete passages by document: %w", err)
	}
	return nil
}

// ListIDsByDocument returns all passage IDs for a given document.
// Returns an empty slice if no passages exist (not an error).
func (r *PassageRepo) ListIDsByDocument(ctx context.Context, documentID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id FROM passages WHERE document_id = ? ORDER BY page_number",
		documentID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query passage IDs: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan passage ID: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
