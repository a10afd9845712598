package vectorstore

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_vector_store.go -package=mocks examprep-ai/internal/vectorstore VectorStore

import "context"

// Point represents a vector point with metadata.
type Point struct {
	ID   string
	Vec  []float32
	Meta map[string]any
}

// SearchResult represents a single scored record from a similarity search.
type SearchResult struct {
	PointID string
	Score   float32
	Meta    map[string]any
}

// VectorStore defines the namespace-partitioned vector index operations.
// A namespace is a partition key within a collection, one per exam chapter;
// callers must pass ASCII-normalized namespace keys (see NormalizeNamespace).
type VectorStore interface {
	// Upsert inserts or updates points in the given namespace.
	Upsert(ctx context.Context, collection, namespace string, points []Point) error

	// Search returns the k nearest points within the given namespace,
	// ordered by descending score, with payload metadata included.
	Search(ctx context.Context, collection, namespace string, query []float32, k int) ([]SearchResult, error)

	// Delete removes points by their IDs.
	Delete(ctx context.Context, collection string, ids []string) error

	// DeleteNamespace removes every point in the given namespace.
	DeleteNamespace(ctx context.Context, collection, namespace string) error
}
