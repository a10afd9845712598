package llm

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_llm.go -package=mocks examprep-ai/internal/llm CompletionClient,Embedder

import "context"

// Message represents a single role-tagged message in a chat conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Roles used in completion requests.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// ChatParams holds parameters for completion requests.
type ChatParams struct {
	// Temperature controls the randomness of the output.
	Temperature float64

	// MaxTokens caps the number of tokens to generate. 0 means no cap.
	MaxTokens int64
}

// CompletionClient generates text from a list of role-tagged messages.
// Implementations are stateless with respect to request data and safe for
// concurrent use across requests.
type CompletionClient interface {
	Complete(ctx context.Context, messages []Message, params ChatParams) (string, error)
}

// Embedder converts text into a fixed-length numeric vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
