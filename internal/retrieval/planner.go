// Package retrieval builds the retrieval query for a question, fetches the
// nearest passages from the vector store, and assembles them into a single
// context string bounded by the completion provider's input budget.
package retrieval

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"examprep-ai/internal/analyzer"
	"examprep-ai/internal/contextutil"
	"examprep-ai/internal/llm"
	"examprep-ai/internal/vectorstore"
)

// MaxContextBytes bounds the concatenated passage text sent to the
// completion provider. Truncation is byte-accurate, not character-accurate.
const MaxContextBytes = 128000

// Passage holds the per-record metadata behind one retrieved passage.
// Surfaced only through debug logging.
type Passage struct {
	Score    float32
	Page     int
	Chapter  string
	FileName string
	Heading  string
}

// Context is the assembled retrieval result for one question.
type Context struct {
	// Text is the newline-joined passage text, truncated to MaxContextBytes.
	Text string
	// Passages carries the metadata of each retrieved record in result order.
	Passages []Passage
}

// Planner embeds the expanded query and searches the vector store. It holds
// only read-only handles and is safe for concurrent use across requests.
type Planner struct {
	embedder   llm.Embedder
	store      vectorstore.VectorStore
	collection string
	enhance    bool
}

// NewPlanner creates a retrieval planner. enhance enables synonym query
// expansion.
func NewPlanner(embedder llm.Embedder, store vectorstore.VectorStore, collection string, enhance bool) *Planner {
	return &Planner{
		embedder:   embedder,
		store:      store,
		collection: collection,
		enhance:    enhance,
	}
}

// Retrieve embeds the (possibly expanded) question and returns the assembled
// context from the chapter's namespace. Provider and store errors propagate
// to the caller; no retry is attempted here.
func (p *Planner) Retrieve(ctx context.Context, question, chapter string, chapterContext analyzer.ChapterContext, hasMultipleStatements bool) (Context, error) {
	logger := contextutil.LoggerFromContext(ctx)

	query := ExpandQuery(question, p.enhance)
	vector, err := p.embedder.Embed(ctx, query)
	if err != nil {
		return Context{}, fmt.Errorf("failed to embed query: %w", err)
	}

	namespace := vectorstore.NormalizeNamespace(chapter)
	topK := ComputeTopK(hasMultipleStatements, chapterContext)
	logger.DebugContext(ctx, "querying vector store", "namespace", namespace, "top_k", topK, "query_length", len(query))

	results, err := p.store.Search(ctx, p.collection, namespace, vector, topK)
	if err != nil {
		return Context{}, fmt.Errorf("failed to search vector store: %w", err)
	}

	texts := make([]string, 0, len(results))
	passages := make([]Passage, 0, len(results))
	for _, result := range results {
		text, _ := result.Meta["text"].(string)
		texts = append(texts, text)

		page, _ := result.Meta["page_number"].(int64)
		chapterMeta, _ := result.Meta["chapter"].(string)
		fileName, _ := result.Meta["file_name"].(string)
		heading, _ := result.Meta["heading"].(string)
		passages = append(passages, Passage{
			Score:    result.Score,
			Page:     int(page),
			Chapter:  chapterMeta,
			FileName: fileName,
			Heading:  heading,
		})
	}

	text := TruncateBytes(strings.Join(texts, "\n"), MaxContextBytes)
	logger.InfoContext(ctx, "retrieval completed", "namespace", namespace, "passages", len(passages), "context_bytes", len(text))

	return Context{Text: text, Passages: passages}, nil
}

// TruncateBytes cuts s to at most n bytes. When the limit splits a UTF-8
// sequence, the cut backs off to the start of that sequence rather than
// emitting a partial rune. Bytes before the cut are left untouched.
func TruncateBytes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && n-cut < utf8.UTFMax && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
