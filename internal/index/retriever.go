package index

import (
	"context"
	"fmt"

	"github.com/sheikhmuhammadzain/vehs-analyst/internal/model"
)

// Retriever answers similarity queries against a loaded store. A nil
// store is tolerated: retrieval degrades to no snippets so the rest of
// the pipeline keeps working.
type Retriever struct {
	store    *Store
	embedder Embedder
	k        int
}

// NewRetriever creates a retriever returning k snippets per query
func NewRetriever(store *Store, embedder Embedder, k int) *Retriever {
	if k <= 0 {
		k = 6
	}
	return &Retriever{store: store, embedder: embedder, k: k}
}

// Available reports whether retrieval can serve queries
func (r *Retriever) Available() bool {
	return r.store != nil && r.embedder != nil && r.store.Len() > 0
}

// Retrieve returns the most similar snippets for the query text
func (r *Retriever) Retrieve(ctx context.Context, query string) ([]model.Snippet, error) {
	if !r.Available() {
		return nil, nil
	}

	vectors, err := r.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(vectors) != 1 {
		return nil, fmt.Errorf("expected 1 query vector, got %d", len(vectors))
	}

	hits := r.store.Search(vectors[0], r.k)
	snippets := make([]model.Snippet, 0, len(hits))
	for _, h := range hits {
		snippets = append(snippets, model.Snippet{
			Sheet:     model.SheetKind(h.Doc.Sheet),
			RecordID:  h.Doc.RecordID,
			Text:      h.Doc.Text,
			Relevance: h.Score,
		})
	}
	return snippets, nil
}
