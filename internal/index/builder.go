package index

import (
	"context"
	"fmt"
	"os"

	"github.com/sheikhmuhammadzain/vehs-analyst/internal/corpus"
	"github.com/sheikhmuhammadzain/vehs-analyst/internal/worker"
)

// Builder embeds corpus documents in rate-limited batches and
// assembles the vector store.
type Builder struct {
	embedder  Embedder
	batchSize int
	workers   int
	limiter   *worker.Limiter
	verbose   bool
}

// NewBuilder creates a builder. Batches stay modest (default 64) to
// keep each request under the provider's per-request token limit.
func NewBuilder(embedder Embedder, batchSize, workers int, limiter *worker.Limiter, verbose bool) *Builder {
	if batchSize <= 0 {
		batchSize = 64
	}
	if workers <= 0 {
		workers = 1
	}
	return &Builder{
		embedder:  embedder,
		batchSize: batchSize,
		workers:   workers,
		limiter:   limiter,
		verbose:   verbose,
	}
}

// embedJob embeds one batch; offset records where its vectors belong
type embedJob struct {
	builder *Builder
	texts   []string
	offset  int
}

type embedResult struct {
	offset  int
	vectors [][]float32
	err     error
}

func (r *embedResult) GetError() error {
	return r.err
}

func (j *embedJob) Execute(ctx context.Context) worker.Result {
	if j.builder.limiter != nil {
		if err := j.builder.limiter.Wait(ctx); err != nil {
			return &embedResult{offset: j.offset, err: err}
		}
	}
	vectors, err := j.builder.embedder.Embed(ctx, j.texts)
	return &embedResult{offset: j.offset, vectors: vectors, err: err}
}

// Build embeds every document of the corpus and returns the store
func (b *Builder) Build(ctx context.Context, c *corpus.Corpus) (*Store, error) {
	docs := BuildDocuments(c)
	if len(docs) == 0 {
		return nil, fmt.Errorf("no documents prepared for indexing")
	}
	if b.verbose {
		fmt.Fprintf(os.Stderr, "Prepared %d docs\n", len(docs))
	}

	texts := make([]string, len(docs))
	for i, d := range docs {
		texts[i] = d.Text
	}

	pool := worker.NewPool(b.workers)
	pool.Start()

	for offset := 0; offset < len(texts); offset += b.batchSize {
		end := offset + b.batchSize
		if end > len(texts) {
			end = len(texts)
		}
		pool.Submit(&embedJob{builder: b, texts: texts[offset:end], offset: offset})
	}

	vectors := make([][]float32, len(docs))
	for _, res := range pool.Wait() {
		er := res.(*embedResult)
		if er.err != nil {
			return nil, fmt.Errorf("embed batch at %d: %w", er.offset, er.err)
		}
		copy(vectors[er.offset:], er.vectors)
		if b.verbose {
			fmt.Fprintf(os.Stderr, "Indexed batch at %d\n", er.offset)
		}
	}

	store := &Store{Docs: docs, Vectors: vectors}
	return store, nil
}
