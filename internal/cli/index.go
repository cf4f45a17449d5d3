package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sheikhmuhammadzain/vehs-analyst/internal/cache"
	"github.com/sheikhmuhammadzain/vehs-analyst/internal/index"
	"github.com/sheikhmuhammadzain/vehs-analyst/internal/worker"
)

var (
	indexDir     string
	indexModel   string
	batchSize    int
	embedWorkers int
	embedRPS     float64
	noCache      bool
	indexTimeout time.Duration
)

// indexCmd represents the index command
var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build the vector index from the workbook",
	Long: `Index serializes every row of every sheet into a compact text
document, embeds the documents in rate-limited batches, and saves the
vector store for retrieval.

Embeddings are cached by content hash, so rebuilding after small data
changes only pays for the rows that changed.

Requires OPENAI_API_KEY for the embeddings API.

Example:
  vehs-analyst index
  vehs-analyst index --data EPCL_VEHS_Data_Processed.xlsx --index-dir vehsvdb
  vehs-analyst index --batch-size 32 --workers 2 --rps 1`,
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)

	indexCmd.Flags().StringVar(&indexDir, "index-dir", "", "directory for the vector store (default from config)")
	indexCmd.Flags().StringVar(&indexModel, "embedding-model", "", "embeddings model (default from config)")
	indexCmd.Flags().IntVar(&batchSize, "batch-size", 0, "texts per embeddings request (default 64)")
	indexCmd.Flags().IntVar(&embedWorkers, "workers", 0, "concurrent embedding workers (default 4)")
	indexCmd.Flags().Float64Var(&embedRPS, "rps", 0, "embeddings requests per second (default 3)")
	indexCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the embedding cache")
	indexCmd.Flags().DurationVar(&indexTimeout, "timeout", 10*time.Minute, "total timeout for the build")
}

func runIndex(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), indexTimeout)
	defer cancel()

	cfg := buildConfig()
	if indexDir != "" {
		cfg.Index.Dir = indexDir
	}
	if indexModel != "" {
		cfg.Index.EmbeddingModel = indexModel
	}
	if batchSize > 0 {
		cfg.Index.BatchSize = batchSize
	}
	if embedWorkers > 0 {
		cfg.Concurrency.EmbedWorkers = embedWorkers
	}
	if embedRPS > 0 {
		cfg.Concurrency.RequestsPerSecond = embedRPS
	}
	cfg.Cache.Enabled = cfg.Cache.Enabled && !noCache

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("OPENAI_API_KEY environment variable not set")
	}

	c, err := loadCorpus(cfg)
	if err != nil {
		return err
	}
	if c.Empty() {
		return fmt.Errorf("workbook %s has no sheets to index", cfg.Data.WorkbookPath)
	}

	embedder, err := index.NewOpenAIEmbedder(apiKey, "", cfg.Index.EmbeddingModel)
	if err != nil {
		return err
	}

	var wrapped index.Embedder = embedder
	if cfg.Cache.Enabled {
		layered := cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
		wrapped = index.NewCachedEmbedder(embedder, layered)
	}

	limiter := worker.NewLimiter(cfg.Concurrency.RequestsPerSecond, cfg.Concurrency.EmbedWorkers)
	builder := index.NewBuilder(wrapped, cfg.Index.BatchSize, cfg.Concurrency.EmbedWorkers, limiter, verbose)

	fmt.Fprintf(os.Stderr, "Building index from %s...\n", cfg.Data.WorkbookPath)

	store, err := builder.Build(ctx, c)
	if err != nil {
		return fmt.Errorf("build index: %w", err)
	}

	if err := store.Save(cfg.Index.Dir); err != nil {
		return fmt.Errorf("save index: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Indexed %d documents into %s\n", store.Len(), cfg.Index.Dir)
	return nil
}
