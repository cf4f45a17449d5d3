package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sheikhmuhammadzain/vehs-analyst/internal/cache"
	"github.com/sheikhmuhammadzain/vehs-analyst/internal/corpus"
	"github.com/sheikhmuhammadzain/vehs-analyst/internal/index"
	"github.com/sheikhmuhammadzain/vehs-analyst/internal/model"
)

var (
	cfgFile      string
	verbose      bool
	workbookPath string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "vehs-analyst",
	Short: "VEHS Analyst - safety hazard analytics and Q&A over incident data",
	Long: `VEHS Analyst answers questions about workplace safety data.

It loads a processed VEHS workbook (hazards, audit findings, inspection
findings), ranks hazard themes by a concern score built from frequency,
severity, and recency, and attaches prevention playbooks and source
citations to every theme.

With an LLM provider configured it also extracts filters from natural
language questions and synthesizes readable answers grounded in the
analytics and a vector index of the raw records. Without one, every
command still works and returns deterministic output.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number and build information for VEHS Analyst.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("vehs-analyst v0.3.2")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.vehs-analyst/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&workbookPath, "data", "", "path to the processed VEHS workbook (.xlsx)")

	// Bind flags to viper
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("data.workbook_path", rootCmd.PersistentFlags().Lookup("data"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		// Search for config in home directory
		viper.AddConfigPath(home + "/.vehs-analyst")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match VEHS_*
	viper.SetEnvPrefix("VEHS")
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// buildConfig assembles the effective configuration: defaults, then
// config file values, then flags.
func buildConfig() *model.Config {
	cfg := model.DefaultConfig()

	if v := viper.GetString("data.workbook_path"); v != "" {
		cfg.Data.WorkbookPath = v
	}
	if v := viper.GetString("index.dir"); v != "" {
		cfg.Index.Dir = v
	}
	if v := viper.GetString("index.embedding_model"); v != "" {
		cfg.Index.EmbeddingModel = v
	}
	if v := viper.GetInt("analytics.top_n"); v > 0 {
		cfg.Analytics.TopN = v
	}
	if v := viper.GetInt("analytics.recency_days"); v > 0 {
		cfg.Analytics.RecencyDays = v
	}
	if v := viper.GetString("llm.provider"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := viper.GetString("llm.model"); v != "" {
		cfg.LLM.Model = v
	}
	if v := viper.GetString("server.addr"); v != "" {
		cfg.Server.Addr = v
	}
	cfg.Output.Verbose = verbose

	return cfg
}

// configureLLM fills in the provider API key from the environment.
// Returns an error only when a provider is set and its key is missing.
func configureLLM(cfg *model.Config) error {
	switch cfg.LLM.Provider {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "anthropic", "claude":
		cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
	case "ollama":
		// Ollama doesn't need an API key
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	}
	return nil
}

// loadCorpus reads the workbook, tolerating a missing file
func loadCorpus(cfg *model.Config) (*corpus.Corpus, error) {
	c, ok, err := corpus.Load(cfg.Data.WorkbookPath)
	if err != nil {
		return nil, err
	}
	if ok && verbose {
		fmt.Fprintf(os.Stderr, "Loaded workbook %s (%d sheets)\n", cfg.Data.WorkbookPath, len(c.SheetNames()))
	}
	return c, nil
}

// openRetriever loads the vector index and wires a query embedder over
// it. Returns nil when the index or the embeddings key is unavailable;
// callers degrade to analytics-only answers.
func openRetriever(cfg *model.Config) *index.Retriever {
	store, err := index.Load(cfg.Index.Dir)
	if err != nil {
		if verbose {
			fmt.Fprintf(os.Stderr, "Retrieval disabled: %v\n", err)
		}
		return nil
	}

	apiKey := os.Getenv("OPENAI_API_KEY")
	embedder, err := index.NewOpenAIEmbedder(apiKey, "", cfg.Index.EmbeddingModel)
	if err != nil {
		if verbose {
			fmt.Fprintf(os.Stderr, "Retrieval disabled: %v\n", err)
		}
		return nil
	}

	var cached index.Embedder = embedder
	if cfg.Cache.Enabled {
		layered := cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
		cached = index.NewCachedEmbedder(embedder, layered)
	}

	return index.NewRetriever(store, cached, cfg.Index.RetrieveK)
}
