package model

import "time"

// Config holds the complete application configuration
type Config struct {
	Data        DataConfig        `yaml:"data"`
	Analytics   AnalyticsConfig   `yaml:"analytics"`
	Index       IndexConfig       `yaml:"index"`
	Cache       CacheConfig       `yaml:"cache"`
	LLM         LLMConfig         `yaml:"llm"`
	Server      ServerConfig      `yaml:"server"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Output      OutputConfig      `yaml:"output"`
}

// DataConfig locates the cleaned workbook the upstream ETL produces
type DataConfig struct {
	WorkbookPath string `yaml:"workbook_path"`
}

// AnalyticsConfig tunes the hazard ranking engine
type AnalyticsConfig struct {
	TopN        int `yaml:"top_n"`
	RecencyDays int `yaml:"recency_days"`
}

// IndexConfig configures the vector index used for retrieval
type IndexConfig struct {
	Dir            string `yaml:"dir"`
	EmbeddingModel string `yaml:"embedding_model"`
	RetrieveK      int    `yaml:"retrieve_k"`
	BatchSize      int    `yaml:"batch_size"`
}

// CacheConfig configures embedding caching
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Dir       string        `yaml:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl"`
}

// LLMConfig configures the language-model provider used for filter
// extraction and answer synthesis. An empty Provider disables both
// stages; the pipeline then degrades to deterministic output.
type LLMConfig struct {
	Provider  string `yaml:"provider"`
	Model     string `yaml:"model"`
	APIKey    string `yaml:"-"`
	BaseURL   string `yaml:"base_url"`
	Timeout   int    `yaml:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Addr    string `yaml:"addr"`
	DevMode bool   `yaml:"dev_mode"`
}

// ConcurrencyConfig tunes index building
type ConcurrencyConfig struct {
	EmbedWorkers      int     `yaml:"embed_workers"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
}

// OutputConfig controls rendering
type OutputConfig struct {
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			WorkbookPath: "EPCL_VEHS_Data_Processed.xlsx",
		},
		Analytics: AnalyticsConfig{
			TopN:        6,
			RecencyDays: 180,
		},
		Index: IndexConfig{
			Dir:            "vehsvdb",
			EmbeddingModel: "text-embedding-3-small",
			RetrieveK:      6,
			BatchSize:      64,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       ".vehs-cache",
			MemoryTTL: 1 * time.Hour,
			DiskTTL:   7 * 24 * time.Hour,
		},
		LLM: LLMConfig{
			Provider:  "", // Disabled by default
			Model:     "",
			Timeout:   30,
			MaxTokens: 1200,
		},
		Server: ServerConfig{
			Addr:    ":8080",
			DevMode: false,
		},
		Concurrency: ConcurrencyConfig{
			EmbedWorkers:      4,
			RequestsPerSecond: 3,
		},
		Output: OutputConfig{
			Verbose: false,
		},
	}
}
