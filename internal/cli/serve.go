package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sheikhmuhammadzain/vehs-analyst/internal/pipeline"
	"github.com/sheikhmuhammadzain/vehs-analyst/internal/server"
)

var (
	serveAddr string
	devMode   bool
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API for the dashboard",
	Long: `Serve exposes the pipeline over HTTP:
  GET  /api/health   readiness probe
  GET  /api/hazards  hazard ranking with query-parameter scope
  POST /api/ask      full question pipeline

Example:
  vehs-analyst serve
  vehs-analyst serve --addr :9090 --llm openai`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, :8080)")
	serveCmd.Flags().BoolVar(&devMode, "dev", false, "development mode (verbose gin output)")

	// LLM flags shared with ask
	serveCmd.Flags().StringVar(&llmProvider, "llm", "", "LLM provider (openai, anthropic, ollama); empty disables synthesis")
	serveCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name (provider default when empty)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := buildConfig()
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}
	cfg.Server.DevMode = devMode
	if llmProvider != "" {
		cfg.LLM.Provider = llmProvider
	}
	if llmModel != "" {
		cfg.LLM.Model = llmModel
	}
	if err := configureLLM(cfg); err != nil {
		return err
	}

	c, err := loadCorpus(cfg)
	if err != nil {
		return err
	}

	p := pipeline.NewPipeline(cfg, c, openRetriever(cfg))
	s := server.NewServer(cfg, p)

	fmt.Fprintf(os.Stderr, "Listening on %s\n", cfg.Server.Addr)
	return s.Run(cfg.Server.Addr)
}
