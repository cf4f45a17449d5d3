package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sheikhmuhammadzain/vehs-analyst/internal/model"
	"github.com/sheikhmuhammadzain/vehs-analyst/internal/pipeline"
)

var (
	askLocation   string
	askDepartment string
	askFrom       string
	askTo         string
	askJSON       bool
	askTopN       int
	askTimeout    time.Duration
	llmProvider   string
	llmModel      string
)

// askCmd represents the ask command
var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a question about the safety data",
	Long: `Ask runs a question through the full pipeline:
- Extract scope filters from the question (LLM, optional)
- Retrieve similar records from the vector index (optional)
- Rank hazard themes by concern score when the question asks for them
- Synthesize a structured answer, or fall back to a deterministic one

Explicit filter flags always win over filters extracted from the text.

Example:
  vehs-analyst ask "what are the top hazards?"
  vehs-analyst ask "top hazards in HTDC since March" --llm openai
  vehs-analyst ask "ppe violations" --location "PVC Plant" --from 2024-01-01`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)

	// Scope flags
	askCmd.Flags().StringVar(&askLocation, "location", "", "restrict to a location (substring match)")
	askCmd.Flags().StringVar(&askDepartment, "department", "", "restrict to a department (substring match)")
	askCmd.Flags().StringVar(&askFrom, "from", "", "earliest date to include (YYYY-MM-DD)")
	askCmd.Flags().StringVar(&askTo, "to", "", "latest date to include (YYYY-MM-DD)")

	// Output flags
	askCmd.Flags().BoolVar(&askJSON, "json", false, "print the full answer as JSON instead of Markdown")
	askCmd.Flags().IntVar(&askTopN, "top-n", 0, "number of hazard themes to rank (default from config)")
	askCmd.Flags().DurationVar(&askTimeout, "timeout", 2*time.Minute, "overall timeout for the question")

	// LLM flags
	askCmd.Flags().StringVar(&llmProvider, "llm", "", "LLM provider (openai, anthropic, ollama); empty disables synthesis")
	askCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name (provider default when empty)")
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := strings.Join(args, " ")
	ctx, cancel := context.WithTimeout(context.Background(), askTimeout)
	defer cancel()

	cfg := buildConfig()
	if llmProvider != "" {
		cfg.LLM.Provider = llmProvider
	}
	if llmModel != "" {
		cfg.LLM.Model = llmModel
	}
	if askTopN > 0 {
		cfg.Analytics.TopN = askTopN
	}
	if err := configureLLM(cfg); err != nil {
		return err
	}

	filters, err := filtersFromFlags()
	if err != nil {
		return err
	}

	c, err := loadCorpus(cfg)
	if err != nil {
		return err
	}

	p := pipeline.NewPipeline(cfg, c, openRetriever(cfg))

	if verbose {
		fmt.Fprintf(os.Stderr, "Question: %s\n\n", question)
	}

	answer, err := p.Ask(ctx, question, filters)
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	if askJSON {
		return p.Renderer().WriteJSON(os.Stdout, answer)
	}
	return p.Renderer().WriteMarkdown(os.Stdout, answer)
}

// filtersFromFlags builds the explicit scope filter from ask/hazards flags
func filtersFromFlags() (model.ScopeFilter, error) {
	f := model.ScopeFilter{
		Location:   askLocation,
		Department: askDepartment,
	}
	if askFrom != "" {
		t, err := time.Parse("2006-01-02", askFrom)
		if err != nil {
			return f, fmt.Errorf("invalid --from date %q (want YYYY-MM-DD)", askFrom)
		}
		f.StartDate = &t
	}
	if askTo != "" {
		t, err := time.Parse("2006-01-02", askTo)
		if err != nil {
			return f, fmt.Errorf("invalid --to date %q (want YYYY-MM-DD)", askTo)
		}
		f.EndDate = &t
	}
	return f, nil
}
