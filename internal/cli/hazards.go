package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sheikhmuhammadzain/vehs-analyst/internal/pipeline"
)

var (
	hazardsTopN int
	hazardsJSON bool
)

// hazardsCmd represents the hazards command
var hazardsCmd = &cobra.Command{
	Use:   "hazards",
	Short: "Rank hazard themes by concern score",
	Long: `Hazards runs the analytics engine directly, with no LLM involved:
- Filter records by location, department, and date range
- Tag each record against the hazard taxonomy
- Score each theme: count + 0.75 * avg severity + 0.5 * recent count
- Attach prevention playbook steps and source citations

Example:
  vehs-analyst hazards
  vehs-analyst hazards --location HTDC --top-n 10
  vehs-analyst hazards --from 2024-01-01 --to 2024-06-30 --json`,
	RunE: runHazards,
}

func init() {
	rootCmd.AddCommand(hazardsCmd)

	// Scope flags shared with ask
	hazardsCmd.Flags().StringVar(&askLocation, "location", "", "restrict to a location (substring match)")
	hazardsCmd.Flags().StringVar(&askDepartment, "department", "", "restrict to a department (substring match)")
	hazardsCmd.Flags().StringVar(&askFrom, "from", "", "earliest date to include (YYYY-MM-DD)")
	hazardsCmd.Flags().StringVar(&askTo, "to", "", "latest date to include (YYYY-MM-DD)")

	hazardsCmd.Flags().IntVar(&hazardsTopN, "top-n", 0, "number of themes to return (default from config)")
	hazardsCmd.Flags().BoolVar(&hazardsJSON, "json", false, "print the ranking as JSON instead of a table")
}

func runHazards(cmd *cobra.Command, args []string) error {
	cfg := buildConfig()

	filters, err := filtersFromFlags()
	if err != nil {
		return err
	}

	c, err := loadCorpus(cfg)
	if err != nil {
		return err
	}

	// Analytics only; no retriever, no LLM
	cfg.LLM.Provider = ""
	p := pipeline.NewPipeline(cfg, c, nil)
	ranking := p.Hazards(filters, hazardsTopN)

	if hazardsJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(ranking)
	}

	if len(ranking.Top) == 0 {
		fmt.Println("No hazards found in scope.")
		return nil
	}

	fmt.Printf("%-28s %6s %8s %7s %8s\n", "HAZARD", "COUNT", "AVG SEV", "RECENT", "CONCERN")
	for _, h := range ranking.Top {
		fmt.Printf("%-28s %6d %8.2f %7d %8.2f\n", h.Hazard, h.Count, h.AvgSeverity, h.Recent, h.ConcernScore)
	}

	if verbose {
		fmt.Println()
		for _, h := range ranking.Top {
			fmt.Printf("%s:\n", h.Hazard)
			for _, step := range h.Steps {
				fmt.Printf("  - %s\n", step)
			}
			for _, s := range h.Samples {
				fmt.Printf("  [%s:%s]\n", s.Sheet, s.RecordID)
			}
		}
	}

	return nil
}
