package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/sheikhmuhammadzain/vehs-analyst/internal/model"
)

// Renderer turns an Answer into user-facing output
type Renderer struct{}

// NewRenderer creates a renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// WriteMarkdown writes the answer's markdown body
func (r *Renderer) WriteMarkdown(w io.Writer, answer *model.Answer) error {
	_, err := fmt.Fprintln(w, answer.Markdown)
	return err
}

// WriteJSON writes the full answer as indented JSON
func (r *Renderer) WriteJSON(w io.Writer, answer *model.Answer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(answer)
}

// FallbackMarkdown renders a deterministic answer when no LLM provider
// is configured. The structure mirrors the synthesized one so callers
// see the same sections either way.
func FallbackMarkdown(question string, filters model.ScopeFilter, ranking model.Ranking, snippets []model.Snippet) string {
	var b strings.Builder

	b.WriteString("### Summary\n")
	if len(ranking.Top) > 0 {
		top := ranking.Top[0]
		fmt.Fprintf(&b, "The data shows %d hazard themes in scope. The leading concern is %s with %d records (concern score %.2f).\n",
			len(ranking.Top), top.Hazard, top.Count, top.ConcernScore)
	} else if len(snippets) > 0 {
		fmt.Fprintf(&b, "Found %d relevant records for: %s\n", len(snippets), question)
	} else {
		b.WriteString("No matching records were found for this question and scope.\n")
	}

	if !filters.IsZero() {
		b.WriteString("\n### Filters applied\n")
		if filters.Location != "" {
			fmt.Fprintf(&b, "- Location: %s\n", filters.Location)
		}
		if filters.Department != "" {
			fmt.Fprintf(&b, "- Department: %s\n", filters.Department)
		}
		if filters.StartDate != nil {
			fmt.Fprintf(&b, "- From: %s\n", filters.StartDate.Format("2006-01-02"))
		}
		if filters.EndDate != nil {
			fmt.Fprintf(&b, "- To: %s\n", filters.EndDate.Format("2006-01-02"))
		}
	}

	if len(ranking.Top) > 0 {
		b.WriteString("\n### Details\n")
		b.WriteString("| Hazard | Count | Avg severity | Recent | Concern |\n")
		b.WriteString("|---|---|---|---|---|\n")
		for _, h := range ranking.Top {
			fmt.Fprintf(&b, "| %s | %d | %.2f | %d | %.2f |\n",
				h.Hazard, h.Count, h.AvgSeverity, h.Recent, h.ConcernScore)
		}

		b.WriteString("\n### Actions\n")
		for _, step := range ranking.Top[0].Steps {
			fmt.Fprintf(&b, "- %s\n", step)
		}
	}

	citations := collectCitations(ranking, snippets)
	if len(citations) > 0 {
		b.WriteString("\n### Citations\n")
		for _, c := range citations {
			fmt.Fprintf(&b, "- %s\n", c)
		}
	}

	return b.String()
}

// collectCitations gathers unique [Sheet:ID] pairs from the ranking
// samples and retrieved snippets, in encounter order.
func collectCitations(ranking model.Ranking, snippets []model.Snippet) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(sheet model.SheetKind, id string) {
		if id == "" {
			return
		}
		key := fmt.Sprintf("[%s:%s]", sheet, id)
		if !seen[key] {
			seen[key] = true
			out = append(out, key)
		}
	}
	for _, h := range ranking.Top {
		for _, s := range h.Samples {
			add(s.Sheet, s.RecordID)
		}
	}
	for _, s := range snippets {
		add(s.Sheet, s.RecordID)
	}
	return out
}
