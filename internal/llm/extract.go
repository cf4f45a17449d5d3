package llm

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/sheikhmuhammadzain/vehs-analyst/internal/model"
)

// rawFilters mirrors the JSON the extraction prompt asks for
type rawFilters struct {
	Location   string `json:"location"`
	Department string `json:"department"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
}

// ExtractScope asks the provider for structured filters hidden in the
// question. Extraction is best-effort by contract: any failure — API
// error, malformed JSON, bogus dates — yields an empty filter rather
// than an error, because an unconstrained analysis is always a valid
// fallback.
func ExtractScope(ctx context.Context, provider Provider, question string) model.ScopeFilter {
	if provider == nil {
		return model.ScopeFilter{}
	}

	resp, err := provider.Complete(ctx, CompletionRequest{
		System:      FilterExtractionSystem,
		Prompt:      question,
		MaxTokens:   200,
		Temperature: 0,
	})
	if err != nil {
		return model.ScopeFilter{}
	}

	return ParseScopeJSON(resp.Text)
}

// ParseScopeJSON extracts a ScopeFilter from completion text that may
// wrap the JSON object in prose or code fences.
func ParseScopeJSON(text string) model.ScopeFilter {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end <= start {
		return model.ScopeFilter{}
	}

	var raw rawFilters
	if err := json.Unmarshal([]byte(text[start:end+1]), &raw); err != nil {
		return model.ScopeFilter{}
	}

	f := model.ScopeFilter{
		Location:   strings.TrimSpace(raw.Location),
		Department: strings.TrimSpace(raw.Department),
	}
	if t, err := time.Parse("2006-01-02", strings.TrimSpace(raw.StartDate)); err == nil {
		f.StartDate = &t
	}
	if t, err := time.Parse("2006-01-02", strings.TrimSpace(raw.EndDate)); err == nil {
		f.EndDate = &t
	}
	return f
}
