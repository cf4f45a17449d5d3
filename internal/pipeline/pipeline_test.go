package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sheikhmuhammadzain/vehs-analyst/internal/corpus"
	"github.com/sheikhmuhammadzain/vehs-analyst/internal/model"
)

func testCorpus() *corpus.Corpus {
	c := corpus.New()
	c.Add(string(model.SheetHazardID), corpus.Table{
		Columns: []string{"incident_id", "title", "worst_case_consequence_potential_hazard_id", "occurrence_date", "location"},
		Rows: []corpus.Row{
			{"incident_id": "INC-1", "title": "permit not signed before work", "worst_case_consequence_potential_hazard_id": "C2 - Serious", "occurrence_date": "2024-01-10", "location": "HTDC"},
			{"incident_id": "INC-2", "title": "oil leak near pump", "worst_case_consequence_potential_hazard_id": "C3 - Severe", "occurrence_date": "2024-02-01", "location": "PVC Plant"},
			{"incident_id": "INC-3", "title": "worker without gloves and helmet", "worst_case_consequence_potential_hazard_id": "C1", "occurrence_date": "2024-02-15", "location": "HTDC"},
		},
	})
	return c
}

func testPipeline() *Pipeline {
	cfg := model.DefaultConfig()
	return NewPipeline(cfg, testCorpus(), nil)
}

func TestIsHazardQuery(t *testing.T) {
	positives := []string{
		"What are the top hazards?",
		"How do we PREVENT incidents?",
		"show ppe violations",
		"any LOPC events in HTDC?",
	}
	for _, q := range positives {
		if !IsHazardQuery(q) {
			t.Errorf("expected hazard query: %q", q)
		}
	}
	if IsHazardQuery("how many audits ran last year?") {
		t.Error("audit count question should not be a hazard query")
	}
}

func TestAsk_DeterministicFallback(t *testing.T) {
	p := testPipeline()
	answer, err := p.Ask(context.Background(), "what are the top hazards?", model.ScopeFilter{})
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}

	if len(answer.Ranking.Top) == 0 {
		t.Fatal("hazard question must produce a ranking")
	}
	if answer.Provider != "" || answer.Model != "" {
		t.Error("no provider configured, provider fields must stay empty")
	}
	if answer.ThreadID == "" {
		t.Error("answer must carry a thread id")
	}
	if !strings.Contains(answer.Markdown, "### Summary") {
		t.Error("fallback markdown missing Summary section")
	}
	if !strings.Contains(answer.Markdown, "[Hazard ID:INC-1]") {
		t.Errorf("fallback markdown missing citations:\n%s", answer.Markdown)
	}
}

func TestAsk_ExplicitFiltersApplied(t *testing.T) {
	p := testPipeline()
	answer, err := p.Ask(context.Background(), "top hazards", model.ScopeFilter{Location: "HTDC"})
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}

	if answer.Filters.Location != "HTDC" {
		t.Errorf("filters not carried through: %+v", answer.Filters)
	}
	for _, h := range answer.Ranking.Top {
		for _, s := range h.Samples {
			if s.RecordID == "INC-2" {
				t.Error("PVC Plant record leaked through HTDC filter")
			}
		}
	}
}

func TestAsk_GeneralQuestionSkipsRanking(t *testing.T) {
	p := testPipeline()
	answer, err := p.Ask(context.Background(), "how many audits ran last year?", model.ScopeFilter{})
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if len(answer.Ranking.Top) != 0 {
		t.Errorf("general question produced a ranking: %+v", answer.Ranking.Top)
	}
}

func TestHazards_TopNOverride(t *testing.T) {
	p := testPipeline()
	ranking := p.Hazards(model.ScopeFilter{}, 1)
	if len(ranking.Top) != 1 {
		t.Errorf("expected 1 ranked hazard, got %d", len(ranking.Top))
	}
}

func TestRenderer_JSONRoundTrip(t *testing.T) {
	p := testPipeline()
	answer, err := p.Ask(context.Background(), "top hazards", model.ScopeFilter{})
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}

	var buf bytes.Buffer
	if err := p.Renderer().WriteJSON(&buf, answer); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	var decoded model.Answer
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Question != answer.Question || len(decoded.Ranking.Top) != len(answer.Ranking.Top) {
		t.Error("JSON output lost answer fields")
	}
}

func TestFallbackMarkdown_EmptyScope(t *testing.T) {
	md := FallbackMarkdown("anything?", model.ScopeFilter{}, model.Ranking{}, nil)
	if !strings.Contains(md, "No matching records") {
		t.Errorf("empty result should say so:\n%s", md)
	}
}
