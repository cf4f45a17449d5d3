package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sheikhmuhammadzain/vehs-analyst/internal/corpus"
	"github.com/sheikhmuhammadzain/vehs-analyst/internal/model"
	"github.com/sheikhmuhammadzain/vehs-analyst/internal/pipeline"
)

func testServer() *Server {
	cfg := model.DefaultConfig()
	cfg.Server.DevMode = false

	c := corpus.New()
	c.Add(string(model.SheetHazardID), corpus.Table{
		Columns: []string{"incident_id", "title", "worst_case_consequence_potential_hazard_id", "occurrence_date", "location"},
		Rows: []corpus.Row{
			{"incident_id": "INC-1", "title": "expired permit on compressor job", "worst_case_consequence_potential_hazard_id": "C2", "occurrence_date": "2024-03-01", "location": "HTDC"},
			{"incident_id": "INC-2", "title": "flange leak during startup", "worst_case_consequence_potential_hazard_id": "C3", "occurrence_date": "2024-03-10", "location": "PVC Plant"},
		},
	})

	return NewServer(cfg, pipeline.NewPipeline(cfg, c, nil))
}

func TestHealthEndpoint(t *testing.T) {
	s := testServer()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	s.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("status = %q", resp.Status)
	}
}

func TestHazardsEndpoint(t *testing.T) {
	s := testServer()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/hazards?location=HTDC", nil)
	s.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", w.Code, w.Body.String())
	}
	var ranking model.Ranking
	if err := json.Unmarshal(w.Body.Bytes(), &ranking); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(ranking.Top) == 0 {
		t.Fatal("expected a non-empty ranking")
	}
	for _, h := range ranking.Top {
		for _, sample := range h.Samples {
			if sample.RecordID == "INC-2" {
				t.Error("location filter not applied")
			}
		}
	}
}

func TestHazardsEndpoint_BadDate(t *testing.T) {
	s := testServer()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/hazards?start_date=March+2024", nil)
	s.Router().ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestAskEndpoint(t *testing.T) {
	s := testServer()
	w := httptest.NewRecorder()
	body := strings.NewReader(`{"question": "what are the top hazards?"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/ask", body)
	req.Header.Set("Content-Type", "application/json")
	s.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", w.Code, w.Body.String())
	}
	var answer model.Answer
	if err := json.Unmarshal(w.Body.Bytes(), &answer); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if answer.Markdown == "" {
		t.Error("answer missing markdown body")
	}
	if answer.ThreadID == "" {
		t.Error("answer missing thread id")
	}
	if len(answer.Ranking.Top) == 0 {
		t.Error("hazard question should include a ranking")
	}
}

func TestAskEndpoint_MissingQuestion(t *testing.T) {
	s := testServer()
	for _, body := range []string{`{}`, `{"question": "   "}`, `not json`} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/ask", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		s.Router().ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want 400", body, w.Code)
		}
	}
}

func TestCORSPreflight(t *testing.T) {
	s := testServer()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/ask", nil)
	s.Router().ServeHTTP(w, req)

	if w.Code != 204 {
		t.Errorf("preflight status = %d, want 204", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS header")
	}
}
