package analytics

import (
	"fmt"
	"testing"
	"time"

	"github.com/sheikhmuhammadzain/vehs-analyst/internal/corpus"
	"github.com/sheikhmuhammadzain/vehs-analyst/internal/model"
)

var testNow = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func testEngine() *Engine {
	return NewEngine(180).WithClock(func() time.Time { return testNow })
}

func TestScoreFormulaExactness(t *testing.T) {
	// count=10, avg_sev=2.0, recent=4 -> 10 + 0.75*2.0 + 0.5*4 == 13.5
	got := float64(10) + severityWeight*2.0 + recencyWeight*float64(4)
	if got != 13.5 {
		t.Fatalf("concern formula produced %v, want 13.5", got)
	}

	// Drive the same numbers through the engine: ten hazard rows with
	// C2 severity, four of them recent.
	tbl := corpus.Table{
		Columns: []string{"title", "worst_case_consequence_potential_hazard_id", "occurrence_date", "incident_id"},
	}
	for i := 0; i < 10; i++ {
		date := "2023-01-01"
		if i < 4 {
			date = "2024-05-20"
		}
		tbl.Rows = append(tbl.Rows, corpus.Row{
			"title": "missing PPE",
			"worst_case_consequence_potential_hazard_id": "C2 - Serious",
			"occurrence_date": date,
			"incident_id":     fmt.Sprintf("INC-%03d", i),
		})
	}
	c := corpus.New()
	c.Add(string(model.SheetHazardID), tbl)

	ranking := testEngine().ComputeHazardRanking(c, model.ScopeFilter{}, 6)
	if len(ranking.Top) != 1 {
		t.Fatalf("expected 1 aggregate, got %d", len(ranking.Top))
	}
	top := ranking.Top[0]
	if top.Hazard != model.TagPPECompliance {
		t.Errorf("expected PPE Compliance, got %s", top.Hazard)
	}
	if top.Count != 10 || top.AvgSeverity != 2.0 || top.Recent != 4 {
		t.Errorf("aggregate = count %d, avg %v, recent %d; want 10, 2.0, 4", top.Count, top.AvgSeverity, top.Recent)
	}
	if top.ConcernScore != 13.5 {
		t.Errorf("concern score = %v, want 13.5", top.ConcernScore)
	}
}

func TestCitationCap(t *testing.T) {
	tbl := corpus.Table{Columns: []string{"title", "incident_id"}}
	for i := 0; i < 12; i++ {
		tbl.Rows = append(tbl.Rows, corpus.Row{
			"title":       "permit not signed",
			"incident_id": fmt.Sprintf("INC-%03d", i),
		})
	}
	c := corpus.New()
	c.Add(string(model.SheetHazardID), tbl)

	ranking := testEngine().ComputeHazardRanking(c, model.ScopeFilter{}, 6)
	if len(ranking.Top) != 1 {
		t.Fatalf("expected 1 aggregate, got %d", len(ranking.Top))
	}
	samples := ranking.Top[0].Samples
	if len(samples) != 5 {
		t.Fatalf("expected exactly 5 samples, got %d", len(samples))
	}
	// First-five policy: the earliest records win
	for i, s := range samples {
		want := fmt.Sprintf("INC-%03d", i)
		if s.RecordID != want {
			t.Errorf("sample %d = %s, want %s", i, s.RecordID, want)
		}
	}
}

func TestRankingStabilityOnTies(t *testing.T) {
	// Two themes with identical statistics: the one seen first during
	// the fold must rank first.
	tbl := corpus.Table{
		Columns: []string{"title", "incident_id"},
		Rows: []corpus.Row{
			{"title": "firewater misuse observed", "incident_id": "A-1"},
			{"title": "isolation plan out of date", "incident_id": "B-1"},
		},
	}
	c := corpus.New()
	c.Add(string(model.SheetHazardID), tbl)

	ranking := testEngine().ComputeHazardRanking(c, model.ScopeFilter{}, 6)
	if len(ranking.Top) != 2 {
		t.Fatalf("expected 2 aggregates, got %d", len(ranking.Top))
	}
	if ranking.Top[0].ConcernScore != ranking.Top[1].ConcernScore {
		t.Fatalf("setup error: scores differ (%v vs %v)", ranking.Top[0].ConcernScore, ranking.Top[1].ConcernScore)
	}
	if ranking.Top[0].Hazard != model.TagFirewaterMisuse {
		t.Errorf("tie must keep first-seen order; got %s first", ranking.Top[0].Hazard)
	}
}

func TestEndToEndScenario(t *testing.T) {
	hazard := corpus.Table{
		Columns: []string{"title", "worst_case_consequence_potential_hazard_id", "occurrence_date", "incident_id"},
		Rows: []corpus.Row{
			{"title": "missing PPE", "worst_case_consequence_potential_hazard_id": "C2 - Serious", "occurrence_date": "2023-06-01", "incident_id": "INC-001"},
		},
	}
	audit := corpus.Table{
		Columns: []string{"audit_title", "finding", "worst_case_consequence", "start_date", "audit_id"},
		Rows: []corpus.Row{
			{"audit_title": "permit audit", "finding": "permit not signed", "worst_case_consequence": "C1 - Minor", "start_date": "2023-06-01", "audit_id": "AUD-001"},
		},
	}
	inspection := corpus.Table{
		Columns: []string{"audit_title", "finding", "question", "start_date", "audit_id"},
		Rows: []corpus.Row{
			// Within the 180-day horizon relative to testNow
			{"audit_title": "routine inspection", "finding": "permit not signed", "start_date": "2024-05-01", "audit_id": "INS-001"},
		},
	}
	c := corpus.New()
	c.Add(string(model.SheetHazardID), hazard)
	c.Add(string(model.SheetAuditFindings), audit)
	c.Add(string(model.SheetInspectionFindings), inspection)

	ranking := testEngine().ComputeHazardRanking(c, model.ScopeFilter{}, 6)
	if len(ranking.Top) != 2 {
		t.Fatalf("expected 2 aggregates, got %d: %+v", len(ranking.Top), ranking.Top)
	}

	byTag := map[model.HazardTag]model.RankedHazard{}
	for _, r := range ranking.Top {
		byTag[r.Hazard] = r
	}

	permit, ok := byTag[model.TagPermitManagement]
	if !ok {
		t.Fatal("Permit Management aggregate missing")
	}
	// Audit row has C1 known; inspection row carries the fixed mild 1;
	// both count toward the severity average.
	if permit.Count != 2 || permit.AvgSeverity != 1.0 || permit.Recent != 1 {
		t.Errorf("Permit Management = count %d, avg %v, recent %d; want 2, 1.0, 1", permit.Count, permit.AvgSeverity, permit.Recent)
	}

	ppe, ok := byTag[model.TagPPECompliance]
	if !ok {
		t.Fatal("PPE Compliance aggregate missing")
	}
	if ppe.Count != 1 || ppe.AvgSeverity != 2.0 || ppe.Recent != 0 {
		t.Errorf("PPE Compliance = count %d, avg %v, recent %d; want 1, 2.0, 0", ppe.Count, ppe.AvgSeverity, ppe.Recent)
	}

	// Permit: 2 + 0.75*1.0 + 0.5*1 = 3.25; PPE: 1 + 0.75*2.0 = 2.5
	if ranking.Top[0].Hazard != model.TagPermitManagement {
		t.Errorf("Permit Management should rank first, got %s", ranking.Top[0].Hazard)
	}
	if permit.ConcernScore != 3.25 || ppe.ConcernScore != 2.5 {
		t.Errorf("scores = %v, %v; want 3.25, 2.5", permit.ConcernScore, ppe.ConcernScore)
	}

	// Every entry is enriched with playbook steps
	for _, r := range ranking.Top {
		if len(r.Steps) == 0 {
			t.Errorf("%s has no playbook steps", r.Hazard)
		}
	}
}

func TestMissingSheetGraceful(t *testing.T) {
	hazard := corpus.Table{
		Columns: []string{"title", "incident_id"},
		Rows:    []corpus.Row{{"title": "missing PPE", "incident_id": "INC-001"}},
	}
	c := corpus.New()
	c.Add(string(model.SheetHazardID), hazard)
	// Audit Findings and Inspection Findings entirely absent

	ranking := testEngine().ComputeHazardRanking(c, model.ScopeFilter{}, 6)
	if len(ranking.Top) != 1 {
		t.Fatalf("expected ranking from remaining sheet, got %d entries", len(ranking.Top))
	}
}

func TestEmptyCorpus(t *testing.T) {
	ranking := testEngine().ComputeHazardRanking(corpus.New(), model.ScopeFilter{}, 6)
	if len(ranking.Top) != 0 {
		t.Errorf("empty corpus must yield an empty ranking, got %d entries", len(ranking.Top))
	}
}

func TestZeroSeverityAverageDistinctFromDefault(t *testing.T) {
	// All-zero known severities average to 0; the 1.0 default applies
	// only when there are no observations at all.
	zeroSev := corpus.Table{
		Columns: []string{"title", "worst_case_consequence_potential_hazard_id", "incident_id"},
		Rows: []corpus.Row{
			{"title": "goggles missing", "worst_case_consequence_potential_hazard_id": "C0 - No Ill Effect", "incident_id": "INC-001"},
		},
	}
	noSev := corpus.Table{
		Columns: []string{"title", "incident_id"},
		Rows: []corpus.Row{
			{"title": "firewater tie-in found", "incident_id": "INC-002"},
		},
	}
	c := corpus.New()
	c.Add(string(model.SheetHazardID), zeroSev)
	ranking := testEngine().ComputeHazardRanking(c, model.ScopeFilter{}, 6)
	if ranking.Top[0].AvgSeverity != 0 {
		t.Errorf("all-zero severities must average 0, got %v", ranking.Top[0].AvgSeverity)
	}

	c2 := corpus.New()
	c2.Add(string(model.SheetHazardID), noSev)
	ranking2 := testEngine().ComputeHazardRanking(c2, model.ScopeFilter{}, 6)
	if ranking2.Top[0].AvgSeverity != 1.0 {
		t.Errorf("no observations must default to 1.0, got %v", ranking2.Top[0].AvgSeverity)
	}
}

func TestTopNTruncation(t *testing.T) {
	tbl := corpus.Table{
		Columns: []string{"title", "incident_id"},
		Rows: []corpus.Row{
			{"title": "permit issue", "incident_id": "1"},
			{"title": "ppe issue", "incident_id": "2"},
			{"title": "leak found", "incident_id": "3"},
			{"title": "cable hazard", "incident_id": "4"},
		},
	}
	c := corpus.New()
	c.Add(string(model.SheetHazardID), tbl)
	ranking := testEngine().ComputeHazardRanking(c, model.ScopeFilter{}, 2)
	if len(ranking.Top) != 2 {
		t.Errorf("expected top 2, got %d", len(ranking.Top))
	}
}
