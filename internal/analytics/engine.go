package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/sheikhmuhammadzain/vehs-analyst/internal/corpus"
	"github.com/sheikhmuhammadzain/vehs-analyst/internal/model"
)

// Scoring weights: frequency counts full, severity at 0.75, recency at
// 0.5. This is the core ranking policy and is reproduced exactly.
const (
	severityWeight = 0.75
	recencyWeight  = 0.5
	maxSamples     = 5
)

// Engine computes the ranked hazard list for one query. It holds no
// state between invocations; every call performs a fresh
// filter -> normalize -> aggregate -> rank pass over the corpus.
type Engine struct {
	recency time.Duration
	now     func() time.Time
}

// NewEngine creates an engine with the given recency horizon in days
func NewEngine(recencyDays int) *Engine {
	if recencyDays <= 0 {
		recencyDays = 180
	}
	return &Engine{
		recency: time.Duration(recencyDays) * 24 * time.Hour,
		now:     time.Now,
	}
}

// WithClock overrides the time source. Test hook.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// ComputeHazardRanking folds the filtered, normalized records of all
// three source sheets into per-theme aggregates and returns the top N
// by concern score. An empty or partially missing corpus yields a
// smaller-but-valid ranking, never an error.
func (e *Engine) ComputeHazardRanking(c *corpus.Corpus, f model.ScopeFilter, topN int) model.Ranking {
	if topN <= 0 {
		topN = 6
	}
	horizon := e.now().Add(-e.recency)

	byTag := make(map[model.HazardTag]*model.HazardAggregate)
	var order []model.HazardTag // first-seen order, preserved through ties

	fold := func(rec model.NormalizedRecord) {
		for _, tag := range rec.Tags {
			agg, ok := byTag[tag]
			if !ok {
				agg = &model.HazardAggregate{Tag: tag}
				byTag[tag] = agg
				order = append(order, tag)
			}
			agg.Count++
			if rec.Severity != model.SeverityUnknown {
				agg.SeveritySum += rec.Severity
				agg.SeverityN++
			}
			if rec.HasDate && !rec.Date.Before(horizon) {
				agg.Recent++
			}
			// First-five policy for citations, not most-relevant-five
			if rec.RecordID != "" && len(agg.Samples) < maxSamples {
				agg.Samples = append(agg.Samples, model.Citation{Sheet: rec.Sheet, RecordID: rec.RecordID})
			}
		}
	}

	for _, kind := range []model.SheetKind{model.SheetHazardID, model.SheetAuditFindings, model.SheetInspectionFindings} {
		t, ok := c.Sheet(string(kind))
		if !ok {
			continue // absent sheet contributes nothing
		}
		for _, rec := range Normalize(kind, ApplyScope(t, f)) {
			fold(rec)
		}
	}

	ranked := make([]model.RankedHazard, 0, len(order))
	for _, tag := range order {
		agg := byTag[tag]
		// No severity observations defaults to mild (1.0); a tag whose
		// known severities are all zero averages to 0. Distinct paths.
		avgSev := 1.0
		if agg.SeverityN > 0 {
			avgSev = float64(agg.SeveritySum) / float64(agg.SeverityN)
		}
		concern := float64(agg.Count) + severityWeight*avgSev + recencyWeight*float64(agg.Recent)
		ranked = append(ranked, model.RankedHazard{
			Hazard:       agg.Tag,
			Count:        agg.Count,
			AvgSeverity:  round2(avgSev),
			Recent:       agg.Recent,
			ConcernScore: round2(concern),
			Samples:      agg.Samples,
			Steps:        Steps(agg.Tag),
		})
	}

	// Stable sort keeps first-seen order for equal scores
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].ConcernScore > ranked[j].ConcernScore
	})

	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return model.Ranking{Top: ranked}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
