package analytics

import (
	"strings"

	"github.com/sheikhmuhammadzain/vehs-analyst/internal/corpus"
	"github.com/sheikhmuhammadzain/vehs-analyst/internal/model"
)

// dateColumnHints is the priority order for picking the column a date
// range applies to. Earlier hints win.
var dateColumnHints = []string{"occurrence", "reported", "start", "entered"}

// ApplyScope returns the subset of rows satisfying every constraint
// present in the filter. Constraints whose column does not exist are
// vacuously satisfied: the filter silently degrades instead of erroring.
// The function is pure; applying the same filter twice yields the same
// subset.
func ApplyScope(t corpus.Table, f model.ScopeFilter) corpus.Table {
	if f.IsZero() {
		return t
	}

	locActive := f.Location != "" && t.HasColumn("location")
	deptActive := f.Department != "" && t.HasColumn("department")

	dateCol, haveDateCol := t.FindColumn(dateColumnHints...)
	dateActive := (f.StartDate != nil || f.EndDate != nil) && haveDateCol

	out := corpus.Table{Columns: t.Columns}
	for _, row := range t.Rows {
		if locActive && !containsFold(row.Get("location"), f.Location) {
			continue
		}
		if deptActive && !containsFold(row.Get("department"), f.Department) {
			continue
		}
		if dateActive {
			d, ok := corpus.ParseDate(row.Get(dateCol))
			// Unparseable cells cannot satisfy an active bound
			if !ok {
				continue
			}
			if f.StartDate != nil && d.Before(*f.StartDate) {
				continue
			}
			if f.EndDate != nil && d.After(*f.EndDate) {
				continue
			}
		}
		out.Rows = append(out.Rows, row)
	}
	return out
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
