package analytics

import (
	"strings"

	"github.com/sheikhmuhammadzain/vehs-analyst/internal/corpus"
	"github.com/sheikhmuhammadzain/vehs-analyst/internal/model"
)

// sheetSchema declares the optional columns one source sheet contributes.
// Every field may be absent from the underlying table; normalization
// degrades to empty text, missing date, or unknown severity.
type sheetSchema struct {
	kind        model.SheetKind
	severityCol string // empty means the sheet carries no severity field
	fixedSev    int    // used when severityCol is empty
	textCols    []string
	dateCol     string
	idCol       string
}

var sheetSchemas = map[model.SheetKind]sheetSchema{
	model.SheetHazardID: {
		kind:        model.SheetHazardID,
		severityCol: "worst_case_consequence_potential_hazard_id",
		textCols:    []string{"title", "description", "violation_type_hazard_id"},
		dateCol:     "occurrence_date",
		idCol:       "incident_id",
	},
	model.SheetAuditFindings: {
		kind:        model.SheetAuditFindings,
		severityCol: "worst_case_consequence",
		textCols:    []string{"audit_title", "finding"},
		dateCol:     "start_date",
		idCol:       "audit_id",
	},
	// Inspection Findings carries no severity field; every record is
	// treated as mild (1) by policy, not by accident.
	model.SheetInspectionFindings: {
		kind:     model.SheetInspectionFindings,
		fixedSev: 1,
		textCols: []string{"audit_title", "finding", "question"},
		dateCol:  "start_date",
		idCol:    "audit_id",
	},
}

// Normalize turns one sheet's filtered rows into the uniform record
// shape the aggregation engine folds over.
func Normalize(kind model.SheetKind, t corpus.Table) []model.NormalizedRecord {
	schema, ok := sheetSchemas[kind]
	if !ok || t.Empty() {
		return nil
	}

	var presentText []string
	for _, col := range schema.textCols {
		if t.HasColumn(col) {
			presentText = append(presentText, col)
		}
	}

	records := make([]model.NormalizedRecord, 0, len(t.Rows))
	for _, row := range t.Rows {
		rec := model.NormalizedRecord{
			Sheet:    schema.kind,
			Severity: model.SeverityUnknown,
			RecordID: row.Get(schema.idCol),
			Location: row.Get("location"),
		}

		if schema.severityCol != "" {
			if sev, known := ToSeverity(row.Get(schema.severityCol)); known {
				rec.Severity = sev
			}
		} else {
			rec.Severity = schema.fixedSev
		}

		var parts []string
		for _, col := range presentText {
			if v := row.Get(col); v != "" && !strings.EqualFold(v, "nan") {
				parts = append(parts, v)
			}
		}
		rec.Tags = TagText(strings.Join(parts, " "))

		if d, ok := corpus.ParseDate(row.Get(schema.dateCol)); ok {
			rec.Date = d
			rec.HasDate = true
		}

		records = append(records, rec)
	}
	return records
}
