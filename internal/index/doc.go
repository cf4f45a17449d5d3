package index

import (
	"fmt"
	"strings"

	"github.com/sheikhmuhammadzain/vehs-analyst/internal/corpus"
)

// Document is one indexed row with the metadata needed for citations
type Document struct {
	Sheet      string `json:"source_sheet"`
	RecordID   string `json:"record_id"`
	Text       string `json:"text"`
	Location   string `json:"location,omitempty"`
	Department string `json:"department,omitempty"`
	Date       string `json:"date,omitempty"`
}

const maxDocChars = 800

// idColumnHints pick the citation ID for a row; the first non-empty
// hinted column wins, falling back to a synthetic "<sheet>-<rowidx>".
var idColumnHints = []string{"incident_id", "audit_id", "hazard_id", "record_id", "finding_id", "id"}

var docDateHints = []string{"occurrence", "reported", "start", "entered", "date"}

// BuildDocuments serializes every row of every sheet into a compact
// "key: value | key: value" document for general QA retrieval.
func BuildDocuments(c *corpus.Corpus) []Document {
	var docs []Document
	for _, name := range c.SheetNames() {
		t, ok := c.Sheet(name)
		if !ok || t.Empty() {
			continue
		}

		var idCols []string
		for _, hint := range idColumnHints {
			for _, col := range t.Columns {
				if strings.Contains(strings.ToLower(col), hint) {
					idCols = append(idCols, col)
				}
			}
		}
		dateCol, _ := t.FindColumn(docDateHints...)

		for i, row := range t.Rows {
			text := serializeRow(t.Columns, row)
			if text == "" {
				continue
			}

			rid := ""
			for _, col := range idCols {
				if v := row.Get(col); v != "" {
					rid = v
					break
				}
			}
			if rid == "" {
				rid = fmt.Sprintf("%s-%d", name, i)
			}

			doc := Document{
				Sheet:      name,
				RecordID:   rid,
				Text:       text,
				Location:   row.Get("location"),
				Department: row.Get("department"),
			}
			if dateCol != "" {
				doc.Date = row.Get(dateCol)
			}
			docs = append(docs, doc)
		}
	}
	return docs
}

// serializeRow dumps non-empty cells as "col: value" pairs joined by
// " | ", capped at maxDocChars to keep embeddings focused.
func serializeRow(columns []string, row corpus.Row) string {
	var parts []string
	total := 0
	for _, col := range columns {
		v := row.Get(col)
		if v == "" || strings.EqualFold(v, "nan") {
			continue
		}
		part := col + ": " + v
		parts = append(parts, part)
		total += len(part)
		if total > maxDocChars {
			break
		}
	}
	return strings.Join(parts, " | ")
}
