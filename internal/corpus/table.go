package corpus

import (
	"strings"
	"time"
)

// Row maps a column name to its cell value. Cells are kept as strings;
// typed interpretation (dates, severities) happens at the point of use
// because the upstream column set is not guaranteed stable.
type Row map[string]string

// Get returns the cell for a column, empty string when the column is
// absent or the cell is blank.
func (r Row) Get(col string) string {
	return strings.TrimSpace(r[col])
}

// Table is one sheet's worth of rows with its column list preserved in
// workbook order.
type Table struct {
	Columns []string
	Rows    []Row
}

// Empty reports whether the table has no rows
func (t Table) Empty() bool {
	return len(t.Rows) == 0
}

// HasColumn reports whether the sheet carries the named column
func (t Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// FindColumn returns the first column, in hint priority order, whose
// name contains one of the hints (case-insensitive). Earlier hints win
// over later ones regardless of column order.
func (t Table) FindColumn(hints ...string) (string, bool) {
	for _, hint := range hints {
		h := strings.ToLower(hint)
		for _, c := range t.Columns {
			if strings.Contains(strings.ToLower(c), h) {
				return c, true
			}
		}
	}
	return "", false
}

// dateLayouts covers the formats the ETL emits plus common spreadsheet
// renderings of dates.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02",
	"01/02/2006",
	"02-Jan-2006",
	"2006/01/02",
	"Jan 2, 2006",
}

// ParseDate attempts to parse a cell as a timestamp. Unparseable or
// empty cells return ok=false and are treated as missing, never as an
// error.
func ParseDate(cell string) (time.Time, bool) {
	s := strings.TrimSpace(cell)
	if s == "" || strings.EqualFold(s, "nan") || strings.EqualFold(s, "nat") || strings.EqualFold(s, "none") {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
