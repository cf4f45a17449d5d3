package corpus

import (
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"
)

// Load reads every sheet of the workbook into an immutable Corpus.
// The first row of each sheet is treated as the header; rows shorter
// than the header are padded with missing cells.
//
// A missing workbook is not fatal: the process must still start and
// answer with empty results, so Load warns once and returns an empty
// corpus (the caller sees ok=false).
func Load(path string) (*Corpus, bool, error) {
	if _, err := os.Stat(path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: workbook %s not found. Analytics will return empty results until it is present.\n", path)
		return New(), false, nil
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, false, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	c := New()
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil || len(rows) == 0 {
			continue
		}

		header := rows[0]
		table := Table{Columns: make([]string, 0, len(header))}
		for _, col := range header {
			table.Columns = append(table.Columns, col)
		}

		for _, raw := range rows[1:] {
			row := make(Row, len(header))
			for i, col := range table.Columns {
				if col == "" {
					continue
				}
				if i < len(raw) {
					row[col] = raw[i]
				}
			}
			table.Rows = append(table.Rows, row)
		}
		c.Add(name, table)
	}

	return c, true, nil
}
