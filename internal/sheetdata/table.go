package sheetdata

import "strings"

// Table is one sheet range: the first row is the header, the rest is data.
// Column lookup goes through normalized headers so classification code never
// touches raw spellings.
type Table struct {
	headers []string
	folded  []string
	Rows    [][]string
}

// NewTable builds a Table from raw sheet values. Nil or header-only input
// produces an empty table; that is not an error (first day of a period the
// tabs simply do not exist yet).
func NewTable(values [][]string) Table {
	if len(values) == 0 {
		return Table{}
	}
	t := Table{
		headers: make([]string, len(values[0])),
		folded:  make([]string, len(values[0])),
	}
	for i, h := range values[0] {
		t.headers[i] = strings.TrimSpace(h)
		t.folded[i] = NormalizeHeader(h)
	}
	if len(values) > 1 {
		t.Rows = values[1:]
	}
	return t
}

// Empty reports whether the table has no data rows.
func (t Table) Empty() bool { return len(t.Rows) == 0 }

// Col returns the index of the first column whose normalized header equals
// one of the synonyms, tried in priority order. -1 when none match.
func (t Table) Col(synonyms ...string) int {
	for _, want := range synonyms {
		w := NormalizeHeader(want)
		for i, h := range t.folded {
			if h == w {
				return i
			}
		}
	}
	return -1
}

// ColContains returns the first column whose normalized header contains one
// of the fragments, tried in priority order. Used for loosely named columns
// like the payroll net total ("Líquido", "Total Líquido", "Net").
func (t Table) ColContains(fragments ...string) int {
	for _, want := range fragments {
		w := NormalizeHeader(want)
		if w == "" {
			continue
		}
		for i, h := range t.folded {
			if strings.Contains(h, w) {
				return i
			}
		}
	}
	return -1
}

// Cell returns the trimmed cell at idx, or "" when the column is absent or
// the row is short. Missing columns never fail a row.
func (t Table) Cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
