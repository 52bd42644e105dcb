package model

// Table is an in-memory tabular dataset. Columns keep the names and order found in
// the source; every row has exactly len(Columns) cells holding the original text.
type Table struct {
	Columns []string
	Rows    [][]string
}

// NewTable returns an empty table with the given header.
func NewTable(columns ...string) *Table {
	return &Table{Columns: columns, Rows: [][]string{}}
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// IsEmpty reports whether the table has no data rows.
func (t *Table) IsEmpty() bool {
	return t.Len() == 0
}

// Index returns the position of the named column, or -1.
func (t *Table) Index(column string) int {
	if t == nil {
		return -1
	}
	for i, c := range t.Columns {
		if c == column {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the named column is present.
func (t *Table) HasColumn(column string) bool {
	return t.Index(column) >= 0
}

// Value returns the cell at row/column, or "" when the column does not exist.
func (t *Table) Value(row int, column string) string {
	idx := t.Index(column)
	if idx < 0 || row < 0 || row >= len(t.Rows) || idx >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][idx]
}

// Select returns a new table restricted to the given columns in the given order.
// Columns missing from t are filled with empty cells.
func (t *Table) Select(columns ...string) *Table {
	out := &Table{
		Columns: append([]string(nil), columns...),
		Rows:    make([][]string, 0, t.Len()),
	}

	positions := make([]int, len(columns))
	for i, c := range columns {
		positions[i] = t.Index(c)
	}

	for _, row := range t.Rows {
		selected := make([]string, len(columns))
		for i, pos := range positions {
			if pos >= 0 && pos < len(row) {
				selected[i] = row[pos]
			}
		}
		out.Rows = append(out.Rows, selected)
	}
	return out
}

// Head returns a copy of the first n rows.
func (t *Table) Head(n int) *Table {
	if n > t.Len() {
		n = t.Len()
	}
	out := &Table{Columns: append([]string(nil), t.Columns...), Rows: make([][]string, 0, n)}
	for _, row := range t.Rows[:n] {
		out.Rows = append(out.Rows, append([]string(nil), row...))
	}
	return out
}
