package tabular

import (
	"fmt"
	"sort"
)

// Row is a single table row keyed by column name. Cells hold decoded
// JSON values; a missing cell and a nil cell are equivalent.
type Row = map[string]any

// Table is an ordered-column collection of rows. Transformations that
// reshape the table (Select, Rename, Drop, Filter, joins) return a new
// table; AddColumn and SortBy work in place and return the receiver for
// chaining.
type Table struct {
	columns []string
	rows    []Row
}

// New creates an empty table with the given column order.
func New(columns ...string) *Table {
	return &Table{columns: append([]string(nil), columns...)}
}

// FromObjects builds a table from decoded JSON objects, keeping only
// the declared columns. Fields absent from an object become nil cells.
func FromObjects(columns []string, objects []Object) *Table {
	t := New(columns...)
	for _, obj := range objects {
		row := make(Row, len(columns))
		for _, col := range columns {
			row[col] = obj[col]
		}
		t.rows = append(t.rows, row)
	}
	return t
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Columns returns a copy of the column order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

// HasColumn reports whether the table carries the named column.
func (t *Table) HasColumn(name string) bool {
	for _, col := range t.columns {
		if col == name {
			return true
		}
	}
	return false
}

// Rows returns the underlying row slice. Callers must treat it as
// read-only; use the table transformations to reshape data.
func (t *Table) Rows() []Row {
	return t.rows
}

// Row returns the i-th row.
func (t *Table) Row(i int) Row {
	return t.rows[i]
}

// Append adds rows to the table. Rows are expected to use the declared
// columns; extra keys are carried but invisible to column operations.
func (t *Table) Append(rows ...Row) *Table {
	t.rows = append(t.rows, rows...)
	return t
}

// AddColumn computes a cell per row. A new column is appended to the
// column order; an existing column keeps its position and has its
// values replaced.
func (t *Table) AddColumn(name string, fn func(Row) any) *Table {
	if !t.HasColumn(name) {
		t.columns = append(t.columns, name)
	}
	for _, row := range t.rows {
		row[name] = fn(row)
	}
	return t
}

// Select returns a new table holding only the named columns, in the
// given order. Selecting an unknown column panics: column sets are
// fixed per upstream endpoint, so this is a programming error.
func (t *Table) Select(columns ...string) *Table {
	for _, col := range columns {
		if !t.HasColumn(col) {
			panic(fmt.Sprintf("tabular: select of unknown column %q", col))
		}
	}
	out := New(columns...)
	for _, row := range t.rows {
		selected := make(Row, len(columns))
		for _, col := range columns {
			selected[col] = row[col]
		}
		out.rows = append(out.rows, selected)
	}
	return out
}

// Rename returns a new table with columns renamed per the mapping.
// Column order is preserved; unmapped columns keep their names.
func (t *Table) Rename(mapping map[string]string) *Table {
	columns := make([]string, len(t.columns))
	for i, col := range t.columns {
		if renamed, ok := mapping[col]; ok {
			columns[i] = renamed
		} else {
			columns[i] = col
		}
	}

	out := New(columns...)
	for _, row := range t.rows {
		renamed := make(Row, len(row))
		for i, col := range t.columns {
			renamed[columns[i]] = row[col]
		}
		out.rows = append(out.rows, renamed)
	}
	return out
}

// Drop returns a new table without the named columns.
func (t *Table) Drop(columns ...string) *Table {
	dropped := make(map[string]bool, len(columns))
	for _, col := range columns {
		dropped[col] = true
	}

	kept := make([]string, 0, len(t.columns))
	for _, col := range t.columns {
		if !dropped[col] {
			kept = append(kept, col)
		}
	}
	return t.Select(kept...)
}

// Filter returns a new table holding only the rows the predicate keeps.
func (t *Table) Filter(keep func(Row) bool) *Table {
	out := New(t.columns...)
	for _, row := range t.rows {
		if keep(row) {
			out.rows = append(out.rows, row)
		}
	}
	return out
}

// SortBy sorts rows ascending by the named columns, in place. The sort
// is stable and null cells order last, matching the source system's
// view ordering.
func (t *Table) SortBy(columns ...string) *Table {
	sort.SliceStable(t.rows, func(i, j int) bool {
		for _, col := range columns {
			if c := Compare(t.rows[i][col], t.rows[j][col]); c != 0 {
				return c < 0
			}
		}
		return false
	})
	return t
}

// Distinct returns the distinct non-null values of a column in first
// appearance order, rendered as strings.
func (t *Table) Distinct(column string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, row := range t.rows {
		if IsNull(row[column]) {
			continue
		}
		v := ToString(row[column])
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
