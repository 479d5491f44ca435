package tabular

import (
	"fmt"
	"strings"
)

// joinKind selects row-survival semantics for a join.
type joinKind int

const (
	leftJoin joinKind = iota
	innerJoin
)

// keySeparator is an unlikely byte sequence between composite key parts.
const keySeparator = "\x1f"

// LeftJoin hash-joins the receiver (left) to another table on composite
// keys, keeping every left row. leftOn and rightOn pair up positionally.
// Unmatched left rows carry nil in all right-side columns; a left row
// matching several right rows produces one output row per match, in
// right-table order.
//
// Column naming follows the left-wins policy: a right column whose name
// collides with a left column is carried under name+suffix. A key pair
// with identical names on both sides collapses to the single left
// column; differently named key columns are both kept.
func (t *Table) LeftJoin(right *Table, leftOn, rightOn []string, suffix string) *Table {
	return t.join(right, leftOn, rightOn, suffix, leftJoin)
}

// InnerJoin is LeftJoin with inner semantics: left rows without a match
// are dropped.
func (t *Table) InnerJoin(right *Table, leftOn, rightOn []string, suffix string) *Table {
	return t.join(right, leftOn, rightOn, suffix, innerJoin)
}

func (t *Table) join(right *Table, leftOn, rightOn []string, suffix string, kind joinKind) *Table {
	if len(leftOn) != len(rightOn) || len(leftOn) == 0 {
		panic("tabular: join key lists must be non-empty and of equal length")
	}
	for _, col := range leftOn {
		if !t.HasColumn(col) {
			panic(fmt.Sprintf("tabular: left join key %q not in table", col))
		}
	}
	for _, col := range rightOn {
		if !right.HasColumn(col) {
			panic(fmt.Sprintf("tabular: right join key %q not in table", col))
		}
	}

	// Right key columns with the same name as their left counterpart
	// collapse into the left column and are omitted from the output.
	omitted := make(map[string]bool)
	for i, col := range rightOn {
		if col == leftOn[i] {
			omitted[col] = true
		}
	}

	leftCols := make(map[string]bool, len(t.columns))
	for _, col := range t.columns {
		leftCols[col] = true
	}

	// Output name per carried right column, suffixing collisions.
	rightNames := make(map[string]string, len(right.columns))
	columns := t.Columns()
	for _, col := range right.columns {
		if omitted[col] {
			continue
		}
		name := col
		if leftCols[col] {
			name = col + suffix
		}
		rightNames[col] = name
		columns = append(columns, name)
	}

	// Index right rows by composite key. Rows with a null key component
	// never match, mirroring relational null semantics.
	index := make(map[string][]Row, right.Len())
	for _, row := range right.rows {
		key, ok := compositeKey(row, rightOn)
		if !ok {
			continue
		}
		index[key] = append(index[key], row)
	}

	out := New(columns...)
	for _, leftRow := range t.rows {
		var matches []Row
		if key, ok := compositeKey(leftRow, leftOn); ok {
			matches = index[key]
		}

		if len(matches) == 0 {
			if kind == innerJoin {
				continue
			}
			merged := make(Row, len(columns))
			for _, col := range t.columns {
				merged[col] = leftRow[col]
			}
			for _, name := range rightNames {
				merged[name] = nil
			}
			out.rows = append(out.rows, merged)
			continue
		}

		for _, rightRow := range matches {
			merged := make(Row, len(columns))
			for _, col := range t.columns {
				merged[col] = leftRow[col]
			}
			for col, name := range rightNames {
				merged[name] = rightRow[col]
			}
			out.rows = append(out.rows, merged)
		}
	}
	return out
}

// compositeKey builds the hash key for a row over the given columns.
// The second return is false when any component is null: null keys do
// not participate in matching.
func compositeKey(row Row, columns []string) (string, bool) {
	parts := make([]string, len(columns))
	for i, col := range columns {
		v := row[col]
		if IsNull(v) {
			return "", false
		}
		parts[i] = keyComponent(v)
	}
	return strings.Join(parts, keySeparator), true
}

// keyComponent canonicalizes a key value so numerically equal values
// match regardless of their decoded Go type.
func keyComponent(v any) string {
	if n, ok := isNumeric(v); ok {
		return "#" + n.String()
	}
	return ToString(v)
}
