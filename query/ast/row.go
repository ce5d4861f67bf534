package ast

import "sort"

// Row is an insertion ordered set of column values used by INSERT and UPDATE.
type Row struct {
	columns []string
	values  map[string]any
	invalid []any
}

// NewRow creates a row from alternating column/value pairs. A trailing
// column without a value is set to nil. Keys that are not strings are
// kept aside and reported by InvalidKeys.
func NewRow(pairs ...any) *Row {
	r := &Row{values: make(map[string]any)}
	for i := 0; i < len(pairs); i += 2 {
		var value any
		if i+1 < len(pairs) {
			value = pairs[i+1]
		}
		column, ok := pairs[i].(string)
		if !ok {
			r.invalid = append(r.invalid, pairs[i])
			continue
		}
		r.Set(column, value)
	}
	return r
}

// InvalidKeys returns the non-string keys given to NewRow.
func (r *Row) InvalidKeys() []any {
	return r.invalid
}

// RowFromMap creates a row from a map. Keys are sorted so the result is deterministic.
func RowFromMap(m map[string]any) *Row {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	r := &Row{values: make(map[string]any, len(m))}
	for _, k := range keys {
		r.Set(k, m[k])
	}
	return r
}

// Set assigns a value. Reassigning a column keeps its original position.
func (r *Row) Set(column string, value any) *Row {
	if r.values == nil {
		r.values = make(map[string]any)
	}
	if _, ok := r.values[column]; !ok {
		r.columns = append(r.columns, column)
	}
	r.values[column] = value
	return r
}

// Get returns the value stored for column.
func (r *Row) Get(column string) (any, bool) {
	v, ok := r.values[column]
	return v, ok
}

// Columns returns the columns in insertion order.
func (r *Row) Columns() []string {
	out := make([]string, len(r.columns))
	copy(out, r.columns)
	return out
}

// Len returns the number of columns in the row.
func (r *Row) Len() int {
	return len(r.columns)
}

// UnionColumns returns every column used by rows, in first seen order.
func UnionColumns(rows []*Row) []string {
	seen := make(map[string]struct{})
	var columns []string
	for _, row := range rows {
		if row == nil {
			continue
		}
		for _, c := range row.columns {
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			columns = append(columns, c)
		}
	}
	return columns
}
