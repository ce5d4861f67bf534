// Package result holds query results as generic rows of named columns.
package result

import (
	"database/sql"
	"fmt"
	"strconv"
	"time"
)

// Row is a single result row.
type Row struct {
	columns []string
	values  map[string]any
}

// NewRow creates a row from parallel column and value slices.
func NewRow(columns []string, values []any) *Row {
	r := &Row{columns: columns, values: make(map[string]any, len(columns))}
	for i, c := range columns {
		if i < len(values) {
			r.values[c] = values[i]
		}
	}
	return r
}

// Columns returns the column names in result order.
func (r *Row) Columns() []string {
	return r.columns
}

// Has reports whether the row contains column.
func (r *Row) Has(column string) bool {
	_, ok := r.values[column]
	return ok
}

// Get returns the raw value of column.
func (r *Row) Get(column string) any {
	return r.values[column]
}

// String returns the value of column as a string.
func (r *Row) String(column string) string {
	switch v := r.values[column].(type) {
	case nil:
		return ""
	case string:
		return v
	case time.Time:
		return v.Format("2006-01-02 15:04:05")
	default:
		return fmt.Sprint(v)
	}
}

// Int64 returns the value of column as an integer.
func (r *Row) Int64(column string) (int64, error) {
	switch v := r.values[column].(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case float64:
		return int64(v), nil
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	case string:
		return strconv.ParseInt(v, 10, 64)
	case nil:
		return 0, fmt.Errorf("column %q is null", column)
	default:
		return 0, fmt.Errorf("column %q is not numeric: %T", column, v)
	}
}

// Float64 returns the value of column as a float.
func (r *Row) Float64(column string) (float64, error) {
	switch v := r.values[column].(type) {
	case float64:
		return v, nil
	case int64:
		return float64(v), nil
	case string:
		return strconv.ParseFloat(v, 64)
	case nil:
		return 0, fmt.Errorf("column %q is null", column)
	default:
		return 0, fmt.Errorf("column %q is not numeric: %T", column, v)
	}
}

// Bool returns the value of column as a boolean. Numeric values are true when non zero.
func (r *Row) Bool(column string) bool {
	switch v := r.values[column].(type) {
	case bool:
		return v
	case int64:
		return v != 0
	case string:
		b, err := strconv.ParseBool(v)
		return err == nil && b
	}
	return false
}

// Map copies the row into a map.
func (r *Row) Map() map[string]any {
	out := make(map[string]any, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out
}

// Collection is an ordered list of rows sharing the same columns.
type Collection struct {
	Columns []string
	Rows    []*Row
}

// Len returns the number of rows.
func (c *Collection) Len() int {
	return len(c.Rows)
}

// IsEmpty reports whether the collection has no rows.
func (c *Collection) IsEmpty() bool {
	return len(c.Rows) == 0
}

// First returns the first row, or nil when empty.
func (c *Collection) First() *Row {
	if c.IsEmpty() {
		return nil
	}
	return c.Rows[0]
}

// Pluck returns the values of column from every row.
func (c *Collection) Pluck(column string) []any {
	out := make([]any, 0, len(c.Rows))
	for _, r := range c.Rows {
		out = append(out, r.Get(column))
	}
	return out
}

// Scan reads every row from rows into a collection. Byte slices are
// converted to strings. rows is not closed.
func Scan(rows *sql.Rows) (*Collection, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	c := &Collection{Columns: columns}
	for rows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		c.Rows = append(c.Rows, NewRow(columns, values))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}
	return c, nil
}
