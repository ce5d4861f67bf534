package sqlgen

import (
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Senither/Database-Manager-sub000/schema"
)

var (
	numericPattern = regexp.MustCompile(`^[-+]?[0-9]+(\.[0-9]+)?$`)
	aliasPattern   = regexp.MustCompile(`(?i)^(.+?)\s+as\s+(.+)$`)
)

const timestampLayout = "2006-01-02 15:04:05"

// grammar holds the formatting state shared by every compiler of a dialect.
type grammar struct {
	dialect *dialect
	prefix  string
	engine  string
}

func newGrammar(d *dialect, opts Options, ignorePrefix bool) *grammar {
	g := &grammar{dialect: d, engine: opts.DefaultEngine}
	if !opts.IgnorePrefix && !ignorePrefix {
		g.prefix = opts.Prefix
	}
	return g
}

// wrapTable formats a table name, applying the prefix to the last segment.
func (g *grammar) wrapTable(table string) string {
	table = strings.TrimSpace(table)
	if i := strings.LastIndex(table, "."); i > 0 {
		return g.wrapSegments(table[:i]) + "." + QuoteIdentifier(g.prefix+table[i+1:])
	}
	return QuoteIdentifier(g.prefix + table)
}

func (g *grammar) wrapSegments(path string) string {
	segments := strings.Split(path, ".")
	for i, s := range segments {
		segments[i] = QuoteIdentifier(s)
	}
	return strings.Join(segments, ".")
}

// wrap formats a field reference: `field`, `table`.`field`, `table`.* or
// `field` AS 'alias'.
func (g *grammar) wrap(field string) string {
	field = strings.TrimSpace(field)
	if field == "*" {
		return field
	}
	if m := aliasPattern.FindStringSubmatch(field); m != nil {
		return g.wrap(m[1]) + " AS " + g.dialect.quote(strings.TrimSpace(m[2]))
	}
	if i := strings.LastIndex(field, "."); i > 0 {
		table, column := field[:i], field[i+1:]
		if column == "*" {
			return g.wrapTable(table) + ".*"
		}
		return g.wrapTable(table) + "." + QuoteIdentifier(column)
	}
	return QuoteIdentifier(field)
}

func (g *grammar) columnize(columns []string) string {
	if len(columns) == 0 {
		return "*"
	}
	wrapped := make([]string, len(columns))
	for i, c := range columns {
		wrapped[i] = g.wrap(c)
	}
	return strings.Join(wrapped, ", ")
}

// literal formats a string value: numeric looking strings are left bare.
func (g *grammar) literal(s string) string {
	if numericPattern.MatchString(s) {
		return s
	}
	return g.dialect.quote(s)
}

// value formats a single scalar as an SQL literal.
func (g *grammar) value(v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "NULL", nil
	case schema.RawSQLAction:
		return string(val), nil
	case string:
		return g.literal(val), nil
	case []byte:
		return g.dialect.quote(string(val)), nil
	case bool:
		if val {
			return "1", nil
		}
		return "0", nil
	case int:
		return strconv.FormatInt(int64(val), 10), nil
	case int8:
		return strconv.FormatInt(int64(val), 10), nil
	case int16:
		return strconv.FormatInt(int64(val), 10), nil
	case int32:
		return strconv.FormatInt(int64(val), 10), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case uint:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint64:
		return strconv.FormatUint(val, 10), nil
	case float32:
		return g.float(float64(val), 32)
	case float64:
		return g.float(val, 64)
	case time.Time:
		return g.dialect.quote(val.Format(timestampLayout)), nil
	case fmt.Stringer:
		return g.literal(val.String()), nil
	}

	// Named basic types such as `type Status string`.
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return g.literal(rv.String()), nil
	case reflect.Bool:
		return g.value(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), nil
	case reflect.Float32, reflect.Float64:
		return g.float(rv.Float(), 64)
	case reflect.Pointer:
		if rv.IsNil() {
			return "NULL", nil
		}
		return g.value(rv.Elem().Interface())
	}
	return "", valueError("format value", "cannot format value of type %T", v)
}

func (g *grammar) float(f float64, bits int) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", valueError("format value", "cannot format non-finite number %v", f)
	}
	return strconv.FormatFloat(f, 'f', -1, bits), nil
}

// insertValue formats a value for INSERT and UPDATE lists, where
// boolean looking strings become 1 and 0.
func (g *grammar) insertValue(v any) (string, error) {
	if s, ok := v.(string); ok {
		switch {
		case strings.EqualFold(s, "true"):
			return "1", nil
		case strings.EqualFold(s, "false"):
			return "0", nil
		}
	}
	return g.value(v)
}

// defaultValue formats a column default. Everything but NULL and raw
// expressions is emitted as a quoted string.
func (g *grammar) defaultValue(v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "NULL", nil
	case schema.RawSQLAction:
		return string(val), nil
	case string:
		if strings.EqualFold(val, "null") {
			return "NULL", nil
		}
		return g.dialect.quote(val), nil
	case time.Time:
		return g.dialect.quote(val.Format(timestampLayout)), nil
	case []byte:
		return g.dialect.quote(string(val)), nil
	case fmt.Stringer:
		return g.dialect.quote(val.String()), nil
	}
	formatted, err := g.value(v)
	if err != nil {
		return "", err
	}
	return g.dialect.quote(formatted), nil
}

// listValues expands a slice or array into its formatted elements.
func (g *grammar) listValues(v any) ([]string, bool, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return nil, false, nil
	}
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false, nil
	}
	if _, isBytes := v.([]byte); isBytes {
		return nil, false, nil
	}
	out := make([]string, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		formatted, err := g.value(rv.Index(i).Interface())
		if err != nil {
			return nil, true, err
		}
		out[i] = formatted
	}
	return out, true, nil
}

// mysqlQuote quotes a string literal using backslash escapes.
func mysqlQuote(s string) string {
	return "'" + mysqlEscaper.Replace(s) + "'"
}

var mysqlEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// standardQuote quotes a string literal by doubling single quotes.
func standardQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
