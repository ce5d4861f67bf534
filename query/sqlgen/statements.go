package sqlgen

import (
	"strconv"
	"strings"

	"github.com/Senither/Database-Manager-sub000/query/ast"
)

// compileOrders compiles the ORDER BY clause. Orders without a direction
// are skipped unless they are raw or random.
func (g *grammar) compileOrders(orders []ast.Order) (string, error) {
	var parts []string
	for _, o := range orders {
		switch {
		case o.Random:
			parts = append(parts, g.dialect.random)
		case o.Raw:
			if raw := strings.TrimSpace(o.Column); raw != "" {
				parts = append(parts, raw)
			}
		case o.Direction == ast.DirectionNone:
			continue
		default:
			dir, ok := ast.ParseDirection(string(o.Direction))
			if !ok {
				return "", grammarError("compile order", "unknown direction %q", o.Direction)
			}
			parts = append(parts, g.wrap(o.Column)+" "+string(dir))
		}
	}
	if len(parts) == 0 {
		return "", nil
	}
	return "ORDER BY " + strings.Join(parts, ", "), nil
}

// compileLimit emits LIMIT only for a positive take, and OFFSET only inside it.
func (g *grammar) compileLimit(take, skip int) string {
	if take <= 0 {
		return ""
	}
	limit := "LIMIT " + strconv.Itoa(take)
	if skip > 0 {
		limit += " OFFSET " + strconv.Itoa(skip)
	}
	return limit
}

// statement joins the non empty parts with spaces and terminates the statement.
func statement(parts ...string) string {
	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ") + ";"
}

func compileSelect(g *grammar, st *ast.Statement) (string, error) {
	joins, err := g.compileJoins(st.Joins)
	if err != nil {
		return "", err
	}
	wheres, err := g.compileWheres(st.Wheres)
	if err != nil {
		return "", err
	}
	orders, err := g.compileOrders(st.Orders)
	if err != nil {
		return "", err
	}

	columns := "*"
	if !st.SelectsAll() {
		columns = g.columnize(st.Columns)
	}

	return statement(
		"SELECT", columns,
		"FROM", g.wrapTable(st.Table),
		joins,
		wheres,
		orders,
		g.compileLimit(st.Take, st.Skip),
	), nil
}

// checkColumns rejects blank or non-string column names in INSERT and UPDATE rows.
func checkColumns(op string, rows []*ast.Row, columns []string) error {
	for _, row := range rows {
		if row == nil {
			continue
		}
		if keys := row.InvalidKeys(); len(keys) > 0 {
			return configurationError(op, "column name %v (%T) is not a string", keys[0], keys[0])
		}
	}
	for i, column := range columns {
		if strings.TrimSpace(column) == "" {
			return configurationError(op, "column %d has no name", i+1)
		}
	}
	return nil
}

func compileInsert(g *grammar, st *ast.Statement) (string, error) {
	columns := ast.UnionColumns(st.Rows)
	if err := checkColumns("compile insert", st.Rows, columns); err != nil {
		return "", err
	}
	if len(columns) == 0 {
		return "", configurationError("compile insert", "no rows given for %s", st.Table)
	}

	rows := make([]string, 0, len(st.Rows))
	for _, row := range st.Rows {
		if row == nil {
			continue
		}
		values := make([]string, len(columns))
		for i, column := range columns {
			v, ok := row.Get(column)
			if !ok {
				values[i] = "NULL"
				continue
			}
			formatted, err := g.insertValue(v)
			if err != nil {
				return "", err
			}
			values[i] = formatted
		}
		rows = append(rows, "("+strings.Join(values, ", ")+")")
	}

	return statement(
		"INSERT INTO", g.wrapTable(st.Table),
		"("+g.columnize(columns)+")",
		"VALUES", strings.Join(rows, ", "),
	), nil
}

func compileUpdate(g *grammar, st *ast.Statement) (string, error) {
	var rows []*ast.Row
	for _, row := range st.Rows {
		if row != nil && row.Len() > 0 {
			rows = append(rows, row)
		}
	}
	switch {
	case len(rows) == 0:
		return "", configurationError("compile update", "no values given for %s", st.Table)
	case len(rows) > 1:
		return "", grammarError("compile update", "updating %d rows in one statement is not supported", len(rows))
	}

	row := rows[0]
	if err := checkColumns("compile update", rows, row.Columns()); err != nil {
		return "", err
	}
	sets := make([]string, 0, row.Len())
	for _, column := range row.Columns() {
		v, _ := row.Get(column)
		formatted, err := g.insertValue(v)
		if err != nil {
			return "", err
		}
		sets = append(sets, g.wrap(column)+" = "+formatted)
	}

	wheres, err := g.compileWheres(st.Wheres)
	if err != nil {
		return "", err
	}

	return statement(
		"UPDATE", g.wrapTable(st.Table),
		"SET", strings.Join(sets, ", "),
		wheres,
	), nil
}

func compileDelete(g *grammar, st *ast.Statement) (string, error) {
	wheres, err := g.compileWheres(st.Wheres)
	if err != nil {
		return "", err
	}
	return statement("DELETE FROM", g.wrapTable(st.Table), wheres), nil
}
