// Package builder provides a fluent query builder API.
package builder

import (
	"strings"

	"github.com/Senither/Database-Manager-sub000/internal/debug"
	"github.com/Senither/Database-Manager-sub000/query/ast"
	"github.com/Senither/Database-Manager-sub000/query/sqlgen"
	"github.com/Senither/Database-Manager-sub000/schema"
)

// QueryBuilder builds a single statement. It is not safe for concurrent use.
type QueryBuilder struct {
	stmt       *ast.Statement
	resolver   Resolver
	connection string
	err        error
}

// New creates a builder that resolves its connection through resolver.
// resolver may be nil when only ToSQLFor is used.
func New(resolver Resolver) *QueryBuilder {
	return &QueryBuilder{
		stmt:     ast.NewStatement(""),
		resolver: resolver,
	}
}

// Table creates a builder for table without a resolver.
func Table(name string) *QueryBuilder {
	return New(nil).From(name)
}

// Statement returns the statement being built.
func (b *QueryBuilder) Statement() *ast.Statement {
	return b.stmt
}

// Err returns the first error recorded while building.
func (b *QueryBuilder) Err() error {
	return b.err
}

func (b *QueryBuilder) fail(err error) *QueryBuilder {
	if b.err == nil {
		b.err = err
	}
	return b
}

func (b *QueryBuilder) failf(kind error, op, format string, args ...any) *QueryBuilder {
	return b.fail(sqlgen.NewError(kind, op, format, args...))
}

// Connection selects the named connection used by ToSQL and the execution helpers.
func (b *QueryBuilder) Connection(name string) *QueryBuilder {
	b.connection = name
	return b
}

// From sets the table the statement operates on.
func (b *QueryBuilder) From(table string) *QueryBuilder {
	b.stmt.Table = strings.TrimSpace(table)
	return b
}

// Select adds columns to the select list. Selecting "*" clears the list.
func (b *QueryBuilder) Select(columns ...string) *QueryBuilder {
	b.stmt.Kind = ast.KindSelect
	b.stmt.AddColumns(columns...)
	return b
}

// Take limits the number of rows. Negative values are treated as zero.
func (b *QueryBuilder) Take(n int) *QueryBuilder {
	b.stmt.Take = max(n, 0)
	return b
}

// Skip skips the first n rows. Negative values are treated as zero.
func (b *QueryBuilder) Skip(n int) *QueryBuilder {
	b.stmt.Skip = max(n, 0)
	return b
}

// Limit is an alias of Take.
func (b *QueryBuilder) Limit(n int) *QueryBuilder { return b.Take(n) }

// Offset is an alias of Skip.
func (b *QueryBuilder) Offset(n int) *QueryBuilder { return b.Skip(n) }

// RemoveTake unsets the row limit.
func (b *QueryBuilder) RemoveTake() *QueryBuilder {
	b.stmt.Take = -1
	return b
}

// RemoveSkip unsets the row offset.
func (b *QueryBuilder) RemoveSkip() *QueryBuilder {
	b.stmt.Skip = -1
	return b
}

// OrderBy orders by column, ascending unless a direction is given.
func (b *QueryBuilder) OrderBy(column string, direction ...string) *QueryBuilder {
	dir := ast.Asc
	if len(direction) > 0 {
		parsed, ok := ast.ParseDirection(direction[0])
		if !ok {
			return b.failf(sqlgen.ErrGrammar, "order by", "unknown direction %q", direction[0])
		}
		dir = parsed
	}
	b.stmt.Orders = append(b.stmt.Orders, ast.Order{Column: column, Direction: dir})
	return b
}

// OrderByDesc orders by column descending.
func (b *QueryBuilder) OrderByDesc(column string) *QueryBuilder {
	return b.OrderBy(column, string(ast.Desc))
}

// OrderByRaw adds an ORDER BY expression emitted verbatim.
func (b *QueryBuilder) OrderByRaw(expression string) *QueryBuilder {
	b.stmt.Orders = append(b.stmt.Orders, ast.Order{Column: expression, Raw: true})
	return b
}

// Latest orders by column descending, created_at by default.
func (b *QueryBuilder) Latest(column ...string) *QueryBuilder {
	return b.OrderByDesc(firstOr(column, "created_at"))
}

// Oldest orders by column ascending, created_at by default.
func (b *QueryBuilder) Oldest(column ...string) *QueryBuilder {
	return b.OrderBy(firstOr(column, "created_at"))
}

// InRandomOrder orders the rows randomly.
func (b *QueryBuilder) InRandomOrder() *QueryBuilder {
	b.stmt.Orders = append(b.stmt.Orders, ast.Order{Random: true})
	return b
}

// IgnoreTablePrefix disables table prefixing for this statement.
func (b *QueryBuilder) IgnoreTablePrefix() *QueryBuilder {
	b.stmt.IgnoreTablePrefix = true
	return b
}

// ForInsert turns the statement into an INSERT of rows.
func (b *QueryBuilder) ForInsert(rows ...*ast.Row) *QueryBuilder {
	b.stmt.Kind = ast.KindInsert
	b.stmt.Rows = append(b.stmt.Rows, rows...)
	return b
}

// ForInsertMaps turns the statement into an INSERT of maps. Columns of
// each map are sorted by name.
func (b *QueryBuilder) ForInsertMaps(rows ...map[string]any) *QueryBuilder {
	for _, m := range rows {
		b.ForInsert(ast.RowFromMap(m))
	}
	b.stmt.Kind = ast.KindInsert
	return b
}

// ForUpdate turns the statement into an UPDATE setting row.
func (b *QueryBuilder) ForUpdate(row *ast.Row) *QueryBuilder {
	b.stmt.Kind = ast.KindUpdate
	b.stmt.Rows = append(b.stmt.Rows, row)
	return b
}

// ForUpdateMap turns the statement into an UPDATE setting the values of m.
func (b *QueryBuilder) ForUpdateMap(m map[string]any) *QueryBuilder {
	return b.ForUpdate(ast.RowFromMap(m))
}

// ForDelete turns the statement into a DELETE.
func (b *QueryBuilder) ForDelete() *QueryBuilder {
	b.stmt.Kind = ast.KindDelete
	return b
}

// ForCreate turns the statement into a CREATE TABLE defined by fn.
func (b *QueryBuilder) ForCreate(fn func(table *schema.Blueprint)) *QueryBuilder {
	bp := schema.NewBlueprint(b.stmt.Table)
	if fn != nil {
		fn(bp)
	}
	b.stmt.Kind = ast.KindCreate
	b.stmt.Blueprint = bp
	return b
}

// ForCreateIfNotExists is ForCreate with IF NOT EXISTS.
func (b *QueryBuilder) ForCreateIfNotExists(fn func(table *schema.Blueprint)) *QueryBuilder {
	b.stmt.IfNotExists = true
	return b.ForCreate(fn)
}

// ToSQL compiles the statement for the builder's connection.
func (b *QueryBuilder) ToSQL() (string, error) {
	if b.err != nil {
		return "", b.err
	}
	conn, err := b.resolve()
	if err != nil {
		return "", err
	}
	return b.ToSQLFor(conn)
}

// ToSQLFor compiles the statement for an explicit target.
func (b *QueryBuilder) ToSQLFor(target Target) (string, error) {
	if b.err != nil {
		return "", b.err
	}
	if target == nil {
		return "", sqlgen.NewError(sqlgen.ErrConfiguration, "compile", "no target to compile for")
	}
	d, err := sqlgen.ParseDialect(target.Dialect())
	if err != nil {
		return "", err
	}

	sql, err := sqlgen.Compile(d, b.stmt, sqlgen.Options{
		Prefix:        target.Prefix(),
		DefaultEngine: target.Engine(),
	})
	if err != nil {
		return "", err
	}

	debug.Debug("compiled statement", "kind", b.stmt.Kind, "dialect", d, "sql", sql)
	return sql, nil
}

func firstOr(values []string, fallback string) string {
	if len(values) > 0 && values[0] != "" {
		return values[0]
	}
	return fallback
}
