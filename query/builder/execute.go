package builder

import (
	"context"
	"errors"
	"fmt"

	"github.com/Senither/Database-Manager-sub000/query/ast"
	"github.com/Senither/Database-Manager-sub000/query/result"
	"github.com/Senither/Database-Manager-sub000/schema"
)

// ErrNoRows is returned by First when the query matched nothing.
var ErrNoRows = errors.New("no rows in result set")

func (b *QueryBuilder) compile() (Connection, string, error) {
	if b.err != nil {
		return nil, "", b.err
	}
	conn, err := b.resolve()
	if err != nil {
		return nil, "", err
	}
	sql, err := b.ToSQLFor(conn)
	if err != nil {
		return nil, "", err
	}
	return conn, sql, nil
}

// Get runs the SELECT and returns every row.
func (b *QueryBuilder) Get(ctx context.Context) (*result.Collection, error) {
	b.stmt.Kind = ast.KindSelect
	conn, sql, err := b.compile()
	if err != nil {
		return nil, err
	}
	rows, err := conn.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to select from %s: %w", b.stmt.Table, err)
	}
	return rows, nil
}

// First runs the SELECT limited to one row and returns it.
func (b *QueryBuilder) First(ctx context.Context) (*result.Row, error) {
	rows, err := b.Take(1).Get(ctx)
	if err != nil {
		return nil, err
	}
	if rows.IsEmpty() {
		return nil, ErrNoRows
	}
	return rows.First(), nil
}

// Exec compiles and runs the statement as built, returning the affected row count.
func (b *QueryBuilder) Exec(ctx context.Context) (int64, error) {
	conn, sql, err := b.compile()
	if err != nil {
		return 0, err
	}
	affected, err := conn.Exec(ctx, sql)
	if err != nil {
		return 0, fmt.Errorf("failed to %s %s: %w", b.stmt.Kind, b.stmt.Table, err)
	}
	return affected, nil
}

// Insert inserts rows.
func (b *QueryBuilder) Insert(ctx context.Context, rows ...*ast.Row) (int64, error) {
	return b.ForInsert(rows...).Exec(ctx)
}

// InsertMaps inserts each map as a row.
func (b *QueryBuilder) InsertMaps(ctx context.Context, rows ...map[string]any) (int64, error) {
	return b.ForInsertMaps(rows...).Exec(ctx)
}

// Update sets the values of row on every matching row.
func (b *QueryBuilder) Update(ctx context.Context, row *ast.Row) (int64, error) {
	return b.ForUpdate(row).Exec(ctx)
}

// UpdateMap sets the values of m on every matching row.
func (b *QueryBuilder) UpdateMap(ctx context.Context, m map[string]any) (int64, error) {
	return b.ForUpdateMap(m).Exec(ctx)
}

// Delete deletes every matching row.
func (b *QueryBuilder) Delete(ctx context.Context) (int64, error) {
	return b.ForDelete().Exec(ctx)
}

// Create creates the table defined by fn.
func (b *QueryBuilder) Create(ctx context.Context, fn func(table *schema.Blueprint)) error {
	_, err := b.ForCreate(fn).Exec(ctx)
	return err
}

// CreateIfNotExists creates the table defined by fn unless it already exists.
func (b *QueryBuilder) CreateIfNotExists(ctx context.Context, fn func(table *schema.Blueprint)) error {
	_, err := b.ForCreateIfNotExists(fn).Exec(ctx)
	return err
}
