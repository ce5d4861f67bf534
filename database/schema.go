package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/Senither/Database-Manager-sub000/query/ast"
	"github.com/Senither/Database-Manager-sub000/query/builder"
	"github.com/Senither/Database-Manager-sub000/query/sqlgen"
	"github.com/Senither/Database-Manager-sub000/schema"
)

// Schema creates, drops and inspects tables on one connection.
type Schema struct {
	manager    *Manager
	connection string
}

// Create creates table with the fields defined by fn.
func (s *Schema) Create(ctx context.Context, table string, fn func(table *schema.Blueprint)) error {
	return s.manager.On(s.connection, table).Create(ctx, fn)
}

// CreateIfNotExists creates table unless it already exists.
func (s *Schema) CreateIfNotExists(ctx context.Context, table string, fn func(table *schema.Blueprint)) error {
	return s.manager.On(s.connection, table).CreateIfNotExists(ctx, fn)
}

// Drop drops table.
func (s *Schema) Drop(ctx context.Context, table string) error {
	return s.drop(ctx, table, false)
}

// DropIfExists drops table if it exists.
func (s *Schema) DropIfExists(ctx context.Context, table string) error {
	return s.drop(ctx, table, true)
}

func (s *Schema) drop(ctx context.Context, table string, ifExists bool) error {
	conn, d, err := s.resolve()
	if err != nil {
		return err
	}
	sql, err := sqlgen.CompileDrop(d, table, ifExists, sqlgen.Options{Prefix: conn.Prefix()})
	if err != nil {
		return err
	}
	if _, err := conn.Exec(ctx, sql); err != nil {
		return fmt.Errorf("failed to drop %s: %w", table, err)
	}
	return nil
}

// HasTable reports whether table exists. The connection prefix is applied.
func (s *Schema) HasTable(ctx context.Context, table string) (bool, error) {
	conn, d, err := s.resolve()
	if err != nil {
		return false, err
	}

	var q *builder.QueryBuilder
	switch d {
	case sqlgen.MySQL:
		q = builder.Table("information_schema.tables").
			Select("table_name").
			Where("table_schema", ast.Raw("DATABASE()")).
			Where("table_name", conn.Prefix()+table)
	case sqlgen.SQLite:
		q = builder.Table("sqlite_master").
			Select("name").
			Where("type", "table").
			Where("name", conn.Prefix()+table)
	}

	sql, err := q.IgnoreTablePrefix().ToSQLFor(conn)
	if err != nil {
		return false, err
	}
	rows, err := conn.Query(ctx, sql)
	if err != nil {
		return false, fmt.Errorf("failed to look up table %s: %w", table, err)
	}
	return !rows.IsEmpty(), nil
}

// HasColumn reports whether table has column.
func (s *Schema) HasColumn(ctx context.Context, table, column string) (bool, error) {
	conn, d, err := s.resolve()
	if err != nil {
		return false, err
	}

	if d == sqlgen.SQLite {
		rows, err := conn.Query(ctx, "PRAGMA table_info("+sqlgen.QuoteIdentifier(conn.Prefix()+table)+");")
		if err != nil {
			return false, fmt.Errorf("failed to look up columns of %s: %w", table, err)
		}
		for _, row := range rows.Rows {
			if strings.EqualFold(row.String("name"), column) {
				return true, nil
			}
		}
		return false, nil
	}

	sql, err := builder.Table("information_schema.columns").
		IgnoreTablePrefix().
		Select("column_name").
		Where("table_schema", ast.Raw("DATABASE()")).
		Where("table_name", conn.Prefix()+table).
		Where("column_name", column).
		ToSQLFor(conn)
	if err != nil {
		return false, err
	}
	rows, err := conn.Query(ctx, sql)
	if err != nil {
		return false, fmt.Errorf("failed to look up columns of %s: %w", table, err)
	}
	return !rows.IsEmpty(), nil
}

func (s *Schema) resolve() (*Connection, sqlgen.Dialect, error) {
	conn, err := s.manager.Open(s.connection)
	if err != nil {
		return nil, "", err
	}
	d, err := sqlgen.ParseDialect(conn.Dialect())
	if err != nil {
		return nil, "", err
	}
	return conn, d, nil
}
