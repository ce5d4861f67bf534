// Package database manages named database connections and runs compiled
// statements against them.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Senither/Database-Manager-sub000/internal/debug"
	"github.com/Senither/Database-Manager-sub000/query/builder"
	"github.com/Senither/Database-Manager-sub000/query/result"
)

// Connection is an open database handle with its dialect and table prefix.
type Connection struct {
	name    string
	dialect string
	prefix  string
	engine  string
	db      *sql.DB
}

var _ builder.Connection = (*Connection)(nil)

// NewConnection wraps an existing handle.
func NewConnection(name, dialect string, db *sql.DB, prefix, engine string) *Connection {
	return &Connection{
		name:    name,
		dialect: dialect,
		prefix:  prefix,
		engine:  engine,
		db:      db,
	}
}

// Name returns the configured connection name.
func (c *Connection) Name() string { return c.name }

// Dialect returns the dialect tag of the connection.
func (c *Connection) Dialect() string { return c.dialect }

// Prefix returns the table prefix of the connection.
func (c *Connection) Prefix() string { return c.prefix }

// Engine returns the default storage engine of the connection.
func (c *Connection) Engine() string { return c.engine }

// DB returns the underlying handle.
func (c *Connection) DB() *sql.DB { return c.db }

// Exec executes a statement and returns the number of affected rows.
func (c *Connection) Exec(ctx context.Context, query string) (int64, error) {
	if c.db == nil {
		return 0, fmt.Errorf("connection %q is closed", c.name)
	}

	start := time.Now()
	res, err := c.db.ExecContext(ctx, query)
	c.log(query, start, err)
	if err != nil {
		return 0, fmt.Errorf("failed to execute statement: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected, nil
}

// Query runs a statement and collects every returned row.
func (c *Connection) Query(ctx context.Context, query string) (*result.Collection, error) {
	if c.db == nil {
		return nil, fmt.Errorf("connection %q is closed", c.name)
	}

	start := time.Now()
	rows, err := c.db.QueryContext(ctx, query)
	c.log(query, start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to run query: %w", err)
	}
	defer rows.Close()

	return result.Scan(rows)
}

// Ping checks if the database connection is alive.
func (c *Connection) Ping(ctx context.Context) error {
	if c.db == nil {
		return fmt.Errorf("connection %q is closed", c.name)
	}
	if err := c.db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}

// Close closes the underlying handle.
func (c *Connection) Close() error {
	if c.db == nil {
		return nil
	}
	err := c.db.Close()
	c.db = nil
	return err
}

func (c *Connection) log(query string, start time.Time, err error) {
	if err != nil {
		debug.Warn("statement failed", "connection", c.name, "sql", query, "duration", time.Since(start), "error", err)
		return
	}
	debug.Debug("executed statement", "connection", c.name, "sql", query, "duration", time.Since(start))
}
