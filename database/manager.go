package database

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/Senither/Database-Manager-sub000/config"
	"github.com/Senither/Database-Manager-sub000/internal/debug"
	"github.com/Senither/Database-Manager-sub000/query/builder"
)

// Opener opens a database handle, sql.Open by default.
type Opener func(driver, dsn string) (*sql.DB, error)

// Option configures a Manager.
type Option func(*Manager)

// WithOpener replaces the function used to open handles.
func WithOpener(open Opener) Option {
	return func(m *Manager) {
		m.open = open
	}
}

// Manager resolves named connections from the configuration, opening them
// on first use. It is safe for concurrent use.
type Manager struct {
	cfg  *config.Config
	open Opener

	mu          sync.Mutex
	connections map[string]*Connection
}

var _ builder.Resolver = (*Manager)(nil)

// NewManager creates a manager for cfg.
func NewManager(cfg *config.Config, opts ...Option) *Manager {
	if cfg == nil {
		cfg = config.Default()
	}
	m := &Manager{
		cfg:         cfg,
		open:        sql.Open,
		connections: make(map[string]*Connection),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Config returns the manager configuration.
func (m *Manager) Config() *config.Config {
	return m.cfg
}

// Register adds an already open connection under its name.
func (m *Manager) Register(conn *Connection) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connections[conn.Name()] = conn
}

// Open returns the named connection, opening it if needed. The empty
// name is the default connection.
func (m *Manager) Open(name string) (*Connection, error) {
	if name == "" {
		name = m.cfg.DefaultConnection
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if conn, ok := m.connections[name]; ok {
		return conn, nil
	}

	name, settings, err := m.cfg.Connection(name)
	if err != nil {
		return nil, err
	}
	ds, err := settingsFor(settings)
	if err != nil {
		return nil, fmt.Errorf("connection %q: %w", name, err)
	}

	db, err := m.open(ds.driver, ds.dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open connection %q: %w", name, err)
	}
	if ds.driver == "sqlite3" {
		// SQLite allows a single writer.
		db.SetMaxOpenConns(1)
	}

	conn := NewConnection(name, ds.dialect, db, m.cfg.PrefixFor(name), m.cfg.EngineFor(name))
	m.connections[name] = conn
	debug.Debug("opened connection", "connection", name, "driver", ds.driver)
	return conn, nil
}

// Connection implements builder.Resolver.
func (m *Manager) Connection(name string) (builder.Connection, error) {
	conn, err := m.Open(name)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// Table starts a query on table using the default connection.
func (m *Manager) Table(table string) *builder.QueryBuilder {
	return builder.New(m).From(table)
}

// On starts a query on table using the named connection.
func (m *Manager) On(connection, table string) *builder.QueryBuilder {
	return builder.New(m).Connection(connection).From(table)
}

// Schema returns the schema helpers for the named connection, the default one when omitted.
func (m *Manager) Schema(connection ...string) *Schema {
	name := ""
	if len(connection) > 0 {
		name = connection[0]
	}
	return &Schema{manager: m, connection: name}
}

// Close closes every open connection.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var errs []error
	for name, conn := range m.connections {
		if err := conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection %q: %w", name, err))
		}
		delete(m.connections, name)
	}
	return errors.Join(errs...)
}
