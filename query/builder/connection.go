package builder

import (
	"context"

	"github.com/Senither/Database-Manager-sub000/query/result"
	"github.com/Senither/Database-Manager-sub000/query/sqlgen"
)

// Target describes what a statement is compiled for.
type Target interface {
	// Dialect returns the dialect tag, e.g. "mysql" or "sqlite".
	Dialect() string
	Prefix() string
	Engine() string
}

// Connection is a Target that can run compiled statements.
type Connection interface {
	Target
	Exec(ctx context.Context, query string) (int64, error)
	Query(ctx context.Context, query string) (*result.Collection, error)
}

// Resolver looks up connections by name. The empty name is the default connection.
type Resolver interface {
	Connection(name string) (Connection, error)
}

// Static is a Target with fixed settings.
type Static struct {
	DialectName   string
	TablePrefix   string
	DefaultEngine string
}

func (s Static) Dialect() string { return s.DialectName }
func (s Static) Prefix() string  { return s.TablePrefix }
func (s Static) Engine() string  { return s.DefaultEngine }

func (b *QueryBuilder) resolve() (Connection, error) {
	if b.resolver == nil {
		return nil, sqlgen.NewError(sqlgen.ErrConfiguration, "resolve connection", "builder has no connection resolver")
	}
	conn, err := b.resolver.Connection(b.connection)
	if err != nil {
		return nil, sqlgen.WrapError(sqlgen.ErrConfiguration, err, "resolve connection", "connection %q", b.connection)
	}
	if conn == nil {
		return nil, sqlgen.NewError(sqlgen.ErrConfiguration, "resolve connection", "connection %q is not available", b.connection)
	}
	return conn, nil
}
