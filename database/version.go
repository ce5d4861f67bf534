package database

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/hashicorp/go-version"

	"github.com/Senither/Database-Manager-sub000/config"
)

// ErrUnsupportedVersion is returned when the server version does not satisfy a constraint.
var ErrUnsupportedVersion = errors.New("unsupported server version")

var versionPattern = regexp.MustCompile(`^\d+(\.\d+)*`)

// ParseServerVersion extracts the leading numeric version from a server
// version string such as "8.0.34-0ubuntu0.22.04.1" or "14.5 (Debian)".
func ParseServerVersion(raw string) (*version.Version, error) {
	numeric := versionPattern.FindString(strings.TrimSpace(raw))
	if numeric == "" {
		return nil, fmt.Errorf("failed to parse server version %q", raw)
	}
	return version.NewVersion(numeric)
}

// ServerVersion asks the server for its version.
func (c *Connection) ServerVersion(ctx context.Context) (*version.Version, error) {
	var query string
	switch config.NormalizeDriver(c.dialect) {
	case "mysql":
		query = "SELECT VERSION();"
	case "sqlite":
		query = "SELECT sqlite_version();"
	case "postgres":
		query = "SHOW server_version;"
	default:
		return nil, fmt.Errorf("unsupported dialect: %s", c.dialect)
	}

	rows, err := c.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	row := rows.First()
	if row == nil || len(rows.Columns) == 0 {
		return nil, fmt.Errorf("server returned no version")
	}
	return ParseServerVersion(row.String(rows.Columns[0]))
}

// RequireVersion checks the server version against a constraint such as ">= 5.7".
func (c *Connection) RequireVersion(ctx context.Context, constraint string) (*version.Version, error) {
	constraints, err := version.NewConstraint(constraint)
	if err != nil {
		return nil, fmt.Errorf("invalid version constraint %q: %w", constraint, err)
	}
	v, err := c.ServerVersion(ctx)
	if err != nil {
		return nil, err
	}
	if !constraints.Check(v) {
		return v, fmt.Errorf("%w: %s does not satisfy %s", ErrUnsupportedVersion, v, constraint)
	}
	return v, nil
}
