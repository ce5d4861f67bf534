package database

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/Senither/Database-Manager-sub000/config"
)

// driverSettings is what sql.Open needs for a configured connection.
type driverSettings struct {
	driver  string
	dialect string
	dsn     string
}

func settingsFor(conn config.Connection) (driverSettings, error) {
	switch config.NormalizeDriver(conn.Driver) {
	case "mysql":
		dsn, err := mysqlDSN(conn)
		if err != nil {
			return driverSettings{}, err
		}
		return driverSettings{driver: "mysql", dialect: "mysql", dsn: dsn}, nil
	case "sqlite":
		return driverSettings{driver: "sqlite3", dialect: "sqlite", dsn: sqliteDSN(conn)}, nil
	case "postgres":
		dsn, err := postgresDSN(conn)
		if err != nil {
			return driverSettings{}, err
		}
		return driverSettings{driver: "postgres", dialect: "postgres", dsn: dsn}, nil
	}
	return driverSettings{}, fmt.Errorf("unsupported driver: %s", conn.Driver)
}

func mysqlDSN(conn config.Connection) (string, error) {
	if conn.DSN != "" {
		cfg, err := mysql.ParseDSN(conn.DSN)
		if err != nil {
			return "", fmt.Errorf("failed to parse mysql dsn: %w", err)
		}
		cfg.ParseTime = true
		return cfg.FormatDSN(), nil
	}

	port := conn.Port
	if port == 0 {
		port = 3306
	}

	cfg := mysql.NewConfig()
	cfg.User = conn.Username
	cfg.Passwd = conn.Password
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(conn.Host, strconv.Itoa(port))
	cfg.DBName = conn.Database
	cfg.ParseTime = true
	return cfg.FormatDSN(), nil
}

func sqliteDSN(conn config.Connection) string {
	if conn.DSN != "" {
		return conn.DSN
	}
	if conn.File == ":memory:" {
		return "file::memory:?cache=shared&_foreign_keys=on"
	}
	return "file:" + conn.File + "?_foreign_keys=on"
}

func postgresDSN(conn config.Connection) (string, error) {
	if conn.DSN != "" {
		if strings.HasPrefix(conn.DSN, "postgres://") || strings.HasPrefix(conn.DSN, "postgresql://") {
			dsn, err := pq.ParseURL(conn.DSN)
			if err != nil {
				return "", fmt.Errorf("failed to parse postgres url: %w", err)
			}
			return dsn, nil
		}
		return conn.DSN, nil
	}

	port := conn.Port
	if port == 0 {
		port = 5432
	}
	parts := []string{
		"host=" + conn.Host,
		"port=" + strconv.Itoa(port),
		"sslmode=disable",
	}
	if conn.Username != "" {
		parts = append(parts, "user="+conn.Username)
	}
	if conn.Password != "" {
		parts = append(parts, "password="+conn.Password)
	}
	if conn.Database != "" {
		parts = append(parts, "dbname="+conn.Database)
	}
	return strings.Join(parts, " "), nil
}
