// Package config loads the database manager configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// AppFs is the filesystem configuration is read from and written to.
var AppFs = afero.NewOsFs()

// FileName is the configuration file name without extension.
const FileName = ".dbmanager"

// ErrInvalidConfig is returned when the configuration cannot be used.
var ErrInvalidConfig = errors.New("invalid configuration")

// Connection configures a single named database connection.
type Connection struct {
	Driver   string `mapstructure:"driver" yaml:"driver"`
	DSN      string `mapstructure:"dsn" yaml:"dsn,omitempty"`
	Host     string `mapstructure:"host" yaml:"host,omitempty"`
	Port     int    `mapstructure:"port" yaml:"port,omitempty"`
	Database string `mapstructure:"database" yaml:"database,omitempty"`
	Username string `mapstructure:"username" yaml:"username,omitempty"`
	Password string `mapstructure:"password" yaml:"password,omitempty"`
	File     string `mapstructure:"file" yaml:"file,omitempty"`
	// Prefix overrides the global table prefix when set.
	Prefix string `mapstructure:"prefix" yaml:"prefix,omitempty"`
	Engine string `mapstructure:"engine" yaml:"engine,omitempty"`
}

// Config holds the application configuration
type Config struct {
	Prefix            string
	DefaultEngine     string
	DefaultConnection string
	Debug             bool
	Connections       map[string]Connection
}

// Default returns a configuration with a single SQLite connection.
func Default() *Config {
	return &Config{
		DefaultEngine:     "InnoDB",
		DefaultConnection: "default",
		Connections: map[string]Connection{
			"default": {Driver: "sqlite", File: "database.sqlite"},
		},
	}
}

// Load loads configuration from path, or searches the working directory
// and home directory when path is empty. Environment variables prefixed
// with DBM override file values, and DATABASE_URL overrides the DSN of the
// default connection.
func Load(path string) (*Config, error) {
	if err := loadEnv(); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetFs(AppFs)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := homedir.Dir(); err == nil {
			v.AddConfigPath(home)
			v.AddConfigPath(filepath.Join(home, ".config", "dbmanager"))
		}
	}

	v.SetEnvPrefix("DBM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := Default()
	v.SetDefault("prefix", defaults.Prefix)
	v.SetDefault("default_engine", defaults.DefaultEngine)
	v.SetDefault("default_connection", defaults.DefaultConnection)
	v.SetDefault("debug", false)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Prefix:            v.GetString("prefix"),
		DefaultEngine:     v.GetString("default_engine"),
		DefaultConnection: v.GetString("default_connection"),
		Debug:             v.GetBool("debug"),
	}
	if err := v.UnmarshalKey("connections", &cfg.Connections); err != nil {
		return nil, fmt.Errorf("failed to parse connections: %w", err)
	}
	if len(cfg.Connections) == 0 {
		cfg.Connections = defaults.Connections
	}

	if url := os.Getenv("DATABASE_URL"); url != "" {
		conn := cfg.Connections[cfg.DefaultConnection]
		conn.DSN = url
		if conn.Driver == "" {
			conn.Driver = DetectDriver(url)
		}
		cfg.Connections[cfg.DefaultConnection] = conn
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadEnv loads .env and then .env.local from AppFs. Variables already set
// in the environment win over .env, while .env.local overrides both.
func loadEnv() error {
	if err := applyEnvFile(".env", false); err != nil {
		return err
	}
	return applyEnvFile(".env.local", true)
}

func applyEnvFile(name string, override bool) error {
	data, err := afero.ReadFile(AppFs, name)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}

	values, err := godotenv.Parse(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	for key, value := range values {
		if _, set := os.LookupEnv(key); set && !override {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return fmt.Errorf("failed to set %s from %s: %w", key, name, err)
		}
	}
	return nil
}

// Validate checks that every connection can be opened.
func (c *Config) Validate() error {
	if _, ok := c.Connections[c.DefaultConnection]; !ok {
		return fmt.Errorf("%w: default connection %q is not configured", ErrInvalidConfig, c.DefaultConnection)
	}
	for _, name := range c.ConnectionNames() {
		conn := c.Connections[name]
		switch NormalizeDriver(conn.Driver) {
		case "sqlite":
			if conn.File == "" && conn.DSN == "" {
				return fmt.Errorf("%w: connection %q needs a file or dsn", ErrInvalidConfig, name)
			}
		case "mysql", "postgres":
			if conn.DSN == "" && conn.Host == "" {
				return fmt.Errorf("%w: connection %q needs a dsn or host", ErrInvalidConfig, name)
			}
		default:
			return fmt.Errorf("%w: connection %q has unknown driver %q", ErrInvalidConfig, name, conn.Driver)
		}
	}
	return nil
}

// Connection returns the named connection; the empty name is the default one.
func (c *Config) Connection(name string) (string, Connection, error) {
	if name == "" {
		name = c.DefaultConnection
	}
	conn, ok := c.Connections[name]
	if !ok {
		return name, Connection{}, fmt.Errorf("%w: connection %q is not configured", ErrInvalidConfig, name)
	}
	return name, conn, nil
}

// ConnectionNames returns the configured connection names sorted.
func (c *Config) ConnectionNames() []string {
	names := make([]string, 0, len(c.Connections))
	for name := range c.Connections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PrefixFor returns the table prefix used by the named connection.
func (c *Config) PrefixFor(name string) string {
	_, conn, err := c.Connection(name)
	if err == nil && conn.Prefix != "" {
		return conn.Prefix
	}
	return c.Prefix
}

// EngineFor returns the storage engine used by the named connection.
func (c *Config) EngineFor(name string) string {
	_, conn, err := c.Connection(name)
	if err == nil && conn.Engine != "" {
		return conn.Engine
	}
	return c.DefaultEngine
}

// NormalizeDriver maps driver aliases to mysql, sqlite or postgres.
func NormalizeDriver(driver string) string {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "mysql", "mariadb":
		return "mysql"
	case "sqlite", "sqlite3":
		return "sqlite"
	case "postgres", "postgresql", "pgsql":
		return "postgres"
	}
	return ""
}

// DetectDriver guesses the driver from a connection URL.
func DetectDriver(url string) string {
	switch {
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return "postgres"
	case strings.HasPrefix(url, "file:"), strings.HasSuffix(url, ".sqlite"), strings.HasSuffix(url, ".db"):
		return "sqlite"
	}
	return "mysql"
}

// Save writes cfg to path as YAML.
func Save(cfg *Config, path string) error {
	v := viper.New()
	v.SetFs(AppFs)

	v.Set("prefix", cfg.Prefix)
	v.Set("default_engine", cfg.DefaultEngine)
	v.Set("default_connection", cfg.DefaultConnection)
	v.Set("debug", cfg.Debug)

	connections := make(map[string]any, len(cfg.Connections))
	for name, conn := range cfg.Connections {
		connections[name] = map[string]any{
			"driver":   conn.Driver,
			"dsn":      conn.DSN,
			"host":     conn.Host,
			"port":     conn.Port,
			"database": conn.Database,
			"username": conn.Username,
			"password": conn.Password,
			"file":     conn.File,
			"prefix":   conn.Prefix,
			"engine":   conn.Engine,
		}
	}
	v.Set("connections", connections)

	if dir := filepath.Dir(path); dir != "." {
		if err := AppFs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
