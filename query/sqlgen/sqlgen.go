// Package sqlgen compiles statements into SQL for the supported dialects.
package sqlgen

import (
	"strings"

	"github.com/Senither/Database-Manager-sub000/query/ast"
	"github.com/Senither/Database-Manager-sub000/schema"
)

// Dialect identifies an SQL grammar.
type Dialect string

const (
	MySQL  Dialect = "mysql"
	SQLite Dialect = "sqlite"
)

// Dialects lists every dialect with a registered compiler.
var Dialects = []Dialect{MySQL, SQLite}

// ParseDialect resolves a connection's dialect tag, accepting common aliases.
func ParseDialect(tag string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "mysql", "mariadb":
		return MySQL, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	}
	return "", configurationError("resolve dialect", "no dialect compiler registered for %q", tag)
}

// Options carries the compile time context for a statement.
type Options struct {
	// Prefix is prepended to every table name unless IgnorePrefix is set.
	Prefix        string
	IgnorePrefix  bool
	DefaultEngine string
}

type compileFunc func(g *grammar, st *ast.Statement) (string, error)

// dialect is the set of compilers and formatting primitives for one grammar.
type dialect struct {
	name   Dialect
	quote  func(string) string
	random string

	compileSelect compileFunc
	compileInsert compileFunc
	compileUpdate compileFunc
	compileDelete compileFunc
	compileCreate compileFunc
}

func lookup(d Dialect) (*dialect, error) {
	switch d {
	case MySQL:
		return mysqlDialect, nil
	case SQLite:
		return sqliteDialect, nil
	}
	return nil, configurationError("resolve dialect", "no dialect compiler registered for %q", string(d))
}

// Compile compiles st into a single SQL statement for dialect d.
func Compile(d Dialect, st *ast.Statement, opts Options) (string, error) {
	if st == nil {
		return "", configurationError("compile", "no statement given")
	}
	dl, err := lookup(d)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(st.Table) == "" {
		return "", configurationError("compile", "no table set for %s statement", st.Kind)
	}

	g := newGrammar(dl, opts, st.IgnoreTablePrefix)

	switch st.Kind {
	case ast.KindSelect, "":
		return dl.compileSelect(g, st)
	case ast.KindInsert:
		return dl.compileInsert(g, st)
	case ast.KindUpdate:
		return dl.compileUpdate(g, st)
	case ast.KindDelete:
		return dl.compileDelete(g, st)
	case ast.KindCreate:
		return dl.compileCreate(g, st)
	}
	return "", grammarError("compile", "unknown statement kind %q", st.Kind)
}

// CompileCreate compiles a CREATE TABLE statement for a blueprint.
func CompileCreate(d Dialect, bp *schema.Blueprint, ifNotExists bool, opts Options) (string, error) {
	if bp == nil {
		return "", configurationError("compile create", "no blueprint given")
	}
	st := ast.NewStatement(bp.Table)
	st.Kind = ast.KindCreate
	st.Blueprint = bp
	st.IfNotExists = ifNotExists
	return Compile(d, st, opts)
}

// CompileDrop compiles a DROP TABLE statement.
func CompileDrop(d Dialect, table string, ifExists bool, opts Options) (string, error) {
	dl, err := lookup(d)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(table) == "" {
		return "", configurationError("compile drop", "no table set")
	}

	g := newGrammar(dl, opts, false)
	parts := []string{"DROP TABLE"}
	if ifExists {
		parts = append(parts, "IF EXISTS")
	}
	parts = append(parts, g.wrapTable(table))
	return strings.Join(parts, " ") + ";", nil
}

// QuoteIdentifier quotes a single identifier, doubling embedded backticks.
func QuoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}
