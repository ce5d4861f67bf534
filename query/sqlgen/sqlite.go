package sqlgen

import (
	"github.com/Senither/Database-Manager-sub000/query/ast"
	"github.com/Senither/Database-Manager-sub000/schema"
)

var sqliteDialect = &dialect{
	name:   SQLite,
	quote:  standardQuote,
	random: "RANDOM()",

	compileSelect: compileSelect,
	compileInsert: compileInsert,
	compileUpdate: compileUpdate,
	compileDelete: compileDelete,
	compileCreate: sqliteCreate,
}

// Integer columns are all INTEGER so a single auto incrementing key
// becomes the rowid alias.
var sqliteTables = tableGrammar{
	types: typeMap{
		schema.TypeTinyInteger:   {"INTEGER", argsNone},
		schema.TypeSmallInteger:  {"INTEGER", argsNone},
		schema.TypeMediumInteger: {"INTEGER", argsNone},
		schema.TypeInteger:       {"INTEGER", argsNone},
		schema.TypeBigInteger:    {"INTEGER", argsNone},
		schema.TypeBoolean:       {"BOOLEAN", argsNone},
		schema.TypeDecimal:       {"DECIMAL", argsPrecision},
		schema.TypeDouble:        {"REAL", argsNone},
		schema.TypeFloat:         {"REAL", argsNone},
		schema.TypeChar:          {"CHAR", argsLength},
		schema.TypeString:        {"VARCHAR", argsLength},
		schema.TypeTinyText:      {"TEXT", argsNone},
		schema.TypeText:          {"TEXT", argsNone},
		schema.TypeMediumText:    {"TEXT", argsNone},
		schema.TypeLongText:      {"TEXT", argsNone},
		schema.TypeBinary:        {"BLOB", argsNone},
		schema.TypeDate:          {"DATE", argsNone},
		schema.TypeDateTime:      {"DATETIME", argsNone},
		schema.TypeTime:          {"TIME", argsNone},
		schema.TypeTimestamp:     {"DATETIME", argsNone},
		schema.TypeJSON:          {"TEXT", argsNone},
	},
}

func sqliteCreate(g *grammar, st *ast.Statement) (string, error) {
	return g.compileCreateTable(st, sqliteTables)
}
