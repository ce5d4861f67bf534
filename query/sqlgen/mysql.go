package sqlgen

import (
	"github.com/Senither/Database-Manager-sub000/query/ast"
	"github.com/Senither/Database-Manager-sub000/schema"
)

var mysqlDialect = &dialect{
	name:   MySQL,
	quote:  mysqlQuote,
	random: "RAND()",

	compileSelect: compileSelect,
	compileInsert: compileInsert,
	compileUpdate: compileUpdate,
	compileDelete: compileDelete,
	compileCreate: mysqlCreate,
}

var mysqlTables = tableGrammar{
	types: typeMap{
		schema.TypeTinyInteger:   {"TINYINT", argsOptional},
		schema.TypeSmallInteger:  {"SMALLINT", argsOptional},
		schema.TypeMediumInteger: {"MEDIUMINT", argsOptional},
		schema.TypeInteger:       {"INT", argsOptional},
		schema.TypeBigInteger:    {"BIGINT", argsOptional},
		schema.TypeBoolean:       {"BOOLEAN", argsNone},
		schema.TypeDecimal:       {"DECIMAL", argsPrecision},
		schema.TypeDouble:        {"DOUBLE", argsNone},
		schema.TypeFloat:         {"FLOAT", argsNone},
		schema.TypeChar:          {"CHAR", argsLength},
		schema.TypeString:        {"VARCHAR", argsLength},
		schema.TypeTinyText:      {"TINYTEXT", argsNone},
		schema.TypeText:          {"TEXT", argsNone},
		schema.TypeMediumText:    {"MEDIUMTEXT", argsNone},
		schema.TypeLongText:      {"LONGTEXT", argsNone},
		schema.TypeBinary:        {"BLOB", argsNone},
		schema.TypeDate:          {"DATE", argsNone},
		schema.TypeDateTime:      {"DATETIME", argsNone},
		schema.TypeTime:          {"TIME", argsNone},
		schema.TypeTimestamp:     {"TIMESTAMP", argsNone},
		schema.TypeJSON:          {"JSON", argsNone},
	},
	unsigned:      true,
	autoIncrement: "AUTO_INCREMENT",
	engine:        true,
}

func mysqlCreate(g *grammar, st *ast.Statement) (string, error) {
	return g.compileCreateTable(st, mysqlTables)
}
