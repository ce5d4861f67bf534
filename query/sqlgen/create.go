package sqlgen

import (
	"strconv"
	"strings"

	"github.com/Senither/Database-Manager-sub000/query/ast"
	"github.com/Senither/Database-Manager-sub000/schema"
)

// typeArgs describes the arguments a column type takes.
type typeArgs int

const (
	argsNone typeArgs = iota
	// argsOptional renders (length) only when a length is set.
	argsOptional
	// argsLength requires a length and renders (length).
	argsLength
	// argsPrecision requires a length and renders (length, scale).
	argsPrecision
)

type columnType struct {
	name string
	args typeArgs
}

type typeMap map[schema.FieldType]columnType

// tableGrammar holds the CREATE TABLE differences between dialects.
type tableGrammar struct {
	types         typeMap
	unsigned      bool
	autoIncrement string
	engine        bool
}

func (g *grammar) compileColumnType(f *schema.Field, types typeMap) (string, error) {
	ct, ok := types[f.Type]
	if !ok {
		return "", grammarError("compile create", "type %q of field %q is not supported by %s", f.Type, f.Name, g.dialect.name)
	}

	switch ct.args {
	case argsOptional:
		if f.Length > 0 {
			return ct.name + "(" + strconv.Itoa(f.Length) + ")", nil
		}
	case argsLength:
		if f.Length <= 0 {
			return "", grammarError("compile create", "type %s of field %q requires a length", ct.name, f.Name)
		}
		return ct.name + "(" + strconv.Itoa(f.Length) + ")", nil
	case argsPrecision:
		if f.Length <= 0 {
			return "", grammarError("compile create", "type %s of field %q requires a length and scale", ct.name, f.Name)
		}
		return ct.name + "(" + strconv.Itoa(f.Length) + ", " + strconv.Itoa(f.Scale) + ")", nil
	}
	return ct.name, nil
}

func (g *grammar) compileField(f *schema.Field, tg tableGrammar) (string, error) {
	if f == nil || strings.TrimSpace(f.Name) == "" {
		return "", configurationError("compile create", "field has no name")
	}
	columnType, err := g.compileColumnType(f, tg.types)
	if err != nil {
		return "", err
	}

	parts := []string{g.wrap(f.Name), columnType}
	if f.IsUnsigned && tg.unsigned {
		parts = append(parts, "UNSIGNED")
	}
	if f.IsNullable {
		parts = append(parts, "NULL")
	} else {
		parts = append(parts, "NOT NULL")
	}
	if f.HasDefault {
		def, err := g.defaultValue(f.DefaultValue)
		if err != nil {
			return "", err
		}
		parts = append(parts, "DEFAULT "+def)
	}
	if f.IsAutoIncrement && tg.autoIncrement != "" {
		parts = append(parts, tg.autoIncrement)
	}
	return strings.Join(parts, " "), nil
}

func (g *grammar) compileCreateTable(st *ast.Statement, tg tableGrammar) (string, error) {
	bp := st.Blueprint
	if bp == nil || bp.Len() == 0 {
		return "", configurationError("compile create", "no fields defined for %s", st.Table)
	}

	var (
		definitions []string
		keys        []string
	)
	for _, f := range bp.Fields() {
		def, err := g.compileField(f, tg)
		if err != nil {
			return "", err
		}
		definitions = append(definitions, def)
		if f.IsAutoIncrement {
			keys = append(keys, g.wrap(f.Name))
		}
	}
	if len(keys) > 0 {
		definitions = append(definitions, "PRIMARY KEY ("+strings.Join(keys, ", ")+")")
	}

	head := "CREATE TABLE"
	if st.IfNotExists {
		head += " IF NOT EXISTS"
	}

	engine := ""
	if tg.engine {
		name := bp.Engine
		if name == "" {
			name = g.engine
		}
		if name != "" {
			engine = "ENGINE = " + name
		}
	}

	return statement(
		head, g.wrapTable(st.Table),
		"("+strings.Join(definitions, ", ")+")",
		engine,
	), nil
}
