package sqlgen

import (
	"reflect"
	"strings"

	"github.com/Senither/Database-Manager-sub000/query/ast"
)

// fragment is a compiled node and the combinator linking it to the previous one.
type fragment struct {
	sql        string
	combinator ast.Combinator
}

// joinFragments links fragments with their combinators. The first
// fragment's combinator is dropped, so no dangling AND/OR can be produced.
func joinFragments(fragments []fragment) string {
	parts := make([]string, 0, len(fragments)*2)
	for _, f := range fragments {
		if len(parts) > 0 {
			parts = append(parts, f.combinator.Keyword())
		}
		parts = append(parts, f.sql)
	}
	return strings.Join(parts, " ")
}

// compileWheres compiles a where list into a WHERE clause, or "" when it is empty.
func (g *grammar) compileWheres(nodes []ast.Node) (string, error) {
	body, err := g.compileNodes(nodes)
	if err != nil || body == "" {
		return "", err
	}
	return "WHERE " + body, nil
}

func (g *grammar) compileNodes(nodes []ast.Node) (string, error) {
	fragments := make([]fragment, 0, len(nodes))
	for _, node := range nodes {
		var (
			sql string
			err error
		)
		switch n := node.(type) {
		case *ast.Clause:
			sql, err = g.compileClause(n)
		case *ast.NestedClause:
			sql, err = g.compileNodes(n.Nodes)
			if sql != "" {
				sql = "(" + sql + ")"
			}
		case nil:
			continue
		default:
			return "", grammarError("compile where", "unknown node %T", node)
		}
		if err != nil {
			return "", err
		}
		if sql == "" {
			continue
		}
		fragments = append(fragments, fragment{sql: sql, combinator: node.Joiner()})
	}
	return joinFragments(fragments), nil
}

func (g *grammar) compileClause(c *ast.Clause) (string, error) {
	if strings.TrimSpace(c.Column) == "" {
		return "", grammarError("compile where", "clause has no column")
	}
	op, ok := ast.NormalizeOperator(c.Operator)
	if !ok {
		return "", grammarError("compile where", "operator %q is not allowed", c.Operator)
	}
	if c.Value == nil {
		op = nullOperator(op)
	}
	value, err := g.clauseValue(op, c.Value)
	if err != nil {
		return "", err
	}
	return g.wrap(c.Column) + " " + op + " " + value, nil
}

// nullOperator turns equality against nil into IS / IS NOT, since
// `column = NULL` never matches.
func nullOperator(op string) string {
	switch op {
	case "=":
		return "IS"
	case "!=", "<>":
		return "IS NOT"
	}
	return op
}

func (g *grammar) clauseValue(op string, v any) (string, error) {
	switch {
	case ast.IsListOperator(op):
		values, list, err := g.listValues(v)
		if err != nil {
			return "", err
		}
		if !list {
			single, err := g.value(v)
			if err != nil {
				return "", err
			}
			values = []string{single}
		}
		if len(values) == 0 {
			return "", valueError("compile where", "%s requires at least one value", op)
		}
		return "(" + strings.Join(values, ", ") + ")", nil

	case ast.IsRangeOperator(op):
		values, list, err := g.listValues(v)
		if err != nil {
			return "", err
		}
		if !list || len(values) != 2 {
			return "", valueError("compile where", "%s requires exactly two values", op)
		}
		return values[0] + " AND " + values[1], nil

	case ast.IsNullOperator(op):
		if s, ok := v.(string); ok && strings.EqualFold(s, "null") {
			return "NULL", nil
		}
		return g.value(v)
	}

	if isList(v) {
		return "", valueError("compile where", "operator %s does not accept a list of values", op)
	}
	return g.value(v)
}

func isList(v any) bool {
	if _, ok := v.([]byte); ok {
		return false
	}
	rv := reflect.ValueOf(v)
	return rv.IsValid() && (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array)
}
