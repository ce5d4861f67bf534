package sqlgen

import (
	"strings"

	"github.com/Senither/Database-Manager-sub000/query/ast"
)

// compileJoins compiles every join. Joins without conditions are skipped,
// except CROSS joins which never take any.
func (g *grammar) compileJoins(joins []*ast.JoinClause) (string, error) {
	var parts []string
	for _, join := range joins {
		if join == nil {
			continue
		}
		kind, ok := ast.ParseJoinKind(string(join.Kind))
		if !ok {
			return "", grammarError("compile join", "unknown join kind %q", join.Kind)
		}
		if strings.TrimSpace(join.Table) == "" {
			return "", grammarError("compile join", "%s join has no table", kind)
		}

		if kind == ast.JoinCross {
			parts = append(parts, "CROSS JOIN "+g.wrapTable(join.Table))
			continue
		}
		if len(join.Conditions) == 0 {
			continue
		}

		fragments := make([]fragment, 0, len(join.Conditions))
		for _, c := range join.Conditions {
			sql, err := g.compileJoinCondition(c)
			if err != nil {
				return "", err
			}
			fragments = append(fragments, fragment{sql: sql, combinator: c.Combinator})
		}
		parts = append(parts, string(kind)+" JOIN "+g.wrapTable(join.Table)+" ON "+joinFragments(fragments))
	}
	return strings.Join(parts, " "), nil
}

func (g *grammar) compileJoinCondition(c *ast.Clause) (string, error) {
	op, ok := ast.NormalizeOperator(c.Operator)
	if !ok {
		return "", grammarError("compile join", "operator %q is not allowed", c.Operator)
	}
	second, ok := c.Value.(string)
	if !ok || strings.TrimSpace(second) == "" || strings.TrimSpace(c.Column) == "" {
		return "", grammarError("compile join", "join conditions must compare two columns")
	}
	return g.wrap(c.Column) + " " + op + " " + g.wrap(second), nil
}
