package builder

import (
	"github.com/Senither/Database-Manager-sub000/query/ast"
	"github.com/Senither/Database-Manager-sub000/query/sqlgen"
)

// LeftJoin adds a LEFT JOIN. on is empty, (first, second) compared with
// "=", or (first, operator, second).
func (b *QueryBuilder) LeftJoin(table string, on ...string) *QueryBuilder {
	return b.join(ast.JoinLeft, table, on)
}

// RightJoin adds a RIGHT JOIN.
func (b *QueryBuilder) RightJoin(table string, on ...string) *QueryBuilder {
	return b.join(ast.JoinRight, table, on)
}

// InnerJoin adds an INNER JOIN.
func (b *QueryBuilder) InnerJoin(table string, on ...string) *QueryBuilder {
	return b.join(ast.JoinInner, table, on)
}

// OuterJoin adds an OUTER JOIN.
func (b *QueryBuilder) OuterJoin(table string, on ...string) *QueryBuilder {
	return b.join(ast.JoinOuter, table, on)
}

// FullJoin adds a FULL JOIN.
func (b *QueryBuilder) FullJoin(table string, on ...string) *QueryBuilder {
	return b.join(ast.JoinFull, table, on)
}

// CrossJoin adds a CROSS JOIN.
func (b *QueryBuilder) CrossJoin(table string) *QueryBuilder {
	b.stmt.Joins = append(b.stmt.Joins, ast.NewJoin(ast.JoinCross, table))
	return b
}

// JoinFunc adds a join whose conditions are added by fn.
func (b *QueryBuilder) JoinFunc(kind ast.JoinKind, table string, fn func(j *ast.JoinClause)) *QueryBuilder {
	k, ok := ast.ParseJoinKind(string(kind))
	if !ok {
		return b.failf(sqlgen.ErrGrammar, "join", "unknown join kind %q", kind)
	}
	j := ast.NewJoin(k, table)
	if fn != nil {
		fn(j)
	}
	for _, c := range j.Conditions {
		op, ok := ast.NormalizeOperator(c.Operator)
		if !ok {
			return b.failf(sqlgen.ErrGrammar, "join", "operator %q is not allowed", c.Operator)
		}
		c.Operator = op
	}
	b.stmt.Joins = append(b.stmt.Joins, j)
	return b
}

func (b *QueryBuilder) join(kind ast.JoinKind, table string, on []string) *QueryBuilder {
	switch len(on) {
	case 0:
		return b.JoinFunc(kind, table, nil)
	case 2:
		return b.JoinFunc(kind, table, func(j *ast.JoinClause) {
			j.On(on[0], "=", on[1])
		})
	case 3:
		return b.JoinFunc(kind, table, func(j *ast.JoinClause) {
			j.On(on[0], on[1], on[2])
		})
	}
	return b.failf(sqlgen.ErrGrammar, "join", "expected 0, 2 or 3 join arguments for %q, got %d", table, len(on))
}
