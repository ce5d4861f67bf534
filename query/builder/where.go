package builder

import (
	"reflect"

	"github.com/Senither/Database-Manager-sub000/query/ast"
	"github.com/Senither/Database-Manager-sub000/query/sqlgen"
)

// Where adds a condition joined with AND. It accepts (column, value), which
// compares with "=", or (column, operator, value).
func (b *QueryBuilder) Where(column string, args ...any) *QueryBuilder {
	return b.addWhere(ast.And, column, args)
}

// AndWhere is an alias of Where.
func (b *QueryBuilder) AndWhere(column string, args ...any) *QueryBuilder {
	return b.addWhere(ast.And, column, args)
}

// OrWhere adds a condition joined with OR.
func (b *QueryBuilder) OrWhere(column string, args ...any) *QueryBuilder {
	return b.addWhere(ast.Or, column, args)
}

// WhereFunc adds a parenthesized group built by fn, joined with AND.
func (b *QueryBuilder) WhereFunc(fn func(q *QueryBuilder)) *QueryBuilder {
	return b.addNested(ast.And, fn)
}

// AndWhereFunc is an alias of WhereFunc.
func (b *QueryBuilder) AndWhereFunc(fn func(q *QueryBuilder)) *QueryBuilder {
	return b.addNested(ast.And, fn)
}

// OrWhereFunc adds a parenthesized group built by fn, joined with OR.
func (b *QueryBuilder) OrWhereFunc(fn func(q *QueryBuilder)) *QueryBuilder {
	return b.addNested(ast.Or, fn)
}

// WhereNull adds an IS NULL condition.
func (b *QueryBuilder) WhereNull(column string) *QueryBuilder {
	return b.addClause(ast.And, column, "is", nil)
}

// OrWhereNull adds an IS NULL condition joined with OR.
func (b *QueryBuilder) OrWhereNull(column string) *QueryBuilder {
	return b.addClause(ast.Or, column, "is", nil)
}

// WhereNotNull adds an IS NOT NULL condition.
func (b *QueryBuilder) WhereNotNull(column string) *QueryBuilder {
	return b.addClause(ast.And, column, "is not", nil)
}

// WhereIn adds an IN condition.
func (b *QueryBuilder) WhereIn(column string, values ...any) *QueryBuilder {
	return b.addClause(ast.And, column, "in", spread(values))
}

// WhereNotIn adds a NOT IN condition.
func (b *QueryBuilder) WhereNotIn(column string, values ...any) *QueryBuilder {
	return b.addClause(ast.And, column, "not in", spread(values))
}

// WhereBetween adds a BETWEEN condition.
func (b *QueryBuilder) WhereBetween(column string, from, to any) *QueryBuilder {
	return b.addClause(ast.And, column, "between", []any{from, to})
}

// WhereLike adds a LIKE condition.
func (b *QueryBuilder) WhereLike(column, pattern string) *QueryBuilder {
	return b.addClause(ast.And, column, "like", pattern)
}

func (b *QueryBuilder) addWhere(combinator ast.Combinator, column string, args []any) *QueryBuilder {
	switch len(args) {
	case 1:
		return b.addClause(combinator, column, "=", args[0])
	case 2:
		op, ok := args[0].(string)
		if !ok {
			return b.failf(sqlgen.ErrGrammar, "where", "operator for %q must be a string, got %T", column, args[0])
		}
		return b.addClause(combinator, column, op, args[1])
	}
	return b.failf(sqlgen.ErrGrammar, "where", "expected a value or an operator and a value for %q, got %d arguments", column, len(args))
}

func (b *QueryBuilder) addClause(combinator ast.Combinator, column, operator string, value any) *QueryBuilder {
	op, ok := ast.NormalizeOperator(operator)
	if !ok {
		return b.failf(sqlgen.ErrGrammar, "where", "operator %q is not allowed", operator)
	}
	b.stmt.Wheres = append(b.stmt.Wheres, &ast.Clause{
		Column:     column,
		Operator:   op,
		Value:      value,
		Combinator: combinator,
	})
	return b
}

func (b *QueryBuilder) addNested(combinator ast.Combinator, fn func(q *QueryBuilder)) *QueryBuilder {
	child := New(b.resolver)
	if fn != nil {
		fn(child)
	}
	if child.err != nil {
		return b.fail(child.err)
	}
	b.stmt.Wheres = append(b.stmt.Wheres, &ast.NestedClause{
		Nodes:      child.stmt.Wheres,
		Combinator: combinator,
	})
	return b
}

// spread unwraps a single slice argument so WhereIn("id", ids) and
// WhereIn("id", 1, 2) behave the same.
func spread(values []any) any {
	if len(values) != 1 {
		return values
	}
	if _, ok := values[0].([]byte); ok {
		return values
	}
	rv := reflect.ValueOf(values[0])
	if rv.IsValid() && (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array) {
		return values[0]
	}
	return values
}
