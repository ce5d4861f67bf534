// Package filter parses where expressions given on the command line, such
// as `status = 'active' and (age >= 18 or verified is not null)`, and adds
// them to a query builder.
package filter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/Senither/Database-Manager-sub000/query/builder"
)

var filterLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Keyword", Pattern: `(?i)\b(and|or|not|is|null|like|regexp|in|between|true|false)\b`},
	{Name: "String", Pattern: `'(?:\\.|[^'\\])*'|"(?:\\.|[^"\\])*"`},
	{Name: "Number", Pattern: `[-+]?\d+(?:\.\d+)?`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*(?:\.[a-zA-Z_][a-zA-Z0-9_]*)*`},
	{Name: "Operator", Pattern: `<>|!=|<=|>=|=|<|>`},
	{Name: "Punct", Pattern: `[(),]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

// Expression is a list of terms joined by and/or.
type Expression struct {
	Pos  lexer.Position
	Head *Term     `@@`
	Tail []*OpTerm `@@*`
}

// OpTerm is a term with the keyword linking it to the previous one.
type OpTerm struct {
	Op   string `@("and" | "or")`
	Term *Term  `@@`
}

// Term is a parenthesized group or a single comparison.
type Term struct {
	Group      *Expression `  "(" @@ ")"`
	Comparison *Comparison `| @@`
}

// Comparison tests a single column.
type Comparison struct {
	Column  string        `@Ident`
	Null    *NullCheck    `( @@`
	Range   *RangeCheck   `| @@`
	List    *ListCheck    `| @@`
	Pattern *PatternCheck `| @@`
	Binary  *BinaryCheck  `| @@ )`
}

// NullCheck is `is null` or `is not null`.
type NullCheck struct {
	Not bool `"is" @"not"? "null"`
}

// RangeCheck is `[not] between a and b`.
type RangeCheck struct {
	Not  bool   `@"not"? "between"`
	From *Value `@@ "and"`
	To   *Value `@@`
}

// ListCheck is `[not] in (a, b, ...)`.
type ListCheck struct {
	Not    bool     `@"not"? "in" "("`
	Values []*Value `@@ ( "," @@ )* ")"`
}

// PatternCheck is `[not] like 'x'` or `[not] regexp 'x'`.
type PatternCheck struct {
	Not   bool   `@"not"?`
	Op    string `@("like" | "regexp")`
	Value *Value `@@`
}

// BinaryCheck is a plain comparison operator and value.
type BinaryCheck struct {
	Op    string `@Operator`
	Value *Value `@@`
}

// Value is a literal.
type Value struct {
	String *string `  @String`
	Number *string `| @Number`
	Bool   *string `| @("true" | "false")`
	Null   bool    `| @"null"`
}

var parser = participle.MustBuild[Expression](
	participle.Lexer(filterLexer),
	participle.Elide("Whitespace"),
	participle.Unquote("String"),
	participle.CaseInsensitive("Keyword"),
	participle.UseLookahead(4),
)

// Parse parses a filter expression.
func Parse(input string) (*Expression, error) {
	expr, err := parser.ParseString("filter", input)
	if err != nil {
		return nil, fmt.Errorf("invalid filter %q: %w", input, err)
	}
	return expr, nil
}

// Apply parses input and adds its conditions to q. The empty string
// leaves q untouched.
func Apply(q *builder.QueryBuilder, input string) error {
	if strings.TrimSpace(input) == "" {
		return nil
	}
	expr, err := Parse(input)
	if err != nil {
		return err
	}
	expr.Apply(q)
	return q.Err()
}

// Apply adds the expression's conditions to q.
func (e *Expression) Apply(q *builder.QueryBuilder) {
	e.Head.apply(q, false)
	for _, t := range e.Tail {
		t.Term.apply(q, strings.EqualFold(t.Op, "or"))
	}
}

func (t *Term) apply(q *builder.QueryBuilder, or bool) {
	if t.Group != nil {
		group := func(sub *builder.QueryBuilder) { t.Group.Apply(sub) }
		if or {
			q.OrWhereFunc(group)
		} else {
			q.WhereFunc(group)
		}
		return
	}

	op, value := t.Comparison.operation()
	if or {
		q.OrWhere(t.Comparison.Column, op, value)
	} else {
		q.Where(t.Comparison.Column, op, value)
	}
}

func (c *Comparison) operation() (string, any) {
	switch {
	case c.Null != nil:
		return negate("is", c.Null.Not), nil
	case c.Range != nil:
		return negate("between", c.Range.Not), []any{c.Range.From.Interface(), c.Range.To.Interface()}
	case c.List != nil:
		values := make([]any, 0, len(c.List.Values))
		for _, v := range c.List.Values {
			values = append(values, v.Interface())
		}
		if c.List.Not {
			return "not in", values
		}
		return "in", values
	case c.Pattern != nil:
		return negate(strings.ToLower(c.Pattern.Op), c.Pattern.Not), c.Pattern.Value.Interface()
	}
	return c.Binary.Op, c.Binary.Value.Interface()
}

func negate(op string, not bool) string {
	if !not {
		return op
	}
	if op == "is" {
		return "is not"
	}
	return "not " + op
}

// Interface returns the Go value of the literal: string, int64, float64, bool or nil.
func (v *Value) Interface() any {
	switch {
	case v.String != nil:
		return *v.String
	case v.Number != nil:
		if n, err := strconv.ParseInt(*v.Number, 10, 64); err == nil {
			return n
		}
		f, _ := strconv.ParseFloat(*v.Number, 64)
		return f
	case v.Bool != nil:
		return strings.EqualFold(*v.Bool, "true")
	}
	return nil
}
