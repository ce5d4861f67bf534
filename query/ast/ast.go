// Package ast defines the statement model built by the query builder and
// consumed by the grammar compilers.
package ast

import (
	"strings"

	"github.com/Senither/Database-Manager-sub000/schema"
)

// Kind is the kind of statement being built.
type Kind string

const (
	KindSelect Kind = "SELECT"
	KindInsert Kind = "INSERT"
	KindUpdate Kind = "UPDATE"
	KindDelete Kind = "DELETE"
	KindCreate Kind = "CREATE"
)

// Combinator joins a node to the node before it.
type Combinator string

const (
	CombinatorNone Combinator = ""
	And            Combinator = "AND"
	Or             Combinator = "OR"
)

// Keyword returns the SQL keyword for the combinator, AND when unset.
func (c Combinator) Keyword() string {
	if c == Or {
		return string(Or)
	}
	return string(And)
}

// Raw is an expression emitted verbatim wherever a value is expected.
type Raw = schema.RawSQLAction

// Node is an element of a where list: a *Clause or a *NestedClause.
type Node interface {
	Joiner() Combinator
	node()
}

// Clause compares a column with a value.
type Clause struct {
	Column     string
	Operator   string
	Value      any
	Combinator Combinator
}

func (c *Clause) Joiner() Combinator { return c.Combinator }
func (*Clause) node()                {}

// NestedClause is a parenthesized group of nodes.
type NestedClause struct {
	Nodes      []Node
	Combinator Combinator
}

func (n *NestedClause) Joiner() Combinator { return n.Combinator }
func (*NestedClause) node()                {}

// Add appends a node to the group.
func (n *NestedClause) Add(node Node) *NestedClause {
	n.Nodes = append(n.Nodes, node)
	return n
}

// IsEmpty reports whether the group would compile to nothing.
func (n *NestedClause) IsEmpty() bool {
	for _, child := range n.Nodes {
		switch c := child.(type) {
		case *Clause:
			return false
		case *NestedClause:
			if !c.IsEmpty() {
				return false
			}
		}
	}
	return true
}

// JoinKind is the kind of table join.
type JoinKind string

const (
	JoinLeft  JoinKind = "LEFT"
	JoinRight JoinKind = "RIGHT"
	JoinInner JoinKind = "INNER"
	JoinOuter JoinKind = "OUTER"
	JoinFull  JoinKind = "FULL"
	JoinCross JoinKind = "CROSS"
)

// ParseJoinKind parses a join kind ignoring case.
func ParseJoinKind(s string) (JoinKind, bool) {
	switch k := JoinKind(strings.ToUpper(strings.TrimSpace(s))); k {
	case JoinLeft, JoinRight, JoinInner, JoinOuter, JoinFull, JoinCross:
		return k, true
	}
	return "", false
}

// JoinClause joins a table on a list of column comparisons.
// The Value of every condition is the name of the second column.
type JoinClause struct {
	Kind       JoinKind
	Table      string
	Conditions []*Clause
}

// NewJoin creates a join without conditions.
func NewJoin(kind JoinKind, table string) *JoinClause {
	return &JoinClause{Kind: kind, Table: table}
}

// On adds a condition joined with AND.
func (j *JoinClause) On(first, operator, second string) *JoinClause {
	j.Conditions = append(j.Conditions, &Clause{Column: first, Operator: operator, Value: second, Combinator: And})
	return j
}

// OrOn adds a condition joined with OR.
func (j *JoinClause) OrOn(first, operator, second string) *JoinClause {
	j.Conditions = append(j.Conditions, &Clause{Column: first, Operator: operator, Value: second, Combinator: Or})
	return j
}

// Direction is an ORDER BY direction.
type Direction string

const (
	DirectionNone Direction = ""
	Asc           Direction = "ASC"
	Desc          Direction = "DESC"
)

// ParseDirection parses asc/desc ignoring case.
func ParseDirection(s string) (Direction, bool) {
	switch d := Direction(strings.ToUpper(strings.TrimSpace(s))); d {
	case Asc, Desc:
		return d, true
	}
	return DirectionNone, false
}

// Order is a single ORDER BY entry. Raw entries emit Column verbatim and
// Random entries emit the dialect's random function.
type Order struct {
	Column    string
	Direction Direction
	Raw       bool
	Random    bool
}

// Statement is the complete description of a statement.
type Statement struct {
	Kind    Kind
	Table   string
	Columns []string
	Wheres  []Node
	Joins   []*JoinClause
	Orders  []Order
	// Take and Skip are -1 when unset.
	Take int
	Skip int
	Rows []*Row

	IgnoreTablePrefix bool

	Blueprint   *schema.Blueprint
	IfNotExists bool
}

// NewStatement creates a SELECT * statement for table.
func NewStatement(table string) *Statement {
	return &Statement{
		Kind:    KindSelect,
		Table:   table,
		Columns: []string{"*"},
		Take:    -1,
		Skip:    -1,
	}
}

// SelectsAll reports whether the column list is the * wildcard.
func (s *Statement) SelectsAll() bool {
	return len(s.Columns) == 0 || (len(s.Columns) == 1 && s.Columns[0] == "*")
}

// AddColumns unions columns into the select list. Selecting * clears named
// columns and selecting a named column replaces *.
func (s *Statement) AddColumns(columns ...string) {
	for _, column := range columns {
		column = strings.TrimSpace(column)
		if column == "" {
			continue
		}
		if column == "*" {
			s.Columns = []string{"*"}
			continue
		}
		if s.SelectsAll() {
			s.Columns = []string{column}
			continue
		}
		if !contains(s.Columns, column) {
			s.Columns = append(s.Columns, column)
		}
	}
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}
