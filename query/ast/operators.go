package ast

import "strings"

// operators maps every accepted comparison operator to the form it is emitted in.
var operators = map[string]string{
	"=":           "=",
	"<":           "<",
	">":           ">",
	"<=":          "<=",
	">=":          ">=",
	"<>":          "<>",
	"!=":          "!=",
	"<=>":         "<=>",
	"like":        "LIKE",
	"not like":    "NOT LIKE",
	"ilike":       "ILIKE",
	"between":     "BETWEEN",
	"not between": "NOT BETWEEN",
	"in":          "IN",
	"not in":      "NOT IN",
	"is":          "IS",
	"is not":      "IS NOT",
	"regexp":      "REGEXP",
	"not regexp":  "NOT REGEXP",
	"rlike":       "RLIKE",
	"similar to":  "SIMILAR TO",
	"&":           "&",
	"|":           "|",
	"^":           "^",
	"<<":          "<<",
	">>":          ">>",
	"&~":          "&~",
}

// NormalizeOperator returns the canonical form of op, or false when op is
// not an accepted operator.
func NormalizeOperator(op string) (string, bool) {
	key := strings.ToLower(strings.Join(strings.Fields(op), " "))
	canonical, ok := operators[key]
	return canonical, ok
}

// IsListOperator reports whether op takes a parenthesized value list.
func IsListOperator(op string) bool {
	return op == "IN" || op == "NOT IN"
}

// IsRangeOperator reports whether op takes a pair of bounds.
func IsRangeOperator(op string) bool {
	return op == "BETWEEN" || op == "NOT BETWEEN"
}

// IsNullOperator reports whether op is IS or IS NOT.
func IsNullOperator(op string) bool {
	return op == "IS" || op == "IS NOT"
}
