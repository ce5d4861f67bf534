package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Senither/Database-Manager-sub000/query/ast"
)

func TestNewRow(t *testing.T) {
	row := ast.NewRow("name", "Alexis", "age", 30, "email")

	assert.Equal(t, []string{"name", "age", "email"}, row.Columns())
	assert.Equal(t, 3, row.Len())

	v, ok := row.Get("email")
	assert.True(t, ok)
	assert.Nil(t, v)

	_, ok = row.Get("missing")
	assert.False(t, ok)
}

func TestRow_SetKeepsPosition(t *testing.T) {
	row := ast.NewRow("a", 1, "b", 2)
	row.Set("a", 3).Set("c", 4)

	assert.Equal(t, []string{"a", "b", "c"}, row.Columns())
	v, _ := row.Get("a")
	assert.Equal(t, 3, v)
}

func TestRow_ColumnsIsCopy(t *testing.T) {
	row := ast.NewRow("a", 1)
	cols := row.Columns()
	cols[0] = "changed"

	assert.Equal(t, []string{"a"}, row.Columns())
}

func TestRowFromMap(t *testing.T) {
	row := ast.RowFromMap(map[string]any{"z": 1, "a": 2, "m": 3})
	assert.Equal(t, []string{"a", "m", "z"}, row.Columns())
}

func TestUnionColumns(t *testing.T) {
	rows := []*ast.Row{
		ast.NewRow("name", "a", "age", 1),
		nil,
		ast.NewRow("email", "x", "name", "b"),
	}
	assert.Equal(t, []string{"name", "age", "email"}, ast.UnionColumns(rows))
	assert.Empty(t, ast.UnionColumns(nil))
}

func TestNormalizeOperator(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"=", "=", true},
		{"like", "LIKE", true},
		{"NOT   like", "NOT LIKE", true},
		{" Not In ", "NOT IN", true},
		{"is not", "IS NOT", true},
		{"==", "", false},
		{"drop", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ast.NormalizeOperator(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOperatorKinds(t *testing.T) {
	assert.True(t, ast.IsListOperator("NOT IN"))
	assert.False(t, ast.IsListOperator("in"))
	assert.True(t, ast.IsRangeOperator("BETWEEN"))
	assert.True(t, ast.IsNullOperator("IS NOT"))
	assert.False(t, ast.IsNullOperator("="))
}

func TestNewRow_KeepsInvalidKeys(t *testing.T) {
	row := ast.NewRow(1, "x", "name", "a", true)

	assert.Equal(t, []string{"name"}, row.Columns())
	assert.Equal(t, []any{1, true}, row.InvalidKeys())
	assert.Empty(t, ast.NewRow("a", 1).InvalidKeys())
}
