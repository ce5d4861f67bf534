package sqlgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Senither/Database-Manager-sub000/schema"
)

func TestDialectsProvideEveryCompiler(t *testing.T) {
	for _, d := range Dialects {
		dl, err := lookup(d)
		require.NoError(t, err, d)

		assert.Equal(t, d, dl.name)
		assert.NotNil(t, dl.quote, d)
		assert.NotEmpty(t, dl.random, d)
		assert.NotNil(t, dl.compileSelect, d)
		assert.NotNil(t, dl.compileInsert, d)
		assert.NotNil(t, dl.compileUpdate, d)
		assert.NotNil(t, dl.compileDelete, d)
		assert.NotNil(t, dl.compileCreate, d)
	}
}

func TestTableGrammarsCoverEveryFieldType(t *testing.T) {
	for _, tg := range []tableGrammar{mysqlTables, sqliteTables} {
		for _, ft := range schema.FieldTypes {
			_, ok := tg.types[ft]
			assert.True(t, ok, "missing column type for %s", ft)
		}
	}
}

func TestWrap(t *testing.T) {
	g := newGrammar(mysqlDialect, Options{Prefix: "p_"}, false)

	assert.Equal(t, "*", g.wrap("*"))
	assert.Equal(t, "`name`", g.wrap("name"))
	assert.Equal(t, "`name` AS 'n'", g.wrap("name as n"))
	assert.Equal(t, "`p_users`.`name` AS 'n'", g.wrap("users.name AS n"))
	assert.Equal(t, "`p_users`.*", g.wrap("users.*"))
	assert.Equal(t, "`odd``name`", g.wrap("odd`name"))
	assert.Equal(t, "`information_schema`.`p_tables`", g.wrapTable("information_schema.tables"))

	ignored := newGrammar(mysqlDialect, Options{Prefix: "p_", IgnorePrefix: true}, false)
	assert.Equal(t, "`users`.`name`", ignored.wrap("users.name"))
}

func TestJoinFragmentsNeverDangle(t *testing.T) {
	assert.Equal(t, "", joinFragments(nil))
	assert.Equal(t, "a", joinFragments([]fragment{{sql: "a", combinator: "OR"}}))
	assert.Equal(t, "a OR b AND c", joinFragments([]fragment{
		{sql: "a", combinator: "AND"},
		{sql: "b", combinator: "OR"},
		{sql: "c"},
	}))
}
