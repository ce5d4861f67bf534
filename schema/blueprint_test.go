package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Senither/Database-Manager-sub000/schema"
)

func TestBlueprint_FieldOrder(t *testing.T) {
	bp := schema.NewBlueprint("users")
	bp.Increments("id")
	bp.String("name")
	bp.Boolean("active").Default(true)

	require.Equal(t, 3, bp.Len())
	names := make([]string, 0, bp.Len())
	for _, f := range bp.Fields() {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"id", "name", "active"}, names)
}

func TestBlueprint_RedeclareReplacesInPlace(t *testing.T) {
	bp := schema.NewBlueprint("users")
	bp.Integer("id")
	bp.String("name", 10)
	bp.Text("id")

	require.Equal(t, 2, bp.Len())
	f, ok := bp.Field("id")
	require.True(t, ok)
	assert.Equal(t, schema.TypeText, f.Type)
	assert.Equal(t, "id", bp.Fields()[0].Name)
}

func TestBlueprint_ColumnHelpers(t *testing.T) {
	bp := schema.NewBlueprint("orders")

	id := bp.BigIncrements("id")
	assert.Equal(t, schema.TypeBigInteger, id.Type)
	assert.True(t, id.IsUnsigned)
	assert.True(t, id.IsAutoIncrement)

	name := bp.String("name")
	assert.Equal(t, schema.DefaultStringLength, name.Length)
	assert.Equal(t, 32, bp.String("code", 32).Length)

	total := bp.Decimal("total", 10, 2)
	assert.Equal(t, 10, total.Length)
	assert.Equal(t, 2, total.Scale)

	assert.Equal(t, 3, bp.Char("currency", 3).Length)

	bp.Timestamps()
	created, ok := bp.Field("created_at")
	require.True(t, ok)
	assert.True(t, created.IsNullable)
	_, ok = bp.Field("updated_at")
	assert.True(t, ok)

	_, ok = bp.Field("missing")
	assert.False(t, ok)
}

func TestField_Modifiers(t *testing.T) {
	bp := schema.NewBlueprint("t")

	f := bp.Integer("n").Unsigned().Nullable().NotNull()
	assert.True(t, f.IsUnsigned)
	assert.False(t, f.IsNullable)
	assert.False(t, f.HasDefault)

	f.Default(nil)
	assert.True(t, f.HasDefault)
	assert.Nil(t, f.DefaultValue)

	raw := bp.Timestamp("at").DefaultRaw("CURRENT_TIMESTAMP")
	assert.Equal(t, schema.RawSQLAction("CURRENT_TIMESTAMP"), raw.DefaultValue)
}

func TestBlueprint_UseEngine(t *testing.T) {
	bp := schema.NewBlueprint("t").UseEngine("MyISAM")
	assert.Equal(t, "MyISAM", bp.Engine)
	assert.Equal(t, "t", bp.Table)
}

func TestParseFieldType(t *testing.T) {
	for _, ft := range schema.FieldTypes {
		got, ok := schema.ParseFieldType(string(ft))
		require.True(t, ok, ft)
		assert.Equal(t, ft, got)
	}

	got, ok := schema.ParseFieldType("BIGINTEGER")
	assert.True(t, ok)
	assert.Equal(t, schema.TypeBigInteger, got)

	_, ok = schema.ParseFieldType("geometry")
	assert.False(t, ok)
}
