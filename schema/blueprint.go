// Package schema describes table definitions consumed by CREATE TABLE compilation.
package schema

import "strings"

// RawSQLAction is an SQL expression emitted verbatim, never quoted.
// It is used for defaults such as CURRENT_TIMESTAMP.
type RawSQLAction string

// FieldType is a dialect independent column type.
type FieldType string

const (
	TypeTinyInteger   FieldType = "tinyInteger"
	TypeSmallInteger  FieldType = "smallInteger"
	TypeMediumInteger FieldType = "mediumInteger"
	TypeInteger       FieldType = "integer"
	TypeBigInteger    FieldType = "bigInteger"
	TypeBoolean       FieldType = "boolean"
	TypeDecimal       FieldType = "decimal"
	TypeDouble        FieldType = "double"
	TypeFloat         FieldType = "float"
	TypeChar          FieldType = "char"
	TypeString        FieldType = "string"
	TypeTinyText      FieldType = "tinyText"
	TypeText          FieldType = "text"
	TypeMediumText    FieldType = "mediumText"
	TypeLongText      FieldType = "longText"
	TypeBinary        FieldType = "binary"
	TypeDate          FieldType = "date"
	TypeDateTime      FieldType = "dateTime"
	TypeTime          FieldType = "time"
	TypeTimestamp     FieldType = "timestamp"
	TypeJSON          FieldType = "json"
)

// FieldTypes lists every known field type.
var FieldTypes = []FieldType{
	TypeTinyInteger, TypeSmallInteger, TypeMediumInteger, TypeInteger, TypeBigInteger,
	TypeBoolean, TypeDecimal, TypeDouble, TypeFloat, TypeChar, TypeString,
	TypeTinyText, TypeText, TypeMediumText, TypeLongText, TypeBinary,
	TypeDate, TypeDateTime, TypeTime, TypeTimestamp, TypeJSON,
}

// ParseFieldType looks up a field type by name, ignoring case.
func ParseFieldType(name string) (FieldType, bool) {
	for _, t := range FieldTypes {
		if strings.EqualFold(string(t), name) {
			return t, true
		}
	}
	return "", false
}

// DefaultStringLength is used by Blueprint.String when no length is given.
const DefaultStringLength = 255

// Field is a single column definition.
type Field struct {
	Name            string
	Type            FieldType
	Length          int
	Scale           int
	IsUnsigned      bool
	IsNullable      bool
	IsAutoIncrement bool
	HasDefault      bool
	DefaultValue    any
}

// Unsigned marks the field as unsigned.
func (f *Field) Unsigned() *Field {
	f.IsUnsigned = true
	return f
}

// Nullable allows NULL values.
func (f *Field) Nullable() *Field {
	f.IsNullable = true
	return f
}

// NotNull disallows NULL values. Fields are NOT NULL unless marked otherwise.
func (f *Field) NotNull() *Field {
	f.IsNullable = false
	return f
}

// Default sets the default value. A nil value or the string "NULL" produces DEFAULT NULL.
func (f *Field) Default(value any) *Field {
	f.HasDefault = true
	f.DefaultValue = value
	return f
}

// DefaultRaw sets a default expression that is emitted without quoting.
func (f *Field) DefaultRaw(expression string) *Field {
	return f.Default(RawSQLAction(expression))
}

// AutoIncrement marks the field as auto incrementing; it becomes part of the primary key.
func (f *Field) AutoIncrement() *Field {
	f.IsAutoIncrement = true
	return f
}

// Blueprint is the ordered set of field definitions for a table.
type Blueprint struct {
	Table  string
	Engine string

	fields []*Field
	index  map[string]int
}

// NewBlueprint creates an empty blueprint for table.
func NewBlueprint(table string) *Blueprint {
	return &Blueprint{
		Table: table,
		index: make(map[string]int),
	}
}

// UseEngine sets the storage engine for dialects that support one.
func (b *Blueprint) UseEngine(engine string) *Blueprint {
	b.Engine = engine
	return b
}

// Fields returns the field definitions in declaration order.
func (b *Blueprint) Fields() []*Field {
	out := make([]*Field, len(b.fields))
	copy(out, b.fields)
	return out
}

// Field returns the field called name.
func (b *Blueprint) Field(name string) (*Field, bool) {
	i, ok := b.index[name]
	if !ok {
		return nil, false
	}
	return b.fields[i], true
}

// Len returns the number of fields.
func (b *Blueprint) Len() int {
	return len(b.fields)
}

// Add declares a field. Redeclaring a name replaces the definition in place.
func (b *Blueprint) Add(name string, fieldType FieldType) *Field {
	if b.index == nil {
		b.index = make(map[string]int)
	}
	field := &Field{Name: name, Type: fieldType}
	if i, ok := b.index[name]; ok {
		b.fields[i] = field
		return field
	}
	b.index[name] = len(b.fields)
	b.fields = append(b.fields, field)
	return field
}

// Increments adds an unsigned auto incrementing integer key.
func (b *Blueprint) Increments(name string) *Field {
	return b.Add(name, TypeInteger).Unsigned().AutoIncrement()
}

// BigIncrements adds an unsigned auto incrementing big integer key.
func (b *Blueprint) BigIncrements(name string) *Field {
	return b.Add(name, TypeBigInteger).Unsigned().AutoIncrement()
}

func (b *Blueprint) TinyInteger(name string) *Field   { return b.Add(name, TypeTinyInteger) }
func (b *Blueprint) SmallInteger(name string) *Field  { return b.Add(name, TypeSmallInteger) }
func (b *Blueprint) MediumInteger(name string) *Field { return b.Add(name, TypeMediumInteger) }
func (b *Blueprint) Integer(name string) *Field       { return b.Add(name, TypeInteger) }
func (b *Blueprint) BigInteger(name string) *Field    { return b.Add(name, TypeBigInteger) }
func (b *Blueprint) Boolean(name string) *Field       { return b.Add(name, TypeBoolean) }
func (b *Blueprint) Double(name string) *Field        { return b.Add(name, TypeDouble) }
func (b *Blueprint) Float(name string) *Field         { return b.Add(name, TypeFloat) }
func (b *Blueprint) TinyText(name string) *Field      { return b.Add(name, TypeTinyText) }
func (b *Blueprint) Text(name string) *Field          { return b.Add(name, TypeText) }
func (b *Blueprint) MediumText(name string) *Field    { return b.Add(name, TypeMediumText) }
func (b *Blueprint) LongText(name string) *Field      { return b.Add(name, TypeLongText) }
func (b *Blueprint) Binary(name string) *Field        { return b.Add(name, TypeBinary) }
func (b *Blueprint) Date(name string) *Field          { return b.Add(name, TypeDate) }
func (b *Blueprint) DateTime(name string) *Field      { return b.Add(name, TypeDateTime) }
func (b *Blueprint) Time(name string) *Field          { return b.Add(name, TypeTime) }
func (b *Blueprint) Timestamp(name string) *Field     { return b.Add(name, TypeTimestamp) }
func (b *Blueprint) JSON(name string) *Field          { return b.Add(name, TypeJSON) }

// Decimal adds a fixed point column with the given precision and scale.
func (b *Blueprint) Decimal(name string, precision, scale int) *Field {
	f := b.Add(name, TypeDecimal)
	f.Length = precision
	f.Scale = scale
	return f
}

// Char adds a fixed length string column.
func (b *Blueprint) Char(name string, length int) *Field {
	f := b.Add(name, TypeChar)
	f.Length = length
	return f
}

// String adds a variable length string column, DefaultStringLength long unless given.
func (b *Blueprint) String(name string, length ...int) *Field {
	f := b.Add(name, TypeString)
	f.Length = DefaultStringLength
	if len(length) > 0 {
		f.Length = length[0]
	}
	return f
}

// Timestamps adds nullable created_at and updated_at columns.
func (b *Blueprint) Timestamps() {
	b.Timestamp("created_at").Nullable()
	b.Timestamp("updated_at").Nullable()
}
