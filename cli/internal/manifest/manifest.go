// Package manifest reads statement manifests, YAML files describing a
// single statement for the compile and create commands.
package manifest

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/Senither/Database-Manager-sub000/cli/internal/filter"
	"github.com/Senither/Database-Manager-sub000/query/ast"
	"github.com/Senither/Database-Manager-sub000/query/builder"
	"github.com/Senither/Database-Manager-sub000/query/sqlgen"
	"github.com/Senither/Database-Manager-sub000/schema"
)

// Manifest describes one statement.
type Manifest struct {
	Connection   string   `yaml:"connection"`
	Table        string   `yaml:"table"`
	Kind         string   `yaml:"kind"`
	Select       []string `yaml:"select"`
	Where        string   `yaml:"where"`
	Joins        []Join   `yaml:"joins"`
	Order        []Order  `yaml:"order"`
	Take         *int     `yaml:"take"`
	Skip         *int     `yaml:"skip"`
	IgnorePrefix bool     `yaml:"ignore_prefix"`

	// Insert and update values.
	Rows []Row `yaml:"rows"`

	// Table definition used by create.
	Engine      string  `yaml:"engine"`
	IfNotExists bool    `yaml:"if_not_exists"`
	Fields      []Field `yaml:"fields"`
}

// Join is a join entry. On holds either two columns compared with "=" or
// a column, an operator and a column.
type Join struct {
	Type  string   `yaml:"type"`
	Table string   `yaml:"table"`
	On    []string `yaml:"on"`
}

// Order is an order entry; exactly one of Column, Raw or Random is used.
type Order struct {
	Column    string `yaml:"column"`
	Direction string `yaml:"direction"`
	Raw       string `yaml:"raw"`
	Random    bool   `yaml:"random"`
}

// Row is a set of column values kept in file order.
type Row struct {
	*ast.Row
}

// UnmarshalYAML decodes a mapping node without losing key order.
func (r *Row) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: row must be a mapping", node.Line)
	}
	r.Row = ast.NewRow()
	for i := 0; i+1 < len(node.Content); i += 2 {
		var value any
		if err := node.Content[i+1].Decode(&value); err != nil {
			return fmt.Errorf("line %d: %w", node.Content[i+1].Line, err)
		}
		r.Row.Set(node.Content[i].Value, value)
	}
	return nil
}

// Field is a column definition.
type Field struct {
	Name          string    `yaml:"name"`
	Type          string    `yaml:"type"`
	Length        int       `yaml:"length"`
	Scale         int       `yaml:"scale"`
	Unsigned      bool      `yaml:"unsigned"`
	Nullable      bool      `yaml:"nullable"`
	AutoIncrement bool      `yaml:"auto_increment"`
	Default       yaml.Node `yaml:"default"`
	DefaultRaw    string    `yaml:"default_raw"`
}

// Load reads a manifest from path on fs.
func Load(fs afero.Fs, path string) (*Manifest, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Parse decodes a manifest. Unknown keys are rejected.
func Parse(data []byte) (*Manifest, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var m Manifest
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	if m.Table == "" {
		return nil, fmt.Errorf("manifest has no table")
	}
	return &m, nil
}

// Apply configures q as the statement described by the manifest.
func (m *Manifest) Apply(q *builder.QueryBuilder) error {
	q.From(m.Table)
	if m.Connection != "" {
		q.Connection(m.Connection)
	}
	if m.IgnorePrefix {
		q.IgnoreTablePrefix()
	}

	switch kind := strings.ToLower(m.Kind); kind {
	case "", "select":
		if len(m.Select) > 0 {
			q.Select(m.Select...)
		}
		if err := m.applyJoins(q); err != nil {
			return err
		}
		if err := filter.Apply(q, m.Where); err != nil {
			return err
		}
		if err := m.applyOrder(q); err != nil {
			return err
		}
		if m.Take != nil {
			q.Take(*m.Take)
		}
		if m.Skip != nil {
			q.Skip(*m.Skip)
		}
	case "insert":
		for _, row := range m.Rows {
			q.ForInsert(row.Row)
		}
	case "update":
		if err := filter.Apply(q, m.Where); err != nil {
			return err
		}
		for _, row := range m.Rows {
			q.ForUpdate(row.Row)
		}
	case "delete":
		if err := filter.Apply(q, m.Where); err != nil {
			return err
		}
		q.ForDelete()
	case "create":
		define, err := m.Blueprint()
		if err != nil {
			return err
		}
		if m.IfNotExists {
			q.ForCreateIfNotExists(define)
		} else {
			q.ForCreate(define)
		}
	default:
		return sqlgen.NewError(sqlgen.ErrConfiguration, "manifest", "unknown statement kind %q", kind)
	}
	return q.Err()
}

func (m *Manifest) applyJoins(q *builder.QueryBuilder) error {
	for _, j := range m.Joins {
		kind, ok := ast.ParseJoinKind(j.Type)
		if !ok {
			return sqlgen.NewError(sqlgen.ErrGrammar, "manifest", "unknown join type %q", j.Type)
		}
		if kind == ast.JoinCross {
			q.CrossJoin(j.Table)
			continue
		}
		on := j.On
		switch len(on) {
		case 0:
		case 2:
			on = []string{on[0], "=", on[1]}
		case 3:
		default:
			return sqlgen.NewError(sqlgen.ErrGrammar, "manifest", "join on %s needs two or three entries", j.Table)
		}
		q.JoinFunc(kind, j.Table, func(join *ast.JoinClause) {
			if len(on) == 3 {
				join.On(on[0], on[1], on[2])
			}
		})
	}
	return nil
}

func (m *Manifest) applyOrder(q *builder.QueryBuilder) error {
	for _, o := range m.Order {
		switch {
		case o.Random:
			q.InRandomOrder()
		case o.Raw != "":
			q.OrderByRaw(o.Raw)
		case o.Column != "":
			if o.Direction == "" {
				q.OrderBy(o.Column)
			} else {
				q.OrderBy(o.Column, o.Direction)
			}
		default:
			return sqlgen.NewError(sqlgen.ErrGrammar, "manifest", "order entry needs a column, raw or random")
		}
	}
	return nil
}

// Blueprint returns a function defining the manifest fields on a blueprint.
func (m *Manifest) Blueprint() (func(*schema.Blueprint), error) {
	if len(m.Fields) == 0 {
		return nil, sqlgen.NewError(sqlgen.ErrConfiguration, "manifest", "table %s has no fields", m.Table)
	}

	defs := make([]func(*schema.Blueprint), 0, len(m.Fields))
	for _, f := range m.Fields {
		def, err := f.definition()
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}

	return func(bp *schema.Blueprint) {
		if m.Engine != "" {
			bp.UseEngine(m.Engine)
		}
		for _, def := range defs {
			def(bp)
		}
	}, nil
}

func (f Field) definition() (func(*schema.Blueprint), error) {
	if f.Name == "" {
		return nil, sqlgen.NewError(sqlgen.ErrConfiguration, "manifest", "field without a name")
	}

	var add func(bp *schema.Blueprint) *schema.Field
	switch strings.ToLower(f.Type) {
	case "increments":
		add = func(bp *schema.Blueprint) *schema.Field { return bp.Increments(f.Name) }
	case "bigincrements":
		add = func(bp *schema.Blueprint) *schema.Field { return bp.BigIncrements(f.Name) }
	default:
		ft, ok := schema.ParseFieldType(f.Type)
		if !ok {
			return nil, sqlgen.NewError(sqlgen.ErrConfiguration, "manifest", "field %s has unknown type %q", f.Name, f.Type)
		}
		add = func(bp *schema.Blueprint) *schema.Field {
			switch ft {
			case schema.TypeString:
				if f.Length > 0 {
					return bp.String(f.Name, f.Length)
				}
				return bp.String(f.Name)
			case schema.TypeDecimal:
				return bp.Decimal(f.Name, f.Length, f.Scale)
			}
			field := bp.Add(f.Name, ft)
			field.Length = f.Length
			return field
		}
	}

	var (
		value      any
		hasDefault bool
	)
	if f.Default.Kind != 0 {
		if err := f.Default.Decode(&value); err != nil {
			return nil, fmt.Errorf("field %s: invalid default: %w", f.Name, err)
		}
		hasDefault = true
	}

	return func(bp *schema.Blueprint) {
		field := add(bp)
		if f.Unsigned {
			field.Unsigned()
		}
		if f.Nullable {
			field.Nullable()
		}
		if f.AutoIncrement {
			field.AutoIncrement()
		}
		switch {
		case f.DefaultRaw != "":
			field.DefaultRaw(f.DefaultRaw)
		case hasDefault:
			field.Default(value)
		}
	}, nil
}
