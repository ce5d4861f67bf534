package manifest_test

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Senither/Database-Manager-sub000/cli/internal/manifest"
	"github.com/Senither/Database-Manager-sub000/query/builder"
	"github.com/Senither/Database-Manager-sub000/query/sqlgen"
)

func compile(t *testing.T, source, dialect, prefix string) (string, error) {
	t.Helper()
	m, err := manifest.Parse([]byte(source))
	require.NoError(t, err)

	q := builder.New(nil)
	if err := m.Apply(q); err != nil {
		return "", err
	}
	return q.ToSQLFor(builder.Static{DialectName: dialect, TablePrefix: prefix, DefaultEngine: "InnoDB"})
}

func TestApply_Select(t *testing.T) {
	sql, err := compile(t, `
table: users
select: [id, users.name, posts.title]
where: "users.id > 10 and (posts.draft = false or posts.title like 'Go%')"
joins:
  - type: left
    table: posts
    on: [posts.user_id, users.id]
order:
  - column: users.id
    direction: desc
take: 3
skip: 6
`, "mysql", "")
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT `id`, `users`.`name`, `posts`.`title` FROM `users` "+
			"LEFT JOIN `posts` ON `posts`.`user_id` = `users`.`id` "+
			"WHERE `users`.`id` > 10 AND (`posts`.`draft` = 0 OR `posts`.`title` LIKE 'Go%') "+
			"ORDER BY `users`.`id` DESC LIMIT 3 OFFSET 6;",
		sql,
	)
}

func TestApply_RandomOrderPerDialect(t *testing.T) {
	source := `
table: quotes
order:
  - random: true
take: 1
`
	mysql, err := compile(t, source, "mysql", "")
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM `quotes` ORDER BY RAND() LIMIT 1;", mysql)

	sqlite, err := compile(t, source, "sqlite", "")
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM `quotes` ORDER BY RANDOM() LIMIT 1;", sqlite)
}

func TestApply_InsertKeepsColumnOrder(t *testing.T) {
	sql, err := compile(t, `
table: users
kind: insert
rows:
  - name: alice
    admin: true
  - name: bob
    email: bob@example.com
`, "mysql", "test_")
	require.NoError(t, err)
	assert.Equal(t,
		"INSERT INTO `test_users` (`name`, `admin`, `email`) VALUES ('alice', 1, NULL), ('bob', NULL, 'bob@example.com');",
		sql,
	)
}

func TestApply_UpdateAndDelete(t *testing.T) {
	sql, err := compile(t, `
table: users
kind: update
where: "id = 1"
rows:
  - name: carol
`, "sqlite", "")
	require.NoError(t, err)
	assert.Equal(t, "UPDATE `users` SET `name` = 'carol' WHERE `id` = 1;", sql)

	sql, err = compile(t, `
table: users
kind: delete
where: "id in (1, 2)"
`, "mysql", "")
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM `users` WHERE `id` IN (1, 2);", sql)
}

func TestApply_UpdateWithManyRows(t *testing.T) {
	_, err := compile(t, `
table: users
kind: update
rows:
  - name: a
  - name: b
`, "mysql", "")
	assert.ErrorIs(t, err, sqlgen.ErrGrammar)
}

func TestApply_Create(t *testing.T) {
	source := `
table: users
kind: create
if_not_exists: true
fields:
  - name: id
    type: increments
  - name: username
    type: string
    length: 32
  - name: email
    type: string
    nullable: true
    default: null
  - name: created_at
    type: timestamp
    default_raw: CURRENT_TIMESTAMP
  - name: balance
    type: decimal
    length: 8
    scale: 2
    default: 0
`
	mysql, err := compile(t, source, "mysql", "test_")
	require.NoError(t, err)
	assert.Equal(t,
		"CREATE TABLE IF NOT EXISTS `test_users` ("+
			"`id` INT UNSIGNED NOT NULL AUTO_INCREMENT, "+
			"`username` VARCHAR(32) NOT NULL, "+
			"`email` VARCHAR(255) NULL DEFAULT NULL, "+
			"`created_at` TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP, "+
			"`balance` DECIMAL(8, 2) NOT NULL DEFAULT '0', "+
			"PRIMARY KEY (`id`)) ENGINE = InnoDB;",
		mysql,
	)

	sqlite, err := compile(t, source, "sqlite", "test_")
	require.NoError(t, err)
	assert.Contains(t, sqlite, "`id` INTEGER NOT NULL")
	assert.NotContains(t, sqlite, "ENGINE")
}

func TestApply_Errors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		kind   error
	}{
		{"unknown kind", "table: t\nkind: merge\n", sqlgen.ErrConfiguration},
		{"unknown join", "table: t\njoins:\n  - type: sideways\n    table: u\n", sqlgen.ErrGrammar},
		{"bad join on", "table: t\njoins:\n  - type: inner\n    table: u\n    on: [a]\n", sqlgen.ErrGrammar},
		{"empty order", "table: t\norder:\n  - direction: asc\n", sqlgen.ErrGrammar},
		{"create without fields", "table: t\nkind: create\n", sqlgen.ErrConfiguration},
		{"unknown field type", "table: t\nkind: create\nfields:\n  - name: a\n    type: geometry\n", sqlgen.ErrConfiguration},
		{"insert without rows", "table: t\nkind: insert\n", sqlgen.ErrConfiguration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := compile(t, tt.source, "mysql", "")
			assert.ErrorIs(t, err, tt.kind)
		})
	}

	_, err := compile(t, "table: t\nwhere: \"a =\"\n", "mysql", "")
	assert.Error(t, err)
}

func TestParse(t *testing.T) {
	_, err := manifest.Parse([]byte("kind: select\n"))
	assert.Error(t, err)

	_, err = manifest.Parse([]byte("table: t\ncolumns: [a]\n"))
	assert.Error(t, err, "unknown keys are rejected")

	_, err = manifest.Parse([]byte("table: t\nrows:\n  - [1, 2]\n"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "manifests/users.yaml", []byte("table: users\ntake: 5\n"), 0o644))

	m, err := manifest.Load(fs, "manifests/users.yaml")
	require.NoError(t, err)
	assert.Equal(t, "users", m.Table)
	require.NotNil(t, m.Take)
	assert.Equal(t, 5, *m.Take)

	_, err = manifest.Load(fs, "missing.yaml")
	assert.Error(t, err)
}
