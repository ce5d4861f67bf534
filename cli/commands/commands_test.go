package commands

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Senither/Database-Manager-sub000/cli/internal/ui"
	"github.com/Senither/Database-Manager-sub000/config"
	"github.com/Senither/Database-Manager-sub000/database"
)

const testConfig = `prefix: app_
default_connection: default
connections:
  default:
    driver: sqlite
    file: test.sqlite
  warehouse:
    driver: mysql
    host: 127.0.0.1
    database: warehouse
    prefix: wh_
`

func setup(t *testing.T) afero.Fs {
	t.Helper()
	t.Setenv("DATABASE_URL", "")

	fs := afero.NewMemMapFs()
	prev := config.AppFs
	config.AppFs = fs
	t.Cleanup(func() { config.AppFs = prev })

	require.NoError(t, afero.WriteFile(fs, "/cfg/dbm.yaml", []byte(testConfig), 0o644))
	return fs
}

// mockManager makes commands use a sqlmock handle for the default connection.
func mockManager(t *testing.T, dialect string) sqlmock.Sqlmock {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)

	prev := newManager
	newManager = func(cfg *config.Config) *database.Manager {
		m := database.NewManager(cfg)
		m.Register(database.NewConnection("default", dialect, db, cfg.PrefixFor("default"), cfg.EngineFor("default")))
		return m
	}
	t.Cleanup(func() {
		newManager = prev
		db.Close()
	})
	return mock
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCompile(t *testing.T) {
	fs := setup(t)
	require.NoError(t, afero.WriteFile(fs, "users.yaml", []byte(`
table: users
where: "id = 5 and (name = 'JohnDoe' or age = 23)"
`), 0o644))

	out, err := execute(t, "compile", "users.yaml", "--config", "/cfg/dbm.yaml")
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM `app_users` WHERE `id` = 5 AND (`name` = 'JohnDoe' OR `age` = 23);\n", out)

	out, err = execute(t, "compile", "users.yaml", "--config", "/cfg/dbm.yaml", "--prefix", "test_", "--dialect", "mysql")
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM `test_users` WHERE `id` = 5 AND (`name` = 'JohnDoe' OR `age` = 23);\n", out)

	out, err = execute(t, "compile", "users.yaml", "--config", "/cfg/dbm.yaml", "-c", "warehouse")
	require.NoError(t, err)
	assert.Contains(t, out, "`wh_users`")
}

func TestCompile_DialectDifferences(t *testing.T) {
	fs := setup(t)
	require.NoError(t, afero.WriteFile(fs, "quotes.yaml", []byte("table: quotes\nwhere: \"author = \\\"it's\\\"\"\norder:\n  - random: true\n"), 0o644))

	out, err := execute(t, "compile", "quotes.yaml", "--config", "/cfg/dbm.yaml", "--prefix", "", "--dialect", "sqlite")
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM `quotes` WHERE `author` = 'it''s' ORDER BY RANDOM();\n", out)

	out, err = execute(t, "compile", "quotes.yaml", "--config", "/cfg/dbm.yaml", "--prefix", "", "--dialect", "mysql")
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM `quotes` WHERE `author` = 'it\\'s' ORDER BY RAND();\n", out)
}

func TestCompile_Errors(t *testing.T) {
	fs := setup(t)
	require.NoError(t, afero.WriteFile(fs, "users.yaml", []byte("table: users\n"), 0o644))

	_, err := execute(t, "compile", "missing.yaml", "--config", "/cfg/dbm.yaml")
	assert.Error(t, err)

	_, err = execute(t, "compile", "users.yaml", "--config", "/cfg/dbm.yaml", "--dialect", "postgres")
	assert.Error(t, err)

	_, err = execute(t, "compile", "users.yaml", "--config", "/cfg/dbm.yaml", "-c", "nope")
	assert.ErrorIs(t, err, config.ErrInvalidConfig)

	_, err = execute(t, "compile")
	assert.Error(t, err)
}

func TestQuery_DryRun(t *testing.T) {
	setup(t)
	mockManager(t, "sqlite")

	out, err := execute(t, "query", "users",
		"--config", "/cfg/dbm.yaml",
		"--select", "id, name",
		"--where", "age >= 18",
		"--order", "name,created_at:desc",
		"--take", "5",
		"--skip", "10",
		"--dry-run",
	)
	require.NoError(t, err)
	assert.Equal(t, "SELECT `id`, `name` FROM `app_users` WHERE `age` >= 18 ORDER BY `name` ASC, `created_at` DESC LIMIT 5 OFFSET 10;\n", out)
}

func TestQuery_Execute(t *testing.T) {
	setup(t)
	mock := mockManager(t, "sqlite")

	mock.ExpectQuery("SELECT * FROM `app_users` WHERE `name` LIKE 'a%';").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(int64(1), "alice"))
	mock.ExpectClose()

	out, err := execute(t, "query", "users", "--config", "/cfg/dbm.yaml", "--where", "name like 'a%'")
	require.NoError(t, err)
	assert.Contains(t, out, "alice")
	assert.Contains(t, out, "1 row")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuery_InvalidFilter(t *testing.T) {
	setup(t)
	mockManager(t, "sqlite")

	_, err := execute(t, "query", "users", "--config", "/cfg/dbm.yaml", "--where", "age >=")
	assert.Error(t, err)
}

const usersManifest = `
table: users
fields:
  - name: id
    type: increments
  - name: email
    type: string
    nullable: true
`

func TestCreate_DryRun(t *testing.T) {
	fs := setup(t)
	mockManager(t, "sqlite")
	require.NoError(t, afero.WriteFile(fs, "users.yaml", []byte(usersManifest), 0o644))

	out, err := execute(t, "create", "users.yaml", "--config", "/cfg/dbm.yaml", "--if-not-exists", "--dry-run")
	require.NoError(t, err)
	assert.Equal(t, "CREATE TABLE IF NOT EXISTS `app_users` (`id` INTEGER NOT NULL, `email` VARCHAR(255) NULL, PRIMARY KEY (`id`));\n", out)
}

func TestCreate(t *testing.T) {
	fs := setup(t)
	mock := mockManager(t, "sqlite")
	require.NoError(t, afero.WriteFile(fs, "users.yaml", []byte(usersManifest), 0o644))

	mock.ExpectExec("CREATE TABLE `app_users` (`id` INTEGER NOT NULL, `email` VARCHAR(255) NULL, PRIMARY KEY (`id`));").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectClose()

	out, err := execute(t, "create", "users.yaml", "--config", "/cfg/dbm.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "Created table users")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPing(t *testing.T) {
	setup(t)
	mock := mockManager(t, "sqlite")

	mock.ExpectQuery("SELECT sqlite_version();").
		WillReturnRows(sqlmock.NewRows([]string{"sqlite_version()"}).AddRow("3.45.1"))
	mock.ExpectClose()

	out, err := execute(t, "ping", "--config", "/cfg/dbm.yaml", "--min-version", ">= 3.35")
	require.NoError(t, err)
	assert.Contains(t, out, "Connected to default")
	assert.Contains(t, out, "3.45.1")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPing_VersionTooOld(t *testing.T) {
	setup(t)
	mock := mockManager(t, "sqlite")

	mock.ExpectQuery("SELECT sqlite_version();").
		WillReturnRows(sqlmock.NewRows([]string{"sqlite_version()"}).AddRow("3.31.0"))

	_, err := execute(t, "ping", "--config", "/cfg/dbm.yaml", "--min-version", ">= 3.35")
	assert.ErrorIs(t, err, database.ErrUnsupportedVersion)
}

func TestInit(t *testing.T) {
	fs := setup(t)

	out, err := execute(t, "init", "--yes", "--path", "/new/dbm.yaml",
		"--driver", "mysql", "--host", "db", "--database", "shop", "--username", "root", "--prefix", "shop_")
	require.NoError(t, err)
	assert.Contains(t, out, "dbm init")
	assert.Contains(t, out, "Wrote /new/dbm.yaml")

	exists, err := afero.Exists(fs, "/new/dbm.yaml")
	require.NoError(t, err)
	require.True(t, exists)

	cfg, err := config.Load("/new/dbm.yaml")
	require.NoError(t, err)
	assert.Equal(t, "shop_", cfg.Prefix)
	_, conn, err := cfg.Connection("")
	require.NoError(t, err)
	assert.Equal(t, "mysql", conn.Driver)
	assert.Equal(t, "db", conn.Host)
	assert.Equal(t, 3306, conn.Port)
	assert.Equal(t, "shop", conn.Database)

	_, err = execute(t, "init", "--yes", "--path", "/new/dbm.yaml")
	assert.Error(t, err, "existing files are not overwritten")

	_, err = execute(t, "init", "--yes", "--force", "--path", "/new/dbm.yaml")
	assert.NoError(t, err)
}

func TestInitAnswer_Config(t *testing.T) {
	cfg, err := defaultInitAnswers().config()
	require.NoError(t, err)
	_, conn, err := cfg.Connection("")
	require.NoError(t, err)
	assert.Equal(t, "sqlite", conn.Driver)
	assert.Equal(t, "database.sqlite", conn.File)

	_, err = initAnswer{Driver: "oracle"}.config()
	assert.ErrorIs(t, err, config.ErrInvalidConfig)

	_, err = initAnswer{Driver: "mysql", Host: "h", Port: "abc"}.config()
	assert.ErrorIs(t, err, config.ErrInvalidConfig)

	cfg, err = initAnswer{Driver: "pgsql", Host: "h", Database: "d"}.config()
	require.NoError(t, err)
	_, conn, _ = cfg.Connection("")
	assert.Equal(t, "postgres", conn.Driver)
	assert.Equal(t, 5432, conn.Port)
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version", "--short")
	require.NoError(t, err)
	assert.Contains(t, out, "dbm version")

	out, err = execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Go Version")
}

func TestVersion_Require(t *testing.T) {
	_, err := execute(t, "version", "--short", "--require", ">= 0.0.1")
	assert.NoError(t, err)

	_, err = execute(t, "version", "--require", ">= 99.0")
	assert.ErrorContains(t, err, "does not satisfy")

	_, err = execute(t, "version", "--require", "not a constraint")
	assert.Error(t, err)
}

func TestKeepWatching(t *testing.T) {
	var out bytes.Buffer
	ui.SetOutput(&out, &out)
	t.Cleanup(func() { ui.SetOutput(os.Stdout, os.Stderr) })

	calls := 0
	cb := keepWatching(func() error {
		calls++
		return errors.New("table is required")
	})

	assert.NoError(t, cb())
	assert.NoError(t, cb())
	assert.Equal(t, 2, calls)
	assert.Contains(t, out.String(), "⚠ table is required")
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitList(" a, ,b "))
	assert.Nil(t, splitList(""))
}
