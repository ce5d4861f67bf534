package result_test

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Senither/Database-Manager-sub000/query/result"
)

func TestScan(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT").WillReturnRows(
		sqlmock.NewRows([]string{"id", "name", "score", "active"}).
			AddRow(int64(1), []byte("alice"), 9.5, int64(1)).
			AddRow(int64(2), []byte("bob"), nil, int64(0)),
	)

	rows, err := db.Query("SELECT * FROM users")
	require.NoError(t, err)
	defer rows.Close()

	c, err := result.Scan(rows)
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name", "score", "active"}, c.Columns)
	require.Equal(t, 2, c.Len())
	assert.False(t, c.IsEmpty())

	first := c.First()
	assert.Equal(t, "alice", first.Get("name"))
	assert.Equal(t, "alice", first.String("name"))
	assert.True(t, first.Bool("active"))
	score, err := first.Float64("score")
	require.NoError(t, err)
	assert.Equal(t, 9.5, score)

	second := c.Rows[1]
	assert.False(t, second.Bool("active"))
	assert.True(t, second.Has("score"))
	_, err = second.Float64("score")
	assert.Error(t, err)

	assert.Equal(t, []any{int64(1), int64(2)}, c.Pluck("id"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScan_RowError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT").WillReturnRows(
		sqlmock.NewRows([]string{"id"}).
			AddRow(int64(1)).
			RowError(0, assert.AnError),
	)

	rows, err := db.Query("SELECT id FROM users")
	require.NoError(t, err)
	defer rows.Close()

	_, err = result.Scan(rows)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestRow_Conversions(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	row := result.NewRow(
		[]string{"count", "ratio", "flag", "label", "at", "missing"},
		[]any{"42", "0.25", "true", 7, at, nil},
	)

	n, err := row.Int64("count")
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)

	r, err := row.Float64("ratio")
	require.NoError(t, err)
	assert.Equal(t, 0.25, r)

	assert.True(t, row.Bool("flag"))
	assert.Equal(t, "7", row.String("label"))
	assert.Equal(t, "2024-03-01 12:30:00", row.String("at"))
	assert.Equal(t, "", row.String("missing"))

	_, err = row.Int64("missing")
	assert.Error(t, err)
	_, err = row.Int64("at")
	assert.Error(t, err)

	m := row.Map()
	assert.Len(t, m, 6)
	m["count"] = "changed"
	assert.Equal(t, "42", row.Get("count"))
	assert.Equal(t, []string{"count", "ratio", "flag", "label", "at", "missing"}, row.Columns())
}

func TestCollection_Empty(t *testing.T) {
	c := &result.Collection{}
	assert.True(t, c.IsEmpty())
	assert.Nil(t, c.First())
	assert.Empty(t, c.Pluck("id"))
}
