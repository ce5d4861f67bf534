package ui_test

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Senither/Database-Manager-sub000/cli/internal/ui"
	"github.com/Senither/Database-Manager-sub000/query/result"
)

func capture(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	color.NoColor = true
	pterm.DisableStyling()

	var out, errOut bytes.Buffer
	prevOut, prevErr := ui.Out, ui.Err
	ui.SetOutput(&out, &errOut)
	t.Cleanup(func() {
		ui.SetOutput(prevOut, prevErr)
		pterm.EnableStyling()
	})
	return &out, &errOut
}

func TestPrintSQL(t *testing.T) {
	out, _ := capture(t)

	require.NoError(t, ui.PrintSQL("SELECT * FROM `users`;", false))
	assert.Equal(t, "SELECT * FROM `users`;\n", out.String())
}

func TestPrintSQL_Pretty(t *testing.T) {
	out, _ := capture(t)

	require.NoError(t, ui.PrintSQL("SELECT 1;", true))
	assert.Contains(t, out.String(), "SELECT")
}

func TestPrintCollection(t *testing.T) {
	out, _ := capture(t)

	c := &result.Collection{
		Columns: []string{"id", "name"},
		Rows: []*result.Row{
			result.NewRow([]string{"id", "name"}, []any{int64(1), "alice"}),
			result.NewRow([]string{"id", "name"}, []any{int64(2), nil}),
		},
	}
	require.NoError(t, ui.PrintCollection(c))

	text := out.String()
	assert.Contains(t, text, "alice")
	assert.Contains(t, text, "NULL")
	assert.Contains(t, text, "2 rows")
}

func TestPrintCollection_Empty(t *testing.T) {
	out, _ := capture(t)

	require.NoError(t, ui.PrintCollection(&result.Collection{Columns: []string{"id"}}))
	assert.Contains(t, out.String(), "No rows returned")
}

func TestMessages(t *testing.T) {
	out, errOut := capture(t)

	ui.PrintSuccess("created %s", "users")
	ui.PrintError("failed %d", 2)
	ui.PrintKeyValues([][2]string{{"driver", "mysql"}, {"version", "8.0.34"}})

	assert.Contains(t, out.String(), "created users")
	assert.Contains(t, out.String(), "driver:  mysql")
	assert.Contains(t, out.String(), "version: 8.0.34")
	assert.Contains(t, errOut.String(), "failed 2")
}
