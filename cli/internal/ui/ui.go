package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/pterm/pterm"

	"github.com/Senither/Database-Manager-sub000/query/result"
)

var (
	// Out and Err are where messages are written.
	Out io.Writer = os.Stdout
	Err io.Writer = os.Stderr

	// Colors
	PrimaryColor   = lipgloss.Color("#00D9FF")
	SuccessColor   = lipgloss.Color("#00FF88")
	WarningColor   = lipgloss.Color("#FFB800")
	ErrorColor     = lipgloss.Color("#FF4444")
	SecondaryColor = lipgloss.Color("#6C757D")

	// Styles
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor)

	SecondaryStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor)

	keyColor = color.New(color.FgCyan, color.Bold)
)

// SetOutput redirects Out and Err.
func SetOutput(out, err io.Writer) {
	Out = out
	Err = err
}

// PrintHeader prints a title with a dimmed subtitle.
func PrintHeader(title string, subtitle string) {
	header := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(PrimaryColor).
		Padding(0, 2).
		Render(
			lipgloss.JoinVertical(
				lipgloss.Left,
				TitleStyle.Render(title),
				SecondaryStyle.Render(subtitle),
			),
		)

	fmt.Fprintln(Out, header)
}

// PrintSuccess prints a success message
func PrintSuccess(format string, args ...interface{}) {
	fmt.Fprintln(Out, SuccessStyle.Render("✓ "+fmt.Sprintf(format, args...)))
}

// PrintError prints an error message
func PrintError(format string, args ...interface{}) {
	fmt.Fprintln(Err, ErrorStyle.Render("✗ "+fmt.Sprintf(format, args...)))
}

// PrintWarning prints a warning message
func PrintWarning(format string, args ...interface{}) {
	fmt.Fprintln(Out, WarningStyle.Render("⚠ "+fmt.Sprintf(format, args...)))
}

// PrintInfo prints an info message
func PrintInfo(format string, args ...interface{}) {
	fmt.Fprintln(Out, InfoStyle.Render("ℹ "+fmt.Sprintf(format, args...)))
}

// PrintSQL prints a compiled statement. Pretty output is rendered as a
// highlighted markdown code block.
func PrintSQL(sql string, pretty bool) error {
	if !pretty {
		_, err := fmt.Fprintln(Out, sql)
		return err
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(0),
	)
	if err != nil {
		return err
	}

	out, err := r.Render("```sql\n" + sql + "\n```\n")
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(Out, out)
	return err
}

// PrintTable prints a table using pterm
func PrintTable(headers []string, rows [][]string) error {
	data := pterm.TableData{headers}
	data = append(data, rows...)
	return pterm.DefaultTable.WithHasHeader().WithWriter(Out).WithData(data).Render()
}

// PrintCollection prints query results as a table followed by the row count.
func PrintCollection(c *result.Collection) error {
	if c.IsEmpty() {
		PrintInfo("No rows returned")
		return nil
	}

	rows := make([][]string, 0, c.Len())
	for _, row := range c.Rows {
		cells := make([]string, len(c.Columns))
		for i, column := range c.Columns {
			if row.Get(column) == nil {
				cells[i] = SecondaryStyle.Render("NULL")
				continue
			}
			cells[i] = row.String(column)
		}
		rows = append(rows, cells)
	}
	if err := PrintTable(c.Columns, rows); err != nil {
		return err
	}

	noun := "rows"
	if c.Len() == 1 {
		noun = "row"
	}
	fmt.Fprintln(Out, SecondaryStyle.Render(fmt.Sprintf("%d %s", c.Len(), noun)))
	return nil
}

// PrintKeyValues prints aligned key/value pairs.
func PrintKeyValues(pairs [][2]string) {
	width := 0
	for _, p := range pairs {
		if len(p[0]) > width {
			width = len(p[0])
		}
	}
	for _, p := range pairs {
		keyColor.Fprint(Out, p[0]+":"+strings.Repeat(" ", width-len(p[0])+1))
		fmt.Fprintln(Out, p[1])
	}
}
