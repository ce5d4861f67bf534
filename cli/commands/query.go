package commands

import (
	"context"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Senither/Database-Manager-sub000/cli/internal/filter"
	"github.com/Senither/Database-Manager-sub000/cli/internal/ui"
	"github.com/Senither/Database-Manager-sub000/query/builder"
)

var queryCmd = &cobra.Command{
	Use:   "query <table>",
	Short: "Select rows from a table",
	Long: `Build a SELECT statement from flags and run it.

Examples:
  dbm query users --where "age >= 18 and (role = 'admin' or verified is not null)"
  dbm query users --select id,name --order created_at:desc --take 10
  dbm query quotes --order random --take 1 --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

var (
	querySelect  string
	queryWhere   string
	queryOrder   string
	queryTake    int
	querySkip    int
	queryDryRun  bool
	queryTimeout time.Duration
)

func init() {
	queryCmd.Flags().StringVar(&querySelect, "select", "", "Comma separated columns to select")
	queryCmd.Flags().StringVar(&queryWhere, "where", "", "Filter expression")
	queryCmd.Flags().StringVar(&queryOrder, "order", "", "Comma separated column[:asc|desc] entries, or random")
	queryCmd.Flags().IntVar(&queryTake, "take", -1, "Maximum number of rows")
	queryCmd.Flags().IntVar(&querySkip, "skip", -1, "Number of rows to skip")
	queryCmd.Flags().BoolVar(&queryDryRun, "dry-run", false, "Print the SQL instead of running it")
	queryCmd.Flags().DurationVar(&queryTimeout, "timeout", 30*time.Second, "Query timeout")

	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	m, err := openManager()
	if err != nil {
		return err
	}
	defer closeManager(m)

	q := m.On(connectionName, args[0])
	if err := buildQuery(q); err != nil {
		return err
	}

	if queryDryRun {
		sql, err := q.ToSQL()
		if err != nil {
			return err
		}
		return ui.PrintSQL(sql, false)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), queryTimeout)
	defer cancel()

	rows, err := q.Get(ctx)
	if err != nil {
		return err
	}
	return ui.PrintCollection(rows)
}

func buildQuery(q *builder.QueryBuilder) error {
	if columns := splitList(querySelect); len(columns) > 0 {
		q.Select(columns...)
	}
	if err := filter.Apply(q, queryWhere); err != nil {
		return err
	}
	for _, entry := range splitList(queryOrder) {
		column, direction, _ := strings.Cut(entry, ":")
		switch {
		case strings.EqualFold(column, "random"):
			q.InRandomOrder()
		case direction == "":
			q.OrderBy(column)
		default:
			q.OrderBy(column, direction)
		}
	}
	if queryTake >= 0 {
		q.Take(queryTake)
	}
	if querySkip >= 0 {
		q.Skip(querySkip)
	}
	return q.Err()
}
