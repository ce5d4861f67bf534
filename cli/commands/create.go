package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/Senither/Database-Manager-sub000/cli/internal/manifest"
	"github.com/Senither/Database-Manager-sub000/cli/internal/ui"
	"github.com/Senither/Database-Manager-sub000/config"
	"github.com/Senither/Database-Manager-sub000/query/builder"
)

var createCmd = &cobra.Command{
	Use:   "create <manifest>",
	Short: "Create the table described by a manifest",
	Long: `Create a table from the fields listed in a manifest.

Example manifest:
  table: users
  fields:
    - {name: id, type: increments}
    - {name: email, type: string, nullable: true}
    - {name: created_at, type: timestamp, default_raw: CURRENT_TIMESTAMP}`,
	Args: cobra.ExactArgs(1),
	RunE: runCreate,
}

var (
	createIfNotExists bool
	createDryRun      bool
)

func init() {
	createCmd.Flags().BoolVar(&createIfNotExists, "if-not-exists", false, "Skip the table if it already exists")
	createCmd.Flags().BoolVar(&createDryRun, "dry-run", false, "Print the SQL instead of running it")

	rootCmd.AddCommand(createCmd)
}

func runCreate(cmd *cobra.Command, args []string) error {
	mf, err := manifest.Load(config.AppFs, args[0])
	if err != nil {
		return err
	}
	mf.Kind = "create"
	if createIfNotExists {
		mf.IfNotExists = true
	}

	m, err := openManager()
	if err != nil {
		return err
	}
	defer closeManager(m)

	q := builder.New(m)
	if err := mf.Apply(q); err != nil {
		return err
	}
	if connectionName != "" {
		q.Connection(connectionName)
	}

	if createDryRun {
		sql, err := q.ToSQL()
		if err != nil {
			return err
		}
		return ui.PrintSQL(sql, false)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	if _, err := q.Exec(ctx); err != nil {
		return err
	}
	ui.PrintSuccess("Created table %s", mf.Table)
	return nil
}
