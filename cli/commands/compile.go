package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Senither/Database-Manager-sub000/cli/internal/manifest"
	"github.com/Senither/Database-Manager-sub000/cli/internal/ui"
	"github.com/Senither/Database-Manager-sub000/cli/internal/watch"
	"github.com/Senither/Database-Manager-sub000/config"
	"github.com/Senither/Database-Manager-sub000/query/builder"
)

var compileCmd = &cobra.Command{
	Use:   "compile <manifest>",
	Short: "Compile a statement manifest to SQL",
	Long: `Compile a YAML statement manifest into SQL without touching a database.

The dialect, table prefix and engine come from the selected connection
unless --dialect or --prefix are given.`,
	Args: cobra.ExactArgs(1),
	RunE: runCompile,
}

var (
	compileDialect string
	compilePrefix  string
	compilePretty  bool
	compileWatch   bool
)

func init() {
	compileCmd.Flags().StringVar(&compileDialect, "dialect", "", "Dialect to compile for (mysql or sqlite)")
	compileCmd.Flags().StringVar(&compilePrefix, "prefix", "", "Table prefix, overrides the configured prefix")
	compileCmd.Flags().BoolVar(&compilePretty, "pretty", false, "Highlight the SQL")
	compileCmd.Flags().BoolVarP(&compileWatch, "watch", "w", false, "Recompile when the manifest changes")

	rootCmd.AddCommand(compileCmd)
}

func runCompile(cmd *cobra.Command, args []string) error {
	path := args[0]
	prefixSet := cmd.Flags().Changed("prefix")

	compile := func() error {
		sql, err := compileManifest(path, prefixSet)
		if err != nil {
			return err
		}
		return ui.PrintSQL(sql, compilePretty)
	}

	if !compileWatch {
		return compile()
	}

	w, err := watch.NewWatcher(path, keepWatching(compile))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ui.PrintInfo("Watching %s, press Ctrl+C to stop", path)
	return w.Run(ctx)
}

// keepWatching reports compile failures as warnings so an invalid edit
// does not stop the watcher.
func keepWatching(compile func() error) func() error {
	return func() error {
		if err := compile(); err != nil {
			ui.PrintWarning("%v", err)
		}
		return nil
	}
}

func compileManifest(path string, prefixSet bool) (string, error) {
	m, err := manifest.Load(config.AppFs, path)
	if err != nil {
		return "", err
	}

	target, err := compileTarget(m.Connection, prefixSet)
	if err != nil {
		return "", err
	}

	q := builder.New(nil)
	if err := m.Apply(q); err != nil {
		return "", err
	}
	return q.ToSQLFor(target)
}

// compileTarget resolves dialect, prefix and engine from the configuration
// and applies the command line overrides.
func compileTarget(manifestConnection string, prefixSet bool) (builder.Static, error) {
	cfg, err := loadConfig()
	if err != nil {
		return builder.Static{}, err
	}

	name := connectionName
	if name == "" {
		name = manifestConnection
	}
	name, conn, err := cfg.Connection(name)
	if err != nil {
		return builder.Static{}, err
	}

	target := builder.Static{
		DialectName:   config.NormalizeDriver(conn.Driver),
		TablePrefix:   cfg.PrefixFor(name),
		DefaultEngine: cfg.EngineFor(name),
	}
	if compileDialect != "" {
		target.DialectName = compileDialect
	}
	if prefixSet {
		target.TablePrefix = compilePrefix
	}
	return target, nil
}
