package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/Senither/Database-Manager-sub000/cli/internal/ui"
	"github.com/Senither/Database-Manager-sub000/config"
	"github.com/Senither/Database-Manager-sub000/database"
	"github.com/Senither/Database-Manager-sub000/internal/debug"
)

var (
	configPath     string
	connectionName string
	debugEnabled   bool
)

var rootCmd = &cobra.Command{
	Use:   "dbm",
	Short: "Build and run SQL statements against MySQL and SQLite",
	Long: `dbm compiles statement manifests into MySQL or SQLite SQL and runs
queries against the connections defined in .dbmanager.yaml.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		ui.SetOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())
		debug.Init(debugEnabled)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the configuration file")
	rootCmd.PersistentFlags().StringVarP(&connectionName, "connection", "c", "", "Connection name (default connection when empty)")
	rootCmd.PersistentFlags().BoolVar(&debugEnabled, "debug", false, "Log compiled and executed statements")
}

// Execute runs the CLI.
func Execute() error {
	defer func() { _ = debug.Sync() }()

	if err := rootCmd.Execute(); err != nil {
		ui.PrintError("%v", err)
		return err
	}
	return nil
}

// newManager creates the connection manager used by commands.
var newManager = func(cfg *config.Config) *database.Manager {
	return database.NewManager(cfg)
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if cfg.Debug && !debugEnabled {
		debug.Init(true)
	}
	return cfg, nil
}

func openManager() (*database.Manager, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return newManager(cfg), nil
}

func closeManager(m *database.Manager) {
	if err := m.Close(); err != nil {
		debug.Warn("failed to close connections", "error", err)
	}
}

// splitList splits a comma separated flag value, dropping empty entries.
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
