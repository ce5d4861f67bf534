package commands

import (
	"context"
	"time"

	goversion "github.com/hashicorp/go-version"
	"github.com/spf13/cobra"

	"github.com/Senither/Database-Manager-sub000/cli/internal/ui"
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check a connection and report the server version",
	Args:  cobra.NoArgs,
	RunE:  runPing,
}

var (
	pingMinVersion string
	pingTimeout    time.Duration
)

func init() {
	pingCmd.Flags().StringVar(&pingMinVersion, "min-version", "", `Required server version, for example ">= 5.7"`)
	pingCmd.Flags().DurationVar(&pingTimeout, "timeout", 5*time.Second, "Connection timeout")

	rootCmd.AddCommand(pingCmd)
}

func runPing(cmd *cobra.Command, args []string) error {
	m, err := openManager()
	if err != nil {
		return err
	}
	defer closeManager(m)

	conn, err := m.Open(connectionName)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), pingTimeout)
	defer cancel()

	if err := conn.Ping(ctx); err != nil {
		return err
	}

	var v *goversion.Version
	if pingMinVersion != "" {
		v, err = conn.RequireVersion(ctx, pingMinVersion)
	} else {
		v, err = conn.ServerVersion(ctx)
	}
	if err != nil {
		return err
	}

	ui.PrintSuccess("Connected to %s", conn.Name())
	ui.PrintKeyValues([][2]string{
		{"Dialect", conn.Dialect()},
		{"Server", v.String()},
		{"Prefix", conn.Prefix()},
	})
	return nil
}
