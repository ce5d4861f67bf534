package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Senither/Database-Manager-sub000/cli/internal/ui"
	"github.com/Senither/Database-Manager-sub000/cli/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := version.Get()
		if versionRequire != "" {
			ok, err := info.Satisfies(versionRequire)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("dbm %s does not satisfy %q", info.Version, versionRequire)
			}
		}
		if versionShort {
			fmt.Fprintln(cmd.OutOrStdout(), info.String())
			return nil
		}
		ui.PrintKeyValues(info.Pairs())
		return nil
	},
}

var (
	versionShort   bool
	versionRequire string
)

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print a single line")
	versionCmd.Flags().StringVar(&versionRequire, "require", "", `Fail unless the version satisfies a constraint, for example ">= 0.1"`)

	rootCmd.AddCommand(versionCmd)
}
