package commands

import (
	"fmt"
	"strconv"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/Senither/Database-Manager-sub000/cli/internal/ui"
	"github.com/Senither/Database-Manager-sub000/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a configuration file",
	Long: `Create .dbmanager.yaml with a single default connection.

The values are asked for interactively unless --yes is given, in which
case the flag values are used as they are.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

var (
	initPath    string
	initYes     bool
	initForce   bool
	initAnswers = defaultInitAnswers()
)

// initAnswer holds the values asked for by init.
type initAnswer struct {
	Driver   string `survey:"driver"`
	File     string `survey:"file"`
	Host     string `survey:"host"`
	Port     string `survey:"port"`
	Database string `survey:"database"`
	Username string `survey:"username"`
	Password string `survey:"password"`
	Prefix   string `survey:"prefix"`
	Engine   string `survey:"engine"`
}

func defaultInitAnswers() initAnswer {
	return initAnswer{
		Driver: "sqlite",
		File:   "database.sqlite",
		Host:   "127.0.0.1",
		Engine: "InnoDB",
	}
}

func init() {
	initCmd.Flags().StringVar(&initPath, "path", config.FileName+".yaml", "Where to write the configuration")
	initCmd.Flags().BoolVarP(&initYes, "yes", "y", false, "Use the flag values without prompting")
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing configuration")
	initCmd.Flags().StringVar(&initAnswers.Driver, "driver", initAnswers.Driver, "Driver: sqlite, mysql or postgres")
	initCmd.Flags().StringVar(&initAnswers.File, "file", initAnswers.File, "SQLite database file")
	initCmd.Flags().StringVar(&initAnswers.Host, "host", initAnswers.Host, "Database host")
	initCmd.Flags().StringVar(&initAnswers.Port, "port", initAnswers.Port, "Database port")
	initCmd.Flags().StringVar(&initAnswers.Database, "database", initAnswers.Database, "Database name")
	initCmd.Flags().StringVar(&initAnswers.Username, "username", initAnswers.Username, "Database user")
	initCmd.Flags().StringVar(&initAnswers.Password, "password", initAnswers.Password, "Database password")
	initCmd.Flags().StringVar(&initAnswers.Prefix, "prefix", initAnswers.Prefix, "Table prefix")
	initCmd.Flags().StringVar(&initAnswers.Engine, "engine", initAnswers.Engine, "Default MySQL storage engine")

	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	if exists, _ := afero.Exists(config.AppFs, initPath); exists && !initForce {
		return fmt.Errorf("%s already exists, use --force to overwrite it", initPath)
	}

	ui.PrintHeader("dbm init", "Writing "+initPath)

	answers := initAnswers
	if !initYes {
		if err := askInitAnswers(&answers); err != nil {
			return err
		}
	}

	cfg, err := answers.config()
	if err != nil {
		return err
	}
	if err := config.Save(cfg, initPath); err != nil {
		return err
	}

	ui.PrintSuccess("Wrote %s", initPath)
	ui.PrintInfo("Check the connection with: dbm ping --config %s", initPath)
	return nil
}

func askInitAnswers(a *initAnswer) error {
	if err := survey.AskOne(&survey.Select{
		Message: "Database driver:",
		Options: []string{"sqlite", "mysql", "postgres"},
		Default: a.Driver,
	}, &a.Driver); err != nil {
		return err
	}

	var qs []*survey.Question
	if a.Driver == "sqlite" {
		qs = append(qs, &survey.Question{
			Name:     "file",
			Prompt:   &survey.Input{Message: "Database file:", Default: a.File},
			Validate: survey.Required,
		})
	} else {
		port := a.Port
		if port == "" {
			port = defaultPort(a.Driver)
		}
		qs = append(qs,
			&survey.Question{Name: "host", Prompt: &survey.Input{Message: "Host:", Default: a.Host}, Validate: survey.Required},
			&survey.Question{Name: "port", Prompt: &survey.Input{Message: "Port:", Default: port}, Validate: validatePort},
			&survey.Question{Name: "database", Prompt: &survey.Input{Message: "Database:", Default: a.Database}, Validate: survey.Required},
			&survey.Question{Name: "username", Prompt: &survey.Input{Message: "Username:", Default: a.Username}},
			&survey.Question{Name: "password", Prompt: &survey.Password{Message: "Password:"}},
		)
	}
	qs = append(qs, &survey.Question{Name: "prefix", Prompt: &survey.Input{Message: "Table prefix:", Default: a.Prefix}})
	if a.Driver == "mysql" {
		qs = append(qs, &survey.Question{Name: "engine", Prompt: &survey.Input{Message: "Storage engine:", Default: a.Engine}})
	}

	return survey.Ask(qs, a)
}

func validatePort(v interface{}) error {
	s, _ := v.(string)
	if _, err := strconv.Atoi(s); err != nil {
		return fmt.Errorf("port must be a number")
	}
	return nil
}

func defaultPort(driver string) string {
	switch driver {
	case "mysql":
		return "3306"
	case "postgres":
		return "5432"
	}
	return ""
}

// config builds a configuration with a single default connection.
func (a initAnswer) config() (*config.Config, error) {
	driver := config.NormalizeDriver(a.Driver)
	if driver == "" {
		return nil, fmt.Errorf("%w: unknown driver %q", config.ErrInvalidConfig, a.Driver)
	}

	conn := config.Connection{Driver: driver}
	if driver == "sqlite" {
		conn.File = a.File
	} else {
		conn.Host = a.Host
		conn.Database = a.Database
		conn.Username = a.Username
		conn.Password = a.Password
		port := a.Port
		if port == "" {
			port = defaultPort(driver)
		}
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid port %q", config.ErrInvalidConfig, port)
		}
		conn.Port = p
	}

	cfg := config.Default()
	cfg.Prefix = a.Prefix
	if a.Engine != "" {
		cfg.DefaultEngine = a.Engine
	}
	cfg.Connections = map[string]config.Connection{cfg.DefaultConnection: conn}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
