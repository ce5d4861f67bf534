package main

import (
	"os"

	"github.com/Senither/Database-Manager-sub000/cli/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
