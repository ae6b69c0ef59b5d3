package main

import (
	"fmt"
	"os"

	"overtime-tracker/internal/cli"
	"overtime-tracker/internal/config"
)

func main() {
	factory := NewRepositoryFactory(getEnvironment())
	root := cli.NewRootCommand(config.NewLoader(), factory.BusinessAPI, os.Stdout, os.Stderr)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.NewErrorHandler().ExitCode(err))
	}
}
