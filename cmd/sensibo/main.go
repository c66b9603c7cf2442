package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/sensibo/cmd/sensibo/commands"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := commands.NewRootCommand(commands.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	})

	cobra.OnInitialize(commands.InitConfig)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
