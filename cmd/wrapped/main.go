package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/example/wrapped/internal/cli"
	"github.com/example/wrapped/internal/version"
)

func main() {
	rootCmd := cli.ReportCmd()
	rootCmd.Version = version.String()

	rootCmd.AddCommand(cli.ContactsCmd())
	rootCmd.AddCommand(cli.EmojisCmd())

	// Developer tools
	rootCmd.AddCommand(cli.DemoDBCmd())

	if cmd, err := rootCmd.ExecuteC(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			fmt.Fprint(os.Stderr, cmd.UsageString())
		}
		os.Exit(1)
	}
}
