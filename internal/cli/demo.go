package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/wrapped/internal/config"
	"github.com/example/wrapped/internal/db"
)

// DemoDBCmd returns the demo-db command for developer use
func DemoDBCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo-db <path>",
		Short: "Create a small sample message database",
		Long: `Create a new sqlite database with the expected schema and a handful of
sample messages, for trying the report without a real export.

Examples:
  wrapped demo-db /tmp/demo.db && wrapped /tmp/demo.db`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			driver := config.EngineSQLite
			if engine, _ := cmd.Flags().GetString(flagEngine); engine == config.EnginePureGo {
				driver = config.EnginePureGo
			}

			database, err := db.Create(args[0], driver)
			if err != nil {
				return err
			}
			defer database.Close()

			if err := db.SeedFixtures(database); err != nil {
				return fmt.Errorf("failed to seed demo database: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Created demo database %s\n", args[0])
			return nil
		},
	}
}
