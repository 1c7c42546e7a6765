package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/example/wrapped/internal/config"
	"github.com/example/wrapped/internal/wire"
)

// ContactsCmd returns the contacts command
func ContactsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "contacts [db-path]",
		Short: "Show the ranked contact list as a table",
		Long: `Show the ranked contact list with sent, received and total counts.

Contacts named by the override table are marked [override]; contacts added
by the must-include rule are marked [must-include].

Examples:
  wrapped contacts ~/data/messages.db
  wrapped contacts --limit 20`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd, args, func(ctx context.Context, services *wire.Services, _ *config.Config) error {
				return services.ReportAdapterWithOutput(cmd.OutOrStdout()).Contacts(ctx)
			})
		},
	}
}

// EmojisCmd returns the emojis command
func EmojisCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "emojis <identifier>",
		Short: "Show the top emoji sent to one contact",
		Long: `Show the top emoji sent to one contact identifier (phone number or email)
as JSON. The database comes from --db, the config file or the environment.

Examples:
  wrapped emojis +15550000001 --db ~/data/messages.db`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			identifier := args[0]
			return withServices(cmd, nil, func(ctx context.Context, services *wire.Services, _ *config.Config) error {
				return services.ReportAdapterWithOutput(cmd.OutOrStdout()).Emojis(ctx, identifier)
			})
		},
	}
}
