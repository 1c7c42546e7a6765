package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	cliadapter "github.com/example/wrapped/internal/adapters/cli"
	"github.com/example/wrapped/internal/config"
	"github.com/example/wrapped/internal/logging"
	"github.com/example/wrapped/internal/wire"
)

// UsageError reports a missing or malformed command-line argument.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string {
	return e.Msg
}

// Flag names shared by every command
const (
	flagConfig      = "config"
	flagDB          = "db"
	flagEngine      = "engine"
	flagWindowStart = "window-start"
	flagLimit       = "limit"
	flagEmojiLimit  = "emoji-limit"
	flagContactsOut = "contacts-out"
	flagEmojiOut    = "emoji-out"
	flagVerbose     = "verbose"
)

// ReportCmd returns the root report command
func ReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wrapped [db-path]",
		Short: "Rank message contacts and report their emoji usage",
		Long: `Rank 1:1 message contacts by volume since the window start and report
the emoji each one was sent most.

The emoji report is printed to stdout as JSON. The ranked contact summary
is written to contacts_output (or --contacts-out) when set.

Configuration is read from wrapped.yaml in the working directory (or --config),
then .env and WRAPPED_* environment variables, then flags.

Examples:
  wrapped ~/data/messages.db                          # sqlite export
  wrapped data.duckdb --engine duckdb                 # query through the duckdb CLI
  wrapped --config wrapped.yaml --contacts-out top-contacts.json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd, args, func(ctx context.Context, services *wire.Services, cfg *config.Config) error {
				return services.ReportAdapterWithOutput(cmd.OutOrStdout()).Run(ctx, cliadapter.Sinks{
					ContactsPath: cfg.ContactsOutput,
					EmojiPath:    cfg.EmojiOutput,
				})
			})
		},
	}

	flags := cmd.PersistentFlags()
	flags.String(flagConfig, "", "config file (default wrapped.yaml if present)")
	flags.String(flagDB, "", "path to the message database")
	flags.String(flagEngine, "", "query engine: sqlite3, sqlite or duckdb")
	flags.String(flagWindowStart, "", "only count messages on or after this date (YYYY-MM-DD)")
	flags.Int(flagLimit, 0, "number of top contacts to report")
	flags.Int(flagEmojiLimit, 0, "number of emoji per contact")
	flags.String(flagContactsOut, "", "write the contact summary JSON to this file")
	flags.String(flagEmojiOut, "", "also write the emoji report JSON to this file")
	flags.BoolP(flagVerbose, "v", false, "debug logging on stderr")

	return cmd
}

// loadConfig resolves the config file, then applies flags and the positional path.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	flags := cmd.Flags()

	configPath, _ := flags.GetString(flagConfig)
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	if flags.Changed(flagDB) {
		cfg.DBPath, _ = flags.GetString(flagDB)
	}
	if len(args) > 0 && args[0] != "" {
		cfg.DBPath = args[0]
	}
	if flags.Changed(flagEngine) {
		cfg.Engine, _ = flags.GetString(flagEngine)
	}
	if flags.Changed(flagWindowStart) {
		cfg.WindowStart, _ = flags.GetString(flagWindowStart)
	}
	if flags.Changed(flagLimit) {
		cfg.TopContactLimit, _ = flags.GetInt(flagLimit)
	}
	if flags.Changed(flagEmojiLimit) {
		cfg.TopEmojiLimit, _ = flags.GetInt(flagEmojiLimit)
	}
	if flags.Changed(flagContactsOut) {
		cfg.ContactsOutput, _ = flags.GetString(flagContactsOut)
	}
	if flags.Changed(flagEmojiOut) {
		cfg.EmojiOutput, _ = flags.GetString(flagEmojiOut)
	}
	if verbose, _ := flags.GetBool(flagVerbose); verbose {
		cfg.Verbose = true
	}

	if cfg.DBPath == "" {
		return nil, &UsageError{Msg: fmt.Sprintf("missing database path: pass it as an argument, with --%s, db_path in config or %s", flagDB, config.EnvDBPath)}
	}
	return cfg, nil
}

// withServices loads config, builds the logger and services, and runs fn.
func withServices(cmd *cobra.Command, args []string, fn func(ctx context.Context, services *wire.Services, cfg *config.Config) error) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	services, err := wire.New(cfg, logger)
	if err != nil {
		logger.Error("failed to open message store", zap.Error(err))
		return err
	}
	defer services.Close()

	return fn(cmd.Context(), services, cfg)
}
