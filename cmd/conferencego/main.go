// Command conferencego serves the conference API and its maintenance tasks.
//
//	conferencego serve              run the HTTP API
//	conferencego migrate            create the schema and seed lookup rows
//	conferencego sync-conferences   refresh conference mirrors from the monolith
//	conferencego issue-token        print a bearer token for write routes
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"conferencego/config"
	"conferencego/internal/repository/sqlstore"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "conferencego",
		Short:        "Conference management API",
		SilenceUsage: true,
	}
	root.AddCommand(
		newServeCommand(),
		newMigrateCommand(),
		newSyncCommand(),
		newIssueTokenCommand(),
	)
	return root
}

// setup loads configuration and builds the logger shared by every command.
func setup() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	return cfg, config.NewLogger(cfg), nil
}

// openDatabase opens the configured database and applies the schema.
func openDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*sql.DB, sqlstore.Dialect, error) {
	dialect, err := sqlstore.ParseDialect(cfg.DBDriver)
	if err != nil {
		return nil, "", err
	}
	db, err := sqlstore.Open(ctx, dialect, cfg.DBUrl)
	if err != nil {
		return nil, "", err
	}
	if err := sqlstore.Migrate(ctx, db, dialect); err != nil {
		_ = db.Close()
		return nil, "", fmt.Errorf("migrate: %w", err)
	}
	logger.Info("database ready", "driver", dialect)
	return db, dialect, nil
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the schema and seed states and statuses",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			db, _, err := openDatabase(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			return db.Close()
		},
	}
}
