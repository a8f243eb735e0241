package main

import (
	"fmt"
	"net/http"
	"time"

	"conferencego/internal/adapters/auth"
	"conferencego/internal/adapters/monolith"
	"conferencego/internal/repository/sqlstore"
	"conferencego/internal/services"

	"github.com/spf13/cobra"
)

func newSyncCommand() *cobra.Command {
	var baseURL string
	cmd := &cobra.Command{
		Use:   "sync-conferences",
		Short: "Refresh attendee-side conference mirrors from the monolith listing",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			if baseURL == "" {
				baseURL = cfg.MonolithURL
			}
			db, dialect, err := openDatabase(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer db.Close()

			fetcher := monolith.NewConferenceFetcher(&http.Client{Timeout: cfg.RequestTimeout}, baseURL)
			syncer := services.NewConferenceSyncService(fetcher, sqlstore.NewConferenceVORepository(db, dialect), logger)
			n, err := syncer.Sync(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "synced %d conferences\n", n)
			return nil
		},
	}
	cmd.Flags().StringVar(&baseURL, "monolith-url", "", "base URL of the monolith (default MONOLITH_URL)")
	return cmd
}

func newIssueTokenCommand() *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)
	cmd := &cobra.Command{
		Use:   "issue-token",
		Short: "Print a signed bearer token for the write routes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := setup()
			if err != nil {
				return err
			}
			if cfg.JWTSecret == "" {
				return fmt.Errorf("JWT_SECRET is not set")
			}
			token, err := auth.NewJWTIssuer(cfg.JWTSecret).Issue(subject, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "organizer", "token subject")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	return cmd
}
