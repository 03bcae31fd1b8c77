package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"github.com/pkordes/trip-planner/migrations"
)

func init() {
	var dsn string
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or inspect the Postgres schema migrations",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			rootCmd.PersistentPreRun(cmd, args)
			if dsn == "" {
				dsn = os.Getenv("DATABASE_URL")
			}
			if dsn == "" {
				return fmt.Errorf("--database-url or DATABASE_URL required")
			}
			return nil
		},
	}
	migrateCmd.PersistentFlags().StringVarP(&dsn, "database-url", "d", "", "Postgres connection string (defaults to $DATABASE_URL)")

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withProvider(cmd.Context(), dsn, func(p *goose.Provider) error {
				results, err := p.Up(cmd.Context())
				if err != nil {
					return fmt.Errorf("migrate up: %w", err)
				}
				for _, r := range results {
					fmt.Fprintf(cmd.OutOrStdout(), "applied %s (%s)\n", r.Source.Path, r.Duration)
				}
				if len(results) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "no pending migrations")
				}
				return nil
			})
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withProvider(cmd.Context(), dsn, func(p *goose.Provider) error {
				r, err := p.Down(cmd.Context())
				if err != nil {
					return fmt.Errorf("migrate down: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "rolled back %s\n", r.Source.Path)
				return nil
			})
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show which migrations have been applied",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withProvider(cmd.Context(), dsn, func(p *goose.Provider) error {
				statuses, err := p.Status(cmd.Context())
				if err != nil {
					return fmt.Errorf("migrate status: %w", err)
				}
				printStatus(cmd.OutOrStdout(), statuses)
				return nil
			})
		},
	})

	rootCmd.AddCommand(migrateCmd)
}

// withProvider opens dsn, builds a goose provider over the embedded
// migrations and closes the connection once fn returns.
func withProvider(ctx context.Context, dsn string, fn func(*goose.Provider) error) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	p, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("create goose provider: %w", err)
	}
	return fn(p)
}

func printStatus(w io.Writer, statuses []*goose.MigrationStatus) {
	for _, s := range statuses {
		applied := "pending"
		if s.State == goose.StateApplied {
			applied = s.AppliedAt.Format("2006-01-02 15:04:05")
		}
		fmt.Fprintf(w, "%-40s %s\n", s.Source.Path, applied)
	}
}
