package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"todolist/internal/app"
	"todolist/migrations"

	"github.com/spf13/cobra"
)

type migrateFunc func(ctx context.Context, db *sql.DB) error

func newMigrateCmd() *cobra.Command {
	var (
		dsn     string
		timeout time.Duration
	)
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply, roll back or inspect schema migrations",
		Long:  `Runs the migrations embedded in the binary against PG_DSN (or --dsn).`,
	}
	cmd.PersistentFlags().StringVar(&dsn, "dsn", os.Getenv("PG_DSN"), "Postgres connection string (default $PG_DSN)")
	cmd.PersistentFlags().DurationVar(&timeout, "timeout", time.Minute, "Give up after this long")

	run := func(fn migrateFunc) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, _ []string) error {
			if dsn == "" {
				return fmt.Errorf("no database: set PG_DSN or pass --dsn")
			}
			db, err := app.OpenPostgres(dsn)
			if err != nil {
				return err
			}
			defer db.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			return fn(ctx, db.DB)
		}
	}

	cmd.AddCommand(
		&cobra.Command{Use: "up", Short: "Apply all pending migrations", Args: cobra.NoArgs, RunE: run(migrations.Up)},
		&cobra.Command{Use: "down", Short: "Roll back the latest migration", Args: cobra.NoArgs, RunE: run(migrations.Down)},
		&cobra.Command{Use: "status", Short: "Show which migrations are applied", Args: cobra.NoArgs, RunE: run(migrations.Status)},
	)
	return cmd
}
