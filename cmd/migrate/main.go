package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"topic-quiz/internal/config"
	"topic-quiz/internal/database"
	"topic-quiz/internal/logger"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the Oracle schema of the topic quiz service",
	}
	cmd.AddCommand(newUpCmd(), newListCmd())
	return cmd
}

func newUpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply every pending migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(cmd.Context(), func(ctx context.Context, m *database.Migrator) error {
				ran, err := m.Up(ctx)
				if err != nil {
					return err
				}
				if len(ran) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
					return nil
				}
				for _, mig := range ran {
					fmt.Fprintf(cmd.OutOrStdout(), "applied %d_%s\n", mig.Version, mig.Identifier)
				}
				return nil
			})
		},
	}
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print known migrations and whether they are applied",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(cmd.Context(), func(ctx context.Context, m *database.Migrator) error {
				migrations, err := m.List(ctx)
				if err != nil {
					return err
				}
				for _, mig := range migrations {
					state := "pending"
					if mig.Applied {
						state = "applied"
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%4d  %-40s %s\n", mig.Version, mig.Identifier, state)
				}
				return nil
			})
		},
	}
}

func withMigrator(ctx context.Context, fn func(context.Context, *database.Migrator) error) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("Failed to load configuration: %v", err)
		return err
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		return err
	}
	defer logger.Sync()

	db, err := database.NewSQLXOracleDB(ctx, cfg.GetDSN())
	if err != nil {
		return err
	}
	defer func(db *sqlx.DB) { _ = db.Close() }(db)

	m, err := database.NewEmbeddedMigrator(db)
	if err != nil {
		return err
	}
	defer m.Close()

	return fn(ctx, m)
}
