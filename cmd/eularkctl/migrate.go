package main

import (
	"database/sql"

	"github.com/eulark/eulark/internal/server/repositories/repomanager"
	"github.com/samber/oops"
	"github.com/spf13/cobra"
)

// NewMigrateCmd creates the migrate subcommand.
func NewMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE:  runMigrate,
	}
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	return withDB(cmd.Context(), func(db *sql.DB, rm repomanager.RepositoryManager) error {
		cmd.Println("Running migrations...")
		if err := rm.RunMigrations(cmd.Context(), db); err != nil {
			return oops.Code("MIGRATION_FAILED").With("operation", "run migrations").Wrap(err)
		}
		cmd.Println("Migrations completed successfully")
		return nil
	})
}
