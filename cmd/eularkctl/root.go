package main

import (
	"context"
	"database/sql"
	"os"
	"time"

	"github.com/eulark/eulark/internal/dbx"
	"github.com/eulark/eulark/internal/server/auth"
	"github.com/eulark/eulark/internal/server/config"
	"github.com/eulark/eulark/internal/server/repositories/repomanager"
	"github.com/samber/oops"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Seams for tests.
var (
	openDB = func(ctx context.Context, dsn string) (*sql.DB, func(), error) {
		return dbx.Open(ctx, dsn, dbx.PoolOptions{MaxConns: 2, ConnectTimeout: 10 * time.Second})
	}
	newRepoManager = func() repomanager.RepositoryManager {
		return repomanager.NewPostgresRepositoryManager()
	}
	newHasher = func() auth.PasswordHasher {
		return auth.NewBcryptHasher(auth.DefaultBcryptCost)
	}
	loadConfig   = config.LoadEnvConfig
	readPassword = term.ReadPassword
	stdinFd      = func() int { return int(os.Stdin.Fd()) }
)

// Global flags available to all subcommands.
var databaseDSN string

// NewRootCmd creates the root command for eularkctl.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "eularkctl",
		Short:         "Operator tools for the eulark server",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&databaseDSN, "dsn", "",
		"PostgreSQL DSN (default $"+config.EnvDatabaseDSN+")")

	cmd.AddCommand(NewMigrateCmd())
	cmd.AddCommand(NewAdminCmd())
	cmd.AddCommand(NewPermissionCmd())
	cmd.AddCommand(NewSponsorCmd())

	return cmd
}

// resolveDSN prefers --dsn over the environment and .env file.
func resolveDSN(cfg *config.Config) (string, error) {
	if databaseDSN != "" {
		return databaseDSN, nil
	}
	if cfg.DatabaseDSN != "" {
		return cfg.DatabaseDSN, nil
	}
	return "", oops.Code("CONFIG_INVALID").Errorf("--dsn or %s is required", config.EnvDatabaseDSN)
}

// withDB opens the pool, runs fn and closes the pool.
func withDB(ctx context.Context, fn func(db *sql.DB, rm repomanager.RepositoryManager) error) error {
	dsn, err := resolveDSN(loadConfig())
	if err != nil {
		return err
	}

	db, closeDB, err := openDB(ctx, dsn)
	if err != nil {
		return oops.Code("DB_CONNECT_FAILED").With("operation", "connect to database").Wrap(err)
	}
	defer closeDB()

	return fn(db, newRepoManager())
}
