package dbx

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
)

// PoolOptions bounds the connection pool. Callers beyond MaxConns wait for a
// free connection until their context ends.
type PoolOptions struct {
	MaxConns       int32
	ConnectTimeout time.Duration
}

// Open builds a pgx pool for dsn and exposes it as *sql.DB so repositories can
// stay on database/sql. The returned close func releases both.
func Open(ctx context.Context, dsn string, opts PoolOptions) (*sql.DB, func(), error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("parse dsn: %w", err)
	}

	if opts.MaxConns > 0 {
		cfg.MaxConns = opts.MaxConns
	}
	if opts.ConnectTimeout > 0 {
		cfg.ConnConfig.ConnectTimeout = opts.ConnectTimeout
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("create pool: %w", err)
	}

	db := stdlib.OpenDBFromPool(pool)

	closeFn := func() {
		_ = db.Close()
		pool.Close()
	}

	return db, closeFn, nil
}
