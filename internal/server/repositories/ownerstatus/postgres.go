package ownerstatus

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/eulark/eulark/internal/common"
	"github.com/eulark/eulark/internal/dbx"
	"github.com/eulark/eulark/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(ctx context.Context) (*models.OwnerStatus, error) {
	s := &models.OwnerStatus{}
	err := r.db.QueryRowContext(ctx, `SELECT status, updated_at FROM owner_status WHERE id = 1`).Scan(&s.Status, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}

// Set writes status, creating the singleton row when it is missing.
func (r *PostgresRepository) Set(ctx context.Context, status string) error {
	query := `
		INSERT INTO owner_status (id, status, updated_at)
		VALUES (1, $1, now())
		ON CONFLICT (id) DO UPDATE
		SET status = EXCLUDED.status,
		    updated_at = EXCLUDED.updated_at
	`
	if _, err := r.db.ExecContext(ctx, query, status); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
