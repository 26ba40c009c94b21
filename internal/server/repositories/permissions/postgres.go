package permissions

import (
	"context"
	"fmt"

	"github.com/eulark/eulark/internal/common"
	"github.com/eulark/eulark/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Exists(ctx context.Context, playerID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM special_permissions WHERE player_id = $1)`

	var ok bool
	if err := r.db.QueryRowContext(ctx, query, playerID).Scan(&ok); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return ok, nil
}

func (r *PostgresRepository) Grant(ctx context.Context, playerID int64) error {
	query := `
		INSERT INTO special_permissions (player_id)
		VALUES ($1)
		ON CONFLICT (player_id) DO NOTHING
	`
	if _, err := r.db.ExecContext(ctx, query, playerID); err != nil {
		if dbx.IsForeignKeyViolation(err) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Revoke(ctx context.Context, playerID int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM special_permissions WHERE player_id = $1`, playerID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
