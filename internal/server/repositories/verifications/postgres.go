package verifications

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

func (r *PostgresRepository) Upsert(ctx context.Context, p *models.PendingVerification) error {
	query := `
		INSERT INTO pending_verifications (email, player_name, password_hash, verification_code, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO UPDATE
		SET player_name = EXCLUDED.player_name,
		    password_hash = EXCLUDED.password_hash,
		    verification_code = EXCLUDED.verification_code,
		    expires_at = EXCLUDED.expires_at
	`
	if _, err := r.db.ExecContext(ctx, query, p.Email, p.PlayerName, p.PasswordHash, p.VerificationCode, p.ExpiresAt); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetForUpdate(ctx context.Context, email string) (*models.PendingVerification, error) {
	query := `
		SELECT email, player_name, password_hash, verification_code, expires_at
		FROM pending_verifications
		WHERE email = $1
		FOR UPDATE
	`
	p := &models.PendingVerification{}
	err := r.db.QueryRowContext(ctx, query, email).
		Scan(&p.Email, &p.PlayerName, &p.PasswordHash, &p.VerificationCode, &p.ExpiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, email string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM pending_verifications WHERE email = $1`, email); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
