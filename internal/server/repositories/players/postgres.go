package players

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

func (r *PostgresRepository) Create(ctx context.Context, p *models.Player) (*models.Player, error) {
	query :=
		`INSERT INTO players (player_name, email, password_hash)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query, p.PlayerName, p.Email, p.PasswordHash).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorConflict
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return p, nil
}

func (r *PostgresRepository) ExistsByNameOrEmail(ctx context.Context, name, email string) (bool, error) {
	query :=
		`SELECT EXISTS (SELECT 1 FROM players WHERE email = $1 OR player_name = $2)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, email, name).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return exists, nil
}

func (r *PostgresRepository) GetByIdentifier(ctx context.Context, identifier string) (*models.Player, error) {
	query :=
		`SELECT id, player_name, email, password_hash, created_at FROM players
		 WHERE player_name = $1 OR email = $1
		 ORDER BY id
		 LIMIT 1
		 `

	return r.getOne(ctx, query, identifier)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Player, error) {
	query :=
		`SELECT id, player_name, email, password_hash, created_at FROM players
		 WHERE id = $1
		 `

	return r.getOne(ctx, query, id)
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.Player, error) {
	query :=
		`SELECT id, player_name, email, password_hash, created_at FROM players
		 WHERE email = $1
		 `

	return r.getOne(ctx, query, email)
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, arg any) (*models.Player, error) {
	p := &models.Player{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&p.ID, &p.PlayerName, &p.Email, &p.PasswordHash, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return p, nil
}

func (r *PostgresRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	query :=
		`UPDATE players SET password_hash = $1
		 WHERE id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, passwordHash, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return dbx.RequireAffected(res)
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.PlayerWithPermission, error) {
	query :=
		`SELECT p.id, p.player_name, p.email, p.created_at, sp.player_id IS NOT NULL
		 FROM players p
		 LEFT JOIN special_permissions sp ON sp.player_id = p.id
		 ORDER BY p.created_at DESC, p.id DESC
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []models.PlayerWithPermission{}
	for rows.Next() {
		var p models.PlayerWithPermission
		if err := rows.Scan(&p.ID, &p.PlayerName, &p.Email, &p.CreatedAt, &p.HasPermission); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM players WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return dbx.RequireAffected(res)
}
