package content

import (
	"context"

	"github.com/eulark/eulark/internal/server/models"
)

const (
	listCommandsQuery  = `SELECT id, command, description, sort_order FROM server_commands ORDER BY sort_order, id`
	createCommandQuery = `INSERT INTO server_commands (command, description, sort_order) VALUES ($1, $2, $3) RETURNING id`
	updateCommandQuery = `UPDATE server_commands SET command = $1, description = $2, sort_order = $3 WHERE id = $4`
	deleteCommandQuery = `DELETE FROM server_commands WHERE id = $1`
)

func (r *PostgresRepository) ListCommands(ctx context.Context) ([]models.Command, error) {
	return queryList(ctx, r.db, listCommandsQuery, func(s scanner, m *models.Command) error {
		return s.Scan(&m.ID, &m.Command, &m.Description, &m.SortOrder)
	})
}

func (r *PostgresRepository) CreateCommand(ctx context.Context, m *models.Command) (*models.Command, error) {
	if err := insertReturning(ctx, r.db, createCommandQuery, []any{m.Command, m.Description, m.SortOrder}, &m.ID); err != nil {
		return nil, err
	}
	return m, nil
}

func (r *PostgresRepository) UpdateCommand(ctx context.Context, m *models.Command) error {
	return exec(ctx, r.db, updateCommandQuery, m.Command, m.Description, m.SortOrder, m.ID)
}

func (r *PostgresRepository) DeleteCommand(ctx context.Context, id int64) error {
	return exec(ctx, r.db, deleteCommandQuery, id)
}
