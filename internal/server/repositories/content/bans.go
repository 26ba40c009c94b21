package content

import (
	"context"

	"github.com/eulark/eulark/internal/server/models"
)

const (
	listBansQuery  = `SELECT id, player_name, reason, ban_date FROM banned_players ORDER BY ban_date DESC, id DESC`
	createBanQuery = `INSERT INTO banned_players (player_name, reason, ban_date) VALUES ($1, $2, $3) RETURNING id`
	updateBanQuery = `UPDATE banned_players SET player_name = $1, reason = $2, ban_date = $3 WHERE id = $4`
	deleteBanQuery = `DELETE FROM banned_players WHERE id = $1`
)

func (r *PostgresRepository) ListBans(ctx context.Context) ([]models.Ban, error) {
	return queryList(ctx, r.db, listBansQuery, func(s scanner, m *models.Ban) error {
		return s.Scan(&m.ID, &m.PlayerName, &m.Reason, &m.BanDate)
	})
}

func (r *PostgresRepository) CreateBan(ctx context.Context, m *models.Ban) (*models.Ban, error) {
	if err := insertReturning(ctx, r.db, createBanQuery, []any{m.PlayerName, m.Reason, m.BanDate}, &m.ID); err != nil {
		return nil, err
	}
	return m, nil
}

func (r *PostgresRepository) UpdateBan(ctx context.Context, m *models.Ban) error {
	return exec(ctx, r.db, updateBanQuery, m.PlayerName, m.Reason, m.BanDate, m.ID)
}

func (r *PostgresRepository) DeleteBan(ctx context.Context, id int64) error {
	return exec(ctx, r.db, deleteBanQuery, id)
}
