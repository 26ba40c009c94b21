package content

import (
	"context"

	"github.com/eulark/eulark/internal/server/models"
)

const (
	listSponsorsQuery  = `SELECT id, name, amount, message, logo_key, created_at FROM sponsors ORDER BY created_at DESC, id DESC`
	createSponsorQuery = `INSERT INTO sponsors (name, amount, message, logo_key) VALUES ($1, $2, $3, $4) RETURNING id, created_at`
	updateSponsorQuery = `UPDATE sponsors SET name = $1, amount = $2, message = $3, logo_key = $4 WHERE id = $5`
	deleteSponsorQuery = `DELETE FROM sponsors WHERE id = $1`
	setLogoQuery       = `UPDATE sponsors SET logo_key = $1 WHERE id = $2`
)

func (r *PostgresRepository) ListSponsors(ctx context.Context) ([]models.Sponsor, error) {
	return queryList(ctx, r.db, listSponsorsQuery, func(s scanner, m *models.Sponsor) error {
		return s.Scan(&m.ID, &m.Name, &m.Amount, &m.Message, &m.LogoKey, &m.CreatedAt)
	})
}

func (r *PostgresRepository) CreateSponsor(ctx context.Context, m *models.Sponsor) (*models.Sponsor, error) {
	args := []any{m.Name, m.Amount, m.Message, m.LogoKey}
	if err := insertReturning(ctx, r.db, createSponsorQuery, args, &m.ID, &m.CreatedAt); err != nil {
		return nil, err
	}
	return m, nil
}

func (r *PostgresRepository) UpdateSponsor(ctx context.Context, m *models.Sponsor) error {
	return exec(ctx, r.db, updateSponsorQuery, m.Name, m.Amount, m.Message, m.LogoKey, m.ID)
}

func (r *PostgresRepository) DeleteSponsor(ctx context.Context, id int64) error {
	return exec(ctx, r.db, deleteSponsorQuery, id)
}

// SetSponsorLogo points a sponsor at an uploaded logo object.
func (r *PostgresRepository) SetSponsorLogo(ctx context.Context, id int64, key string) error {
	return exec(ctx, r.db, setLogoQuery, key, id)
}
