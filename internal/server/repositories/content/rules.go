package content

import (
	"context"

	"github.com/eulark/eulark/internal/server/models"
)

const (
	listRulesQuery  = `SELECT id, title, content, sort_order FROM server_rules ORDER BY sort_order, id`
	createRuleQuery = `INSERT INTO server_rules (title, content, sort_order) VALUES ($1, $2, $3) RETURNING id`
	updateRuleQuery = `UPDATE server_rules SET title = $1, content = $2, sort_order = $3 WHERE id = $4`
	deleteRuleQuery = `DELETE FROM server_rules WHERE id = $1`
)

func (r *PostgresRepository) ListRules(ctx context.Context) ([]models.Rule, error) {
	return queryList(ctx, r.db, listRulesQuery, func(s scanner, m *models.Rule) error {
		return s.Scan(&m.ID, &m.Title, &m.Content, &m.SortOrder)
	})
}

func (r *PostgresRepository) CreateRule(ctx context.Context, m *models.Rule) (*models.Rule, error) {
	if err := insertReturning(ctx, r.db, createRuleQuery, []any{m.Title, m.Content, m.SortOrder}, &m.ID); err != nil {
		return nil, err
	}
	return m, nil
}

func (r *PostgresRepository) UpdateRule(ctx context.Context, m *models.Rule) error {
	return exec(ctx, r.db, updateRuleQuery, m.Title, m.Content, m.SortOrder, m.ID)
}

func (r *PostgresRepository) DeleteRule(ctx context.Context, id int64) error {
	return exec(ctx, r.db, deleteRuleQuery, id)
}
