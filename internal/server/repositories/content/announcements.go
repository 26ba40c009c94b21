package content

import (
	"context"

	"github.com/eulark/eulark/internal/server/models"
)

const (
	listAnnouncementsQuery  = `SELECT id, title, content, created_at FROM announcements ORDER BY created_at DESC, id DESC`
	createAnnouncementQuery = `INSERT INTO announcements (title, content) VALUES ($1, $2) RETURNING id, created_at`
	updateAnnouncementQuery = `UPDATE announcements SET title = $1, content = $2 WHERE id = $3`
	deleteAnnouncementQuery = `DELETE FROM announcements WHERE id = $1`
)

func (r *PostgresRepository) ListAnnouncements(ctx context.Context) ([]models.Announcement, error) {
	return queryList(ctx, r.db, listAnnouncementsQuery, func(s scanner, m *models.Announcement) error {
		return s.Scan(&m.ID, &m.Title, &m.Content, &m.CreatedAt)
	})
}

func (r *PostgresRepository) CreateAnnouncement(ctx context.Context, m *models.Announcement) (*models.Announcement, error) {
	if err := insertReturning(ctx, r.db, createAnnouncementQuery, []any{m.Title, m.Content}, &m.ID, &m.CreatedAt); err != nil {
		return nil, err
	}
	return m, nil
}

func (r *PostgresRepository) UpdateAnnouncement(ctx context.Context, m *models.Announcement) error {
	return exec(ctx, r.db, updateAnnouncementQuery, m.Title, m.Content, m.ID)
}

func (r *PostgresRepository) DeleteAnnouncement(ctx context.Context, id int64) error {
	return exec(ctx, r.db, deleteAnnouncementQuery, id)
}
