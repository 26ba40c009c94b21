// Package messages stores contact tickets submitted by players.
package messages

import (
	"context"

	"github.com/eulark/eulark/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, m *models.ContactMessage) (*models.ContactMessage, error)
	// List returns all tickets, newest first.
	List(ctx context.Context) ([]models.ContactMessage, error)
	Delete(ctx context.Context, id int64) error
}
