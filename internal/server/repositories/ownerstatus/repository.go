// Package ownerstatus persists whether the server owner is awake.
package ownerstatus

import (
	"context"

	"github.com/eulark/eulark/internal/server/models"
)

type Repository interface {
	// Get returns the current status, or common.ErrorNotFound if the row
	// was never seeded.
	Get(ctx context.Context) (*models.OwnerStatus, error)
	Set(ctx context.Context, status string) error
}
