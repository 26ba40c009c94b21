// Package users provides storage for administrator accounts.
package users

import (
	"context"

	"github.com/eulark/eulark/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, admin *models.Admin) (*models.Admin, error)
	GetByUsername(ctx context.Context, username string) (*models.Admin, error)
}
