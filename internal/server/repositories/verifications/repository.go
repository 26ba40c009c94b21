// Package verifications stores registrations that wait for their e-mail code.
package verifications

import (
	"context"

	"github.com/eulark/eulark/internal/server/models"
)

type Repository interface {
	// Upsert stores p, replacing any pending registration for the same email.
	Upsert(ctx context.Context, p *models.PendingVerification) error

	// GetForUpdate returns the pending row for email and locks it until the
	// surrounding transaction ends. Returns common.ErrorNotFound if absent.
	GetForUpdate(ctx context.Context, email string) (*models.PendingVerification, error)

	Delete(ctx context.Context, email string) error
}
