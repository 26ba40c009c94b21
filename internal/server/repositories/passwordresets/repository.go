// Package passwordresets declares the repository contract for one-time
// password reset tokens. Only token hashes are stored.
package passwordresets

import (
	"context"
	"time"

	"github.com/eulark/eulark/internal/server/models"
)

// Repository defines operations for issuing, finding and consuming reset tokens.
type Repository interface {
	// Upsert stores tokenHash for email with the given expiry, replacing any
	// earlier reset requested for the same address.
	Upsert(ctx context.Context, email, tokenHash string, expiresAt time.Time) error

	// FindByTokenHash returns common.ErrorNotFound when no reset matches.
	FindByTokenHash(ctx context.Context, tokenHash string) (*models.PasswordReset, error)

	// Delete removes the reset for email. Deleting a missing row is not an error.
	Delete(ctx context.Context, email string) error
}
