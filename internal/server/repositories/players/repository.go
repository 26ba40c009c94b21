// Package players declares the repository contract for verified player
// accounts.
package players

import (
	"context"

	"github.com/eulark/eulark/internal/server/models"
)

// Repository defines storage operations on the players table.
type Repository interface {
	// Create inserts a player and fills in ID and CreatedAt. A duplicate
	// name or email yields common.ErrorConflict.
	Create(ctx context.Context, p *models.Player) (*models.Player, error)

	// ExistsByNameOrEmail reports whether any player already uses name or email.
	ExistsByNameOrEmail(ctx context.Context, name, email string) (bool, error)

	// GetByIdentifier looks a player up by player name or e-mail.
	GetByIdentifier(ctx context.Context, identifier string) (*models.Player, error)

	GetByID(ctx context.Context, id int64) (*models.Player, error)
	GetByEmail(ctx context.Context, email string) (*models.Player, error)

	UpdatePassword(ctx context.Context, id int64, passwordHash string) error

	// List returns all players, newest first, with their permission flag.
	List(ctx context.Context) ([]models.PlayerWithPermission, error)

	Delete(ctx context.Context, id int64) error
}
