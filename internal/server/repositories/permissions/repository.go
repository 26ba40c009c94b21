// Package permissions stores the special building-list permission flags.
package permissions

import "context"

type Repository interface {
	Exists(ctx context.Context, playerID int64) (bool, error)

	// Grant is idempotent. An unknown player yields common.ErrorNotFound.
	Grant(ctx context.Context, playerID int64) error

	// Revoke is idempotent.
	Revoke(ctx context.Context, playerID int64) error
}
