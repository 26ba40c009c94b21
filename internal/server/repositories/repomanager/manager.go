package repomanager

import (
	"context"
	"database/sql"

	"github.com/eulark/eulark/internal/dbx"
	"github.com/eulark/eulark/internal/server/repositories/content"
	"github.com/eulark/eulark/internal/server/repositories/messages"
	"github.com/eulark/eulark/internal/server/repositories/ownerstatus"
	"github.com/eulark/eulark/internal/server/repositories/passwordresets"
	"github.com/eulark/eulark/internal/server/repositories/permissions"
	"github.com/eulark/eulark/internal/server/repositories/players"
	"github.com/eulark/eulark/internal/server/repositories/users"
	"github.com/eulark/eulark/internal/server/repositories/verifications"
)

// RepositoryManager vends repositories bound to a DBTX, so the same code
// path works against the pool and inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Players(db dbx.DBTX) players.Repository
	Users(db dbx.DBTX) users.Repository
	Verifications(db dbx.DBTX) verifications.Repository
	PasswordResets(db dbx.DBTX) passwordresets.Repository
	Permissions(db dbx.DBTX) permissions.Repository
	Messages(db dbx.DBTX) messages.Repository
	OwnerStatus(db dbx.DBTX) ownerstatus.Repository
	Content(db dbx.DBTX) content.Repository
}
