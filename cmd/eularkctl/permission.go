package main

import (
	"database/sql"
	"errors"
	"strconv"

	"github.com/eulark/eulark/internal/common"
	"github.com/eulark/eulark/internal/server/repositories/repomanager"
	"github.com/samber/oops"
	"github.com/spf13/cobra"
)

// NewPermissionCmd creates the permission subcommand tree.
func NewPermissionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "permission",
		Short: "Grant or revoke the special building-list permission",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "grant <player-id>",
		Short: "Grant the permission to a player",
		Args:  cobra.ExactArgs(1),
		RunE:  runPermissionGrant,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "revoke <player-id>",
		Short: "Revoke the permission from a player",
		Args:  cobra.ExactArgs(1),
		RunE:  runPermissionRevoke,
	})

	return cmd
}

func parsePlayerID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, oops.Code("INVALID_PLAYER_ID").With("input", s).Errorf("player id must be a positive integer, got %q", s)
	}
	return id, nil
}

func runPermissionGrant(cmd *cobra.Command, args []string) error {
	id, err := parsePlayerID(args[0])
	if err != nil {
		return err
	}

	return withDB(cmd.Context(), func(db *sql.DB, rm repomanager.RepositoryManager) error {
		if err := rm.Permissions(db).Grant(cmd.Context(), id); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return oops.Code("PLAYER_NOT_FOUND").With("player_id", id).Errorf("player %d does not exist", id)
			}
			return oops.Code("PERMISSION_GRANT_FAILED").With("player_id", id).Wrap(err)
		}
		cmd.Printf("Granted permission to player %d\n", id)
		return nil
	})
}

func runPermissionRevoke(cmd *cobra.Command, args []string) error {
	id, err := parsePlayerID(args[0])
	if err != nil {
		return err
	}

	return withDB(cmd.Context(), func(db *sql.DB, rm repomanager.RepositoryManager) error {
		if err := rm.Permissions(db).Revoke(cmd.Context(), id); err != nil {
			return oops.Code("PERMISSION_REVOKE_FAILED").With("player_id", id).Wrap(err)
		}
		cmd.Printf("Revoked permission from player %d\n", id)
		return nil
	})
}
