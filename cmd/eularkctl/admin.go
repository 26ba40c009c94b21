package main

import (
	"bytes"
	"database/sql"
	"errors"
	"strings"

	"github.com/eulark/eulark/internal/common"
	"github.com/eulark/eulark/internal/server/models"
	"github.com/eulark/eulark/internal/server/repositories/repomanager"
	"github.com/samber/oops"
	"github.com/spf13/cobra"
)

// NewAdminCmd creates the admin subcommand tree.
func NewAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage administrator accounts",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "create <username>",
		Short: "Create an administrator; the password is read from the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  runAdminCreate,
	})

	return cmd
}

// promptPassword reads the password twice without echo.
func promptPassword(cmd *cobra.Command) (string, error) {
	cmd.Print("Password: ")
	pw, err := readPassword(stdinFd())
	cmd.Println()
	if err != nil {
		return "", oops.Code("PASSWORD_READ_FAILED").Wrap(err)
	}

	cmd.Print("Repeat password: ")
	again, err := readPassword(stdinFd())
	cmd.Println()
	if err != nil {
		return "", oops.Code("PASSWORD_READ_FAILED").Wrap(err)
	}

	if len(pw) == 0 {
		return "", oops.Code("PASSWORD_EMPTY").Errorf("password must not be empty")
	}
	if !bytes.Equal(pw, again) {
		return "", oops.Code("PASSWORD_MISMATCH").Errorf("passwords do not match")
	}

	return string(pw), nil
}

func runAdminCreate(cmd *cobra.Command, args []string) error {
	username := strings.TrimSpace(args[0])
	if username == "" {
		return oops.Code("USERNAME_EMPTY").Errorf("username must not be empty")
	}

	password, err := promptPassword(cmd)
	if err != nil {
		return err
	}

	hash, err := newHasher().Hash(password)
	if err != nil {
		return oops.Code("PASSWORD_HASH_FAILED").Wrap(err)
	}

	return withDB(cmd.Context(), func(db *sql.DB, rm repomanager.RepositoryManager) error {
		admin, err := rm.Users(db).Create(cmd.Context(), &models.Admin{Username: username, PasswordHash: hash})
		if err != nil {
			if errors.Is(err, common.ErrorAlreadyExists) {
				return oops.Code("ADMIN_EXISTS").With("username", username).Errorf("admin %q already exists", username)
			}
			return oops.Code("ADMIN_CREATE_FAILED").With("username", username).Wrap(err)
		}
		cmd.Printf("Created admin %q (id %d)\n", admin.Username, admin.ID)
		return nil
	})
}
