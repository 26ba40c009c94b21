package main

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strconv"

	"github.com/eulark/eulark/internal/netx"
	"github.com/eulark/eulark/internal/server/config"
	"github.com/eulark/eulark/internal/server/repositories/repomanager"
	"github.com/eulark/eulark/internal/server/services"
	"github.com/samber/oops"
	"github.com/spf13/cobra"
)

const maxLogoBytes = 2 << 20

// Seams for tests.
var (
	presignLogo = func(ctx context.Context, cfg *config.Config, fileName string) (*services.LogoUpload, error) {
		return services.NewSponsorLogoService(cfg).PresignLogoUpload(ctx, fileName)
	}
	uploadLogo = netx.UploadToPresignedURL
)

// NewSponsorCmd creates the sponsor subcommand tree.
func NewSponsorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sponsor",
		Short: "Manage sponsors",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "logo <sponsor-id> <file>",
		Short: "Upload a logo image and attach it to a sponsor",
		Args:  cobra.ExactArgs(2),
		RunE:  runSponsorLogo,
	})

	return cmd
}

func runSponsorLogo(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return oops.Code("INVALID_SPONSOR_ID").With("input", args[0]).Errorf("sponsor id must be a positive integer, got %q", args[0])
	}

	path := args[1]
	info, err := os.Stat(path)
	if err != nil {
		return oops.Code("LOGO_READ_FAILED").With("path", path).Wrap(err)
	}
	if info.Size() > maxLogoBytes {
		return oops.Code("LOGO_TOO_LARGE").With("path", path, "size", info.Size()).Errorf("logo is larger than %d bytes", maxLogoBytes)
	}
	body, err := os.ReadFile(path)
	if err != nil {
		return oops.Code("LOGO_READ_FAILED").With("path", path).Wrap(err)
	}

	ctx := cmd.Context()
	cfg := loadConfig()

	up, err := presignLogo(ctx, cfg, filepath.Base(path))
	if err != nil {
		return oops.Code("LOGO_PRESIGN_FAILED").With("path", path).Wrap(err)
	}

	if err := uploadLogo(ctx, up.URL, up.ContentType, body); err != nil {
		return oops.Code("LOGO_UPLOAD_FAILED").With("key", up.Key).Wrap(err)
	}

	return withDB(ctx, func(db *sql.DB, rm repomanager.RepositoryManager) error {
		if err := rm.Content(db).SetSponsorLogo(ctx, id, up.Key); err != nil {
			return oops.Code("SPONSOR_UPDATE_FAILED").With("sponsor_id", id, "key", up.Key).Wrap(err)
		}
		cmd.Printf("Attached logo %s to sponsor %d\n", up.Key, id)
		return nil
	})
}
