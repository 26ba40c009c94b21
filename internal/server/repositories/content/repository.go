// Package content stores the public site catalog: rules, commands, bans,
// sponsors and announcements. Each table has its own typed operations.
package content

import (
	"context"

	"github.com/eulark/eulark/internal/server/models"
)

type Repository interface {
	ListRules(ctx context.Context) ([]models.Rule, error)
	CreateRule(ctx context.Context, r *models.Rule) (*models.Rule, error)
	UpdateRule(ctx context.Context, r *models.Rule) error
	DeleteRule(ctx context.Context, id int64) error

	ListCommands(ctx context.Context) ([]models.Command, error)
	CreateCommand(ctx context.Context, c *models.Command) (*models.Command, error)
	UpdateCommand(ctx context.Context, c *models.Command) error
	DeleteCommand(ctx context.Context, id int64) error

	ListBans(ctx context.Context) ([]models.Ban, error)
	CreateBan(ctx context.Context, b *models.Ban) (*models.Ban, error)
	UpdateBan(ctx context.Context, b *models.Ban) error
	DeleteBan(ctx context.Context, id int64) error

	ListSponsors(ctx context.Context) ([]models.Sponsor, error)
	CreateSponsor(ctx context.Context, s *models.Sponsor) (*models.Sponsor, error)
	UpdateSponsor(ctx context.Context, s *models.Sponsor) error
	DeleteSponsor(ctx context.Context, id int64) error
	SetSponsorLogo(ctx context.Context, id int64, key string) error

	ListAnnouncements(ctx context.Context) ([]models.Announcement, error)
	CreateAnnouncement(ctx context.Context, a *models.Announcement) (*models.Announcement, error)
	UpdateAnnouncement(ctx context.Context, a *models.Announcement) error
	DeleteAnnouncement(ctx context.Context, id int64) error
}
