package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/eulark/eulark/internal/common"
	"github.com/eulark/eulark/internal/logging"
	"github.com/eulark/eulark/internal/server/models"
	"github.com/eulark/eulark/internal/server/repositories/repomanager"
	"github.com/samber/oops"
)

// LogoURLer resolves a stored logo key into a URL a browser can load.
type LogoURLer interface {
	PresignedLogoURL(ctx context.Context, key string) (string, error)
}

// ContentService serves the public catalog pages.
type ContentService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logos       LogoURLer
	log         logging.Logger
}

func NewContentService(db *sql.DB, m repomanager.RepositoryManager, logos LogoURLer, log logging.Logger) *ContentService {
	return &ContentService{db: db, repomanager: m, logos: logos, log: log}
}

func (s *ContentService) ListRules(ctx context.Context) ([]models.Rule, error) {
	rules, err := s.repomanager.Content(s.db).ListRules(ctx)
	if err != nil {
		return nil, oops.Code("RULES_LIST_FAILED").Wrap(err)
	}
	return rules, nil
}

func (s *ContentService) ListCommands(ctx context.Context) ([]models.Command, error) {
	cmds, err := s.repomanager.Content(s.db).ListCommands(ctx)
	if err != nil {
		return nil, oops.Code("COMMANDS_LIST_FAILED").Wrap(err)
	}
	return cmds, nil
}

func (s *ContentService) ListBans(ctx context.Context) ([]models.Ban, error) {
	bans, err := s.repomanager.Content(s.db).ListBans(ctx)
	if err != nil {
		return nil, oops.Code("BANS_LIST_FAILED").Wrap(err)
	}
	return bans, nil
}

// ListSponsors returns sponsors newest first. Sponsors with an uploaded logo
// get a short-lived download URL; a failed presign only drops that URL.
func (s *ContentService) ListSponsors(ctx context.Context) ([]models.Sponsor, error) {
	sponsors, err := s.repomanager.Content(s.db).ListSponsors(ctx)
	if err != nil {
		return nil, oops.Code("SPONSORS_LIST_FAILED").Wrap(err)
	}

	if s.logos == nil {
		return sponsors, nil
	}
	for i := range sponsors {
		if sponsors[i].LogoKey == "" {
			continue
		}
		url, err := s.logos.PresignedLogoURL(ctx, sponsors[i].LogoKey)
		if err != nil {
			s.log.Warn(ctx, "sponsor logo presign failed", "sponsor_id", sponsors[i].ID, "error", err)
			continue
		}
		sponsors[i].LogoURL = url
	}
	return sponsors, nil
}

func (s *ContentService) ListAnnouncements(ctx context.Context) ([]models.Announcement, error) {
	list, err := s.repomanager.Content(s.db).ListAnnouncements(ctx)
	if err != nil {
		return nil, oops.Code("ANNOUNCEMENTS_LIST_FAILED").Wrap(err)
	}
	return list, nil
}

// OwnerStatus falls back to awake when the status row is missing.
func (s *ContentService) OwnerStatus(ctx context.Context) (*models.OwnerStatus, error) {
	st, err := s.repomanager.OwnerStatus(s.db).Get(ctx)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return &models.OwnerStatus{Status: common.OwnerAwake}, nil
		}
		return nil, oops.Code("OWNER_STATUS_READ_FAILED").Wrap(err)
	}
	return st, nil
}
