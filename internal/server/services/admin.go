package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/eulark/eulark/internal/common"
	"github.com/eulark/eulark/internal/logging"
	"github.com/eulark/eulark/internal/server/models"
	"github.com/eulark/eulark/internal/server/repositories/repomanager"
	"github.com/samber/oops"
)

// AdminService implements the moderation API. Every method assumes the
// caller already passed the admin guard.
type AdminService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	log         logging.Logger
}

func NewAdminService(db *sql.DB, m repomanager.RepositoryManager, log logging.Logger) *AdminService {
	return &AdminService{db: db, repomanager: m, log: log}
}

// wrap keeps sentinel errors visible to the HTTP layer and tags the rest.
func wrap(code string, err error, kv ...any) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, common.ErrorNotFound) || errors.Is(err, common.ErrorValidation) {
		return err
	}
	return oops.Code(code).With(kv...).Wrap(err)
}

// --- tickets ---

func (s *AdminService) ListMessages(ctx context.Context) ([]models.ContactMessage, error) {
	list, err := s.repomanager.Messages(s.db).List(ctx)
	return list, wrap("MESSAGES_LIST_FAILED", err)
}

func (s *AdminService) DeleteMessage(ctx context.Context, id int64) error {
	return wrap("MESSAGE_DELETE_FAILED", s.repomanager.Messages(s.db).Delete(ctx, id), "message_id", id)
}

// --- players and permissions ---

func (s *AdminService) ListPlayers(ctx context.Context) ([]models.PlayerWithPermission, error) {
	list, err := s.repomanager.Players(s.db).List(ctx)
	return list, wrap("PLAYERS_LIST_FAILED", err)
}

func (s *AdminService) DeletePlayer(ctx context.Context, id int64) error {
	if err := s.repomanager.Players(s.db).Delete(ctx, id); err != nil {
		return wrap("PLAYER_DELETE_FAILED", err, "player_id", id)
	}
	s.log.Info(ctx, "player deleted", "player_id", id)
	return nil
}

func (s *AdminService) GrantPermission(ctx context.Context, playerID int64) error {
	if playerID <= 0 {
		return invalid("player_id is required")
	}
	if err := s.repomanager.Permissions(s.db).Grant(ctx, playerID); err != nil {
		return wrap("PERMISSION_GRANT_FAILED", err, "player_id", playerID)
	}
	s.log.Info(ctx, "permission granted", "player_id", playerID)
	return nil
}

func (s *AdminService) RevokePermission(ctx context.Context, playerID int64) error {
	if err := s.repomanager.Permissions(s.db).Revoke(ctx, playerID); err != nil {
		return wrap("PERMISSION_REVOKE_FAILED", err, "player_id", playerID)
	}
	s.log.Info(ctx, "permission revoked", "player_id", playerID)
	return nil
}

// --- owner status ---

func (s *AdminService) SetOwnerStatus(ctx context.Context, status string) error {
	if status != common.OwnerAwake && status != common.OwnerSleep {
		return invalid("unknown owner status %q", status)
	}
	return wrap("OWNER_STATUS_WRITE_FAILED", s.repomanager.OwnerStatus(s.db).Set(ctx, status), "status", status)
}

// --- catalog ---

func (s *AdminService) CreateRule(ctx context.Context, r *models.Rule) (*models.Rule, error) {
	if strings.TrimSpace(r.Title) == "" {
		return nil, invalid("title is required")
	}
	out, err := s.repomanager.Content(s.db).CreateRule(ctx, r)
	return out, wrap("RULE_CREATE_FAILED", err)
}

func (s *AdminService) UpdateRule(ctx context.Context, r *models.Rule) error {
	if strings.TrimSpace(r.Title) == "" {
		return invalid("title is required")
	}
	return wrap("RULE_UPDATE_FAILED", s.repomanager.Content(s.db).UpdateRule(ctx, r), "rule_id", r.ID)
}

func (s *AdminService) DeleteRule(ctx context.Context, id int64) error {
	return wrap("RULE_DELETE_FAILED", s.repomanager.Content(s.db).DeleteRule(ctx, id), "rule_id", id)
}

func (s *AdminService) CreateCommand(ctx context.Context, c *models.Command) (*models.Command, error) {
	if strings.TrimSpace(c.Command) == "" {
		return nil, invalid("command is required")
	}
	out, err := s.repomanager.Content(s.db).CreateCommand(ctx, c)
	return out, wrap("COMMAND_CREATE_FAILED", err)
}

func (s *AdminService) UpdateCommand(ctx context.Context, c *models.Command) error {
	if strings.TrimSpace(c.Command) == "" {
		return invalid("command is required")
	}
	return wrap("COMMAND_UPDATE_FAILED", s.repomanager.Content(s.db).UpdateCommand(ctx, c), "command_id", c.ID)
}

func (s *AdminService) DeleteCommand(ctx context.Context, id int64) error {
	return wrap("COMMAND_DELETE_FAILED", s.repomanager.Content(s.db).DeleteCommand(ctx, id), "command_id", id)
}

// CreateBan stamps the ban with the current time when no date was given.
func (s *AdminService) CreateBan(ctx context.Context, b *models.Ban) (*models.Ban, error) {
	if strings.TrimSpace(b.PlayerName) == "" {
		return nil, invalid("player_name is required")
	}
	if b.BanDate.IsZero() {
		b.BanDate = time.Now().UTC()
	}
	out, err := s.repomanager.Content(s.db).CreateBan(ctx, b)
	return out, wrap("BAN_CREATE_FAILED", err)
}

func (s *AdminService) UpdateBan(ctx context.Context, b *models.Ban) error {
	if strings.TrimSpace(b.PlayerName) == "" {
		return invalid("player_name is required")
	}
	if b.BanDate.IsZero() {
		b.BanDate = time.Now().UTC()
	}
	return wrap("BAN_UPDATE_FAILED", s.repomanager.Content(s.db).UpdateBan(ctx, b), "ban_id", b.ID)
}

func (s *AdminService) DeleteBan(ctx context.Context, id int64) error {
	return wrap("BAN_DELETE_FAILED", s.repomanager.Content(s.db).DeleteBan(ctx, id), "ban_id", id)
}

func (s *AdminService) CreateSponsor(ctx context.Context, sp *models.Sponsor) (*models.Sponsor, error) {
	if strings.TrimSpace(sp.Name) == "" {
		return nil, invalid("name is required")
	}
	out, err := s.repomanager.Content(s.db).CreateSponsor(ctx, sp)
	return out, wrap("SPONSOR_CREATE_FAILED", err)
}

func (s *AdminService) UpdateSponsor(ctx context.Context, sp *models.Sponsor) error {
	if strings.TrimSpace(sp.Name) == "" {
		return invalid("name is required")
	}
	return wrap("SPONSOR_UPDATE_FAILED", s.repomanager.Content(s.db).UpdateSponsor(ctx, sp), "sponsor_id", sp.ID)
}

func (s *AdminService) DeleteSponsor(ctx context.Context, id int64) error {
	return wrap("SPONSOR_DELETE_FAILED", s.repomanager.Content(s.db).DeleteSponsor(ctx, id), "sponsor_id", id)
}

func (s *AdminService) CreateAnnouncement(ctx context.Context, a *models.Announcement) (*models.Announcement, error) {
	if strings.TrimSpace(a.Title) == "" {
		return nil, invalid("title is required")
	}
	out, err := s.repomanager.Content(s.db).CreateAnnouncement(ctx, a)
	return out, wrap("ANNOUNCEMENT_CREATE_FAILED", err)
}

func (s *AdminService) UpdateAnnouncement(ctx context.Context, a *models.Announcement) error {
	if strings.TrimSpace(a.Title) == "" {
		return invalid("title is required")
	}
	return wrap("ANNOUNCEMENT_UPDATE_FAILED", s.repomanager.Content(s.db).UpdateAnnouncement(ctx, a), "announcement_id", a.ID)
}

func (s *AdminService) DeleteAnnouncement(ctx context.Context, id int64) error {
	return wrap("ANNOUNCEMENT_DELETE_FAILED", s.repomanager.Content(s.db).DeleteAnnouncement(ctx, id), "announcement_id", id)
}
