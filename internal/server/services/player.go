package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/eulark/eulark/internal/common"
	"github.com/eulark/eulark/internal/logging"
	"github.com/eulark/eulark/internal/server/auth"
	"github.com/eulark/eulark/internal/server/config"
	"github.com/eulark/eulark/internal/server/models"
	"github.com/eulark/eulark/internal/server/repositories/repomanager"
	"github.com/samber/oops"
)

const maxContactMessageLen = 4000

// PermissionResult tells a player whether the building list is open to them.
// URL is nil without the permission.
type PermissionResult struct {
	HasPermission bool    `json:"hasPermission"`
	URL           *string `json:"url"`
}

// PlayerService serves logged-in players.
type PlayerService struct {
	db              *sql.DB
	repomanager     repomanager.RepositoryManager
	buildingListURL string
	log             logging.Logger
}

func NewPlayerService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, log logging.Logger) *PlayerService {
	return &PlayerService{db: db, repomanager: m, buildingListURL: cfg.BuildingListURL, log: log}
}

// SubmitContact files a support ticket on behalf of the token holder.
func (s *PlayerService) SubmitContact(ctx context.Context, id auth.Identity, message string) (*models.ContactMessage, error) {
	if id.IsAdmin {
		return nil, common.ErrPlayerOnly
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, invalid("message must not be empty")
	}
	if len(message) > maxContactMessageLen {
		return nil, invalid("message is too long")
	}

	player, err := s.repomanager.Players(s.db).GetByID(ctx, id.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, oops.Code("PLAYER_LOOKUP_FAILED").With("player_id", id.UserID).Wrap(err)
	}

	m, err := s.repomanager.Messages(s.db).Create(ctx, &models.ContactMessage{
		PlayerName: player.PlayerName,
		Email:      player.Email,
		Message:    message,
	})
	if err != nil {
		return nil, oops.Code("CONTACT_SAVE_FAILED").With("player_id", id.UserID).Wrap(err)
	}

	s.log.Info(ctx, "contact ticket submitted", "player_id", id.UserID, "ticket_id", m.ID)
	return m, nil
}

// CheckPermission reports whether playerID holds the special permission.
func (s *PlayerService) CheckPermission(ctx context.Context, playerID int64) (*PermissionResult, error) {
	ok, err := s.repomanager.Permissions(s.db).Exists(ctx, playerID)
	if err != nil {
		return nil, oops.Code("PERMISSION_LOOKUP_FAILED").With("player_id", playerID).Wrap(err)
	}

	if !ok {
		return &PermissionResult{HasPermission: false}, nil
	}

	url := s.buildingListURL
	return &PermissionResult{HasPermission: true, URL: &url}, nil
}
