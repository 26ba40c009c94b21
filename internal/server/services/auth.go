// Package services contains server-side business logic. This file implements
// AuthService: registration with e-mail verification, player and admin login,
// and the password reset workflow.
package services

import (
	"context"
	"database/sql"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/eulark/eulark/internal/common"
	"github.com/eulark/eulark/internal/cryptox"
	"github.com/eulark/eulark/internal/dbx"
	"github.com/eulark/eulark/internal/logging"
	"github.com/eulark/eulark/internal/server/auth"
	"github.com/eulark/eulark/internal/server/config"
	"github.com/eulark/eulark/internal/server/mailer"
	"github.com/eulark/eulark/internal/server/models"
	"github.com/eulark/eulark/internal/server/repositories/repomanager"
	"github.com/samber/oops"
)

// Seams for tests.
var (
	generateVerificationCode = func() (string, error) { return common.GenerateNumericCode(6) }
	generateResetToken       = func() (string, error) { return common.MakeRandHexString(common.ResetTokenBytes) }
)

// RegisterInput is what a visitor submits on the sign-up form.
type RegisterInput struct {
	PlayerName      string
	Email           string
	Password        string
	ConfirmPassword string
}

// LoginResult carries the session token and the logged-in player.
type LoginResult struct {
	Token  string
	Player *models.Player
}

type AuthService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	issuer      *auth.Issuer
	hasher      auth.PasswordHasher
	mail        mailer.Sender
	log         logging.Logger

	playerTokenTTL time.Duration
	adminTokenTTL  time.Duration
	baseURL        string

	now func() time.Time
}

func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config,
	issuer *auth.Issuer, hasher auth.PasswordHasher, mail mailer.Sender, log logging.Logger) *AuthService {
	return &AuthService{
		db:             db,
		repomanager:    m,
		issuer:         issuer,
		hasher:         hasher,
		mail:           mail,
		log:            log,
		playerTokenTTL: cfg.PlayerTokenValidityDuration,
		adminTokenTTL:  cfg.AdminTokenValidityDuration,
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		now:            time.Now,
	}
}

// Register validates the form, stores a pending registration with a fresh
// six digit code and mails the code. A repeated registration for the same
// e-mail replaces the earlier code. The pending row is kept when the mail
// cannot be sent.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) error {
	name := strings.TrimSpace(in.PlayerName)
	email := strings.TrimSpace(in.Email)

	switch {
	case name == "" || email == "" || in.Password == "":
		return invalid("player name, email and password are required")
	case len(name) > maxPlayerNameLen:
		return invalid("player name is too long")
	case !validEmail(email):
		return invalid("email address is malformed")
	case in.Password != in.ConfirmPassword:
		return invalid("passwords do not match")
	}

	exists, err := s.repomanager.Players(s.db).ExistsByNameOrEmail(ctx, name, email)
	if err != nil {
		return oops.Code("PLAYER_LOOKUP_FAILED").With("email", email).Wrap(err)
	}
	if exists {
		return common.ErrorConflict
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return oops.Code("PASSWORD_HASH_FAILED").Wrap(err)
	}

	code, err := generateVerificationCode()
	if err != nil {
		return oops.Code("CODE_GENERATION_FAILED").Wrap(err)
	}

	pending := &models.PendingVerification{
		Email:            email,
		PlayerName:       name,
		PasswordHash:     hash,
		VerificationCode: code,
		ExpiresAt:        s.now().Add(common.VerificationCodeTTL),
	}
	if err := s.repomanager.Verifications(s.db).Upsert(ctx, pending); err != nil {
		return oops.Code("PENDING_VERIFICATION_SAVE_FAILED").With("email", email).Wrap(err)
	}

	msg, err := mailer.VerificationEmail(email, code, common.VerificationCodeTTL)
	if err != nil {
		return oops.Code("MAIL_RENDER_FAILED").Wrap(err)
	}
	if err := s.mail.Send(ctx, msg); err != nil {
		s.log.Error(ctx, "verification mail failed", "email", email, "error", err)
		return err
	}

	s.log.Info(ctx, "verification code issued", "email", email, "player_name", name)
	return nil
}

// VerifyEmail turns a pending registration into a player. The pending row is
// locked for the duration of the transaction so a code is accepted at most
// once.
func (s *AuthService) VerifyEmail(ctx context.Context, email, code string) (*models.Player, error) {
	email = strings.TrimSpace(email)
	code = strings.TrimSpace(code)
	if email == "" || code == "" {
		return nil, common.ErrInvalidCode
	}

	var player *models.Player
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		pendingRepo := s.repomanager.Verifications(tx)

		pending, err := pendingRepo.GetForUpdate(ctx, email)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrInvalidCode
			}
			return oops.Code("PENDING_VERIFICATION_LOOKUP_FAILED").With("email", email).Wrap(err)
		}

		if !cryptox.EqualSecret(pending.VerificationCode, code) {
			return common.ErrInvalidCode
		}
		if pending.IsExpired(s.now()) {
			return common.ErrCodeExpired
		}

		player, err = s.repomanager.Players(tx).Create(ctx, &models.Player{
			PlayerName:   pending.PlayerName,
			Email:        pending.Email,
			PasswordHash: pending.PasswordHash,
		})
		if err != nil {
			if errors.Is(err, common.ErrorConflict) {
				return err
			}
			return oops.Code("PLAYER_CREATE_FAILED").With("email", email).Wrap(err)
		}

		if err := pendingRepo.Delete(ctx, email); err != nil {
			return oops.Code("PENDING_VERIFICATION_DELETE_FAILED").With("email", email).Wrap(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "player registered", "player_id", player.ID, "player_name", player.PlayerName)
	return player, nil
}

// Login authenticates a player by name or e-mail. Unknown accounts and wrong
// passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*LoginResult, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, common.ErrInvalidCredentials
	}

	player, err := s.repomanager.Players(s.db).GetByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.CompareDummy(password)
			return nil, common.ErrInvalidCredentials
		}
		return nil, oops.Code("PLAYER_LOOKUP_FAILED").Wrap(err)
	}

	if !s.hasher.Compare(player.PasswordHash, password) {
		return nil, common.ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(auth.Identity{UserID: player.ID, Name: player.PlayerName}, s.playerTokenTTL)
	if err != nil {
		return nil, oops.Code("TOKEN_ISSUE_FAILED").Wrap(err)
	}

	return &LoginResult{Token: token, Player: player}, nil
}

// AdminLogin authenticates a moderator and returns an admin session token.
func (s *AuthService) AdminLogin(ctx context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", common.ErrInvalidCredentials
	}

	admin, err := s.repomanager.Users(s.db).GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.CompareDummy(password)
			return "", common.ErrInvalidCredentials
		}
		return "", oops.Code("ADMIN_LOOKUP_FAILED").Wrap(err)
	}

	if !s.hasher.Compare(admin.PasswordHash, password) {
		return "", common.ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(auth.Identity{UserID: admin.ID, Name: admin.Username, IsAdmin: true}, s.adminTokenTTL)
	if err != nil {
		return "", oops.Code("TOKEN_ISSUE_FAILED").Wrap(err)
	}

	s.log.Info(ctx, "admin logged in", "admin_id", admin.ID)
	return token, nil
}

// ForgotPassword mails a reset link when email belongs to a player. It
// reports success either way so the response does not reveal accounts.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return invalid("email is required")
	}

	player, err := s.repomanager.Players(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil
		}
		return oops.Code("PLAYER_LOOKUP_FAILED").Wrap(err)
	}

	token, err := generateResetToken()
	if err != nil {
		return oops.Code("RESET_TOKEN_GENERATION_FAILED").Wrap(err)
	}

	expiresAt := s.now().Add(common.ResetTokenTTL)
	if err := s.repomanager.PasswordResets(s.db).Upsert(ctx, email, cryptox.HashToken(token), expiresAt); err != nil {
		return oops.Code("RESET_SAVE_FAILED").With("email", email).Wrap(err)
	}

	link := s.baseURL + "/reset-password.html?token=" + url.QueryEscape(token)
	msg, err := mailer.ResetEmail(email, player.PlayerName, link, common.ResetTokenTTL)
	if err != nil {
		return oops.Code("MAIL_RENDER_FAILED").Wrap(err)
	}
	if err := s.mail.Send(ctx, msg); err != nil {
		s.log.Error(ctx, "reset mail failed", "email", email, "error", err)
		return nil
	}

	s.log.Info(ctx, "password reset issued", "player_id", player.ID)
	return nil
}

// ResetPassword consumes a reset token and stores the new password hash.
func (s *AuthService) ResetPassword(ctx context.Context, token, password, confirm string) error {
	token = strings.TrimSpace(token)
	switch {
	case token == "" || password == "":
		return invalid("token and password are required")
	case password != confirm:
		return invalid("passwords do not match")
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return oops.Code("PASSWORD_HASH_FAILED").Wrap(err)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		resetRepo := s.repomanager.PasswordResets(tx)

		reset, err := resetRepo.FindByTokenHash(ctx, cryptox.HashToken(token))
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrInvalidResetToken
			}
			return oops.Code("RESET_LOOKUP_FAILED").Wrap(err)
		}
		if reset.IsExpired(s.now()) {
			return common.ErrResetTokenExpired
		}

		playerRepo := s.repomanager.Players(tx)
		player, err := playerRepo.GetByEmail(ctx, reset.Email)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrInvalidResetToken
			}
			return oops.Code("PLAYER_LOOKUP_FAILED").Wrap(err)
		}

		if err := playerRepo.UpdatePassword(ctx, player.ID, hash); err != nil {
			return oops.Code("PASSWORD_UPDATE_FAILED").With("player_id", player.ID).Wrap(err)
		}
		if err := resetRepo.Delete(ctx, reset.Email); err != nil {
			return oops.Code("RESET_DELETE_FAILED").Wrap(err)
		}
		return nil
	})
}
