package httpapi

import (
	"context"
	"net/http"

	"github.com/eulark/eulark/internal/common"
	"github.com/eulark/eulark/internal/logging"
	"github.com/eulark/eulark/internal/server/auth"
	"github.com/eulark/eulark/internal/server/metrics"
	"github.com/eulark/eulark/internal/server/models"
	"github.com/eulark/eulark/internal/server/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type AuthService interface {
	Register(ctx context.Context, in services.RegisterInput) error
	VerifyEmail(ctx context.Context, email, code string) (*models.Player, error)
	Login(ctx context.Context, identifier, password string) (*services.LoginResult, error)
	AdminLogin(ctx context.Context, username, password string) (string, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password, confirm string) error
}

type PlayerService interface {
	SubmitContact(ctx context.Context, id auth.Identity, message string) (*models.ContactMessage, error)
	CheckPermission(ctx context.Context, playerID int64) (*services.PermissionResult, error)
}

type ContentService interface {
	ListRules(ctx context.Context) ([]models.Rule, error)
	ListCommands(ctx context.Context) ([]models.Command, error)
	ListBans(ctx context.Context) ([]models.Ban, error)
	ListSponsors(ctx context.Context) ([]models.Sponsor, error)
	ListAnnouncements(ctx context.Context) ([]models.Announcement, error)
	OwnerStatus(ctx context.Context) (*models.OwnerStatus, error)
}

type AdminService interface {
	ListMessages(ctx context.Context) ([]models.ContactMessage, error)
	DeleteMessage(ctx context.Context, id int64) error
	ListPlayers(ctx context.Context) ([]models.PlayerWithPermission, error)
	DeletePlayer(ctx context.Context, id int64) error
	GrantPermission(ctx context.Context, playerID int64) error
	RevokePermission(ctx context.Context, playerID int64) error
	SetOwnerStatus(ctx context.Context, status string) error

	CreateRule(ctx context.Context, r *models.Rule) (*models.Rule, error)
	UpdateRule(ctx context.Context, r *models.Rule) error
	DeleteRule(ctx context.Context, id int64) error
	CreateCommand(ctx context.Context, c *models.Command) (*models.Command, error)
	UpdateCommand(ctx context.Context, c *models.Command) error
	DeleteCommand(ctx context.Context, id int64) error
	CreateBan(ctx context.Context, b *models.Ban) (*models.Ban, error)
	UpdateBan(ctx context.Context, b *models.Ban) error
	DeleteBan(ctx context.Context, id int64) error
	CreateSponsor(ctx context.Context, sp *models.Sponsor) (*models.Sponsor, error)
	UpdateSponsor(ctx context.Context, sp *models.Sponsor) error
	DeleteSponsor(ctx context.Context, id int64) error
	CreateAnnouncement(ctx context.Context, a *models.Announcement) (*models.Announcement, error)
	UpdateAnnouncement(ctx context.Context, a *models.Announcement) error
	DeleteAnnouncement(ctx context.Context, id int64) error
}

type LogoService interface {
	PresignLogoUpload(ctx context.Context, fileName string) (*services.LogoUpload, error)
}

// Deps is everything the router needs. Metrics and Ping may be nil.
type Deps struct {
	Auth    AuthService
	Players PlayerService
	Content ContentService
	Admin   AdminService
	Logos   LogoService

	Issuer  *auth.Issuer
	Metrics *metrics.Metrics
	Logger  logging.Logger

	CORSAllowedOrigins []string
	Ping               func(ctx context.Context) error
}

type api struct {
	Deps
	logger logging.Logger
}

// NewRouter wires every route under /api plus /healthz and /metrics.
func NewRouter(d Deps) http.Handler {
	a := &api{Deps: d, logger: d.Logger.With("module", "http_api")}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(a.accessLog)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: d.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", a.healthz)
	if d.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", d.Metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/owner-status", a.ownerStatus)
		r.Get("/rules", listHandler(a, a.Content.ListRules))
		r.Get("/commands", listHandler(a, a.Content.ListCommands))
		r.Get("/bans", listHandler(a, a.Content.ListBans))
		r.Get("/sponsors", listHandler(a, a.Content.ListSponsors))
		r.Get("/announcements", listHandler(a, a.Content.ListAnnouncements))

		r.Post("/register", a.register)
		r.Post("/verify-email", a.verifyEmail)
		r.Post("/login", a.login)
		r.Post("/forgot-password", a.forgotPassword)
		r.Post("/reset-password", a.resetPassword)

		r.Group(func(r chi.Router) {
			r.Use(a.RequireAuth, a.RequirePlayer)
			r.Post("/contact", a.submitContact)
			r.Get("/player/check-permission", a.checkPermission)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", a.adminLogin)

			r.Group(func(r chi.Router) {
				r.Use(a.RequireAuth, a.RequireAdmin)

				r.Get("/messages", listHandler(a, a.Admin.ListMessages))
				r.Delete("/messages/{id}", deleteHandler(a, a.Admin.DeleteMessage, "ticket deleted"))

				r.Get("/players", listHandler(a, a.Admin.ListPlayers))
				r.Delete("/players/{id}", deleteHandler(a, a.Admin.DeletePlayer, "player deleted"))

				r.Post("/permissions", a.grantPermission)
				r.Delete("/permissions/{id}", deleteHandler(a, a.Admin.RevokePermission, "permission revoked"))

				r.Post("/rules", createHandler(a, a.Admin.CreateRule))
				r.Put("/rules/{id}", updateHandler(a, a.Admin.UpdateRule, func(v *models.Rule, id int64) { v.ID = id }))
				r.Delete("/rules/{id}", deleteHandler(a, a.Admin.DeleteRule, "rule deleted"))

				r.Post("/commands", createHandler(a, a.Admin.CreateCommand))
				r.Put("/commands/{id}", updateHandler(a, a.Admin.UpdateCommand, func(v *models.Command, id int64) { v.ID = id }))
				r.Delete("/commands/{id}", deleteHandler(a, a.Admin.DeleteCommand, "command deleted"))

				r.Post("/bans", createHandler(a, a.Admin.CreateBan))
				r.Put("/bans/{id}", updateHandler(a, a.Admin.UpdateBan, func(v *models.Ban, id int64) { v.ID = id }))
				r.Delete("/bans/{id}", deleteHandler(a, a.Admin.DeleteBan, "ban deleted"))

				r.Post("/announcements", createHandler(a, a.Admin.CreateAnnouncement))
				r.Put("/announcements/{id}", updateHandler(a, a.Admin.UpdateAnnouncement, func(v *models.Announcement, id int64) { v.ID = id }))
				r.Delete("/announcements/{id}", deleteHandler(a, a.Admin.DeleteAnnouncement, "announcement deleted"))

				r.Post("/sponsors/logo-upload-url", a.logoUploadURL)
				r.Post("/sponsors", createHandler(a, a.Admin.CreateSponsor))
				r.Put("/sponsors/{id}", updateHandler(a, a.Admin.UpdateSponsor, func(v *models.Sponsor, id int64) { v.ID = id }))
				r.Delete("/sponsors/{id}", deleteHandler(a, a.Admin.DeleteSponsor, "sponsor deleted"))

				r.Post("/sleep", a.setOwnerStatus(common.OwnerSleep, "owner status: sleep"))
				r.Post("/wake", a.setOwnerStatus(common.OwnerAwake, "owner status: awake"))
			})
		})
	})

	return r
}
