package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/eulark/eulark/internal/common"
	"github.com/eulark/eulark/internal/logging"
	"github.com/eulark/eulark/internal/server/auth"
	"github.com/eulark/eulark/internal/server/metrics"
	"github.com/eulark/eulark/internal/server/models"
	"github.com/eulark/eulark/internal/server/services"
)

type fakeAuth struct {
	err        error
	lastInput  services.RegisterInput
	loginRes   *services.LoginResult
	adminToken string
}

func (f *fakeAuth) Register(ctx context.Context, in services.RegisterInput) error {
	f.lastInput = in
	return f.err
}

func (f *fakeAuth) VerifyEmail(ctx context.Context, email, code string) (*models.Player, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.Player{ID: 1, PlayerName: "Alice", Email: email}, nil
}

func (f *fakeAuth) Login(ctx context.Context, identifier, password string) (*services.LoginResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.loginRes, nil
}

func (f *fakeAuth) AdminLogin(ctx context.Context, username, password string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.adminToken, nil
}

func (f *fakeAuth) ForgotPassword(ctx context.Context, email string) error { return f.err }

func (f *fakeAuth) ResetPassword(ctx context.Context, token, password, confirm string) error {
	return f.err
}

type fakePlayers struct {
	granted     bool
	lastContact string
	lastID      auth.Identity
	err         error
}

func (f *fakePlayers) SubmitContact(ctx context.Context, id auth.Identity, message string) (*models.ContactMessage, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.lastID = id
	f.lastContact = message
	return &models.ContactMessage{ID: 1, Message: message}, nil
}

func (f *fakePlayers) CheckPermission(ctx context.Context, playerID int64) (*services.PermissionResult, error) {
	if !f.granted {
		return &services.PermissionResult{}, nil
	}
	url := "https://eulark.test/buildings"
	return &services.PermissionResult{HasPermission: true, URL: &url}, nil
}

type fakeContent struct {
	rules []models.Rule
	err   error
}

func (f *fakeContent) ListRules(ctx context.Context) ([]models.Rule, error) { return f.rules, f.err }
func (f *fakeContent) ListCommands(ctx context.Context) ([]models.Command, error) {
	return nil, f.err
}
func (f *fakeContent) ListBans(ctx context.Context) ([]models.Ban, error) { return nil, f.err }
func (f *fakeContent) ListSponsors(ctx context.Context) ([]models.Sponsor, error) {
	return nil, f.err
}
func (f *fakeContent) ListAnnouncements(ctx context.Context) ([]models.Announcement, error) {
	return nil, f.err
}
func (f *fakeContent) OwnerStatus(ctx context.Context) (*models.OwnerStatus, error) {
	return &models.OwnerStatus{Status: common.OwnerAwake}, f.err
}

// fakeAdmin implements only what the tests call; anything else panics.
type fakeAdmin struct {
	AdminService

	status      string
	granted     int64
	updatedRule *models.Rule
	deleteErr   error
}

func (f *fakeAdmin) ListMessages(ctx context.Context) ([]models.ContactMessage, error) {
	return []models.ContactMessage{{ID: 1, Message: "help"}}, nil
}

func (f *fakeAdmin) DeleteMessage(ctx context.Context, id int64) error { return f.deleteErr }

func (f *fakeAdmin) GrantPermission(ctx context.Context, playerID int64) error {
	if playerID == 404 {
		return common.ErrorNotFound
	}
	f.granted = playerID
	return nil
}

func (f *fakeAdmin) SetOwnerStatus(ctx context.Context, status string) error {
	f.status = status
	return nil
}

func (f *fakeAdmin) CreateRule(ctx context.Context, r *models.Rule) (*models.Rule, error) {
	r.ID = 7
	return r, nil
}

func (f *fakeAdmin) UpdateRule(ctx context.Context, r *models.Rule) error {
	f.updatedRule = r
	return nil
}

type fakeLogos struct{}

func (fakeLogos) PresignLogoUpload(ctx context.Context, fileName string) (*services.LogoUpload, error) {
	if !strings.HasSuffix(fileName, ".png") {
		return nil, common.ErrorValidation
	}
	return &services.LogoUpload{Key: "sponsors/x.png", URL: "http://s3/put", ContentType: "image/png"}, nil
}

type testEnv struct {
	handler http.Handler
	issuer  *auth.Issuer
	metrics *metrics.Metrics

	auth    *fakeAuth
	players *fakePlayers
	content *fakeContent
	admin   *fakeAdmin
	pingErr error
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		issuer:  auth.NewIssuer([]byte("test-secret")),
		metrics: metrics.New(),
		auth:    &fakeAuth{},
		players: &fakePlayers{},
		content: &fakeContent{},
		admin:   &fakeAdmin{},
	}
	env.handler = NewRouter(Deps{
		Auth:               env.auth,
		Players:            env.players,
		Content:            env.content,
		Admin:              env.admin,
		Logos:              fakeLogos{},
		Issuer:             env.issuer,
		Metrics:            env.metrics,
		Logger:             logging.Discard(),
		CORSAllowedOrigins: []string{"https://eulark.test"},
		Ping:               func(context.Context) error { return env.pingErr },
	})
	return env
}

func (e *testEnv) token(t *testing.T, id auth.Identity) string {
	t.Helper()
	tok, err := e.issuer.Issue(id, time.Hour)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	return tok
}

func (e *testEnv) playerToken(t *testing.T) string {
	return e.token(t, auth.Identity{UserID: 1, Name: "Alice"})
}

func (e *testEnv) adminToken(t *testing.T) string {
	return e.token(t, auth.Identity{UserID: 1, Name: "root", IsAdmin: true})
}

// do sends a request; token may be empty.
func (e *testEnv) do(method, path, body, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}
