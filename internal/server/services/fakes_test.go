package services

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/eulark/eulark/internal/common"
	"github.com/eulark/eulark/internal/dbx"
	"github.com/eulark/eulark/internal/server/mailer"
	"github.com/eulark/eulark/internal/server/models"
	"github.com/eulark/eulark/internal/server/repositories/content"
	"github.com/eulark/eulark/internal/server/repositories/messages"
	"github.com/eulark/eulark/internal/server/repositories/ownerstatus"
	"github.com/eulark/eulark/internal/server/repositories/passwordresets"
	"github.com/eulark/eulark/internal/server/repositories/permissions"
	"github.com/eulark/eulark/internal/server/repositories/players"
	"github.com/eulark/eulark/internal/server/repositories/users"
	"github.com/eulark/eulark/internal/server/repositories/verifications"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

// store is an in-memory stand-in for the database shared by all fakes.
type store struct {
	mu sync.Mutex

	players  map[int64]*models.Player
	nextID   int64
	admins   map[string]*models.Admin
	pending  map[string]*models.PendingVerification
	resets   map[string]*models.PasswordReset
	perms    map[int64]bool
	messages []models.ContactMessage
	status   *models.OwnerStatus

	// forced failures
	playersErr error
	pendingErr error
	resetsErr  error
	permsErr   error
	msgErr     error
	contentErr error
}

func newStore() *store {
	return &store{
		players: map[int64]*models.Player{},
		admins:  map[string]*models.Admin{},
		pending: map[string]*models.PendingVerification{},
		resets:  map[string]*models.PasswordReset{},
		perms:   map[int64]bool{},
	}
}

func (s *store) addPlayer(name, email, hash string) *models.Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	p := &models.Player{ID: s.nextID, PlayerName: name, Email: email, PasswordHash: hash, CreatedAt: time.Now()}
	s.players[p.ID] = p
	return p
}

// --- players ---

type fakePlayers struct{ s *store }

func (f fakePlayers) Create(ctx context.Context, p *models.Player) (*models.Player, error) {
	if f.s.playersErr != nil {
		return nil, f.s.playersErr
	}
	for _, existing := range f.s.players {
		if existing.Email == p.Email || existing.PlayerName == p.PlayerName {
			return nil, common.ErrorConflict
		}
	}
	created := f.s.addPlayer(p.PlayerName, p.Email, p.PasswordHash)
	return created, nil
}

func (f fakePlayers) ExistsByNameOrEmail(ctx context.Context, name, email string) (bool, error) {
	if f.s.playersErr != nil {
		return false, f.s.playersErr
	}
	for _, p := range f.s.players {
		if p.Email == email || p.PlayerName == name {
			return true, nil
		}
	}
	return false, nil
}

func (f fakePlayers) find(match func(*models.Player) bool) (*models.Player, error) {
	if f.s.playersErr != nil {
		return nil, f.s.playersErr
	}
	for _, p := range f.s.players {
		if match(p) {
			cp := *p
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f fakePlayers) GetByIdentifier(ctx context.Context, identifier string) (*models.Player, error) {
	return f.find(func(p *models.Player) bool { return p.PlayerName == identifier || p.Email == identifier })
}

func (f fakePlayers) GetByID(ctx context.Context, id int64) (*models.Player, error) {
	return f.find(func(p *models.Player) bool { return p.ID == id })
}

func (f fakePlayers) GetByEmail(ctx context.Context, email string) (*models.Player, error) {
	return f.find(func(p *models.Player) bool { return p.Email == email })
}

func (f fakePlayers) UpdatePassword(ctx context.Context, id int64, hash string) error {
	p, ok := f.s.players[id]
	if !ok {
		return common.ErrorNotFound
	}
	p.PasswordHash = hash
	return nil
}

func (f fakePlayers) List(ctx context.Context) ([]models.PlayerWithPermission, error) {
	if f.s.playersErr != nil {
		return nil, f.s.playersErr
	}
	out := []models.PlayerWithPermission{}
	for _, p := range f.s.players {
		out = append(out, models.PlayerWithPermission{Player: *p, HasPermission: f.s.perms[p.ID]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f fakePlayers) Delete(ctx context.Context, id int64) error {
	if _, ok := f.s.players[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.s.players, id)
	delete(f.s.perms, id)
	return nil
}

// --- admins ---

type fakeAdmins struct{ s *store }

func (f fakeAdmins) Create(ctx context.Context, a *models.Admin) (*models.Admin, error) {
	if _, ok := f.s.admins[a.Username]; ok {
		return nil, common.ErrorAlreadyExists
	}
	a.ID = int64(len(f.s.admins) + 1)
	f.s.admins[a.Username] = a
	return a, nil
}

func (f fakeAdmins) GetByUsername(ctx context.Context, username string) (*models.Admin, error) {
	a, ok := f.s.admins[username]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return a, nil
}

// --- pending verifications ---

type fakePending struct{ s *store }

func (f fakePending) Upsert(ctx context.Context, p *models.PendingVerification) error {
	if f.s.pendingErr != nil {
		return f.s.pendingErr
	}
	cp := *p
	f.s.pending[p.Email] = &cp
	return nil
}

func (f fakePending) GetForUpdate(ctx context.Context, email string) (*models.PendingVerification, error) {
	if f.s.pendingErr != nil {
		return nil, f.s.pendingErr
	}
	p, ok := f.s.pending[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *p
	return &cp, nil
}

func (f fakePending) Delete(ctx context.Context, email string) error {
	delete(f.s.pending, email)
	return nil
}

// --- password resets ---

type fakeResets struct{ s *store }

func (f fakeResets) Upsert(ctx context.Context, email, tokenHash string, expiresAt time.Time) error {
	if f.s.resetsErr != nil {
		return f.s.resetsErr
	}
	f.s.resets[email] = &models.PasswordReset{Email: email, TokenHash: tokenHash, ExpiresAt: expiresAt}
	return nil
}

func (f fakeResets) FindByTokenHash(ctx context.Context, tokenHash string) (*models.PasswordReset, error) {
	for _, r := range f.s.resets {
		if r.TokenHash == tokenHash {
			cp := *r
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f fakeResets) Delete(ctx context.Context, email string) error {
	delete(f.s.resets, email)
	return nil
}

// --- permissions ---

type fakePerms struct{ s *store }

func (f fakePerms) Exists(ctx context.Context, id int64) (bool, error) {
	if f.s.permsErr != nil {
		return false, f.s.permsErr
	}
	return f.s.perms[id], nil
}

func (f fakePerms) Grant(ctx context.Context, id int64) error {
	if _, ok := f.s.players[id]; !ok {
		return common.ErrorNotFound
	}
	f.s.perms[id] = true
	return nil
}

func (f fakePerms) Revoke(ctx context.Context, id int64) error {
	delete(f.s.perms, id)
	return nil
}

// --- messages ---

type fakeMessages struct{ s *store }

func (f fakeMessages) Create(ctx context.Context, m *models.ContactMessage) (*models.ContactMessage, error) {
	if f.s.msgErr != nil {
		return nil, f.s.msgErr
	}
	m.ID = int64(len(f.s.messages) + 1)
	f.s.messages = append(f.s.messages, *m)
	return m, nil
}

func (f fakeMessages) List(ctx context.Context) ([]models.ContactMessage, error) {
	if f.s.msgErr != nil {
		return nil, f.s.msgErr
	}
	out := append([]models.ContactMessage{}, f.s.messages...)
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f fakeMessages) Delete(ctx context.Context, id int64) error {
	for i, m := range f.s.messages {
		if m.ID == id {
			f.s.messages = append(f.s.messages[:i], f.s.messages[i+1:]...)
			return nil
		}
	}
	return common.ErrorNotFound
}

// --- owner status ---

type fakeStatus struct{ s *store }

func (f fakeStatus) Get(ctx context.Context) (*models.OwnerStatus, error) {
	if f.s.status == nil {
		return nil, common.ErrorNotFound
	}
	return f.s.status, nil
}

func (f fakeStatus) Set(ctx context.Context, status string) error {
	f.s.status = &models.OwnerStatus{Status: status, UpdatedAt: time.Now()}
	return nil
}

// --- content ---

// fakeContent embeds the interface so only the methods a test needs are
// implemented; calling anything else panics.
type fakeContent struct {
	content.Repository
	s *store

	rules    []models.Rule
	sponsors []models.Sponsor
	lastBan  *models.Ban
}

func (f *fakeContent) ListRules(ctx context.Context) ([]models.Rule, error) {
	if f.s.contentErr != nil {
		return nil, f.s.contentErr
	}
	return f.rules, nil
}

func (f *fakeContent) CreateRule(ctx context.Context, r *models.Rule) (*models.Rule, error) {
	if f.s.contentErr != nil {
		return nil, f.s.contentErr
	}
	r.ID = int64(len(f.rules) + 1)
	f.rules = append(f.rules, *r)
	return r, nil
}

func (f *fakeContent) DeleteRule(ctx context.Context, id int64) error {
	for i, r := range f.rules {
		if r.ID == id {
			f.rules = append(f.rules[:i], f.rules[i+1:]...)
			return nil
		}
	}
	return common.ErrorNotFound
}

func (f *fakeContent) CreateBan(ctx context.Context, b *models.Ban) (*models.Ban, error) {
	b.ID = 1
	f.lastBan = b
	return b, nil
}

func (f *fakeContent) ListSponsors(ctx context.Context) ([]models.Sponsor, error) {
	return append([]models.Sponsor{}, f.sponsors...), nil
}

// --- manager ---

type fakeRepoManager struct {
	s       *store
	content *fakeContent
}

func newFakeRepoManager() *fakeRepoManager {
	s := newStore()
	return &fakeRepoManager{s: s, content: &fakeContent{s: s}}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error         { return nil }
func (m *fakeRepoManager) Players(db dbx.DBTX) players.Repository               { return fakePlayers{m.s} }
func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository                   { return fakeAdmins{m.s} }
func (m *fakeRepoManager) Verifications(db dbx.DBTX) verifications.Repository   { return fakePending{m.s} }
func (m *fakeRepoManager) PasswordResets(db dbx.DBTX) passwordresets.Repository { return fakeResets{m.s} }
func (m *fakeRepoManager) Permissions(db dbx.DBTX) permissions.Repository       { return fakePerms{m.s} }
func (m *fakeRepoManager) Messages(db dbx.DBTX) messages.Repository             { return fakeMessages{m.s} }
func (m *fakeRepoManager) OwnerStatus(db dbx.DBTX) ownerstatus.Repository       { return fakeStatus{m.s} }
func (m *fakeRepoManager) Content(db dbx.DBTX) content.Repository               { return m.content }

// --- mail ---

type fakeMailer struct {
	sent []mailer.Message
	err  error
}

func (f *fakeMailer) Send(ctx context.Context, msg mailer.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}
