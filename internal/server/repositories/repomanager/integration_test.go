//go:build integration

package repomanager_test

import (
	"context"
	"database/sql"
	"os"
	"regexp"
	"testing"
	"time"

	"github.com/eulark/eulark/internal/common"
	"github.com/eulark/eulark/internal/dbx"
	"github.com/eulark/eulark/internal/logging"
	"github.com/eulark/eulark/internal/server/auth"
	"github.com/eulark/eulark/internal/server/config"
	"github.com/eulark/eulark/internal/server/mailer"
	"github.com/eulark/eulark/internal/server/models"
	"github.com/eulark/eulark/internal/server/repositories/repomanager"
	"github.com/eulark/eulark/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

var (
	testDB *sql.DB
	testRM = repomanager.NewPostgresRepositoryManager()
)

// TestMain starts a PostgreSQL container and applies the migrations once.
func TestMain(m *testing.M) {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("eulark_test"),
		postgres.WithUsername("eulark"),
		postgres.WithPassword("eulark"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		panic("failed to start postgres container: " + err.Error())
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		panic("failed to get connection string: " + err.Error())
	}

	db, closeDB, err := dbx.Open(ctx, connStr, dbx.PoolOptions{MaxConns: 4, ConnectTimeout: 5 * time.Second})
	if err != nil {
		_ = container.Terminate(ctx)
		panic("failed to open pool: " + err.Error())
	}

	if err := testRM.RunMigrations(ctx, db); err != nil {
		closeDB()
		_ = container.Terminate(ctx)
		panic("failed to run migrations: " + err.Error())
	}

	testDB = db
	code := m.Run()

	closeDB()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

type captureMailer struct {
	sent []mailer.Message
}

func (c *captureMailer) Send(ctx context.Context, msg mailer.Message) error {
	c.sent = append(c.sent, msg)
	return nil
}

var codeRe = regexp.MustCompile(`\b\d{6}\b`)

func TestRegistrationFlow(t *testing.T) {
	ctx := context.Background()

	cfg := &config.Config{}
	cfg.LoadDefaults()

	mail := &captureMailer{}
	issuer := auth.NewIssuer([]byte(cfg.SecretKey))
	svc := services.NewAuthService(testDB, testRM, cfg, issuer, auth.NewBcryptHasher(4), mail, logging.Discard())

	require.NoError(t, svc.Register(ctx, services.RegisterInput{
		PlayerName: "Alice", Email: "alice@x.com", Password: "pw1", ConfirmPassword: "pw1",
	}))
	require.Len(t, mail.sent, 1)
	code := codeRe.FindString(mail.sent[0].HTML)
	require.NotEmpty(t, code)

	wrong := "000000"
	if code == wrong {
		wrong = "999999"
	}
	_, err := svc.VerifyEmail(ctx, "alice@x.com", wrong)
	assert.ErrorIs(t, err, common.ErrInvalidCode)

	player, err := svc.VerifyEmail(ctx, "alice@x.com", code)
	require.NoError(t, err)
	assert.Equal(t, "Alice", player.PlayerName)

	_, err = svc.VerifyEmail(ctx, "alice@x.com", code)
	assert.ErrorIs(t, err, common.ErrInvalidCode)

	err = svc.Register(ctx, services.RegisterInput{
		PlayerName: "Other", Email: "alice@x.com", Password: "x", ConfirmPassword: "x",
	})
	assert.ErrorIs(t, err, common.ErrorConflict)

	res, err := svc.Login(ctx, "alice@x.com", "pw1")
	require.NoError(t, err)
	claims, err := issuer.Verify(res.Token)
	require.NoError(t, err)
	assert.Equal(t, player.ID, claims.UserID)
	assert.False(t, claims.IsAdmin)
}

func TestPermissionsCascadeOnPlayerDelete(t *testing.T) {
	ctx := context.Background()

	p, err := testRM.Players(testDB).Create(ctx, &models.Player{PlayerName: "Bob", Email: "bob@x.com", PasswordHash: "h"})
	require.NoError(t, err)

	perms := testRM.Permissions(testDB)
	require.NoError(t, perms.Grant(ctx, p.ID))
	require.NoError(t, perms.Grant(ctx, p.ID))

	ok, err := perms.Exists(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	assert.ErrorIs(t, perms.Grant(ctx, 999999), common.ErrorNotFound)

	require.NoError(t, testRM.Players(testDB).Delete(ctx, p.ID))
	ok, err = perms.Exists(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerificationUpsertReplacesCode(t *testing.T) {
	ctx := context.Background()
	repo := testRM.Verifications(testDB)

	first := &models.PendingVerification{Email: "c@x.com", PlayerName: "Carol", PasswordHash: "h1", VerificationCode: "111111", ExpiresAt: time.Now().Add(time.Minute)}
	second := &models.PendingVerification{Email: "c@x.com", PlayerName: "Carol2", PasswordHash: "h2", VerificationCode: "222222", ExpiresAt: time.Now().Add(20 * time.Minute)}
	require.NoError(t, repo.Upsert(ctx, first))
	require.NoError(t, repo.Upsert(ctx, second))

	err := dbx.WithTx(ctx, testDB, nil, func(ctx context.Context, tx dbx.DBTX) error {
		got, err := testRM.Verifications(tx).GetForUpdate(ctx, "c@x.com")
		require.NoError(t, err)
		assert.Equal(t, "222222", got.VerificationCode)
		assert.Equal(t, "Carol2", got.PlayerName)
		return nil
	})
	require.NoError(t, err)
}

func TestContentAndOwnerStatus(t *testing.T) {
	ctx := context.Background()

	st, err := testRM.OwnerStatus(testDB).Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, common.OwnerAwake, st.Status)

	require.NoError(t, testRM.OwnerStatus(testDB).Set(ctx, common.OwnerSleep))
	st, err = testRM.OwnerStatus(testDB).Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, common.OwnerSleep, st.Status)

	c := testRM.Content(testDB)
	_, err = c.CreateRule(ctx, &models.Rule{Title: "second", SortOrder: 2})
	require.NoError(t, err)
	_, err = c.CreateRule(ctx, &models.Rule{Title: "first", SortOrder: 1})
	require.NoError(t, err)

	rules, err := c.ListRules(ctx)
	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.Equal(t, "first", rules[0].Title)

	assert.ErrorIs(t, c.DeleteRule(ctx, 999999), common.ErrorNotFound)
}
