package services

import (
	"context"
	"errors"
	"testing"

	"github.com/eulark/eulark/internal/common"
	"github.com/eulark/eulark/internal/logging"
	"github.com/eulark/eulark/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLogos struct {
	err error
}

func (f fakeLogos) PresignedLogoURL(ctx context.Context, key string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "https://s3.test/" + key + "?sig=1", nil
}

func newContentService(t *testing.T, logos LogoURLer) (*ContentService, *fakeRepoManager) {
	t.Helper()
	db, _ := newSQLMockDB(t)
	t.Cleanup(func() { db.Close() })

	rm := newFakeRepoManager()
	return NewContentService(db, rm, logos, logging.Discard()), rm
}

func TestOwnerStatus_DefaultsToAwake(t *testing.T) {
	svc, rm := newContentService(t, nil)

	st, err := svc.OwnerStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, common.OwnerAwake, st.Status)

	rm.s.status = &models.OwnerStatus{Status: common.OwnerSleep}
	st, err = svc.OwnerStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, common.OwnerSleep, st.Status)
}

func TestListRules(t *testing.T) {
	svc, rm := newContentService(t, nil)
	rm.content.rules = []models.Rule{{ID: 1, Title: "Be nice"}}

	rules, err := svc.ListRules(context.Background())
	require.NoError(t, err)
	assert.Len(t, rules, 1)

	rm.s.contentErr = errBoom{}
	_, err = svc.ListRules(context.Background())
	assert.ErrorContains(t, err, "boom")
}

func TestListSponsors_AddsLogoURLs(t *testing.T) {
	svc, rm := newContentService(t, fakeLogos{})
	rm.content.sponsors = []models.Sponsor{
		{ID: 1, Name: "Steve", LogoKey: "sponsors/steve.png"},
		{ID: 2, Name: "Alex"},
	}

	list, err := svc.ListSponsors(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://s3.test/sponsors/steve.png?sig=1", list[0].LogoURL)
	assert.Empty(t, list[1].LogoURL)
}

func TestListSponsors_PresignFailureOnlyDropsURL(t *testing.T) {
	svc, rm := newContentService(t, fakeLogos{err: errors.New("s3 down")})
	rm.content.sponsors = []models.Sponsor{{ID: 1, Name: "Steve", LogoKey: "sponsors/steve.png"}}

	list, err := svc.ListSponsors(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Empty(t, list[0].LogoURL)
}
