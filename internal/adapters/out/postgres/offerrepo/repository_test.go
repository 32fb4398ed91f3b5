package offerrepo_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/offerrepo"
	"fulfillment/internal/adapters/out/postgres/postgrestest"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/offer"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func newOffer(t *testing.T, title string, endsAt time.Time, active bool) *offer.Offer {
	t.Helper()
	o, err := offer.NewOffer(kernel.NewUUID(), title, endsAt.Add(-48*time.Hour), endsAt, active)
	require.NoError(t, err)
	return o
}

func TestGormOfferRepository_ListExpiredActive(t *testing.T) {
	ctx := context.Background()
	repo := offerrepo.NewGormOfferRepository(postgrestest.NewDB(t), &postgrestest.Tracker{})

	expired := newOffer(t, "2x1 burgers", now.Add(-time.Hour), true)
	current := newOffer(t, "free fries", now.Add(time.Hour), true)
	inactive := newOffer(t, "old combo", now.Add(-2*time.Hour), false)
	for _, o := range []*offer.Offer{expired, current, inactive} {
		require.NoError(t, repo.Add(ctx, o))
	}

	got, err := repo.ListExpiredActive(ctx, now)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, expired.ID(), got[0].ID())
	assert.Equal(t, "2x1 burgers", got[0].Title())
	assert.True(t, got[0].IsActive())

	require.True(t, got[0].Deactivate(now))
	require.NoError(t, repo.Update(ctx, got[0]))

	got, err = repo.ListExpiredActive(ctx, now)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGormOfferRepository_UpdateMissing(t *testing.T) {
	repo := offerrepo.NewGormOfferRepository(postgrestest.NewDB(t), &postgrestest.Tracker{})

	err := repo.Update(context.Background(), newOffer(t, "ghost", now, true))
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}
