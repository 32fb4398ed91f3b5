package offer_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/offer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOffer_Deactivate(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(48 * time.Hour)

	o, err := offer.NewOffer(kernel.NewUUID(), "2x1 burgers", start, end, true)
	require.NoError(t, err)

	assert.False(t, o.Deactivate(end), "not expired at the end instant")
	assert.True(t, o.IsActive())

	assert.True(t, o.Deactivate(end.Add(time.Second)))
	assert.False(t, o.IsActive())
	assert.False(t, o.Deactivate(end.Add(time.Hour)), "already inactive")
}

func TestNewOffer_Validation(t *testing.T) {
	now := time.Now()

	_, err := offer.NewOffer(kernel.NewUUID(), " ", now, now.Add(-time.Hour), true)

	require.Error(t, err)
	assert.ErrorContains(t, err, "title")
	assert.ErrorContains(t, err, "endsAt")
}
