package cmd_test

import (
	"testing"
	"time"

	"fulfillment/cmd"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestNewConfig_Defaults(t *testing.T) {
	c, err := cmd.NewConfig(env(map[string]string{"JWT_SECRET": "s3cret"}))
	require.NoError(t, err)

	assert.Equal(t, "8080", c.HTTPPort)
	assert.Equal(t, "localhost", c.DBHost)
	assert.Equal(t, "5432", c.DBPort)
	assert.Equal(t, "fulfillment", c.DBName)
	assert.Equal(t, "disable", c.DBSslMode)
	assert.Equal(t, "redis://localhost:6379/0", c.RedisURL)
	assert.Equal(t, "@every 60s", c.OfferSweepSchedule)
	assert.Equal(t, 72*time.Hour, c.CartTTL)
	assert.Equal(t, 30*time.Minute, c.CartSessionIdle)
}

func TestNewConfig_Overrides(t *testing.T) {
	c, err := cmd.NewConfig(env(map[string]string{
		"HTTP_PORT":                 "9000",
		"DB_HOST":                   "db",
		"DB_PASSWORD":               "pw",
		"REDIS_URL":                 "redis://cache:6379/2",
		"JWT_SECRET":                "s3cret",
		"OFFER_SWEEP_SCHEDULE":      "@every 5m",
		"CART_TTL_HOURS":            "12",
		"CART_SESSION_IDLE_MINUTES": "5",
	}))
	require.NoError(t, err)

	assert.Equal(t, "9000", c.HTTPPort)
	assert.Equal(t, "db", c.DBHost)
	assert.Equal(t, "pw", c.DBPassword)
	assert.Equal(t, "redis://cache:6379/2", c.RedisURL)
	assert.Equal(t, "@every 5m", c.OfferSweepSchedule)
	assert.Equal(t, 12*time.Hour, c.CartTTL)
	assert.Equal(t, 5*time.Minute, c.CartSessionIdle)
}

func TestNewConfig_Errors(t *testing.T) {
	_, err := cmd.NewConfig(env(map[string]string{}))
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	for _, ttl := range []string{"abc", "0", "-3"} {
		_, err = cmd.NewConfig(env(map[string]string{"JWT_SECRET": "s", "CART_TTL_HOURS": ttl}))
		require.ErrorIs(t, err, errs.ErrValueIsInvalid, ttl)
	}

	_, err = cmd.NewConfig(env(map[string]string{"JWT_SECRET": "s", "CART_SESSION_IDLE_MINUTES": "soon"}))
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
