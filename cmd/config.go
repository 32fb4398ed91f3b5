package cmd

import (
	"fmt"
	"strconv"
	"time"

	"fulfillment/internal/core/application/cartsession"
	"fulfillment/internal/jobs"
	"fulfillment/internal/pkg/errs"
)

type Config struct {
	HTTPPort           string
	DBHost             string
	DBPort             string
	DBUser             string
	DBPassword         string
	DBName             string
	DBSslMode          string
	RedisURL           string
	JWTSecret          string
	OfferSweepSchedule string
	CartTTL            time.Duration
	CartSessionIdle    time.Duration
}

const (
	defaultHTTPPort     = "8080"
	defaultDBHost       = "localhost"
	defaultDBPort       = "5432"
	defaultDBUser       = "postgres"
	defaultDBName       = "fulfillment"
	defaultDBSslMode    = "disable"
	defaultRedisURL     = "redis://localhost:6379/0"
	defaultCartTTLHours = 72
)

// NewConfig reads the configuration through getenv and fills in defaults.
// JWT_SECRET has no default.
func NewConfig(getenv func(string) string) (Config, error) {
	c := Config{
		HTTPPort:           valueOr(getenv("HTTP_PORT"), defaultHTTPPort),
		DBHost:             valueOr(getenv("DB_HOST"), defaultDBHost),
		DBPort:             valueOr(getenv("DB_PORT"), defaultDBPort),
		DBUser:             valueOr(getenv("DB_USER"), defaultDBUser),
		DBPassword:         getenv("DB_PASSWORD"),
		DBName:             valueOr(getenv("DB_NAME"), defaultDBName),
		DBSslMode:          valueOr(getenv("DB_SSLMODE"), defaultDBSslMode),
		RedisURL:           valueOr(getenv("REDIS_URL"), defaultRedisURL),
		JWTSecret:          getenv("JWT_SECRET"),
		OfferSweepSchedule: valueOr(getenv("OFFER_SWEEP_SCHEDULE"), jobs.DefaultOfferSweepSchedule),
		CartTTL:            defaultCartTTLHours * time.Hour,
		CartSessionIdle:    cartsession.DefaultIdleTimeout,
	}

	if raw := getenv("CART_TTL_HOURS"); raw != "" {
		hours, err := strconv.Atoi(raw)
		if err != nil || hours <= 0 {
			return Config{}, errs.NewValueIsInvalidErrorWithCause("CART_TTL_HOURS", fmt.Errorf("%q is not a positive integer", raw))
		}
		c.CartTTL = time.Duration(hours) * time.Hour
	}

	if raw := getenv("CART_SESSION_IDLE_MINUTES"); raw != "" {
		minutes, err := strconv.Atoi(raw)
		if err != nil || minutes <= 0 {
			return Config{}, errs.NewValueIsInvalidErrorWithCause("CART_SESSION_IDLE_MINUTES", fmt.Errorf("%q is not a positive integer", raw))
		}
		c.CartSessionIdle = time.Duration(minutes) * time.Minute
	}

	if c.JWTSecret == "" {
		return Config{}, errs.NewValueIsRequiredError("JWT_SECRET")
	}
	return c, nil
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
