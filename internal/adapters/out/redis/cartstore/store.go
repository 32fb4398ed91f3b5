package cartstore

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "fulfillment:cart:"

// RedisCartStore keeps one serialized cart per customer. Every Save refreshes
// the expiry so an abandoned cart disappears after ttl.
type RedisCartStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCartStore(client *redis.Client, ttl time.Duration) *RedisCartStore {
	return &RedisCartStore{client: client, ttl: ttl}
}

// Connect parses a redis:// URL and pings the server.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("redisUrl", err)
	}

	client := redis.NewClient(opts)
	if err = client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errs.NewRemoteFailureError("connect to redis", err)
	}
	return client, nil
}

func (s *RedisCartStore) Load(ctx context.Context, customerID kernel.UUID) ([]byte, error) {
	data, err := s.client.Get(ctx, key(customerID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, errs.NewRemoteFailureError("load cart", err)
	}
	return data, nil
}

func (s *RedisCartStore) Save(ctx context.Context, customerID kernel.UUID, data []byte) error {
	if err := s.client.Set(ctx, key(customerID), data, s.ttl).Err(); err != nil {
		return errs.NewRemoteFailureError("save cart", err)
	}
	return nil
}

func (s *RedisCartStore) Delete(ctx context.Context, customerID kernel.UUID) error {
	if err := s.client.Del(ctx, key(customerID)).Err(); err != nil {
		return errs.NewRemoteFailureError("delete cart", err)
	}
	return nil
}

func key(customerID kernel.UUID) string {
	return keyPrefix + customerID.String()
}
