package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevocationRedis implements RevocationStore using Redis.
// Entries expire after ttl, by which time every older token has expired as well.
type RevocationRedis struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

var _ RevocationStore = (*RevocationRedis)(nil)

// NewRevocationRedis creates a new RevocationRedis instance.
func NewRevocationRedis(client *redis.Client, prefix string, ttl time.Duration) *RevocationRedis {
	return &RevocationRedis{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

// key returns the Redis key for a user's revocation entry.
func (r *RevocationRedis) key(userID string) string {
	return fmt.Sprintf("%s:%s", r.prefix, userID)
}

// Revoke stores the revocation instant in unix milliseconds.
func (r *RevocationRedis) Revoke(ctx context.Context, userID string, at time.Time) error {
	if err := r.client.Set(ctx, r.key(userID), at.UnixMilli(), r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store revocation: %w", err)
	}
	return nil
}

// RevokedAt returns the stored revocation instant, if any.
func (r *RevocationRedis) RevokedAt(ctx context.Context, userID string) (time.Time, bool, error) {
	ms, err := r.client.Get(ctx, r.key(userID)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, fmt.Errorf("failed to load revocation: %w", err)
	}
	return time.UnixMilli(ms), true, nil
}
