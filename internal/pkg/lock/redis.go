package lock

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the key only while it still carries our token, so an
// expired lease never frees a lock taken by someone else.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type redisLocker struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
	wait   time.Duration
}

// NewRedis returns a Locker shared by every instance talking to the same redis.
func NewRedis(client redis.UniversalClient, prefix string, ttl, wait time.Duration) Locker {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if wait <= 0 {
		wait = DefaultWait
	}
	return &redisLocker{client: client, prefix: prefix, ttl: ttl, wait: wait}
}

func (r *redisLocker) key(key string) string {
	if r.prefix == "" {
		return "lock:" + key
	}
	return r.prefix + ":lock:" + key
}

func (r *redisLocker) Acquire(ctx context.Context, key string) (func(), error) {
	fullKey := r.key(key)
	token, err := newToken()
	if err != nil {
		return nil, err
	}

	deadline := time.Now().Add(r.wait)
	backoff := retryInterval
	for {
		ok, err := r.client.SetNX(ctx, fullKey, token, r.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire lock %s: %w", fullKey, err)
		}
		if ok {
			return func() {
				// the caller's ctx may already be cancelled
				releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				if err := releaseScript.Run(releaseCtx, r.client, []string{fullKey}, token).Err(); err != nil {
					slog.Warn("failed to release lock", "key", fullKey, "error", err)
				}
			}, nil
		}

		if time.Now().Add(backoff).After(deadline) {
			return nil, ErrLockTimeout
		}
		select {
		case <-time.After(backoff):
			backoff = nextBackoff(backoff)
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

func newToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate lock token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
