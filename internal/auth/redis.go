// This file implements the Redis-backed session store, used when sessions
// should survive restarts or be shared across replicas.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/yourusername/docemila/pkg/errors"
)

// sessionKeyPrefix namespaces session keys in Redis.
const sessionKeyPrefix = "docemila:session:"

// RedisStore persists sessions in Redis with a TTL. Expiry is delegated to
// Redis itself, so Load never has to reap stale entries.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore connects to Redis and verifies the connection with a ping.
func NewRedisStore(ctx context.Context, addr string, db int, ttl time.Duration) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, DB: db})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return &RedisStore{client: client, ttl: ttl}, nil
}

// Save stores the session as JSON under its token with the configured TTL.
func (r *RedisStore) Save(ctx context.Context, session Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	return r.client.Set(ctx, sessionKeyPrefix+session.Token, data, r.ttl).Err()
}

// Load returns the session for token, or ErrSessionNotFound when the key is
// missing or already expired.
func (r *RedisStore) Load(ctx context.Context, token string) (Session, error) {
	data, err := r.client.Get(ctx, sessionKeyPrefix+token).Bytes()
	if err == redis.Nil {
		return Session{}, errors.ErrSessionNotFound
	}
	if err != nil {
		return Session{}, fmt.Errorf("failed to load session: %w", err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return Session{}, fmt.Errorf("failed to decode session: %w", err)
	}
	return session, nil
}

// Delete removes the session for token. Unknown tokens are a no-op.
func (r *RedisStore) Delete(ctx context.Context, token string) error {
	return r.client.Del(ctx, sessionKeyPrefix+token).Err()
}

// Close releases the underlying Redis connection.
func (r *RedisStore) Close() error {
	return r.client.Close()
}
