package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keySession = "session:%s"

// DefaultTTL is the idle lifetime of a session when the caller does
// not configure one.
var DefaultTTL = 72 * time.Hour

// RedisStore keeps sessions in Redis with a sliding TTL.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisStore connects to Redis at addr.
func NewRedisStore(addr string, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	return &RedisStore{rdb: rdb, ttl: ttl}
}

// Ping verifies the Redis connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

// Close releases the underlying client.
func (s *RedisStore) Close() error {
	return s.rdb.Close()
}

func (s *RedisStore) Get(ctx context.Context, token string) (*Session, error) {
	key := fmt.Sprintf(keySession, token)
	data, err := s.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("session: get %s: %w", token, err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("session: decode %s: %w", token, err)
	}
	sess.Token = token

	// Sliding expiry: reading a session keeps it alive.
	s.rdb.Expire(ctx, key, s.ttl)

	return &sess, nil
}

func (s *RedisStore) Save(ctx context.Context, sess *Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("session: encode %s: %w", sess.Token, err)
	}
	key := fmt.Sprintf(keySession, sess.Token)
	if err := s.rdb.Set(ctx, key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("session: save %s: %w", sess.Token, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	key := fmt.Sprintf(keySession, token)
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("session: delete %s: %w", token, err)
	}
	return nil
}
