package session

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisStorage persists session credentials in Redis so they survive gateway
// restarts and are shared between replicas. Keys expire with the auth cookie.
type RedisStorage struct {
	rdb *redis.Client
}

func NewRedisStorage(rdb *redis.Client) *RedisStorage {
	return &RedisStorage{rdb: rdb}
}

func tokenKey(sid string) string { return "sess:" + sid + ":auth_token" }
func levelKey(sid string) string { return "sess:" + sid + ":access_level" }

func (r *RedisStorage) Token(ctx context.Context, sid string) (string, error) {
	v, err := r.rdb.Get(ctx, tokenKey(sid)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	return v, nil
}

func (r *RedisStorage) Save(ctx context.Context, sid, token, accessLevel string) error {
	pipe := r.rdb.TxPipeline()
	pipe.Set(ctx, tokenKey(sid), token, TokenTTL)
	pipe.Set(ctx, levelKey(sid), accessLevel, TokenTTL)
	_, err := pipe.Exec(ctx)
	return err
}

func (r *RedisStorage) Clear(ctx context.Context, sid string) error {
	return r.rdb.Del(ctx, tokenKey(sid), levelKey(sid)).Err()
}
