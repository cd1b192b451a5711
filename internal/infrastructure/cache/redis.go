package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"stacksphere/internal/domain/entity"
)

func NewRedisClient(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
}

// RedisRoleCache shares resolved roles across BFF instances.
type RedisRoleCache struct {
	rdb *redis.Client
}

func NewRedisRoleCache(rdb *redis.Client) *RedisRoleCache {
	return &RedisRoleCache{rdb: rdb}
}

func (c *RedisRoleCache) Get(ctx context.Context, email string) (entity.Role, bool, error) {
	v, err := c.rdb.Get(ctx, RoleKey(email)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return entity.ParseRole(v), true, nil
}

func (c *RedisRoleCache) Set(ctx context.Context, email string, role entity.Role, ttl time.Duration) error {
	return c.rdb.Set(ctx, RoleKey(email), string(role), ttl).Err()
}

func (c *RedisRoleCache) Delete(ctx context.Context, email string) error {
	return c.rdb.Del(ctx, RoleKey(email)).Err()
}

func (c *RedisRoleCache) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}
