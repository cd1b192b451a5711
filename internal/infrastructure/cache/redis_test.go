package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stacksphere/internal/domain/entity"
)

func newTestRedisCache(t *testing.T) (*RedisRoleCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisRoleCache(rdb), mr
}

func TestRedisRoleCache_MissIsNotAnError(t *testing.T) {
	c, _ := newTestRedisCache(t)

	role, ok, err := c.Get(context.Background(), "nobody@x.io")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, role)
}

func TestRedisRoleCache_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestRedisCache(t)

	require.NoError(t, c.Set(ctx, "Mod@X.io", entity.RoleModerator, time.Minute))
	assert.Equal(t, "moderator", mustGet(t, mr, "role:mod@x.io"))
	assert.Equal(t, time.Minute, mr.TTL("role:mod@x.io"))

	role, ok, err := c.Get(ctx, "mod@x.io")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, entity.RoleModerator, role)

	require.NoError(t, c.Delete(ctx, "mod@x.io"))
	_, ok, err = c.Get(ctx, "mod@x.io")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisRoleCache_EntryExpires(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestRedisCache(t)

	require.NoError(t, c.Set(ctx, "a@x.io", entity.RoleAdmin, time.Minute))
	mr.FastForward(time.Minute + time.Second)

	_, ok, err := c.Get(ctx, "a@x.io")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisRoleCache_ServerDown(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestRedisCache(t)
	require.NoError(t, c.Ping(ctx))

	mr.Close()
	assert.Error(t, c.Ping(ctx))
	_, _, err := c.Get(ctx, "a@x.io")
	assert.Error(t, err)
}

func mustGet(t *testing.T, mr *miniredis.Miniredis, key string) string {
	t.Helper()
	v, err := mr.Get(key)
	require.NoError(t, err)
	return v
}
