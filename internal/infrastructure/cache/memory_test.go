package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"stacksphere/internal/domain/entity"
)

func TestMemoryRoleCacheTTL(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	c := NewMemoryRoleCache()
	c.now = func() time.Time { return clock }

	require.NoError(t, c.Set(ctx, "Ada@Example.com ", entity.RoleModerator, time.Minute))

	role, ok, err := c.Get(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, entity.RoleModerator, role)

	clock = clock.Add(time.Minute)
	_, ok, _ = c.Get(ctx, "ada@example.com")
	assert.False(t, ok, "entry expires at exactly ttl")

	assert.Equal(t, 1, c.Sweep())
}

func TestMemoryRoleCacheDelete(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryRoleCache()

	require.NoError(t, c.Set(ctx, "grace@example.com", entity.RoleAdmin, time.Hour))
	require.NoError(t, c.Delete(ctx, "grace@example.com"))

	_, ok, _ := c.Get(ctx, "grace@example.com")
	assert.False(t, ok)
}

func TestSweeperStopsWithContext(t *testing.T) {
	defer goleak.VerifyNone(t)

	c := NewMemoryRoleCache()
	ctx, cancel := context.WithCancel(context.Background())
	c.StartSweeper(ctx, time.Millisecond)
	time.Sleep(5 * time.Millisecond)
	cancel()
	time.Sleep(5 * time.Millisecond)
}

func TestRoleKey(t *testing.T) {
	assert.Equal(t, "role:ada@example.com", RoleKey("  ADA@example.com"))
}
