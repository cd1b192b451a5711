package cache

import (
	"context"
	"sync"
	"time"

	"stacksphere/internal/domain/entity"
)

type roleEntry struct {
	role      entity.Role
	expiresAt time.Time
}

// MemoryRoleCache is a process-local role cache with per-entry TTL.
type MemoryRoleCache struct {
	mu      sync.RWMutex
	entries map[string]roleEntry
	now     func() time.Time
}

func NewMemoryRoleCache() *MemoryRoleCache {
	return &MemoryRoleCache{
		entries: make(map[string]roleEntry),
		now:     time.Now,
	}
}

func (c *MemoryRoleCache) Get(_ context.Context, email string) (entity.Role, bool, error) {
	c.mu.RLock()
	e, ok := c.entries[RoleKey(email)]
	c.mu.RUnlock()

	if !ok || !c.now().Before(e.expiresAt) {
		return "", false, nil
	}
	return e.role, true, nil
}

func (c *MemoryRoleCache) Set(_ context.Context, email string, role entity.Role, ttl time.Duration) error {
	c.mu.Lock()
	c.entries[RoleKey(email)] = roleEntry{role: role, expiresAt: c.now().Add(ttl)}
	c.mu.Unlock()
	return nil
}

func (c *MemoryRoleCache) Delete(_ context.Context, email string) error {
	c.mu.Lock()
	delete(c.entries, RoleKey(email))
	c.mu.Unlock()
	return nil
}

// Sweep removes expired entries and returns how many were dropped.
func (c *MemoryRoleCache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for key, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

func (c *MemoryRoleCache) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.Sweep()
			}
		}
	}()
}
