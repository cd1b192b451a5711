package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stacksphere/internal/domain/entity"
)

func TestResolveRole_CachesAfterFirstLookup(t *testing.T) {
	users := newFakeUserRepo(&entity.User{Email: "mod@x.io", Role: entity.RoleModerator})
	uc := NewSessionUseCase(users, newFakeRoleCache(), time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		role, err := uc.ResolveRole(ctx, "mod@x.io")
		require.NoError(t, err)
		assert.Equal(t, entity.RoleModerator, role)
	}
	assert.Equal(t, int32(1), users.profileHits.Load())
}

func TestResolveRole_ConcurrentCallersShareLookup(t *testing.T) {
	users := newFakeUserRepo(&entity.User{Email: "a@x.io", Role: entity.RoleAdmin})
	users.delay = 50 * time.Millisecond
	uc := NewSessionUseCase(users, newFakeRoleCache(), time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			role, err := uc.ResolveRole(context.Background(), "a@x.io")
			assert.NoError(t, err)
			assert.Equal(t, entity.RoleAdmin, role)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), users.profileHits.Load())
}

func TestResolveRole_CancelledCallerDoesNotFailSharedLookup(t *testing.T) {
	users := newFakeUserRepo(&entity.User{Email: "mod@x.io", Role: entity.RoleModerator})
	users.delay = 100 * time.Millisecond
	uc := NewSessionUseCase(users, newFakeRoleCache(), time.Minute)

	firstCtx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := uc.ResolveRole(firstCtx, "mod@x.io")
		firstErr <- err
	}()
	require.Eventually(t, func() bool { return users.profileHits.Load() == 1 }, time.Second, time.Millisecond)

	type result struct {
		role entity.Role
		err  error
	}
	second := make(chan result, 1)
	go func() {
		role, err := uc.ResolveRole(context.Background(), "mod@x.io")
		second <- result{role, err}
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()
	assert.ErrorIs(t, <-firstErr, context.Canceled)

	res := <-second
	require.NoError(t, res.err)
	assert.Equal(t, entity.RoleModerator, res.role)
	assert.Equal(t, int32(1), users.profileHits.Load())
}

func TestResolveRole_CallerDeadlineIsReportedToThatCallerOnly(t *testing.T) {
	users := newFakeUserRepo(&entity.User{Email: "a@x.io", Role: entity.RoleAdmin})
	users.delay = 80 * time.Millisecond
	cache := newFakeRoleCache()
	uc := NewSessionUseCase(users, cache, time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := uc.ResolveRole(ctx, "a@x.io")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// the lookup keeps running and fills the cache
	require.Eventually(t, func() bool {
		role, ok, _ := cache.Get(context.Background(), "a@x.io")
		return ok && role == entity.RoleAdmin
	}, time.Second, 5*time.Millisecond)
}

func TestResolveRole_RequiresEmail(t *testing.T) {
	uc := NewSessionUseCase(newFakeUserRepo(), newFakeRoleCache(), time.Minute)

	_, err := uc.ResolveRole(context.Background(), "")
	assert.Error(t, err)
}

func TestRefresh_SeesRoleChange(t *testing.T) {
	users := newFakeUserRepo(&entity.User{Email: "u@x.io", Role: entity.RoleUser})
	uc := NewSessionUseCase(users, newFakeRoleCache(), time.Minute)
	ctx := context.Background()

	role, err := uc.ResolveRole(ctx, "u@x.io")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, role)

	_, err = users.UpdateRole(ctx, "u@x.io", entity.RoleModerator)
	require.NoError(t, err)

	role, err = uc.ResolveRole(ctx, "u@x.io")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, role, "cached role is served until refreshed")

	role, err = uc.Refresh(ctx, "u@x.io")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleModerator, role)
}

func TestLogout_InvalidatesAndRunsHooks(t *testing.T) {
	users := newFakeUserRepo(&entity.User{Email: "mod@x.io", Role: entity.RoleModerator})
	cache := newFakeRoleCache()
	uc := NewSessionUseCase(users, cache, time.Minute)
	ctx := context.Background()

	var closed []string
	uc.OnLogout(func(_ context.Context, email string) {
		closed = append(closed, email)
	})

	_, err := uc.ResolveRole(ctx, "mod@x.io")
	require.NoError(t, err)

	uc.Logout(ctx, &entity.Session{Email: "mod@x.io"})

	_, ok, _ := cache.Get(ctx, "mod@x.io")
	assert.False(t, ok)
	assert.Equal(t, []string{"mod@x.io"}, closed)

	uc.Logout(ctx, nil)
	assert.Len(t, closed, 1)
}
