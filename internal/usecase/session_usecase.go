package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"stacksphere/internal/domain/entity"
	"stacksphere/internal/domain/repository"
	"stacksphere/pkg/errors"
	"stacksphere/pkg/logger"
)

// DefaultProfileLookupTimeout bounds a shared backend profile lookup.
const DefaultProfileLookupTimeout = 10 * time.Second

// LogoutHook is called with the email of a session that has been closed.
type LogoutHook func(ctx context.Context, email string)

// SessionUseCase resolves roles for sessions. Roles are cached per email
// for ttl; concurrent lookups for the same email share one backend call.
type SessionUseCase struct {
	userRepo repository.UserRepository
	roles    RoleCache
	ttl      time.Duration
	group    singleflight.Group

	lookupTimeout time.Duration

	hooksMu sync.RWMutex
	hooks   []LogoutHook
}

func NewSessionUseCase(userRepo repository.UserRepository, roles RoleCache, ttl time.Duration) *SessionUseCase {
	return &SessionUseCase{
		userRepo: userRepo,
		roles:    roles,
		ttl:      ttl,

		lookupTimeout: DefaultProfileLookupTimeout,
	}
}

func (uc *SessionUseCase) OnLogout(hook LogoutHook) {
	uc.hooksMu.Lock()
	uc.hooks = append(uc.hooks, hook)
	uc.hooksMu.Unlock()
}

func (uc *SessionUseCase) ResolveRole(ctx context.Context, email string) (entity.Role, error) {
	if email == "" {
		return "", errors.Unauthorized("Authentication required", nil)
	}

	role, ok, err := uc.roles.Get(ctx, email)
	if err != nil {
		logger.Warn("Role cache read failed for %s: %v", email, err)
	} else if ok {
		return role, nil
	}

	user, err := uc.fetchProfile(ctx, email)
	if err != nil {
		return "", err
	}
	return user.Role, nil
}

// Profile always reads the backend and refreshes the cached role.
func (uc *SessionUseCase) Profile(ctx context.Context, email string) (*entity.User, error) {
	if email == "" {
		return nil, errors.Unauthorized("Authentication required", nil)
	}
	return uc.fetchProfile(ctx, email)
}

// Refresh drops the cached role and resolves it again.
func (uc *SessionUseCase) Refresh(ctx context.Context, email string) (entity.Role, error) {
	uc.Invalidate(ctx, email)
	return uc.ResolveRole(ctx, email)
}

func (uc *SessionUseCase) Invalidate(ctx context.Context, email string) {
	if err := uc.roles.Delete(ctx, email); err != nil {
		logger.Warn("Role cache delete failed for %s: %v", email, err)
	}
}

func (uc *SessionUseCase) Logout(ctx context.Context, session *entity.Session) {
	if session == nil {
		return
	}
	uc.Invalidate(ctx, session.Email)

	uc.hooksMu.RLock()
	hooks := append([]LogoutHook(nil), uc.hooks...)
	uc.hooksMu.RUnlock()

	for _, hook := range hooks {
		hook(ctx, session.Email)
	}
	logger.Info("Session closed for %s", session.Email)
}

func (uc *SessionUseCase) fetchProfile(ctx context.Context, email string) (*entity.User, error) {
	key := strings.ToLower(strings.TrimSpace(email))

	// The shared lookup outlives any one caller; each caller waits on its own ctx.
	ch := uc.group.DoChan(key, func() (interface{}, error) {
		lookupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), uc.lookupTimeout)
		defer cancel()

		user, err := uc.userRepo.GetProfile(lookupCtx, email)
		if err != nil {
			return nil, err
		}
		if err := uc.roles.Set(lookupCtx, email, user.Role, uc.ttl); err != nil {
			logger.Warn("Role cache write failed for %s: %v", email, err)
		}
		return user, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		user := *res.Val.(*entity.User)
		return &user, nil
	}
}
