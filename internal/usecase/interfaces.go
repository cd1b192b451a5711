package usecase

import (
	"context"
	"time"

	"stacksphere/internal/domain/entity"
)

// SessionVerifier turns an identity-provider ID token into a session.
type SessionVerifier interface {
	VerifySession(ctx context.Context, idToken string) (*entity.Session, error)
}

// RoleCache holds resolved roles keyed by email.
type RoleCache interface {
	Get(ctx context.Context, email string) (entity.Role, bool, error)
	Set(ctx context.Context, email string, role entity.Role, ttl time.Duration) error
	Delete(ctx context.Context, email string) error
}

// Clock is injected where display values depend on the current time.
type Clock func() time.Time
