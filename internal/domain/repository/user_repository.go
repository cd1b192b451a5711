package repository

import (
	"context"

	"stacksphere/internal/domain/entity"
)

type UserRepository interface {
	GetProfile(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
	UpdateRole(ctx context.Context, email string, role entity.Role) (*entity.User, error)
	Delete(ctx context.Context, email string) error
}
