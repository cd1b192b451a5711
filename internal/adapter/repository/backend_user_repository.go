package repository

import (
	"context"

	"stacksphere/internal/domain/entity"
	"stacksphere/internal/domain/repository"
)

type backendUserRepository struct {
	client *BackendClient
}

func NewBackendUserRepository(client *BackendClient) repository.UserRepository {
	return &backendUserRepository{
		client: client,
	}
}

func (r *backendUserRepository) GetProfile(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	if err := r.client.get(ctx, "/user-profile/"+escape(email), nil, &user); err != nil {
		return nil, err
	}
	user.Role = entity.ParseRole(string(user.Role))
	if user.Membership.Status == "" {
		user.Membership.Status = entity.MembershipNone
	}
	return &user, nil
}

func (r *backendUserRepository) List(ctx context.Context) ([]*entity.User, error) {
	var users []*entity.User
	if err := r.client.get(ctx, "/admin/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *backendUserRepository) UpdateRole(ctx context.Context, email string, role entity.Role) (*entity.User, error) {
	var user entity.User
	body := map[string]string{"role": string(role)}
	if err := r.client.patch(ctx, "/admin/users/"+escape(email)+"/role", body, &user); err != nil {
		return nil, err
	}
	if user.Email == "" {
		user.Email = email
		user.Role = role
	}
	return &user, nil
}

func (r *backendUserRepository) Delete(ctx context.Context, email string) error {
	return r.client.delete(ctx, "/admin/users/"+escape(email))
}
