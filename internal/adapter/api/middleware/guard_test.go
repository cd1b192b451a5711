package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"stacksphere/internal/domain/entity"
)

func TestDecide(t *testing.T) {
	authed := func(role entity.Role) GuardState {
		return GuardState{Authenticated: true, Role: role}
	}

	tests := []struct {
		name  string
		level AccessLevel
		state GuardState
		want  Decision
	}{
		{"user route anonymous", LevelUser, GuardState{}, DecisionRedirectLogin},
		{"user route signed in", LevelUser, authed(entity.RoleUser), DecisionAllow},
		{"user route admin", LevelUser, authed(entity.RoleAdmin), DecisionAllow},
		{"moderator route moderator", LevelModerator, authed(entity.RoleModerator), DecisionAllow},
		{"moderator route admin", LevelModerator, authed(entity.RoleAdmin), DecisionUseAdminDashboard},
		{"moderator route user", LevelModerator, authed(entity.RoleUser), DecisionDenied},
		{"moderator route anonymous", LevelModerator, GuardState{}, DecisionRedirectLogin},
		{"admin route admin", LevelAdmin, authed(entity.RoleAdmin), DecisionAllow},
		{"admin route moderator", LevelAdmin, authed(entity.RoleModerator), DecisionDenied},
		{"admin route user", LevelAdmin, authed(entity.RoleUser), DecisionDenied},
		{"admin route anonymous", LevelAdmin, GuardState{}, DecisionRedirectLogin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.level, tt.state))
		})
	}
}

func TestDecide_LoadingNeverRedirects(t *testing.T) {
	levels := []AccessLevel{LevelUser, LevelModerator, LevelAdmin}
	roles := []entity.Role{"", entity.RoleUser, entity.RoleModerator, entity.RoleAdmin}

	for _, level := range levels {
		for _, authenticated := range []bool{false, true} {
			for _, role := range roles {
				state := GuardState{Authenticated: authenticated, Loading: true, Role: role}
				assert.Equal(t, DecisionLoading, Decide(level, state), "%s %+v", level, state)
			}
		}
	}
}

func TestDecide_OnlyExactRoleAllowed(t *testing.T) {
	roles := []entity.Role{entity.RoleUser, entity.RoleModerator, entity.RoleAdmin}

	for _, role := range roles {
		state := GuardState{Authenticated: true, Role: role}
		assert.Equal(t, role == entity.RoleModerator, Decide(LevelModerator, state) == DecisionAllow)
		assert.Equal(t, role == entity.RoleAdmin, Decide(LevelAdmin, state) == DecisionAllow)
	}
}
