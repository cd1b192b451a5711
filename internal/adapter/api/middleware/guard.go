package middleware

import (
	"github.com/labstack/echo/v4"

	"stacksphere/internal/domain/entity"
)

type AccessLevel int

const (
	LevelUser AccessLevel = iota
	LevelModerator
	LevelAdmin
)

func (l AccessLevel) String() string {
	switch l {
	case LevelModerator:
		return "moderator"
	case LevelAdmin:
		return "admin"
	default:
		return "user"
	}
}

type Decision int

const (
	DecisionLoading Decision = iota
	DecisionAllow
	DecisionRedirectLogin
	DecisionDenied
	DecisionUseAdminDashboard
)

// GuardState is what the guard knows about the caller at decision time.
type GuardState struct {
	Authenticated bool
	Loading       bool
	Role          entity.Role
}

const (
	LoginPath = "/login"
	AdminPath = "/admin"
)

// Decide is the route guard. Loading wins over everything else so a
// pending role lookup never produces a redirect. Moderator routes are
// exact-match: admins are sent to their own dashboard instead.
func Decide(level AccessLevel, state GuardState) Decision {
	if state.Loading {
		return DecisionLoading
	}
	if !state.Authenticated {
		return DecisionRedirectLogin
	}

	switch level {
	case LevelUser:
		return DecisionAllow
	case LevelModerator:
		switch state.Role {
		case entity.RoleModerator:
			return DecisionAllow
		case entity.RoleAdmin:
			return DecisionUseAdminDashboard
		default:
			return DecisionDenied
		}
	case LevelAdmin:
		if state.Role == entity.RoleAdmin {
			return DecisionAllow
		}
		return DecisionDenied
	default:
		return DecisionDenied
	}
}

// SessionFromContext returns the session set by the auth middleware.
func SessionFromContext(c echo.Context) (*entity.Session, bool) {
	s, ok := c.Get(sessionContextKey).(*entity.Session)
	return s, ok && s != nil
}

// RoleFromContext returns the role resolved by a role guard, if any.
func RoleFromContext(c echo.Context) (entity.Role, bool) {
	r, ok := c.Get(roleContextKey).(entity.Role)
	return r, ok
}
