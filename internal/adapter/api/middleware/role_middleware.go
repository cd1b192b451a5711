package middleware

import (
	"context"
	stderrors "errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"stacksphere/internal/domain/entity"
	"stacksphere/pkg/errors"
	"stacksphere/pkg/logger"
)

// DefaultRoleLookupTimeout bounds how long a guard waits for the role.
const DefaultRoleLookupTimeout = 3 * time.Second

// RoleResolver is satisfied by usecase.SessionUseCase.
type RoleResolver interface {
	ResolveRole(ctx context.Context, email string) (entity.Role, error)
}

// RoleMiddleware applies the route guards. It must run after
// AuthMiddleware.Authenticate or Optional.
type RoleMiddleware struct {
	roles   RoleResolver
	timeout time.Duration
}

func NewRoleMiddleware(roles RoleResolver, timeout time.Duration) *RoleMiddleware {
	if timeout <= 0 {
		timeout = DefaultRoleLookupTimeout
	}
	return &RoleMiddleware{
		roles:   roles,
		timeout: timeout,
	}
}

func (m *RoleMiddleware) UserOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return m.guard(LevelUser, next)
}

func (m *RoleMiddleware) ModeratorOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return m.guard(LevelModerator, next)
}

func (m *RoleMiddleware) AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return m.guard(LevelAdmin, next)
}

func (m *RoleMiddleware) guard(level AccessLevel, next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		state, err := m.state(c, level)
		if err != nil {
			return err
		}

		switch Decide(level, state) {
		case DecisionAllow:
			return next(c)
		case DecisionRedirectLogin:
			return loginRequired("Authentication required")
		case DecisionUseAdminDashboard:
			return errors.New("USE_ADMIN_DASHBOARD", "Admins manage content from the admin dashboard", http.StatusForbidden, nil).
				WithDetails(map[string]string{"redirect": AdminPath})
		case DecisionLoading:
			c.Response().Header().Set("Retry-After", strconv.Itoa(1))
			return errors.ServiceUnavailable("ROLE_LOADING", "Your role is still loading, please retry")
		default:
			session, _ := SessionFromContext(c)
			logger.Warn("Denied %s access to %s for %s (role %s)", level, c.Path(), session.Email, state.Role)
			return errors.New("ACCESS_DENIED", "You don't have access to this page", http.StatusForbidden, nil)
		}
	}
}

func (m *RoleMiddleware) state(c echo.Context, level AccessLevel) (GuardState, error) {
	session, ok := SessionFromContext(c)
	if !ok {
		return GuardState{}, nil
	}

	state := GuardState{Authenticated: true}
	if level == LevelUser {
		return state, nil
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), m.timeout)
	defer cancel()

	role, err := m.roles.ResolveRole(ctx, session.Email)
	if err != nil {
		if stderrors.Is(err, context.DeadlineExceeded) || stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
			state.Loading = true
			return state, nil
		}
		return GuardState{}, err
	}

	state.Role = role
	c.Set(roleContextKey, role)
	return state, nil
}
