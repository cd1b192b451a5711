package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stacksphere/internal/domain/entity"
	"stacksphere/internal/infrastructure/ratelimit"
	"stacksphere/pkg/response"
)

type fakeVerifier struct {
	sessions map[string]*entity.Session
}

func (f *fakeVerifier) VerifySession(_ context.Context, idToken string) (*entity.Session, error) {
	s, ok := f.sessions[idToken]
	if !ok {
		return nil, fmt.Errorf("token rejected")
	}
	c := *s
	c.Token = idToken
	return &c, nil
}

type fakeRoles struct {
	roles map[string]entity.Role
	delay time.Duration
}

func (f *fakeRoles) ResolveRole(ctx context.Context, email string) (entity.Role, error) {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.roles[email], nil
}

func newTestServer(roles *fakeRoles) *echo.Echo {
	verifier := &fakeVerifier{sessions: map[string]*entity.Session{
		"user-token":  {UID: "1", Email: "user@x.io"},
		"mod-token":   {UID: "2", Email: "mod@x.io"},
		"admin-token": {UID: "3", Email: "admin@x.io"},
	}}
	if roles == nil {
		roles = &fakeRoles{}
	}
	if roles.roles == nil {
		roles.roles = map[string]entity.Role{
			"user@x.io":  entity.RoleUser,
			"mod@x.io":   entity.RoleModerator,
			"admin@x.io": entity.RoleAdmin,
		}
	}

	auth := NewAuthMiddleware(verifier)
	guard := NewRoleMiddleware(roles, 20*time.Millisecond)

	e := echo.New()
	e.HTTPErrorHandler = response.HTTPErrorHandler
	ok := func(c echo.Context) error {
		session, _ := SessionFromContext(c)
		ctxSession, _ := entity.SessionFrom(c.Request().Context())
		if session != ctxSession {
			return c.String(http.StatusInternalServerError, "session mismatch")
		}
		return c.String(http.StatusOK, session.Email)
	}

	e.GET("/user", ok, auth.Authenticate, guard.UserOnly)
	e.GET("/mod", ok, auth.Authenticate, guard.ModeratorOnly)
	e.GET("/admin", ok, auth.Authenticate, guard.AdminOnly)
	e.GET("/mod/role", func(c echo.Context) error {
		role, ok := RoleFromContext(c)
		if !ok {
			return c.String(http.StatusInternalServerError, "no role")
		}
		return c.String(http.StatusOK, string(role))
	}, auth.Authenticate, guard.ModeratorOnly)
	e.GET("/open", func(c echo.Context) error {
		if s, ok := SessionFromContext(c); ok {
			return c.String(http.StatusOK, s.Email)
		}
		return c.String(http.StatusOK, "anonymous")
	}, auth.Optional)
	return e
}

type envelope struct {
	Success bool `json:"success"`
	Error   struct {
		Code    string            `json:"code"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func call(t *testing.T, e *echo.Echo, path, token string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var env envelope
	if rec.Code >= 400 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func TestGuards_HTTP(t *testing.T) {
	e := newTestServer(nil)

	tests := []struct {
		path     string
		token    string
		status   int
		code     string
		redirect string
	}{
		{path: "/user", status: http.StatusUnauthorized, code: "UNAUTHORIZED", redirect: "/login"},
		{path: "/user", token: "bogus", status: http.StatusUnauthorized, code: "UNAUTHORIZED", redirect: "/login"},
		{path: "/user", token: "user-token", status: http.StatusOK},
		{path: "/mod", token: "user-token", status: http.StatusForbidden, code: "ACCESS_DENIED"},
		{path: "/mod", token: "mod-token", status: http.StatusOK},
		{path: "/mod", token: "admin-token", status: http.StatusForbidden, code: "USE_ADMIN_DASHBOARD", redirect: "/admin"},
		{path: "/admin", token: "mod-token", status: http.StatusForbidden, code: "ACCESS_DENIED"},
		{path: "/admin", token: "admin-token", status: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.path+" "+tt.token, func(t *testing.T) {
			rec, env := call(t, e, tt.path, tt.token)
			assert.Equal(t, tt.status, rec.Code)
			if tt.code != "" {
				assert.Equal(t, tt.code, env.Error.Code)
			}
			if tt.redirect != "" {
				assert.Equal(t, tt.redirect, env.Error.Details["redirect"])
			}
		})
	}
}

func TestGuards_SlowRoleLookupIsLoading(t *testing.T) {
	e := newTestServer(&fakeRoles{delay: time.Second})

	rec, env := call(t, e, "/mod", "mod-token")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "ROLE_LOADING", env.Error.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
}

func TestGuards_ExposeResolvedRole(t *testing.T) {
	e := newTestServer(nil)

	rec, _ := call(t, e, "/mod/role", "mod-token")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, string(entity.RoleModerator), rec.Body.String())

	unguarded := e.NewContext(httptest.NewRequest(http.MethodGet, "/open", nil), httptest.NewRecorder())
	_, ok := RoleFromContext(unguarded)
	assert.False(t, ok)
}

func TestOptionalAuth(t *testing.T) {
	e := newTestServer(nil)

	rec, _ := call(t, e, "/open", "")
	assert.Equal(t, "anonymous", rec.Body.String())

	rec, _ = call(t, e, "/open", "bogus")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "anonymous", rec.Body.String())

	rec, _ = call(t, e, "/open", "user-token")
	assert.Equal(t, "user@x.io", rec.Body.String())
}

func TestRateLimit(t *testing.T) {
	limiter := ratelimit.NewRateLimiter(ratelimit.Limit{PerMinute: 1, Burst: 2}, nil)

	e := echo.New()
	e.HTTPErrorHandler = response.HTTPErrorHandler
	e.POST("/checkout", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	}, RateLimit(limiter, "payment"))

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/checkout", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusNoContent, send().Code)
	assert.Equal(t, http.StatusNoContent, send().Code)

	rec := send()
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}
