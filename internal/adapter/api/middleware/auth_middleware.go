package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"stacksphere/internal/domain/entity"
	"stacksphere/internal/usecase"
	"stacksphere/pkg/errors"
	"stacksphere/pkg/logger"
)

const (
	sessionContextKey = "session"
	roleContextKey    = "role"
)

type AuthMiddleware struct {
	verifier usecase.SessionVerifier
}

func NewAuthMiddleware(verifier usecase.SessionVerifier) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
	}
}

// Authenticate requires a valid Firebase ID token and attaches the session
// to both the echo context and the request context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		idToken, err := bearerToken(c)
		if err != nil {
			return err
		}

		session, err := m.verifier.VerifySession(c.Request().Context(), idToken)
		if err != nil {
			logger.Debug("Rejected ID token from %s: %v", c.RealIP(), err)
			return loginRequired("Invalid or expired token")
		}

		attachSession(c, session)
		return next(c)
	}
}

// Optional attaches a session when a valid token is present and lets the
// request through either way.
func (m *AuthMiddleware) Optional(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if c.Request().Header.Get(echo.HeaderAuthorization) == "" {
			return next(c)
		}

		idToken, err := bearerToken(c)
		if err != nil {
			return next(c)
		}

		if session, err := m.verifier.VerifySession(c.Request().Context(), idToken); err == nil {
			attachSession(c, session)
		}
		return next(c)
	}
}

func bearerToken(c echo.Context) (string, error) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return "", loginRequired("Authorization header is required")
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
		return "", loginRequired("Invalid authorization format")
	}
	return strings.TrimSpace(parts[1]), nil
}

func attachSession(c echo.Context, session *entity.Session) {
	c.Set(sessionContextKey, session)
	req := c.Request()
	c.SetRequest(req.WithContext(entity.WithSession(req.Context(), session)))
}

func loginRequired(message string) error {
	return errors.Unauthorized(message, nil).WithDetails(map[string]string{"redirect": LoginPath})
}
