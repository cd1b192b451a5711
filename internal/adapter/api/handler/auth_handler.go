package handler

import (
	"context"
	"strconv"

	"github.com/labstack/echo/v4"

	"stacksphere/internal/usecase"
	"stacksphere/pkg/errors"
	"stacksphere/pkg/logger"
	"stacksphere/pkg/response"
)

// SessionRevoker signs a user out of every device.
type SessionRevoker interface {
	RevokeSessions(ctx context.Context, uid string) error
}

type AuthHandler struct {
	sessionUseCase *usecase.SessionUseCase
	revoker        SessionRevoker
}

func NewAuthHandler(sessionUseCase *usecase.SessionUseCase, revoker SessionRevoker) *AuthHandler {
	return &AuthHandler{
		sessionUseCase: sessionUseCase,
		revoker:        revoker,
	}
}

// Logout drops everything cached for the session. With ?everywhere=true
// the user's refresh tokens are revoked as well.
func (h *AuthHandler) Logout(c echo.Context) error {
	session, err := currentSession(c)
	if err != nil {
		return response.Error(c, err)
	}

	ctx := c.Request().Context()
	h.sessionUseCase.Logout(ctx, session)

	everywhere, _ := strconv.ParseBool(c.QueryParam("everywhere"))
	if everywhere && h.revoker != nil {
		if err := h.revoker.RevokeSessions(ctx, session.UID); err != nil {
			logger.Error("Failed to revoke sessions for %s: %v", session.Email, err)
			return response.Error(c, errors.Internal("Failed to sign out of other devices", err))
		}
	}

	return response.Success(c, map[string]string{
		"message": "Successfully logged out",
	})
}

// RefreshRole re-reads the caller's role, e.g. right after an admin changed it.
func (h *AuthHandler) RefreshRole(c echo.Context) error {
	session, err := currentSession(c)
	if err != nil {
		return response.Error(c, err)
	}

	role, err := h.sessionUseCase.Refresh(c.Request().Context(), session.Email)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"email": session.Email,
		"role":  string(role),
	})
}
