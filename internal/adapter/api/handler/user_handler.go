package handler

import (
	"github.com/labstack/echo/v4"

	"stacksphere/internal/usecase"
	"stacksphere/pkg/response"
)

type UserHandler struct {
	sessionUseCase *usecase.SessionUseCase
	productUseCase *usecase.ProductUseCase
}

func NewUserHandler(sessionUseCase *usecase.SessionUseCase, productUseCase *usecase.ProductUseCase) *UserHandler {
	return &UserHandler{
		sessionUseCase: sessionUseCase,
		productUseCase: productUseCase,
	}
}

func (h *UserHandler) GetProfile(c echo.Context) error {
	session, err := currentSession(c)
	if err != nil {
		return response.Error(c, err)
	}

	user, err := h.sessionUseCase.Profile(c.Request().Context(), session.Email)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, user)
}

// GetQuota tells the client whether the add-product form should be shown.
func (h *UserHandler) GetQuota(c echo.Context) error {
	session, err := currentSession(c)
	if err != nil {
		return response.Error(c, err)
	}

	quota, err := h.productUseCase.QuotaStatus(c.Request().Context(), session)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, quota)
}
