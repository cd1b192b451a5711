package handler

import (
	"context"

	"github.com/labstack/echo/v4"

	"stacksphere/internal/usecase"
	"stacksphere/pkg/response"
)

type ModerationHandler struct {
	moderationUseCase *usecase.ModerationUseCase
}

func NewModerationHandler(moderationUseCase *usecase.ModerationUseCase) *ModerationHandler {
	return &ModerationHandler{
		moderationUseCase: moderationUseCase,
	}
}

type boardAction func(ctx context.Context, moderator, id string) (*usecase.Board, error)

// Board always reloads from the backend.
func (h *ModerationHandler) Board(c echo.Context) error {
	session, err := currentSession(c)
	if err != nil {
		return response.Error(c, err)
	}

	board, err := h.moderationUseCase.LoadBoard(c.Request().Context(), session.Email)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, board)
}

func (h *ModerationHandler) Accept(c echo.Context) error {
	return h.run(c, "product accepted", h.moderationUseCase.Accept)
}

func (h *ModerationHandler) Reject(c echo.Context) error {
	return h.run(c, "product rejected", h.moderationUseCase.Reject)
}

func (h *ModerationHandler) Feature(c echo.Context) error {
	return h.run(c, "product featured", h.moderationUseCase.Feature)
}

func (h *ModerationHandler) DeleteReported(c echo.Context) error {
	return h.run(c, "reported product deleted", h.moderationUseCase.DeleteReported)
}

func (h *ModerationHandler) DismissReport(c echo.Context) error {
	return h.run(c, "report dismissed", h.moderationUseCase.DismissReport)
}

func (h *ModerationHandler) run(c echo.Context, name string, action boardAction) error {
	session, err := currentSession(c)
	if err != nil {
		return response.Error(c, err)
	}

	id := c.Param("id")
	board, err := action(c.Request().Context(), session.Email, id)
	if err != nil {
		return response.Error(c, err)
	}
	audit(c, session, name, id)
	return response.Success(c, board)
}
