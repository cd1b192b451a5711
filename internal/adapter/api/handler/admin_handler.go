package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"stacksphere/internal/domain/entity"
	"stacksphere/internal/usecase"
	"stacksphere/pkg/errors"
	"stacksphere/pkg/response"
)

type AdminHandler struct {
	adminUseCase *usecase.AdminUseCase
}

func NewAdminHandler(adminUseCase *usecase.AdminUseCase) *AdminHandler {
	return &AdminHandler{
		adminUseCase: adminUseCase,
	}
}

type changeRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user moderator admin"`
}

type couponRequest struct {
	Code           string    `json:"code" validate:"required,couponcode"`
	Description    string    `json:"description" validate:"max=200"`
	DiscountAmount float64   `json:"discountAmount" validate:"gt=0"`
	ExpiryDate     time.Time `json:"expiryDate" validate:"required,future"`
	MaxUses        int       `json:"maxUses" validate:"min=1"`
	MinOrderAmount float64   `json:"minOrderAmount" validate:"gte=0"`
	IsActive       *bool     `json:"isActive"`
}

func (r couponRequest) coupon() *entity.Coupon {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return &entity.Coupon{
		Code:           r.Code,
		Description:    r.Description,
		DiscountAmount: r.DiscountAmount,
		ExpiryDate:     r.ExpiryDate,
		MaxUses:        r.MaxUses,
		MinOrderAmount: r.MinOrderAmount,
		IsActive:       active,
	}
}

func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.adminUseCase.ListUsers(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, users)
}

func (h *AdminHandler) ChangeRole(c echo.Context) error {
	session, err := currentSession(c)
	if err != nil {
		return response.Error(c, err)
	}

	var req changeRoleRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	user, err := h.adminUseCase.ChangeRole(c.Request().Context(), session, c.Param("email"), entity.Role(req.Role))
	if err != nil {
		return response.Error(c, err)
	}
	audit(c, session, "role changed to "+req.Role, user.Email)
	return response.Success(c, user)
}

func (h *AdminHandler) DeleteUser(c echo.Context) error {
	session, err := currentSession(c)
	if err != nil {
		return response.Error(c, err)
	}

	if err := h.adminUseCase.DeleteUser(c.Request().Context(), session, c.Param("email")); err != nil {
		return response.Error(c, err)
	}
	audit(c, session, "user deleted", c.Param("email"))
	return response.Success(c, map[string]string{"message": "User deleted"})
}

func (h *AdminHandler) ListCoupons(c echo.Context) error {
	coupons, err := h.adminUseCase.ListCoupons(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, coupons)
}

func (h *AdminHandler) CreateCoupon(c echo.Context) error {
	var req couponRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	coupon, err := h.adminUseCase.CreateCoupon(c.Request().Context(), req.coupon())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, coupon)
}

func (h *AdminHandler) UpdateCoupon(c echo.Context) error {
	var req couponRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	coupon, err := h.adminUseCase.UpdateCoupon(c.Request().Context(), c.Param("code"), req.coupon())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, coupon)
}

func (h *AdminHandler) DeleteCoupon(c echo.Context) error {
	if err := h.adminUseCase.DeleteCoupon(c.Request().Context(), c.Param("code")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"message": "Coupon deleted"})
}

func (h *AdminHandler) Statistics(c echo.Context) error {
	stats, err := h.adminUseCase.Statistics(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, stats)
}
