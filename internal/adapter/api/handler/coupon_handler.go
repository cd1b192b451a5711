package handler

import (
	"github.com/labstack/echo/v4"

	"stacksphere/internal/usecase"
	"stacksphere/pkg/errors"
	"stacksphere/pkg/response"
)

type CouponHandler struct {
	couponUseCase *usecase.CouponUseCase
}

func NewCouponHandler(couponUseCase *usecase.CouponUseCase) *CouponHandler {
	return &CouponHandler{
		couponUseCase: couponUseCase,
	}
}

type validateCouponRequest struct {
	Code   string  `json:"code" validate:"required"`
	Amount float64 `json:"amount" validate:"gt=0"`
}

func (h *CouponHandler) ActiveCoupons(c echo.Context) error {
	coupons, err := h.couponUseCase.ActiveCoupons(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, coupons)
}

func (h *CouponHandler) ValidateCoupon(c echo.Context) error {
	var req validateCouponRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	discount, err := h.couponUseCase.ValidateCoupon(c.Request().Context(), req.Code, req.Amount)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, discount)
}
