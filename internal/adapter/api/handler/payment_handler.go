package handler

import (
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"stacksphere/internal/domain/entity"
	"stacksphere/internal/usecase"
	"stacksphere/pkg/errors"
	"stacksphere/pkg/response"
)

type PaymentHandler struct {
	paymentUseCase *usecase.PaymentUseCase
	sessionUseCase *usecase.SessionUseCase
}

func NewPaymentHandler(paymentUseCase *usecase.PaymentUseCase, sessionUseCase *usecase.SessionUseCase) *PaymentHandler {
	return &PaymentHandler{
		paymentUseCase: paymentUseCase,
		sessionUseCase: sessionUseCase,
	}
}

type checkoutRequest struct {
	Amount          float64 `json:"amount" validate:"gt=0"`
	PaymentMethodID string  `json:"paymentMethodId" validate:"required"`
	CouponCode      string  `json:"couponCode" validate:"max=20"`
}

func (h *PaymentHandler) Checkout(c echo.Context) error {
	session, err := currentSession(c)
	if err != nil {
		return response.Error(c, err)
	}

	var req checkoutRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	ctx := c.Request().Context()
	payment, err := h.paymentUseCase.Checkout(ctx, session, usecase.CheckoutInput{
		Amount:          req.Amount,
		PaymentMethodID: req.PaymentMethodID,
		CouponCode:      req.CouponCode,
	}, func(*entity.Payment) {
		// Membership changed; the next guard check re-reads the profile.
		h.sessionUseCase.Invalidate(ctx, session.Email)
	})
	if err != nil {
		return response.Error(c, paymentFailure(err))
	}

	return response.Created(c, payment)
}

// paymentFailure maps a checkout error to the response envelope. The kind
// is exposed so the client can tell a charged-but-unrecorded payment apart.
func paymentFailure(err error) error {
	var perr *usecase.PaymentError
	if !stderrors.As(err, &perr) {
		return err
	}

	status := http.StatusPaymentRequired
	switch perr.Kind {
	case usecase.KindCoupon:
		status = http.StatusBadRequest
	case usecase.KindIntent:
		status = http.StatusBadGateway
	case usecase.KindPersist:
		status = http.StatusInternalServerError
	}

	details := map[string]string{"kind": string(perr.Kind)}
	if perr.TransactionID != "" {
		details["transactionId"] = perr.TransactionID
	}

	code := "PAYMENT_" + strings.ToUpper(string(perr.Kind))
	return errors.New(code, perr.Message, status, err).WithDetails(details)
}
