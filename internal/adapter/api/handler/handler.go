package handler

import (
	"github.com/labstack/echo/v4"

	"stacksphere/internal/adapter/api/middleware"
	"stacksphere/internal/domain/entity"
	"stacksphere/internal/usecase"
	"stacksphere/pkg/errors"
	"stacksphere/pkg/logger"
)

var (
	authHandler       *AuthHandler
	userHandler       *UserHandler
	productHandler    *ProductHandler
	moderationHandler *ModerationHandler
	reviewHandler     *ReviewHandler
	adminHandler      *AdminHandler
	couponHandler     *CouponHandler
	paymentHandler    *PaymentHandler
)

func Setup(
	sessionUseCase *usecase.SessionUseCase,
	productUseCase *usecase.ProductUseCase,
	moderationUseCase *usecase.ModerationUseCase,
	reviewUseCase *usecase.ReviewUseCase,
	adminUseCase *usecase.AdminUseCase,
	couponUseCase *usecase.CouponUseCase,
	paymentUseCase *usecase.PaymentUseCase,
	revoker SessionRevoker,
) {
	authHandler = NewAuthHandler(sessionUseCase, revoker)
	userHandler = NewUserHandler(sessionUseCase, productUseCase)
	productHandler = NewProductHandler(productUseCase)
	moderationHandler = NewModerationHandler(moderationUseCase)
	reviewHandler = NewReviewHandler(reviewUseCase)
	adminHandler = NewAdminHandler(adminUseCase)
	couponHandler = NewCouponHandler(couponUseCase)
	paymentHandler = NewPaymentHandler(paymentUseCase, sessionUseCase)
}

func GetAuthHandler() *AuthHandler {
	return authHandler
}

func GetUserHandler() *UserHandler {
	return userHandler
}

func GetProductHandler() *ProductHandler {
	return productHandler
}

func GetModerationHandler() *ModerationHandler {
	return moderationHandler
}

func GetReviewHandler() *ReviewHandler {
	return reviewHandler
}

func GetAdminHandler() *AdminHandler {
	return adminHandler
}

func GetCouponHandler() *CouponHandler {
	return couponHandler
}

func GetPaymentHandler() *PaymentHandler {
	return paymentHandler
}

// currentSession returns the caller's session or a 401 when the route was
// mounted without the auth middleware.
func currentSession(c echo.Context) (*entity.Session, error) {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		return nil, errors.Unauthorized("User not authenticated", nil)
	}
	return session, nil
}

// audit records a privileged action with the acting session and guard role.
func audit(c echo.Context, session *entity.Session, action, target string) {
	role, _ := middleware.RoleFromContext(c)
	logger.With("actor", session.Email, "role", string(role)).Infow(action, "target", target)
}
