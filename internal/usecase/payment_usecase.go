package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"stacksphere/internal/domain/entity"
	"stacksphere/internal/domain/repository"
	"stacksphere/internal/domain/service"
	apperrors "stacksphere/pkg/errors"
	"stacksphere/pkg/logger"
)

// PaymentErrorKind says which checkout step failed.
type PaymentErrorKind string

const (
	KindCoupon   PaymentErrorKind = "coupon"
	KindIntent   PaymentErrorKind = "intent"
	KindDeclined PaymentErrorKind = "declined"
	KindFraud    PaymentErrorKind = "fraud"
	KindCard     PaymentErrorKind = "card"
	KindPersist  PaymentErrorKind = "persist"
)

const fraudMessage = "Your payment was flagged. Please contact your bank or try another card."

const declineCode = "card_declined"

// PaymentError is the single error type returned by Checkout. TransactionID
// is set only when the card was charged.
type PaymentError struct {
	Kind          PaymentErrorKind
	Message       string
	TransactionID string
	Err           error
}

func (e *PaymentError) Error() string {
	return fmt.Sprintf("payment %s: %s", e.Kind, e.Message)
}

func (e *PaymentError) Unwrap() error {
	return e.Err
}

// Charged reports whether money moved before the failure.
func (e *PaymentError) Charged() bool {
	return e.TransactionID != ""
}

type CheckoutInput struct {
	Amount          float64
	PaymentMethodID string
	CouponCode      string
}

// PaymentUseCase runs checkout: intent, card confirmation, then the payment
// record. There is no retry and no compensation when the last step fails.
type PaymentUseCase struct {
	paymentRepo repository.PaymentRepository
	couponRepo  repository.CouponRepository
	gateway     service.PaymentGateway
	now         Clock
}

func NewPaymentUseCase(
	paymentRepo repository.PaymentRepository,
	couponRepo repository.CouponRepository,
	gateway service.PaymentGateway,
) *PaymentUseCase {
	return &PaymentUseCase{
		paymentRepo: paymentRepo,
		couponRepo:  couponRepo,
		gateway:     gateway,
		now:         time.Now,
	}
}

// Checkout charges the session user. onSuccess, if non-nil, is called once
// after the payment record has been stored.
func (uc *PaymentUseCase) Checkout(ctx context.Context, session *entity.Session, input CheckoutInput, onSuccess func(*entity.Payment)) (*entity.Payment, error) {
	amount := input.Amount
	couponCode := strings.ToUpper(strings.TrimSpace(input.CouponCode))

	if couponCode != "" {
		discount, err := uc.couponRepo.Validate(ctx, couponCode, amount)
		if err != nil {
			return nil, &PaymentError{Kind: KindCoupon, Message: messageOf(err), Err: err}
		}
		if !discount.Valid {
			msg := discount.Message
			if msg == "" {
				msg = "Coupon is not valid for this order"
			}
			return nil, &PaymentError{Kind: KindCoupon, Message: msg}
		}
		amount = math.Max(amount-discount.DiscountAmount, 0)
	}

	if amount <= 0 {
		return nil, &PaymentError{Kind: KindIntent, Message: "Amount must be greater than zero"}
	}

	intent, err := uc.paymentRepo.CreateIntent(ctx, amount, session.Email)
	if err != nil {
		logger.LogPaymentError("", string(KindIntent), err)
		return nil, &PaymentError{Kind: KindIntent, Message: messageOf(err), Err: err}
	}

	confirmation, err := uc.gateway.ConfirmCardPayment(ctx, intent.ClientSecret, input.PaymentMethodID)
	if err != nil {
		perr := classifyCardError(err)
		logger.LogPaymentError("", string(perr.Kind), err)
		return nil, perr
	}

	payment := &entity.Payment{
		Email:         session.Email,
		Amount:        amount,
		TransactionID: confirmation.TransactionID,
		CouponCode:    couponCode,
		Status:        confirmation.Status,
		Date:          uc.now().UTC(),
	}

	if err := uc.paymentRepo.Save(ctx, payment); err != nil {
		// The card has been charged but no record exists.
		logger.LogPaymentError(payment.TransactionID, string(KindPersist), err)
		return nil, &PaymentError{
			Kind:          KindPersist,
			Message:       "Payment succeeded but could not be recorded. Please contact support with your transaction ID.",
			TransactionID: payment.TransactionID,
			Err:           err,
		}
	}

	logger.Info("Payment %s of %.2f recorded for %s", payment.TransactionID, payment.Amount, session.Email)
	if onSuccess != nil {
		onSuccess(payment)
	}
	return payment, nil
}

func classifyCardError(err error) *PaymentError {
	var cardErr *service.CardError
	if !errors.As(err, &cardErr) {
		return &PaymentError{Kind: KindCard, Message: err.Error(), Err: err}
	}

	switch {
	case cardErr.Fraudulent():
		return &PaymentError{Kind: KindFraud, Message: fraudMessage, Err: err}
	case cardErr.Code == declineCode:
		return &PaymentError{Kind: KindDeclined, Message: cardErr.Message, Err: err}
	default:
		return &PaymentError{Kind: KindCard, Message: cardErr.Message, Err: err}
	}
}

// messageOf prefers the backend's message over the wrapped error text.
func messageOf(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
