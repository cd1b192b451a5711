package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"

	"stacksphere/pkg/logger"
)

// StripePaymentService confirms payment intents through the Stripe API.
type StripePaymentService struct {
	api *client.API
}

func NewStripePaymentService(secretKey string) *StripePaymentService {
	return &StripePaymentService{
		api: client.New(secretKey, nil),
	}
}

func (s *StripePaymentService) ConfirmCardPayment(ctx context.Context, clientSecret, paymentMethodID string) (*CardConfirmation, error) {
	intentID, err := IntentIDFromClientSecret(clientSecret)
	if err != nil {
		return nil, err
	}

	params := &stripe.PaymentIntentConfirmParams{
		PaymentMethod: stripe.String(paymentMethodID),
	}
	params.Context = ctx

	intent, err := s.api.PaymentIntents.Confirm(intentID, params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) {
			logger.Warn("Stripe declined intent %s: code=%s decline=%s", intentID, stripeErr.Code, stripeErr.DeclineCode)
			return nil, &CardError{
				Code:        string(stripeErr.Code),
				DeclineCode: string(stripeErr.DeclineCode),
				Message:     stripeErr.Msg,
			}
		}
		return nil, fmt.Errorf("failed to confirm payment intent: %w", err)
	}

	if intent.Status != stripe.PaymentIntentStatusSucceeded {
		return nil, &CardError{
			Code:    "payment_incomplete",
			Message: fmt.Sprintf("Payment is %s", intent.Status),
		}
	}

	logger.Info("Stripe payment intent %s succeeded", intent.ID)
	return &CardConfirmation{
		TransactionID: intent.ID,
		Status:        string(intent.Status),
		Amount:        intent.Amount,
	}, nil
}
