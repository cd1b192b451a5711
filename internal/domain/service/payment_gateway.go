package service

import (
	"context"
	"fmt"
	"strings"
)

// DeclineCodeFraudulent is the card network decline code for suspected fraud.
const DeclineCodeFraudulent = "fraudulent"

// CardConfirmation is the outcome of a successful card confirmation.
type CardConfirmation struct {
	TransactionID string
	Status        string
	Amount        int64
}

// CardError is a card-level failure reported by the payment provider.
type CardError struct {
	Code        string
	DeclineCode string
	Message     string
}

func (e *CardError) Error() string {
	if e.DeclineCode != "" {
		return fmt.Sprintf("card error %s (%s): %s", e.Code, e.DeclineCode, e.Message)
	}
	return fmt.Sprintf("card error %s: %s", e.Code, e.Message)
}

func (e *CardError) Fraudulent() bool {
	return e.DeclineCode == DeclineCodeFraudulent
}

// PaymentGateway confirms a card payment for an intent created by the backend.
type PaymentGateway interface {
	ConfirmCardPayment(ctx context.Context, clientSecret, paymentMethodID string) (*CardConfirmation, error)
}

// IntentIDFromClientSecret extracts "pi_123" from "pi_123_secret_abc".
func IntentIDFromClientSecret(clientSecret string) (string, error) {
	idx := strings.Index(clientSecret, "_secret_")
	if idx <= 0 {
		return "", fmt.Errorf("malformed client secret")
	}
	return clientSecret[:idx], nil
}
