package repository

import (
	"context"

	"stacksphere/internal/domain/entity"
	"stacksphere/internal/domain/repository"
)

type backendPaymentRepository struct {
	client *BackendClient
}

// NewBackendPaymentRepository expects the client for the payment host,
// which may differ from the main backend host.
func NewBackendPaymentRepository(client *BackendClient) repository.PaymentRepository {
	return &backendPaymentRepository{
		client: client,
	}
}

func (r *backendPaymentRepository) CreateIntent(ctx context.Context, amount float64, email string) (*entity.PaymentIntent, error) {
	var out entity.PaymentIntent
	body := map[string]interface{}{"price": amount, "email": email}
	if err := r.client.post(ctx, "/create-payment-intent", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *backendPaymentRepository) Save(ctx context.Context, payment *entity.Payment) error {
	return r.client.post(ctx, "/payments", payment, nil)
}
