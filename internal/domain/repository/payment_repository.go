package repository

import (
	"context"

	"stacksphere/internal/domain/entity"
)

type PaymentRepository interface {
	CreateIntent(ctx context.Context, amount float64, email string) (*entity.PaymentIntent, error)
	Save(ctx context.Context, payment *entity.Payment) error
}
