package repository

import (
	"context"

	"stacksphere/internal/domain/entity"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) (*entity.Review, error)
	ListByProduct(ctx context.Context, productID string) ([]*entity.Review, error)
}
