package repository

import (
	"context"
	"net/url"

	"stacksphere/internal/domain/entity"
	"stacksphere/internal/domain/repository"
)

type backendReviewRepository struct {
	client *BackendClient
}

func NewBackendReviewRepository(client *BackendClient) repository.ReviewRepository {
	return &backendReviewRepository{
		client: client,
	}
}

func (r *backendReviewRepository) Create(ctx context.Context, review *entity.Review) (*entity.Review, error) {
	var out entity.Review
	if err := r.client.post(ctx, "/reviews", review, &out); err != nil {
		return nil, err
	}
	if out.ProductID == "" {
		out = *review
	}
	return &out, nil
}

func (r *backendReviewRepository) ListByProduct(ctx context.Context, productID string) ([]*entity.Review, error) {
	var reviews []*entity.Review
	query := url.Values{"productId": []string{productID}}
	if err := r.client.get(ctx, "/reviews", query, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}
