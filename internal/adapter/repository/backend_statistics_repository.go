package repository

import (
	"context"

	"stacksphere/internal/domain/entity"
	"stacksphere/internal/domain/repository"
)

type backendStatisticsRepository struct {
	client *BackendClient
}

func NewBackendStatisticsRepository(client *BackendClient) repository.StatisticsRepository {
	return &backendStatisticsRepository{
		client: client,
	}
}

func (r *backendStatisticsRepository) Get(ctx context.Context) (*entity.Statistics, error) {
	var stats entity.Statistics
	if err := r.client.get(ctx, "/admin/statistics", nil, &stats); err != nil {
		return nil, err
	}
	if stats.Products.Total == 0 {
		stats.Products.Total = stats.Products.Accepted + stats.Products.Pending + stats.Products.Rejected
	}
	return &stats, nil
}
