package repository

import (
	"context"

	"stacksphere/internal/domain/entity"
)

type StatisticsRepository interface {
	Get(ctx context.Context) (*entity.Statistics, error)
}
