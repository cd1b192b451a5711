package repository

import (
	"context"

	"stacksphere/internal/domain/entity"
)

type ProductFilter struct {
	Search   string
	Status   entity.ProductStatus
	Featured *bool
	Sort     string
	Limit    int
	Offset   int
}

// CreateResult carries the backend's answer to a submission. UpgradeRequired
// is set when the backend enforced the free-tier quota itself.
type CreateResult struct {
	Product         *entity.Product
	UpgradeRequired bool
}

type ProductRepository interface {
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, int64, error)
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	ListByOwner(ctx context.Context, email string) ([]*entity.Product, error)
	CountByOwner(ctx context.Context, email string) (int, error)
	Create(ctx context.Context, product *entity.Product) (*CreateResult, error)
	Update(ctx context.Context, product *entity.Product) (*entity.Product, error)
	Delete(ctx context.Context, id string) error
	Upvote(ctx context.Context, id, email string) (*entity.Product, error)
	Report(ctx context.Context, id, email, reason string) error

	ListPending(ctx context.Context) ([]*entity.Product, error)
	ListReported(ctx context.Context) ([]*entity.Product, error)
	UpdateStatus(ctx context.Context, id string, status entity.ProductStatus) error
	MarkFeatured(ctx context.Context, id string) error
	DismissReport(ctx context.Context, id string) error
}
