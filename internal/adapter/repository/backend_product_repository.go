package repository

import (
	"context"
	"net/url"
	"strconv"

	"stacksphere/internal/domain/entity"
	"stacksphere/internal/domain/repository"
)

type backendProductRepository struct {
	client *BackendClient
}

func NewBackendProductRepository(client *BackendClient) repository.ProductRepository {
	return &backendProductRepository{
		client: client,
	}
}

type productPage struct {
	Products []*entity.Product `json:"products"`
	Total    int64             `json:"total"`
}

type createProductResponse struct {
	entity.Product
	UpgradeRequired bool   `json:"upgradeRequired"`
	Message         string `json:"message"`
}

func (r *backendProductRepository) List(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, int64, error) {
	query := url.Values{}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}
	if filter.Status != "" {
		query.Set("status", string(filter.Status))
	}
	if filter.Featured != nil {
		query.Set("featured", strconv.FormatBool(*filter.Featured))
	}
	if filter.Sort != "" {
		query.Set("sort", filter.Sort)
	}
	if filter.Limit > 0 {
		query.Set("limit", strconv.Itoa(filter.Limit))
		query.Set("offset", strconv.Itoa(filter.Offset))
	}

	var page productPage
	if err := r.client.get(ctx, "/products", query, &page); err != nil {
		return nil, 0, err
	}
	return page.Products, page.Total, nil
}

func (r *backendProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	var product entity.Product
	if err := r.client.get(ctx, "/products/"+escape(id), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *backendProductRepository) ListByOwner(ctx context.Context, email string) ([]*entity.Product, error) {
	var products []*entity.Product
	if err := r.client.get(ctx, "/products/owner/"+escape(email), nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *backendProductRepository) CountByOwner(ctx context.Context, email string) (int, error) {
	var out struct {
		Count int `json:"count"`
	}
	if err := r.client.get(ctx, "/products/count/"+escape(email), nil, &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}

func (r *backendProductRepository) Create(ctx context.Context, product *entity.Product) (*repository.CreateResult, error) {
	var out createProductResponse
	if err := r.client.post(ctx, "/products", product, &out); err != nil {
		return nil, err
	}
	if out.UpgradeRequired {
		return &repository.CreateResult{UpgradeRequired: true}, nil
	}
	created := out.Product
	if created.ID == "" {
		created = *product
	}
	return &repository.CreateResult{Product: &created}, nil
}

func (r *backendProductRepository) Update(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	var out entity.Product
	if err := r.client.put(ctx, "/products/"+escape(product.ID), product, &out); err != nil {
		return nil, err
	}
	if out.ID == "" {
		out = *product
	}
	return &out, nil
}

func (r *backendProductRepository) Delete(ctx context.Context, id string) error {
	return r.client.delete(ctx, "/products/"+escape(id))
}

func (r *backendProductRepository) Upvote(ctx context.Context, id, email string) (*entity.Product, error) {
	var out entity.Product
	body := map[string]string{"email": email}
	if err := r.client.post(ctx, "/products/"+escape(id)+"/upvote", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *backendProductRepository) Report(ctx context.Context, id, email, reason string) error {
	body := map[string]string{"email": email, "reason": reason}
	return r.client.post(ctx, "/products/"+escape(id)+"/report", body, nil)
}

func (r *backendProductRepository) ListPending(ctx context.Context) ([]*entity.Product, error) {
	var products []*entity.Product
	if err := r.client.get(ctx, "/products/pending", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *backendProductRepository) ListReported(ctx context.Context) ([]*entity.Product, error) {
	var products []*entity.Product
	if err := r.client.get(ctx, "/products/reported", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *backendProductRepository) UpdateStatus(ctx context.Context, id string, status entity.ProductStatus) error {
	body := map[string]string{"status": string(status)}
	return r.client.patch(ctx, "/products/"+escape(id)+"/status", body, nil)
}

func (r *backendProductRepository) MarkFeatured(ctx context.Context, id string) error {
	body := map[string]bool{"featured": true}
	return r.client.patch(ctx, "/products/"+escape(id)+"/featured", body, nil)
}

func (r *backendProductRepository) DismissReport(ctx context.Context, id string) error {
	return r.client.patch(ctx, "/products/"+escape(id)+"/report/dismiss", nil, nil)
}
