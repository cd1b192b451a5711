package repository

import (
	"context"

	"stacksphere/internal/domain/entity"
	"stacksphere/internal/domain/repository"
)

type backendCouponRepository struct {
	client *BackendClient
}

func NewBackendCouponRepository(client *BackendClient) repository.CouponRepository {
	return &backendCouponRepository{
		client: client,
	}
}

func (r *backendCouponRepository) List(ctx context.Context) ([]entity.Coupon, error) {
	var coupons []entity.Coupon
	if err := r.client.get(ctx, "/admin/coupons", nil, &coupons); err != nil {
		return nil, err
	}
	return coupons, nil
}

func (r *backendCouponRepository) ListPublic(ctx context.Context) ([]entity.Coupon, error) {
	var coupons []entity.Coupon
	if err := r.client.get(ctx, "/coupons", nil, &coupons); err != nil {
		return nil, err
	}
	return coupons, nil
}

func (r *backendCouponRepository) Create(ctx context.Context, coupon *entity.Coupon) (*entity.Coupon, error) {
	var out entity.Coupon
	if err := r.client.post(ctx, "/admin/coupons", coupon, &out); err != nil {
		return nil, err
	}
	if out.Code == "" {
		out = *coupon
	}
	return &out, nil
}

func (r *backendCouponRepository) Update(ctx context.Context, code string, coupon *entity.Coupon) (*entity.Coupon, error) {
	var out entity.Coupon
	if err := r.client.put(ctx, "/admin/coupons/"+escape(code), coupon, &out); err != nil {
		return nil, err
	}
	if out.Code == "" {
		out = *coupon
	}
	return &out, nil
}

func (r *backendCouponRepository) Delete(ctx context.Context, code string) error {
	return r.client.delete(ctx, "/admin/coupons/"+escape(code))
}

func (r *backendCouponRepository) Validate(ctx context.Context, code string, amount float64) (*entity.CouponDiscount, error) {
	var out entity.CouponDiscount
	body := map[string]interface{}{"code": code, "amount": amount}
	if err := r.client.post(ctx, "/coupons/validate", body, &out); err != nil {
		return nil, err
	}
	if out.Code == "" {
		out.Code = code
	}
	return &out, nil
}
