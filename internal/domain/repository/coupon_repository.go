package repository

import (
	"context"

	"stacksphere/internal/domain/entity"
)

type CouponRepository interface {
	List(ctx context.Context) ([]entity.Coupon, error)
	ListPublic(ctx context.Context) ([]entity.Coupon, error)
	Create(ctx context.Context, coupon *entity.Coupon) (*entity.Coupon, error)
	Update(ctx context.Context, code string, coupon *entity.Coupon) (*entity.Coupon, error)
	Delete(ctx context.Context, code string) error
	Validate(ctx context.Context, code string, amount float64) (*entity.CouponDiscount, error)
}
