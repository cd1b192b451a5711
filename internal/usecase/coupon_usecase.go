package usecase

import (
	"context"
	"strings"
	"time"

	"stacksphere/internal/domain/entity"
	"stacksphere/internal/domain/repository"
	"stacksphere/pkg/errors"
)

type CouponUseCase struct {
	couponRepo repository.CouponRepository
	now        Clock
}

func NewCouponUseCase(couponRepo repository.CouponRepository) *CouponUseCase {
	return &CouponUseCase{
		couponRepo: couponRepo,
		now:        time.Now,
	}
}

// ActiveCoupons lists coupons shoppers may see, with their display values.
func (uc *CouponUseCase) ActiveCoupons(ctx context.Context) ([]entity.CouponView, error) {
	coupons, err := uc.couponRepo.ListPublic(ctx)
	if err != nil {
		return nil, err
	}
	return entity.VisibleCoupons(coupons, uc.now()), nil
}

// ValidateCoupon asks the backend for the discount on amount. The backend's
// answer is authoritative; an invalid coupon is returned as Valid=false.
func (uc *CouponUseCase) ValidateCoupon(ctx context.Context, code string, amount float64) (*entity.CouponDiscount, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, errors.BadRequest("Coupon code is required", nil)
	}
	if amount <= 0 {
		return nil, errors.BadRequest("Amount must be greater than zero", nil)
	}
	return uc.couponRepo.Validate(ctx, code, amount)
}
