package usecase

import (
	"context"
	"regexp"
	"strings"
	"time"

	"stacksphere/internal/domain/entity"
	"stacksphere/internal/domain/repository"
	"stacksphere/pkg/errors"
	"stacksphere/pkg/logger"
)

var couponCodePattern = regexp.MustCompile(`^[A-Z0-9]{3,20}$`)

// CouponFormErrors maps a form field to its problem.
type CouponFormErrors map[string]string

// ValidateCouponForm checks a coupon before it is sent to the backend.
func ValidateCouponForm(c *entity.Coupon, now time.Time) CouponFormErrors {
	problems := CouponFormErrors{}

	if !couponCodePattern.MatchString(c.Code) {
		problems["code"] = "Code must be 3-20 uppercase letters or digits"
	}
	if c.DiscountAmount <= 0 {
		problems["discountAmount"] = "Discount must be greater than zero"
	}
	if !c.ExpiryDate.After(now) {
		problems["expiryDate"] = "Expiry date must be in the future"
	}
	if c.MaxUses < 1 {
		problems["maxUses"] = "Max uses must be at least 1"
	}
	if c.MinOrderAmount < 0 {
		problems["minOrderAmount"] = "Minimum order cannot be negative"
	}

	if len(problems) == 0 {
		return nil
	}
	return problems
}

type AdminUseCase struct {
	userRepo   repository.UserRepository
	couponRepo repository.CouponRepository
	statsRepo  repository.StatisticsRepository
	sessions   *SessionUseCase
	now        Clock
}

func NewAdminUseCase(
	userRepo repository.UserRepository,
	couponRepo repository.CouponRepository,
	statsRepo repository.StatisticsRepository,
	sessions *SessionUseCase,
) *AdminUseCase {
	return &AdminUseCase{
		userRepo:   userRepo,
		couponRepo: couponRepo,
		statsRepo:  statsRepo,
		sessions:   sessions,
		now:        time.Now,
	}
}

func (uc *AdminUseCase) ListUsers(ctx context.Context) ([]*entity.User, error) {
	return uc.userRepo.List(ctx)
}

// ChangeRole updates a user's role and drops their cached role so the next
// request sees the change.
func (uc *AdminUseCase) ChangeRole(ctx context.Context, admin *entity.Session, email string, role entity.Role) (*entity.User, error) {
	if !role.Valid() {
		return nil, errors.BadRequest("Unknown role", nil)
	}
	if strings.EqualFold(admin.Email, email) && role != entity.RoleAdmin {
		return nil, errors.BadRequest("You cannot remove your own admin role", nil)
	}

	user, err := uc.userRepo.UpdateRole(ctx, email, role)
	if err != nil {
		return nil, err
	}

	uc.sessions.Invalidate(ctx, email)
	logger.Info("Admin %s changed role of %s to %s", admin.Email, email, role)
	return user, nil
}

func (uc *AdminUseCase) DeleteUser(ctx context.Context, admin *entity.Session, email string) error {
	if strings.EqualFold(admin.Email, email) {
		return errors.BadRequest("You cannot delete your own account", nil)
	}

	if err := uc.userRepo.Delete(ctx, email); err != nil {
		return err
	}

	uc.sessions.Invalidate(ctx, email)
	logger.Info("Admin %s deleted user %s", admin.Email, email)
	return nil
}

// ListCoupons returns every coupon with its admin badge, including hidden ones.
func (uc *AdminUseCase) ListCoupons(ctx context.Context) ([]entity.CouponView, error) {
	coupons, err := uc.couponRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	views := make([]entity.CouponView, 0, len(coupons))
	for _, c := range coupons {
		views = append(views, entity.NewCouponView(c, now))
	}
	return views, nil
}

func (uc *AdminUseCase) CreateCoupon(ctx context.Context, coupon *entity.Coupon) (*entity.Coupon, error) {
	coupon.Code = strings.ToUpper(strings.TrimSpace(coupon.Code))
	if problems := ValidateCouponForm(coupon, uc.now()); problems != nil {
		return nil, errors.BadRequest("Invalid coupon", nil).WithDetails(problems)
	}
	return uc.couponRepo.Create(ctx, coupon)
}

func (uc *AdminUseCase) UpdateCoupon(ctx context.Context, code string, coupon *entity.Coupon) (*entity.Coupon, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	coupon.Code = strings.ToUpper(strings.TrimSpace(coupon.Code))
	if coupon.Code == "" {
		coupon.Code = code
	}
	if problems := ValidateCouponForm(coupon, uc.now()); problems != nil {
		return nil, errors.BadRequest("Invalid coupon", nil).WithDetails(problems)
	}
	return uc.couponRepo.Update(ctx, code, coupon)
}

func (uc *AdminUseCase) DeleteCoupon(ctx context.Context, code string) error {
	return uc.couponRepo.Delete(ctx, strings.ToUpper(strings.TrimSpace(code)))
}

func (uc *AdminUseCase) Statistics(ctx context.Context) (*entity.Statistics, error) {
	return uc.statsRepo.Get(ctx)
}
