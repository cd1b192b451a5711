package entity

import (
	"math"
	"time"
)

type CouponBadge string

const (
	BadgeActive       CouponBadge = "active"
	BadgeExpired      CouponBadge = "expired"
	BadgeLimitReached CouponBadge = "limit-reached"
	BadgeInactive     CouponBadge = "inactive"
)

type Coupon struct {
	Code           string    `json:"code"`
	Description    string    `json:"description"`
	DiscountAmount float64   `json:"discountAmount"`
	ExpiryDate     time.Time `json:"expiryDate"`
	MaxUses        int       `json:"maxUses"`
	UsedCount      int       `json:"usedCount"`
	MinOrderAmount float64   `json:"minOrderAmount"`
	IsActive       bool      `json:"isActive"`
}

func (c *Coupon) Expired(now time.Time) bool {
	return !c.ExpiryDate.After(now)
}

func (c *Coupon) LimitReached() bool {
	return c.MaxUses > 0 && c.UsedCount >= c.MaxUses
}

// DaysRemaining rounds partial days up and never goes below zero.
func (c *Coupon) DaysRemaining(now time.Time) int {
	left := c.ExpiryDate.Sub(now)
	if left <= 0 {
		return 0
	}
	return int(math.Ceil(left.Hours() / 24))
}

func (c *Coupon) Badge(now time.Time) CouponBadge {
	switch {
	case !c.IsActive:
		return BadgeInactive
	case c.Expired(now):
		return BadgeExpired
	case c.LimitReached():
		return BadgeLimitReached
	default:
		return BadgeActive
	}
}

// IsVisible reports whether the coupon should be shown to shoppers.
func (c *Coupon) IsVisible(now time.Time) bool {
	return c.IsActive && !c.Expired(now)
}

// CouponView is a coupon with its display values computed.
type CouponView struct {
	Coupon
	DaysRemaining int         `json:"daysRemaining"`
	Badge         CouponBadge `json:"badge"`
}

func NewCouponView(c Coupon, now time.Time) CouponView {
	return CouponView{
		Coupon:        c,
		DaysRemaining: c.DaysRemaining(now),
		Badge:         c.Badge(now),
	}
}

// VisibleCoupons drops expired and inactive coupons, keeping input order.
func VisibleCoupons(coupons []Coupon, now time.Time) []CouponView {
	views := make([]CouponView, 0, len(coupons))
	for _, c := range coupons {
		if !c.IsVisible(now) {
			continue
		}
		views = append(views, NewCouponView(c, now))
	}
	return views
}
