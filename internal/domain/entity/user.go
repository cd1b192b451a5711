package entity

import (
	"strings"
	"time"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// ParseRole normalizes a backend role string. Unknown or empty roles are
// treated as plain users.
func ParseRole(s string) Role {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin
	case RoleModerator:
		return RoleModerator
	default:
		return RoleUser
	}
}

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleModerator || r == RoleAdmin
}

type MembershipStatus string

const (
	MembershipNone    MembershipStatus = "none"
	MembershipPremium MembershipStatus = "premium"
)

type Membership struct {
	Status      MembershipStatus `json:"status"`
	PurchasedAt *time.Time       `json:"purchasedAt,omitempty"`
}

type User struct {
	Email      string     `json:"email"`
	Name       string     `json:"name"`
	Photo      string     `json:"photo,omitempty"`
	Role       Role       `json:"role"`
	Membership Membership `json:"membership"`
	CreatedAt  time.Time  `json:"createdAt,omitempty"`
}

func (u *User) IsPremium() bool {
	return u != nil && u.Membership.Status == MembershipPremium
}
