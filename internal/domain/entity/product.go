package entity

import (
	"strings"
	"time"
)

type ProductStatus string

const (
	ProductPending  ProductStatus = "pending"
	ProductAccepted ProductStatus = "accepted"
	ProductRejected ProductStatus = "rejected"
)

// ModerationAction is a moderator-triggered transition on a product.
type ModerationAction string

const (
	ActionAccept  ModerationAction = "accept"
	ActionReject  ModerationAction = "reject"
	ActionFeature ModerationAction = "feature"
)

type Owner struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Photo string `json:"photo,omitempty"`
}

type Product struct {
	ID           string        `json:"_id"`
	Name         string        `json:"name"`
	Image        string        `json:"image"`
	Description  string        `json:"description"`
	Tags         []string      `json:"tags"`
	ExternalLink string        `json:"externalLink,omitempty"`
	Owner        Owner         `json:"owner"`
	Status       ProductStatus `json:"status"`
	Featured     bool          `json:"featured"`
	Votes        int           `json:"votes"`
	ReportedBy   string        `json:"reportedBy,omitempty"`
	ReportReason string        `json:"reportReason,omitempty"`
	ReportedAt   *time.Time    `json:"reportedAt,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"`
}

// CanTransition reports whether action may be applied to p. Rejected
// products and featured products have no outgoing transitions.
func CanTransition(p *Product, action ModerationAction) bool {
	if p == nil {
		return false
	}
	switch action {
	case ActionAccept, ActionReject:
		return p.Status == ProductPending
	case ActionFeature:
		return p.Status == ProductAccepted && !p.Featured
	default:
		return false
	}
}

// Apply returns a copy of p with action applied. The caller is expected to
// have checked CanTransition.
func (p Product) Apply(action ModerationAction) Product {
	switch action {
	case ActionAccept:
		p.Status = ProductAccepted
	case ActionReject:
		p.Status = ProductRejected
	case ActionFeature:
		p.Featured = true
	}
	return p
}

func (p *Product) IsTerminal() bool {
	return p.Status == ProductRejected || (p.Status == ProductAccepted && p.Featured)
}

func (p *Product) IsReported() bool {
	return p.ReportedBy != ""
}

func (p *Product) OwnedBy(email string) bool {
	return email != "" && strings.EqualFold(p.Owner.Email, email)
}
