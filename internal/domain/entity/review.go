package entity

import (
	"time"
)

// Review is immutable once created.
type Review struct {
	ProductID     string    `json:"productId"`
	ReviewerEmail string    `json:"reviewerEmail"`
	ReviewerName  string    `json:"reviewerName"`
	ReviewerImage string    `json:"reviewerImage,omitempty"`
	Rating        int       `json:"rating"`
	Description   string    `json:"description"`
	CreatedAt     time.Time `json:"createdAt"`
}
