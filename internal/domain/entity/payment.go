package entity

import (
	"time"
)

type Payment struct {
	Email         string    `json:"email"`
	Amount        float64   `json:"amount"`
	TransactionID string    `json:"transactionId"`
	CouponCode    string    `json:"couponCode,omitempty"`
	Status        string    `json:"status"`
	Date          time.Time `json:"date"`
}

type PaymentIntent struct {
	ClientSecret string `json:"clientSecret"`
}

type CouponDiscount struct {
	Code           string  `json:"code"`
	Valid          bool    `json:"valid"`
	DiscountAmount float64 `json:"discountAmount"`
	Message        string  `json:"message,omitempty"`
}
