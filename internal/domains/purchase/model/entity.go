package model

import (
	"time"
)

// =====================================================
// PURCHASE STATUS CONSTANTS
// =====================================================
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// IsValidStatus reports whether s is a known purchase status
func IsValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// =====================================================
// ENTITY: Purchase
// =====================================================

// Purchase is a historical snapshot of a transaction. ProductName, Photo
// and TotalPriceCents are fixed at creation and never recomputed.
type Purchase struct {
	ID              string    `json:"purchase_id" bson:"_id"`
	BuyerUserID     string    `json:"buyer_user_id" bson:"buyer_user_id"`
	SellerUserID    string    `json:"seller_user_id" bson:"seller_user_id"`
	ProductID       string    `json:"product_id" bson:"product_id"`
	ProductName     string    `json:"product_name" bson:"product_name"`
	Quantity        int       `json:"quantity" bson:"quantity"`
	TotalPriceCents int64     `json:"total_price_cents" bson:"total_price_cents"`
	PurchaseDate    time.Time `json:"purchase_date" bson:"purchase_date"`
	Status          string    `json:"status" bson:"status"`
	Photo           *string   `json:"photo,omitempty" bson:"photo,omitempty"`
}

func (p *Purchase) IsCompleted() bool {
	return p.Status == StatusCompleted
}
