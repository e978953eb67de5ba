package model

import (
	"time"
)

// Review is a buyer's rating of a completed purchase. Reviewer, reviewed
// seller and product are always copied from the purchase.
type Review struct {
	ID             string `json:"review_id" bson:"_id"`
	PurchaseID     string `json:"purchase_id" bson:"purchase_id"`
	ReviewerUserID string `json:"reviewer_user_id" bson:"reviewer_user_id"`
	ReviewedUserID string `json:"reviewed_user_id" bson:"reviewed_user_id"`
	ProductID      string `json:"product_id" bson:"product_id"`

	// Content
	Rating  int    `json:"rating" bson:"rating"` // 1-5
	Comment string `json:"comment" bson:"comment"`

	// Timestamps
	CreatedAt time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt *time.Time `json:"updated_at" bson:"updated_at,omitempty"`
}

// IsAuthoredBy reports whether userID wrote the review
func (r *Review) IsAuthoredBy(userID string) bool {
	return r.ReviewerUserID == userID
}
