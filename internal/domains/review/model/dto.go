package model

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"marketplace-backend/internal/domains/review/rating"
)

// =====================================================
// REQUEST DTOs
// =====================================================

// CreateReviewRequest request to review a purchase. Who is reviewed is
// never taken from the client.
type CreateReviewRequest struct {
	PurchaseID string `json:"purchase_id"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
}

// Validate checks the comment length after trimming, as it is stored
func (r CreateReviewRequest) Validate() error {
	r.Comment = strings.TrimSpace(r.Comment)
	return validation.ValidateStruct(&r,
		validation.Field(&r.PurchaseID, validation.Required, is.UUID),
		validation.Field(&r.Comment, validation.RuneLength(0, MaxCommentLength)),
	)
}

// UpdateReviewRequest replaces rating and comment of a review
type UpdateReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (r UpdateReviewRequest) Validate() error {
	r.Comment = strings.TrimSpace(r.Comment)
	return validation.ValidateStruct(&r,
		validation.Field(&r.Comment, validation.RuneLength(0, MaxCommentLength)),
	)
}

// =====================================================
// RESPONSE DTOs
// =====================================================

// SellerReviewsResponse reviews received by a seller with the full distribution
type SellerReviewsResponse struct {
	Reviews []*Review `json:"reviews"`
	rating.Summary
}

// ProductReviewsResponse reviews of a product with its simple average
type ProductReviewsResponse struct {
	Reviews       []*Review `json:"reviews"`
	AverageRating *float64  `json:"average_rating"`
	TotalReviews  int       `json:"total_reviews"`
}

// ProductAverageResponse average rating of a product without the reviews
type ProductAverageResponse struct {
	ProductID     string   `json:"product_id"`
	AverageRating *float64 `json:"average_rating"`
	TotalReviews  int      `json:"total_reviews"`
}

// UserReviewsResponse reviews written by a user
type UserReviewsResponse struct {
	Reviews      []*Review `json:"reviews"`
	TotalReviews int       `json:"total_reviews"`
}
