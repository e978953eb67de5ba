package service

import (
	"context"

	"marketplace-backend/internal/domains/review/model"
	"marketplace-backend/internal/domains/review/rating"
)

// ServiceInterface review operations. Every error is an *apperror.Error.
type ServiceInterface interface {
	CreateReview(ctx context.Context, actorID string, req model.CreateReviewRequest) (*model.Review, error)
	GetReview(ctx context.Context, id string) (*model.Review, error)
	UpdateReview(ctx context.Context, actorID, reviewID string, req model.UpdateReviewRequest) (*model.Review, error)
	DeleteReview(ctx context.Context, actorID, reviewID string) error

	GetSellerReviews(ctx context.Context, sellerID string) (*model.SellerReviewsResponse, error)
	GetSellerStats(ctx context.Context, sellerID string) (*rating.Summary, error)
	GetProductReviews(ctx context.Context, productID string) (*model.ProductReviewsResponse, error)
	GetProductAverage(ctx context.Context, productID string) (*model.ProductAverageResponse, error)
	GetUserReviews(ctx context.Context, userID string) (*model.UserReviewsResponse, error)
}
