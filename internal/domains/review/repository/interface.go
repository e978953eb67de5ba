package repository

import (
	"context"
	"time"

	"marketplace-backend/internal/domains/review/model"
)

// ReviewRepository is the review store. Lookups return (nil, nil) when the
// record does not exist. Lists are ordered newest first.
type ReviewRepository interface {
	// Create returns model.ErrAlreadyReviewed when the purchase already has a review
	Create(ctx context.Context, review *model.Review) error

	GetByID(ctx context.Context, id string) (*model.Review, error)
	GetByPurchaseID(ctx context.Context, purchaseID string) (*model.Review, error)

	ListBySeller(ctx context.Context, sellerID string) ([]*model.Review, error)
	ListByProduct(ctx context.Context, productID string) ([]*model.Review, error)
	ListByReviewer(ctx context.Context, reviewerID string) ([]*model.Review, error)

	// Update and Delete report whether a record was changed
	Update(ctx context.Context, id string, rating int, comment string, updatedAt time.Time) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)

	// Rating counts keyed by star value; absent stars are omitted
	RatingCountsBySeller(ctx context.Context, sellerID string) (map[int]int, error)
	RatingCountsByProduct(ctx context.Context, productID string) (map[int]int, error)
}
