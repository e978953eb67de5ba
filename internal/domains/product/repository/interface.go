package repository

import (
	"context"

	"marketplace-backend/internal/domains/product/model"
)

// ProductRepository listing storage. Lookups return (nil, nil) when the
// product does not exist.
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	GetByID(ctx context.Context, id string) (*model.Product, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*model.Product, error)

	// List browses the catalog newest first
	List(ctx context.Context, filter model.ProductFilter) ([]*model.Product, error)

	// DecrementStock removes quantity units only if that many are left and
	// reports whether it did
	DecrementStock(ctx context.Context, id string, quantity int) (bool, error)
	IncrementStock(ctx context.Context, id string, quantity int) error
}
