package repository

import (
	"context"

	"marketplace-backend/internal/domains/purchase/model"
)

// PurchaseRepository the purchase ledger. Lookups return (nil, nil) when
// the purchase does not exist; lists are newest first.
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *model.Purchase) error

	// CreateWithStockDecrement removes purchase.Quantity units from the
	// product and records the purchase as one unit of work. It returns
	// model.ErrInsufficientStock when the stock ran out.
	CreateWithStockDecrement(ctx context.Context, purchase *model.Purchase) error

	GetByID(ctx context.Context, id string) (*model.Purchase, error)
	ListByBuyer(ctx context.Context, buyerID string) ([]*model.Purchase, error)
	ListBySeller(ctx context.Context, sellerID string) ([]*model.Purchase, error)

	// UpdateStatus reports false when the purchase is missing or already
	// has the status
	UpdateStatus(ctx context.Context, id, status string) (bool, error)
}
