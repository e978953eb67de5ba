package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	productModel "marketplace-backend/internal/domains/product/model"
	"marketplace-backend/internal/domains/purchase/model"
	"marketplace-backend/internal/domains/purchase/repository"
	"marketplace-backend/internal/shared/apperror"
	"marketplace-backend/internal/shared/metrics"
	"marketplace-backend/pkg/logger"
)

// ServiceInterface purchase workflow
type ServiceInterface interface {
	PurchaseProduct(ctx context.Context, buyerID string, req model.CreatePurchaseRequest) (*model.Purchase, error)
	GetPurchase(ctx context.Context, id string) (*model.Purchase, error)
	ListByBuyer(ctx context.Context, buyerID string) (*model.PurchaseListResponse, error)
	ListBySeller(ctx context.Context, sellerID string) (*model.PurchaseListResponse, error)
	UpdatePurchaseStatus(ctx context.Context, id, status string) (*model.UpdateStatusResponse, error)
}

// ProductReader loads the listing being bought
type ProductReader interface {
	GetByID(ctx context.Context, id string) (*productModel.Product, error)
}

type purchaseService struct {
	purchaseRepo repository.PurchaseRepository
	products     ProductReader
	now          func() time.Time
}

func NewPurchaseService(purchaseRepo repository.PurchaseRepository, products ProductReader) ServiceInterface {
	return &purchaseService{
		purchaseRepo: purchaseRepo,
		products:     products,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// =====================================================
// PURCHASE PRODUCT
// =====================================================

func (s *purchaseService) PurchaseProduct(
	ctx context.Context,
	buyerID string,
	req model.CreatePurchaseRequest,
) (_ *model.Purchase, err error) {
	defer func() { metrics.ObservePurchase(err) }()

	// Step 1: Load the listing
	product, err := s.products.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, apperror.Wrap("failed to get product", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	// Step 2: Business rules
	if !product.ForSale {
		return nil, model.ErrNotForSale
	}
	if product.IsOwnedBy(buyerID) {
		return nil, model.ErrOwnProduct
	}
	if req.Quantity < 1 {
		return nil, model.ErrInvalidQuantity
	}
	if product.Quantity < req.Quantity {
		return nil, model.NewInsufficientStockError(product.Quantity)
	}

	// Step 3: Snapshot of the listing at purchase time
	total := decimal.NewFromInt(product.PriceCents).Mul(decimal.NewFromInt(int64(req.Quantity)))
	purchase := &model.Purchase{
		ID:              uuid.NewString(),
		BuyerUserID:     buyerID,
		SellerUserID:    product.OwnerUserID,
		ProductID:       product.ID,
		ProductName:     product.Name,
		Quantity:        req.Quantity,
		TotalPriceCents: total.IntPart(),
		PurchaseDate:    s.now(),
		Status:          model.StatusCompleted,
		Photo:           product.FirstPhoto(),
	}

	// Step 4: Take the stock and record the purchase together
	if err := s.purchaseRepo.CreateWithStockDecrement(ctx, purchase); err != nil {
		if errors.Is(err, model.ErrInsufficientStock) {
			return nil, model.ErrInsufficientStock
		}
		return nil, apperror.Wrap("failed to create purchase", err)
	}

	logger.Info("purchase completed", map[string]interface{}{
		"purchase_id": purchase.ID,
		"product_id":  purchase.ProductID,
		"quantity":    purchase.Quantity,
	})

	return purchase, nil
}

// =====================================================
// READS
// =====================================================

func (s *purchaseService) GetPurchase(ctx context.Context, id string) (*model.Purchase, error) {
	purchase, err := s.purchaseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.Wrap("failed to get purchase", err)
	}
	if purchase == nil {
		return nil, model.ErrPurchaseNotFound
	}
	return purchase, nil
}

func (s *purchaseService) ListByBuyer(ctx context.Context, buyerID string) (*model.PurchaseListResponse, error) {
	purchases, err := s.purchaseRepo.ListByBuyer(ctx, buyerID)
	if err != nil {
		return nil, apperror.Wrap("failed to list purchases", err)
	}
	return &model.PurchaseListResponse{Purchases: purchases, Total: len(purchases)}, nil
}

func (s *purchaseService) ListBySeller(ctx context.Context, sellerID string) (*model.PurchaseListResponse, error) {
	purchases, err := s.purchaseRepo.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, apperror.Wrap("failed to list purchases", err)
	}
	return &model.PurchaseListResponse{Purchases: purchases, Total: len(purchases)}, nil
}

// =====================================================
// STATUS
// =====================================================

// UpdatePurchaseStatus reports Modified=false when the purchase already had
// the requested status
func (s *purchaseService) UpdatePurchaseStatus(ctx context.Context, id, status string) (*model.UpdateStatusResponse, error) {
	if !model.IsValidStatus(status) {
		return nil, model.ErrInvalidStatus
	}

	purchase, err := s.purchaseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.Wrap("failed to get purchase", err)
	}
	if purchase == nil {
		return nil, model.ErrPurchaseNotFound
	}

	modified, err := s.purchaseRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, apperror.Wrap("failed to update purchase status", err)
	}

	if modified {
		logger.Info("purchase status changed", map[string]interface{}{
			"purchase_id": id,
			"from":        purchase.Status,
			"to":          status,
		})
	}

	return &model.UpdateStatusResponse{
		PurchaseID: id,
		Status:     status,
		Modified:   modified,
	}, nil
}
