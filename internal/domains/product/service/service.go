package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"marketplace-backend/internal/domains/product/model"
	"marketplace-backend/internal/domains/product/repository"
	reviewModel "marketplace-backend/internal/domains/review/model"
	"marketplace-backend/internal/shared/apperror"
	"marketplace-backend/pkg/logger"
)

// ServiceInterface listing operations
type ServiceInterface interface {
	CreateProduct(ctx context.Context, ownerID string, req model.CreateProductRequest) (*model.Product, error)
	GetProduct(ctx context.Context, id string) (*model.ProductResponse, error)
	ListByOwner(ctx context.Context, ownerID string) (*model.ProductListResponse, error)
	ListProducts(ctx context.Context, filter model.ProductFilter) (*model.CatalogResponse, error)
}

// RatingReader supplies the average rating shown with a listing
type RatingReader interface {
	GetProductAverage(ctx context.Context, productID string) (*reviewModel.ProductAverageResponse, error)
}

type productService struct {
	productRepo repository.ProductRepository
	ratings     RatingReader
	now         func() time.Time
}

func NewProductService(productRepo repository.ProductRepository, ratings RatingReader) ServiceInterface {
	return &productService{
		productRepo: productRepo,
		ratings:     ratings,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *productService) CreateProduct(ctx context.Context, ownerID string, req model.CreateProductRequest) (*model.Product, error) {
	now := s.now()
	product := &model.Product{
		ID:          uuid.NewString(),
		OwnerUserID: ownerID,
		Name:        strings.TrimSpace(req.Name),
		Category:    strings.TrimSpace(req.Category),
		PriceCents:  req.PriceCents(),
		Quantity:    req.Quantity,
		ForSale:     req.IsForSale(),
		Photos:      req.Photos,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if product.Photos == nil {
		product.Photos = []string{}
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, apperror.Wrap("failed to create product", err)
	}

	logger.Info("product created", map[string]interface{}{
		"product_id": product.ID,
		"owner_id":   ownerID,
	})

	return product, nil
}

func (s *productService) GetProduct(ctx context.Context, id string) (*model.ProductResponse, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.Wrap("failed to get product", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	return s.withRating(ctx, product)
}

// ListProducts browses the catalog; every listing carries its average rating
func (s *productService) ListProducts(ctx context.Context, filter model.ProductFilter) (*model.CatalogResponse, error) {
	filter.Category = strings.TrimSpace(filter.Category)

	products, err := s.productRepo.List(ctx, filter)
	if err != nil {
		return nil, apperror.Wrap("failed to list products", err)
	}

	result := &model.CatalogResponse{
		Products: make([]*model.ProductResponse, 0, len(products)),
		Total:    len(products),
	}
	for _, product := range products {
		rated, err := s.withRating(ctx, product)
		if err != nil {
			return nil, err
		}
		result.Products = append(result.Products, rated)
	}
	return result, nil
}

func (s *productService) withRating(ctx context.Context, product *model.Product) (*model.ProductResponse, error) {
	average, err := s.ratings.GetProductAverage(ctx, product.ID)
	if err != nil {
		return nil, err
	}

	return &model.ProductResponse{
		Product:       product,
		AverageRating: average.AverageRating,
		TotalReviews:  average.TotalReviews,
	}, nil
}

func (s *productService) ListByOwner(ctx context.Context, ownerID string) (*model.ProductListResponse, error) {
	products, err := s.productRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperror.Wrap("failed to list products", err)
	}

	return &model.ProductListResponse{
		Products: products,
		Total:    len(products),
	}, nil
}
