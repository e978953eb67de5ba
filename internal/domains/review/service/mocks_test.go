package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	purchaseModel "marketplace-backend/internal/domains/purchase/model"
	"marketplace-backend/internal/domains/review/model"
)

type mockReviewRepo struct {
	mock.Mock
}

func (m *mockReviewRepo) Create(ctx context.Context, review *model.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *mockReviewRepo) GetByID(ctx context.Context, id string) (*model.Review, error) {
	args := m.Called(ctx, id)
	if r := args.Get(0); r != nil {
		return r.(*model.Review), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockReviewRepo) GetByPurchaseID(ctx context.Context, purchaseID string) (*model.Review, error) {
	args := m.Called(ctx, purchaseID)
	if r := args.Get(0); r != nil {
		return r.(*model.Review), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockReviewRepo) ListBySeller(ctx context.Context, sellerID string) ([]*model.Review, error) {
	args := m.Called(ctx, sellerID)
	return args.Get(0).([]*model.Review), args.Error(1)
}

func (m *mockReviewRepo) ListByProduct(ctx context.Context, productID string) ([]*model.Review, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).([]*model.Review), args.Error(1)
}

func (m *mockReviewRepo) ListByReviewer(ctx context.Context, reviewerID string) ([]*model.Review, error) {
	args := m.Called(ctx, reviewerID)
	return args.Get(0).([]*model.Review), args.Error(1)
}

func (m *mockReviewRepo) Update(ctx context.Context, id string, rating int, comment string, updatedAt time.Time) (bool, error) {
	args := m.Called(ctx, id, rating, comment, updatedAt)
	return args.Bool(0), args.Error(1)
}

func (m *mockReviewRepo) Delete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockReviewRepo) RatingCountsBySeller(ctx context.Context, sellerID string) (map[int]int, error) {
	args := m.Called(ctx, sellerID)
	if c := args.Get(0); c != nil {
		return c.(map[int]int), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockReviewRepo) RatingCountsByProduct(ctx context.Context, productID string) (map[int]int, error) {
	args := m.Called(ctx, productID)
	if c := args.Get(0); c != nil {
		return c.(map[int]int), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockPurchaseReader struct {
	mock.Mock
}

func (m *mockPurchaseReader) GetByID(ctx context.Context, id string) (*purchaseModel.Purchase, error) {
	args := m.Called(ctx, id)
	if p := args.Get(0); p != nil {
		return p.(*purchaseModel.Purchase), args.Error(1)
	}
	return nil, args.Error(1)
}
