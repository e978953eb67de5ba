package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	purchaseModel "marketplace-backend/internal/domains/purchase/model"
	"marketplace-backend/internal/domains/review/model"
	infraCache "marketplace-backend/internal/infrastructure/cache"
	"marketplace-backend/internal/shared/apperror"
	"marketplace-backend/pkg/cache"
)

const (
	purchaseID = "7f0c3b9e-3c54-4a4a-9a53-0d5f8f1b2c11"
	buyerID    = "buyer-u1"
	sellerID   = "seller-u2"
	productID  = "product-x"
)

var fixedNow = time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)

type fixture struct {
	svc       *reviewService
	reviews   *mockReviewRepo
	purchases *mockPurchaseReader
}

func newFixture(t *testing.T, c cache.Cache) fixture {
	t.Helper()
	reviews := &mockReviewRepo{}
	purchases := &mockPurchaseReader{}
	svc := NewReviewService(reviews, purchases, c, time.Minute).(*reviewService)
	svc.now = func() time.Time { return fixedNow }

	t.Cleanup(func() {
		reviews.AssertExpectations(t)
		purchases.AssertExpectations(t)
	})
	return fixture{svc: svc, reviews: reviews, purchases: purchases}
}

func purchaseWithStatus(status string) *purchaseModel.Purchase {
	return &purchaseModel.Purchase{
		ID:           purchaseID,
		BuyerUserID:  buyerID,
		SellerUserID: sellerID,
		ProductID:    productID,
		ProductName:  "Kettlebell 16kg",
		Quantity:     1,
		Status:       status,
	}
}

func existingReview() *model.Review {
	return &model.Review{
		ID:             "review-1",
		PurchaseID:     purchaseID,
		ReviewerUserID: buyerID,
		ReviewedUserID: sellerID,
		ProductID:      productID,
		Rating:         4,
		Comment:        "good",
		CreatedAt:      fixedNow.Add(-time.Hour),
	}
}

// =====================================================
// CREATE
// =====================================================

func TestCreateReview_BindsIdentityFromPurchase(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	f.purchases.On("GetByID", ctx, purchaseID).Return(purchaseWithStatus(purchaseModel.StatusCompleted), nil)
	f.reviews.On("GetByPurchaseID", ctx, purchaseID).Return(nil, nil)
	f.reviews.On("Create", ctx, mock.MatchedBy(func(r *model.Review) bool {
		return r.ReviewerUserID == buyerID && r.ReviewedUserID == sellerID && r.ProductID == productID
	})).Return(nil)

	review, err := f.svc.CreateReview(ctx, buyerID, model.CreateReviewRequest{
		PurchaseID: purchaseID,
		Rating:     4,
		Comment:    "  good  ",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, review.ID)
	assert.Equal(t, sellerID, review.ReviewedUserID)
	assert.Equal(t, buyerID, review.ReviewerUserID)
	assert.Equal(t, "good", review.Comment)
	assert.Equal(t, fixedNow, review.CreatedAt)
	assert.Nil(t, review.UpdatedAt)
}

func TestCreateReview_AllValidRatings(t *testing.T) {
	for r := 1; r <= 5; r++ {
		f := newFixture(t, nil)
		ctx := context.Background()
		f.purchases.On("GetByID", ctx, purchaseID).Return(purchaseWithStatus(purchaseModel.StatusCompleted), nil)
		f.reviews.On("GetByPurchaseID", ctx, purchaseID).Return(nil, nil)
		f.reviews.On("Create", ctx, mock.Anything).Return(nil)

		_, err := f.svc.CreateReview(ctx, buyerID, model.CreateReviewRequest{PurchaseID: purchaseID, Rating: r, Comment: "ok"})
		assert.NoError(t, err, "rating %d", r)
	}
}

func TestCreateReview_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		purchase *purchaseModel.Purchase
		existing *model.Review
		actor    string
		rating   int
		comment  string
		wantKind apperror.Kind
	}{
		{"purchase not found", nil, nil, buyerID, 4, "good", apperror.KindNotFound},
		{"pending purchase", purchaseWithStatus(purchaseModel.StatusPending), nil, buyerID, 4, "good", apperror.KindState},
		{"duplicate", purchaseWithStatus(purchaseModel.StatusCompleted), existingReview(), buyerID, 4, "good", apperror.KindConflict},
		{"duplicate by other user", purchaseWithStatus(purchaseModel.StatusCompleted), existingReview(), "intruder", 4, "good", apperror.KindConflict},
		{"not the buyer", purchaseWithStatus(purchaseModel.StatusCompleted), nil, sellerID, 4, "good", apperror.KindAuthorization},
		{"rating zero", purchaseWithStatus(purchaseModel.StatusCompleted), nil, buyerID, 0, "good", apperror.KindValidation},
		{"rating six", purchaseWithStatus(purchaseModel.StatusCompleted), nil, buyerID, 6, "good", apperror.KindValidation},
		{"blank comment", purchaseWithStatus(purchaseModel.StatusCompleted), nil, buyerID, 4, "   ", apperror.KindValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, nil)
			ctx := context.Background()

			f.purchases.On("GetByID", ctx, purchaseID).Return(tt.purchase, nil)
			if tt.purchase != nil {
				f.reviews.On("GetByPurchaseID", ctx, purchaseID).Return(tt.existing, nil)
			}

			_, err := f.svc.CreateReview(ctx, tt.actor, model.CreateReviewRequest{
				PurchaseID: purchaseID,
				Rating:     tt.rating,
				Comment:    tt.comment,
			})

			require.Error(t, err)
			assert.Equal(t, tt.wantKind, apperror.KindOf(err))
			f.reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateReview_PendingThenCompleted(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	req := model.CreateReviewRequest{PurchaseID: purchaseID, Rating: 5, Comment: "great"}

	f.purchases.On("GetByID", ctx, purchaseID).Return(purchaseWithStatus(purchaseModel.StatusPending), nil).Once()
	f.reviews.On("GetByPurchaseID", ctx, purchaseID).Return(nil, nil)

	_, err := f.svc.CreateReview(ctx, buyerID, req)
	assert.Equal(t, apperror.KindState, apperror.KindOf(err))

	f.purchases.On("GetByID", ctx, purchaseID).Return(purchaseWithStatus(purchaseModel.StatusCompleted), nil).Once()
	f.reviews.On("Create", ctx, mock.Anything).Return(nil)

	review, err := f.svc.CreateReview(ctx, buyerID, req)
	require.NoError(t, err)
	assert.Equal(t, 5, review.Rating)
}

func TestCreateReview_LostRaceIsConflict(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	f.purchases.On("GetByID", ctx, purchaseID).Return(purchaseWithStatus(purchaseModel.StatusCompleted), nil)
	f.reviews.On("GetByPurchaseID", ctx, purchaseID).Return(nil, nil)
	f.reviews.On("Create", ctx, mock.Anything).Return(model.ErrAlreadyReviewed)

	_, err := f.svc.CreateReview(ctx, buyerID, model.CreateReviewRequest{PurchaseID: purchaseID, Rating: 3, Comment: "meh"})
	assert.ErrorIs(t, err, model.ErrAlreadyReviewed)
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
}

func TestCreateReview_StorageFailureIsInfrastructure(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	f.purchases.On("GetByID", ctx, purchaseID).Return(nil, errors.New("connection refused"))

	_, err := f.svc.CreateReview(ctx, buyerID, model.CreateReviewRequest{PurchaseID: purchaseID, Rating: 3, Comment: "meh"})
	assert.Equal(t, apperror.KindInfrastructure, apperror.KindOf(err))
}

// =====================================================
// UPDATE / DELETE
// =====================================================

func TestUpdateReview_ByReviewer(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	updated := existingReview()
	updated.Rating = 2
	updated.Comment = "broke after a week"
	updated.UpdatedAt = &fixedNow

	f.reviews.On("GetByID", ctx, "review-1").Return(existingReview(), nil).Once()
	f.reviews.On("Update", ctx, "review-1", 2, "broke after a week", fixedNow).Return(true, nil)
	f.reviews.On("GetByID", ctx, "review-1").Return(updated, nil).Once()

	got, err := f.svc.UpdateReview(ctx, buyerID, "review-1", model.UpdateReviewRequest{Rating: 2, Comment: " broke after a week "})
	require.NoError(t, err)
	assert.Equal(t, 2, got.Rating)
	require.NotNil(t, got.UpdatedAt)
	assert.Equal(t, fixedNow, *got.UpdatedAt)
}

func TestUpdateReview_ByOtherUser(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	f.reviews.On("GetByID", ctx, "review-1").Return(existingReview(), nil)

	_, err := f.svc.UpdateReview(ctx, sellerID, "review-1", model.UpdateReviewRequest{Rating: 1, Comment: "x"})
	assert.Equal(t, apperror.KindAuthorization, apperror.KindOf(err))
	f.reviews.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateReview_NoRowChangedIsNotFound(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	f.reviews.On("GetByID", ctx, "review-1").Return(existingReview(), nil)
	f.reviews.On("Update", ctx, "review-1", 3, "fine", fixedNow).Return(false, nil)

	_, err := f.svc.UpdateReview(ctx, buyerID, "review-1", model.UpdateReviewRequest{Rating: 3, Comment: "fine"})
	assert.ErrorIs(t, err, model.ErrReviewNotFound)
}

func TestUpdateReview_Missing(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	f.reviews.On("GetByID", ctx, "nope").Return(nil, nil)

	_, err := f.svc.UpdateReview(ctx, buyerID, "nope", model.UpdateReviewRequest{Rating: 3, Comment: "fine"})
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestDeleteReview(t *testing.T) {
	t.Run("by reviewer", func(t *testing.T) {
		f := newFixture(t, nil)
		ctx := context.Background()
		f.reviews.On("GetByID", ctx, "review-1").Return(existingReview(), nil)
		f.reviews.On("Delete", ctx, "review-1").Return(true, nil)

		assert.NoError(t, f.svc.DeleteReview(ctx, buyerID, "review-1"))
	})

	t.Run("by other user", func(t *testing.T) {
		f := newFixture(t, nil)
		ctx := context.Background()
		f.reviews.On("GetByID", ctx, "review-1").Return(existingReview(), nil)

		err := f.svc.DeleteReview(ctx, "intruder", "review-1")
		assert.Equal(t, apperror.KindAuthorization, apperror.KindOf(err))
	})

	t.Run("store reports nothing deleted", func(t *testing.T) {
		f := newFixture(t, nil)
		ctx := context.Background()
		f.reviews.On("GetByID", ctx, "review-1").Return(existingReview(), nil)
		f.reviews.On("Delete", ctx, "review-1").Return(false, nil)

		err := f.svc.DeleteReview(ctx, buyerID, "review-1")
		assert.ErrorIs(t, err, model.ErrReviewNotFound)
	})
}

// =====================================================
// QUERIES
// =====================================================

func reviewsWithRatings(ratings ...int) []*model.Review {
	out := make([]*model.Review, len(ratings))
	for i, r := range ratings {
		out[i] = &model.Review{ID: "r", Rating: r}
	}
	return out
}

func TestGetSellerReviews(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	f.reviews.On("ListBySeller", ctx, sellerID).Return(reviewsWithRatings(5, 5, 4, 3, 1), nil)

	resp, err := f.svc.GetSellerReviews(ctx, sellerID)
	require.NoError(t, err)
	require.NotNil(t, resp.AverageRating)
	assert.Equal(t, 3.6, *resp.AverageRating)
	assert.Equal(t, 5, resp.TotalReviews)
	assert.Equal(t, map[int]int{5: 2, 4: 1, 3: 1, 2: 0, 1: 1}, resp.Distribution)
	assert.Len(t, resp.Reviews, 5)
}

func TestGetSellerReviews_Empty(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	f.reviews.On("ListBySeller", ctx, sellerID).Return([]*model.Review{}, nil)

	resp, err := f.svc.GetSellerReviews(ctx, sellerID)
	require.NoError(t, err)
	assert.Nil(t, resp.AverageRating)
	assert.Equal(t, 0, resp.TotalReviews)
	assert.Equal(t, map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}, resp.Distribution)
}

func TestGetProductReviews(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	f.reviews.On("ListByProduct", ctx, productID).Return(reviewsWithRatings(4, 5, 5), nil)

	resp, err := f.svc.GetProductReviews(ctx, productID)
	require.NoError(t, err)
	require.NotNil(t, resp.AverageRating)
	assert.Equal(t, 4.67, *resp.AverageRating)
	assert.Equal(t, 3, resp.TotalReviews)
}

func TestGetProductAverage_Empty(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	f.reviews.On("RatingCountsByProduct", ctx, productID).Return(map[int]int{}, nil)

	resp, err := f.svc.GetProductAverage(ctx, productID)
	require.NoError(t, err)
	assert.Nil(t, resp.AverageRating)
	assert.Equal(t, 0, resp.TotalReviews)
	assert.Equal(t, productID, resp.ProductID)
}

func TestGetUserReviews(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	f.reviews.On("ListByReviewer", ctx, buyerID).Return(reviewsWithRatings(3, 4), nil)

	resp, err := f.svc.GetUserReviews(ctx, buyerID)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.TotalReviews)
}

func TestGetReview_NotFound(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	f.reviews.On("GetByID", ctx, "missing").Return(nil, nil)

	_, err := f.svc.GetReview(ctx, "missing")
	assert.ErrorIs(t, err, model.ErrReviewNotFound)
}

// =====================================================
// SUMMARY CACHE
// =====================================================

func newRedisCache(t *testing.T) *infraCache.RedisCache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return infraCache.NewRedisCacheFromClient(client)
}

func TestGetSellerStats_CachedUntilInvalidated(t *testing.T) {
	f := newFixture(t, newRedisCache(t))
	ctx := context.Background()

	f.reviews.On("RatingCountsBySeller", ctx, sellerID).Return(map[int]int{5: 2, 4: 1, 3: 1, 1: 1}, nil).Once()

	first, err := f.svc.GetSellerStats(ctx, sellerID)
	require.NoError(t, err)
	second, err := f.svc.GetSellerStats(ctx, sellerID)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 3.6, *second.AverageRating)
	assert.Equal(t, 0, second.Distribution[2])

	// a new review drops the cached rollup
	f.purchases.On("GetByID", ctx, purchaseID).Return(purchaseWithStatus(purchaseModel.StatusCompleted), nil)
	f.reviews.On("GetByPurchaseID", ctx, purchaseID).Return(nil, nil)
	f.reviews.On("Create", ctx, mock.Anything).Return(nil)
	_, err = f.svc.CreateReview(ctx, buyerID, model.CreateReviewRequest{PurchaseID: purchaseID, Rating: 5, Comment: "again"})
	require.NoError(t, err)

	f.reviews.On("RatingCountsBySeller", ctx, sellerID).Return(map[int]int{5: 3, 4: 1, 3: 1, 1: 1}, nil).Once()
	third, err := f.svc.GetSellerStats(ctx, sellerID)
	require.NoError(t, err)
	assert.Equal(t, 6, third.TotalReviews)
	assert.Equal(t, 3.83, *third.AverageRating)
}

func TestGetSellerStats_ReviewDuringLoadIsNotServedStale(t *testing.T) {
	f := newFixture(t, newRedisCache(t))
	ctx := context.Background()

	f.purchases.On("GetByID", ctx, purchaseID).Return(purchaseWithStatus(purchaseModel.StatusCompleted), nil)
	f.reviews.On("GetByPurchaseID", ctx, purchaseID).Return(nil, nil)
	f.reviews.On("Create", ctx, mock.Anything).Return(nil)

	// the review commits after the counts were read and before they are cached
	f.reviews.On("RatingCountsBySeller", ctx, sellerID).
		Run(func(mock.Arguments) {
			_, err := f.svc.CreateReview(ctx, buyerID, model.CreateReviewRequest{PurchaseID: purchaseID, Rating: 4, Comment: "solid"})
			require.NoError(t, err)
		}).
		Return(map[int]int{}, nil).Once()
	f.reviews.On("RatingCountsBySeller", ctx, sellerID).Return(map[int]int{4: 1}, nil).Once()

	first, err := f.svc.GetSellerStats(ctx, sellerID)
	require.NoError(t, err)
	assert.Equal(t, 0, first.TotalReviews)

	second, err := f.svc.GetSellerStats(ctx, sellerID)
	require.NoError(t, err)
	assert.Equal(t, 1, second.TotalReviews)
	require.NotNil(t, second.AverageRating)
	assert.Equal(t, 4.0, *second.AverageRating)
	f.reviews.AssertExpectations(t)
}

func TestGetProductAverage_CacheDownStillServes(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	f := newFixture(t, infraCache.NewRedisCacheFromClient(client))
	ctx := context.Background()
	f.reviews.On("RatingCountsByProduct", ctx, productID).Return(map[int]int{4: 1}, nil)

	resp, err := f.svc.GetProductAverage(ctx, productID)
	require.NoError(t, err)
	assert.Equal(t, 4.0, *resp.AverageRating)
}
