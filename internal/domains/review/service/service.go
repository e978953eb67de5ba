package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	purchaseModel "marketplace-backend/internal/domains/purchase/model"
	"marketplace-backend/internal/domains/review/guard"
	"marketplace-backend/internal/domains/review/model"
	"marketplace-backend/internal/domains/review/rating"
	"marketplace-backend/internal/domains/review/repository"
	"marketplace-backend/internal/shared/apperror"
	"marketplace-backend/internal/shared/metrics"
	"marketplace-backend/pkg/cache"
	"marketplace-backend/pkg/logger"
)

// PurchaseReader is the part of the purchase ledger the review flow consults
type PurchaseReader interface {
	GetByID(ctx context.Context, id string) (*purchaseModel.Purchase, error)
}

// =====================================================
// SERVICE IMPLEMENTATION
// =====================================================

type reviewService struct {
	reviewRepo repository.ReviewRepository
	purchases  PurchaseReader

	// summaryCache may be nil; rollups are then recomputed on every read
	summaryCache cache.Cache
	cacheTTL     time.Duration

	now func() time.Time
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	purchases PurchaseReader,
	summaryCache cache.Cache,
	cacheTTL time.Duration,
) ServiceInterface {
	return &reviewService{
		reviewRepo:   reviewRepo,
		purchases:    purchases,
		summaryCache: summaryCache,
		cacheTTL:     cacheTTL,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// =====================================================
// CREATE REVIEW
// =====================================================

func (s *reviewService) CreateReview(
	ctx context.Context,
	actorID string,
	req model.CreateReviewRequest,
) (_ *model.Review, err error) {
	defer func() { metrics.ObserveReviewMutation("create", err) }()

	// Step 1: Load the purchase
	purchase, err := s.purchases.GetByID(ctx, req.PurchaseID)
	if err != nil {
		return nil, apperror.Wrap("failed to get purchase", err)
	}

	// Step 2: Load any review already attached to it
	var existing *model.Review
	if purchase != nil {
		existing, err = s.reviewRepo.GetByPurchaseID(ctx, purchase.ID)
		if err != nil {
			return nil, apperror.Wrap("failed to check existing review", err)
		}
	}

	// Step 3: Eligibility
	if err := guard.CheckCreate(purchase, existing, actorID, req.Rating, req.Comment); err != nil {
		logger.Debug("review creation rejected", map[string]interface{}{
			"purchase_id": req.PurchaseID,
			"actor_id":    actorID,
			"reason":      err.Error(),
		})
		return nil, err
	}

	// Step 4: Identity comes from the purchase, never from the request
	review := &model.Review{
		ID:             uuid.NewString(),
		PurchaseID:     purchase.ID,
		ReviewerUserID: purchase.BuyerUserID,
		ReviewedUserID: purchase.SellerUserID,
		ProductID:      purchase.ProductID,
		Rating:         req.Rating,
		Comment:        strings.TrimSpace(req.Comment),
		CreatedAt:      s.now(),
	}

	// Step 5: Persist; the unique purchase index turns a lost race into a conflict
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		if errors.Is(err, model.ErrAlreadyReviewed) {
			return nil, model.ErrAlreadyReviewed
		}
		return nil, apperror.Wrap("failed to create review", err)
	}

	s.invalidateSummaries(ctx, review)

	logger.Info("review created", map[string]interface{}{
		"review_id":   review.ID,
		"purchase_id": review.PurchaseID,
		"rating":      review.Rating,
	})

	return review, nil
}

// =====================================================
// GET REVIEW
// =====================================================

func (s *reviewService) GetReview(ctx context.Context, id string) (*model.Review, error) {
	review, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.Wrap("failed to get review", err)
	}
	if review == nil {
		return nil, model.ErrReviewNotFound
	}
	return review, nil
}

// =====================================================
// UPDATE REVIEW
// =====================================================

func (s *reviewService) UpdateReview(
	ctx context.Context,
	actorID, reviewID string,
	req model.UpdateReviewRequest,
) (_ *model.Review, err error) {
	defer func() { metrics.ObserveReviewMutation("update", err) }()

	// Step 1: Load and authorize
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, apperror.Wrap("failed to get review", err)
	}
	if err := guard.CheckUpdate(review, actorID, req.Rating, req.Comment); err != nil {
		return nil, err
	}

	// Step 2: Apply; zero rows means the review vanished in between
	changed, err := s.reviewRepo.Update(ctx, reviewID, req.Rating, strings.TrimSpace(req.Comment), s.now())
	if err != nil {
		return nil, apperror.Wrap("failed to update review", err)
	}
	if !changed {
		return nil, model.ErrReviewNotFound
	}

	// Step 3: Return the stored version
	updated, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, apperror.Wrap("failed to reload review", err)
	}
	if updated == nil {
		return nil, model.ErrReviewNotFound
	}

	s.invalidateSummaries(ctx, updated)
	return updated, nil
}

// =====================================================
// DELETE REVIEW
// =====================================================

func (s *reviewService) DeleteReview(ctx context.Context, actorID, reviewID string) (err error) {
	defer func() { metrics.ObserveReviewMutation("delete", err) }()

	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return apperror.Wrap("failed to get review", err)
	}
	if err := guard.CheckDelete(review, actorID); err != nil {
		return err
	}

	deleted, err := s.reviewRepo.Delete(ctx, reviewID)
	if err != nil {
		return apperror.Wrap("failed to delete review", err)
	}
	if !deleted {
		return model.ErrReviewNotFound
	}

	s.invalidateSummaries(ctx, review)

	logger.Info("review deleted", map[string]interface{}{
		"review_id": reviewID,
		"actor_id":  actorID,
	})
	return nil
}

// =====================================================
// QUERIES
// =====================================================

func (s *reviewService) GetSellerReviews(ctx context.Context, sellerID string) (*model.SellerReviewsResponse, error) {
	reviews, err := s.reviewRepo.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, apperror.Wrap("failed to list seller reviews", err)
	}

	return &model.SellerReviewsResponse{
		Reviews: reviews,
		Summary: rating.FromRatings(ratingsOf(reviews)),
	}, nil
}

func (s *reviewService) GetSellerStats(ctx context.Context, sellerID string) (*rating.Summary, error) {
	return s.summary(ctx, "seller", sellerStatsKey(sellerID), func() (map[int]int, error) {
		return s.reviewRepo.RatingCountsBySeller(ctx, sellerID)
	})
}

func (s *reviewService) GetProductReviews(ctx context.Context, productID string) (*model.ProductReviewsResponse, error) {
	reviews, err := s.reviewRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, apperror.Wrap("failed to list product reviews", err)
	}

	summary := rating.FromRatings(ratingsOf(reviews))
	return &model.ProductReviewsResponse{
		Reviews:       reviews,
		AverageRating: summary.AverageRating,
		TotalReviews:  summary.TotalReviews,
	}, nil
}

func (s *reviewService) GetProductAverage(ctx context.Context, productID string) (*model.ProductAverageResponse, error) {
	summary, err := s.summary(ctx, "product", productStatsKey(productID), func() (map[int]int, error) {
		return s.reviewRepo.RatingCountsByProduct(ctx, productID)
	})
	if err != nil {
		return nil, err
	}

	return &model.ProductAverageResponse{
		ProductID:     productID,
		AverageRating: summary.AverageRating,
		TotalReviews:  summary.TotalReviews,
	}, nil
}

func (s *reviewService) GetUserReviews(ctx context.Context, userID string) (*model.UserReviewsResponse, error) {
	reviews, err := s.reviewRepo.ListByReviewer(ctx, userID)
	if err != nil {
		return nil, apperror.Wrap("failed to list user reviews", err)
	}

	return &model.UserReviewsResponse{
		Reviews:      reviews,
		TotalReviews: len(reviews),
	}, nil
}

func ratingsOf(reviews []*model.Review) []int {
	ratings := make([]int, len(reviews))
	for i, r := range reviews {
		ratings[i] = r.Rating
	}
	return ratings
}
