// Package guard decides whether a review may be created, updated or
// deleted. It performs no I/O: callers load the purchase and any existing
// review and pass them in.
package guard

import (
	"strings"
	"unicode/utf8"

	purchaseModel "marketplace-backend/internal/domains/purchase/model"
	"marketplace-backend/internal/domains/review/model"
)

// CheckCreate returns nil when actor may review purchase. Checks run in a
// fixed order so that a duplicate is a conflict whoever attempts it.
func CheckCreate(purchase *purchaseModel.Purchase, existing *model.Review, actor string, rating int, comment string) error {
	if purchase == nil {
		return model.ErrPurchaseNotFound
	}
	if !purchase.IsCompleted() {
		return model.ErrPurchaseNotCompleted
	}
	if existing != nil {
		return model.ErrAlreadyReviewed
	}
	if actor != purchase.BuyerUserID {
		return model.ErrNotPurchaseBuyer
	}
	return ValidateContent(rating, comment)
}

// CheckUpdate returns nil when actor may replace the rating and comment of review
func CheckUpdate(review *model.Review, actor string, rating int, comment string) error {
	if review == nil {
		return model.ErrReviewNotFound
	}
	if !review.IsAuthoredBy(actor) {
		return model.ErrCannotModify
	}
	return ValidateContent(rating, comment)
}

// CheckDelete returns nil when actor may delete review
func CheckDelete(review *model.Review, actor string) error {
	if review == nil {
		return model.ErrReviewNotFound
	}
	if !review.IsAuthoredBy(actor) {
		return model.ErrCannotDelete
	}
	return nil
}

// ValidateContent checks rating range and comment length
func ValidateContent(rating int, comment string) error {
	if rating < model.MinRating || rating > model.MaxRating {
		return model.ErrInvalidRating
	}
	trimmed := strings.TrimSpace(comment)
	if trimmed == "" {
		return model.ErrEmptyComment
	}
	if utf8.RuneCountInString(trimmed) > model.MaxCommentLength {
		return model.ErrCommentTooLong
	}
	return nil
}
