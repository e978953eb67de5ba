package model

import (
	"fmt"

	"marketplace-backend/internal/shared/apperror"
)

// Error codes
const (
	ErrCodeReviewNotFound       = "REV001"
	ErrCodeAlreadyReviewed      = "REV002"
	ErrCodePurchaseNotFound     = "REV003"
	ErrCodePurchaseNotCompleted = "REV004"
	ErrCodeNotPurchaseBuyer     = "REV005"
	ErrCodeCannotModify         = "REV006"
	ErrCodeInvalidRating        = "REV007"
	ErrCodeEmptyComment         = "REV008"
	ErrCodeCommentTooLong       = "REV009"
	ErrCodeInvalidRequest       = "REV010"
	ErrCodeCannotDelete         = "REV011"
)

// Errors
var (
	ErrReviewNotFound       = apperror.NotFound(ErrCodeReviewNotFound, "review not found")
	ErrAlreadyReviewed      = apperror.Conflict(ErrCodeAlreadyReviewed, "review already exists for this purchase")
	ErrPurchaseNotFound     = apperror.NotFound(ErrCodePurchaseNotFound, "purchase not found")
	ErrPurchaseNotCompleted = apperror.State(ErrCodePurchaseNotCompleted, "can only review completed purchases")
	ErrNotPurchaseBuyer     = apperror.Authorization(ErrCodeNotPurchaseBuyer, "only the buyer of this purchase can review it")
	ErrCannotModify         = apperror.Authorization(ErrCodeCannotModify, "only the reviewer can modify this review")
	ErrCannotDelete         = apperror.Authorization(ErrCodeCannotDelete, "only the reviewer can delete this review")
	ErrInvalidRating        = apperror.Validation(ErrCodeInvalidRating,
		fmt.Sprintf("rating must be between %d and %d", MinRating, MaxRating))
	ErrEmptyComment   = apperror.Validation(ErrCodeEmptyComment, "comment cannot be empty")
	ErrCommentTooLong = apperror.Validation(ErrCodeCommentTooLong,
		fmt.Sprintf("comment must be at most %d characters", MaxCommentLength))
)

// NewInvalidRequestError wraps a request binding or DTO validation failure
func NewInvalidRequestError(err error) *apperror.Error {
	return &apperror.Error{
		Kind:    apperror.KindValidation,
		Code:    ErrCodeInvalidRequest,
		Message: "invalid request",
		Err:     err,
	}
}
