package model

import (
	"fmt"

	"marketplace-backend/internal/shared/apperror"
)

// =====================================================
// CUSTOM ERROR CODES
// =====================================================
const (
	ErrCodePurchaseNotFound  = "PUR001"
	ErrCodeProductNotFound   = "PUR002"
	ErrCodeOwnProduct        = "PUR003"
	ErrCodeInsufficientStock = "PUR004"
	ErrCodeInvalidQuantity   = "PUR005"
	ErrCodeInvalidStatus     = "PUR006"
	ErrCodeInvalidRequest    = "PUR007"
	ErrCodeNotForSale        = "PUR008"
)

// =====================================================
// ERROR DEFINITIONS
// =====================================================
var (
	ErrPurchaseNotFound = apperror.NotFound(ErrCodePurchaseNotFound, "purchase not found")
	ErrProductNotFound  = apperror.NotFound(ErrCodeProductNotFound, "product not found")
	ErrNotForSale       = apperror.State(ErrCodeNotForSale, "this item is not for sale")
	ErrOwnProduct       = apperror.Validation(ErrCodeOwnProduct, "you cannot buy your own item")
	ErrInvalidQuantity  = apperror.Validation(ErrCodeInvalidQuantity, "quantity must be at least 1")
	ErrInvalidStatus    = apperror.Validation(ErrCodeInvalidStatus, "invalid purchase status")

	// ErrInsufficientStock is returned by ledgers when a conditional stock
	// decrement matched no row
	ErrInsufficientStock = apperror.State(ErrCodeInsufficientStock, "insufficient stock")
)

// NewInsufficientStockError reports how many units are left
func NewInsufficientStockError(available int) *apperror.Error {
	return apperror.State(ErrCodeInsufficientStock, fmt.Sprintf("only %d items available", available))
}

func NewInvalidRequestError(err error) *apperror.Error {
	return &apperror.Error{
		Kind:    apperror.KindValidation,
		Code:    ErrCodeInvalidRequest,
		Message: "invalid request",
		Err:     err,
	}
}
