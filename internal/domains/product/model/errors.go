package model

import "marketplace-backend/internal/shared/apperror"

const (
	ErrCodeProductNotFound = "PRD001"
	ErrCodeInvalidRequest  = "PRD002"
)

var ErrProductNotFound = apperror.NotFound(ErrCodeProductNotFound, "product not found")

func NewInvalidRequestError(err error) *apperror.Error {
	return &apperror.Error{
		Kind:    apperror.KindValidation,
		Code:    ErrCodeInvalidRequest,
		Message: "invalid request",
		Err:     err,
	}
}
