package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// CreatePurchaseRequest buys Quantity units of a product. The buyer is the
// authenticated user.
type CreatePurchaseRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

func (r CreatePurchaseRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ProductID, validation.Required, is.UUID),
		validation.Field(&r.Quantity, validation.Required, validation.Min(1)),
	)
}

// UpdateStatusRequest administrative status change
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

func (r UpdateStatusRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Status, validation.Required,
			validation.In(StatusPending, StatusCompleted, StatusCancelled)),
	)
}

// UpdateStatusResponse tells whether the status actually changed
type UpdateStatusResponse struct {
	PurchaseID string `json:"purchase_id"`
	Status     string `json:"status"`
	Modified   bool   `json:"modified"`
}

// PurchaseListResponse purchases of a buyer or seller
type PurchaseListResponse struct {
	Purchases []*Purchase `json:"purchases"`
	Total     int         `json:"total"`
}
