package model

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/shopspring/decimal"
)

// =====================================================
// REQUEST DTOs
// =====================================================

// CreateProductRequest price is given in currency units, e.g. "19.99"
type CreateProductRequest struct {
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	ForSale     *bool           `json:"for_sale"`
	Photos      []string        `json:"photos"`
	Description *string         `json:"description"`
}

func (r CreateProductRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.RuneLength(1, 200)),
		validation.Field(&r.Category, validation.RuneLength(0, 100)),
		validation.Field(&r.Price, validation.By(positivePrice)),
		validation.Field(&r.Quantity, validation.Min(0)),
		validation.Field(&r.Photos, validation.Each(validation.Required, is.URL)),
	)
}

func positivePrice(value interface{}) error {
	price, _ := value.(decimal.Decimal)
	if !price.IsPositive() {
		return errors.New("must be greater than 0")
	}
	if price.Exponent() < -2 {
		return errors.New("must have at most 2 decimal places")
	}
	return nil
}

// IsForSale defaults to true when the field is omitted
func (r CreateProductRequest) IsForSale() bool {
	return r.ForSale == nil || *r.ForSale
}

// PriceCents converts the request price to integer cents
func (r CreateProductRequest) PriceCents() int64 {
	return r.Price.Shift(2).Round(0).IntPart()
}

// =====================================================
// RESPONSE DTOs
// =====================================================

// ProductResponse listing with the average rating of its reviews
type ProductResponse struct {
	*Product
	AverageRating *float64 `json:"average_rating"`
	TotalReviews  int      `json:"total_reviews"`
}

// CatalogResponse browsed listings, each with its rating
type CatalogResponse struct {
	Products []*ProductResponse `json:"products"`
	Total    int                `json:"total"`
}

// ProductListResponse listings of an owner
type ProductListResponse struct {
	Products []*Product `json:"products"`
	Total    int        `json:"total"`
}
