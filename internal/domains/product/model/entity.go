package model

import "time"

// Product is a listing offered by its owner
type Product struct {
	ID          string    `json:"product_id" bson:"_id"`
	OwnerUserID string    `json:"owner_user_id" bson:"owner_user_id"`
	Name        string    `json:"name" bson:"name"`
	Category    string    `json:"category" bson:"category"`
	PriceCents  int64     `json:"price_cents" bson:"price_cents"`
	Quantity    int       `json:"quantity" bson:"quantity"`
	ForSale     bool      `json:"for_sale" bson:"for_sale"`
	Photos      []string  `json:"photos" bson:"photos"`
	Description *string   `json:"description,omitempty" bson:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// ProductFilter narrows a catalog browse; zero values match everything
type ProductFilter struct {
	ForSale  *bool
	Category string
}

func (p *Product) IsOwnedBy(userID string) bool {
	return p.OwnerUserID == userID
}

// FirstPhoto returns the cover photo, if any
func (p *Product) FirstPhoto() *string {
	if len(p.Photos) == 0 {
		return nil
	}
	photo := p.Photos[0]
	return &photo
}
