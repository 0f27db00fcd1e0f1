package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalogue item. CategoryName is denormalized from the owning
// category for response views; it is never written back.
type Product struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	InStock      int             `json:"inStock"`
	CategoryID   int64           `json:"categoryId"`
	CategoryName string          `json:"categoryName"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// CreateProductRequest is the payload for POST /api/products.
type CreateProductRequest struct {
	Name       string           `json:"name" validate:"required,max=255"`
	Price      *decimal.Decimal `json:"price" validate:"required,gt=0"`
	InStock    *int             `json:"inStock" validate:"required,gte=0"`
	CategoryID int64            `json:"categoryId" validate:"required,gt=0"`
}

// UpdateProductRequest is the payload for PUT /api/products/{id}.
// Nil fields leave the stored value unchanged.
type UpdateProductRequest struct {
	Name       *string          `json:"name" validate:"omitempty,max=255"`
	Price      *decimal.Decimal `json:"price" validate:"omitempty,gt=0"`
	InStock    *int             `json:"inStock" validate:"omitempty,gte=0"`
	CategoryID *int64           `json:"categoryId" validate:"omitempty,gt=0"`
}
