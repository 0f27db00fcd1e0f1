package model

import "time"

// Customer is a shop customer. Email is unique ignoring case.
type Customer struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	City      *string   `json:"city,omitempty"`
	Country   *string   `json:"country,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateCustomerRequest is the payload for POST /api/customers.
type CreateCustomerRequest struct {
	FirstName string  `json:"firstName" validate:"required,max=255"`
	LastName  string  `json:"lastName" validate:"required,max=255"`
	Email     string  `json:"email" validate:"required,email,max=255"`
	City      *string `json:"city" validate:"omitempty,max=255"`
	Country   *string `json:"country" validate:"omitempty,max=255"`
}

// UpdateCustomerRequest is the payload for PUT /api/customers/{id}.
// Nil fields leave the stored value unchanged.
type UpdateCustomerRequest struct {
	FirstName *string `json:"firstName" validate:"omitempty,max=255"`
	LastName  *string `json:"lastName" validate:"omitempty,max=255"`
	Email     *string `json:"email" validate:"omitempty,email,max=255"`
	City      *string `json:"city" validate:"omitempty,max=255"`
	Country   *string `json:"country" validate:"omitempty,max=255"`
}
