package model

// Category groups products in the catalogue. Name is unique ignoring case.
type Category struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// CreateCategoryRequest is the payload for POST /api/categories.
type CreateCategoryRequest struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Description *string `json:"description"`
}

// UpdateCategoryRequest is the payload for PUT /api/categories/{id}.
// Nil fields leave the stored value unchanged.
type UpdateCategoryRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=255"`
	Description *string `json:"description"`
}
