package service

import (
	"context"

	"catalog-api/internal/model"
)

// CategoryService owns the business rules for categories: name uniqueness
// (ignoring case, on create and rename), the deletion guard against orphaning
// products, and null-tolerant partial updates.
type CategoryService interface {
	// List retrieves all categories.
	List(ctx context.Context) ([]model.Category, error)

	// Get retrieves a single category by ID.
	Get(ctx context.Context, id int64) (*model.Category, error)

	// Create persists a new category after normalization and uniqueness checks.
	Create(ctx context.Context, req *model.CreateCategoryRequest) (*model.Category, error)

	// Update applies the non-nil request fields to an existing category.
	Update(ctx context.Context, id int64, req *model.UpdateCategoryRequest) (*model.Category, error)

	// Delete removes a category that has no dependent products.
	Delete(ctx context.Context, id int64) error
}

// ProductService owns the business rules for products: the owning category
// must exist at write time, and partial updates never clear fields.
type ProductService interface {
	// List retrieves all products, or one category's products when categoryID
	// is non-nil. An unknown filter category yields an empty list.
	List(ctx context.Context, categoryID *int64) ([]model.Product, error)

	// Get retrieves a single product by ID.
	Get(ctx context.Context, id int64) (*model.Product, error)

	// Create persists a new product after resolving its category.
	Create(ctx context.Context, req *model.CreateProductRequest) (*model.Product, error)

	// Update applies the non-nil request fields to an existing product,
	// re-resolving the category when one is supplied.
	Update(ctx context.Context, id int64, req *model.UpdateProductRequest) (*model.Product, error)

	// Delete removes a product, confirming existence first.
	Delete(ctx context.Context, id int64) error
}

// CustomerService owns the business rules for customers: email uniqueness
// (ignoring case, on create and email change) and partial updates.
type CustomerService interface {
	// List retrieves all customers.
	List(ctx context.Context) ([]model.Customer, error)

	// Get retrieves a single customer by ID.
	Get(ctx context.Context, id int64) (*model.Customer, error)

	// Create persists a new customer after the email uniqueness check.
	Create(ctx context.Context, req *model.CreateCustomerRequest) (*model.Customer, error)

	// Update applies the non-nil request fields to an existing customer.
	Update(ctx context.Context, id int64, req *model.UpdateCustomerRequest) (*model.Customer, error)

	// Delete removes a customer, confirming existence first.
	Delete(ctx context.Context, id int64) error
}
