package repository

import (
	"context"

	"catalog-api/internal/model"

	"github.com/jackc/pgx/v5"
)

// CategoryRepository is the persistence gateway for categories. Mutating
// methods and consistency checks run against a caller-provided transaction so
// the service layer can make check-then-write sequences atomic.
type CategoryRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// GetAll retrieves all categories.
	GetAll(ctx context.Context) ([]model.Category, error)

	// GetByID retrieves a single category, or nil when absent.
	GetByID(ctx context.Context, id int64) (*model.Category, error)

	// GetForUpdate retrieves a category within the transaction, locking the
	// row. Returns nil when absent.
	GetForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*model.Category, error)

	// ExistsByNameIgnoreCase reports whether a category with the given name
	// exists, ignoring case. A non-zero excludeID leaves that row out of the
	// check (used when renaming).
	ExistsByNameIgnoreCase(ctx context.Context, tx pgx.Tx, name string, excludeID int64) (bool, error)

	// Insert persists a new category and assigns its ID.
	Insert(ctx context.Context, tx pgx.Tx, category *model.Category) error

	// Update overwrites an existing category's mutable fields.
	Update(ctx context.Context, tx pgx.Tx, category *model.Category) error

	// Delete removes a category by ID.
	Delete(ctx context.Context, tx pgx.Tx, id int64) error
}

// ProductRepository is the persistence gateway for products. Reads join the
// owning category so responses carry the denormalized category name.
type ProductRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// GetAll retrieves all products.
	GetAll(ctx context.Context) ([]model.Product, error)

	// GetByCategoryID retrieves the products of one category.
	GetByCategoryID(ctx context.Context, categoryID int64) ([]model.Product, error)

	// GetByID retrieves a single product, or nil when absent.
	GetByID(ctx context.Context, id int64) (*model.Product, error)

	// GetForUpdate retrieves a product within the transaction, locking the
	// row. Returns nil when absent.
	GetForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*model.Product, error)

	// CountByCategoryID counts the products referencing a category.
	CountByCategoryID(ctx context.Context, tx pgx.Tx, categoryID int64) (int64, error)

	// Insert persists a new product, assigning its ID and creation timestamp.
	Insert(ctx context.Context, tx pgx.Tx, product *model.Product) error

	// Update overwrites an existing product's mutable fields.
	Update(ctx context.Context, tx pgx.Tx, product *model.Product) error

	// Delete removes a product by ID.
	Delete(ctx context.Context, tx pgx.Tx, id int64) error
}

// CustomerRepository is the persistence gateway for customers.
type CustomerRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// GetAll retrieves all customers.
	GetAll(ctx context.Context) ([]model.Customer, error)

	// GetByID retrieves a single customer, or nil when absent.
	GetByID(ctx context.Context, id int64) (*model.Customer, error)

	// GetForUpdate retrieves a customer within the transaction, locking the
	// row. Returns nil when absent.
	GetForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*model.Customer, error)

	// ExistsByEmailIgnoreCase reports whether a customer with the given email
	// exists, ignoring case. A non-zero excludeID leaves that row out.
	ExistsByEmailIgnoreCase(ctx context.Context, tx pgx.Tx, email string, excludeID int64) (bool, error)

	// Insert persists a new customer, assigning its ID and creation timestamp.
	Insert(ctx context.Context, tx pgx.Tx, customer *model.Customer) error

	// Update overwrites an existing customer's mutable fields.
	Update(ctx context.Context, tx pgx.Tx, customer *model.Customer) error

	// Delete removes a customer by ID.
	Delete(ctx context.Context, tx pgx.Tx, id int64) error
}
