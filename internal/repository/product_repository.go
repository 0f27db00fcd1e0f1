package repository

import (
	"context"
	"fmt"

	"catalog-api/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *productRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

const productColumns = `
	p.product_id, p.product_name, p.price, p.in_stock,
	p.category_id, c.category_name, p.created_at
`

// GetAll retrieves all products with their category names.
func (r *productRepository) GetAll(ctx context.Context) ([]model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products p
		JOIN categories c ON c.category_id = p.category_id
		ORDER BY p.product_id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows, r.logger)
}

// GetByCategoryID retrieves the products of one category.
func (r *productRepository) GetByCategoryID(ctx context.Context, categoryID int64) ([]model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products p
		JOIN categories c ON c.category_id = p.category_id
		WHERE p.category_id = $1
		ORDER BY p.product_id
	`

	rows, err := r.pool.Query(ctx, query, categoryID)
	if err != nil {
		r.logger.Error().Err(err).Int64("category_id", categoryID).Msg("failed to query products by category")
		return nil, fmt.Errorf("failed to query products by category: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows, r.logger)
}

// GetByID retrieves a single product by its ID.
func (r *productRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products p
		JOIN categories c ON c.category_id = p.category_id
		WHERE p.product_id = $1
	`

	var p model.Product
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Price, &p.InStock, &p.CategoryID, &p.CategoryName, &p.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Int64("product_id", id).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return &p, nil
}

// GetForUpdate retrieves a product within the transaction, locking the row.
func (r *productRepository) GetForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products p
		JOIN categories c ON c.category_id = p.category_id
		WHERE p.product_id = $1
		FOR UPDATE OF p
	`

	var p model.Product
	err := tx.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Price, &p.InStock, &p.CategoryID, &p.CategoryName, &p.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Int64("product_id", id).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to query product for update")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return &p, nil
}

// CountByCategoryID counts the products referencing a category.
func (r *productRepository) CountByCategoryID(ctx context.Context, tx pgx.Tx, categoryID int64) (int64, error) {
	query := `SELECT COUNT(*) FROM products WHERE category_id = $1`

	var count int64
	if err := tx.QueryRow(ctx, query, categoryID).Scan(&count); err != nil {
		r.logger.Error().Err(err).Int64("category_id", categoryID).Msg("failed to count products by category")
		return 0, fmt.Errorf("failed to count products by category: %w", err)
	}

	return count, nil
}

// Insert persists a new product, assigning its ID and creation timestamp.
func (r *productRepository) Insert(ctx context.Context, tx pgx.Tx, product *model.Product) error {
	query := `
		INSERT INTO products (product_name, price, in_stock, category_id)
		VALUES ($1, $2, $3, $4)
		RETURNING product_id, created_at
	`

	err := tx.QueryRow(ctx, query, product.Name, product.Price, product.InStock, product.CategoryID).
		Scan(&product.ID, &product.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("name", product.Name).Msg("failed to insert product")
		return fmt.Errorf("failed to insert product: %w", err)
	}

	r.logger.Debug().Int64("product_id", product.ID).Msg("product inserted")

	return nil
}

// Update overwrites an existing product's mutable fields.
func (r *productRepository) Update(ctx context.Context, tx pgx.Tx, product *model.Product) error {
	query := `
		UPDATE products
		SET product_name = $2, price = $3, in_stock = $4, category_id = $5
		WHERE product_id = $1
	`

	_, err := tx.Exec(ctx, query, product.ID, product.Name, product.Price, product.InStock, product.CategoryID)
	if err != nil {
		r.logger.Error().Err(err).Int64("product_id", product.ID).Msg("failed to update product")
		return fmt.Errorf("failed to update product: %w", err)
	}

	return nil
}

// Delete removes a product by ID.
func (r *productRepository) Delete(ctx context.Context, tx pgx.Tx, id int64) error {
	query := `DELETE FROM products WHERE product_id = $1`

	_, err := tx.Exec(ctx, query, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to delete product")
		return fmt.Errorf("failed to delete product: %w", err)
	}

	return nil
}

// scanProducts drains rows into a product slice.
func scanProducts(rows pgx.Rows, logger zerolog.Logger) ([]model.Product, error) {
	var products []model.Product
	for rows.Next() {
		var p model.Product
		err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.InStock, &p.CategoryID, &p.CategoryName, &p.CreatedAt)
		if err != nil {
			logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}
