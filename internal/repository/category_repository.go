package repository

import (
	"context"
	"fmt"

	"catalog-api/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// categoryRepository implements the CategoryRepository interface using PostgreSQL.
type categoryRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCategoryRepository creates a new PostgreSQL-backed category repository.
func NewCategoryRepository(pool *pgxpool.Pool, logger zerolog.Logger) CategoryRepository {
	return &categoryRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "category").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *categoryRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// GetAll retrieves all categories.
func (r *categoryRepository) GetAll(ctx context.Context) ([]model.Category, error) {
	query := `
		SELECT category_id, category_name, description
		FROM categories
		ORDER BY category_id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query categories")
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan category row")
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating category rows")
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

// GetByID retrieves a single category by its ID.
func (r *categoryRepository) GetByID(ctx context.Context, id int64) (*model.Category, error) {
	query := `
		SELECT category_id, category_name, description
		FROM categories
		WHERE category_id = $1
	`

	var c model.Category
	err := r.pool.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Description)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Int64("category_id", id).Msg("category not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("category_id", id).Msg("failed to query category")
		return nil, fmt.Errorf("failed to query category: %w", err)
	}

	return &c, nil
}

// GetForUpdate retrieves a category within the transaction, locking the row.
func (r *categoryRepository) GetForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*model.Category, error) {
	query := `
		SELECT category_id, category_name, description
		FROM categories
		WHERE category_id = $1
		FOR UPDATE
	`

	var c model.Category
	err := tx.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Description)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Int64("category_id", id).Msg("category not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("category_id", id).Msg("failed to query category for update")
		return nil, fmt.Errorf("failed to query category: %w", err)
	}

	return &c, nil
}

// ExistsByNameIgnoreCase reports whether a category named name exists, ignoring case.
func (r *categoryRepository) ExistsByNameIgnoreCase(ctx context.Context, tx pgx.Tx, name string, excludeID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM categories
			WHERE LOWER(category_name) = LOWER($1)
			  AND category_id <> $2
		)
	`

	var exists bool
	if err := tx.QueryRow(ctx, query, name, excludeID).Scan(&exists); err != nil {
		r.logger.Error().Err(err).Str("name", name).Msg("failed to check category name existence")
		return false, fmt.Errorf("failed to check category name existence: %w", err)
	}

	return exists, nil
}

// Insert persists a new category and assigns its ID.
func (r *categoryRepository) Insert(ctx context.Context, tx pgx.Tx, category *model.Category) error {
	query := `
		INSERT INTO categories (category_name, description)
		VALUES ($1, $2)
		RETURNING category_id
	`

	err := tx.QueryRow(ctx, query, category.Name, category.Description).Scan(&category.ID)
	if err != nil {
		r.logger.Error().Err(err).Str("name", category.Name).Msg("failed to insert category")
		return fmt.Errorf("failed to insert category: %w", err)
	}

	r.logger.Debug().Int64("category_id", category.ID).Msg("category inserted")

	return nil
}

// Update overwrites an existing category's mutable fields.
func (r *categoryRepository) Update(ctx context.Context, tx pgx.Tx, category *model.Category) error {
	query := `
		UPDATE categories
		SET category_name = $2, description = $3
		WHERE category_id = $1
	`

	_, err := tx.Exec(ctx, query, category.ID, category.Name, category.Description)
	if err != nil {
		r.logger.Error().Err(err).Int64("category_id", category.ID).Msg("failed to update category")
		return fmt.Errorf("failed to update category: %w", err)
	}

	return nil
}

// Delete removes a category by ID.
func (r *categoryRepository) Delete(ctx context.Context, tx pgx.Tx, id int64) error {
	query := `DELETE FROM categories WHERE category_id = $1`

	_, err := tx.Exec(ctx, query, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("category_id", id).Msg("failed to delete category")
		return fmt.Errorf("failed to delete category: %w", err)
	}

	return nil
}
