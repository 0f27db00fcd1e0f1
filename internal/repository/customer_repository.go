package repository

import (
	"context"
	"fmt"

	"catalog-api/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// customerRepository implements the CustomerRepository interface using PostgreSQL.
type customerRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCustomerRepository creates a new PostgreSQL-backed customer repository.
func NewCustomerRepository(pool *pgxpool.Pool, logger zerolog.Logger) CustomerRepository {
	return &customerRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "customer").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *customerRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// GetAll retrieves all customers.
func (r *customerRepository) GetAll(ctx context.Context) ([]model.Customer, error) {
	query := `
		SELECT customer_id, first_name, last_name, email, city, country, created_at
		FROM customers
		ORDER BY customer_id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query customers")
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	var customers []model.Customer
	for rows.Next() {
		var c model.Customer
		err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.City, &c.Country, &c.CreatedAt)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan customer row")
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, c)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating customer rows")
		return nil, fmt.Errorf("error iterating customers: %w", err)
	}

	return customers, nil
}

// GetByID retrieves a single customer by its ID.
func (r *customerRepository) GetByID(ctx context.Context, id int64) (*model.Customer, error) {
	query := `
		SELECT customer_id, first_name, last_name, email, city, country, created_at
		FROM customers
		WHERE customer_id = $1
	`

	var c model.Customer
	err := r.pool.QueryRow(ctx, query, id).
		Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.City, &c.Country, &c.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Int64("customer_id", id).Msg("customer not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("customer_id", id).Msg("failed to query customer")
		return nil, fmt.Errorf("failed to query customer: %w", err)
	}

	return &c, nil
}

// GetForUpdate retrieves a customer within the transaction, locking the row.
func (r *customerRepository) GetForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*model.Customer, error) {
	query := `
		SELECT customer_id, first_name, last_name, email, city, country, created_at
		FROM customers
		WHERE customer_id = $1
		FOR UPDATE
	`

	var c model.Customer
	err := tx.QueryRow(ctx, query, id).
		Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.City, &c.Country, &c.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Int64("customer_id", id).Msg("customer not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("customer_id", id).Msg("failed to query customer for update")
		return nil, fmt.Errorf("failed to query customer: %w", err)
	}

	return &c, nil
}

// ExistsByEmailIgnoreCase reports whether a customer with the given email exists, ignoring case.
func (r *customerRepository) ExistsByEmailIgnoreCase(ctx context.Context, tx pgx.Tx, email string, excludeID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM customers
			WHERE LOWER(email) = LOWER($1)
			  AND customer_id <> $2
		)
	`

	var exists bool
	if err := tx.QueryRow(ctx, query, email, excludeID).Scan(&exists); err != nil {
		r.logger.Error().Err(err).Str("email", email).Msg("failed to check customer email existence")
		return false, fmt.Errorf("failed to check customer email existence: %w", err)
	}

	return exists, nil
}

// Insert persists a new customer, assigning its ID and creation timestamp.
func (r *customerRepository) Insert(ctx context.Context, tx pgx.Tx, customer *model.Customer) error {
	query := `
		INSERT INTO customers (first_name, last_name, email, city, country)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING customer_id, created_at
	`

	err := tx.QueryRow(ctx, query,
		customer.FirstName, customer.LastName, customer.Email, customer.City, customer.Country,
	).Scan(&customer.ID, &customer.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("email", customer.Email).Msg("failed to insert customer")
		return fmt.Errorf("failed to insert customer: %w", err)
	}

	r.logger.Debug().Int64("customer_id", customer.ID).Msg("customer inserted")

	return nil
}

// Update overwrites an existing customer's mutable fields.
func (r *customerRepository) Update(ctx context.Context, tx pgx.Tx, customer *model.Customer) error {
	query := `
		UPDATE customers
		SET first_name = $2, last_name = $3, email = $4, city = $5, country = $6
		WHERE customer_id = $1
	`

	_, err := tx.Exec(ctx, query,
		customer.ID, customer.FirstName, customer.LastName, customer.Email, customer.City, customer.Country,
	)
	if err != nil {
		r.logger.Error().Err(err).Int64("customer_id", customer.ID).Msg("failed to update customer")
		return fmt.Errorf("failed to update customer: %w", err)
	}

	return nil
}

// Delete removes a customer by ID.
func (r *customerRepository) Delete(ctx context.Context, tx pgx.Tx, id int64) error {
	query := `DELETE FROM customers WHERE customer_id = $1`

	_, err := tx.Exec(ctx, query, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("customer_id", id).Msg("failed to delete customer")
		return fmt.Errorf("failed to delete customer: %w", err)
	}

	return nil
}
