package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container and connection pool.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	// Create PostgreSQL container
	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	// Get connection string
	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	// Create connection pool
	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		t.Fatalf("failed to parse connection string: %v", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	// Create schema
	createSchema(t, pool)

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// createSchema creates the database schema for testing. It mirrors
// scripts/schema.sql.
func createSchema(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	schema := `
		CREATE TABLE IF NOT EXISTS categories (
			category_id   BIGSERIAL PRIMARY KEY,
			category_name VARCHAR(255) NOT NULL,
			description   VARCHAR(255)
		);

		CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_name_lower
			ON categories (LOWER(category_name));

		CREATE TABLE IF NOT EXISTS products (
			product_id   BIGSERIAL PRIMARY KEY,
			category_id  BIGINT NOT NULL REFERENCES categories (category_id),
			product_name VARCHAR(255) NOT NULL,
			price        DECIMAL(16, 2) NOT NULL CHECK (price > 0),
			in_stock     INTEGER NOT NULL CHECK (in_stock >= 0),
			created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
		);

		CREATE INDEX IF NOT EXISTS idx_products_category_id
			ON products (category_id);

		CREATE TABLE IF NOT EXISTS customers (
			customer_id BIGSERIAL PRIMARY KEY,
			first_name  VARCHAR(255) NOT NULL,
			last_name   VARCHAR(255) NOT NULL,
			email       VARCHAR(255) NOT NULL,
			city        VARCHAR(255),
			country     VARCHAR(255),
			created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		);

		CREATE UNIQUE INDEX IF NOT EXISTS idx_customers_email_lower
			ON customers (LOWER(email));
	`

	_, err := pool.Exec(ctx, schema)
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
}

// SeedCategory inserts a category and returns its generated id.
func SeedCategory(t *testing.T, pool *pgxpool.Pool, name string) int64 {
	t.Helper()

	var id int64
	err := pool.QueryRow(context.Background(),
		"INSERT INTO categories (category_name) VALUES ($1) RETURNING category_id",
		name,
	).Scan(&id)
	if err != nil {
		t.Fatalf("failed to seed category %s: %v", name, err)
	}
	return id
}

// SeedProduct inserts a product and returns its generated id.
func SeedProduct(t *testing.T, pool *pgxpool.Pool, name string, price string, inStock int, categoryID int64) int64 {
	t.Helper()

	var id int64
	err := pool.QueryRow(context.Background(),
		"INSERT INTO products (product_name, price, in_stock, category_id) VALUES ($1, $2, $3, $4) RETURNING product_id",
		name, price, inStock, categoryID,
	).Scan(&id)
	if err != nil {
		t.Fatalf("failed to seed product %s: %v", name, err)
	}
	return id
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"products", "categories", "customers"}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}
