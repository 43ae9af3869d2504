package database

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/storeqa/storefront-suite/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS products (
	id BIGINT PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	brand VARCHAR(255) NOT NULL DEFAULT '',
	code VARCHAR(64) NOT NULL,
	reward_points INTEGER NOT NULL DEFAULT 0,
	availability VARCHAR(64) NOT NULL,
	price_cents BIGINT NOT NULL,
	ex_tax_cents BIGINT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_products_name ON products(LOWER(name));

CREATE TABLE IF NOT EXISTS product_images (
	product_id BIGINT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
	position INTEGER NOT NULL,
	path VARCHAR(512) NOT NULL,
	PRIMARY KEY (product_id, position)
);

CREATE TABLE IF NOT EXISTS customers (
	id UUID PRIMARY KEY,
	email VARCHAR(255) UNIQUE NOT NULL,
	first_name VARCHAR(255) NOT NULL DEFAULT '',
	last_name VARCHAR(255) NOT NULL DEFAULT '',
	password_hash BYTEA NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS api_users (
	id BIGSERIAL PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	email VARCHAR(255) UNIQUE NOT NULL,
	gender VARCHAR(16) NOT NULL,
	status VARCHAR(16) NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// RunMigrations creates the storefront tables
func RunMigrations(db *sql.DB) error {
	if db == nil {
		return fmt.Errorf("database connection not initialized")
	}

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create storefront tables: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// Seed inserts products that are not present yet, together with their images
func Seed(db *sql.DB, products []models.Product) error {
	for i := range products {
		if err := products[i].Validate(); err != nil {
			return fmt.Errorf("invalid seed product %d: %w", products[i].ID, err)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	inserted := 0
	for _, p := range products {
		result, err := tx.Exec(`
			INSERT INTO products (id, name, brand, code, reward_points, availability, price_cents, ex_tax_cents)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (id) DO NOTHING`,
			p.ID, p.Name, p.Brand, p.Code, p.RewardPoints, p.Availability, p.PriceCents, p.ExTaxCents)
		if err != nil {
			return fmt.Errorf("failed to seed product %q: %w", p.Name, err)
		}
		if n, _ := result.RowsAffected(); n == 0 {
			continue
		}
		inserted++

		for i, path := range p.Images {
			if _, err := tx.Exec(`INSERT INTO product_images (product_id, position, path) VALUES ($1, $2, $3)`,
				p.ID, i, path); err != nil {
				return fmt.Errorf("failed to seed image for %q: %w", p.Name, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed: %w", err)
	}
	log.Printf("Seeded %d products", inserted)
	return nil
}
