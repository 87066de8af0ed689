package database

import (
	"database/sql"
	"fmt"
	"log"
)

// Schema creates the order tables. It is idempotent.
const Schema = `
CREATE TABLE IF NOT EXISTS orders (
	id UUID PRIMARY KEY,
	reference VARCHAR(9) UNIQUE NOT NULL,
	amount BIGINT NOT NULL,
	currency VARCHAR(3) NOT NULL,
	status VARCHAR(50) NOT NULL,
	email VARCHAR(255) NOT NULL,
	first_name VARCHAR(255) NOT NULL,
	last_name VARCHAR(255) NOT NULL,
	address1 VARCHAR(255) NOT NULL,
	city VARCHAR(255) NOT NULL,
	postcode VARCHAR(32) NOT NULL,
	country_id INTEGER NOT NULL,
	state_id INTEGER NOT NULL DEFAULT 0,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS order_lines (
	order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
	position INTEGER NOT NULL,
	product_id INTEGER NOT NULL,
	product_name VARCHAR(255) NOT NULL,
	unit_price BIGINT NOT NULL,
	quantity INTEGER NOT NULL,
	PRIMARY KEY (order_id, position)
);

CREATE INDEX IF NOT EXISTS idx_orders_reference ON orders(reference);
CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status);
`

// RunMigrations creates the order tables
func RunMigrations(db *sql.DB) error {
	if db == nil {
		return fmt.Errorf("database connection not initialized")
	}

	if _, err := db.Exec(Schema); err != nil {
		return fmt.Errorf("failed to create order tables: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}
