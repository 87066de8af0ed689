package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/adyen/storefront-e2e/internal/models"
)

// OrderRepository stores orders in PostgreSQL
type OrderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates an order repository on an open connection pool
func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{
		db: db,
	}
}

// CreateOrder inserts the order and its lines in one transaction
func (r *OrderRepository) CreateOrder(order *models.Order) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	_, err = tx.Exec(`
		INSERT INTO orders (id, reference, amount, currency, status, email, first_name, last_name,
		                    address1, city, postcode, country_id, state_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`,
		order.ID,
		order.Reference,
		order.Amount,
		order.Currency,
		order.Status,
		order.Email,
		order.FirstName,
		order.LastName,
		order.Address.Address1,
		order.Address.City,
		order.Address.Postcode,
		order.Address.CountryID,
		order.Address.StateID,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	for i, line := range order.Lines {
		_, err := tx.Exec(`
			INSERT INTO order_lines (order_id, position, product_id, product_name, unit_price, quantity)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, order.ID, i, line.ProductID, line.ProductName, line.UnitPrice, line.Quantity)
		if err != nil {
			return fmt.Errorf("failed to create order line %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit order: %w", err)
	}

	order.CreatedAt = now
	order.UpdatedAt = now
	return nil
}

// GetOrderByID retrieves an order with its lines. An id that is not a UUID
// cannot match any order.
func (r *OrderRepository) GetOrderByID(id string) (*models.Order, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, models.ErrOrderNotFound
	}
	return r.getOrder("id", id)
}

// GetOrderByReference retrieves an order by its reference
func (r *OrderRepository) GetOrderByReference(reference string) (*models.Order, error) {
	return r.getOrder("reference", reference)
}

func (r *OrderRepository) getOrder(column, value string) (*models.Order, error) {
	query := fmt.Sprintf(`
		SELECT id, reference, amount, currency, status, email, first_name, last_name,
		       address1, city, postcode, country_id, state_id, created_at, updated_at
		FROM orders
		WHERE %s = $1
	`, column)

	order := &models.Order{}
	err := r.db.QueryRow(query, value).Scan(
		&order.ID,
		&order.Reference,
		&order.Amount,
		&order.Currency,
		&order.Status,
		&order.Email,
		&order.FirstName,
		&order.LastName,
		&order.Address.Address1,
		&order.Address.City,
		&order.Address.Postcode,
		&order.Address.CountryID,
		&order.Address.StateID,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	lines, err := r.getLines(order.ID)
	if err != nil {
		return nil, err
	}
	order.Lines = lines

	return order, nil
}

func (r *OrderRepository) getLines(orderID string) ([]models.OrderLine, error) {
	rows, err := r.db.Query(`
		SELECT product_id, product_name, unit_price, quantity
		FROM order_lines
		WHERE order_id = $1
		ORDER BY position
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order lines: %w", err)
	}
	defer rows.Close()

	var lines []models.OrderLine
	for rows.Next() {
		var l models.OrderLine
		if err := rows.Scan(&l.ProductID, &l.ProductName, &l.UnitPrice, &l.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan order line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// UpdateOrderStatus updates the status of an order
func (r *OrderRepository) UpdateOrderStatus(reference string, status models.OrderStatus) error {
	result, err := r.db.Exec(`
		UPDATE orders
		SET status = $1, updated_at = $2
		WHERE reference = $3
	`, status, time.Now(), reference)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return models.ErrOrderNotFound
	}

	return nil
}
