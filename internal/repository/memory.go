package repository

import (
	"fmt"
	"sync"
	"time"

	"github.com/adyen/storefront-e2e/internal/models"
)

// MemoryOrderRepository keeps orders in process memory. It is the default
// store when no database is configured.
type MemoryOrderRepository struct {
	mu     sync.RWMutex
	orders map[string]*models.Order // by ID
	refs   map[string]string        // reference -> ID
}

// NewMemoryOrderRepository creates an empty in-memory store
func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{
		orders: make(map[string]*models.Order),
		refs:   make(map[string]string),
	}
}

// CreateOrder stores a copy of the order
func (r *MemoryOrderRepository) CreateOrder(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[order.ID]; ok {
		return fmt.Errorf("failed to create order: duplicate id %s", order.ID)
	}
	if _, ok := r.refs[order.Reference]; ok {
		return fmt.Errorf("failed to create order: duplicate reference %s", order.Reference)
	}

	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now

	r.orders[order.ID] = cloneOrder(order)
	r.refs[order.Reference] = order.ID
	return nil
}

// GetOrderByID returns a copy of the stored order
func (r *MemoryOrderRepository) GetOrderByID(id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, models.ErrOrderNotFound
	}
	return cloneOrder(order), nil
}

// GetOrderByReference returns a copy of the stored order
func (r *MemoryOrderRepository) GetOrderByReference(reference string) (*models.Order, error) {
	r.mu.RLock()
	id, ok := r.refs[reference]
	r.mu.RUnlock()
	if !ok {
		return nil, models.ErrOrderNotFound
	}
	return r.GetOrderByID(id)
}

// UpdateOrderStatus sets the stored order's status
func (r *MemoryOrderRepository) UpdateOrderStatus(reference string, status models.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.refs[reference]
	if !ok {
		return models.ErrOrderNotFound
	}
	r.orders[id].Status = status
	r.orders[id].UpdatedAt = time.Now()
	return nil
}

func cloneOrder(o *models.Order) *models.Order {
	c := *o
	c.Lines = append([]models.OrderLine(nil), o.Lines...)
	return &c
}
