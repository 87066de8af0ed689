package services

import (
	"fmt"
	"log"

	"github.com/adyen/storefront-e2e/internal/models"
)

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	CreateOrder(order *models.Order) error
	GetOrderByID(id string) (*models.Order, error)
	GetOrderByReference(reference string) (*models.Order, error)
	UpdateOrderStatus(reference string, status models.OrderStatus) error
}

// OrderService handles order business logic
type OrderService interface {
	PlaceOrder(cart *models.Cart, progress *models.CheckoutProgress) (*models.Order, error)
	GetOrder(id string) (*models.Order, error)
	ConfirmPayment(reference string) (*models.Order, error)
	CancelOrder(reference string) (*models.Order, error)
}

// OrderServiceImpl implements OrderService
type OrderServiceImpl struct {
	orderRepo OrderRepository
}

// NewOrderService creates a new order service
func NewOrderService(orderRepo OrderRepository) OrderService {
	return &OrderServiceImpl{
		orderRepo: orderRepo,
	}
}

// PlaceOrder turns a completed checkout into a persisted order. Payment is by
// bank wire, so the order stays pending until ConfirmPayment.
func (s *OrderServiceImpl) PlaceOrder(cart *models.Cart, progress *models.CheckoutProgress) (*models.Order, error) {
	order, err := models.NewOrder(cart, progress)
	if err != nil {
		return nil, fmt.Errorf("invalid order: %w", err)
	}

	if err := s.orderRepo.CreateOrder(order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	log.Printf("Order %s placed: %d items, %s", order.Reference, order.ItemCount(), order.FormattedAmount())
	return order, nil
}

// GetOrder retrieves an order by its ID
func (s *OrderServiceImpl) GetOrder(id string) (*models.Order, error) {
	order, err := s.orderRepo.GetOrderByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return order, nil
}

// ConfirmPayment marks a pending order as paid
func (s *OrderServiceImpl) ConfirmPayment(reference string) (*models.Order, error) {
	return s.transition(reference, (*models.Order).Confirm)
}

// CancelOrder cancels an order whose payment has not been received
func (s *OrderServiceImpl) CancelOrder(reference string) (*models.Order, error) {
	return s.transition(reference, (*models.Order).Cancel)
}

func (s *OrderServiceImpl) transition(reference string, apply func(*models.Order) error) (*models.Order, error) {
	order, err := s.orderRepo.GetOrderByReference(reference)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if err := apply(order); err != nil {
		return nil, err
	}

	if err := s.orderRepo.UpdateOrderStatus(reference, order.Status); err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	log.Printf("Order %s is now %s", reference, order.Status)
	return order, nil
}
