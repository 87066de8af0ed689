package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// OrderStatus represents valid order states
type OrderStatus string

// Order statuses
const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// ReferenceLength is the length of the uppercase order reference shown on
// the confirmation page
const ReferenceLength = 9

// OrderLine is a product snapshot taken when the order is placed
type OrderLine struct {
	ProductID   int
	ProductName string
	UnitPrice   int64
	Quantity    int
}

// Order represents a placed order
type Order struct {
	ID        string
	Reference string
	Amount    int64
	Currency  string
	Status    OrderStatus
	Email     string
	FirstName string
	LastName  string
	Address   Address
	Lines     []OrderLine
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Domain errors
var (
	ErrEmptyCart               = errors.New("cannot place an order with an empty cart")
	ErrCheckoutIncomplete      = errors.New("checkout is not complete")
	ErrInvalidStatusTransition = errors.New("invalid order status transition")
	ErrOrderNotFound           = errors.New("order not found")
)

// NewOrder creates a pending order from the cart and the customer details
// collected by checkout
func NewOrder(cart *Cart, progress *CheckoutProgress) (*Order, error) {
	if cart == nil || cart.IsEmpty() {
		return nil, ErrEmptyCart
	}
	if progress == nil || !progress.Reached(StepPlaced) {
		return nil, ErrCheckoutIncomplete
	}

	lines := make([]OrderLine, 0, len(cart.Lines))
	for _, l := range cart.Lines {
		lines = append(lines, OrderLine{
			ProductID:   l.Product.ID,
			ProductName: l.Product.Name,
			UnitPrice:   l.Product.Price,
			Quantity:    l.Quantity,
		})
	}

	id := uuid.New()
	now := time.Now()

	return &Order{
		ID:        id.String(),
		Reference: NewReference(id),
		Amount:    cart.Total(),
		Currency:  "EUR",
		Status:    OrderStatusPending,
		Email:     progress.Personal.Email,
		FirstName: progress.Personal.FirstName,
		LastName:  progress.Personal.LastName,
		Address:   progress.Address,
		Lines:     lines,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// NewReference derives a PrestaShop-style reference (nine uppercase
// letters) from an order ID
func NewReference(id uuid.UUID) string {
	ref := make([]byte, ReferenceLength)
	for i := range ref {
		ref[i] = 'A' + id[i]%26
	}
	return string(ref)
}

// Confirm marks a pending order as confirmed once its bank wire is received
func (o *Order) Confirm() error {
	if o.Status != OrderStatusPending {
		return fmt.Errorf("%w: cannot confirm order with status %s", ErrInvalidStatusTransition, o.Status)
	}

	o.Status = OrderStatusConfirmed
	o.UpdatedAt = time.Now()
	return nil
}

// Cancel marks a pending order as cancelled. Paid orders cannot be cancelled.
func (o *Order) Cancel() error {
	if o.Status != OrderStatusPending {
		return fmt.Errorf("%w: cannot cancel order with status %s", ErrInvalidStatusTransition, o.Status)
	}

	o.Status = OrderStatusCancelled
	o.UpdatedAt = time.Now()
	return nil
}

// IsPending returns true if the order is in pending status
func (o *Order) IsPending() bool {
	return o.Status == OrderStatusPending
}

// IsConfirmed returns true if the order is confirmed
func (o *Order) IsConfirmed() bool {
	return o.Status == OrderStatusConfirmed
}

// IsCancelled returns true if the order is cancelled
func (o *Order) IsCancelled() bool {
	return o.Status == OrderStatusCancelled
}

// ItemCount returns the number of units across all lines
func (o *Order) ItemCount() int {
	n := 0
	for _, l := range o.Lines {
		n += l.Quantity
	}
	return n
}

// FormattedAmount returns the total the way the storefront prints it
func (o *Order) FormattedAmount() string {
	return FormatEuro(o.Amount)
}
