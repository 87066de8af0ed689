package models

import (
	"errors"
	"fmt"
)

// MaxLineQuantity is the most units a single cart line can hold
const MaxLineQuantity = 999

var (
	// ErrInvalidQuantity is returned when adding zero or fewer items
	ErrInvalidQuantity = errors.New("quantity must be positive")
	// ErrQuantityTooLarge is returned when a line would exceed MaxLineQuantity
	ErrQuantityTooLarge = fmt.Errorf("quantity must not exceed %d", MaxLineQuantity)
)

// CartLine is one product in the cart. Adding the same product again
// increases the quantity instead of creating a second line.
type CartLine struct {
	Product  Product
	Quantity int
}

// Subtotal returns the line price in cents
func (l CartLine) Subtotal() int64 {
	return l.Product.Price * int64(l.Quantity)
}

// Cart holds a visitor's lines in insertion order
type Cart struct {
	Lines []CartLine
}

// Add puts quantity units of product in the cart, merging with an existing
// line. The cart is unchanged when the merged line would exceed MaxLineQuantity.
func (c *Cart) Add(product Product, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if quantity > MaxLineQuantity {
		return ErrQuantityTooLarge
	}
	for i := range c.Lines {
		if c.Lines[i].Product.ID == product.ID {
			if c.Lines[i].Quantity > MaxLineQuantity-quantity {
				return ErrQuantityTooLarge
			}
			c.Lines[i].Quantity += quantity
			return nil
		}
	}
	c.Lines = append(c.Lines, CartLine{Product: product, Quantity: quantity})
	return nil
}

// SetQuantity overwrites a line's quantity; zero or less removes the line and
// anything above MaxLineQuantity is clamped. It reports whether the product
// was in the cart.
func (c *Cart) SetQuantity(productID, quantity int) bool {
	quantity = min(quantity, MaxLineQuantity)
	for i := range c.Lines {
		if c.Lines[i].Product.ID != productID {
			continue
		}
		if quantity <= 0 {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
		} else {
			c.Lines[i].Quantity = quantity
		}
		return true
	}
	return false
}

// Remove deletes the line for productID and reports whether it existed
func (c *Cart) Remove(productID int) bool {
	return c.SetQuantity(productID, 0)
}

// ItemCount returns the number of units across all lines
func (c *Cart) ItemCount() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

// Total returns the cart total in cents. Shipping is free.
func (c *Cart) Total() int64 {
	var total int64
	for _, l := range c.Lines {
		total += l.Subtotal()
	}
	return total
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.Lines = nil
}
