package pages

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/playwright-community/playwright-go"

	"github.com/adyen/storefront-e2e/internal/config"
	"github.com/adyen/storefront-e2e/internal/scrape"
)

// CartCountError reports a cart with fewer line items than required
type CartCountError struct {
	Want int
	Got  int
}

func (e *CartCountError) Error() string {
	return fmt.Sprintf("expected at least %d product(s) in cart, but found %d", e.Want, e.Got)
}

// Cart is the shopping cart page
type Cart struct {
	Base
	title        playwright.Locator
	items        playwright.Locator
	checkoutLink playwright.Locator
	cartLink     playwright.Locator
	totalPrice   playwright.Locator
	body         playwright.Locator
}

// NewCart creates the cart page object
func NewCart(page playwright.Page, cfg *config.TestConfig) *Cart {
	base := NewBase(page, cfg)
	return &Cart{
		Base:  base,
		title: base.frame.Locator("h1"),
		// Only list items holding a quantity input are cart lines
		items: base.frame.
			Locator(".cart-overview li, .cart-items li, ul.cart-items > li").
			Filter(playwright.LocatorFilterOptions{
				Has: base.frame.Locator(`input[type="number"]`),
			}),
		checkoutLink: base.frame.Locator(`a:has-text("Proceed to checkout")`),
		cartLink:     base.frame.Locator(`a[href*="cart"]`).First(),
		totalPrice:   base.frame.Locator(`text=/Total.*€\d+\.\d+/`),
		body:         base.frame.Locator("body"),
	}
}

// Navigate opens the storefront and follows the cart link
func (c *Cart) Navigate() error {
	if err := c.Base.Navigate(); err != nil {
		return err
	}
	if err := c.waitVisible(c.cartLink, c.cfg.Timeouts.ElementVisible); err != nil {
		return fmt.Errorf("cart link not visible: %w", err)
	}
	if err := c.cartLink.Click(); err != nil {
		return fmt.Errorf("failed to click cart link: %w", err)
	}

	c.settle(c.cfg.Timeouts.ShortWait)

	if err := c.waitVisible(c.title, c.cfg.Timeouts.ElementVisible); err != nil {
		return fmt.Errorf("cart page did not load: %w", err)
	}
	return nil
}

// Heading returns the locator of the page heading
func (c *Cart) Heading() playwright.Locator {
	return c.title
}

// ProductCount returns the number of cart lines
func (c *Cart) ProductCount() (int, error) {
	return c.items.Count()
}

// VerifyLoaded waits for the cart and fails with *CartCountError when it holds
// fewer than minProducts lines
func (c *Cart) VerifyLoaded(minProducts int) error {
	if err := c.waitVisible(c.title, c.cfg.Timeouts.ElementVisible); err != nil {
		return fmt.Errorf("cart page did not load: %w", err)
	}
	count, err := c.ProductCount()
	if err != nil {
		return fmt.Errorf("failed to count cart lines: %w", err)
	}
	if count < minProducts {
		return &CartCountError{Want: minProducts, Got: count}
	}
	return nil
}

// ProductNames returns the name of each cart line in display order
func (c *Cart) ProductNames() ([]string, error) {
	lines, err := c.items.All()
	if err != nil {
		return nil, fmt.Errorf("failed to list cart lines: %w", err)
	}

	var names []string
	for _, line := range lines {
		name, err := line.Locator("a").First().TextContent()
		if err != nil {
			return nil, fmt.Errorf("failed to read cart line name: %w", err)
		}
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

// Quantity returns the quantity input value of the line at index
func (c *Cart) Quantity(index int) (string, error) {
	return c.quantityInput(index).InputValue()
}

// UpdateQuantity sets the quantity of the line at index and submits it
func (c *Cart) UpdateQuantity(index, quantity int) error {
	input := c.quantityInput(index)
	if err := input.Fill(strconv.Itoa(quantity)); err != nil {
		return fmt.Errorf("failed to fill quantity of line %d: %w", index, err)
	}
	// Enter is what triggers the store's cart update
	if err := input.Press("Enter"); err != nil {
		return fmt.Errorf("failed to submit quantity of line %d: %w", index, err)
	}

	c.settle(c.cfg.Timeouts.CartUpdate)
	return nil
}

// RemoveProduct deletes the line at index. Re-query the cart for the new count.
func (c *Cart) RemoveProduct(index int) error {
	deleteButton := c.items.Nth(index).Locator(`a[href*="delete"], .remove-from-cart`).First()
	if err := deleteButton.Click(); err != nil {
		return fmt.Errorf("failed to remove line %d: %w", index, err)
	}

	c.settle(c.cfg.Timeouts.CartUpdate)
	return nil
}

// ProceedToCheckout follows the cart's checkout link
func (c *Cart) ProceedToCheckout() (*Checkout, error) {
	if err := c.checkoutLink.First().Click(); err != nil {
		return nil, fmt.Errorf("failed to click proceed to checkout: %w", err)
	}

	c.settle(c.cfg.Timeouts.Settle)

	return NewCheckout(c.page, c.cfg), nil
}

// TotalPrice returns the cart total, "0" if unreadable
func (c *Cart) TotalPrice() string {
	return scrape.EuroAmount(textOrEmpty(c.totalPrice, c.cfg.Timeouts.ShortWait))
}

// CheckoutButtonVisible reports whether the checkout link is displayed
func (c *Cart) CheckoutButtonVisible() (bool, error) {
	return c.checkoutLink.First().IsVisible()
}

// BodyScrollWidth returns the content frame's document width in CSS pixels
func (c *Cart) BodyScrollWidth() (int, error) {
	v, err := c.body.Evaluate("el => el.scrollWidth", nil)
	if err != nil {
		return 0, fmt.Errorf("failed to measure body width: %w", err)
	}
	switch w := v.(type) {
	case int:
		return w, nil
	case float64:
		return int(w), nil
	default:
		return 0, fmt.Errorf("unexpected scrollWidth type %T", v)
	}
}

func (c *Cart) quantityInput(index int) playwright.Locator {
	return c.items.Nth(index).Locator(`input[type="number"]`)
}
