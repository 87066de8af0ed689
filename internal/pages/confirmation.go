package pages

import (
	"github.com/playwright-community/playwright-go"

	"github.com/adyen/storefront-e2e/internal/config"
	"github.com/adyen/storefront-e2e/internal/scrape"
)

// Confirmation is what a scenario asserts on after placing an order
type Confirmation struct {
	IsConfirmed bool
	OrderRef    string
}

// OrderConfirmation is the page shown after an order is placed
type OrderConfirmation struct {
	Base
	heading    playwright.Locator
	reference  playwright.Locator
	orderTotal playwright.Locator
}

// NewOrderConfirmation creates the confirmation page object
func NewOrderConfirmation(page playwright.Page, cfg *config.TestConfig) *OrderConfirmation {
	base := NewBase(page, cfg)
	return &OrderConfirmation{
		Base:       base,
		heading:    base.frame.Locator(`h3:has-text("Your order is confirmed")`),
		reference:  base.frame.Locator(`text=/Order reference.*#[A-Z0-9]+/`),
		orderTotal: base.frame.Locator(`text=/Total.*€\d+\.\d+/`),
	}
}

// IsConfirmationVisible waits briefly for the confirmation heading.
// A timeout yields false with a nil error.
func (o *OrderConfirmation) IsConfirmationVisible() (bool, error) {
	return o.probeVisible(o.heading, o.cfg.Timeouts.ShortWait*5)
}

// OrderReference returns the order reference without '#', empty if unreadable
func (o *OrderConfirmation) OrderReference() string {
	return scrape.OrderReference(textOrEmpty(o.reference, o.cfg.Timeouts.ShortWait))
}

// OrderTotal returns the order total, "0" if unreadable
func (o *OrderConfirmation) OrderTotal() string {
	return scrape.EuroAmount(textOrEmpty(o.orderTotal, o.cfg.Timeouts.ShortWait))
}

// Verify collects the confirmation state and reference. It does not assert.
func (o *OrderConfirmation) Verify() (Confirmation, error) {
	confirmed, err := o.IsConfirmationVisible()
	if err != nil {
		return Confirmation{}, err
	}
	return Confirmation{
		IsConfirmed: confirmed,
		OrderRef:    o.OrderReference(),
	}, nil
}
