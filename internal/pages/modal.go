package pages

import (
	"fmt"

	"github.com/playwright-community/playwright-go"

	"github.com/adyen/storefront-e2e/internal/config"
	"github.com/adyen/storefront-e2e/internal/scrape"
)

// AddToCartModal is the confirmation shown over the product page after adding
type AddToCartModal struct {
	Base
	title          playwright.Locator
	continueButton playwright.Locator
	checkoutLink   playwright.Locator
	cartSummary    playwright.Locator
	cartTotal      playwright.Locator
}

// NewAddToCartModal creates the modal page object
func NewAddToCartModal(page playwright.Page, cfg *config.TestConfig) *AddToCartModal {
	base := NewBase(page, cfg)
	return &AddToCartModal{
		Base:  base,
		title: base.frame.Locator("text=" + addedToCartText),
		// has-text matches case-insensitively, covering the upper-case mobile labels
		continueButton: base.frame.Locator(`button:has-text("Continue shopping")`),
		checkoutLink:   base.frame.Locator(`a:has-text("Proceed to checkout")`),
		cartSummary:    base.frame.Locator(`text=/There \w+ \d+ items? in your cart/`),
		cartTotal:      base.frame.Locator(`text=/Total.*€\d+\.\d+/`),
	}
}

// Title returns the locator of the success message
func (m *AddToCartModal) Title() playwright.Locator {
	return m.title
}

// IsVisible reports whether the modal is shown, waiting briefly for it
func (m *AddToCartModal) IsVisible() (bool, error) {
	return m.probeVisible(m.title, m.cfg.Timeouts.ShortWait*5)
}

// ContinueShopping dismisses the modal and stays on the storefront
func (m *AddToCartModal) ContinueShopping() (*Home, error) {
	if err := m.waitVisible(m.title, m.cfg.Timeouts.Modal); err != nil {
		return nil, fmt.Errorf("modal not visible: %w", err)
	}
	if err := m.continueButton.Click(); err != nil {
		return nil, fmt.Errorf("failed to click continue shopping: %w", err)
	}
	if err := m.waitHidden(m.title, m.cfg.Timeouts.ElementVisible); err != nil {
		return nil, fmt.Errorf("modal did not close: %w", err)
	}
	return NewHome(m.page, m.cfg), nil
}

// ProceedToCheckout follows the modal's checkout link to the cart page
func (m *AddToCartModal) ProceedToCheckout() (*Cart, error) {
	if err := m.waitVisible(m.title, m.cfg.Timeouts.Modal); err != nil {
		return nil, fmt.Errorf("modal not visible: %w", err)
	}
	if err := m.checkoutLink.Click(); err != nil {
		return nil, fmt.Errorf("failed to click proceed to checkout: %w", err)
	}

	m.settle(m.cfg.Timeouts.Settle)

	// The modal is usually gone with the navigation already
	_ = m.waitHidden(m.title, m.cfg.Timeouts.ShortWait*5)

	return NewCart(m.page, m.cfg), nil
}

// ItemCount returns the cart item count from the modal summary, "0" if unreadable
func (m *AddToCartModal) ItemCount() string {
	return scrape.ItemCount(textOrEmpty(m.cartSummary, m.cfg.Timeouts.ShortWait))
}

// Total returns the cart total from the modal, "0" if unreadable
func (m *AddToCartModal) Total() string {
	return scrape.EuroAmount(textOrEmpty(m.cartTotal, m.cfg.Timeouts.ShortWait))
}
