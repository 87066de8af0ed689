package pages

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/playwright-community/playwright-go"

	"github.com/adyen/storefront-e2e/internal/config"
)

const addedToCartText = "Product successfully added to your shopping cart"

// Product is a single product's detail page
type Product struct {
	Base
	addToCartButton playwright.Locator
	quantityInput   playwright.Locator
	title           playwright.Locator
	price           playwright.Locator
}

// NewProduct creates the product page object
func NewProduct(page playwright.Page, cfg *config.TestConfig) *Product {
	base := NewBase(page, cfg)
	return &Product{
		Base:            base,
		addToCartButton: base.frame.Locator(`button:has-text("Add to cart")`),
		quantityInput:   base.frame.Locator(`input[type="number"]`).First(),
		title:           base.frame.Locator("h1").First(),
		price:           base.frame.Locator(`text=/€\d+\.\d+/`).First(),
	}
}

// AddToCart adds the product and waits for the confirmation modal
func (p *Product) AddToCart() (*AddToCartModal, error) {
	if err := p.addToCartButton.Click(); err != nil {
		return nil, fmt.Errorf("failed to click add to cart: %w", err)
	}

	p.settle(p.cfg.Timeouts.Settle)

	modal := NewAddToCartModal(p.page, p.cfg)
	if err := p.waitVisible(modal.title, p.cfg.Timeouts.Modal); err != nil {
		return nil, fmt.Errorf("add to cart confirmation did not appear: %w", err)
	}
	return modal, nil
}

// SetQuantity overwrites the quantity field; the store enforces its own limits
func (p *Product) SetQuantity(quantity int) error {
	if err := p.quantityInput.Fill(strconv.Itoa(quantity)); err != nil {
		return fmt.Errorf("failed to set quantity: %w", err)
	}
	return nil
}

// Title returns the product name, empty when it cannot be read
func (p *Product) Title() string {
	return strings.TrimSpace(textOrEmpty(p.title, p.cfg.Timeouts.ShortWait))
}

// Price returns the displayed price text, empty when it cannot be read
func (p *Product) Price() string {
	return strings.TrimSpace(textOrEmpty(p.price, p.cfg.Timeouts.ShortWait))
}
