package pages

import (
	"errors"
	"fmt"
	"log"

	"github.com/playwright-community/playwright-go"

	"github.com/adyen/storefront-e2e/internal/config"
	"github.com/adyen/storefront-e2e/internal/scrape"
)

// ErrNoProducts is returned when a sequential add is asked to add nothing
var ErrNoProducts = errors.New("no products were added to cart")

// logoSelectors are tried in order when returning to the catalog
var logoSelectors = []string{
	"#_desktop_logo a",
	"#header_logo a",
	".logo a",
	`a[title="Home"]`,
	`a:has-text("Home")`,
}

// Home is the storefront catalog
type Home struct {
	Base
	cartCounter playwright.Locator
	cartIcon    playwright.Locator
	catalog     playwright.Locator
}

// NewHome creates the catalog page object
func NewHome(page playwright.Page, cfg *config.TestConfig) *Home {
	base := NewBase(page, cfg)
	return &Home{
		Base: base,
		cartCounter: base.frame.
			Locator(`a[href*="cart"], a[href*="order"], .cart, [data-target*="cart"]`).
			First(),
		cartIcon: base.frame.
			Locator(`[aria-label*="cart" i], .shopping-cart, .cart-icon`).
			First(),
		catalog: base.frame.Locator("article").First(),
	}
}

// Navigate loads the storefront and waits until the catalog is rendered
func (h *Home) Navigate() error {
	if err := h.Base.Navigate(); err != nil {
		return err
	}
	return h.waitForCatalog()
}

// FindProductByName returns the first product card containing name
func (h *Home) FindProductByName(name string) playwright.Locator {
	return h.frame.Locator(fmt.Sprintf(`article:has-text(%q)`, name)).First()
}

// OpenProduct opens the product page for the first card matching name
func (h *Home) OpenProduct(name string) (*Product, error) {
	card := h.FindProductByName(name)
	if err := h.waitVisible(card, h.cfg.Timeouts.ElementVisible); err != nil {
		return nil, fmt.Errorf("product %q not visible: %w", name, err)
	}

	if err := card.Locator("a").First().Click(); err != nil {
		return nil, fmt.Errorf("failed to click product %q: %w", name, err)
	}

	h.settle(h.cfg.Timeouts.Settle)

	product := NewProduct(h.page, h.cfg)
	if err := h.waitVisible(product.addToCartButton, h.cfg.Timeouts.Modal); err != nil {
		return nil, fmt.Errorf("product page for %q did not load: %w", name, err)
	}
	return product, nil
}

// CartBadgeCount reads the number of items shown on the cart link.
// It never fails; "0" is returned when no count can be read.
func (h *Home) CartBadgeCount() string {
	text, err := h.cartCounter.TextContent(playwright.LocatorTextContentOptions{
		Timeout: playwright.Float(config.Millis(h.cfg.Timeouts.ElementVisible)),
	})
	if err == nil {
		return scrape.CartBadge(text)
	}

	// On small screens the cart may be an icon only
	return scrape.Digits(textOrEmpty(h.cartIcon, h.cfg.Timeouts.ShortWait))
}

// CartIconVisible reports whether the cart link is currently displayed
func (h *Home) CartIconVisible() (bool, error) {
	return h.cartCounter.IsVisible()
}

// AddProductsSequentially adds each named product in order. Between products it
// continues shopping and returns to the catalog; after the last one it proceeds
// to checkout. It returns the last confirmation modal and the cart page.
func (h *Home) AddProductsSequentially(names []string) (*AddToCartModal, *Cart, error) {
	if len(names) == 0 {
		return nil, nil, ErrNoProducts
	}

	if err := h.ensureLoaded(); err != nil {
		return nil, nil, err
	}

	var modal *AddToCartModal
	for i, name := range names {
		if err := h.waitForCatalog(); err != nil {
			return nil, nil, err
		}

		product, err := h.OpenProduct(name)
		if err != nil {
			return nil, nil, err
		}

		modal, err = product.AddToCart()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to add %q: %w", name, err)
		}
		log.Printf("Added %q to cart (%d/%d)", name, i+1, len(names))

		if i < len(names)-1 {
			home, err := modal.ContinueShopping()
			if err != nil {
				return nil, nil, err
			}
			if err := home.ReturnToHomeViaLogo(); err != nil {
				return nil, nil, err
			}
		}
	}

	cart, err := modal.ProceedToCheckout()
	if err != nil {
		return nil, nil, err
	}
	return modal, cart, nil
}

// ReturnToHomeViaLogo clicks the first visible logo or home link and waits for
// the catalog. It reloads the storefront when no such link is visible.
func (h *Home) ReturnToHomeViaLogo() error {
	for _, selector := range logoSelectors {
		target := h.frame.Locator(selector).First()
		if !visibleNow(target) {
			continue
		}
		if err := target.Click(); err != nil {
			return fmt.Errorf("failed to click %s: %w", selector, err)
		}
		return h.waitForCatalog()
	}

	return h.Navigate()
}

func (h *Home) waitForCatalog() error {
	if err := h.waitVisible(h.catalog, h.cfg.Timeouts.Catalog); err != nil {
		return fmt.Errorf("catalog did not load: %w", err)
	}
	return nil
}

func (h *Home) ensureLoaded() error {
	if visibleNow(h.catalog) {
		return nil
	}
	return h.Navigate()
}
