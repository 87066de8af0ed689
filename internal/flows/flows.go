// Package flows chains page actions into the multi-page procedures the
// scenarios share.
package flows

import (
	"fmt"
	"log"

	"github.com/playwright-community/playwright-go"

	"github.com/adyen/storefront-e2e/internal/config"
	"github.com/adyen/storefront-e2e/internal/pages"
	"github.com/adyen/storefront-e2e/internal/testdata"
)

// PrepareCart adds products from the catalog and checks the cart holds at least minProducts lines
func PrepareCart(page playwright.Page, cfg *config.TestConfig, productNames []string, minProducts int) (*pages.Home, *pages.Cart, error) {
	log.Printf("Preparing cart with %d product(s)", len(productNames))

	home := pages.NewHome(page, cfg)
	_, cart, err := home.AddProductsSequentially(productNames)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build cart: %w", err)
	}

	if err := cart.VerifyLoaded(minProducts); err != nil {
		return nil, nil, err
	}
	return home, cart, nil
}

// GoToCheckout leaves the cart for checkout and waits until it is ready
func GoToCheckout(cart *pages.Cart) (*pages.Checkout, error) {
	checkout, err := cart.ProceedToCheckout()
	if err != nil {
		return nil, err
	}
	if err := checkout.VerifyReady(); err != nil {
		return nil, err
	}
	return checkout, nil
}

// FinishCheckout completes checkout for customer
func FinishCheckout(checkout *pages.Checkout, customer testdata.CustomerDetails) (*pages.OrderConfirmation, error) {
	log.Printf("Completing checkout for %s %s", customer.FirstName, customer.LastName)
	return checkout.CompleteCheckout(customer)
}

// PlaceOrder runs the whole purchase: cart, checkout, confirmation
func PlaceOrder(page playwright.Page, cfg *config.TestConfig, productNames []string, customer testdata.CustomerDetails) (pages.Confirmation, error) {
	_, cart, err := PrepareCart(page, cfg, productNames, 1)
	if err != nil {
		return pages.Confirmation{}, err
	}
	checkout, err := GoToCheckout(cart)
	if err != nil {
		return pages.Confirmation{}, err
	}
	confirmation, err := FinishCheckout(checkout, customer)
	if err != nil {
		return pages.Confirmation{}, err
	}
	return confirmation.Verify()
}
