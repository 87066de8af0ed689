package pages

import (
	"fmt"
	"log"
	"regexp"

	"github.com/playwright-community/playwright-go"

	"github.com/adyen/storefront-e2e/internal/config"
	"github.com/adyen/storefront-e2e/internal/scrape"
	"github.com/adyen/storefront-e2e/internal/testdata"
)

// regionCountry is the country selected when a customer has a state
const regionCountry = "United States"

var statesResponsePattern = regexp.MustCompile(`/ajax|/states`)

// Checkout is the one-page checkout. It moves through the personal
// information, address, shipping and payment sections; each step submits the
// current section and waits for the next one to show.
type Checkout struct {
	Base
	personalInfoHeading   playwright.Locator
	firstNameInput        playwright.Locator
	lastNameInput         playwright.Locator
	emailInput            playwright.Locator
	checkboxes            playwright.Locator
	continueButton        playwright.Locator
	addressInput          playwright.Locator
	cityInput             playwright.Locator
	zipCodeInput          playwright.Locator
	countryDropdown       playwright.Locator
	stateDropdown         playwright.Locator
	addressSection        playwright.Locator
	addressContinueButton playwright.Locator
	shippingSection       playwright.Locator
	shippingContinue      playwright.Locator
	paymentSection        playwright.Locator
	paymentMethodRadio    playwright.Locator
	orderTermsCheckbox    playwright.Locator
	placeOrderButton      playwright.Locator
	confirmationText      playwright.Locator
	orderSummary          playwright.Locator
}

// NewCheckout creates the checkout page object
func NewCheckout(page playwright.Page, cfg *config.TestConfig) *Checkout {
	base := NewBase(page, cfg)
	f := base.frame

	addressSection := f.Locator("section#checkout-addresses-step")
	shippingSection := f.Locator("section#checkout-delivery-step")
	paymentSection := f.Locator("section#checkout-payment-step")

	return &Checkout{
		Base:                base,
		personalInfoHeading: f.Locator(`h1:has-text("Personal Information")`),
		firstNameInput:      f.Locator(`input[name="firstname"]`).First(),
		lastNameInput:       f.Locator(`input[name="lastname"]`).First(),
		emailInput:          f.Locator(`input[name="email"]`).First(),
		checkboxes:          f.Locator(`input[type="checkbox"]`),
		continueButton: f.
			Locator(`button[type="submit"]:has-text("Continue"), button:has-text("Continue")`).
			First(),
		addressInput:    f.Locator(`input[name="address1"]`),
		cityInput:       f.Locator(`input[name="city"]`),
		zipCodeInput:    f.Locator(`input[name="postcode"]`),
		countryDropdown: f.Locator(`select[name="id_country"]`),
		stateDropdown:   f.Locator(`select[name="id_state"]`),
		addressSection:  addressSection,
		addressContinueButton: addressSection.
			Locator(`button[type="submit"]:has-text("Continue"), button[name="confirm-addresses"]:has-text("Continue")`).
			First(),
		shippingSection: shippingSection,
		// On small screens the delivery option is preselected and the button may be hidden
		shippingContinue: shippingSection.
			Locator(`button[name="confirmDeliveryOption"], button[type="submit"]`).
			First(),
		paymentSection:     paymentSection,
		paymentMethodRadio: paymentSection.Locator(`input[name="payment-option"]`).First(),
		// The real name is conditions_to_approve[terms-and-conditions]
		orderTermsCheckbox: paymentSection.Locator(`input[name^="conditions_to_approve"]`),
		placeOrderButton: paymentSection.Locator(
			`button[type="submit"]:has-text("Place order"), button.button.btn-primary:has-text("Place order")`,
		),
		confirmationText: f.Locator(`text=/Your order is confirmed|Order confirmation/i`).First(),
		orderSummary:     f.Locator(`text=/\d+\s+items/`),
	}
}

// VerifyReady waits for the personal information section
func (c *Checkout) VerifyReady() error {
	if err := c.waitVisible(c.personalInfoHeading, c.cfg.Timeouts.ElementVisible); err != nil {
		return fmt.Errorf("checkout did not load: %w", err)
	}
	return nil
}

// FillPersonalInfo fills the guest identity fields
func (c *Checkout) FillPersonalInfo(firstName, lastName, email string) error {
	fields := []struct {
		name  string
		input playwright.Locator
		value string
	}{
		{"first name", c.firstNameInput, firstName},
		{"last name", c.lastNameInput, lastName},
		{"email", c.emailInput, email},
	}
	for _, f := range fields {
		if err := f.input.Fill(f.value); err != nil {
			return fmt.Errorf("failed to fill %s: %w", f.name, err)
		}
	}
	return nil
}

// AcceptAllCheckboxes checks every unchecked checkbox on the page,
// covering both the privacy and the newsletter consent.
func (c *Checkout) AcceptAllCheckboxes() error {
	count, err := c.checkboxes.Count()
	if err != nil {
		return fmt.Errorf("failed to count checkboxes: %w", err)
	}
	for i := 0; i < count; i++ {
		checkbox := c.checkboxes.Nth(i)
		checked, err := checkbox.IsChecked()
		if err != nil {
			return fmt.Errorf("failed to read checkbox %d: %w", i, err)
		}
		if checked {
			continue
		}
		if err := checkbox.Check(); err != nil {
			return fmt.Errorf("failed to check checkbox %d: %w", i, err)
		}
	}
	return nil
}

// AdvanceToAddress submits personal information and waits for the address form
func (c *Checkout) AdvanceToAddress() error {
	if err := c.continueButton.Click(); err != nil {
		return fmt.Errorf("failed to submit personal information: %w", err)
	}

	c.settle(c.cfg.Timeouts.Settle)

	if err := c.waitVisible(c.addressInput, c.cfg.Timeouts.ElementVisible); err != nil {
		return fmt.Errorf("address form did not appear: %w", err)
	}
	return nil
}

// FillAddress fills the address form. A non-empty state switches the country
// to the United States first and picks the state once its list is populated.
func (c *Checkout) FillAddress(address, city, zipCode, state string) error {
	if err := c.waitVisible(c.addressInput, c.cfg.Timeouts.ElementVisible); err != nil {
		return fmt.Errorf("address form not visible: %w", err)
	}

	if state != "" {
		if err := c.selectRegionCountry(); err != nil {
			return err
		}
	}

	fields := []struct {
		name  string
		input playwright.Locator
		value string
	}{
		{"address", c.addressInput, address},
		{"city", c.cityInput, city},
		{"zip code", c.zipCodeInput, zipCode},
	}
	for _, f := range fields {
		if err := f.input.Fill(f.value); err != nil {
			return fmt.Errorf("failed to fill %s: %w", f.name, err)
		}
	}

	if state != "" {
		if err := c.waitVisible(c.stateDropdown, c.cfg.Timeouts.ShortWait*5); err != nil {
			return fmt.Errorf("state dropdown not visible: %w", err)
		}
		if _, err := c.stateDropdown.SelectOption(playwright.SelectOptionValues{
			Labels: playwright.StringSlice(state),
		}); err != nil {
			return fmt.Errorf("failed to select state %q: %w", state, err)
		}
	}
	return nil
}

// selectRegionCountry picks the region country and waits for the state list
// request. The list may already be loaded, so a missing response is fine.
func (c *Checkout) selectRegionCountry() error {
	var selectErr error
	_, err := c.page.ExpectResponse(statesResponsePattern, func() error {
		_, selectErr = c.countryDropdown.SelectOption(playwright.SelectOptionValues{
			Labels: playwright.StringSlice(regionCountry),
		})
		return selectErr
	}, playwright.PageExpectResponseOptions{
		Timeout: playwright.Float(config.Millis(c.cfg.Timeouts.ElementVisible)),
	})
	if selectErr != nil {
		return fmt.Errorf("failed to select country %q: %w", regionCountry, selectErr)
	}
	if err != nil {
		log.Printf("No state list response after selecting %s, continuing: %v", regionCountry, err)
	}
	return nil
}

// AdvanceToShipping submits the address and waits for the shipping section.
// A disabled button gets one pause and a check of the required fields before
// the click; the click itself is not retried.
func (c *Checkout) AdvanceToShipping() error {
	if err := c.waitVisible(c.addressSection, c.cfg.Timeouts.ElementVisible); err != nil {
		return fmt.Errorf("address section not visible: %w", err)
	}
	if err := c.waitVisible(c.addressContinueButton, c.cfg.Timeouts.ElementVisible); err != nil {
		return fmt.Errorf("address continue button not visible: %w", err)
	}

	enabled, err := c.addressContinueButton.IsEnabled()
	if err != nil {
		return fmt.Errorf("failed to read address continue button: %w", err)
	}
	if !enabled {
		c.settle(c.cfg.Timeouts.ShortWait)
		for _, input := range []playwright.Locator{c.addressInput, c.cityInput, c.zipCodeInput} {
			if err := c.waitVisible(input, c.cfg.Timeouts.ShortWait*5); err != nil {
				return fmt.Errorf("required address field missing: %w", err)
			}
		}
	}

	if err := c.addressContinueButton.Click(); err != nil {
		return fmt.Errorf("failed to submit address: %w", err)
	}

	c.settle(c.cfg.Timeouts.Settle)

	if err := c.waitVisible(c.shippingSection, c.cfg.Timeouts.ElementVisible); err != nil {
		return fmt.Errorf("shipping section did not appear: %w", err)
	}
	return nil
}

// AdvanceToPayment confirms the delivery option and waits for the payment section.
// The button only has to be attached; it is force-clicked when the layout hides it.
func (c *Checkout) AdvanceToPayment() error {
	if err := c.waitVisible(c.shippingSection, c.cfg.Timeouts.ElementVisible); err != nil {
		return fmt.Errorf("shipping section not visible: %w", err)
	}
	if err := c.waitAttached(c.shippingContinue, c.cfg.Timeouts.ElementVisible); err != nil {
		return fmt.Errorf("shipping continue button missing: %w", err)
	}

	c.settle(c.cfg.Timeouts.ShortWait)

	visible := visibleNow(c.shippingContinue)
	if err := c.shippingContinue.Click(playwright.LocatorClickOptions{
		Force: playwright.Bool(!visible),
	}); err != nil {
		return fmt.Errorf("failed to confirm delivery option: %w", err)
	}

	c.settle(c.cfg.Timeouts.Settle)

	if err := c.waitVisible(c.paymentSection, c.cfg.Timeouts.ElementVisible); err != nil {
		return fmt.Errorf("payment section did not appear: %w", err)
	}
	return nil
}

// SelectPaymentMethod checks the payment option when the store offers one
func (c *Checkout) SelectPaymentMethod() error {
	if err := c.waitVisible(c.paymentSection, c.cfg.Timeouts.ElementVisible); err != nil {
		return fmt.Errorf("payment section not visible: %w", err)
	}

	count, err := c.paymentMethodRadio.Count()
	if err != nil {
		return fmt.Errorf("failed to look up payment options: %w", err)
	}
	if count == 0 {
		return nil
	}

	visible := visibleNow(c.paymentMethodRadio)
	if err := c.paymentMethodRadio.Check(playwright.LocatorCheckOptions{
		Force: playwright.Bool(!visible),
	}); err != nil {
		return fmt.Errorf("failed to select payment option: %w", err)
	}
	return nil
}

// AcceptOrderTerms force-checks the terms of service and gives the page time
// to enable the place order button.
func (c *Checkout) AcceptOrderTerms() error {
	if err := c.waitVisible(c.paymentSection, c.cfg.Timeouts.ElementVisible); err != nil {
		return fmt.Errorf("payment section not visible: %w", err)
	}
	if err := c.paymentSection.ScrollIntoViewIfNeeded(); err != nil {
		return fmt.Errorf("failed to scroll to payment section: %w", err)
	}

	c.settle(c.cfg.Timeouts.ShortWait / 2)

	if err := c.waitVisible(c.orderTermsCheckbox, c.cfg.Timeouts.ElementVisible); err != nil {
		return fmt.Errorf("terms checkbox not visible: %w", err)
	}
	if err := c.orderTermsCheckbox.Check(playwright.LocatorCheckOptions{
		Force: playwright.Bool(true),
	}); err != nil {
		return fmt.Errorf("failed to accept terms: %w", err)
	}

	c.settle(c.cfg.Timeouts.CartUpdate)
	return nil
}

// PlaceOrder submits the order and waits for the confirmation
func (c *Checkout) PlaceOrder() (*OrderConfirmation, error) {
	if err := c.waitVisible(c.paymentSection, c.cfg.Timeouts.ElementVisible); err != nil {
		return nil, fmt.Errorf("payment section not visible: %w", err)
	}
	if err := c.waitVisible(c.placeOrderButton, c.cfg.Timeouts.ElementVisible); err != nil {
		return nil, fmt.Errorf("place order button not visible: %w", err)
	}
	if err := c.placeOrderButton.Click(); err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	c.settle(c.cfg.Timeouts.Settle)

	if err := c.waitVisible(c.confirmationText, c.cfg.Timeouts.Modal); err != nil {
		return nil, fmt.Errorf("order confirmation did not appear: %w", err)
	}
	return NewOrderConfirmation(c.page, c.cfg), nil
}

// CompleteCheckout runs every checkout step in order for customer. The first
// failing step aborts the flow; nothing is rolled back.
func (c *Checkout) CompleteCheckout(customer testdata.CustomerDetails) (*OrderConfirmation, error) {
	steps := []struct {
		name string
		run  func() error
	}{
		{"verify ready", c.VerifyReady},
		{"personal information", func() error {
			return c.FillPersonalInfo(customer.FirstName, customer.LastName, customer.Email)
		}},
		{"accept checkboxes", c.AcceptAllCheckboxes},
		{"advance to address", c.AdvanceToAddress},
		{"address", func() error {
			return c.FillAddress(customer.Address, customer.City, customer.ZipCode, customer.State)
		}},
		{"advance to shipping", c.AdvanceToShipping},
		{"advance to payment", c.AdvanceToPayment},
		{"payment method", c.SelectPaymentMethod},
		{"order terms", c.AcceptOrderTerms},
	}

	for _, step := range steps {
		log.Printf("Checkout step: %s", step.name)
		if err := step.run(); err != nil {
			return nil, fmt.Errorf("checkout %s: %w", step.name, err)
		}
	}

	confirmation, err := c.PlaceOrder()
	if err != nil {
		return nil, fmt.Errorf("checkout place order: %w", err)
	}
	return confirmation, nil
}

// OrderSummaryItemCount returns the item count of the order summary, "0" if unreadable
func (c *Checkout) OrderSummaryItemCount() string {
	return scrape.ItemCount(textOrEmpty(c.orderSummary, c.cfg.Timeouts.ShortWait))
}
