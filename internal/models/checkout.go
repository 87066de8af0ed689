package models

import (
	"errors"
	"fmt"
	"strings"
)

// CheckoutStep is a section of the one-page checkout
type CheckoutStep int

// Checkout steps in the order a visitor completes them
const (
	StepPersonalInfo CheckoutStep = iota
	StepAddress
	StepDelivery
	StepPayment
	StepPlaced
)

var stepNames = map[CheckoutStep]string{
	StepPersonalInfo: "personal-information",
	StepAddress:      "addresses",
	StepDelivery:     "delivery",
	StepPayment:      "payment",
	StepPlaced:       "placed",
}

func (s CheckoutStep) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return fmt.Sprintf("step(%d)", int(s))
}

// Checkout errors
var (
	ErrStepOutOfOrder       = errors.New("checkout step submitted out of order")
	ErrMissingField         = errors.New("required field is missing")
	ErrInvalidEmail         = errors.New("invalid email address")
	ErrPrivacyNotAccepted   = errors.New("customer data privacy must be accepted")
	ErrUnknownCountry       = errors.New("unknown country")
	ErrInvalidState         = errors.New("a valid state is required for this country")
	ErrNoDeliveryOption     = errors.New("a delivery option must be selected")
	ErrNoPaymentOption      = errors.New("a payment option must be selected")
	ErrTermsNotAccepted     = errors.New("terms of service must be accepted")
	ErrUnknownDeliveryOrPay = errors.New("unknown option")
)

// PersonalInfo is the guest identity entered in the first step
type PersonalInfo struct {
	FirstName  string
	LastName   string
	Email      string
	Newsletter bool
}

// Address is the delivery address
type Address struct {
	Address1  string
	City      string
	Postcode  string
	CountryID int
	StateID   int
}

// DeliveryOptions and PaymentOptions are the single carrier and payment
// method the demo offers
const (
	DeliveryOptionDefault = "1"
	PaymentOptionWire     = "payment-option-1"
)

// CheckoutProgress tracks a visitor through the checkout sections.
// Sections can only be submitted in order; a section that was already
// completed can be submitted again, which moves the visitor back to the
// following step.
type CheckoutProgress struct {
	Step     CheckoutStep
	Personal PersonalInfo
	Address  Address
	Delivery string
}

// Reached reports whether the visitor has got to step
func (p *CheckoutProgress) Reached(step CheckoutStep) bool {
	return p.Step >= step
}

// Current reports whether step is the section being filled in
func (p *CheckoutProgress) Current(step CheckoutStep) bool {
	return p.Step == step
}

func (p *CheckoutProgress) enter(step CheckoutStep) error {
	if p.Step < step || p.Step == StepPlaced {
		return fmt.Errorf("%w: cannot submit %s while at %s", ErrStepOutOfOrder, step, p.Step)
	}
	return nil
}

// SubmitPersonalInfo validates and stores the guest identity
func (p *CheckoutProgress) SubmitPersonalInfo(info PersonalInfo, privacyAccepted bool) error {
	if err := p.enter(StepPersonalInfo); err != nil {
		return err
	}
	info.FirstName = strings.TrimSpace(info.FirstName)
	info.LastName = strings.TrimSpace(info.LastName)
	info.Email = strings.TrimSpace(info.Email)

	if info.FirstName == "" || info.LastName == "" || info.Email == "" {
		return ErrMissingField
	}
	if !strings.Contains(info.Email, "@") {
		return ErrInvalidEmail
	}
	if !privacyAccepted {
		return ErrPrivacyNotAccepted
	}

	p.Personal = info
	p.Step = StepAddress
	return nil
}

// SubmitAddress validates and stores the delivery address
func (p *CheckoutProgress) SubmitAddress(addr Address) error {
	if err := p.enter(StepAddress); err != nil {
		return err
	}
	addr.Address1 = strings.TrimSpace(addr.Address1)
	addr.City = strings.TrimSpace(addr.City)
	addr.Postcode = strings.TrimSpace(addr.Postcode)

	if addr.Address1 == "" || addr.City == "" || addr.Postcode == "" {
		return ErrMissingField
	}
	country, ok := FindCountry(addr.CountryID)
	if !ok {
		return ErrUnknownCountry
	}
	if country.RequiresState() {
		if _, ok := country.FindState(addr.StateID); !ok {
			return ErrInvalidState
		}
	} else {
		addr.StateID = 0
	}

	p.Address = addr
	p.Step = StepDelivery
	return nil
}

// ConfirmDelivery stores the chosen delivery option
func (p *CheckoutProgress) ConfirmDelivery(option string) error {
	if err := p.enter(StepDelivery); err != nil {
		return err
	}
	if option == "" {
		return ErrNoDeliveryOption
	}
	if option != DeliveryOptionDefault {
		return fmt.Errorf("%w: delivery %q", ErrUnknownDeliveryOrPay, option)
	}

	p.Delivery = option
	p.Step = StepPayment
	return nil
}

// Place validates the payment section and marks the checkout as placed
func (p *CheckoutProgress) Place(paymentOption string, termsAccepted bool) error {
	if err := p.enter(StepPayment); err != nil {
		return err
	}
	if paymentOption == "" {
		return ErrNoPaymentOption
	}
	if paymentOption != PaymentOptionWire {
		return fmt.Errorf("%w: payment %q", ErrUnknownDeliveryOrPay, paymentOption)
	}
	if !termsAccepted {
		return ErrTermsNotAccepted
	}

	p.Step = StepPlaced
	return nil
}
