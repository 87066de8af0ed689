package config

import (
	"fmt"
	"strconv"
	"time"
)

// DefaultBaseURL is the public PrestaShop demo the suite was written against
const DefaultBaseURL = "https://demo.prestashop.com/#/en/front"

// Device profiles understood by the browser session
const (
	DeviceDesktop = "desktop"
	DeviceIPhone  = "iPhone 14"
)

// Timeouts holds every bounded wait and settle delay used by the page objects
type Timeouts struct {
	PageLoad       time.Duration
	ElementVisible time.Duration
	ShortWait      time.Duration
	Test           time.Duration

	// Settle is the fixed pause after clicks that trigger navigation
	Settle time.Duration
	// CartUpdate is the pause after a cart line is changed or removed
	CartUpdate time.Duration
	// Catalog bounds the wait for the first product card
	Catalog time.Duration
	// Modal bounds the wait for the add-to-cart confirmation
	Modal time.Duration
}

// DefaultTimeouts returns the timeouts the suite runs with when nothing is overridden
func DefaultTimeouts() Timeouts {
	return Timeouts{
		PageLoad:       30 * time.Second,
		ElementVisible: 10 * time.Second,
		ShortWait:      1 * time.Second,
		Test:           180 * time.Second,
		Settle:         2 * time.Second,
		CartUpdate:     1500 * time.Millisecond,
		Catalog:        20 * time.Second,
		Modal:          15 * time.Second,
	}
}

// TestConfig holds configuration for driving the storefront
type TestConfig struct {
	BaseURL  string
	Timeouts Timeouts
	Headless bool
	Device   string
}

// LoadTestConfig loads storefront test configuration from environment variables
func LoadTestConfig(getenv func(string) string) (*TestConfig, error) {
	config := &TestConfig{
		BaseURL:  getenv("STOREFRONT_BASE_URL"),
		Timeouts: DefaultTimeouts(),
		Headless: true,
		Device:   getenv("STOREFRONT_DEVICE"),
	}

	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}

	switch config.Device {
	case "":
		config.Device = DeviceDesktop
	case DeviceDesktop, DeviceIPhone:
	default:
		return nil, fmt.Errorf("STOREFRONT_DEVICE %q is not supported", config.Device)
	}

	if v := getenv("HEADLESS"); v != "" {
		headless, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("HEADLESS must be a boolean: %w", err)
		}
		config.Headless = headless
	}

	overrides := []struct {
		key  string
		dest *time.Duration
	}{
		{"STOREFRONT_TIMEOUT_PAGE_LOAD", &config.Timeouts.PageLoad},
		{"STOREFRONT_TIMEOUT_ELEMENT_VISIBLE", &config.Timeouts.ElementVisible},
		{"STOREFRONT_TIMEOUT_SHORT_WAIT", &config.Timeouts.ShortWait},
		{"STOREFRONT_TIMEOUT_TEST", &config.Timeouts.Test},
		{"STOREFRONT_TIMEOUT_SETTLE", &config.Timeouts.Settle},
		{"STOREFRONT_TIMEOUT_CART_UPDATE", &config.Timeouts.CartUpdate},
		{"STOREFRONT_TIMEOUT_CATALOG", &config.Timeouts.Catalog},
		{"STOREFRONT_TIMEOUT_MODAL", &config.Timeouts.Modal},
	}
	for _, o := range overrides {
		v := getenv(o.key)
		if v == "" {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", o.key, err)
		}
		if d < 0 {
			return nil, fmt.Errorf("%s must not be negative", o.key)
		}
		*o.dest = d
	}

	return config, nil
}

// Millis converts a duration to the float milliseconds Playwright expects
func Millis(d time.Duration) float64 {
	return float64(d.Milliseconds())
}
