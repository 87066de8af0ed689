// Package pages holds the page objects for the storefront.
//
// Every page object wraps the same browser tab and scopes its locators to the
// single iframe the storefront renders in. Actions that navigate return the
// page object for where the browser ends up, so a scenario can only call the
// methods of the page it is actually on. An instance is stale once its page
// has navigated away; keep using the returned one.
package pages

import (
	"errors"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/adyen/storefront-e2e/internal/config"
)

// Base is embedded by every page object
type Base struct {
	page  playwright.Page
	frame playwright.FrameLocator
	cfg   *config.TestConfig
}

// NewBase wraps a tab and locates the embedded content frame
func NewBase(page playwright.Page, cfg *config.TestConfig) Base {
	return Base{
		page:  page,
		frame: page.FrameLocator("iframe").First(),
		cfg:   cfg,
	}
}

// Page returns the underlying browser tab
func (b Base) Page() playwright.Page {
	return b.page
}

// Frame returns the locator root for the storefront content
func (b Base) Frame() playwright.FrameLocator {
	return b.frame
}

// Navigate loads the configured base URL and waits for the load event
func (b Base) Navigate() error {
	_, err := b.page.Goto(b.cfg.BaseURL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateLoad,
		Timeout:   playwright.Float(config.Millis(b.cfg.Timeouts.PageLoad)),
	})
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", b.cfg.BaseURL, err)
	}
	return nil
}

// ViewportWidth returns the emulated viewport width, 0 if unknown
func (b Base) ViewportWidth() int {
	if size := b.page.ViewportSize(); size != nil {
		return size.Width
	}
	return 0
}

// settle pauses where the storefront offers no readiness signal
func (b Base) settle(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}

func (b Base) waitFor(loc playwright.Locator, state *playwright.WaitForSelectorState, timeout time.Duration) error {
	return loc.WaitFor(playwright.LocatorWaitForOptions{
		State:   state,
		Timeout: playwright.Float(config.Millis(timeout)),
	})
}

func (b Base) waitVisible(loc playwright.Locator, timeout time.Duration) error {
	return b.waitFor(loc, playwright.WaitForSelectorStateVisible, timeout)
}

func (b Base) waitHidden(loc playwright.Locator, timeout time.Duration) error {
	return b.waitFor(loc, playwright.WaitForSelectorStateHidden, timeout)
}

func (b Base) waitAttached(loc playwright.Locator, timeout time.Duration) error {
	return b.waitFor(loc, playwright.WaitForSelectorStateAttached, timeout)
}

// probeVisible waits up to timeout for loc. Expected absence (a timeout) is
// reported as false with a nil error; any other driver failure is returned.
func (b Base) probeVisible(loc playwright.Locator, timeout time.Duration) (bool, error) {
	if err := b.waitVisible(loc, timeout); err != nil {
		if isTimeout(err) {
			return false, nil
		}
		return false, err
	}
	return loc.IsVisible()
}

// visibleNow reports whether loc is visible right now, treating errors as not visible
func visibleNow(loc playwright.Locator) bool {
	visible, err := loc.IsVisible()
	return err == nil && visible
}

// textOrEmpty reads the first match's text, empty when there is none
func textOrEmpty(loc playwright.Locator, timeout time.Duration) string {
	text, err := loc.First().TextContent(playwright.LocatorTextContentOptions{
		Timeout: playwright.Float(config.Millis(timeout)),
	})
	if err != nil {
		return ""
	}
	return text
}

func isTimeout(err error) bool {
	return errors.Is(err, playwright.ErrTimeout)
}
