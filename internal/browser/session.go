// Package browser starts Playwright and hands out isolated pages for scenarios.
package browser

import (
	"fmt"
	"log"

	"github.com/playwright-community/playwright-go"

	"github.com/adyen/storefront-e2e/internal/config"
)

// Session owns the Playwright driver and one Chromium process
type Session struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	cfg     *config.TestConfig
}

// Install downloads the Chromium build Playwright drives
func Install() error {
	return playwright.Install(&playwright.RunOptions{
		Browsers: []string{"chromium"},
	})
}

// Launch starts Playwright and a Chromium browser
func Launch(cfg *config.TestConfig) (*Session, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(cfg.Headless),
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	log.Printf("Launched Chromium %s (headless=%t)", browser.Version(), cfg.Headless)

	return &Session{
		pw:      pw,
		browser: browser,
		cfg:     cfg,
	}, nil
}

// NewPage opens a page in a fresh browser context using the configured device
func (s *Session) NewPage() (playwright.Page, error) {
	return s.NewPageForDevice(s.cfg.Device)
}

// NewPageForDevice opens a page in a fresh browser context emulating device.
// Each page gets its own context so cookies and carts never leak between scenarios.
func (s *Session) NewPageForDevice(device string) (playwright.Page, error) {
	opts, err := s.contextOptions(device)
	if err != nil {
		return nil, err
	}

	ctx, err := s.browser.NewContext(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create browser context: %w", err)
	}
	ctx.SetDefaultTimeout(config.Millis(s.cfg.Timeouts.ElementVisible))
	ctx.SetDefaultNavigationTimeout(config.Millis(s.cfg.Timeouts.PageLoad))

	page, err := ctx.NewPage()
	if err != nil {
		ctx.Close()
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	return page, nil
}

// ClosePage closes a page together with the context it was created in
func ClosePage(page playwright.Page) {
	if err := page.Context().Close(); err != nil {
		log.Printf("Warning: failed to close browser context: %v", err)
	}
}

func (s *Session) contextOptions(device string) (playwright.BrowserNewContextOptions, error) {
	if device == "" || device == config.DeviceDesktop {
		return playwright.BrowserNewContextOptions{
			Viewport: &playwright.Size{Width: 1280, Height: 720},
		}, nil
	}

	d, ok := s.pw.Devices[device]
	if !ok {
		return playwright.BrowserNewContextOptions{}, fmt.Errorf("unknown device %q", device)
	}
	return playwright.BrowserNewContextOptions{
		UserAgent:         playwright.String(d.UserAgent),
		Viewport:          d.Viewport,
		Screen:            d.Screen,
		DeviceScaleFactor: playwright.Float(d.DeviceScaleFactor),
		IsMobile:          playwright.Bool(d.IsMobile),
		HasTouch:          playwright.Bool(d.HasTouch),
	}, nil
}

// Close shuts down the browser and the Playwright driver
func (s *Session) Close() error {
	if err := s.browser.Close(); err != nil {
		s.pw.Stop()
		return fmt.Errorf("failed to close browser: %w", err)
	}
	return s.pw.Stop()
}
