//go:build e2e

package e2e

import (
	"log"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/playwright-community/playwright-go"

	"github.com/adyen/storefront-e2e/internal/browser"
	"github.com/adyen/storefront-e2e/internal/cli"
	"github.com/adyen/storefront-e2e/internal/config"
	"github.com/adyen/storefront-e2e/internal/repository"
	"github.com/adyen/storefront-e2e/internal/services"
)

var (
	cfg     *config.TestConfig
	session *browser.Session
)

// TestMain starts the local storefront, unless STOREFRONT_LIVE=true, and one
// Chromium shared by every scenario.
func TestMain(m *testing.M) {
	os.Exit(run(m))
}

func run(m *testing.M) int {
	if err := godotenv.Load("../.env"); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	var err error
	cfg, err = config.LoadTestConfig(os.Getenv)
	if err != nil {
		log.Printf("Invalid test configuration: %v", err)
		return 1
	}

	if os.Getenv("STOREFRONT_LIVE") != "true" {
		orderService := services.NewOrderService(repository.NewMemoryOrderRepository())
		deps, err := cli.NewServerDependencies(config.ServerConfig{}, orderService)
		if err != nil {
			log.Printf("Failed to build storefront: %v", err)
			return 1
		}
		server := httptest.NewServer(cli.NewRouter(deps))
		defer server.Close()
		cfg.BaseURL = server.URL + "/"
		log.Printf("Running against local storefront at %s", cfg.BaseURL)
	}

	// Browsers are installed with: storefront-e2e install
	session, err = browser.Launch(cfg)
	if err != nil {
		log.Printf("Failed to launch browser: %v", err)
		return 1
	}
	defer session.Close()

	return m.Run()
}

// newPage opens a page for device and closes it when the test ends. A
// scenario still running after Timeouts.Test fails and loses its browser
// context, which aborts whatever it is waiting on.
func newPage(t *testing.T, device string) playwright.Page {
	t.Helper()
	page, err := session.NewPageForDevice(device)
	if err != nil {
		t.Fatalf("Failed to open page: %v", err)
	}

	if cfg.Timeouts.Test <= 0 {
		t.Cleanup(func() { browser.ClosePage(page) })
		return page
	}

	timer := time.AfterFunc(cfg.Timeouts.Test, func() {
		t.Errorf("Scenario exceeded its %v budget", cfg.Timeouts.Test)
		browser.ClosePage(page)
	})
	t.Cleanup(func() {
		if timer.Stop() {
			browser.ClosePage(page)
		}
	})
	return page
}
