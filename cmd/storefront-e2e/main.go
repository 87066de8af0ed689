package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/adyen/storefront-e2e/internal/browser"
	internalcli "github.com/adyen/storefront-e2e/internal/cli"
	"github.com/adyen/storefront-e2e/internal/config"
	"github.com/adyen/storefront-e2e/internal/database"
	"github.com/adyen/storefront-e2e/internal/flows"
	"github.com/adyen/storefront-e2e/internal/repository"
	"github.com/adyen/storefront-e2e/internal/services"
	"github.com/adyen/storefront-e2e/internal/testdata"
)

var version = "0.1.0"

// buildOrderRepository uses Postgres when POSTGRES_HOSTNAME is set and an
// in-memory store otherwise. The returned close func is never nil.
func buildOrderRepository() (services.OrderRepository, func(), error) {
	if !config.PostgresEnabled(os.Getenv) {
		log.Println("Storing orders in memory")
		return repository.NewMemoryOrderRepository(), func() {}, nil
	}

	pgConfig, err := config.LoadPostgresConfig(os.Getenv)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid postgres configuration: %w", err)
	}

	db, err := database.Connect(pgConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Println("Connected to database successfully")

	if err := database.RunMigrations(db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to run database migrations: %w", err)
	}

	return repository.NewOrderRepository(db), closeDB(db), nil
}

func closeDB(db *sql.DB) func() {
	return func() {
		if err := db.Close(); err != nil {
			log.Printf("Warning: failed to close database: %v", err)
		}
	}
}

// ServeCommand returns the serve command
func ServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the local demo storefront",
		Action: func(c *cli.Context) error {
			orderRepo, closeRepo, err := buildOrderRepository()
			if err != nil {
				return err
			}
			defer closeRepo()

			deps, err := internalcli.NewServerDependencies(
				config.LoadServerConfig(os.Getenv),
				services.NewOrderService(orderRepo),
			)
			if err != nil {
				return err
			}

			return internalcli.RunServe(deps)
		},
	}
}

// CheckoutCommand returns the checkout command, which places one order
// through the browser and prints its reference
func CheckoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "checkout",
		Usage: "Buy the t-shirt and the mug as a US customer",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "base-url",
				Usage:   "storefront URL, overrides STOREFRONT_BASE_URL",
				EnvVars: []string{"STOREFRONT_BASE_URL"},
			},
			&cli.StringFlag{
				Name:  "device",
				Usage: fmt.Sprintf("%q or %q", config.DeviceDesktop, config.DeviceIPhone),
			},
		},
		Action: func(c *cli.Context) error {
			cfg, err := config.LoadTestConfig(os.Getenv)
			if err != nil {
				return err
			}
			if url := c.String("base-url"); url != "" {
				cfg.BaseURL = url
			}
			if device := c.String("device"); device != "" {
				cfg.Device = device
			}

			session, err := browser.Launch(cfg)
			if err != nil {
				return err
			}
			defer session.Close()

			page, err := session.NewPage()
			if err != nil {
				return err
			}
			defer browser.ClosePage(page)

			confirmation, err := flows.PlaceOrder(page, cfg,
				[]string{testdata.ProductTShirt, testdata.ProductMug},
				testdata.USCustomer())
			if err != nil {
				return fmt.Errorf("checkout failed: %w", err)
			}
			if !confirmation.IsConfirmed {
				return fmt.Errorf("order was not confirmed")
			}

			fmt.Println(confirmation.OrderRef)
			return nil
		},
	}
}

// InstallCommand returns the install command
func InstallCommand() *cli.Command {
	return &cli.Command{
		Name:  "install",
		Usage: "Download the Playwright driver and Chromium",
		Action: func(c *cli.Context) error {
			return browser.Install()
		},
	}
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	app := &cli.App{
		Name:    "storefront-e2e",
		Usage:   "Browser checks for the storefront cart and checkout",
		Version: version,
		Commands: []*cli.Command{
			ServeCommand(),
			CheckoutCommand(),
			InstallCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		log.Fatal(err)
	}
}
