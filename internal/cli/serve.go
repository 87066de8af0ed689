// Package cli runs the demo storefront server behind the serve command.
package cli

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/adyen/storefront-e2e/internal/config"
	"github.com/adyen/storefront-e2e/internal/handlers"
	"github.com/adyen/storefront-e2e/internal/models"
	"github.com/adyen/storefront-e2e/internal/services"
)

// ServerDependencies holds all dependencies needed for the server
type ServerDependencies struct {
	ServerConfig        config.ServerConfig
	ShellHandler        http.Handler
	HomeHandler         http.Handler
	ProductHandler      http.Handler
	CartHandler         http.Handler
	CartAddHandler      http.Handler
	CartUpdateHandler   http.Handler
	CartDeleteHandler   http.Handler
	CheckoutHandler     http.Handler
	StatesHandler       http.Handler
	ConfirmationHandler http.Handler
	OrderStatusHandler  http.Handler
}

// NewServerDependencies builds the storefront handlers around an order service
func NewServerDependencies(serverConfig config.ServerConfig, orderService services.OrderService) (ServerDependencies, error) {
	renderer, err := handlers.NewRenderer()
	if err != nil {
		return ServerDependencies{}, fmt.Errorf("failed to load templates: %w", err)
	}

	sessions := handlers.NewSessionStore()
	catalog := models.DefaultCatalog()
	cart := handlers.NewCartHandler(renderer, sessions, catalog)

	return ServerDependencies{
		ServerConfig:        serverConfig,
		ShellHandler:        handlers.NewShellHandler(renderer),
		HomeHandler:         handlers.NewHomeHandler(renderer, sessions, catalog),
		ProductHandler:      handlers.NewProductHandler(renderer, sessions, catalog),
		CartHandler:         cart,
		CartAddHandler:      http.HandlerFunc(cart.Add),
		CartUpdateHandler:   http.HandlerFunc(cart.Update),
		CartDeleteHandler:   http.HandlerFunc(cart.Delete),
		CheckoutHandler:     handlers.NewCheckoutHandler(renderer, sessions, orderService),
		StatesHandler:       handlers.NewStatesHandler(),
		ConfirmationHandler: handlers.NewConfirmationHandler(renderer, sessions, orderService),
		OrderStatusHandler:  handlers.NewOrderStatusHandler(orderService),
	}, nil
}

// NewRouter maps the storefront routes. The e2e suite mounts it on an
// httptest server.
func NewRouter(deps ServerDependencies) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/", deps.ShellHandler)
	mux.Handle("/shop/", deps.HomeHandler)
	mux.Handle("/shop/product/", deps.ProductHandler)
	mux.Handle("/shop/cart", deps.CartHandler)
	mux.Handle("/shop/cart/add", deps.CartAddHandler)
	mux.Handle("/shop/cart/update", deps.CartUpdateHandler)
	mux.Handle("/shop/cart/delete", deps.CartDeleteHandler)
	mux.Handle("/shop/order", deps.CheckoutHandler)
	mux.Handle("/shop/order-confirmation", deps.ConfirmationHandler)
	mux.Handle("/shop/ajax/states", deps.StatesHandler)
	mux.Handle("/shop/api/orders/status", deps.OrderStatusHandler)
	return logRequests(mux)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s (%v)", r.Method, r.URL.RequestURI(), time.Since(start).Round(time.Millisecond))
	})
}

// RunServe starts the storefront and blocks until SIGINT or SIGTERM
func RunServe(deps ServerDependencies) error {
	listener, server, err := StartServer(deps)
	if err != nil {
		return err
	}
	defer listener.Close()

	return WaitForShutdown(server, nil)
}

// StartServer creates and starts the HTTP server, returning the listener and server
func StartServer(deps ServerDependencies) (net.Listener, *http.Server, error) {
	listener, err := net.Listen("tcp", deps.ServerConfig.Addr())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create listener: %w", err)
	}

	server := &http.Server{
		Handler:           NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Storefront listening on %s", listener.Addr().String())
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
		}
	}()

	return listener, server, nil
}

// WaitForShutdown waits for a shutdown signal and gracefully shuts down the server.
// A nil shutdown channel is replaced by one registered with signal.Notify.
func WaitForShutdown(server *http.Server, shutdown chan os.Signal) error {
	return WaitForShutdownWithTimeout(server, shutdown, 30*time.Second)
}

// WaitForShutdownWithTimeout is WaitForShutdown with a custom grace period
func WaitForShutdownWithTimeout(server *http.Server, shutdown chan os.Signal, shutdownTimeout time.Duration) error {
	if shutdown == nil {
		shutdown = make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(shutdown)
	}

	sig := <-shutdown
	log.Printf("Received signal: %v, shutting down server...", sig)

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		// Requests still running after the grace period are cut off
		if err := server.Close(); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	log.Println("Server stopped")
	return nil
}
