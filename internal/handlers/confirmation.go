package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/adyen/storefront-e2e/internal/models"
	"github.com/adyen/storefront-e2e/internal/services"
)

// ConfirmationHandler handles order confirmation page
type ConfirmationHandler struct {
	renderer     *Renderer
	sessions     *SessionStore
	orderService services.OrderService
}

// NewConfirmationHandler creates a new confirmation handler
func NewConfirmationHandler(renderer *Renderer, sessions *SessionStore, orderService services.OrderService) *ConfirmationHandler {
	return &ConfirmationHandler{
		renderer:     renderer,
		sessions:     sessions,
		orderService: orderService,
	}
}

// ConfirmationData represents the data for the confirmation template
type ConfirmationData struct {
	pageData
	Order *models.Order
}

// ServeHTTP handles GET /shop/order-confirmation?id_order=
func (h *ConfirmationHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	orderID := r.URL.Query().Get("id_order")
	if orderID == "" {
		log.Printf("Missing id_order parameter")
		http.Error(w, "Missing order ID", http.StatusBadRequest)
		return
	}

	order, err := h.orderService.GetOrder(orderID)
	if errors.Is(err, models.ErrOrderNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		log.Printf("Error loading order %s: %v", orderID, err)
		http.Error(w, "Failed to load order", http.StatusInternalServerError)
		return
	}

	data := ConfirmationData{Order: order}
	data.Title = "Thank you"
	h.sessions.View(w, r, func(s *ShopSession) {
		data.CartCount = s.Cart.ItemCount()
	})

	h.renderer.Render(w, http.StatusOK, "confirmation.html", data)
}
