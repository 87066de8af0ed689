package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/adyen/storefront-e2e/internal/models"
	"github.com/adyen/storefront-e2e/internal/services"
)

// Order status actions accepted by OrderStatusHandler
const (
	ActionConfirmPayment = "confirm"
	ActionCancel         = "cancel"
)

// OrderStatusHandler moves bank wire orders out of their pending state, the
// way a back office does once the wire arrives or the customer gives up
type OrderStatusHandler struct {
	orderService services.OrderService
}

// NewOrderStatusHandler creates a new order status handler
func NewOrderStatusHandler(orderService services.OrderService) *OrderStatusHandler {
	return &OrderStatusHandler{
		orderService: orderService,
	}
}

// OrderStatusRequest names an order by reference and what to do with it
type OrderStatusRequest struct {
	Reference string `json:"reference"`
	Action    string `json:"action"`
}

// OrderStatusResponse reports the order's status after the action
type OrderStatusResponse struct {
	Reference string `json:"reference"`
	Status    string `json:"status"`
}

// ServeHTTP handles POST /shop/api/orders/status
func (h *OrderStatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		sendErrorResponse(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req OrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	req.Reference = strings.ToUpper(strings.TrimSpace(req.Reference))
	if req.Reference == "" {
		sendErrorResponse(w, "reference is required", http.StatusBadRequest)
		return
	}

	var (
		order *models.Order
		err   error
	)
	switch req.Action {
	case ActionConfirmPayment:
		order, err = h.orderService.ConfirmPayment(req.Reference)
	case ActionCancel:
		order, err = h.orderService.CancelOrder(req.Reference)
	default:
		sendErrorResponse(w, "action must be confirm or cancel", http.StatusBadRequest)
		return
	}

	switch {
	case errors.Is(err, models.ErrOrderNotFound):
		sendErrorResponse(w, "Order not found", http.StatusNotFound)
		return
	case errors.Is(err, models.ErrInvalidStatusTransition):
		sendErrorResponse(w, err.Error(), http.StatusConflict)
		return
	case err != nil:
		log.Printf("Error updating order %s: %v", req.Reference, err)
		sendErrorResponse(w, "Failed to update order", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(OrderStatusResponse{
		Reference: order.Reference,
		Status:    string(order.Status),
	}); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}
