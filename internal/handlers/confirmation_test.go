package handlers

import (
	"fmt"
	"net/http"
	"testing"
)

func TestConfirmationHandler_Errors(t *testing.T) {
	shop := newTestShop(t)

	if w := shop.get("/shop/order-confirmation"); w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 without id_order, got %d", w.Code)
	}
	for _, id := range []string{"unknown", "00000000-0000-0000-0000-000000000000"} {
		if w := shop.get("/shop/order-confirmation?id_order=" + id); w.Code != http.StatusNotFound {
			t.Errorf("expected status 404 for unknown order %s, got %d", id, w.Code)
		}
	}
	if w := shop.post("/shop/order-confirmation?id_order=unknown", nil); w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status 405 for POST, got %d", w.Code)
	}
}

func TestConfirmationHandler_ShowsPaymentStatus(t *testing.T) {
	tests := []struct {
		name   string
		action string
		want   string
	}{
		{name: "awaiting wire", want: "Awaiting bank wire payment"},
		{name: "wire received", action: ActionConfirmPayment, want: "Payment accepted"},
		{name: "cancelled", action: ActionCancel, want: "Canceled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shop := newTestShop(t)
			shop.add("5")
			location, order := shop.checkout()

			if tt.action != "" {
				w := shop.postJSON("/shop/api/orders/status",
					fmt.Sprintf(`{"reference":%q,"action":%q}`, order.Reference, tt.action))
				if w.Code != http.StatusOK {
					t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
				}
			}

			body := shop.get(location).Body.String()
			assertContains(t, body, "Your order is confirmed", "Order reference: #"+order.Reference, tt.want)
		})
	}
}
