package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/adyen/storefront-e2e/internal/models"
	"github.com/adyen/storefront-e2e/internal/repository"
	"github.com/adyen/storefront-e2e/internal/services"
)

// testShop wires every handler to an in-memory order store and replays
// the visitor's session cookie on each request
type testShop struct {
	t            *testing.T
	mux          *http.ServeMux
	cookie       *http.Cookie
	orderService services.OrderService
}

func newTestShop(t *testing.T) *testShop {
	t.Helper()

	renderer, err := NewRenderer()
	if err != nil {
		t.Fatalf("Failed to parse templates: %v", err)
	}
	sessions := NewSessionStore()
	catalog := models.DefaultCatalog()
	orderService := services.NewOrderService(repository.NewMemoryOrderRepository())
	cart := NewCartHandler(renderer, sessions, catalog)

	mux := http.NewServeMux()
	mux.Handle("/", NewShellHandler(renderer))
	mux.Handle("/shop/", NewHomeHandler(renderer, sessions, catalog))
	mux.Handle("/shop/product/", NewProductHandler(renderer, sessions, catalog))
	mux.Handle("/shop/cart", cart)
	mux.HandleFunc("/shop/cart/add", cart.Add)
	mux.HandleFunc("/shop/cart/update", cart.Update)
	mux.HandleFunc("/shop/cart/delete", cart.Delete)
	mux.Handle("/shop/order", NewCheckoutHandler(renderer, sessions, orderService))
	mux.Handle("/shop/order-confirmation", NewConfirmationHandler(renderer, sessions, orderService))
	mux.Handle("/shop/ajax/states", NewStatesHandler())
	mux.Handle("/shop/api/orders/status", NewOrderStatusHandler(orderService))

	return &testShop{t: t, mux: mux, orderService: orderService}
}

func (s *testShop) do(req *http.Request) *httptest.ResponseRecorder {
	s.t.Helper()
	if s.cookie != nil {
		req.AddCookie(s.cookie)
	}
	w := httptest.NewRecorder()
	s.mux.ServeHTTP(w, req)
	for _, c := range w.Result().Cookies() {
		if c.Name == SessionCookie {
			s.cookie = c
		}
	}
	return w
}

func (s *testShop) get(path string) *httptest.ResponseRecorder {
	return s.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (s *testShop) post(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return s.do(req)
}

func (s *testShop) add(productID string) {
	s.t.Helper()
	w := s.post("/shop/cart/add", url.Values{"id_product": {productID}, "qty": {"1"}})
	if w.Code != http.StatusSeeOther {
		s.t.Fatalf("add %s: expected status 303, got %d", productID, w.Code)
	}
}

func (s *testShop) postJSON(path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return s.do(req)
}

// checkout submits every checkout step for the visitor's cart and returns
// the confirmation URL and the placed order
func (s *testShop) checkout() (string, *models.Order) {
	s.t.Helper()
	var location string
	for _, form := range checkoutForms() {
		w := s.post("/shop/order", form)
		if w.Code != http.StatusSeeOther {
			s.t.Fatalf("step %s: expected status 303, got %d", form.Get("step"), w.Code)
		}
		location = w.Header().Get("Location")
	}

	order, err := s.orderService.GetOrder(strings.TrimPrefix(location, "/shop/order-confirmation?id_order="))
	if err != nil {
		s.t.Fatalf("GetOrder() unexpected error = %v", err)
	}
	return location, order
}

func assertContains(t *testing.T, body string, want ...string) {
	t.Helper()
	for _, content := range want {
		if !strings.Contains(body, content) {
			t.Errorf("expected response to contain '%s'", content)
		}
	}
}
