package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/adyen/storefront-e2e/internal/models"
)

var (
	errUnknownProduct = errors.New("unknown product")
	errNotInCart      = errors.New("product is not in the cart")
)

// CartHandler serves the cart page and its add, update and delete actions
type CartHandler struct {
	renderer *Renderer
	sessions *SessionStore
	catalog  models.Catalog
}

// NewCartHandler creates a new cart handler
func NewCartHandler(renderer *Renderer, sessions *SessionStore, catalog models.Catalog) *CartHandler {
	return &CartHandler{
		renderer: renderer,
		sessions: sessions,
		catalog:  catalog,
	}
}

type cartView struct {
	pageData
	Summary cartSummary
}

// ServeHTTP handles GET /shop/cart
func (h *CartHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	view := cartView{}
	view.Title = "Cart"
	h.sessions.View(w, r, func(s *ShopSession) {
		view.CartCount = s.Cart.ItemCount()
		view.Summary = summarize(&s.Cart)
	})

	h.renderer.Render(w, http.StatusOK, "cart.html", view)
}

// Add handles POST /shop/cart/add and returns to the product with the modal open
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	product, qty, err := h.parseLine(r, 1)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	err = h.sessions.With(w, r, func(s *ShopSession) error {
		return s.Cart.Add(product, qty)
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	log.Printf("Added %d x %q to cart", qty, product.Name)
	http.Redirect(w, r, fmt.Sprintf("/shop/product/%d?added=1", product.ID), http.StatusSeeOther)
}

// Update handles POST /shop/cart/update. A quantity of zero or less removes the line.
func (h *CartHandler) Update(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	product, qty, err := h.parseLine(r, -1)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	err = h.sessions.With(w, r, func(s *ShopSession) error {
		if !s.Cart.SetQuantity(product.ID, qty) {
			return errNotInCart
		}
		return nil
	})
	if err != nil {
		log.Printf("Cart update for product %d ignored: %v", product.ID, err)
	}

	http.Redirect(w, r, "/shop/cart", http.StatusSeeOther)
}

// Delete handles GET /shop/cart/delete
func (h *CartHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	product, _, err := h.parseLine(r, 0)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	err = h.sessions.With(w, r, func(s *ShopSession) error {
		if !s.Cart.Remove(product.ID) {
			return errNotInCart
		}
		return nil
	})
	if err != nil {
		log.Printf("Cart delete for product %d ignored: %v", product.ID, err)
	}

	http.Redirect(w, r, "/shop/cart", http.StatusSeeOther)
}

// parseLine reads id_product and qty. defaultQty is used when qty is absent;
// a negative defaultQty makes qty required.
func (h *CartHandler) parseLine(r *http.Request, defaultQty int) (models.Product, int, error) {
	if err := r.ParseForm(); err != nil {
		return models.Product{}, 0, fmt.Errorf("invalid form: %w", err)
	}

	id, err := strconv.Atoi(r.Form.Get("id_product"))
	if err != nil {
		return models.Product{}, 0, errUnknownProduct
	}
	product, ok := h.catalog.Find(id)
	if !ok {
		return models.Product{}, 0, errUnknownProduct
	}

	raw := r.Form.Get("qty")
	if raw == "" {
		if defaultQty < 0 {
			return models.Product{}, 0, errors.New("quantity is required")
		}
		return product, defaultQty, nil
	}
	qty, err := strconv.Atoi(raw)
	if err != nil {
		return models.Product{}, 0, fmt.Errorf("invalid quantity %q", raw)
	}
	if qty > models.MaxLineQuantity {
		return models.Product{}, 0, models.ErrQuantityTooLarge
	}
	return product, qty, nil
}
