package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/adyen/storefront-e2e/internal/models"
)

// ShellHandler serves the outer page that embeds the shop in an iframe,
// the way the PrestaShop demo does
type ShellHandler struct {
	renderer *Renderer
}

// NewShellHandler creates a new shell handler
func NewShellHandler(renderer *Renderer) *ShellHandler {
	return &ShellHandler{renderer: renderer}
}

// ServeHTTP handles GET /
func (h *ShellHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	h.renderer.Render(w, http.StatusOK, "shell.html", pageData{Title: "Demo Shop"})
}

// HomeHandler serves the product catalog
type HomeHandler struct {
	renderer *Renderer
	sessions *SessionStore
	catalog  models.Catalog
}

// NewHomeHandler creates a new catalog handler
func NewHomeHandler(renderer *Renderer, sessions *SessionStore, catalog models.Catalog) *HomeHandler {
	return &HomeHandler{
		renderer: renderer,
		sessions: sessions,
		catalog:  catalog,
	}
}

type homeView struct {
	pageData
	Products models.Catalog
}

// ServeHTTP handles GET /shop/
func (h *HomeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/shop/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	view := homeView{Products: h.catalog}
	view.Title = "Home"
	h.sessions.View(w, r, func(s *ShopSession) {
		view.CartCount = s.Cart.ItemCount()
	})

	h.renderer.Render(w, http.StatusOK, "home.html", view)
}

// ProductHandler serves a product page, with the add-to-cart modal open
// when the visitor has just added it
type ProductHandler struct {
	renderer *Renderer
	sessions *SessionStore
	catalog  models.Catalog
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(renderer *Renderer, sessions *SessionStore, catalog models.Catalog) *ProductHandler {
	return &ProductHandler{
		renderer: renderer,
		sessions: sessions,
		catalog:  catalog,
	}
}

type productView struct {
	pageData
	Product   models.Product
	Added     bool
	CartTotal string
}

// ServeHTTP handles GET /shop/product/{id}
func (h *ProductHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	product, ok := h.lookup(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	view := productView{
		Product: product,
		Added:   r.URL.Query().Get("added") == "1",
	}
	view.Title = product.Name
	h.sessions.View(w, r, func(s *ShopSession) {
		view.CartCount = s.Cart.ItemCount()
		view.CartTotal = models.FormatEuro(s.Cart.Total())
	})

	h.renderer.Render(w, http.StatusOK, "product.html", view)
}

func (h *ProductHandler) lookup(r *http.Request) (models.Product, bool) {
	id, err := strconv.Atoi(strings.TrimPrefix(r.URL.Path, "/shop/product/"))
	if err != nil {
		return models.Product{}, false
	}
	return h.catalog.Find(id)
}
