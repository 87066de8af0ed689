// Package handlers serves the demo storefront: a PrestaShop-shaped shop
// rendered inside an iframe so the page objects can run without the live demo.
package handlers

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"

	"github.com/adyen/storefront-e2e/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = []string{
	"shell.html",
	"home.html",
	"product.html",
	"cart.html",
	"order.html",
	"confirmation.html",
}

// Renderer holds the parsed page templates
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses every page together with the shared layout
func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(pageTemplates))}
	for _, name := range pageTemplates {
		tmpl, err := template.New(name).ParseFS(templateFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		r.pages[name] = tmpl
	}
	return r, nil
}

// Render executes the named page into a buffer first so a template error
// never leaves a half-written response
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, data any) {
	tmpl, ok := r.pages[name]
	if !ok {
		log.Printf("Unknown template %s", name)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		log.Printf("Error rendering template %s: %v", name, err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("Error writing response: %v", err)
	}
}

// pageData is what the shared header needs
type pageData struct {
	Title     string
	CartCount int
}

// cartSummary is a copy of the cart taken under the session lock
type cartSummary struct {
	Lines      []models.CartLine
	ItemsLabel string
	Total      string
}

func summarize(cart *models.Cart) cartSummary {
	count := cart.ItemCount()
	label := fmt.Sprintf("%d items", count)
	if count == 1 {
		label = "1 item"
	}
	return cartSummary{
		Lines:      append([]models.CartLine(nil), cart.Lines...),
		ItemsLabel: label,
		Total:      models.FormatEuro(cart.Total()),
	}
}
