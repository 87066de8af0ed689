package models

import "fmt"

// Product is an item sold by the demo storefront
type Product struct {
	ID          int
	Name        string
	Description string
	Price       int64 // cents, tax included
}

// FormattedPrice returns the price the way the storefront displays it
func (p Product) FormattedPrice() string {
	return FormatEuro(p.Price)
}

// FormatEuro formats an amount in cents as "€12.34"
func FormatEuro(cents int64) string {
	return fmt.Sprintf("€%d.%02d", cents/100, cents%100)
}

// Catalog is the fixed product list of the demo storefront
type Catalog []Product

// DefaultCatalog mirrors a slice of the PrestaShop demo catalog
func DefaultCatalog() Catalog {
	return Catalog{
		{ID: 1, Name: "Hummingbird printed t-shirt", Description: "Regular fit, round neckline, short sleeves.", Price: 2390},
		{ID: 2, Name: "Hummingbird printed sweater", Description: "Regular fit, round neckline, long sleeves.", Price: 3590},
		{ID: 3, Name: "The best is yet to come' Framed poster", Description: "Printed on rigid matt paper.", Price: 2900},
		{ID: 4, Name: "Today is a good day Framed poster", Description: "Printed on rigid paper with matt finish.", Price: 2900},
		{ID: 5, Name: "Mug The best is yet to come", Description: "White ceramic mug, 325ml.", Price: 1428},
		{ID: 6, Name: "Mountain fox notebook", Description: "120 sheets notebook with hard cover.", Price: 1548},
		{ID: 7, Name: "Brown bear cushion", Description: "Cushion with removable cover.", Price: 2294},
	}
}

// Find returns the product with id
func (c Catalog) Find(id int) (Product, bool) {
	for _, p := range c {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}
