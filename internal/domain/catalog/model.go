package catalog

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultCategory always exists and receives the products of deleted categories.
const DefaultCategory = "ALLGEMEIN"

// NewProductName is the placeholder name of a freshly added product.
const NewProductName = "Neuer Artikel"

// Product is a sellable item. Its display order is its index in the catalog.
type Product struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Active   bool            `json:"active"`
	Category string          `json:"category"`
}

// ProductPatch holds the fields that can be updated on a product.
type ProductPatch struct {
	Name     *string
	Price    *decimal.Decimal
	Active   *bool
	Category *string
}

// NormalizeCategory trims and uppercases a category label.
func NormalizeCategory(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}
