package catalog

import (
	"errors"

	"github.com/fjod/go_store/internal/domain"
)

// ErrProductNotFound is returned when a SKU is not in the catalog.
var ErrProductNotFound = errors.New("product not found")

// Catalog is the in-memory set of purchasable products, keyed by SKU.
// It is populated once at startup and read-only afterwards.
type Catalog struct {
	products map[string]domain.Product
	order    []string // load order, kept for stable display
}

func New() *Catalog {
	return &Catalog{products: make(map[string]domain.Product)}
}

// Lookup resolves a SKU to its product.
func (c *Catalog) Lookup(sku string) (domain.Product, error) {
	p, ok := c.products[sku]
	if !ok {
		return domain.Product{}, ErrProductNotFound
	}
	return p, nil
}

// Products returns all products in load order.
func (c *Catalog) Products() []domain.Product {
	out := make([]domain.Product, 0, len(c.order))
	for _, sku := range c.order {
		out = append(out, c.products[sku])
	}
	return out
}

func (c *Catalog) Len() int {
	return len(c.products)
}

// put inserts or replaces a product. A duplicate SKU keeps its original
// position in the display order.
func (c *Catalog) put(p domain.Product) {
	if _, ok := c.products[p.SKU]; !ok {
		c.order = append(c.order, p.SKU)
	}
	c.products[p.SKU] = p
}
