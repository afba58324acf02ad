package cart

import (
	"github.com/shopspring/decimal"

	"github.com/fjod/go_store/internal/domain"
)

// Cart holds the current order's line items, at most one line per SKU.
// Lines keep their insertion order for display.
type Cart struct {
	lines map[string]*domain.CartLine
	order []string
}

func New() *Cart {
	return &Cart{lines: make(map[string]*domain.CartLine)}
}

// Add puts the product in the cart. Adding a product that is already
// present increments its line quantity instead of creating a duplicate.
func (c *Cart) Add(p domain.Product) {
	if line, ok := c.lines[p.SKU]; ok {
		line.Quantity++
		return
	}
	c.lines[p.SKU] = &domain.CartLine{Product: p, Quantity: 1}
	c.order = append(c.order, p.SKU)
}

// Lines returns a snapshot of the cart's lines in insertion order.
// Mutating the result does not affect the cart.
func (c *Cart) Lines() []domain.CartLine {
	out := make([]domain.CartLine, 0, len(c.order))
	for _, sku := range c.order {
		out = append(out, *c.lines[sku])
	}
	return out
}

// Total sums unit price times quantity over all lines. It is computed
// fresh on every call, never cached.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, sku := range c.order {
		total = total.Add(c.lines[sku].LineTotal())
	}
	return total
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Clear removes all lines.
func (c *Cart) Clear() {
	c.lines = make(map[string]*domain.CartLine)
	c.order = nil
}
