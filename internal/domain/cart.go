package domain

import "github.com/shopspring/decimal"

// CartLine is one product in a cart with its quantity. Quantity is
// always at least 1; repeated adds of the same SKU bump the quantity
// instead of creating a second line.
type CartLine struct {
	Product  Product
	Quantity int
}

// LineTotal returns unit price times quantity.
func (l CartLine) LineTotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
