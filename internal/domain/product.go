package domain

import "github.com/shopspring/decimal"

// Product is a purchasable item from the catalog. Immutable once loaded.
type Product struct {
	SKU        string
	Name       string
	Price      decimal.Decimal
	Department string
}
