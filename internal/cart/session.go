package cart

import (
	"github.com/fjod/go_store/internal/catalog"
	"github.com/fjod/go_store/internal/domain"
)

// Session owns the state of one interactive shopping session: the
// loaded catalog plus the current cart. Callers pass it into every
// operation; there is no package-level state.
type Session struct {
	Catalog *catalog.Catalog
	Cart    *Cart
}

func NewSession(c *catalog.Catalog) *Session {
	return &Session{Catalog: c, Cart: New()}
}

// AddProduct resolves the SKU against the catalog and adds it to the
// cart. An unknown SKU returns catalog.ErrProductNotFound and leaves
// the cart untouched.
func (s *Session) AddProduct(sku string) (domain.Product, error) {
	p, err := s.Catalog.Lookup(sku)
	if err != nil {
		return domain.Product{}, err
	}
	s.Cart.Add(p)
	return p, nil
}
