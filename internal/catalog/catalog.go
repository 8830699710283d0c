// Package catalog serves the product listing backing the storefront.
// Products ship embedded in the binary; there is no upstream product
// service to call.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/tindahan/storefront/internal/domain"
	apperrors "github.com/tindahan/storefront/pkg/errors"
)

//go:embed products.json
var productsJSON []byte

// Catalog is a read-only product index.
type Catalog struct {
	products []domain.Product
	byID     map[string]domain.Product
}

// Load parses the embedded product data.
func Load() (*Catalog, error) {
	return loadFrom(productsJSON)
}

func loadFrom(data []byte) (*Catalog, error) {
	var products []domain.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("parse product catalog: %w", err)
	}

	byID := make(map[string]domain.Product, len(products))
	for _, p := range products {
		if p.ID == "" {
			return nil, fmt.Errorf("parse product catalog: product with empty id")
		}
		if _, dup := byID[p.ID]; dup {
			return nil, fmt.Errorf("parse product catalog: duplicate product id %q", p.ID)
		}
		byID[p.ID] = p
	}

	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })

	return &Catalog{products: products, byID: byID}, nil
}

// List returns every product, ordered by id.
func (c *Catalog) List() []domain.Product {
	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out
}

// GetByID looks up a single product.
func (c *Catalog) GetByID(id string) (domain.Product, error) {
	p, ok := c.byID[id]
	if !ok {
		return domain.Product{}, apperrors.NotFound("product", id)
	}
	return p, nil
}

// Search matches the query against product names, case-insensitively.
// An empty query returns the full listing.
func (c *Catalog) Search(query string) []domain.Product {
	query = strings.TrimSpace(query)
	if query == "" {
		return c.List()
	}
	needle := strings.ToLower(query)

	var out []domain.Product
	for _, p := range c.products {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			out = append(out, p)
		}
	}
	return out
}
