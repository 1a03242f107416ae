// Package catalog loads the product catalogue from gzipped JSON-lines files
// on the local file system or in S3.
package catalog

import (
	"context"
	"sort"
	"strings"

	"rentlify/internal/model"
)

// Loader reads a gzipped catalogue file and returns its products.
type Loader interface {
	Load(ctx context.Context, path string) (*Set, error)
}

// Set is an in-memory product catalogue keyed by product id. It is
// read-only once loaded.
type Set struct {
	products map[string]model.Product
}

// NewSet creates an empty catalogue.
func NewSet(capacity int) *Set {
	return &Set{
		products: make(map[string]model.Product, capacity),
	}
}

// Add inserts or replaces a product.
func (s *Set) Add(p model.Product) {
	s.products[p.ID] = p
}

// Size returns the number of products.
func (s *Set) Size() int {
	return len(s.products)
}

// GetByID returns the product or nil when unknown.
func (s *Set) GetByID(_ context.Context, id string) (*model.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// GetAll returns products ordered by name with pagination.
func (s *Set) GetAll(_ context.Context, limit, offset int) ([]model.Product, error) {
	all := s.Products()
	if offset >= len(all) {
		return []model.Product{}, nil
	}
	end := min(offset+limit, len(all))
	return all[offset:end], nil
}

// Products returns every product ordered by name, then id.
func (s *Set) Products() []model.Product {
	out := make([]model.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		ni, nj := strings.ToLower(out[i].Name), strings.ToLower(out[j].Name)
		if ni != nj {
			return ni < nj
		}
		return out[i].ID < out[j].ID
	})
	return out
}
