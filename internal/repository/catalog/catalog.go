// Package catalog serves a fixed, in-process product list.
package catalog

import (
	"context"
	"maps"
	"slices"

	"simple_cart/internal/domain"
)

type Static struct {
	products map[int64]domain.Product
}

func NewStatic(products ...domain.Product) *Static {
	s := &Static{products: make(map[int64]domain.Product, len(products))}
	for _, p := range products {
		s.products[p.ID] = p
	}
	return s
}

// DemoProducts is the product list of the demo cart page.
func DemoProducts() []domain.Product {
	return []domain.Product{
		{ID: 1, Name: "Test item one", Price: 10.00},
		{ID: 2, Name: "Test item two", Price: 100.00},
		{ID: 3, Name: "Test item three", Price: 50.57},
		{ID: 4, Name: "Test item four", Price: 0.25},
		{ID: 5, Name: "Test item five", Price: 756.00},
	}
}

func (s *Static) ListProducts(_ context.Context) ([]domain.Product, error) {
	products := make([]domain.Product, 0, len(s.products))
	for _, id := range slices.Sorted(maps.Keys(s.products)) {
		products = append(products, s.products[id])
	}
	return products, nil
}

func (s *Static) GetProduct(_ context.Context, id int64) (*domain.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}
