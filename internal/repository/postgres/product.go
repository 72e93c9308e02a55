package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"simple_cart/internal/domain"
	"simple_cart/pkg/prometheus"
)

const (
	listProductsQuery = `SELECT id, name, price FROM products ORDER BY id`
	getProductQuery   = `SELECT id, name, price FROM products WHERE id = $1`
)

func (s *Store) ListProducts(ctx context.Context) ([]domain.Product, error) {
	startTime := time.Now()
	prometheus.DatabaseQueriesTotal.WithLabelValues("select", "products").Inc()

	rows, err := s.db.QueryContext(ctx, listProductsQuery)
	if err != nil {
		s.log.Error("Failed to list products", "error", err.Error())
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}

	s.log.Debug("Products listed",
		"count", len(products),
		"query_time_ms", time.Since(startTime).Milliseconds(),
	)
	return products, nil
}

// GetProduct returns nil when no product has the id.
func (s *Store) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	prometheus.DatabaseQueriesTotal.WithLabelValues("select", "products").Inc()

	var p domain.Product
	err := s.db.QueryRowContext(ctx, getProductQuery, id).Scan(&p.ID, &p.Name, &p.Price)
	if errors.Is(err, sql.ErrNoRows) {
		s.log.Debug("Product not found", "product_id", id)
		return nil, nil
	}
	if err != nil {
		s.log.Error("Failed to get product", "product_id", id, "error", err.Error())
		return nil, fmt.Errorf("failed to get product %d: %w", id, err)
	}
	return &p, nil
}
