package usecase

import (
	"context"

	"simple_cart/internal/domain"
)

type store interface {
	All(ctx context.Context) (domain.Items, error)
	Get(ctx context.Context, id int64) (*domain.Item, error)
	Has(ctx context.Context, id int64) (bool, error)
	Set(ctx context.Context, item *domain.Item) error
	Add(ctx context.Context, item *domain.Item) (bool, error)
	Remove(ctx context.Context, id int64) (bool, error)
	Clear(ctx context.Context) error
}
