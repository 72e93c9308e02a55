package usecase

import (
	"context"
	"fmt"

	"simple_cart/internal/domain"
)

// At returns the item stored under id.
func (c *Cart) At(ctx context.Context, id int64) (*domain.Item, error) {
	return c.GetItem(ctx, id)
}

// Put adds the item when index is nil and replaces it when index equals the item's id.
func (c *Cart) Put(ctx context.Context, index *int64, item *domain.Item) error {
	if index == nil {
		return c.AddItem(ctx, item)
	}
	if item == nil {
		return fmt.Errorf("%w: item is nil", domain.ErrInvalidArgument)
	}
	if !item.HasID() || *index != item.ID() {
		return fmt.Errorf("%w: index %d", domain.ErrIndexMismatch, *index)
	}
	return c.SetItem(ctx, item)
}

func (c *Cart) Unset(ctx context.Context, id int64) error {
	_, err := c.RemoveItem(ctx, id)
	return err
}

func (c *Cart) Exists(ctx context.Context, id int64) (bool, error) {
	return c.HasItem(ctx, id)
}
