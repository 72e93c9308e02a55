package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"simple_cart/internal/domain"
	"simple_cart/pkg/prometheus"
)

// ErrMergeFailed is returned when an added quantity cannot be merged into the stored line.
var ErrMergeFailed = errors.New("item could not be merged into the cart")

// Cart validates items and delegates every read and write to its store.
// It holds no item state of its own.
type Cart struct {
	store store
	log   *slog.Logger
}

func NewCart(store store, log *slog.Logger) *Cart {
	return &Cart{store: store, log: log}
}

func (c *Cart) GetItem(ctx context.Context, id int64) (*domain.Item, error) {
	return c.store.Get(ctx, id)
}

func (c *Cart) GetItems(ctx context.Context) (domain.Items, error) {
	return c.store.All(ctx)
}

// AddItem merges the item into the cart, summing quantities when the id is already present.
func (c *Cart) AddItem(ctx context.Context, item *domain.Item) (err error) {
	defer func() { c.record("add", err) }()

	if item == nil {
		return fmt.Errorf("%w: item is nil", domain.ErrInvalidArgument)
	}
	if err := item.Validate(); err != nil {
		c.log.Debug("rejected invalid item", "error", err)
		return err
	}

	ok, err := c.store.Add(ctx, item)
	if err != nil {
		c.log.Error("failed to add item", "item_id", item.ID(), "error", err)
		return fmt.Errorf("add item %d: %w", item.ID(), err)
	}
	if !ok {
		c.log.Warn("quantity merge overflowed", "item_id", item.ID(), "quantity", item.Quantity())
		return fmt.Errorf("%w: item %d", ErrMergeFailed, item.ID())
	}

	c.log.Debug("item added", "item_id", item.ID(), "quantity", item.Quantity())
	return nil
}

// AddItems adds each item in order. Items added before a failure stay in the cart.
func (c *Cart) AddItems(ctx context.Context, items []*domain.Item) error {
	for _, item := range items {
		if err := c.AddItem(ctx, item); err != nil {
			return err
		}
	}
	return nil
}

// SetItem stores the item, replacing any line with the same id.
func (c *Cart) SetItem(ctx context.Context, item *domain.Item) (err error) {
	defer func() { c.record("set", err) }()

	if item == nil {
		return fmt.Errorf("%w: item is nil", domain.ErrInvalidArgument)
	}
	if err := item.Validate(); err != nil {
		return err
	}

	if err := c.store.Set(ctx, item); err != nil {
		c.log.Error("failed to set item", "item_id", item.ID(), "error", err)
		return fmt.Errorf("set item %d: %w", item.ID(), err)
	}
	return nil
}

// SetItems empties the cart and then adds every item, so duplicate ids in items are merged.
func (c *Cart) SetItems(ctx context.Context, items []*domain.Item) error {
	if err := c.Clear(ctx); err != nil {
		return err
	}
	return c.AddItems(ctx, items)
}

// RemoveItem deletes the line and returns it, or nil when the id was not in the cart.
func (c *Cart) RemoveItem(ctx context.Context, id int64) (removed *domain.Item, err error) {
	defer func() { c.record("remove", err) }()

	item, err := c.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}

	ok, err := c.store.Remove(ctx, id)
	if err != nil {
		c.log.Error("failed to remove item", "item_id", id, "error", err)
		return nil, fmt.Errorf("remove item %d: %w", id, err)
	}
	if !ok {
		return nil, nil
	}
	return item, nil
}

func (c *Cart) HasItem(ctx context.Context, id int64) (bool, error) {
	return c.store.Has(ctx, id)
}

func (c *Cart) Clear(ctx context.Context) (err error) {
	defer func() { c.record("clear", err) }()

	if err := c.store.Clear(ctx); err != nil {
		c.log.Error("failed to clear cart", "error", err)
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

// Total is the sum of every line total.
func (c *Cart) Total(ctx context.Context) (float64, error) {
	items, err := c.store.All(ctx)
	if err != nil {
		return 0, err
	}

	var total float64
	for _, item := range items {
		total += item.LineTotal()
	}
	return total, nil
}

// Count is the number of distinct lines, not the sum of quantities.
func (c *Cart) Count(ctx context.Context) (int, error) {
	items, err := c.store.All(ctx)
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

// UpdateQuantity replaces the quantity of a stored line. It returns nil when the id is not
// in the cart.
func (c *Cart) UpdateQuantity(ctx context.Context, id int64, quantity any) (*domain.Item, error) {
	item, err := c.store.Get(ctx, id)
	if err != nil || item == nil {
		return nil, err
	}
	if err := item.SetQuantity(quantity); err != nil {
		return nil, err
	}
	if err := c.SetItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (c *Cart) record(operation string, err error) {
	prometheus.CartOperations.WithLabelValues(operation, prometheus.Status(err)).Inc()
}
