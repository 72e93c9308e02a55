package storage

import (
	"context"
	"fmt"
	"math"

	"simple_cart/internal/domain"
)

// Both backends compose these functions over their own load and persist steps.
type (
	loadFunc    func(ctx context.Context) (domain.Items, error)
	persistFunc func(ctx context.Context, items domain.Items) error
)

func getItem(ctx context.Context, load loadFunc, id int64) (*domain.Item, error) {
	items, err := load(ctx)
	if err != nil {
		return nil, err
	}
	return items[id], nil
}

func hasItem(ctx context.Context, load loadFunc, id int64) (bool, error) {
	item, err := getItem(ctx, load, id)
	return item != nil, err
}

func setItem(ctx context.Context, load loadFunc, persist persistFunc, item *domain.Item) error {
	if item == nil {
		return fmt.Errorf("%w: cannot store a nil item", domain.ErrInvalidArgument)
	}
	items, err := load(ctx)
	if err != nil {
		return err
	}
	items[item.ID()] = item.Clone()
	return persist(ctx, items)
}

func addItem(ctx context.Context, load loadFunc, persist persistFunc, item *domain.Item) (bool, error) {
	if item == nil {
		return false, fmt.Errorf("%w: cannot add a nil item", domain.ErrInvalidArgument)
	}
	items, err := load(ctx)
	if err != nil {
		return false, err
	}

	if old, ok := items[item.ID()]; ok {
		if item.Quantity() > math.MaxInt64-old.Quantity() {
			return false, nil
		}
		merged := old.Clone()
		if err := merged.SetQuantity(old.Quantity() + item.Quantity()); err != nil {
			return false, nil
		}
		items[item.ID()] = merged
	} else {
		items[item.ID()] = item.Clone()
	}

	if err := persist(ctx, items); err != nil {
		return false, err
	}
	return true, nil
}

func removeItem(ctx context.Context, load loadFunc, persist persistFunc, id int64) (bool, error) {
	items, err := load(ctx)
	if err != nil {
		return false, err
	}
	if _, ok := items[id]; !ok {
		return false, nil
	}
	delete(items, id)
	if err := persist(ctx, items); err != nil {
		return false, err
	}
	return true, nil
}
