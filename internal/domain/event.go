package domain

import (
	"time"

	"simple_cart/pkg/validation"
)

type CartEventType string

const (
	EventItemAdded       CartEventType = "item_added"
	EventItemRemoved     CartEventType = "item_removed"
	EventQuantityUpdated CartEventType = "quantity_updated"
	EventCartCleared     CartEventType = "cart_cleared"
)

// CartEvent records one user action on a cart.
type CartEvent struct {
	Type       CartEventType `json:"type" validate:"required,snake_case,oneof=item_added item_removed quantity_updated cart_cleared"`
	CartID     string        `json:"cart_id" validate:"required,max=64,printascii"`
	ItemID     int64         `json:"item_id,omitempty" validate:"min=0"`
	Quantity   int64         `json:"quantity,omitempty" validate:"min=0"`
	ItemCount  int           `json:"item_count" validate:"min=0"`
	CartTotal  float64       `json:"cart_total" validate:"min=0"`
	OccurredAt time.Time     `json:"occurred_at" validate:"required"`
}

func (e *CartEvent) Validate() error {
	return validation.Struct(e)
}
