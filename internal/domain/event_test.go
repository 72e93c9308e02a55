package domain_test

import (
	"testing"
	"time"

	"simple_cart/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestCartEvent_Validate(t *testing.T) {
	valid := func() domain.CartEvent {
		return domain.CartEvent{
			Type:       domain.EventQuantityUpdated,
			CartID:     "0b6f4d1e-4f0e-4a43-9a53-8b7f0f5e2c11",
			ItemID:     3,
			Quantity:   4,
			ItemCount:  1,
			CartTotal:  202.28,
			OccurredAt: time.Now(),
		}
	}

	tests := []struct {
		name    string
		mutate  func(e *domain.CartEvent)
		wantErr bool
	}{
		{"valid", func(e *domain.CartEvent) {}, false},
		{"cleared cart without item", func(e *domain.CartEvent) {
			e.Type, e.ItemID, e.Quantity, e.ItemCount, e.CartTotal = domain.EventCartCleared, 0, 0, 0, 0
		}, false},
		{"unknown type", func(e *domain.CartEvent) { e.Type = "item_sold" }, true},
		{"missing cart id", func(e *domain.CartEvent) { e.CartID = "" }, true},
		{"cart id too long", func(e *domain.CartEvent) { e.CartID = string(make([]byte, 65)) }, true},
		{"negative quantity", func(e *domain.CartEvent) { e.Quantity = -1 }, true},
		{"negative total", func(e *domain.CartEvent) { e.CartTotal = -0.01 }, true},
		{"missing time", func(e *domain.CartEvent) { e.OccurredAt = time.Time{} }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := valid()
			tt.mutate(&event)

			err := event.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
