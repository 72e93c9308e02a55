package domain_test

import (
	"encoding/json"
	"errors"
	"testing"

	"simple_cart/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func TestNewItem(t *testing.T) {
	t.Run("all fields", func(t *testing.T) {
		item, err := domain.NewItem(domain.ItemOptions{
			ID:       ptr(int64(1)),
			Name:     ptr("X"),
			Quantity: ptr(int64(10)),
			Price:    ptr(75.25),
		})

		require.NoError(t, err)
		assert.Equal(t, int64(1), item.ID())
		assert.Equal(t, "X", item.Name())
		assert.Equal(t, int64(10), item.Quantity())
		assert.Equal(t, 75.25, item.Price())
		assert.Equal(t, 752.5, item.LineTotal())
		assert.True(t, item.IsValid())
	})

	t.Run("defaults", func(t *testing.T) {
		item, err := domain.NewItem(domain.ItemOptions{})

		require.NoError(t, err)
		assert.False(t, item.HasID())
		assert.Equal(t, int64(0), item.Quantity())
		assert.Equal(t, 0.0, item.Price())
		assert.Equal(t, 0.0, item.LineTotal())
	})

	t.Run("invalid field aborts", func(t *testing.T) {
		item, err := domain.NewItem(domain.ItemOptions{ID: ptr(int64(-4))})

		assert.Nil(t, item)
		assert.True(t, errors.Is(err, domain.ErrInvalidArgument))
	})
}

func TestItem_IsValid(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]any
		want   bool
	}{
		{"id and name only", map[string]any{"id": 1, "name": "Test"}, true},
		{"id zero", map[string]any{"id": 0, "name": "Test"}, true},
		{"id only", map[string]any{"id": 1}, false},
		{"name only", map[string]any{"name": "Test"}, false},
		{"empty", map[string]any{}, false},
		{"string values", map[string]any{"id": "1", "name": "Test item one", "price": "10.00"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := &domain.Item{}
			require.NoError(t, item.Configure(tt.values))
			assert.Equal(t, tt.want, item.IsValid())
			if !tt.want {
				assert.True(t, errors.Is(item.Validate(), domain.ErrInvalidArgument))
			}
		})
	}
}

func TestItem_Setters(t *testing.T) {
	item := &domain.Item{}

	t.Run("set id", func(t *testing.T) {
		assert.NoError(t, item.SetID("25"))
		assert.Equal(t, int64(25), item.ID())

		err := item.SetID(-1)
		assert.True(t, errors.Is(err, domain.ErrInvalidArgument))
		assert.Equal(t, int64(25), item.ID(), "failed setter must not change the field")

		assert.Error(t, item.SetID(1.5))
		assert.Error(t, item.SetID(nil))
		assert.Error(t, item.SetID("abc"))
	})

	t.Run("set name", func(t *testing.T) {
		assert.NoError(t, item.SetName("Widget"))
		assert.Equal(t, "Widget", item.Name())

		assert.Error(t, item.SetName(""))
		assert.Error(t, item.SetName(12))
		assert.Equal(t, "Widget", item.Name())
	})

	t.Run("set quantity", func(t *testing.T) {
		assert.NoError(t, item.SetQuantity(0))
		assert.NoError(t, item.SetQuantity("3"))
		assert.Equal(t, int64(3), item.Quantity())

		assert.Error(t, item.SetQuantity("2.5"))
		assert.Error(t, item.SetQuantity(-2))
		assert.Equal(t, int64(3), item.Quantity())
	})

	t.Run("set price", func(t *testing.T) {
		assert.NoError(t, item.SetPrice("50.57"))
		assert.Equal(t, 50.57, item.Price())
		assert.NoError(t, item.SetPrice(4))
		assert.Equal(t, 4.0, item.Price())

		assert.Error(t, item.SetPrice(-0.25))
		assert.Error(t, item.SetPrice("free"))
		assert.Equal(t, 4.0, item.Price())
	})

	assert.Equal(t, 12.0, item.LineTotal())
}

func TestItem_Configure(t *testing.T) {
	t.Run("extension attributes", func(t *testing.T) {
		item := &domain.Item{}
		err := item.Configure(map[string]any{"id": 3, "name": "Boots", "size": "42", "colour": "black"})

		require.NoError(t, err)
		assert.Equal(t, map[string]any{"size": "42", "colour": "black"}, item.Attributes)
		assert.True(t, item.IsValid())
	})

	t.Run("read-only total", func(t *testing.T) {
		item := &domain.Item{}
		err := item.Configure(map[string]any{"total": 10})

		assert.True(t, errors.Is(err, domain.ErrReadOnlyProperty))
	})

	t.Run("invalid value stops processing", func(t *testing.T) {
		item := &domain.Item{}
		err := item.Configure(map[string]any{"id": "nope", "name": "Ignored"})

		assert.True(t, errors.Is(err, domain.ErrInvalidArgument))
		assert.Empty(t, item.Name(), "keys after the failing one are not applied")
	})
}

func TestItem_Clone(t *testing.T) {
	item := &domain.Item{}
	require.NoError(t, item.Configure(map[string]any{"id": 1, "name": "A", "gift": "yes"}))

	clone := item.Clone()
	require.NoError(t, clone.SetQuantity(9))
	clone.Attributes["gift"] = "no"

	assert.Equal(t, int64(0), item.Quantity())
	assert.Equal(t, "yes", item.Attributes["gift"])
}

func TestItem_JSON(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		item, err := domain.NewItem(domain.ItemOptions{
			ID:         ptr(int64(7)),
			Name:       ptr("Test item four"),
			Quantity:   ptr(int64(2)),
			Price:      ptr(0.25),
			Attributes: map[string]any{"note": "gift wrap"},
		})
		require.NoError(t, err)

		data, err := json.Marshal(item)
		require.NoError(t, err)

		var decoded domain.Item
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, item, &decoded)
	})

	t.Run("foreign data", func(t *testing.T) {
		var decoded domain.Item
		err := json.Unmarshal([]byte(`{"id":-5,"name":"Bad"}`), &decoded)

		assert.True(t, errors.Is(err, domain.ErrInvalidArgument))
	})

	t.Run("missing id decodes but is invalid", func(t *testing.T) {
		var decoded domain.Item
		require.NoError(t, json.Unmarshal([]byte(`{"name":"No id","quantity":1,"price":2}`), &decoded))

		assert.False(t, decoded.IsValid())
	})
}

func TestProduct_NewItem(t *testing.T) {
	product := domain.Product{ID: 3, Name: "Test item three", Price: 50.57}

	item, err := product.NewItem("2")
	require.NoError(t, err)
	assert.True(t, item.IsValid())
	assert.Equal(t, int64(2), item.Quantity())
	assert.InDelta(t, 101.14, item.LineTotal(), 1e-9)

	_, err = product.NewItem("-1")
	assert.True(t, errors.Is(err, domain.ErrInvalidArgument))
}
