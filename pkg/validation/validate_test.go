package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCookieName(t *testing.T) {
	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{"default cart key", "_cart", true},
		{"session cookie", "cart_session", true},
		{"with dots and dashes", "my.cart-v2", true},
		{"empty", "", false},
		{"space", "my cart", false},
		{"separator", "cart;path", false},
		{"equals", "cart=1", false},
		{"non ascii", "корзина", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Var(tt.value, "cookie_name")
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestSnakeCase(t *testing.T) {
	assert.NoError(t, Var("item_added", "snake_case"))
	assert.NoError(t, Var("cleared", "snake_case"))
	assert.Error(t, Var("ItemAdded", "snake_case"))
	assert.Error(t, Var("item__added", "snake_case"))
	assert.Error(t, Var("_item", "snake_case"))
}

func TestStruct(t *testing.T) {
	type sample struct {
		Cookie string `validate:"required,cookie_name"`
	}

	assert.NoError(t, Struct(sample{Cookie: "_cart"}))
	assert.Error(t, Struct(sample{Cookie: "bad cookie"}))
	assert.Error(t, Struct(sample{}))
}
