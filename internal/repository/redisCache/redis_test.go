package redisCache

import (
	"context"
	"testing"
	"time"

	"simple_cart/internal/domain"
	"simple_cart/internal/repository/storage"
	"simple_cart/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMedium(t *testing.T, ttl time.Duration) (*RedisMedium, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewMediumWithClient(client, "cart:", ttl, logger.NewTestLogger()), server
}

func TestRedisMedium_GetSetRemove(t *testing.T) {
	ctx := context.Background()
	medium, server := setupMedium(t, 0)

	t.Run("missing key", func(t *testing.T) {
		data, ok, err := medium.Get(ctx, "_cart:abc")

		assert.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, data)

		has, err := medium.Has(ctx, "_cart:abc")
		assert.NoError(t, err)
		assert.False(t, has)
	})

	t.Run("set and get", func(t *testing.T) {
		require.NoError(t, medium.Set(ctx, "_cart:abc", []byte(`[]`)))

		data, ok, err := medium.Get(ctx, "_cart:abc")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []byte(`[]`), data)

		raw, err := server.Get("cart:_cart:abc")
		require.NoError(t, err)
		assert.Equal(t, `[]`, raw, "keys carry the medium prefix")

		has, err := medium.Has(ctx, "_cart:abc")
		require.NoError(t, err)
		assert.True(t, has)
	})

	t.Run("remove", func(t *testing.T) {
		require.NoError(t, medium.Remove(ctx, "_cart:abc"))

		assert.False(t, server.Exists("cart:_cart:abc"))
		assert.NoError(t, medium.Remove(ctx, "_cart:abc"), "removing a missing key is not an error")
	})
}

func TestRedisMedium_TTL(t *testing.T) {
	ctx := context.Background()
	medium, server := setupMedium(t, time.Hour)

	require.NoError(t, medium.Set(ctx, "_cart:ttl", []byte(`[]`)))
	assert.Equal(t, time.Hour, server.TTL("cart:_cart:ttl"))

	server.FastForward(2 * time.Hour)
	_, ok, err := medium.Get(ctx, "_cart:ttl")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisMedium_ServerDown(t *testing.T) {
	ctx := context.Background()
	medium, server := setupMedium(t, 0)
	server.Close()

	_, _, err := medium.Get(ctx, "_cart:down")
	assert.Error(t, err)
	assert.Error(t, medium.Set(ctx, "_cart:down", []byte(`[]`)))
	assert.Error(t, medium.Ping(ctx))
}

func TestRedisMedium_BacksKeyValueStorage(t *testing.T) {
	ctx := context.Background()
	medium, server := setupMedium(t, 0)
	store := storage.NewKeyValueStorage(medium, "_cart:session-1", logger.NewTestLogger())

	id, name, quantity, price := int64(1), "Widget", int64(2), 10.0
	item, err := domain.NewItem(domain.ItemOptions{ID: &id, Name: &name, Quantity: &quantity, Price: &price})
	require.NoError(t, err)

	_, err = store.Add(ctx, item)
	require.NoError(t, err)
	_, err = store.Add(ctx, item)
	require.NoError(t, err)

	got, err := store.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(4), got.Quantity())
	assert.True(t, server.Exists("cart:_cart:session-1"))

	require.NoError(t, store.Clear(ctx))
	assert.False(t, server.Exists("cart:_cart:session-1"))
}
