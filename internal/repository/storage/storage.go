// Package storage persists cart collections. Both backends share one contract:
// the whole collection is read from the medium, changed in memory and written back.
package storage

import (
	"context"

	"simple_cart/internal/domain"
)

// DefaultKey is the namespace key (session) or blob name (cookie) a cart is stored under.
const DefaultKey = "_cart"

type Storage interface {
	// All returns every stored item keyed by id. Entries that do not decode into a
	// valid item are dropped.
	All(ctx context.Context) (domain.Items, error)
	// Get returns nil when no item is stored under id.
	Get(ctx context.Context, id int64) (*domain.Item, error)
	Has(ctx context.Context, id int64) (bool, error)
	// Set inserts or replaces the item stored under item.ID().
	Set(ctx context.Context, item *domain.Item) error
	// Add merges by id: an existing entry gets the two quantities summed. It reports
	// false when the merged quantity cannot be represented.
	Add(ctx context.Context, item *domain.Item) (bool, error)
	// Remove reports whether an item was deleted.
	Remove(ctx context.Context, id int64) (bool, error)
	// Clear deletes the collection from the medium.
	Clear(ctx context.Context) error
}

// KeyValueMedium is a session-style store of byte values.
type KeyValueMedium interface {
	// Get reports false when the key does not exist.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
	Has(ctx context.Context, key string) (bool, error)
}

// BlobMedium holds named opaque values, e.g. the cookies of one request/response pair.
type BlobMedium interface {
	Get(name string) (string, bool)
	Set(name, value string) error
	Clear(name string)
}
