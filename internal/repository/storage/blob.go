package storage

import (
	"context"
	"fmt"
	"log/slog"

	"simple_cart/internal/domain"
	"simple_cart/pkg/prometheus"
)

// SerializedBlobStorage keeps the serialized collection in a single blob, such as
// a client-side cookie. Every read decodes the whole blob and every write replaces it.
type SerializedBlobStorage struct {
	blob BlobMedium
	name string
	log  *slog.Logger
}

func NewSerializedBlobStorage(blob BlobMedium, name string, log *slog.Logger) *SerializedBlobStorage {
	if name == "" {
		name = DefaultKey
	}
	return &SerializedBlobStorage{
		blob: blob,
		name: name,
		log:  log,
	}
}

func (s *SerializedBlobStorage) All(_ context.Context) (domain.Items, error) {
	value, ok := s.blob.Get(s.name)
	if !ok {
		return make(domain.Items), nil
	}

	items, dropped := decodeItems([]byte(value))
	if dropped > 0 {
		s.log.Debug("dropped undecodable cart entries", "blob", s.name, "dropped", dropped)
		prometheus.CartStorageDropped.WithLabelValues("cookie").Add(float64(dropped))
	}
	return items, nil
}

func (s *SerializedBlobStorage) Get(ctx context.Context, id int64) (*domain.Item, error) {
	return getItem(ctx, s.All, id)
}

func (s *SerializedBlobStorage) Has(ctx context.Context, id int64) (bool, error) {
	return hasItem(ctx, s.All, id)
}

func (s *SerializedBlobStorage) Set(ctx context.Context, item *domain.Item) error {
	return setItem(ctx, s.All, s.persist, item)
}

func (s *SerializedBlobStorage) Add(ctx context.Context, item *domain.Item) (bool, error) {
	return addItem(ctx, s.All, s.persist, item)
}

func (s *SerializedBlobStorage) Remove(ctx context.Context, id int64) (bool, error) {
	return removeItem(ctx, s.All, s.persist, id)
}

// Clear drops the blob itself; an empty collection is never written.
func (s *SerializedBlobStorage) Clear(_ context.Context) error {
	s.blob.Clear(s.name)
	return nil
}

func (s *SerializedBlobStorage) persist(_ context.Context, items domain.Items) error {
	data, err := encodeItems(items)
	if err != nil {
		return fmt.Errorf("failed to encode cart blob %q: %w", s.name, err)
	}
	if err := s.blob.Set(s.name, string(data)); err != nil {
		return fmt.Errorf("failed to write cart blob %q: %w", s.name, err)
	}
	return nil
}
