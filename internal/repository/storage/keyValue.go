package storage

import (
	"context"
	"fmt"
	"log/slog"

	"simple_cart/internal/domain"
	"simple_cart/pkg/prometheus"
)

// KeyValueStorage keeps the whole collection under one namespace key of a
// session-style medium. Every write replaces the value under that key.
type KeyValueStorage struct {
	medium KeyValueMedium
	key    string
	log    *slog.Logger
}

func NewKeyValueStorage(medium KeyValueMedium, key string, log *slog.Logger) *KeyValueStorage {
	if key == "" {
		key = DefaultKey
	}
	return &KeyValueStorage{
		medium: medium,
		key:    key,
		log:    log,
	}
}

func (s *KeyValueStorage) All(ctx context.Context) (domain.Items, error) {
	data, ok, err := s.medium.Get(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to read cart %q: %w", s.key, err)
	}
	if !ok {
		return make(domain.Items), nil
	}

	items, dropped := decodeItems(data)
	if dropped > 0 {
		s.log.Debug("dropped undecodable cart entries", "key", s.key, "dropped", dropped)
		prometheus.CartStorageDropped.WithLabelValues("session").Add(float64(dropped))
	}
	return items, nil
}

func (s *KeyValueStorage) Get(ctx context.Context, id int64) (*domain.Item, error) {
	return getItem(ctx, s.All, id)
}

func (s *KeyValueStorage) Has(ctx context.Context, id int64) (bool, error) {
	return hasItem(ctx, s.All, id)
}

func (s *KeyValueStorage) Set(ctx context.Context, item *domain.Item) error {
	return setItem(ctx, s.All, s.persist, item)
}

func (s *KeyValueStorage) Add(ctx context.Context, item *domain.Item) (bool, error) {
	return addItem(ctx, s.All, s.persist, item)
}

func (s *KeyValueStorage) Remove(ctx context.Context, id int64) (bool, error) {
	return removeItem(ctx, s.All, s.persist, id)
}

func (s *KeyValueStorage) Clear(ctx context.Context) error {
	exists, err := s.medium.Has(ctx, s.key)
	if err != nil {
		return fmt.Errorf("failed to check cart %q: %w", s.key, err)
	}
	if !exists {
		return nil
	}
	if err := s.medium.Remove(ctx, s.key); err != nil {
		return fmt.Errorf("failed to clear cart %q: %w", s.key, err)
	}
	return nil
}

func (s *KeyValueStorage) persist(ctx context.Context, items domain.Items) error {
	data, err := encodeItems(items)
	if err != nil {
		return fmt.Errorf("failed to encode cart %q: %w", s.key, err)
	}
	if err := s.medium.Set(ctx, s.key, data); err != nil {
		return fmt.Errorf("failed to write cart %q: %w", s.key, err)
	}
	s.log.Debug("cart persisted", "key", s.key, "items", len(items))
	return nil
}
