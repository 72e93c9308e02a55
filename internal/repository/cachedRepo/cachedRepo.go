package cachedRepo

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"

	"simple_cart/internal/domain"
)

const (
	productsKey      = "products"
	productKeyPrefix = "product:"
)

type ProductRepository interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
}

type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

// CachedCatalog reads products through a cache. Only found products are cached and any
// cache failure falls back to the repository.
type CachedCatalog struct {
	repo  ProductRepository
	cache Cache
	log   *slog.Logger
}

func NewCachedCatalog(repo ProductRepository, cache Cache, log *slog.Logger) *CachedCatalog {
	return &CachedCatalog{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

func (r *CachedCatalog) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if r.fromCache(ctx, productsKey, &products) {
		return products, nil
	}

	products, err := r.repo.ListProducts(ctx)
	if err != nil {
		r.log.Error("failed to list products from database", "error", err)
		return nil, err
	}
	r.toCache(ctx, productsKey, products)
	return products, nil
}

func (r *CachedCatalog) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	key := productKeyPrefix + strconv.FormatInt(id, 10)

	var product domain.Product
	if r.fromCache(ctx, key, &product) {
		return &product, nil
	}
	r.log.Debug("product not found in cache, querying database", "product_id", id)

	found, err := r.repo.GetProduct(ctx, id)
	if err != nil {
		r.log.Error("failed to get product from database", "product_id", id, "error", err)
		return nil, err
	}
	if found != nil {
		r.toCache(ctx, key, found)
	}
	return found, nil
}

func (r *CachedCatalog) fromCache(ctx context.Context, key string, dst any) bool {
	data, ok, err := r.cache.Get(ctx, key)
	if err != nil {
		r.log.Warn("error getting from cache, falling back to database", "key", key, "error", err)
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		r.log.Warn("ignoring unreadable cache entry", "key", key, "error", err)
		return false
	}
	return true
}

func (r *CachedCatalog) toCache(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		r.log.Error("failed to encode cache entry", "key", key, "error", err)
		return
	}
	if err := r.cache.Set(ctx, key, data); err != nil {
		r.log.Warn("failed to save to cache", "key", key, "error", err)
	}
}
