package redisCache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"simple_cart/configs"
	"simple_cart/pkg/prometheus"

	"github.com/redis/go-redis/v9"
)

// RedisMedium is a session key-value medium backed by Redis string keys.
type RedisMedium struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	log    *slog.Logger
}

func NewMedium(ctx context.Context, cfg *configs.Config, log *slog.Logger) (*RedisMedium, error) {
	db := redis.NewClient(&redis.Options{
		Addr:         cfg.RD.Host,
		DB:           cfg.RD.DB,
		Password:     cfg.RD.Password,
		MaxRetries:   cfg.RD.MaxRetries,
		DialTimeout:  cfg.RD.DialTimeout,
		ReadTimeout:  cfg.RD.ReadTimeout,
		WriteTimeout: cfg.RD.WriteTimeout,
	})

	log.Info("attempting to connect to Redis", "host", cfg.RD.Host, "db", cfg.RD.DB)

	if err := db.Ping(ctx).Err(); err != nil {
		log.Error("Redis connection failed", "error", err, "host", cfg.RD.Host)
		_ = db.Close()
		return nil, err
	}
	log.Info("successfully connected to Redis", "host", cfg.RD.Host)

	return NewMediumWithClient(db, cfg.RD.Prefix, cfg.RD.TTL, log), nil
}

// NewMediumWithClient wraps an existing client. A zero ttl keeps keys forever.
func NewMediumWithClient(client *redis.Client, prefix string, ttl time.Duration, log *slog.Logger) *RedisMedium {
	return &RedisMedium{
		client: client,
		prefix: prefix,
		ttl:    ttl,
		log:    log,
	}
}

func (r *RedisMedium) Get(ctx context.Context, key string) ([]byte, bool, error) {
	start := time.Now()
	data, err := r.client.Get(ctx, r.prefix+key).Bytes()
	r.observe("get", start, ignoreNil(err))

	if errors.Is(err, redis.Nil) {
		r.log.Debug("cart not found in Redis", "key", key)
		return nil, false, nil
	} else if err != nil {
		r.log.Error("error getting from Redis", "key", key, "error", err)
		return nil, false, err
	}
	return data, true, nil
}

func (r *RedisMedium) Set(ctx context.Context, key string, value []byte) error {
	start := time.Now()
	err := r.client.Set(ctx, r.prefix+key, value, r.ttl).Err()
	r.observe("set", start, err)

	if err != nil {
		r.log.Error("error while setting to Redis", "key", key, "error", err)
		return err
	}
	r.log.Debug("cart stored in Redis", "key", key, "bytes", len(value))
	return nil
}

func (r *RedisMedium) Remove(ctx context.Context, key string) error {
	start := time.Now()
	err := r.client.Del(ctx, r.prefix+key).Err()
	r.observe("del", start, err)

	if err != nil {
		r.log.Error("error deleting from Redis", "key", key, "error", err)
	}
	return err
}

func (r *RedisMedium) Has(ctx context.Context, key string) (bool, error) {
	start := time.Now()
	n, err := r.client.Exists(ctx, r.prefix+key).Result()
	r.observe("exists", start, err)

	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *RedisMedium) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return r.client.Ping(pingCtx).Err()
}

func (r *RedisMedium) Close() error {
	return r.client.Close()
}

func (r *RedisMedium) observe(operation string, start time.Time, err error) {
	prometheus.RedisOperationsTotal.WithLabelValues(operation, prometheus.Status(err)).Inc()
	prometheus.RedisOperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

func ignoreNil(err error) error {
	if errors.Is(err, redis.Nil) {
		return nil
	}
	return err
}
