package cartApp

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"simple_cart/configs"
	"simple_cart/configs/loader/dotEnvLoader"
	h "simple_cart/internal/delivery/http"
	k "simple_cart/internal/delivery/kafka"
	"simple_cart/internal/repository/cachedRepo"
	"simple_cart/internal/repository/catalog"
	"simple_cart/internal/repository/postgres"
	"simple_cart/internal/repository/redisCache"
	"simple_cart/internal/repository/storage"
	"simple_cart/pkg/logger"
	lr "simple_cart/pkg/logger/logrus"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func Run() {

	envLoader := dotEnvLoader.DotEnvLoader{}
	cfg := configs.MustLoad(envLoader)
	log := logger.NewLogger(cfg)

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var medium storage.KeyValueMedium = storage.NewMemoryMedium()
	var cache *redisCache.RedisMedium
	if cfg.RD.Enabled {
		var err error
		cache, err = redisCache.NewMedium(ctx, cfg, log)
		if err != nil {
			log.Error("failed to connect to Redis", "error", err)
			os.Exit(1)
		}
		medium = cache
	}

	var products h.Catalog = catalog.NewStatic(catalog.DemoProducts()...)
	var db *postgres.Store
	if cfg.DB.Enabled {
		var err error
		db, err = postgres.NewStore(ctx, cfg, log)
		if err != nil {
			log.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		products = db
		if cache != nil {
			products = cachedRepo.NewCachedCatalog(db, cache, log)
		}
	}

	var publisher h.EventPublisher = h.NopPublisher{}
	var producer *k.Producer
	if cfg.KF.Enabled {
		var err error
		producer, err = k.NewProducer(cfg, lr.NewLogger(cfg))
		if err != nil {
			log.Error("failed to create Kafka producer", "error", err)
			os.Exit(1)
		}
		publisher = producer
	}

	router := h.SetupRouter(h.RouterConfig{
		Catalog:       products,
		Publisher:     publisher,
		Resolver:      newResolver(cfg, medium, log),
		SessionCookie: cfg.Cart.SessionCookie,
		CookieMaxAge:  cfg.Cart.CookieMaxAge,
	}, log)

	server := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("Server started", "port", cfg.HTTP.Port, "storage", cfg.Cart.Storage)
		if serverErr := server.ListenAndServe(); serverErr != nil && !errors.Is(serverErr, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", serverErr)
			os.Exit(1)
		}
	}()

	httpSrv := &http.Server{
		Addr:    ":" + cfg.HTTP.MetricsPort,
		Handler: promhttp.Handler(),
	}

	go func() {
		log.Info("Starting prometheus", "port", cfg.HTTP.MetricsPort)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP prometheus server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info("Stopping services")

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 5*time.Second)
	defer shutdownCancel()
	wg := &sync.WaitGroup{}

	wg.Add(2)
	go func() {
		defer wg.Done()
		log.Info("Shutting down server...")
		if serverErr := server.Shutdown(shutdownCtx); serverErr != nil {
			log.Error("Server shutdown error", "error", serverErr)
		}
		log.Info("Server stopped")

		if producer != nil {
			if unsent := producer.Close(); unsent > 0 {
				log.Warn("cart events left unsent", "count", unsent)
			}
		}
		if cache != nil {
			if err := cache.Close(); err != nil {
				log.Error("failed to close Redis", "error", err)
			}
		}
		if db != nil {
			if err := db.Disconnect(shutdownCtx); err != nil {
				log.Error("failed to disconnect from database", "error", err)
			}
		}
	}()

	go func() {
		defer wg.Done()
		log.Info("Shutting down prometheus server...")
		if serverErr := httpSrv.Shutdown(shutdownCtx); serverErr != nil {
			log.Error("Server shutdown error", "error", serverErr)
		}
		log.Info("Prometheus server stopped")
	}()

	completed := make(chan struct{})

	go func() {
		wg.Wait()
		close(completed)
	}()

	select {
	case <-completed:
		log.Info("All services correctly stopped")
	case <-shutdownCtx.Done():
		log.Info("Shutdown timeout exceeded, forced stop")
	}
}

func newResolver(cfg *configs.Config, medium storage.KeyValueMedium, log *slog.Logger) h.StorageResolver {
	if cfg.Cart.Storage == configs.StorageCookie {
		codec := h.NewCookieCodec(cfg.Cart.CookieHashKey, cfg.Cart.CookieBlockKey, cfg.Cart.CookieMaxAge)
		if cfg.Cart.CookieHashKey == "" {
			log.Warn("CART_COOKIE_HASH_KEY is empty, carts will not survive a restart")
		}
		return h.CookieStorage(codec, cfg.Cart.Key, cfg.Cart.CookieMaxAge, log)
	}
	return h.SessionStorage(medium, cfg.Cart.Key, log)
}
