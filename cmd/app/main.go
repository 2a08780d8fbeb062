package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/mvargas/cafe-orders/internal/cache"
	"github.com/mvargas/cafe-orders/internal/config"
	"github.com/mvargas/cafe-orders/internal/domain"
	"github.com/mvargas/cafe-orders/internal/events"
	"github.com/mvargas/cafe-orders/internal/httpapi"
	"github.com/mvargas/cafe-orders/internal/observability"
	"github.com/mvargas/cafe-orders/internal/processor"
	"github.com/mvargas/cafe-orders/internal/store/memory"
	"github.com/mvargas/cafe-orders/internal/store/postgres"
)

func main() {
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics := observability.NewInmem(1000)

	var (
		cafes     domain.CafeRepository
		customers domain.CustomerRepository
		orders    domain.OrderRepository
	)
	switch cfg.Storage {
	case config.StoragePostgres:
		pool, err := postgres.Connect(ctx, cfg.DSN())
		if err != nil {
			logger.Fatal("postgres connect failed", zap.Error(err))
		}
		defer pool.Close()
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			logger.Fatal("schema bootstrap failed", zap.Error(err))
		}

		cafes = postgres.NewCafeStore(pool)
		customers = postgres.NewCustomerStore(pool)

		orderCache, err := cache.New(postgres.NewOrderStore(pool), cfg.CacheCap, metrics)
		if err != nil {
			logger.Fatal("cache init failed", zap.Error(err))
		}
		orderCache.Warm(ctx)
		orders = orderCache

		logger.Info("using postgres storage", zap.Int("cache_cap", cfg.CacheCap))
	default:
		cafes = memory.NewCafeStore()
		customers = memory.NewCustomerStore()
		orders = memory.NewOrderStore()
		logger.Info("using in-memory storage")
	}

	var publisher processor.EventPublisher
	if cfg.Events.Enabled {
		if err := events.EnsureTopic(ctx, cfg.Events.Brokers, cfg.Events.Topic, 3, 1, logger); err != nil {
			logger.Fatal("kafka topic bootstrap failed", zap.Error(err))
		}
		pub := events.NewPublisher(cfg.Events.Brokers, cfg.Events.Topic, cfg.Retry, logger)
		defer pub.Close()
		publisher = pub
		logger.Info("event publishing enabled",
			zap.Strings("brokers", cfg.Events.Brokers),
			zap.String("topic", cfg.Events.Topic),
		)
	}

	proc := processor.New(cafes, customers, orders, publisher, logger, metrics)
	server := httpapi.New(cafes, customers, orders, proc, logger, metrics)

	logger.Info("server listening", zap.String("addr", cfg.HTTPAddr))
	if err := server.ListenAndServe(ctx, cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("server stopped")
}
