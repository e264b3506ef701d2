package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/fx"

	"github.com/nguyentranbao-ct/storefront/internal/cart"
	"github.com/nguyentranbao-ct/storefront/internal/checkout"
	"github.com/nguyentranbao-ct/storefront/internal/config"
	"github.com/nguyentranbao-ct/storefront/internal/repo/mongodb"
	"github.com/nguyentranbao-ct/storefront/internal/repo/postgrest"
	"github.com/nguyentranbao-ct/storefront/internal/repo/redis"
	"github.com/nguyentranbao-ct/storefront/internal/server"
	"github.com/nguyentranbao-ct/storefront/internal/server/middleware"
	"github.com/nguyentranbao-ct/storefront/internal/usecase"
)

type catalogResult struct {
	fx.Out

	Store  usecase.CatalogStore
	Checks []server.HealthCheck `group:"health,flatten"`
}

// newCatalogStore connects the configured catalog backend.
func newCatalogStore(lc fx.Lifecycle, cfg *config.Config) (catalogResult, error) {
	switch cfg.Catalog.Backend {
	case config.CatalogBackendPostgREST:
		store, err := postgrest.NewCatalogStore(postgrest.Options{
			URL:     cfg.Catalog.PostgRESTURL,
			APIKey:  cfg.Catalog.PostgRESTKey,
			Timeout: cfg.Catalog.RequestTimeout,
		})
		if err != nil {
			return catalogResult{}, fmt.Errorf("init postgrest catalog: %w", err)
		}
		return catalogResult{Store: store}, nil
	default:
		db, err := newMongoDB(lc, cfg)
		if err != nil {
			return catalogResult{}, err
		}
		return catalogResult{
			Store:  mongodb.NewCatalogStore(db),
			Checks: []server.HealthCheck{{Name: "mongodb", Check: db.Ping}},
		}, nil
	}
}

func newMongoDB(lc fx.Lifecycle, cfg *config.Config) (*mongodb.DB, error) {
	timeout := cfg.Database.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	db, err := mongodb.Connect(ctx, mongodb.Options{
		Hosts:    cfg.Database.Hosts,
		Direct:   cfg.Database.Direct,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
		AuthDB:   cfg.Database.AuthDB,
		Database: cfg.Database.Database,
		Timeout:  cfg.Database.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("init mongo client: %w", err)
	}

	lc.Append(fx.Hook{
		OnStart: db.Ping,
		OnStop:  db.Close,
	})
	return db, nil
}

type cartStorageResult struct {
	fx.Out

	Storage cart.Storage
	Checks  []server.HealthCheck `group:"health,flatten"`
}

func newCartStorage(lc fx.Lifecycle, cfg *config.Config) (cartStorageResult, error) {
	if cfg.Cart.Storage != config.CartStorageRedis {
		return cartStorageResult{Storage: cart.NewMemoryStorage()}, nil
	}
	client, err := redis.NewClient(redis.Options{
		URL:          cfg.Redis.URL,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
		DialTimeout:  cfg.Redis.DialTimeout,
	})
	if err != nil {
		return cartStorageResult{}, fmt.Errorf("init redis client: %w", err)
	}
	ping := func(ctx context.Context) error { return redis.Ping(ctx, client) }
	lc.Append(fx.Hook{
		OnStart: ping,
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})
	return cartStorageResult{
		Storage: redis.NewCartStorage(client, cfg.Cart.StorageTTL),
		Checks:  []server.HealthCheck{{Name: "redis", Check: ping}},
	}, nil
}

// newCartManager also runs idle eviction for the lifetime of the app.
func newCartManager(lc fx.Lifecycle, cfg *config.Config, storage cart.Storage) (*cart.Manager, error) {
	m, err := cart.NewManager(storage, cart.ManagerOptions{
		Namespace: cfg.Cart.Namespace,
		IdleTTL:   cfg.Cart.IdleTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("init cart manager: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)
				m.Run(ctx)
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
				return nil
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
		},
	})
	return m, nil
}

func newComposer(cfg *config.Config) (*checkout.Composer, error) {
	return checkout.NewComposer(checkout.Config{
		BaseURL:               cfg.Checkout.BaseURL,
		Phone:                 cfg.Checkout.WhatsAppPhone,
		StoreName:             cfg.Checkout.StoreName,
		FreeShippingThreshold: cfg.Checkout.FreeShippingThreshold,
		ShippingFee:           cfg.Checkout.ShippingFee,
	})
}

func newShopUsecase(catalog usecase.CatalogUsecase, cfg *config.Config) usecase.ShopUsecase {
	return usecase.NewShopUsecase(catalog, cfg.Listing.PageSize)
}

func newCartStream(cartUC usecase.CartUsecase, cfg *config.Config) (*server.CartStream, error) {
	origins, err := middleware.CompileOrigins(cfg.Server.AllowedOrigins)
	if err != nil {
		return nil, fmt.Errorf("compile allowed origins: %w", err)
	}
	return server.NewCartStream(cartUC, origins), nil
}

type healthParams struct {
	fx.In

	Checks []server.HealthCheck `group:"health"`
}

func newHandler(p healthParams) server.Controller {
	return server.NewHandler(p.Checks...)
}
