package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/fx"

	"github.com/nguyentranbao-ct/storefront/internal/config"
	"github.com/nguyentranbao-ct/storefront/internal/server/middleware"
	"github.com/nguyentranbao-ct/storefront/pkg/crypto"
	"github.com/nguyentranbao-ct/storefront/pkg/logger"
)

type Handlers struct {
	fx.In

	Controller Controller
	Catalog    CatalogController
	Cart       CartController
	Checkout   CheckoutController
	Stream     *CartStream
}

// NewEcho builds the HTTP server with the middleware chain and every route.
func NewEcho(conf *config.Config, h Handlers) (*echo.Echo, error) {
	origins, err := middleware.CompileOrigins(conf.Server.AllowedOrigins)
	if err != nil {
		return nil, fmt.Errorf("compile allowed origins: %w", err)
	}

	sessions := middleware.CartSessionConfig{
		Secure: conf.Cart.CookieSecure,
		MaxAge: conf.Cart.StorageTTL,
	}
	if conf.Cart.CookieSecret != "" {
		sealer, err := crypto.NewSealer(conf.Cart.CookieSecret)
		if err != nil {
			return nil, fmt.Errorf("cart cookie sealer: %w", err)
		}
		sessions.Sealer = sealer
	}

	httpLog := logger.MustNamed("http")

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = middleware.NewValidator()
	e.HTTPErrorHandler = middleware.ErrorHandler(httpLog)

	e.Use(middleware.Metrics())
	e.Use(middleware.RequestID())
	e.Use(middleware.LogRequest(middleware.LogRequestConfig{
		Logger: httpLog,
		Enabled: func(c echo.Context) bool {
			path := c.Request().URL.Path
			return path != "/health" && path != "/metrics"
		},
	}))
	e.Use(echomw.RecoverWithConfig(echomw.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Errorw(c.Request().Context(), "PANIC RECOVER", "error", err, "stack", string(stack))
			return err
		},
	}))
	e.Use(middleware.CORS(origins...))

	e.GET("/health", h.Controller.Health)

	api := e.Group("/api/v1")
	api.GET("/categories", middleware.WrapHandler(h.Catalog.ListCategories))
	api.GET("/categories/:slug", middleware.WrapHandler(h.Catalog.BrowseCategory))
	api.GET("/products", middleware.WrapHandler(h.Catalog.ListProducts))
	api.GET("/shop", middleware.WrapHandler(h.Catalog.Browse))
	api.GET("/search", middleware.WrapHandler(h.Catalog.Search))
	api.GET("/products/:slug", middleware.WrapHandler(h.Catalog.GetProduct))
	api.GET("/products/:slug/reviews", middleware.WrapHandler(h.Catalog.ListReviews))
	api.GET("/products/:slug/related", middleware.WrapHandler(h.Catalog.ListRelated))
	api.GET("/products/:slug/inquiry", middleware.WrapHandler(h.Checkout.Inquiry))

	session := middleware.CartSession(sessions)
	api.GET("/cart", middleware.WrapHandler(h.Cart.GetCart), session)
	api.DELETE("/cart", middleware.WrapHandler(h.Cart.ClearCart), session)
	api.POST("/cart/items", middleware.WrapHandler(h.Cart.AddItem), session)
	api.PUT("/cart/items/:id", middleware.WrapHandler(h.Cart.UpdateItem), session)
	api.DELETE("/cart/items/:id", middleware.WrapHandler(h.Cart.RemoveItem), session)
	api.GET("/cart/stream", h.Stream.Serve, session)
	api.POST("/checkout", middleware.WrapHandler(h.Checkout.Checkout), session)
	api.GET("/checkout/redirect", middleware.WrapNoContent(h.Checkout.Redirect), session)

	return e, nil
}

func StartServer(
	lc fx.Lifecycle,
	sd fx.Shutdowner,
	conf *config.Config,
	e *echo.Echo,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				logger.Infow(ctx, "starting HTTP server", "addr", conf.Server.Addr())
				if err := e.Start(conf.Server.Addr()); !errors.Is(err, http.ErrServerClosed) {
					logger.Errorw(context.Background(), "HTTP server stopped", "error", err)
					_ = sd.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return e.Shutdown(ctx)
		},
	})
}
