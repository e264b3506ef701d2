package app

import (
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap/zapcore"

	"github.com/nguyentranbao-ct/storefront/internal/config"
	"github.com/nguyentranbao-ct/storefront/internal/server"
	"github.com/nguyentranbao-ct/storefront/internal/usecase"
	"github.com/nguyentranbao-ct/storefront/pkg/logger"
)

func Invoke(funcs ...any) *fx.App {
	conf := config.MustLoad()
	if err := logger.Init(logger.Options{Level: conf.Log.Level, Format: conf.Log.Format}); err != nil {
		panic(err)
	}
	log := logger.MustNamed("app")
	log.Debugw("config loaded", log.Reflect("config", conf))
	return fx.New(
		fx.WithLogger(func() fxevent.Logger {
			l := &fxevent.ZapLogger{
				Logger: log.Unwrap().Desugar(),
			}
			l.UseLogLevel(zapcore.DebugLevel)
			return l
		}),
		Module,
		fx.Supply(conf),
		fx.Invoke(funcs...),
	)
}

// Module provides everything the HTTP server needs except the config.
var Module = fx.Options(
	fx.Provide(
		newCatalogStore,
		newCartStorage,
		newCartManager,
		newComposer,
		newShopUsecase,
		newCartStream,
		newHandler,

		usecase.NewCatalogUsecase,
		usecase.NewCartUsecase,
		usecase.NewCheckoutUsecase,

		server.NewCatalogController,
		server.NewCartController,
		server.NewCheckoutController,
		server.NewEcho,
	),
)
