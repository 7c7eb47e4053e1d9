package di

import (
	"go.uber.org/fx"

	"github.com/servery/servery/internal/app"
	"github.com/servery/servery/internal/cache"
	"github.com/servery/servery/internal/config"
	"github.com/servery/servery/internal/fixtures"
	"github.com/servery/servery/internal/logger"
	"github.com/servery/servery/internal/pkg/auth"
	"github.com/servery/servery/internal/server/http/handlers"
	"github.com/servery/servery/internal/server/http/router"
	"github.com/servery/servery/internal/storage/postgres"
	"github.com/servery/servery/internal/usecase"
)

// Module assembles the full application graph. Options passed in are applied
// on top, which lets tests replace storage or config.
func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		cache.Module,
		usecase.Module,
		fx.Provide(func(f *app.OrderingFacade) handlers.OrderingFacade { return f }),
		router.Module,
		app.Module,
		fixtures.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
