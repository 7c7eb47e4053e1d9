package postgres

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/servery/servery/internal/config"
)

// Module wires PostgreSQL storage and its shutdown hook. The repository.Store
// the rest of the application consumes is provided by the cache package, which
// decides whether to layer caching over this storage.
var Module = fx.Options(
	fx.Provide(newStorage),
	fx.Invoke(registerLifecycle),
)

type storageParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newStorage(p storageParams) (*Storage, error) {
	return New(p.Ctx, p.Config.DatabaseURI, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, storage *Storage) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			storage.Close()
			return nil
		},
	})
}
