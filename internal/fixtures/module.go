package fixtures

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/servery/servery/internal/config"
	"github.com/servery/servery/internal/domain/repository"
	pkgAuth "github.com/servery/servery/internal/pkg/auth"
)

// Module applies sample data at startup when a fixtures file is configured.
var Module = fx.Invoke(registerLifecycle)

type params struct {
	fx.In

	Config *config.Config
	Store  repository.Store
	Hasher pkgAuth.PasswordHasher
	Logger *slog.Logger
}

func registerLifecycle(lc fx.Lifecycle, p params) {
	if p.Config.FixturesPath == "" {
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			data, err := Load(p.Config.FixturesPath)
			if err != nil {
				return err
			}
			return Apply(ctx, data, p.Store, p.Hasher, p.Logger)
		},
	})
}
