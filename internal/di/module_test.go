package di

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"go.uber.org/fx"

	"github.com/servery/servery/internal/app"
	"github.com/servery/servery/internal/config"
	"github.com/servery/servery/internal/domain/repository"
	"github.com/servery/servery/internal/storage/postgres"
	"github.com/servery/servery/internal/test"
)

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	cfg := &config.Config{
		RunAddress:      ":0",
		DatabaseURI:     "postgres://stub",
		SessionSecret:   "secret",
		AuthTokens:      "hmac",
		TokenTTL:        time.Minute,
		ShutdownTimeout: time.Millisecond,
		MenuCacheTTL:    time.Minute,
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	var facade *app.OrderingFacade
	fxApp := fx.New(
		fx.NopLogger,
		fx.Provide(func() context.Context { return context.Background() }),
		Module(
			fx.Replace(cfg),
			fx.Replace(logger),
			fx.Replace(&postgres.Storage{}),
			fx.Replace(repository.Store(test.NewStoreStub())),
		),
		fx.Populate(&facade),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })
	if facade == nil {
		t.Fatal("expected ordering facade instance")
	}
}
