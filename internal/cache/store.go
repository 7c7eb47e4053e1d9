package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/servery/servery/internal/domain/repository"
)

// Store decorates a repository.Store with the restaurant read cache. Account
// and order repositories pass through untouched; restaurant repositories come
// back wrapped, both outside and inside transactions, so mutations invalidate
// their keys wherever they run.
type Store struct {
	inner  repository.Store
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewStore constructs the caching store decorator.
func NewStore(inner repository.Store, client *redis.Client, ttl time.Duration, logger *slog.Logger) *Store {
	return &Store{inner: inner, client: client, ttl: ttl, logger: logger}
}

var _ repository.Store = (*Store)(nil)

func (s *Store) Accounts() repository.AccountRepository {
	return s.inner.Accounts()
}

func (s *Store) Restaurants() repository.RestaurantRepository {
	return NewCachedRestaurantRepository(s.inner.Restaurants(), s.client, s.ttl, s.logger)
}

func (s *Store) Orders() repository.OrderRepository {
	return s.inner.Orders()
}

func (s *Store) WithinTransaction(ctx context.Context, fn func(repos repository.Factory) error) error {
	return s.inner.WithinTransaction(ctx, func(repos repository.Factory) error {
		return fn(&txFactory{repos: repos, store: s})
	})
}

// txFactory hands out transaction-bound repositories with the same caching
// decoration as the store itself.
type txFactory struct {
	repos repository.Factory
	store *Store
}

func (f *txFactory) Accounts() repository.AccountRepository {
	return f.repos.Accounts()
}

func (f *txFactory) Restaurants() repository.RestaurantRepository {
	return NewCachedRestaurantRepository(f.repos.Restaurants(), f.store.client, f.store.ttl, f.store.logger)
}

func (f *txFactory) Orders() repository.OrderRepository {
	return f.repos.Orders()
}
