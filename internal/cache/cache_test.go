package cache

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/servery/servery/internal/config"
	domainErrors "github.com/servery/servery/internal/domain/errors"
	"github.com/servery/servery/internal/domain/model"
	"github.com/servery/servery/internal/domain/repository"
	"github.com/servery/servery/internal/storage/postgres"
	testhelpers "github.com/servery/servery/internal/test"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// deadClient points at a port nothing listens on, so every command fails and
// the wrapper must degrade to the inner repository.
func deadClient() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func newCachedFixture(t *testing.T) (*testhelpers.StoreStub, *Store) {
	t.Helper()
	stub := testhelpers.NewStoreStub()
	stub.SeedAccount(model.Account{Username: "bob"})
	return stub, NewStore(stub, deadClient(), time.Minute, testLogger())
}

func TestCachedReadsDegradeToStorage(t *testing.T) {
	stub, store := newCachedFixture(t)
	restaurant := stub.SeedRestaurant("Bistro", "bob")
	item := stub.SeedMenuItem(restaurant.ID, "Soup", 345)

	restaurants, err := store.Restaurants().List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(restaurants) != 1 || restaurants[0].ID != restaurant.ID {
		t.Fatalf("unexpected list: %+v", restaurants)
	}

	got, err := store.Restaurants().GetByID(context.Background(), restaurant.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "Bistro" {
		t.Fatalf("unexpected restaurant: %+v", got)
	}

	menu, err := store.Restaurants().MenuItems(context.Background(), restaurant.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(menu) != 1 || menu[0].ID != item.ID {
		t.Fatalf("unexpected menu: %+v", menu)
	}

	if _, err := store.Restaurants().GetByID(context.Background(), 999); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCachedMutationsStillApply(t *testing.T) {
	stub, store := newCachedFixture(t)
	restaurant := stub.SeedRestaurant("Bistro", "bob")

	if err := store.Restaurants().Rename(context.Background(), restaurant.ID, "Trattoria"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := stub.RestaurantRows[restaurant.ID].Name; got != "Trattoria" {
		t.Fatalf("rename not applied, got %q", got)
	}

	item, err := store.Restaurants().AddMenuItem(context.Background(), restaurant.ID, "Soup", 345)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Restaurants().SoftDeleteMenuItem(context.Background(), restaurant.ID, item.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !stub.MenuItemRows[item.ID].Deleted {
		t.Fatal("expected soft-deleted item")
	}

	if err := store.Restaurants().SoftDelete(context.Background(), restaurant.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !stub.RestaurantRows[restaurant.ID].Deleted {
		t.Fatal("expected soft-deleted restaurant")
	}
}

func TestStorePassthrough(t *testing.T) {
	stub, store := newCachedFixture(t)

	if _, err := store.Accounts().GetByUsername(context.Background(), "bob"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	restaurant := stub.SeedRestaurant("Bistro", "bob")
	order, err := store.Orders().Create(context.Background(), restaurant.ID, "bob")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.Status != model.OrderStatusPending {
		t.Fatalf("unexpected order: %+v", order)
	}
}

func TestStoreTransactionWrapsRestaurants(t *testing.T) {
	stub, store := newCachedFixture(t)
	restaurant := stub.SeedRestaurant("Bistro", "bob")

	err := store.WithinTransaction(context.Background(), func(repos repository.Factory) error {
		if _, ok := repos.Restaurants().(*CachedRestaurantRepository); !ok {
			t.Fatalf("expected cached restaurants inside transaction, got %T", repos.Restaurants())
		}
		return repos.Restaurants().Rename(context.Background(), restaurant.ID, "Trattoria")
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := stub.RestaurantRows[restaurant.ID].Name; got != "Trattoria" {
		t.Fatalf("rename not applied, got %q", got)
	}
	if stub.TxCount != 1 {
		t.Fatalf("expected one transaction, got %d", stub.TxCount)
	}
}

func TestNewRedisClientDisabled(t *testing.T) {
	client, err := newRedisClient(clientParams{
		Ctx:    context.Background(),
		Config: &config.Config{},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client != nil {
		t.Fatal("expected nil client when no address configured")
	}
}

func TestNewStoreSelection(t *testing.T) {
	storage := &postgres.Storage{}

	store := newStore(storeParams{
		Storage: storage,
		Client:  nil,
		Config:  &config.Config{},
		Logger:  testLogger(),
	})
	if store != repository.Store(storage) {
		t.Fatalf("expected plain storage without redis, got %T", store)
	}

	store = newStore(storeParams{
		Storage: storage,
		Client:  deadClient(),
		Config:  &config.Config{RedisAddress: "127.0.0.1:1", MenuCacheTTL: time.Minute},
		Logger:  testLogger(),
	})
	if _, ok := store.(*Store); !ok {
		t.Fatalf("expected caching store with redis, got %T", store)
	}
}
