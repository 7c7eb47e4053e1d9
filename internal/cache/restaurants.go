package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/servery/servery/internal/domain/model"
	"github.com/servery/servery/internal/domain/repository"
)

// CachedRestaurantRepository layers a Redis read cache over the restaurant
// list, detail, and menu queries. Every cache failure degrades to the inner
// repository, so a dead Redis slows the application down but never breaks it.
// Liveness and employment checks always pass through: the transition engine
// must see committed state.
type CachedRestaurantRepository struct {
	inner  repository.RestaurantRepository
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedRestaurantRepository constructs the caching wrapper.
func NewCachedRestaurantRepository(inner repository.RestaurantRepository, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedRestaurantRepository {
	return &CachedRestaurantRepository{inner: inner, client: client, ttl: ttl, logger: logger}
}

var _ repository.RestaurantRepository = (*CachedRestaurantRepository)(nil)

const listKey = "restaurants"

func restaurantKey(id int64) string {
	return fmt.Sprintf("restaurant:%d", id)
}

func menuKey(id int64) string {
	return fmt.Sprintf("restaurant:%d:menu", id)
}

// List returns live restaurants, served from cache when possible.
func (c *CachedRestaurantRepository) List(ctx context.Context) ([]model.Restaurant, error) {
	var cached []model.Restaurant
	if c.lookup(ctx, listKey, &cached) {
		return cached, nil
	}

	restaurants, err := c.inner.List(ctx)
	if err != nil {
		return nil, err
	}
	c.store(ctx, listKey, restaurants)
	return restaurants, nil
}

// GetByID returns one live restaurant, served from cache when possible.
func (c *CachedRestaurantRepository) GetByID(ctx context.Context, id int64) (*model.Restaurant, error) {
	var cached model.Restaurant
	if c.lookup(ctx, restaurantKey(id), &cached) {
		return &cached, nil
	}

	restaurant, err := c.inner.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.store(ctx, restaurantKey(id), restaurant)
	return restaurant, nil
}

// MenuItems returns the live menu, served from cache when possible.
func (c *CachedRestaurantRepository) MenuItems(ctx context.Context, id int64) ([]model.MenuItem, error) {
	var cached []model.MenuItem
	if c.lookup(ctx, menuKey(id), &cached) {
		return cached, nil
	}

	items, err := c.inner.MenuItems(ctx, id)
	if err != nil {
		return nil, err
	}
	c.store(ctx, menuKey(id), items)
	return items, nil
}

// Create inserts a restaurant and drops the stale list.
func (c *CachedRestaurantRepository) Create(ctx context.Context, name, owner string) (*model.Restaurant, error) {
	restaurant, err := c.inner.Create(ctx, name, owner)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx, listKey)
	return restaurant, nil
}

// Rename updates the name and drops the affected keys.
func (c *CachedRestaurantRepository) Rename(ctx context.Context, id int64, name string) error {
	if err := c.inner.Rename(ctx, id, name); err != nil {
		return err
	}
	c.invalidate(ctx, listKey, restaurantKey(id))
	return nil
}

// SoftDelete removes the restaurant from circulation and drops every key it
// may appear under.
func (c *CachedRestaurantRepository) SoftDelete(ctx context.Context, id int64) error {
	if err := c.inner.SoftDelete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx, listKey, restaurantKey(id), menuKey(id))
	return nil
}

// AddMenuItem adds a dish and drops the cached menu.
func (c *CachedRestaurantRepository) AddMenuItem(ctx context.Context, id int64, name string, priceCents int64) (*model.MenuItem, error) {
	item, err := c.inner.AddMenuItem(ctx, id, name, priceCents)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx, menuKey(id))
	return item, nil
}

// UpdateMenuItem changes a dish and drops the cached menu.
func (c *CachedRestaurantRepository) UpdateMenuItem(ctx context.Context, id, itemID int64, name string, priceCents int64) error {
	if err := c.inner.UpdateMenuItem(ctx, id, itemID, name, priceCents); err != nil {
		return err
	}
	c.invalidate(ctx, menuKey(id))
	return nil
}

// SoftDeleteMenuItem removes a dish and drops the cached menu.
func (c *CachedRestaurantRepository) SoftDeleteMenuItem(ctx context.Context, id, itemID int64) error {
	if err := c.inner.SoftDeleteMenuItem(ctx, id, itemID); err != nil {
		return err
	}
	c.invalidate(ctx, menuKey(id))
	return nil
}

// IsLive always hits storage.
func (c *CachedRestaurantRepository) IsLive(ctx context.Context, id int64) (bool, error) {
	return c.inner.IsLive(ctx, id)
}

// IsEmployee always hits storage.
func (c *CachedRestaurantRepository) IsEmployee(ctx context.Context, id int64, username string) (bool, error) {
	return c.inner.IsEmployee(ctx, id, username)
}

// Employees always hits storage.
func (c *CachedRestaurantRepository) Employees(ctx context.Context, id int64) ([]string, error) {
	return c.inner.Employees(ctx, id)
}

// AddEmployee passes through; employment is never cached.
func (c *CachedRestaurantRepository) AddEmployee(ctx context.Context, id int64, username string) error {
	return c.inner.AddEmployee(ctx, id, username)
}

// RemoveEmployee passes through; employment is never cached.
func (c *CachedRestaurantRepository) RemoveEmployee(ctx context.Context, id int64, username string) error {
	return c.inner.RemoveEmployee(ctx, id, username)
}

// lookup reports whether the key held a decodable value.
func (c *CachedRestaurantRepository) lookup(ctx context.Context, key string, target any) bool {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("cache read failed, falling back to storage", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(data, target); err != nil {
		c.logger.Warn("cache entry undecodable, falling back to storage", "key", key, "error", err)
		return false
	}
	return true
}

func (c *CachedRestaurantRepository) store(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("cache encode failed", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("cache write failed", "key", key, "error", err)
	}
}

func (c *CachedRestaurantRepository) invalidate(ctx context.Context, keys ...string) {
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("cache invalidation failed", "keys", keys, "error", err)
	}
}
