package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/servery/servery/internal/domain/repository"
)

// querier is the subset of pgx operations shared by pools and transactions.
// Repositories run against it, so the same implementation serves direct calls
// and calls bound to an open transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type pgxPool interface {
	querier
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type accountRepository struct {
	q querier
}

type restaurantRepository struct {
	q querier
}

type orderRepository struct {
	q querier
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Accounts() repository.AccountRepository {
	return &accountRepository{q: s.pool}
}

func (s *Storage) Restaurants() repository.RestaurantRepository {
	return &restaurantRepository{q: s.pool}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{q: s.pool}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS accounts (
            username TEXT PRIMARY KEY,
            password_hash TEXT NOT NULL,
            first_name TEXT NOT NULL DEFAULT '',
            last_name TEXT NOT NULL DEFAULT '',
            address TEXT NOT NULL DEFAULT '',
            card_number TEXT NOT NULL DEFAULT '',
            card_expiry TEXT NOT NULL DEFAULT '',
            card_code TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS restaurants (
            id SERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            owner TEXT NOT NULL REFERENCES accounts(username),
            deleted BOOLEAN NOT NULL DEFAULT FALSE
        )`,
		`CREATE TABLE IF NOT EXISTS restaurant_employees (
            restaurant_id BIGINT NOT NULL REFERENCES restaurants(id),
            username TEXT NOT NULL REFERENCES accounts(username),
            PRIMARY KEY (restaurant_id, username)
        )`,
		`CREATE TABLE IF NOT EXISTS menu_items (
            id SERIAL PRIMARY KEY,
            restaurant_id BIGINT NOT NULL REFERENCES restaurants(id),
            name TEXT NOT NULL,
            price_cents BIGINT NOT NULL CHECK (price_cents >= 0),
            deleted BOOLEAN NOT NULL DEFAULT FALSE
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id SERIAL PRIMARY KEY,
            restaurant_id BIGINT NOT NULL REFERENCES restaurants(id),
            customer TEXT NOT NULL REFERENCES accounts(username),
            status TEXT NOT NULL DEFAULT 'PENDING',
            address TEXT NOT NULL DEFAULT '',
            total_cents BIGINT NOT NULL DEFAULT 0,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS order_items (
            order_id BIGINT NOT NULL REFERENCES orders(id),
            item_id BIGINT NOT NULL REFERENCES menu_items(id),
            quantity BIGINT NOT NULL DEFAULT 0 CHECK (quantity >= 0),
            PRIMARY KEY (order_id, item_id)
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_customer ON orders(customer, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_restaurant ON orders(restaurant_id, status)`,
		`CREATE INDEX IF NOT EXISTS idx_menu_items_restaurant ON menu_items(restaurant_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// txRepos exposes repositories bound to one open transaction.
type txRepos struct {
	tx pgx.Tx
}

func (t *txRepos) Accounts() repository.AccountRepository {
	return &accountRepository{q: t.tx}
}

func (t *txRepos) Restaurants() repository.RestaurantRepository {
	return &restaurantRepository{q: t.tx}
}

func (t *txRepos) Orders() repository.OrderRepository {
	return &orderRepository{q: t.tx}
}

// WithinTransaction executes function against repositories sharing one
// transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(repos repository.Factory) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Warn("transaction rollback failed", slog.String("error", rbErr.Error()))
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(&txRepos{tx: tx})
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}
