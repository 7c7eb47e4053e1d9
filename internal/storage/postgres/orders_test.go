package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmockv3 "github.com/pashagolub/pgxmock/v3"

	domainErrors "github.com/servery/servery/internal/domain/errors"
	"github.com/servery/servery/internal/domain/model"
)

const orderColumnsPattern = "SELECT id, restaurant_id, customer, status, address, total_cents, created_at FROM orders"

func TestOrderRepositoryCreate(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := storage.Orders()

	createdAt := time.Now()
	mock.ExpectQuery("INSERT INTO orders").WithArgs(int64(1), "alice").WillReturnRows(
		pgxmockv3.NewRows([]string{"id", "status", "created_at"}).AddRow(int64(7), model.OrderStatusPending, createdAt),
	)
	order, err := repo.Create(context.Background(), 1, "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.ID != 7 || order.Status != model.OrderStatusPending || order.RestaurantID != 1 || order.Customer != "alice" {
		t.Fatalf("unexpected order: %+v", order)
	}
	if order.TotalCents != 0 || order.Address != "" {
		t.Fatalf("new order must start with empty snapshot: %+v", order)
	}

	mock.ExpectQuery("INSERT INTO orders").WithArgs(int64(1), "alice").WillReturnError(errors.New("insert"))
	if _, err := repo.Create(context.Background(), 1, "alice"); err == nil {
		t.Fatal("expected error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestOrderRepositoryGetForUpdate(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := storage.Orders()

	columns := []string{"id", "restaurant_id", "customer", "status", "address", "total_cents", "created_at"}
	now := time.Now()

	mock.ExpectQuery(orderColumnsPattern + " WHERE id=").WithArgs(int64(7)).WillReturnRows(
		pgxmockv3.NewRows(columns).AddRow(int64(7), int64(1), "alice", model.OrderStatusPending, "", int64(0), now),
	)
	order, err := repo.GetForUpdate(context.Background(), 7, nil)
	if err != nil || order.ID != 7 || order.Status != model.OrderStatusPending {
		t.Fatalf("unexpected order: %+v err=%v", order, err)
	}

	scope := int64(1)
	mock.ExpectQuery(orderColumnsPattern + " WHERE id=.* AND restaurant_id=").WithArgs(int64(7), int64(1)).WillReturnRows(
		pgxmockv3.NewRows(columns).AddRow(int64(7), int64(1), "alice", model.OrderStatusPaid, "123 Main St", int64(345), now),
	)
	order, err = repo.GetForUpdate(context.Background(), 7, &scope)
	if err != nil || order.Status != model.OrderStatusPaid || order.TotalCents != 345 {
		t.Fatalf("unexpected order: %+v err=%v", order, err)
	}

	mock.ExpectQuery(orderColumnsPattern + " WHERE id=").WithArgs(int64(8)).WillReturnError(pgx.ErrNoRows)
	if _, err := repo.GetForUpdate(context.Background(), 8, nil); !errors.Is(err, domainErrors.ErrOrderNotFound) {
		t.Fatalf("expected order not found, got %v", err)
	}

	wrongScope := int64(2)
	mock.ExpectQuery(orderColumnsPattern + " WHERE id=.* AND restaurant_id=").WithArgs(int64(7), int64(2)).WillReturnError(pgx.ErrNoRows)
	if _, err := repo.GetForUpdate(context.Background(), 7, &wrongScope); !errors.Is(err, domainErrors.ErrOrderNotFound) {
		t.Fatalf("expected order not found for wrong scope, got %v", err)
	}

	mock.ExpectQuery(orderColumnsPattern + " WHERE id=").WithArgs(int64(7)).WillReturnError(errors.New("lock"))
	if _, err := repo.GetForUpdate(context.Background(), 7, nil); err == nil {
		t.Fatal("expected error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestOrderRepositoryGetDetail(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := storage.Orders()

	columns := []string{"id", "restaurant_id", "customer", "status", "address", "total_cents", "created_at", "name"}
	now := time.Now()

	mock.ExpectQuery("SELECT o.id, o.restaurant_id, o.customer, o.status, o.address, o.total_cents, o.created_at, r.name FROM orders o JOIN restaurants r").
		WithArgs(int64(7)).
		WillReturnRows(pgxmockv3.NewRows(columns).AddRow(int64(7), int64(1), "alice", model.OrderStatusPaid, "123 Main St", int64(345), now, "Pasta Place"))
	detail, err := repo.GetDetail(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if detail.RestaurantName != "Pasta Place" || detail.TotalCents != 345 || detail.Lines != nil {
		t.Fatalf("unexpected detail: %+v", detail)
	}

	mock.ExpectQuery("SELECT o.id, o.restaurant_id, o.customer, o.status, o.address, o.total_cents, o.created_at, r.name FROM orders o JOIN restaurants r").
		WithArgs(int64(8)).WillReturnError(pgx.ErrNoRows)
	if _, err := repo.GetDetail(context.Background(), 8); !errors.Is(err, domainErrors.ErrOrderNotFound) {
		t.Fatalf("expected order not found, got %v", err)
	}

	mock.ExpectQuery("SELECT o.id, o.restaurant_id, o.customer, o.status, o.address, o.total_cents, o.created_at, r.name FROM orders o JOIN restaurants r").
		WithArgs(int64(7)).WillReturnError(errors.New("join"))
	if _, err := repo.GetDetail(context.Background(), 7); err == nil {
		t.Fatal("expected error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestOrderRepositoryCustomer(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := storage.Orders()

	mock.ExpectQuery("SELECT customer FROM orders WHERE id=").WithArgs(int64(7)).WillReturnRows(
		pgxmockv3.NewRows([]string{"customer"}).AddRow("alice"),
	)
	customer, err := repo.Customer(context.Background(), 7)
	if err != nil || customer != "alice" {
		t.Fatalf("unexpected customer %q err=%v", customer, err)
	}

	mock.ExpectQuery("SELECT customer FROM orders WHERE id=").WithArgs(int64(8)).WillReturnError(pgx.ErrNoRows)
	if _, err := repo.Customer(context.Background(), 8); !errors.Is(err, domainErrors.ErrOrderNotFound) {
		t.Fatalf("expected order not found, got %v", err)
	}

	mock.ExpectQuery("SELECT customer FROM orders WHERE id=").WithArgs(int64(7)).WillReturnError(errors.New("query"))
	if _, err := repo.Customer(context.Background(), 7); err == nil {
		t.Fatal("expected error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestOrderRepositoryLines(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := storage.Orders()

	columns := []string{"item_id", "name", "price_cents", "quantity", "restaurant_id", "deleted"}

	mock.ExpectQuery("SELECT oi.item_id, mi.name, mi.price_cents, oi.quantity, mi.restaurant_id, mi.deleted FROM order_items oi").
		WithArgs(int64(7)).
		WillReturnRows(pgxmockv3.NewRows(columns).
			AddRow(int64(10), "Margherita", int64(1250), int64(2), int64(1), false).
			AddRow(int64(11), "Carbonara", int64(1490), int64(0), int64(1), true))
	lines, err := repo.Lines(context.Background(), 7)
	if err != nil || len(lines) != 2 {
		t.Fatalf("unexpected lines: %v err=%v", lines, err)
	}
	if lines[0].Quantity != 2 || lines[1].ItemDeleted != true || lines[1].ItemRestaurantID != 1 {
		t.Fatalf("unexpected line contents: %+v", lines)
	}

	mock.ExpectQuery("SELECT oi.item_id, mi.name, mi.price_cents, oi.quantity, mi.restaurant_id, mi.deleted FROM order_items oi").
		WithArgs(int64(7)).WillReturnError(errors.New("query"))
	if _, err := repo.Lines(context.Background(), 7); err == nil {
		t.Fatal("expected error")
	}

	mock.ExpectQuery("SELECT oi.item_id, mi.name, mi.price_cents, oi.quantity, mi.restaurant_id, mi.deleted FROM order_items oi").
		WithArgs(int64(7)).
		WillReturnRows(pgxmockv3.NewRows(columns).AddRow("bad", "Margherita", int64(1250), int64(2), int64(1), false))
	if _, err := repo.Lines(context.Background(), 7); err == nil {
		t.Fatal("expected scan error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestOrderRepositoryPendingLines(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := storage.Orders()

	columns := []string{"id", "name", "price_cents", "quantity", "restaurant_id", "deleted"}

	mock.ExpectQuery("SELECT mi.id, mi.name, mi.price_cents, COALESCE").WithArgs(int64(7), int64(1)).WillReturnRows(
		pgxmockv3.NewRows(columns).
			AddRow(int64(10), "Margherita", int64(1250), int64(2), int64(1), false).
			AddRow(int64(11), "Carbonara", int64(1490), int64(0), int64(1), false),
	)
	lines, err := repo.PendingLines(context.Background(), 7, 1)
	if err != nil || len(lines) != 2 {
		t.Fatalf("unexpected lines: %v err=%v", lines, err)
	}
	if lines[1].Quantity != 0 || lines[1].PriceCents != 1490 {
		t.Fatalf("menu rows without pairings must read as zero quantity: %+v", lines)
	}

	mock.ExpectQuery("SELECT mi.id, mi.name, mi.price_cents, COALESCE").WithArgs(int64(7), int64(1)).WillReturnError(errors.New("query"))
	if _, err := repo.PendingLines(context.Background(), 7, 1); err == nil {
		t.Fatal("expected error")
	}

	mock.ExpectQuery("SELECT mi.id, mi.name, mi.price_cents, COALESCE").WithArgs(int64(7), int64(1)).WillReturnRows(
		pgxmockv3.NewRows(columns).AddRow("bad", "Margherita", int64(1250), int64(2), int64(1), false),
	)
	if _, err := repo.PendingLines(context.Background(), 7, 1); err == nil {
		t.Fatal("expected scan error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestOrderRepositoryFrozenLines(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := storage.Orders()

	columns := []string{"item_id", "name", "quantity"}

	mock.ExpectQuery("SELECT oi.item_id, mi.name, oi.quantity FROM order_items oi").WithArgs(int64(7)).WillReturnRows(
		pgxmockv3.NewRows(columns).AddRow(int64(10), "Margherita", int64(2)),
	)
	lines, err := repo.FrozenLines(context.Background(), 7)
	if err != nil || len(lines) != 1 {
		t.Fatalf("unexpected lines: %v err=%v", lines, err)
	}
	if lines[0].PriceCents != 0 {
		t.Fatalf("frozen lines carry no price, got %+v", lines[0])
	}

	mock.ExpectQuery("SELECT oi.item_id, mi.name, oi.quantity FROM order_items oi").WithArgs(int64(7)).WillReturnError(errors.New("query"))
	if _, err := repo.FrozenLines(context.Background(), 7); err == nil {
		t.Fatal("expected error")
	}

	mock.ExpectQuery("SELECT oi.item_id, mi.name, oi.quantity FROM order_items oi").WithArgs(int64(7)).WillReturnRows(
		pgxmockv3.NewRows(columns).AddRow("bad", "Margherita", int64(2)),
	)
	if _, err := repo.FrozenLines(context.Background(), 7); err == nil {
		t.Fatal("expected scan error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestOrderRepositoryLinesRowsErrors(t *testing.T) {
	repo := &orderRepository{q: &rowsErrorQuerier{rows: &errorRows{err: errors.New("rows err")}}}

	if _, err := repo.Lines(context.Background(), 1); err == nil || err.Error() != "rows err" {
		t.Fatalf("expected rows err, got %v", err)
	}
	if _, err := repo.PendingLines(context.Background(), 1, 1); err == nil || err.Error() != "rows err" {
		t.Fatalf("expected rows err, got %v", err)
	}
	if _, err := repo.FrozenLines(context.Background(), 1); err == nil || err.Error() != "rows err" {
		t.Fatalf("expected rows err, got %v", err)
	}
	if _, err := repo.ListByCustomer(context.Background(), "alice"); err == nil || err.Error() != "rows err" {
		t.Fatalf("expected rows err, got %v", err)
	}
	if _, err := repo.ListActiveByRestaurant(context.Background(), 1); err == nil || err.Error() != "rows err" {
		t.Fatalf("expected rows err, got %v", err)
	}
}

func TestOrderRepositoryStatusUpdates(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := storage.Orders()

	mock.ExpectExec("UPDATE orders SET status=").WithArgs(int64(7), model.OrderStatusCancelled).WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
	if err := repo.SetStatus(context.Background(), 7, model.OrderStatusCancelled); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectExec("UPDATE orders SET status=").WithArgs(int64(8), model.OrderStatusCancelled).WillReturnResult(pgxmockv3.NewResult("UPDATE", 0))
	if err := repo.SetStatus(context.Background(), 8, model.OrderStatusCancelled); !errors.Is(err, domainErrors.ErrOrderNotFound) {
		t.Fatalf("expected order not found, got %v", err)
	}

	mock.ExpectExec("UPDATE orders SET status=").WithArgs(int64(7), model.OrderStatusCancelled).WillReturnError(errors.New("update"))
	if err := repo.SetStatus(context.Background(), 7, model.OrderStatusCancelled); err == nil {
		t.Fatal("expected error")
	}

	mock.ExpectExec("UPDATE orders SET status=.* address=").
		WithArgs(int64(7), model.OrderStatusPaid, "123 Main St", int64(345)).
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
	if err := repo.MarkPaid(context.Background(), 7, "123 Main St", 345); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectExec("UPDATE orders SET status=.* address=").
		WithArgs(int64(8), model.OrderStatusPaid, "123 Main St", int64(345)).
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 0))
	if err := repo.MarkPaid(context.Background(), 8, "123 Main St", 345); !errors.Is(err, domainErrors.ErrOrderNotFound) {
		t.Fatalf("expected order not found, got %v", err)
	}

	mock.ExpectExec("UPDATE orders SET status=.* address=").
		WithArgs(int64(7), model.OrderStatusPaid, "123 Main St", int64(345)).
		WillReturnError(errors.New("update"))
	if err := repo.MarkPaid(context.Background(), 7, "123 Main St", 345); err == nil {
		t.Fatal("expected error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestOrderRepositoryAdjustLineQuantity(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := storage.Orders()

	mock.ExpectExec("INSERT INTO order_items").WithArgs(int64(7), int64(10), int64(3)).WillReturnResult(pgxmockv3.NewResult("INSERT", 1))
	if err := repo.AdjustLineQuantity(context.Background(), 7, 10, 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectExec("INSERT INTO order_items").WithArgs(int64(7), int64(10), int64(-5)).WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
	if err := repo.AdjustLineQuantity(context.Background(), 7, 10, -5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectExec("INSERT INTO order_items").WithArgs(int64(7), int64(99), int64(1)).WillReturnError(&pgconn.PgError{Code: "23503"})
	if err := repo.AdjustLineQuantity(context.Background(), 7, 99, 1); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found for unknown item, got %v", err)
	}

	mock.ExpectExec("INSERT INTO order_items").WithArgs(int64(7), int64(10), int64(1)).WillReturnError(errors.New("upsert"))
	if err := repo.AdjustLineQuantity(context.Background(), 7, 10, 1); err == nil {
		t.Fatal("expected error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestOrderRepositoryListByCustomer(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := storage.Orders()

	columns := []string{"id", "restaurant_id", "customer", "status", "address", "total_cents", "created_at", "name"}
	now := time.Now()

	mock.ExpectQuery("SELECT o.id, o.restaurant_id, o.customer, o.status, o.address, o.total_cents, o.created_at, r.name FROM orders o JOIN restaurants r .* WHERE o.customer=").
		WithArgs("alice").
		WillReturnRows(pgxmockv3.NewRows(columns).
			AddRow(int64(2), int64(1), "alice", model.OrderStatusPaid, "123 Main St", int64(345), now, "Pasta Place").
			AddRow(int64(1), int64(3), "alice", model.OrderStatusDelivered, "123 Main St", int64(990), now.Add(-time.Hour), "Closed Diner"))
	orders, err := repo.ListByCustomer(context.Background(), "alice")
	if err != nil || len(orders) != 2 {
		t.Fatalf("unexpected result: %v err=%v", orders, err)
	}
	if orders[1].RestaurantName != "Closed Diner" {
		t.Fatalf("history must keep names of deleted restaurants: %+v", orders[1])
	}

	mock.ExpectQuery("SELECT o.id, o.restaurant_id, o.customer, o.status, o.address, o.total_cents, o.created_at, r.name FROM orders o JOIN restaurants r .* WHERE o.customer=").
		WithArgs("bob").WillReturnError(errors.New("query"))
	if _, err := repo.ListByCustomer(context.Background(), "bob"); err == nil {
		t.Fatal("expected error")
	}

	mock.ExpectQuery("SELECT o.id, o.restaurant_id, o.customer, o.status, o.address, o.total_cents, o.created_at, r.name FROM orders o JOIN restaurants r .* WHERE o.customer=").
		WithArgs("carol").
		WillReturnRows(pgxmockv3.NewRows(columns).AddRow("bad", int64(1), "carol", model.OrderStatusPaid, "", int64(0), now, "Pasta Place"))
	if _, err := repo.ListByCustomer(context.Background(), "carol"); err == nil {
		t.Fatal("expected scan error")
	}

	mock.ExpectQuery("SELECT o.id, o.restaurant_id, o.customer, o.status, o.address, o.total_cents, o.created_at, r.name FROM orders o JOIN restaurants r .* WHERE o.customer=").
		WithArgs("dave").
		WillReturnRows(pgxmockv3.NewRows(columns))
	orders, err = repo.ListByCustomer(context.Background(), "dave")
	if err != nil || len(orders) != 0 {
		t.Fatalf("expected empty result, got %v err=%v", orders, err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestOrderRepositoryListActiveByRestaurant(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := storage.Orders()

	columns := []string{"id", "restaurant_id", "customer", "status", "address", "total_cents", "created_at"}
	now := time.Now()

	mock.ExpectQuery(orderColumnsPattern + " WHERE restaurant_id=").WithArgs(int64(1)).WillReturnRows(
		pgxmockv3.NewRows(columns).
			AddRow(int64(1), int64(1), "alice", model.OrderStatusPaid, "123 Main St", int64(345), now).
			AddRow(int64(2), int64(1), "bob", model.OrderStatusAccepted, "9 Elm St", int64(1200), now),
	)
	orders, err := repo.ListActiveByRestaurant(context.Background(), 1)
	if err != nil || len(orders) != 2 || orders[1].Status != model.OrderStatusAccepted {
		t.Fatalf("unexpected result: %v err=%v", orders, err)
	}

	mock.ExpectQuery(orderColumnsPattern + " WHERE restaurant_id=").WithArgs(int64(2)).WillReturnError(errors.New("query"))
	if _, err := repo.ListActiveByRestaurant(context.Background(), 2); err == nil {
		t.Fatal("expected error")
	}

	mock.ExpectQuery(orderColumnsPattern + " WHERE restaurant_id=").WithArgs(int64(3)).WillReturnRows(
		pgxmockv3.NewRows(columns).AddRow("bad", int64(3), "alice", model.OrderStatusPaid, "", int64(0), now),
	)
	if _, err := repo.ListActiveByRestaurant(context.Background(), 3); err == nil {
		t.Fatal("expected scan error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}
