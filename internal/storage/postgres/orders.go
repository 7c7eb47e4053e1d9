package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	domainErrors "github.com/servery/servery/internal/domain/errors"
	"github.com/servery/servery/internal/domain/model"
)

// --- OrderRepository implementation ---

func (r *orderRepository) Create(ctx context.Context, restaurantID int64, customer string) (*model.Order, error) {
	const query = `INSERT INTO orders (restaurant_id, customer) VALUES ($1, $2)
                   RETURNING id, status, created_at`
	var o model.Order
	if err := r.q.QueryRow(ctx, query, restaurantID, customer).Scan(&o.ID, &o.Status, &o.CreatedAt); err != nil {
		return nil, err
	}
	o.RestaurantID = restaurantID
	o.Customer = customer
	return &o, nil
}

func (r *orderRepository) GetForUpdate(ctx context.Context, orderID int64, restaurantID *int64) (*model.Order, error) {
	const unscoped = `SELECT id, restaurant_id, customer, status, address, total_cents, created_at
                      FROM orders WHERE id=$1 FOR UPDATE`
	const scoped = `SELECT id, restaurant_id, customer, status, address, total_cents, created_at
                    FROM orders WHERE id=$1 AND restaurant_id=$2 FOR UPDATE`

	var row pgx.Row
	if restaurantID == nil {
		row = r.q.QueryRow(ctx, unscoped, orderID)
	} else {
		row = r.q.QueryRow(ctx, scoped, orderID, *restaurantID)
	}

	var o model.Order
	err := row.Scan(&o.ID, &o.RestaurantID, &o.Customer, &o.Status, &o.Address, &o.TotalCents, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrOrderNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) GetDetail(ctx context.Context, orderID int64) (*model.OrderDetail, error) {
	// Joins the restaurant even when soft-deleted: historical orders keep
	// showing where they were placed.
	const query = `SELECT o.id, o.restaurant_id, o.customer, o.status, o.address, o.total_cents, o.created_at, r.name
                   FROM orders o
                   JOIN restaurants r ON r.id = o.restaurant_id
                   WHERE o.id=$1`
	var d model.OrderDetail
	err := r.q.QueryRow(ctx, query, orderID).Scan(
		&d.ID, &d.RestaurantID, &d.Customer, &d.Status, &d.Address, &d.TotalCents, &d.CreatedAt, &d.RestaurantName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrOrderNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *orderRepository) Customer(ctx context.Context, orderID int64) (string, error) {
	const query = `SELECT customer FROM orders WHERE id=$1`
	var customer string
	if err := r.q.QueryRow(ctx, query, orderID).Scan(&customer); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domainErrors.ErrOrderNotFound
		}
		return "", err
	}
	return customer, nil
}

func (r *orderRepository) Lines(ctx context.Context, orderID int64) ([]model.OrderLine, error) {
	const query = `SELECT oi.item_id, mi.name, mi.price_cents, oi.quantity, mi.restaurant_id, mi.deleted
                   FROM order_items oi
                   JOIN menu_items mi ON mi.id = oi.item_id
                   WHERE oi.order_id=$1
                   ORDER BY oi.item_id`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.OrderLine
	for rows.Next() {
		var l model.OrderLine
		if err := rows.Scan(&l.ItemID, &l.Name, &l.PriceCents, &l.Quantity, &l.ItemRestaurantID, &l.ItemDeleted); err != nil {
			return nil, err
		}
		result = append(result, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) PendingLines(ctx context.Context, orderID, restaurantID int64) ([]model.OrderLine, error) {
	const query = `SELECT mi.id, mi.name, mi.price_cents, COALESCE(oi.quantity, 0), mi.restaurant_id, mi.deleted
                   FROM menu_items mi
                   LEFT JOIN order_items oi ON oi.item_id = mi.id AND oi.order_id=$1
                   WHERE mi.restaurant_id=$2 AND NOT mi.deleted
                   ORDER BY mi.id`
	rows, err := r.q.Query(ctx, query, orderID, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.OrderLine
	for rows.Next() {
		var l model.OrderLine
		if err := rows.Scan(&l.ItemID, &l.Name, &l.PriceCents, &l.Quantity, &l.ItemRestaurantID, &l.ItemDeleted); err != nil {
			return nil, err
		}
		result = append(result, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) FrozenLines(ctx context.Context, orderID int64) ([]model.OrderLine, error) {
	// Prices are deliberately not read back here: once an order leaves
	// PENDING its snapshotted total is the only price authority.
	const query = `SELECT oi.item_id, mi.name, oi.quantity
                   FROM order_items oi
                   JOIN menu_items mi ON mi.id = oi.item_id
                   WHERE oi.order_id=$1 AND oi.quantity > 0
                   ORDER BY oi.item_id`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.OrderLine
	for rows.Next() {
		var l model.OrderLine
		if err := rows.Scan(&l.ItemID, &l.Name, &l.Quantity); err != nil {
			return nil, err
		}
		result = append(result, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) SetStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	const query = `UPDATE orders SET status=$2 WHERE id=$1`
	tag, err := r.q.Exec(ctx, query, orderID, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrOrderNotFound
	}
	return nil
}

func (r *orderRepository) MarkPaid(ctx context.Context, orderID int64, address string, totalCents int64) error {
	const query = `UPDATE orders SET status=$2, address=$3, total_cents=$4 WHERE id=$1`
	tag, err := r.q.Exec(ctx, query, orderID, model.OrderStatusPaid, address, totalCents)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrOrderNotFound
	}
	return nil
}

func (r *orderRepository) AdjustLineQuantity(ctx context.Context, orderID, itemID, delta int64) error {
	const query = `INSERT INTO order_items (order_id, item_id, quantity)
                   VALUES ($1, $2, GREATEST(0, $3))
                   ON CONFLICT (order_id, item_id) DO UPDATE
                   SET quantity = GREATEST(0, order_items.quantity + $3)`
	if _, err := r.q.Exec(ctx, query, orderID, itemID, delta); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return domainErrors.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *orderRepository) ListByCustomer(ctx context.Context, customer string) ([]model.OrderSummary, error) {
	const query = `SELECT o.id, o.restaurant_id, o.customer, o.status, o.address, o.total_cents, o.created_at, r.name
                   FROM orders o
                   JOIN restaurants r ON r.id = o.restaurant_id
                   WHERE o.customer=$1
                   ORDER BY o.created_at DESC`
	rows, err := r.q.Query(ctx, query, customer)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.OrderSummary
	for rows.Next() {
		var s model.OrderSummary
		if err := rows.Scan(&s.ID, &s.RestaurantID, &s.Customer, &s.Status, &s.Address, &s.TotalCents, &s.CreatedAt, &s.RestaurantName); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) ListActiveByRestaurant(ctx context.Context, restaurantID int64) ([]model.Order, error) {
	const query = `SELECT id, restaurant_id, customer, status, address, total_cents, created_at
                   FROM orders
                   WHERE restaurant_id=$1 AND status IN ('PAID', 'ACCEPTED')
                   ORDER BY created_at`
	rows, err := r.q.Query(ctx, query, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.RestaurantID, &o.Customer, &o.Status, &o.Address, &o.TotalCents, &o.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
