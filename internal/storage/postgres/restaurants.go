package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	domainErrors "github.com/servery/servery/internal/domain/errors"
	"github.com/servery/servery/internal/domain/model"
)

// --- RestaurantRepository implementation ---

func (r *restaurantRepository) Create(ctx context.Context, name, owner string) (*model.Restaurant, error) {
	const query = `INSERT INTO restaurants (name, owner) VALUES ($1, $2) RETURNING id`
	var rest model.Restaurant
	if err := r.q.QueryRow(ctx, query, name, owner).Scan(&rest.ID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	rest.Name = name
	rest.Owner = owner
	return &rest, nil
}

func (r *restaurantRepository) List(ctx context.Context) ([]model.Restaurant, error) {
	const query = `SELECT id, name, owner, deleted FROM restaurants WHERE NOT deleted ORDER BY id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Restaurant
	for rows.Next() {
		var rest model.Restaurant
		if err := rows.Scan(&rest.ID, &rest.Name, &rest.Owner, &rest.Deleted); err != nil {
			return nil, err
		}
		result = append(result, rest)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *restaurantRepository) GetByID(ctx context.Context, id int64) (*model.Restaurant, error) {
	const query = `SELECT id, name, owner, deleted FROM restaurants WHERE id=$1 AND NOT deleted`
	var rest model.Restaurant
	err := r.q.QueryRow(ctx, query, id).Scan(&rest.ID, &rest.Name, &rest.Owner, &rest.Deleted)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &rest, nil
}

func (r *restaurantRepository) IsLive(ctx context.Context, id int64) (bool, error) {
	const query = `SELECT NOT deleted FROM restaurants WHERE id=$1`
	var live bool
	err := r.q.QueryRow(ctx, query, id).Scan(&live)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return live, nil
}

func (r *restaurantRepository) Rename(ctx context.Context, id int64, name string) error {
	const query = `UPDATE restaurants SET name=$2 WHERE id=$1 AND NOT deleted`
	tag, err := r.q.Exec(ctx, query, id, name)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *restaurantRepository) SoftDelete(ctx context.Context, id int64) error {
	const query = `UPDATE restaurants SET deleted=TRUE WHERE id=$1 AND NOT deleted`
	tag, err := r.q.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *restaurantRepository) IsEmployee(ctx context.Context, id int64, username string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM restaurant_employees WHERE restaurant_id=$1 AND username=$2)`
	var employed bool
	if err := r.q.QueryRow(ctx, query, id, username).Scan(&employed); err != nil {
		return false, err
	}
	return employed, nil
}

func (r *restaurantRepository) Employees(ctx context.Context, id int64) ([]string, error) {
	const query = `SELECT username FROM restaurant_employees WHERE restaurant_id=$1 ORDER BY username`
	rows, err := r.q.Query(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []string
	for rows.Next() {
		var username string
		if err := rows.Scan(&username); err != nil {
			return nil, err
		}
		result = append(result, username)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *restaurantRepository) AddEmployee(ctx context.Context, id int64, username string) error {
	const query = `INSERT INTO restaurant_employees (restaurant_id, username)
                   VALUES ($1, $2) ON CONFLICT DO NOTHING`
	if _, err := r.q.Exec(ctx, query, id, username); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return domainErrors.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *restaurantRepository) RemoveEmployee(ctx context.Context, id int64, username string) error {
	const query = `DELETE FROM restaurant_employees WHERE restaurant_id=$1 AND username=$2`
	_, err := r.q.Exec(ctx, query, id, username)
	return err
}

func (r *restaurantRepository) MenuItems(ctx context.Context, id int64) ([]model.MenuItem, error) {
	const query = `SELECT id, restaurant_id, name, price_cents, deleted
                   FROM menu_items WHERE restaurant_id=$1 AND NOT deleted ORDER BY id`
	rows, err := r.q.Query(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.MenuItem
	for rows.Next() {
		var item model.MenuItem
		if err := rows.Scan(&item.ID, &item.RestaurantID, &item.Name, &item.PriceCents, &item.Deleted); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *restaurantRepository) AddMenuItem(ctx context.Context, id int64, name string, priceCents int64) (*model.MenuItem, error) {
	const query = `INSERT INTO menu_items (restaurant_id, name, price_cents) VALUES ($1, $2, $3) RETURNING id`
	var item model.MenuItem
	if err := r.q.QueryRow(ctx, query, id, name, priceCents).Scan(&item.ID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	item.RestaurantID = id
	item.Name = name
	item.PriceCents = priceCents
	return &item, nil
}

func (r *restaurantRepository) UpdateMenuItem(ctx context.Context, id, itemID int64, name string, priceCents int64) error {
	const query = `UPDATE menu_items SET name=$3, price_cents=$4
                   WHERE restaurant_id=$1 AND id=$2 AND NOT deleted`
	tag, err := r.q.Exec(ctx, query, id, itemID, name, priceCents)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *restaurantRepository) SoftDeleteMenuItem(ctx context.Context, id, itemID int64) error {
	const query = `UPDATE menu_items SET deleted=TRUE
                   WHERE restaurant_id=$1 AND id=$2 AND NOT deleted`
	tag, err := r.q.Exec(ctx, query, id, itemID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}
