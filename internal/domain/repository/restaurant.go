package repository

import (
	"context"

	"github.com/servery/servery/internal/domain/model"
)

// RestaurantRepository describes persistence for restaurants, their staff
// and their menus. Reads exclude soft-deleted rows unless noted otherwise.
type RestaurantRepository interface {
	Create(ctx context.Context, name, owner string) (*model.Restaurant, error)
	List(ctx context.Context) ([]model.Restaurant, error)
	GetByID(ctx context.Context, id int64) (*model.Restaurant, error)
	IsLive(ctx context.Context, id int64) (bool, error)
	Rename(ctx context.Context, id int64, name string) error
	SoftDelete(ctx context.Context, id int64) error

	IsEmployee(ctx context.Context, id int64, username string) (bool, error)
	Employees(ctx context.Context, id int64) ([]string, error)
	AddEmployee(ctx context.Context, id int64, username string) error
	RemoveEmployee(ctx context.Context, id int64, username string) error

	MenuItems(ctx context.Context, id int64) ([]model.MenuItem, error)
	AddMenuItem(ctx context.Context, id int64, name string, priceCents int64) (*model.MenuItem, error)
	UpdateMenuItem(ctx context.Context, id, itemID int64, name string, priceCents int64) error
	SoftDeleteMenuItem(ctx context.Context, id, itemID int64) error
}
